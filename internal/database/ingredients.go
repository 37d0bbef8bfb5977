package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
)

type CreateIngredientParams struct {
	Name            string
	MeasurementUnit string
}

func (d *Database) CreateIngredient(ctx context.Context, params CreateIngredientParams) (int64, error) {
	var id int64
	err := d.db.QueryRow(ctx,
		`INSERT INTO ingredients (name, measurement_unit) VALUES ($1, $2) RETURNING id`,
		params.Name, params.MeasurementUnit,
	).Scan(&id)
	if uniqueViolation(err, "ingredients_name_measurement_unit_key") {
		return 0, ErrAlreadyExists
	}
	if err != nil {
		return 0, fmt.Errorf("inserting ingredient: %w", err)
	}
	return id, nil
}

func (d *Database) GetIngredient(ctx context.Context, id int64) (Ingredient, error) {
	var i Ingredient
	err := d.db.QueryRow(ctx,
		`SELECT id, name, measurement_unit FROM ingredients WHERE id = $1`, id,
	).Scan(&i.ID, &i.Name, &i.MeasurementUnit)
	return i, err
}

// escapeLike escapes the LIKE metacharacters in s so that a pattern
// built from it matches s literally.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ListIngredients returns ingredients ordered by name, optionally
// restricted to a case-insensitive name prefix.
func (d *Database) ListIngredients(ctx context.Context, namePrefix string) ([]Ingredient, error) {
	query := `SELECT id, name, measurement_unit FROM ingredients ORDER BY name, id`
	args := []any{}
	if namePrefix != "" {
		query = `SELECT id, name, measurement_unit FROM ingredients
		         WHERE name ILIKE $1 || '%' ORDER BY name, id`
		args = append(args, escapeLike(namePrefix))
	}

	rows, err := d.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing ingredients: %w", err)
	}
	defer rows.Close()

	var ingredients []Ingredient
	for rows.Next() {
		var i Ingredient
		if err := rows.Scan(&i.ID, &i.Name, &i.MeasurementUnit); err != nil {
			return nil, fmt.Errorf("scanning ingredient: %w", err)
		}
		ingredients = append(ingredients, i)
	}
	return ingredients, rows.Err()
}

// BulkInsertIngredients inserts reference rows, skipping (name, unit)
// pairs that are already present. Returns the number of new rows.
func (d *Database) BulkInsertIngredients(ctx context.Context, ingredients []CreateIngredientParams) (int64, error) {
	batch := &pgx.Batch{}
	for _, ing := range ingredients {
		batch.Queue(
			`INSERT INTO ingredients (name, measurement_unit) VALUES ($1, $2)
			 ON CONFLICT (name, measurement_unit) DO NOTHING`,
			ing.Name, ing.MeasurementUnit)
	}

	results := d.db.SendBatch(ctx, batch)
	defer func() { _ = results.Close() }()

	var inserted int64
	for range ingredients {
		tag, err := results.Exec()
		if err != nil {
			return inserted, fmt.Errorf("inserting ingredient batch row: %w", err)
		}
		inserted += tag.RowsAffected()
	}
	return inserted, nil
}
