package database

import (
	"context"
	"fmt"
)

type CreateTagParams struct {
	Name  string
	Color string
	Slug  string
}

func (d *Database) CreateTag(ctx context.Context, params CreateTagParams) (int64, error) {
	var id int64
	err := d.db.QueryRow(ctx,
		`INSERT INTO tags (name, color, slug) VALUES ($1, $2, $3) RETURNING id`,
		params.Name, params.Color, params.Slug,
	).Scan(&id)
	if uniqueViolation(err, "tags_color_key") || uniqueViolation(err, "tags_slug_key") {
		return 0, ErrAlreadyExists
	}
	if err != nil {
		return 0, fmt.Errorf("inserting tag: %w", err)
	}
	return id, nil
}

func (d *Database) GetTag(ctx context.Context, id int64) (Tag, error) {
	var t Tag
	err := d.db.QueryRow(ctx,
		`SELECT id, name, color, slug FROM tags WHERE id = $1`, id,
	).Scan(&t.ID, &t.Name, &t.Color, &t.Slug)
	return t, err
}

func (d *Database) ListTags(ctx context.Context) ([]Tag, error) {
	rows, err := d.db.Query(ctx, `SELECT id, name, color, slug FROM tags ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}
	defer rows.Close()

	var tags []Tag
	for rows.Next() {
		var t Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.Color, &t.Slug); err != nil {
			return nil, fmt.Errorf("scanning tag: %w", err)
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

// TagsForRecipes fetches the tag sets for a batch of recipes in one
// query, keyed by recipe id.
func (d *Database) TagsForRecipes(ctx context.Context, recipeIDs []int64) (map[int64][]Tag, error) {
	rows, err := d.db.Query(ctx,
		`SELECT rt.recipe_id, t.id, t.name, t.color, t.slug
		 FROM recipe_tags rt
		 JOIN tags t ON t.id = rt.tag_id
		 WHERE rt.recipe_id = ANY($1)
		 ORDER BY t.name, t.id`, recipeIDs)
	if err != nil {
		return nil, fmt.Errorf("listing recipe tags: %w", err)
	}
	defer rows.Close()

	out := make(map[int64][]Tag)
	for rows.Next() {
		var recipeID int64
		var t Tag
		if err := rows.Scan(&recipeID, &t.ID, &t.Name, &t.Color, &t.Slug); err != nil {
			return nil, fmt.Errorf("scanning recipe tag: %w", err)
		}
		out[recipeID] = append(out[recipeID], t)
	}
	return out, rows.Err()
}
