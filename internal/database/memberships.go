package database

import (
	"context"
	"fmt"

	"github.com/mlazarev/foodgram/internal/shoppinglist"
)

// Favorite and cart rows share one shape, so the toggles are a single
// helper parameterized by table.
type membershipTable string

const (
	tableFavorites membershipTable = "favorites"
	tableCarts     membershipTable = "carts"
)

// addMembership inserts the (user, recipe) pair with the store's atomic
// insert-if-absent. Zero rows affected means the pair already exists;
// two racing adds therefore leave one surviving row and one
// ErrAlreadyExists, never two rows.
func (d *Database) addMembership(ctx context.Context, table membershipTable, userID, recipeID int64) error {
	tag, err := d.db.Exec(ctx,
		fmt.Sprintf(`INSERT INTO %s (user_id, recipe_id) VALUES ($1, $2)
		             ON CONFLICT DO NOTHING`, table),
		userID, recipeID)
	if err != nil {
		return fmt.Errorf("inserting %s row: %w", table, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrAlreadyExists
	}
	return nil
}

func (d *Database) removeMembership(ctx context.Context, table membershipTable, userID, recipeID int64) error {
	tag, err := d.db.Exec(ctx,
		fmt.Sprintf(`DELETE FROM %s WHERE user_id = $1 AND recipe_id = $2`, table),
		userID, recipeID)
	if err != nil {
		return fmt.Errorf("deleting %s row: %w", table, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (d *Database) membershipSet(ctx context.Context, table membershipTable, userID int64, recipeIDs []int64) (map[int64]bool, error) {
	rows, err := d.db.Query(ctx,
		fmt.Sprintf(`SELECT recipe_id FROM %s WHERE user_id = $1 AND recipe_id = ANY($2)`, table),
		userID, recipeIDs)
	if err != nil {
		return nil, fmt.Errorf("listing %s rows: %w", table, err)
	}
	defer rows.Close()

	out := make(map[int64]bool)
	for rows.Next() {
		var recipeID int64
		if err := rows.Scan(&recipeID); err != nil {
			return nil, fmt.Errorf("scanning %s row: %w", table, err)
		}
		out[recipeID] = true
	}
	return out, rows.Err()
}

func (d *Database) AddFavorite(ctx context.Context, userID, recipeID int64) error {
	return d.addMembership(ctx, tableFavorites, userID, recipeID)
}

func (d *Database) RemoveFavorite(ctx context.Context, userID, recipeID int64) error {
	return d.removeMembership(ctx, tableFavorites, userID, recipeID)
}

func (d *Database) AddToCart(ctx context.Context, userID, recipeID int64) error {
	return d.addMembership(ctx, tableCarts, userID, recipeID)
}

func (d *Database) RemoveFromCart(ctx context.Context, userID, recipeID int64) error {
	return d.removeMembership(ctx, tableCarts, userID, recipeID)
}

// FavoritedSet reports which of recipeIDs the user has favorited.
func (d *Database) FavoritedSet(ctx context.Context, userID int64, recipeIDs []int64) (map[int64]bool, error) {
	return d.membershipSet(ctx, tableFavorites, userID, recipeIDs)
}

// InCartSet reports which of recipeIDs are in the user's cart.
func (d *Database) InCartSet(ctx context.Context, userID int64, recipeIDs []int64) (map[int64]bool, error) {
	return d.membershipSet(ctx, tableCarts, userID, recipeIDs)
}

// CartLines collects every junction row for every recipe in the user's
// cart, already grouped by (name, measurement unit) and summed, ordered
// by name.
func (d *Database) CartLines(ctx context.Context, userID int64) ([]shoppinglist.Line, error) {
	rows, err := d.db.Query(ctx,
		`SELECT i.name, i.measurement_unit, SUM(ri.amount)::int
		 FROM recipe_ingredients ri
		 JOIN ingredients i ON i.id = ri.ingredient_id
		 JOIN carts c ON c.recipe_id = ri.recipe_id
		 WHERE c.user_id = $1
		 GROUP BY i.name, i.measurement_unit
		 ORDER BY i.name`, userID)
	if err != nil {
		return nil, fmt.Errorf("aggregating cart: %w", err)
	}
	defer rows.Close()

	var lines []shoppinglist.Line
	for rows.Next() {
		var l shoppinglist.Line
		if err := rows.Scan(&l.Name, &l.Unit, &l.Amount); err != nil {
			return nil, fmt.Errorf("scanning cart line: %w", err)
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}
