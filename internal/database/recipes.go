package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/mlazarev/foodgram/internal/recipe"
)

const recipeColumns = `id, author_id, name, text, image_url, cooking_time, pub_date`

type WriteRecipeParams struct {
	AuthorID    int64
	Name        string
	Text        string
	ImageURL    string
	CookingTime int
	TagIDs      []int64
	Ingredients []recipe.IngredientAmount
}

// CreateRecipe persists the recipe row together with its tag links and
// ingredient junction rows in one transaction. Unknown tag or
// ingredient references abort the write with recipe.ErrUnknownTag /
// recipe.ErrUnknownIngredient.
func (d *Database) CreateRecipe(ctx context.Context, params WriteRecipeParams) (int64, error) {
	tx, err := d.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := checkReferences(ctx, tx, params.TagIDs, params.Ingredients); err != nil {
		return 0, err
	}

	var id int64
	err = tx.QueryRow(ctx,
		`INSERT INTO recipes (author_id, name, text, image_url, cooking_time)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		params.AuthorID, params.Name, params.Text, params.ImageURL, params.CookingTime,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("inserting recipe: %w", err)
	}

	if err := insertAssociations(ctx, tx, id, params.TagIDs, params.Ingredients); err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("committing recipe: %w", err)
	}
	return id, nil
}

// UpdateRecipe mutates the recipe row and replaces both association
// sets. The prior tag links and junction rows are discarded entirely;
// the delete and reinsert commit atomically. An empty ImageURL keeps
// the stored image.
func (d *Database) UpdateRecipe(ctx context.Context, id int64, params WriteRecipeParams) error {
	tx, err := d.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := checkReferences(ctx, tx, params.TagIDs, params.Ingredients); err != nil {
		return err
	}

	tag, err := tx.Exec(ctx,
		`UPDATE recipes
		 SET name = $1, text = $2, cooking_time = $3,
		     image_url = COALESCE(NULLIF($4, ''), image_url)
		 WHERE id = $5`,
		params.Name, params.Text, params.CookingTime, params.ImageURL, id)
	if err != nil {
		return fmt.Errorf("updating recipe: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	if _, err := tx.Exec(ctx, `DELETE FROM recipe_tags WHERE recipe_id = $1`, id); err != nil {
		return fmt.Errorf("clearing recipe tags: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM recipe_ingredients WHERE recipe_id = $1`, id); err != nil {
		return fmt.Errorf("clearing recipe ingredients: %w", err)
	}

	if err := insertAssociations(ctx, tx, id, params.TagIDs, params.Ingredients); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing recipe update: %w", err)
	}
	return nil
}

// checkReferences verifies every referenced tag and ingredient id
// exists, inside the same transaction as the write.
func checkReferences(ctx context.Context, tx pgx.Tx, tagIDs []int64, ingredients []recipe.IngredientAmount) error {
	var count int
	if err := tx.QueryRow(ctx,
		`SELECT count(*) FROM tags WHERE id = ANY($1)`, tagIDs,
	).Scan(&count); err != nil {
		return fmt.Errorf("checking tags: %w", err)
	}
	if count != len(tagIDs) {
		return recipe.ErrUnknownTag
	}

	ingredientIDs := make([]int64, len(ingredients))
	for i, ing := range ingredients {
		ingredientIDs[i] = ing.ID
	}
	if err := tx.QueryRow(ctx,
		`SELECT count(*) FROM ingredients WHERE id = ANY($1)`, ingredientIDs,
	).Scan(&count); err != nil {
		return fmt.Errorf("checking ingredients: %w", err)
	}
	if count != len(ingredients) {
		return recipe.ErrUnknownIngredient
	}
	return nil
}

func insertAssociations(ctx context.Context, tx pgx.Tx, recipeID int64, tagIDs []int64, ingredients []recipe.IngredientAmount) error {
	batch := &pgx.Batch{}
	for _, tagID := range tagIDs {
		batch.Queue(`INSERT INTO recipe_tags (recipe_id, tag_id) VALUES ($1, $2)`,
			recipeID, tagID)
	}
	for _, ing := range ingredients {
		batch.Queue(`INSERT INTO recipe_ingredients (recipe_id, ingredient_id, amount)
		             VALUES ($1, $2, $3)`,
			recipeID, ing.ID, ing.Amount)
	}

	results := tx.SendBatch(ctx, batch)
	defer func() { _ = results.Close() }()
	for range len(tagIDs) + len(ingredients) {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("inserting recipe associations: %w", err)
		}
	}
	return nil
}

func (d *Database) GetRecipe(ctx context.Context, id int64) (Recipe, error) {
	var r Recipe
	err := d.db.QueryRow(ctx,
		`SELECT `+recipeColumns+` FROM recipes WHERE id = $1`, id,
	).Scan(&r.ID, &r.AuthorID, &r.Name, &r.Text, &r.ImageURL, &r.CookingTime, &r.PubDate)
	return r, err
}

func (d *Database) DeleteRecipe(ctx context.Context, id int64) error {
	tag, err := d.db.Exec(ctx, `DELETE FROM recipes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting recipe: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// IngredientsForRecipes fetches the junction rows joined with their
// ingredients for a batch of recipes, keyed by recipe id.
func (d *Database) IngredientsForRecipes(ctx context.Context, recipeIDs []int64) (map[int64][]RecipeIngredientInfo, error) {
	rows, err := d.db.Query(ctx,
		`SELECT ri.recipe_id, i.id, i.name, i.measurement_unit, ri.amount
		 FROM recipe_ingredients ri
		 JOIN ingredients i ON i.id = ri.ingredient_id
		 WHERE ri.recipe_id = ANY($1)
		 ORDER BY i.name, i.id`, recipeIDs)
	if err != nil {
		return nil, fmt.Errorf("listing recipe ingredients: %w", err)
	}
	defer rows.Close()

	out := make(map[int64][]RecipeIngredientInfo)
	for rows.Next() {
		var recipeID int64
		var info RecipeIngredientInfo
		if err := rows.Scan(&recipeID, &info.ID, &info.Name, &info.MeasurementUnit, &info.Amount); err != nil {
			return nil, fmt.Errorf("scanning recipe ingredient: %w", err)
		}
		out[recipeID] = append(out[recipeID], info)
	}
	return out, rows.Err()
}

// RecipeFilter narrows ListRecipes. Zero values disable a clause.
type RecipeFilter struct {
	AuthorID    int64
	TagSlugs    []string
	FavoritedBy int64
	InCartOf    int64
	Limit       int
	Offset      int
}

func (f RecipeFilter) conditions() (string, []any) {
	var conds []string
	var args []any

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.AuthorID != 0 {
		conds = append(conds, "r.author_id = "+arg(f.AuthorID))
	}
	if len(f.TagSlugs) > 0 {
		conds = append(conds, `r.id IN (
			SELECT rt.recipe_id FROM recipe_tags rt
			JOIN tags t ON t.id = rt.tag_id
			WHERE t.slug = ANY(`+arg(f.TagSlugs)+`))`)
	}
	if f.FavoritedBy != 0 {
		conds = append(conds,
			`EXISTS (SELECT 1 FROM favorites f WHERE f.recipe_id = r.id AND f.user_id = `+arg(f.FavoritedBy)+`)`)
	}
	if f.InCartOf != 0 {
		conds = append(conds,
			`EXISTS (SELECT 1 FROM carts c WHERE c.recipe_id = r.id AND c.user_id = `+arg(f.InCartOf)+`)`)
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// ListRecipes returns recipes newest-first under the given filter.
func (d *Database) ListRecipes(ctx context.Context, filter RecipeFilter) ([]Recipe, error) {
	where, args := filter.conditions()
	query := fmt.Sprintf(
		`SELECT r.id, r.author_id, r.name, r.text, r.image_url, r.cooking_time, r.pub_date
		 FROM recipes r%s
		 ORDER BY r.pub_date DESC, r.id DESC
		 LIMIT $%d OFFSET $%d`,
		where, len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := d.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing recipes: %w", err)
	}
	defer rows.Close()

	var recipes []Recipe
	for rows.Next() {
		var r Recipe
		if err := rows.Scan(&r.ID, &r.AuthorID, &r.Name, &r.Text, &r.ImageURL,
			&r.CookingTime, &r.PubDate); err != nil {
			return nil, fmt.Errorf("scanning recipe: %w", err)
		}
		recipes = append(recipes, r)
	}
	return recipes, rows.Err()
}

func (d *Database) CountRecipes(ctx context.Context, filter RecipeFilter) (int64, error) {
	where, args := filter.conditions()
	var count int64
	err := d.db.QueryRow(ctx, `SELECT count(*) FROM recipes r`+where, args...).Scan(&count)
	return count, err
}

// RecipesByAuthor returns the author's recipes newest-first. A negative
// limit means no limit.
func (d *Database) RecipesByAuthor(ctx context.Context, authorID int64, limit int) ([]Recipe, error) {
	query := `SELECT ` + recipeColumns + ` FROM recipes WHERE author_id = $1
	          ORDER BY pub_date DESC, id DESC`
	args := []any{authorID}
	if limit >= 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}

	rows, err := d.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing author recipes: %w", err)
	}
	defer rows.Close()

	var recipes []Recipe
	for rows.Next() {
		var r Recipe
		if err := rows.Scan(&r.ID, &r.AuthorID, &r.Name, &r.Text, &r.ImageURL,
			&r.CookingTime, &r.PubDate); err != nil {
			return nil, fmt.Errorf("scanning recipe: %w", err)
		}
		recipes = append(recipes, r)
	}
	return recipes, rows.Err()
}

func (d *Database) CountRecipesByAuthor(ctx context.Context, authorID int64) (int64, error) {
	var count int64
	err := d.db.QueryRow(ctx,
		`SELECT count(*) FROM recipes WHERE author_id = $1`, authorID).Scan(&count)
	return count, err
}
