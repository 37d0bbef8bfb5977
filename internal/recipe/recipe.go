// Package recipe contains the domain rules for recipe writes.
package recipe

import "errors"

// Bounds for recipe_ingredients.amount and recipes.cooking_time. The
// database enforces the same range with CHECK constraints.
const (
	MinAmount      = 1
	MaxAmount      = 32000
	MinCookingTime = 1
	MaxCookingTime = 32000
)

var (
	ErrNoIngredients       = errors.New("recipe must contain at least one ingredient")
	ErrDuplicateIngredient = errors.New("recipe lists the same ingredient twice")
	ErrInvalidAmount       = errors.New("ingredient amount is out of range")
	ErrUnknownIngredient   = errors.New("ingredient does not exist")
	ErrNoTags              = errors.New("recipe must contain at least one tag")
	ErrDuplicateTag        = errors.New("recipe lists the same tag twice")
	ErrUnknownTag          = errors.New("tag does not exist")
	ErrMissingImage        = errors.New("recipe image is required")
	ErrInvalidCookingTime  = errors.New("cooking time is out of range")
)

// IngredientAmount references an ingredient by id together with the
// amount used by the recipe.
type IngredientAmount struct {
	ID     int64
	Amount int
}

// Write is a validated recipe payload. Image holds the raw data-URI
// string; on update an empty Image keeps the stored one.
type Write struct {
	Name        string
	Text        string
	Image       string
	CookingTime int
	TagIDs      []int64
	Ingredients []IngredientAmount
}

// Validate applies the write-time invariants: non-empty, duplicate-free
// ingredient and tag lists, bounded amounts and cooking time, and a
// present image when requireImage is set (create). Ingredient identity
// is compared by id only; amounts do not participate.
func (w Write) Validate(requireImage bool) error {
	if len(w.Ingredients) == 0 {
		return ErrNoIngredients
	}
	seenIngredients := make(map[int64]struct{}, len(w.Ingredients))
	for _, ing := range w.Ingredients {
		if _, dup := seenIngredients[ing.ID]; dup {
			return ErrDuplicateIngredient
		}
		seenIngredients[ing.ID] = struct{}{}
		if ing.Amount < MinAmount || ing.Amount > MaxAmount {
			return ErrInvalidAmount
		}
	}

	if len(w.TagIDs) == 0 {
		return ErrNoTags
	}
	seenTags := make(map[int64]struct{}, len(w.TagIDs))
	for _, id := range w.TagIDs {
		if _, dup := seenTags[id]; dup {
			return ErrDuplicateTag
		}
		seenTags[id] = struct{}{}
	}

	if requireImage && w.Image == "" {
		return ErrMissingImage
	}

	if w.CookingTime < MinCookingTime || w.CookingTime > MaxCookingTime {
		return ErrInvalidCookingTime
	}

	return nil
}
