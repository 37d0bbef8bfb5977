package recipes

import "github.com/mlazarev/foodgram/internal/recipe"

// Amount and cooking time bounds are checked by the domain validator,
// not by struct tags, so out-of-range values map to their own error
// codes.
type ingredientAmount struct {
	ID     int64 `json:"id"`
	Amount int   `json:"amount"`
}

// WriteRecipeRequest is shared by create and update. The image is a
// base64 data URI; on update it may be omitted to keep the stored one.
type WriteRecipeRequest struct {
	Ingredients []ingredientAmount `json:"ingredients"`
	Tags        []int64            `json:"tags"`
	Image       string             `json:"image"`
	Name        string             `json:"name" validate:"required,max=200"`
	Text        string             `json:"text" validate:"required"`
	CookingTime int                `json:"cooking_time"`
}

func (req WriteRecipeRequest) write() recipe.Write {
	ingredients := make([]recipe.IngredientAmount, 0, len(req.Ingredients))
	for _, ing := range req.Ingredients {
		ingredients = append(ingredients, recipe.IngredientAmount{ID: ing.ID, Amount: ing.Amount})
	}
	return recipe.Write{
		Name:        req.Name,
		Text:        req.Text,
		Image:       req.Image,
		CookingTime: req.CookingTime,
		TagIDs:      req.Tags,
		Ingredients: ingredients,
	}
}
