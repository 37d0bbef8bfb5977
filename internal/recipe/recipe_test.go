package recipe

import (
	"errors"
	"testing"
)

func validWrite() Write {
	return Write{
		Name:        "Pancakes",
		Text:        "Mix and fry.",
		Image:       "data:image/png;base64,abcd",
		CookingTime: 20,
		TagIDs:      []int64{1, 2},
		Ingredients: []IngredientAmount{
			{ID: 1, Amount: 200},
			{ID: 2, Amount: 2},
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name         string
		mutate       func(*Write)
		requireImage bool
		expected     error
	}{
		{
			name:         "valid create",
			mutate:       func(w *Write) {},
			requireImage: true,
			expected:     nil,
		},
		{
			name:         "no ingredients",
			mutate:       func(w *Write) { w.Ingredients = nil },
			requireImage: true,
			expected:     ErrNoIngredients,
		},
		{
			name: "duplicate ingredient id",
			mutate: func(w *Write) {
				w.Ingredients = []IngredientAmount{
					{ID: 7, Amount: 100},
					{ID: 7, Amount: 50},
				}
			},
			requireImage: true,
			expected:     ErrDuplicateIngredient,
		},
		{
			name: "amount below minimum",
			mutate: func(w *Write) {
				w.Ingredients[0].Amount = 0
			},
			requireImage: true,
			expected:     ErrInvalidAmount,
		},
		{
			name: "amount above maximum",
			mutate: func(w *Write) {
				w.Ingredients[0].Amount = MaxAmount + 1
			},
			requireImage: true,
			expected:     ErrInvalidAmount,
		},
		{
			name:         "no tags",
			mutate:       func(w *Write) { w.TagIDs = nil },
			requireImage: true,
			expected:     ErrNoTags,
		},
		{
			name:         "duplicate tag",
			mutate:       func(w *Write) { w.TagIDs = []int64{3, 3} },
			requireImage: true,
			expected:     ErrDuplicateTag,
		},
		{
			name:         "missing image on create",
			mutate:       func(w *Write) { w.Image = "" },
			requireImage: true,
			expected:     ErrMissingImage,
		},
		{
			name:         "missing image allowed on update",
			mutate:       func(w *Write) { w.Image = "" },
			requireImage: false,
			expected:     nil,
		},
		{
			name:         "cooking time below minimum",
			mutate:       func(w *Write) { w.CookingTime = 0 },
			requireImage: true,
			expected:     ErrInvalidCookingTime,
		},
		{
			name:         "cooking time above maximum",
			mutate:       func(w *Write) { w.CookingTime = MaxCookingTime + 1 },
			requireImage: true,
			expected:     ErrInvalidCookingTime,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := validWrite()
			tt.mutate(&w)

			err := w.Validate(tt.requireImage)
			if tt.expected == nil {
				if err != nil {
					t.Fatalf("Validate() returned unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.expected) {
				t.Fatalf("Validate() = %v, expected %v", err, tt.expected)
			}
		})
	}
}

func TestValidateDuplicateIgnoresAmount(t *testing.T) {
	// Two entries for one ingredient are a duplicate even when their
	// amounts differ.
	w := validWrite()
	w.Ingredients = []IngredientAmount{
		{ID: 1, Amount: 10},
		{ID: 1, Amount: 20},
	}
	if err := w.Validate(true); !errors.Is(err, ErrDuplicateIngredient) {
		t.Fatalf("Validate() = %v, expected %v", err, ErrDuplicateIngredient)
	}
}
