// Package recipe owns the recipe library and the URL importer.
package recipe

import "time"

// Recipe is one entry in the household recipe library.
type Recipe struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Title     string    `json:"title"`
	Notes     string    `json:"notes,omitempty"`
	ImageURL  string    `json:"image_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Ingredient is one line of a recipe. Quantity is free text (it may be
// fractional, ranged, or unparsable) and is only interpreted numerically
// by the cost inference.
type Ingredient struct {
	ID        int64  `json:"id"`
	RecipeID  int64  `json:"recipe_id"`
	Name      string `json:"name"`
	Quantity  string `json:"quantity,omitempty"`
	Unit      string `json:"unit,omitempty"`
	SortOrder int    `json:"sort_order"`
}

// WithIngredients bundles a recipe with its ordered ingredient list.
type WithIngredients struct {
	Recipe
	Ingredients []Ingredient `json:"ingredients"`
}
