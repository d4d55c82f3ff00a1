// Package costing infers meal costs from ingredient and price data.
//
// The price index prefers pantry estimates over shopping prices, and the
// per-meal inference falls back to the stored estimate only when nothing
// matched at all.
package costing

import (
	"strconv"
	"strings"

	"madfood/internal/money"
	"madfood/internal/pantry"
	"madfood/internal/planner"
	"madfood/internal/recipe"
	"madfood/internal/shopping"
)

// PriceIndex maps a normalized ingredient name to a per-unit price.
type PriceIndex map[string]float64

// NewPriceIndex builds the lookup used by cost inference. Pantry estimated
// prices win; shopping prices fill the gaps in most-recently-updated order.
// Zero and negative prices never enter the index, and the first price seen
// for a name wins.
func NewPriceIndex(pantryItems []pantry.Item, shoppingItemsByRecency []shopping.Item) PriceIndex {
	index := make(PriceIndex)
	for _, item := range pantryItems {
		key := pantry.NormalizeName(item.Name)
		if _, seen := index[key]; !seen && item.EstimatedPrice > 0 {
			index[key] = item.EstimatedPrice
		}
	}
	for _, item := range shoppingItemsByRecency {
		key := pantry.NormalizeName(item.Name)
		if _, seen := index[key]; !seen && item.Price > 0 {
			index[key] = item.Price
		}
	}
	return index
}

// Lookup returns the price for an ingredient name, if any.
func (p PriceIndex) Lookup(name string) (float64, bool) {
	price, ok := p[pantry.NormalizeName(name)]
	return price, ok
}

// ParseQuantity interprets a free-text ingredient magnitude as a
// locale-neutral decimal, treating a comma as the decimal separator.
// Empty, unparsable, and non-positive values default to 1.
func ParseQuantity(value string) float64 {
	s := strings.TrimSpace(value)
	if s == "" {
		return 1
	}
	parsed, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil || parsed <= 0 {
		return 1
	}
	return parsed
}

// InferMealCost prices a meal from its recipe ingredients: each ingredient
// found in the index contributes price times quantity, summed unrounded and
// rounded once. The stored estimate is used only when the inferred sum is
// exactly zero; a partial nonzero match never falls back.
func InferMealCost(meal planner.PlannedMeal, ingredients []recipe.Ingredient, index PriceIndex) float64 {
	var sum float64
	for _, ing := range ingredients {
		price, ok := index.Lookup(ing.Name)
		if !ok {
			continue
		}
		sum += price * ParseQuantity(ing.Quantity)
	}
	if sum > 0 {
		return money.Round2(sum)
	}
	return money.Round2(money.Clamp(meal.EstimatedCost))
}
