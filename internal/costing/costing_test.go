package costing

import (
	"math"
	"testing"

	"madfood/internal/pantry"
	"madfood/internal/planner"
	"madfood/internal/recipe"
	"madfood/internal/shopping"
)

func TestNewPriceIndex(t *testing.T) {
	pantryItems := []pantry.Item{
		{Name: "  Flour ", EstimatedPrice: 1.50},
		{Name: "Sugar", EstimatedPrice: 0}, // no pantry price, shopping should fill it
		{Name: "Butter", EstimatedPrice: -2},
	}
	shoppingItems := []shopping.Item{
		{Name: "flour", Price: 9.99}, // pantry already holds flour, ignored
		{Name: "sugar", Price: 0.80},
		{Name: "sugar", Price: 0.95}, // older row, first match already won
		{Name: "Butter", Price: 0},
	}

	index := NewPriceIndex(pantryItems, shoppingItems)

	if price, ok := index.Lookup("FLOUR"); !ok || price != 1.50 {
		t.Errorf("flour = %v, %v, want 1.50 from pantry", price, ok)
	}
	if price, ok := index.Lookup("sugar"); !ok || price != 0.80 {
		t.Errorf("sugar = %v, %v, want 0.80 from most recent shopping row", price, ok)
	}
	if _, ok := index.Lookup("butter"); ok {
		t.Error("butter has no positive price anywhere, should be absent")
	}
	if _, ok := index.Lookup("saffron"); ok {
		t.Error("unknown ingredient should be absent")
	}
}

func TestParseQuantity(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"2", 2},
		{"2.5", 2.5},
		{"1,5", 1.5},
		{" 3 ", 3},
		{"", 1},
		{"a pinch", 1},
		{"0", 1},
		{"-4", 1},
	}
	for _, tc := range cases {
		if got := ParseQuantity(tc.in); got != tc.want {
			t.Errorf("ParseQuantity(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestInferMealCost(t *testing.T) {
	index := PriceIndex{
		"flour": 1.50,
		"sugar": 0.80,
	}

	t.Run("SumsPricedIngredients", func(t *testing.T) {
		meal := planner.PlannedMeal{EstimatedCost: 12.00}
		ingredients := []recipe.Ingredient{
			{Name: "Flour", Quantity: "2"},
			{Name: "Sugar", Quantity: ""}, // blank quantity counts as 1
			{Name: "Saffron", Quantity: "1"},
		}
		if got := InferMealCost(meal, ingredients, index); got != 3.80 {
			t.Errorf("got %v, want 3.80", got)
		}
	})

	t.Run("RoundsOnceAtTheEnd", func(t *testing.T) {
		index := PriceIndex{"a": 1.004, "b": 1.004}
		ingredients := []recipe.Ingredient{
			{Name: "a", Quantity: "1"},
			{Name: "b", Quantity: "1"},
		}
		got := InferMealCost(planner.PlannedMeal{}, ingredients, index)
		if got != 2.01 {
			t.Errorf("got %v, want 2.01 (2.008 rounded once, not 1.00+1.00)", got)
		}
	})

	t.Run("FallsBackToStoredEstimateOnZeroSum", func(t *testing.T) {
		meal := planner.PlannedMeal{EstimatedCost: 7.255}
		ingredients := []recipe.Ingredient{{Name: "Saffron", Quantity: "1"}}
		if got := InferMealCost(meal, ingredients, index); got != 7.26 {
			t.Errorf("got %v, want rounded stored estimate 7.26", got)
		}
	})

	t.Run("PartialMatchDoesNotFallBack", func(t *testing.T) {
		meal := planner.PlannedMeal{EstimatedCost: 50}
		ingredients := []recipe.Ingredient{
			{Name: "Flour", Quantity: "1"},
			{Name: "Saffron", Quantity: "1"},
		}
		if got := InferMealCost(meal, ingredients, index); got != 1.50 {
			t.Errorf("got %v, want 1.50 from the single matched ingredient", got)
		}
	})

	t.Run("NoIngredientsUsesEstimate", func(t *testing.T) {
		meal := planner.PlannedMeal{EstimatedCost: 9.99}
		if got := InferMealCost(meal, nil, index); got != 9.99 {
			t.Errorf("got %v, want 9.99", got)
		}
	})

	t.Run("GarbageEstimateClampsToZero", func(t *testing.T) {
		for _, bad := range []float64{-5, math.NaN(), math.Inf(1)} {
			meal := planner.PlannedMeal{EstimatedCost: bad}
			if got := InferMealCost(meal, nil, index); got != 0 {
				t.Errorf("EstimatedCost=%v: got %v, want 0", bad, got)
			}
		}
	})
}
