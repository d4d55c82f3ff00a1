// Package planner owns planned meals: one optional "main" slot per calendar
// day, plus the weekly aggregates the dashboard shows.
package planner

import (
	"strings"
	"time"
)

// SlotMain is the only meal slot the product models.
const SlotMain = "main"

// PlannedMeal is one meal assignment for a calendar date.
type PlannedMeal struct {
	ID                  int64     `json:"id"`
	UserID              int64     `json:"user_id"`
	PlannedDate         string    `json:"planned_date"` // yyyy-MM-dd
	Slot                string    `json:"slot"`
	MealName            string    `json:"meal_name"`
	RecipeID            int64     `json:"recipe_id,omitempty"` // 0 means no recipe
	AlreadyHaveInPantry bool      `json:"already_have_in_pantry"`
	Purchased           bool      `json:"purchased"`
	EstimatedCost       float64   `json:"estimated_cost"`
	IsFavorite          bool      `json:"is_favorite"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// IsPlanned reports whether the row counts as a planned meal: it carries a
// non-blank meal name or references a recipe.
func (m PlannedMeal) IsPlanned() bool {
	return strings.TrimSpace(m.MealName) != "" || m.RecipeID != 0
}

// IsEmpty reports whether the row carries no information at all. Empty rows
// are deleted rather than stored so the table never accumulates null rows.
func (m PlannedMeal) IsEmpty() bool {
	return strings.TrimSpace(m.MealName) == "" &&
		m.RecipeID == 0 &&
		!m.AlreadyHaveInPantry &&
		!m.Purchased &&
		m.EstimatedCost <= 0 &&
		!m.IsFavorite
}
