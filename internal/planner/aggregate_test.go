package planner

import (
	"fmt"
	"testing"
	"time"
)

// Wednesday 2024-02-14; its week runs Sun 2024-02-11 through Sat 2024-02-17.
var wednesday = time.Date(2024, time.February, 14, 10, 0, 0, 0, time.UTC)

func plan(date, meal string, recipeID int64) PlannedMeal {
	return PlannedMeal{PlannedDate: date, Slot: SlotMain, MealName: meal, RecipeID: recipeID}
}

func TestPlannedDayCount(t *testing.T) {
	rows := []PlannedMeal{
		plan("2024-02-12", "Tacos", 0),
		plan("2024-02-12", "Tacos again", 0), // same day counted once
		plan("2024-02-14", "", 7),            // recipe only still counts
		plan("2024-02-15", "", 0),            // not planned
		plan("2024-02-20", "Out of week", 0), // outside window
	}

	if got := PlannedDayCount(rows, wednesday); got != 2 {
		t.Errorf("PlannedDayCount = %d, want 2", got)
	}
	if got := PlannedDayCount(nil, wednesday); got != 0 {
		t.Errorf("PlannedDayCount(nil) = %d, want 0", got)
	}
}

func TestNextPlannedMeal(t *testing.T) {
	lookup := func(titles map[int64]string) TitleLookup {
		return func(id int64) (string, error) {
			return titles[id], nil
		}
	}

	t.Run("MealNameWins", func(t *testing.T) {
		rows := []PlannedMeal{
			plan("2024-02-15", "  Lentil soup  ", 3),
			plan("2024-02-16", "Later meal", 0),
		}
		got, err := NextPlannedMeal(rows, wednesday, lookup(map[int64]string{3: "Recipe title"}))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got == nil || got.Label != "Lentil soup" || got.PlannedDate != "2024-02-15" {
			t.Errorf("got %+v, want Lentil soup on 2024-02-15", got)
		}
	})

	t.Run("RecipeTitleFallback", func(t *testing.T) {
		rows := []PlannedMeal{plan("2024-02-15", "", 3)}
		got, err := NextPlannedMeal(rows, wednesday, lookup(map[int64]string{3: "Pad Thai"}))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got == nil || got.Label != "Pad Thai" {
			t.Errorf("got %+v, want Pad Thai", got)
		}
	})

	t.Run("RecipeTitleBlank", func(t *testing.T) {
		rows := []PlannedMeal{plan("2024-02-15", "", 3)}
		got, err := NextPlannedMeal(rows, wednesday, lookup(map[int64]string{}))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got == nil || got.Label != "Recipe selected" {
			t.Errorf("got %+v, want Recipe selected", got)
		}
	})

	t.Run("PastRowsSkipped", func(t *testing.T) {
		rows := []PlannedMeal{
			plan("2024-02-12", "Yesterday", 0), // before today
			plan("2024-02-16", "Friday", 0),
		}
		got, err := NextPlannedMeal(rows, wednesday, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got == nil || got.PlannedDate != "2024-02-16" {
			t.Errorf("got %+v, want Friday's meal", got)
		}
	})

	t.Run("NothingPlannedIsNilNotError", func(t *testing.T) {
		got, err := NextPlannedMeal(nil, wednesday, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != nil {
			t.Errorf("got %+v, want nil", got)
		}
	})

	t.Run("LookupErrorPropagates", func(t *testing.T) {
		rows := []PlannedMeal{plan("2024-02-15", "", 3)}
		failing := func(int64) (string, error) { return "", fmt.Errorf("read failed") }
		if _, err := NextPlannedMeal(rows, wednesday, failing); err == nil {
			t.Error("expected upstream error to propagate")
		}
	})
}

func TestNextAvailableDate(t *testing.T) {
	t.Run("FirstGapWins", func(t *testing.T) {
		rows := []PlannedMeal{
			plan("2024-02-14", "Today", 0),
			plan("2024-02-15", "Tomorrow", 0),
		}
		if got := NextAvailableDate(rows, wednesday); got != "2024-02-16" {
			t.Errorf("NextAvailableDate = %q, want 2024-02-16", got)
		}
	})

	t.Run("FullWeekReturnsEmpty", func(t *testing.T) {
		var rows []PlannedMeal
		for d := 14; d <= 17; d++ {
			rows = append(rows, plan(fmt.Sprintf("2024-02-%02d", d), "Meal", 0))
		}
		if got := NextAvailableDate(rows, wednesday); got != "" {
			t.Errorf("NextAvailableDate = %q, want empty for a full week", got)
		}
	})

	t.Run("UnplannedRowsDoNotBlock", func(t *testing.T) {
		rows := []PlannedMeal{plan("2024-02-14", "", 0)} // empty placeholder
		if got := NextAvailableDate(rows, wednesday); got != "2024-02-14" {
			t.Errorf("NextAvailableDate = %q, want 2024-02-14", got)
		}
	})
}

func TestWeeklyEstimatedCostTotal(t *testing.T) {
	rows := []PlannedMeal{
		{PlannedDate: "2024-02-12", Slot: SlotMain, EstimatedCost: 10.555},
		{PlannedDate: "2024-02-14", Slot: SlotMain, EstimatedCost: 4.20},
		{PlannedDate: "2024-02-20", Slot: SlotMain, EstimatedCost: 99},   // out of week
		{PlannedDate: "2024-02-14", Slot: "other", EstimatedCost: 50},    // wrong slot
		{PlannedDate: "2024-02-13", Slot: SlotMain, EstimatedCost: -3.0}, // clamped
	}

	// 10.555 + 4.20 summed unrounded, then rounded once: 14.76.
	if got := WeeklyEstimatedCostTotal(rows, wednesday); got != 14.76 {
		t.Errorf("WeeklyEstimatedCostTotal = %v, want 14.76", got)
	}
}

func TestPlannedMealEmpty(t *testing.T) {
	if !(PlannedMeal{MealName: "  "}).IsEmpty() {
		t.Error("whitespace-only meal name should still be empty")
	}
	if (PlannedMeal{IsFavorite: true}).IsEmpty() {
		t.Error("favorite rows are not empty")
	}
	if (PlannedMeal{EstimatedCost: 0.5}).IsEmpty() {
		t.Error("rows with a cost are not empty")
	}
}
