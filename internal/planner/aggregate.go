package planner

import (
	"strings"
	"time"

	"madfood/internal/dateutil"
	"madfood/internal/money"
)

// NextMeal is the dashboard projection of the next planned meal this week.
type NextMeal struct {
	PlannedDate string `json:"planned_date"`
	Label       string `json:"label"`
}

// TitleLookup resolves a recipe id to its title. A missing recipe is a valid
// empty result, not an error; errors are reserved for upstream read failures
// and propagate unchanged.
type TitleLookup func(recipeID int64) (string, error)

// PlannedDayCount counts the distinct planned dates among rows that fall in
// the calendar week of now and count as planned.
func PlannedDayCount(rows []PlannedMeal, now time.Time) int {
	start := dateutil.Format(dateutil.StartOfWeek(now), "yyyy-MM-dd")
	end := dateutil.Format(dateutil.EndOfWeek(now), "yyyy-MM-dd")

	days := make(map[string]struct{})
	for _, row := range rows {
		if !row.IsPlanned() {
			continue
		}
		if row.PlannedDate < start || row.PlannedDate > end {
			continue
		}
		days[row.PlannedDate] = struct{}{}
	}
	return len(days)
}

// labelResolver is one step of the ordered label resolution chain; it
// returns the label or "" to pass to the next step.
type labelResolver func(m PlannedMeal, lookup TitleLookup) (string, error)

var labelResolvers = []labelResolver{
	func(m PlannedMeal, _ TitleLookup) (string, error) {
		return strings.TrimSpace(m.MealName), nil
	},
	func(m PlannedMeal, lookup TitleLookup) (string, error) {
		if m.RecipeID == 0 || lookup == nil {
			return "", nil
		}
		title, err := lookup(m.RecipeID)
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(title), nil
	},
}

// ResolveLabel walks the resolver chain and stops at the first non-empty
// result. The literal fallbacks mirror the web client: "Recipe selected"
// when a recipe is linked but its title came back blank, "Meal planned"
// otherwise.
func ResolveLabel(m PlannedMeal, lookup TitleLookup) (string, error) {
	for _, resolve := range labelResolvers {
		label, err := resolve(m, lookup)
		if err != nil {
			return "", err
		}
		if label != "" {
			return label, nil
		}
	}
	if m.RecipeID != 0 {
		return "Recipe selected", nil
	}
	return "Meal planned", nil
}

// NextPlannedMeal returns the first planned row with a date in
// [today, end-of-week], scanning ascending by date. A nil result means
// nothing is planned, which is a valid state rather than an error.
func NextPlannedMeal(rows []PlannedMeal, now time.Time, lookup TitleLookup) (*NextMeal, error) {
	today := dateutil.Format(dateutil.DayFloor(now), "yyyy-MM-dd")
	end := dateutil.Format(dateutil.EndOfWeek(now), "yyyy-MM-dd")

	var next *PlannedMeal
	for i := range rows {
		row := rows[i]
		if !row.IsPlanned() || row.Slot != SlotMain {
			continue
		}
		if row.PlannedDate < today || row.PlannedDate > end {
			continue
		}
		if next == nil || row.PlannedDate < next.PlannedDate {
			next = &rows[i]
		}
	}
	if next == nil {
		return nil, nil
	}

	label, err := ResolveLabel(*next, lookup)
	if err != nil {
		return nil, err
	}
	return &NextMeal{PlannedDate: next.PlannedDate, Label: label}, nil
}

// NextAvailableDate walks today through end-of-week inclusive and returns
// the first ISO date with no planned row, or "" when the week is full. The
// walk is linear over at most seven days.
func NextAvailableDate(rows []PlannedMeal, now time.Time) string {
	planned := make(map[string]struct{})
	for _, row := range rows {
		if row.IsPlanned() && row.Slot == SlotMain {
			planned[row.PlannedDate] = struct{}{}
		}
	}

	for day := range dateutil.EachDayOfInterval(dateutil.DayFloor(now), dateutil.EndOfWeek(now)) {
		iso := dateutil.Format(day, "yyyy-MM-dd")
		if _, taken := planned[iso]; !taken {
			return iso
		}
	}
	return ""
}

// WeeklyEstimatedCostTotal sums the stored estimated cost of main-slot rows
// in the calendar week of now, rounding once at the end.
func WeeklyEstimatedCostTotal(rows []PlannedMeal, now time.Time) float64 {
	start := dateutil.Format(dateutil.StartOfWeek(now), "yyyy-MM-dd")
	end := dateutil.Format(dateutil.EndOfWeek(now), "yyyy-MM-dd")

	var sum float64
	for _, row := range rows {
		if row.Slot != SlotMain {
			continue
		}
		if row.PlannedDate < start || row.PlannedDate > end {
			continue
		}
		sum += money.Clamp(row.EstimatedCost)
	}
	return money.Round2(sum)
}
