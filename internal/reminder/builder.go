// Package reminder builds and delivers the weekly meal reminder message.
package reminder

import (
	"fmt"
	"strings"
)

// maxShoppingLines caps how many pending ingredients a reminder lists.
const maxShoppingLines = 20

// MealEntry is one planned meal line in the reminder.
type MealEntry struct {
	Date          string
	Label         string
	EstimatedCost float64
}

// ShoppingEntry is one pending ingredient line in the reminder. Total is the
// item's quantity times its unit price.
type ShoppingEntry struct {
	Name  string
	Total float64
}

// MealLabel picks the display label for a reminder line: the recipe title
// when one is linked, otherwise the typed meal name, otherwise a generic
// placeholder.
func MealLabel(recipeTitle, mealName string) string {
	if title := strings.TrimSpace(recipeTitle); title != "" {
		return title
	}
	if name := strings.TrimSpace(mealName); name != "" {
		return name
	}
	return "Meal planned"
}

func costSuffix(amount float64) string {
	if amount > 0 {
		return fmt.Sprintf("($%.2f)", amount)
	}
	return "(cost TBD)"
}

// BuildWeeklyMessage assembles the reminder text. Meals are listed as given;
// shopping entries are truncated to the first twenty.
func BuildWeeklyMessage(firstName string, meals []MealEntry, items []ShoppingEntry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s, this is your MadFood reminder for the week.\n\n", firstName)

	b.WriteString("Upcoming meals:\n")
	if len(meals) == 0 {
		b.WriteString("- No meals planned yet for this week.\n")
	}
	for _, meal := range meals {
		fmt.Fprintf(&b, "- %s: %s %s\n", meal.Date, meal.Label, costSuffix(meal.EstimatedCost))
	}

	b.WriteString("\nIngredients to shop:\n")
	if len(items) == 0 {
		b.WriteString("- No pending ingredients to shop.")
		return b.String()
	}
	if len(items) > maxShoppingLines {
		items = items[:maxShoppingLines]
	}
	for i, item := range items {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "- %s %s", item.Name, costSuffix(item.Total))
	}
	return b.String()
}
