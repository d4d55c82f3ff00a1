package shopping

import (
	"time"

	"madfood/internal/dateutil"
	"madfood/internal/money"
)

// Totals are the three basket sums for one list. Each is summed unrounded
// over quantity×price lines and rounded independently at the top.
type Totals struct {
	Total     float64
	ToBuy     float64
	Purchased float64
}

// BasketTotals folds a list's items into its three totals.
//
// Invariants: ToBuy plus the line sum of already-have items equals Total,
// and Purchased only counts items that are both purchased and not already
// in the pantry, so Purchased is always a subset of ToBuy by value.
func BasketTotals(items []Item) Totals {
	var total, toBuy, purchased float64
	for _, item := range items {
		line := money.LineTotal(item.Quantity, item.Price)
		total += line
		if item.AlreadyHaveInPantry {
			continue
		}
		toBuy += line
		if item.Purchased {
			purchased += line
		}
	}
	return Totals{
		Total:     money.Round2(total),
		ToBuy:     money.Round2(toBuy),
		Purchased: money.Round2(purchased),
	}
}

// WeeklySpendTotal sums quantity×price over items purchased during the
// calendar week of now, [week start 00:00:00.000, week end 23:59:59.999]
// inclusive, excluding items already in the pantry. The sum is rounded once
// at the end.
func WeeklySpendTotal(items []Item, now time.Time) float64 {
	start := dateutil.StartOfWeek(now)
	end := dateutil.EndOfWeek(now).Add(24*time.Hour - time.Millisecond)

	var sum float64
	for _, item := range items {
		if !item.Purchased || item.AlreadyHaveInPantry || item.PurchasedAt == nil {
			continue
		}
		at := *item.PurchasedAt
		if at.Before(start) || at.After(end) {
			continue
		}
		sum += money.LineTotal(item.Quantity, item.Price)
	}
	return money.Round2(sum)
}
