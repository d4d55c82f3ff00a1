// Package pantry tracks household stock and the merge rules that keep it
// consistent with shopping activity.
package pantry

import (
	"strings"
	"time"

	"madfood/internal/money"
)

// Item is one pantry entry. Names are matched case-insensitively.
type Item struct {
	ID             int64     `json:"id"`
	UserID         int64     `json:"user_id"`
	Name           string    `json:"name"`
	Quantity       float64   `json:"quantity"`
	Unit           string    `json:"unit,omitempty"`
	EstimatedPrice float64   `json:"estimated_price"` // per unit
	InStock        bool      `json:"in_stock"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Incoming is the shopping-side payload for the pantry upsert side effect.
type Incoming struct {
	Name           string
	Quantity       float64
	EstimatedPrice float64
}

// NormalizeName is the canonical pantry key: trimmed, lowercased.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// MergeFromShopping applies the merge-not-replace policy to an existing
// pantry item: quantity becomes the max of both sides so a small purchase
// never shrinks a larger stock, the price is overwritten only when the
// incoming price is positive, and the item is forced in stock.
func MergeFromShopping(existing Item, incoming Incoming) Item {
	merged := existing
	if q := money.Clamp(incoming.Quantity); q > merged.Quantity {
		merged.Quantity = money.Round2(q)
	}
	if incoming.EstimatedPrice > 0 {
		merged.EstimatedPrice = money.Round2(money.Clamp(incoming.EstimatedPrice))
	}
	merged.InStock = true
	return merged
}

// EstimatedValue sums quantity×price over in-stock items only, rounded once.
func EstimatedValue(items []Item) float64 {
	var sum float64
	for _, item := range items {
		if !item.InStock {
			continue
		}
		sum += money.LineTotal(item.Quantity, item.EstimatedPrice)
	}
	return money.Round2(sum)
}
