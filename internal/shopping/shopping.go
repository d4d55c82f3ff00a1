// Package shopping owns grocery lists, their items, and the basket totals.
package shopping

import "time"

// List is one grocery list.
type List struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Item is one line on a grocery list. PurchasedAt is set exactly when
// Purchased is true.
type Item struct {
	ID                  int64      `json:"id"`
	ListID              int64      `json:"list_id"`
	Name                string     `json:"name"`
	Quantity            float64    `json:"quantity"`
	Price               float64    `json:"price"` // per unit
	AlreadyHaveInPantry bool       `json:"already_have_in_pantry"`
	Purchased           bool       `json:"purchased"`
	PurchasedAt         *time.Time `json:"purchased_at,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

// ListWithTotals bundles a list, its items, and the three basket totals.
type ListWithTotals struct {
	List
	Items          []Item  `json:"items"`
	Total          float64 `json:"total"`
	ToBuyTotal     float64 `json:"to_buy_total"`
	PurchasedTotal float64 `json:"purchased_total"`
}
