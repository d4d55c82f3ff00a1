package shopping

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"madfood/internal/money"
)

// ErrNameRequired is returned when an item is saved with a blank name.
var ErrNameRequired = errors.New("item name is required")

// Repository handles persistence of grocery lists and items.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new shopping repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// CreateList creates a grocery list.
func (r *Repository) CreateList(ctx context.Context, userID int64, name string) (*List, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}
	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO grocery_lists (user_id, name, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		userID, name, now, now)
	if err != nil {
		return nil, fmt.Errorf("failed to insert grocery list: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read list id: %w", err)
	}
	return &List{ID: id, UserID: userID, Name: name, CreatedAt: now, UpdatedAt: now}, nil
}

// RenameList updates a list's name.
func (r *Repository) RenameList(ctx context.Context, userID, listID int64, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameRequired
	}
	_, err := r.db.ExecContext(ctx,
		`UPDATE grocery_lists SET name = ?, updated_at = ? WHERE id = ? AND user_id = ?`,
		name, time.Now().UTC(), listID, userID)
	if err != nil {
		return fmt.Errorf("failed to rename grocery list: %w", err)
	}
	return nil
}

// DeleteList removes a list; its items cascade.
func (r *Repository) DeleteList(ctx context.Context, userID, listID int64) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM grocery_lists WHERE id = ? AND user_id = ?`, listID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete grocery list: %w", err)
	}
	return nil
}

// ListAll returns every list with items and totals, most recently updated
// list first, items in creation order.
func (r *Repository) ListAll(ctx context.Context, userID int64) ([]ListWithTotals, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, name, created_at, updated_at FROM grocery_lists
		 WHERE user_id = ? ORDER BY updated_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query grocery lists: %w", err)
	}
	defer rows.Close()

	var lists []ListWithTotals
	for rows.Next() {
		var l List
		if err := rows.Scan(&l.ID, &l.UserID, &l.Name, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan grocery list: %w", err)
		}
		lists = append(lists, ListWithTotals{List: l})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range lists {
		items, err := r.ListItems(ctx, lists[i].ID)
		if err != nil {
			return nil, err
		}
		totals := BasketTotals(items)
		lists[i].Items = items
		lists[i].Total = totals.Total
		lists[i].ToBuyTotal = totals.ToBuy
		lists[i].PurchasedTotal = totals.Purchased
	}
	return lists, nil
}

const itemColumns = `id, list_id, name, quantity, price, already_have_in_pantry,
	purchased, purchased_at, created_at, updated_at`

func scanItem(row interface{ Scan(...any) error }) (Item, error) {
	var item Item
	var purchasedAt sql.NullTime
	err := row.Scan(&item.ID, &item.ListID, &item.Name, &item.Quantity, &item.Price,
		&item.AlreadyHaveInPantry, &item.Purchased, &purchasedAt, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return Item{}, err
	}
	if purchasedAt.Valid {
		t := purchasedAt.Time
		item.PurchasedAt = &t
	}
	return item, nil
}

func (r *Repository) queryItems(ctx context.Context, query string, args ...any) ([]Item, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query grocery items: %w", err)
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan grocery item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// ListItems returns a list's items in creation order.
func (r *Repository) ListItems(ctx context.Context, listID int64) ([]Item, error) {
	return r.queryItems(ctx, fmt.Sprintf(
		`SELECT %s FROM grocery_list_items WHERE list_id = ? ORDER BY created_at ASC`,
		itemColumns), listID)
}

// ListItemsByRecency returns all of a user's items most recently updated
// first; the price index consumes this order.
func (r *Repository) ListItemsByRecency(ctx context.Context, userID int64) ([]Item, error) {
	return r.queryItems(ctx, fmt.Sprintf(
		`SELECT %s FROM grocery_list_items
		 WHERE list_id IN (SELECT id FROM grocery_lists WHERE user_id = ?)
		 ORDER BY updated_at DESC`, itemColumns), userID)
}

// ListItemsPurchasedBetween returns purchased items whose purchase timestamp
// falls in [start, end].
func (r *Repository) ListItemsPurchasedBetween(ctx context.Context, userID int64, start, end time.Time) ([]Item, error) {
	return r.queryItems(ctx, fmt.Sprintf(
		`SELECT %s FROM grocery_list_items
		 WHERE list_id IN (SELECT id FROM grocery_lists WHERE user_id = ?)
		 AND purchased = 1 AND purchased_at >= ? AND purchased_at <= ?`, itemColumns),
		userID, start, end)
}

// GetList returns one of the user's lists, or nil when the id does not exist
// or belongs to someone else.
func (r *Repository) GetList(ctx context.Context, userID, listID int64) (*List, error) {
	var l List
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, name, created_at, updated_at FROM grocery_lists
		 WHERE id = ? AND user_id = ?`, listID, userID).
		Scan(&l.ID, &l.UserID, &l.Name, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get grocery list: %w", err)
	}
	return &l, nil
}

// GetItem returns a single item from the user's lists, or nil when the id
// does not exist or belongs to someone else.
func (r *Repository) GetItem(ctx context.Context, userID, itemID int64) (*Item, error) {
	item, err := scanItem(r.db.QueryRowContext(ctx, fmt.Sprintf(
		`SELECT %s FROM grocery_list_items
		 WHERE id = ? AND list_id IN (SELECT id FROM grocery_lists WHERE user_id = ?)`,
		itemColumns), itemID, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get grocery item: %w", err)
	}
	return &item, nil
}

// SaveItem inserts or updates an item with the client-side coercion rules:
// name required, quantity and price clamped and rounded, already-have
// forcing purchased off, purchase timestamp stamped on transition.
func (r *Repository) SaveItem(ctx context.Context, item Item) (*Item, error) {
	item.Name = strings.TrimSpace(item.Name)
	if item.Name == "" {
		return nil, ErrNameRequired
	}

	item.Quantity = money.Round2(money.Clamp(item.Quantity))
	item.Price = money.Round2(money.Clamp(item.Price))
	if item.AlreadyHaveInPantry {
		item.Purchased = false
	}
	now := time.Now().UTC()
	if item.Purchased {
		if item.PurchasedAt == nil {
			item.PurchasedAt = &now
		}
	} else {
		item.PurchasedAt = nil
	}

	var purchasedAt sql.NullTime
	if item.PurchasedAt != nil {
		purchasedAt = sql.NullTime{Time: *item.PurchasedAt, Valid: true}
	}

	if item.ID == 0 {
		res, err := r.db.ExecContext(ctx, `INSERT INTO grocery_list_items
			(list_id, name, quantity, price, already_have_in_pantry, purchased, purchased_at, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			item.ListID, item.Name, item.Quantity, item.Price, item.AlreadyHaveInPantry,
			item.Purchased, purchasedAt, now, now)
		if err != nil {
			return nil, fmt.Errorf("failed to insert grocery item: %w", err)
		}
		item.ID, err = res.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("failed to read item id: %w", err)
		}
		item.CreatedAt = now
	} else {
		_, err := r.db.ExecContext(ctx, `UPDATE grocery_list_items SET
			name = ?, quantity = ?, price = ?, already_have_in_pantry = ?,
			purchased = ?, purchased_at = ?, updated_at = ?
			WHERE id = ?`,
			item.Name, item.Quantity, item.Price, item.AlreadyHaveInPantry,
			item.Purchased, purchasedAt, now, item.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to update grocery item: %w", err)
		}
	}
	item.UpdatedAt = now
	return &item, nil
}

// DeleteItem removes a single item from the user's lists.
func (r *Repository) DeleteItem(ctx context.Context, userID, itemID int64) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM grocery_list_items
		 WHERE id = ? AND list_id IN (SELECT id FROM grocery_lists WHERE user_id = ?)`,
		itemID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete grocery item: %w", err)
	}
	return nil
}
