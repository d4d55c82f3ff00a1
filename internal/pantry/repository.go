package pantry

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"madfood/internal/money"
)

// ErrNameRequired is returned when a pantry item is saved with a blank name.
var ErrNameRequired = errors.New("pantry item name is required")

// Repository handles persistence of pantry items.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new pantry repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const itemColumns = `id, user_id, name, quantity, unit, estimated_price, in_stock, created_at, updated_at`

func scanItem(row interface{ Scan(...any) error }) (Item, error) {
	var item Item
	var unit sql.NullString
	err := row.Scan(&item.ID, &item.UserID, &item.Name, &item.Quantity, &unit,
		&item.EstimatedPrice, &item.InStock, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return Item{}, err
	}
	item.Unit = unit.String
	return item, nil
}

// List returns all pantry items, in-stock first, then by name.
func (r *Repository) List(ctx context.Context, userID int64) ([]Item, error) {
	rows, err := r.db.QueryContext(ctx, fmt.Sprintf(
		`SELECT %s FROM pantry_items WHERE user_id = ?
		 ORDER BY in_stock DESC, name COLLATE NOCASE ASC`, itemColumns), userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query pantry items: %w", err)
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pantry item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// Save inserts or updates a pantry item with coerced numeric fields.
func (r *Repository) Save(ctx context.Context, item Item) (*Item, error) {
	item.Name = strings.TrimSpace(item.Name)
	if item.Name == "" {
		return nil, ErrNameRequired
	}
	item.Quantity = money.Round2(money.Clamp(item.Quantity))
	item.EstimatedPrice = money.Round2(money.Clamp(item.EstimatedPrice))
	item.Unit = strings.TrimSpace(item.Unit)

	var unit sql.NullString
	if item.Unit != "" {
		unit = sql.NullString{String: item.Unit, Valid: true}
	}

	now := time.Now().UTC()
	if item.ID == 0 {
		res, err := r.db.ExecContext(ctx, `INSERT INTO pantry_items
			(user_id, name, quantity, unit, estimated_price, in_stock, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			item.UserID, item.Name, item.Quantity, unit, item.EstimatedPrice, item.InStock, now, now)
		if err != nil {
			return nil, fmt.Errorf("failed to insert pantry item: %w", err)
		}
		item.ID, err = res.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("failed to read pantry item id: %w", err)
		}
		item.CreatedAt = now
	} else {
		_, err := r.db.ExecContext(ctx, `UPDATE pantry_items SET
			name = ?, quantity = ?, unit = ?, estimated_price = ?, in_stock = ?, updated_at = ?
			WHERE id = ? AND user_id = ?`,
			item.Name, item.Quantity, unit, item.EstimatedPrice, item.InStock, now,
			item.ID, item.UserID)
		if err != nil {
			return nil, fmt.Errorf("failed to update pantry item: %w", err)
		}
	}
	item.UpdatedAt = now
	return &item, nil
}

// Delete removes a pantry item.
func (r *Repository) Delete(ctx context.Context, userID, itemID int64) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM pantry_items WHERE id = ? AND user_id = ?`, itemID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete pantry item: %w", err)
	}
	return nil
}

// HasInStockMatch reports whether an in-stock item matches the name
// case-insensitively. New shopping items default their already-have flag
// from this.
func (r *Repository) HasInStockMatch(ctx context.Context, userID int64, name string) (bool, error) {
	clean := strings.TrimSpace(name)
	if clean == "" {
		return false, nil
	}
	var id int64
	err := r.db.QueryRowContext(ctx,
		`SELECT id FROM pantry_items
		 WHERE user_id = ? AND name = ? COLLATE NOCASE AND in_stock = 1 LIMIT 1`,
		userID, clean).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check pantry match: %w", err)
	}
	return true, nil
}

// UpsertFromShopping applies the shopping "already have" side effect as one
// logical read-match-then-write: merge into the case-insensitive match when
// one exists, otherwise create a new in-stock item.
func (r *Repository) UpsertFromShopping(ctx context.Context, userID int64, incoming Incoming) error {
	clean := strings.TrimSpace(incoming.Name)
	if clean == "" {
		return nil
	}
	incoming.Name = clean

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin pantry upsert: %w", err)
	}
	defer tx.Rollback()

	existing, err := scanItem(tx.QueryRowContext(ctx, fmt.Sprintf(
		`SELECT %s FROM pantry_items
		 WHERE user_id = ? AND name = ? COLLATE NOCASE LIMIT 1`, itemColumns),
		userID, clean))

	now := time.Now().UTC()
	switch {
	case errors.Is(err, sql.ErrNoRows):
		_, err = tx.ExecContext(ctx, `INSERT INTO pantry_items
			(user_id, name, quantity, estimated_price, in_stock, created_at, updated_at)
			VALUES (?, ?, ?, ?, 1, ?, ?)`,
			userID, clean,
			money.Round2(money.Clamp(incoming.Quantity)),
			money.Round2(money.Clamp(incoming.EstimatedPrice)),
			now, now)
		if err != nil {
			return fmt.Errorf("failed to insert pantry item from shopping: %w", err)
		}
	case err != nil:
		return fmt.Errorf("failed to look up pantry match: %w", err)
	default:
		merged := MergeFromShopping(existing, incoming)
		_, err = tx.ExecContext(ctx, `UPDATE pantry_items SET
			quantity = ?, estimated_price = ?, in_stock = 1, updated_at = ?
			WHERE id = ?`,
			merged.Quantity, merged.EstimatedPrice, now, merged.ID)
		if err != nil {
			return fmt.Errorf("failed to merge pantry item from shopping: %w", err)
		}
	}

	return tx.Commit()
}
