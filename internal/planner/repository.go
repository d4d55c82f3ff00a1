package planner

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"madfood/internal/dateutil"
	"madfood/internal/money"
)

// Repository handles persistence of planned meals.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new planned meal repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const planColumns = `id, user_id, planned_date, slot, meal_name, recipe_id,
	already_have_in_pantry, purchased, estimated_cost, is_favorite, created_at, updated_at`

func scanPlan(row interface{ Scan(...any) error }) (PlannedMeal, error) {
	var m PlannedMeal
	var mealName sql.NullString
	var recipeID sql.NullInt64
	err := row.Scan(&m.ID, &m.UserID, &m.PlannedDate, &m.Slot, &mealName, &recipeID,
		&m.AlreadyHaveInPantry, &m.Purchased, &m.EstimatedCost, &m.IsFavorite,
		&m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return PlannedMeal{}, err
	}
	m.MealName = mealName.String
	m.RecipeID = recipeID.Int64
	return m, nil
}

func (r *Repository) queryPlans(ctx context.Context, query string, args ...any) ([]PlannedMeal, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query planned meals: %w", err)
	}
	defer rows.Close()

	var plans []PlannedMeal
	for rows.Next() {
		m, err := scanPlan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan planned meal: %w", err)
		}
		plans = append(plans, m)
	}
	return plans, rows.Err()
}

// ListForRange returns rows with planned_date in [start, end] (ISO dates,
// both ends inclusive), ordered ascending by date. No slot filter is applied;
// SaveForDay only ever writes the main slot.
func (r *Repository) ListForRange(ctx context.Context, userID int64, start, end string) ([]PlannedMeal, error) {
	return r.queryPlans(ctx, fmt.Sprintf(`SELECT %s FROM weekly_plans
		WHERE user_id = ? AND planned_date >= ? AND planned_date <= ?
		ORDER BY planned_date ASC`, planColumns), userID, start, end)
}

// ListForMonth returns the rows for the calendar month of monthDate.
func (r *Repository) ListForMonth(ctx context.Context, userID int64, monthDate time.Time) ([]PlannedMeal, error) {
	return r.ListForRange(ctx, userID,
		dateutil.Format(dateutil.StartOfMonth(monthDate), "yyyy-MM-dd"),
		dateutil.Format(dateutil.EndOfMonth(monthDate), "yyyy-MM-dd"))
}

// ListFavorites returns up to limit favorite meals ordered by date.
func (r *Repository) ListFavorites(ctx context.Context, userID int64, limit int) ([]PlannedMeal, error) {
	if limit <= 0 {
		limit = 60
	}
	return r.queryPlans(ctx, fmt.Sprintf(`SELECT %s FROM weekly_plans
		WHERE user_id = ? AND slot = ? AND is_favorite = 1
		ORDER BY planned_date ASC LIMIT ?`, planColumns), userID, SlotMain, limit)
}

// SaveForDay upserts the main-slot row for a date. Input is coerced the way
// the web client did: meal name trimmed, already-have forces purchased off,
// cost clamped to a non-negative amount. A row left empty by the coercion is
// deleted instead of stored.
func (r *Repository) SaveForDay(ctx context.Context, userID int64, m PlannedMeal) error {
	m.MealName = strings.TrimSpace(m.MealName)
	if m.AlreadyHaveInPantry {
		m.Purchased = false
	}
	m.EstimatedCost = money.Round2(money.Clamp(m.EstimatedCost))
	m.Slot = SlotMain

	if m.IsEmpty() {
		return r.DeleteForDay(ctx, userID, m.PlannedDate)
	}

	var mealName sql.NullString
	if m.MealName != "" {
		mealName = sql.NullString{String: m.MealName, Valid: true}
	}
	var recipeID sql.NullInt64
	if m.RecipeID != 0 {
		recipeID = sql.NullInt64{Int64: m.RecipeID, Valid: true}
	}

	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `INSERT INTO weekly_plans
		(user_id, planned_date, slot, meal_name, recipe_id, already_have_in_pantry,
		 purchased, estimated_cost, is_favorite, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, planned_date, slot) DO UPDATE SET
			meal_name = excluded.meal_name,
			recipe_id = excluded.recipe_id,
			already_have_in_pantry = excluded.already_have_in_pantry,
			purchased = excluded.purchased,
			estimated_cost = excluded.estimated_cost,
			is_favorite = excluded.is_favorite,
			updated_at = excluded.updated_at`,
		userID, m.PlannedDate, m.Slot, mealName, recipeID, m.AlreadyHaveInPantry,
		m.Purchased, m.EstimatedCost, m.IsFavorite, now, now)
	if err != nil {
		return fmt.Errorf("failed to upsert planned meal: %w", err)
	}
	return nil
}

// DeleteForDay removes the main-slot row for a date, if any.
func (r *Repository) DeleteForDay(ctx context.Context, userID int64, plannedDate string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM weekly_plans WHERE user_id = ? AND planned_date = ? AND slot = ?`,
		userID, plannedDate, SlotMain)
	if err != nil {
		return fmt.Errorf("failed to delete planned meal: %w", err)
	}
	return nil
}
