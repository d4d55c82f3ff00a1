package recipe

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrTitleRequired is returned when a recipe is saved without a title.
var ErrTitleRequired = errors.New("recipe title is required")

// Repository is a database-backed repository for recipes.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new Repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Save inserts or updates a recipe and replaces its ingredient rows
// wholesale, dropping blank names, the way the web client saved edits.
func (r *Repository) Save(ctx context.Context, rec WithIngredients) (*WithIngredients, error) {
	rec.Title = strings.TrimSpace(rec.Title)
	if rec.Title == "" {
		return nil, ErrTitleRequired
	}
	rec.Notes = strings.TrimSpace(rec.Notes)
	rec.ImageURL = strings.TrimSpace(rec.ImageURL)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin recipe save: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	if rec.ID == 0 {
		res, err := tx.ExecContext(ctx, `INSERT INTO recipes
			(user_id, title, notes, image_url, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?)`,
			rec.UserID, rec.Title, nullable(rec.Notes), nullable(rec.ImageURL), now, now)
		if err != nil {
			return nil, fmt.Errorf("failed to insert recipe: %w", err)
		}
		rec.ID, err = res.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("failed to read recipe id: %w", err)
		}
		rec.CreatedAt = now
	} else {
		_, err := tx.ExecContext(ctx, `UPDATE recipes SET
			title = ?, notes = ?, image_url = ?, updated_at = ?
			WHERE id = ? AND user_id = ?`,
			rec.Title, nullable(rec.Notes), nullable(rec.ImageURL), now, rec.ID, rec.UserID)
		if err != nil {
			return nil, fmt.Errorf("failed to update recipe: %w", err)
		}
	}
	rec.UpdatedAt = now

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM recipe_ingredients WHERE recipe_id = ?`, rec.ID); err != nil {
		return nil, fmt.Errorf("failed to clear recipe ingredients: %w", err)
	}

	var kept []Ingredient
	for _, ing := range rec.Ingredients {
		ing.Name = strings.TrimSpace(ing.Name)
		if ing.Name == "" {
			continue
		}
		ing.Quantity = strings.TrimSpace(ing.Quantity)
		ing.Unit = strings.TrimSpace(ing.Unit)
		ing.RecipeID = rec.ID
		ing.SortOrder = len(kept)

		res, err := tx.ExecContext(ctx, `INSERT INTO recipe_ingredients
			(recipe_id, name, quantity, unit, sort_order) VALUES (?, ?, ?, ?, ?)`,
			ing.RecipeID, ing.Name, nullable(ing.Quantity), nullable(ing.Unit), ing.SortOrder)
		if err != nil {
			return nil, fmt.Errorf("failed to insert recipe ingredient: %w", err)
		}
		ing.ID, err = res.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("failed to read ingredient id: %w", err)
		}
		kept = append(kept, ing)
	}
	rec.Ingredients = kept

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit recipe save: %w", err)
	}
	return &rec, nil
}

// Get retrieves a recipe with its ingredients. A missing recipe returns
// (nil, nil).
func (r *Repository) Get(ctx context.Context, userID, id int64) (*WithIngredients, error) {
	var rec WithIngredients
	var notes, imageURL sql.NullString
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, title, notes, image_url, created_at, updated_at
		 FROM recipes WHERE id = ? AND user_id = ?`, id, userID).
		Scan(&rec.ID, &rec.UserID, &rec.Title, &notes, &imageURL, &rec.CreatedAt, &rec.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get recipe: %w", err)
	}
	rec.Notes = notes.String
	rec.ImageURL = imageURL.String

	rec.Ingredients, err = r.ingredientsFor(ctx, rec.ID)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// GetTitle resolves a recipe id to its title; missing recipes resolve to "".
func (r *Repository) GetTitle(ctx context.Context, userID, id int64) (string, error) {
	var title string
	err := r.db.QueryRowContext(ctx,
		`SELECT title FROM recipes WHERE id = ? AND user_id = ?`, id, userID).Scan(&title)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get recipe title: %w", err)
	}
	return title, nil
}

// List returns all recipes with ingredients, most recently updated first.
func (r *Repository) List(ctx context.Context, userID int64) ([]WithIngredients, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, title, notes, image_url, created_at, updated_at
		 FROM recipes WHERE user_id = ? ORDER BY updated_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	defer rows.Close()

	var recipes []WithIngredients
	for rows.Next() {
		var rec WithIngredients
		var notes, imageURL sql.NullString
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Title, &notes, &imageURL,
			&rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan recipe: %w", err)
		}
		rec.Notes = notes.String
		rec.ImageURL = imageURL.String
		recipes = append(recipes, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range recipes {
		recipes[i].Ingredients, err = r.ingredientsFor(ctx, recipes[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return recipes, nil
}

// IngredientsForRecipes returns ingredients grouped by recipe id.
func (r *Repository) IngredientsForRecipes(ctx context.Context, recipeIDs []int64) (map[int64][]Ingredient, error) {
	byRecipe := make(map[int64][]Ingredient)
	for _, id := range recipeIDs {
		ings, err := r.ingredientsFor(ctx, id)
		if err != nil {
			return nil, err
		}
		byRecipe[id] = ings
	}
	return byRecipe, nil
}

// Delete removes a recipe; ingredient rows cascade.
func (r *Repository) Delete(ctx context.Context, userID, id int64) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM recipes WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete recipe: %w", err)
	}
	return nil
}

func (r *Repository) ingredientsFor(ctx context.Context, recipeID int64) ([]Ingredient, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, recipe_id, name, quantity, unit, sort_order
		 FROM recipe_ingredients WHERE recipe_id = ? ORDER BY sort_order ASC`, recipeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query ingredients: %w", err)
	}
	defer rows.Close()

	var ingredients []Ingredient
	for rows.Next() {
		var ing Ingredient
		var quantity, unit sql.NullString
		if err := rows.Scan(&ing.ID, &ing.RecipeID, &ing.Name, &quantity, &unit, &ing.SortOrder); err != nil {
			return nil, fmt.Errorf("failed to scan ingredient: %w", err)
		}
		ing.Quantity = quantity.String
		ing.Unit = unit.String
		ingredients = append(ingredients, ing)
	}
	return ingredients, rows.Err()
}

func nullable(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
