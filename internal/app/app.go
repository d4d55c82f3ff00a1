// Package app wires the repositories and services into the operations the
// HTTP server and the reminder job expose.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"madfood/internal/costing"
	"madfood/internal/dateutil"
	"madfood/internal/log"
	"madfood/internal/money"
	"madfood/internal/motivation"
	"madfood/internal/pantry"
	"madfood/internal/planner"
	"madfood/internal/profile"
	"madfood/internal/recipe"
	"madfood/internal/reminder"
	"madfood/internal/shopping"
	"madfood/internal/storage"

	"golang.org/x/sync/errgroup"
)

// ErrPhoneMissing is returned when a reminder is requested without a phone
// number on the profile.
var ErrPhoneMissing = errors.New("add a phone number in settings first")

// ErrRemindersDisabled is returned when a reminder is requested while text
// reminders are switched off.
var ErrRemindersDisabled = errors.New("enable text reminders before sending")

// ErrNoReminderChannel is returned when no sender is configured.
var ErrNoReminderChannel = errors.New("no reminder channel configured")

// App bundles the application's services behind one facade.
type App struct {
	logger   *log.Logger
	plans    *planner.Repository
	recipes  *recipe.Repository
	shopping *shopping.Repository
	pantry   *pantry.Repository
	profiles *profile.Repository
	importer *recipe.Importer
	images   *storage.ImageStore
	sender   reminder.Sender
	remLog   *reminder.LogStore
}

// New creates the application facade. sender and images may be nil when the
// corresponding feature is not configured.
func New(
	logger *log.Logger,
	plans *planner.Repository,
	recipes *recipe.Repository,
	shoppingRepo *shopping.Repository,
	pantryRepo *pantry.Repository,
	profiles *profile.Repository,
	importer *recipe.Importer,
	images *storage.ImageStore,
	sender reminder.Sender,
	remLog *reminder.LogStore,
) *App {
	return &App{
		logger:   logger,
		plans:    plans,
		recipes:  recipes,
		shopping: shoppingRepo,
		pantry:   pantryRepo,
		profiles: profiles,
		importer: importer,
		images:   images,
		sender:   sender,
		remLog:   remLog,
	}
}

// WeeklySummary is the dashboard projection for the calendar week of one
// moment in time.
type WeeklySummary struct {
	PlannedDayCount     int               `json:"planned_day_count"`
	NextMeal            *planner.NextMeal `json:"next_meal,omitempty"`
	NextAvailableDate   string            `json:"next_available_date,omitempty"`
	WeeklySpend         float64           `json:"weekly_spend"`
	WeeklyEstimatedCost float64           `json:"weekly_estimated_cost"`
	Motivation          motivation.Daily  `json:"motivation"`
}

// BuildWeeklySummary computes the dashboard numbers for the week containing
// now. The two reads run concurrently; the aggregation itself is pure.
func (a *App) BuildWeeklySummary(ctx context.Context, userID int64, now time.Time) (*WeeklySummary, error) {
	weekStart := dateutil.StartOfWeek(now)
	weekEnd := dateutil.EndOfWeek(now)

	var plans []planner.PlannedMeal
	var purchased []shopping.Item

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		plans, err = a.plans.ListForRange(gctx, userID,
			dateutil.Format(weekStart, "yyyy-MM-dd"), dateutil.Format(weekEnd, "yyyy-MM-dd"))
		return err
	})
	g.Go(func() error {
		var err error
		purchased, err = a.shopping.ListItemsPurchasedBetween(gctx, userID,
			weekStart, weekEnd.Add(24*time.Hour-time.Millisecond))
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load weekly summary: %w", err)
	}

	lookup := func(recipeID int64) (string, error) {
		return a.recipes.GetTitle(ctx, userID, recipeID)
	}
	next, err := planner.NextPlannedMeal(plans, now, lookup)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve next meal: %w", err)
	}

	return &WeeklySummary{
		PlannedDayCount:     planner.PlannedDayCount(plans, now),
		NextMeal:            next,
		NextAvailableDate:   planner.NextAvailableDate(plans, now),
		WeeklySpend:         shopping.WeeklySpendTotal(purchased, now),
		WeeklyEstimatedCost: planner.WeeklyEstimatedCostTotal(plans, now),
		Motivation:          motivation.ForDay(now),
	}, nil
}

// SaveShoppingItem saves an item and keeps the pantry consistent: new items
// default their already-have flag from current pantry stock, and items
// flagged as already-have merge back into the pantry.
func (a *App) SaveShoppingItem(ctx context.Context, userID int64, item shopping.Item) (*shopping.Item, error) {
	if item.ID == 0 && !item.AlreadyHaveInPantry {
		match, err := a.pantry.HasInStockMatch(ctx, userID, item.Name)
		if err != nil {
			return nil, err
		}
		item.AlreadyHaveInPantry = match
	}

	saved, err := a.shopping.SaveItem(ctx, item)
	if err != nil {
		return nil, err
	}

	if saved.AlreadyHaveInPantry {
		err := a.pantry.UpsertFromShopping(ctx, userID, pantry.Incoming{
			Name:           saved.Name,
			Quantity:       saved.Quantity,
			EstimatedPrice: saved.Price,
		})
		if err != nil {
			return nil, err
		}
	}
	return saved, nil
}

// ImportRecipe scrapes the URL, saves the recipe, and mirrors its image into
// local storage. A failed image download keeps the recipe and logs a warning.
func (a *App) ImportRecipe(ctx context.Context, userID int64, rawURL string) (*recipe.WithIngredients, error) {
	imported, err := a.importer.Import(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	saved, err := a.recipes.Save(ctx, recipe.WithIngredients{
		Recipe: recipe.Recipe{
			UserID:   userID,
			Title:    imported.Title,
			Notes:    imported.Notes,
			ImageURL: imported.ImageURL,
		},
		Ingredients: imported.Ingredients,
	})
	if err != nil {
		return nil, err
	}

	if a.images != nil && imported.ImageURL != "" {
		if _, err := a.images.SaveFromURL(ctx, saved.ID, imported.ImageURL); err != nil {
			a.logger.Warn("failed to mirror recipe image", "recipe_id", saved.ID, "error", err)
		}
	}
	return saved, nil
}

// ReminderPreview is the rendered weekly reminder and its destination.
type ReminderPreview struct {
	PhoneNumber string `json:"phone_number"`
	Message     string `json:"message"`
}

// BuildReminderPreview renders the weekly reminder for the user, covering
// today through the end of the week. It fails when the profile has no phone
// number or reminders are disabled.
func (a *App) BuildReminderPreview(ctx context.Context, userID int64, now time.Time) (*ReminderPreview, error) {
	prof, err := a.profiles.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if prof.PhoneNumber == "" {
		return nil, ErrPhoneMissing
	}
	if !prof.TextRemindersEnabled {
		return nil, ErrRemindersDisabled
	}

	message, err := a.buildReminderMessage(ctx, userID, prof, now)
	if err != nil {
		return nil, err
	}
	return &ReminderPreview{PhoneNumber: prof.PhoneNumber, Message: message}, nil
}

func (a *App) buildReminderMessage(ctx context.Context, userID int64, prof profile.Profile, now time.Time) (string, error) {
	start := dateutil.Format(dateutil.DayFloor(now), "yyyy-MM-dd")
	end := dateutil.Format(dateutil.EndOfWeek(now), "yyyy-MM-dd")

	plans, err := a.plans.ListForRange(ctx, userID, start, end)
	if err != nil {
		return "", err
	}
	pantryItems, err := a.pantry.List(ctx, userID)
	if err != nil {
		return "", err
	}
	shoppingItems, err := a.shopping.ListItemsByRecency(ctx, userID)
	if err != nil {
		return "", err
	}

	var recipeIDs []int64
	seen := make(map[int64]struct{})
	for _, plan := range plans {
		if plan.RecipeID == 0 {
			continue
		}
		if _, dup := seen[plan.RecipeID]; dup {
			continue
		}
		seen[plan.RecipeID] = struct{}{}
		recipeIDs = append(recipeIDs, plan.RecipeID)
	}
	ingredientsByRecipe, err := a.recipes.IngredientsForRecipes(ctx, recipeIDs)
	if err != nil {
		return "", err
	}

	index := costing.NewPriceIndex(pantryItems, shoppingItems)

	var meals []reminder.MealEntry
	for _, plan := range plans {
		var title string
		if plan.RecipeID != 0 {
			title, err = a.recipes.GetTitle(ctx, userID, plan.RecipeID)
			if err != nil {
				return "", err
			}
		}
		meals = append(meals, reminder.MealEntry{
			Date:          plan.PlannedDate,
			Label:         reminder.MealLabel(title, plan.MealName),
			EstimatedCost: costing.InferMealCost(plan, ingredientsByRecipe[plan.RecipeID], index),
		})
	}

	var pending []reminder.ShoppingEntry
	for _, item := range shoppingItems {
		if item.AlreadyHaveInPantry || item.Purchased {
			continue
		}
		pending = append(pending, reminder.ShoppingEntry{
			Name:  item.Name,
			Total: money.LineTotal(item.Quantity, item.Price),
		})
	}

	return reminder.BuildWeeklyMessage(prof.GreetingName(), meals, pending), nil
}

// SendWeeklyReminder builds and delivers the reminder for one user, and
// records the delivery in the reminder log.
func (a *App) SendWeeklyReminder(ctx context.Context, userID int64, now time.Time) (string, error) {
	if a.sender == nil {
		return "", ErrNoReminderChannel
	}
	preview, err := a.BuildReminderPreview(ctx, userID, now)
	if err != nil {
		return "", err
	}

	if err := a.sender.Send(ctx, preview.PhoneNumber, preview.Message); err != nil {
		return "", fmt.Errorf("failed to send reminder: %w", err)
	}
	if a.remLog != nil {
		if err := a.remLog.Record(ctx, a.sender.Channel(), preview.PhoneNumber, len(preview.Message), now); err != nil {
			a.logger.Warn("failed to record reminder", "error", err)
		}
	}
	return preview.Message, nil
}

// SendWeeklyReminders delivers the reminder to every opted-in profile.
// Failures are logged per recipient and don't stop the batch; the count of
// successful sends is returned.
func (a *App) SendWeeklyReminders(ctx context.Context, now time.Time) (int, error) {
	if a.sender == nil {
		return 0, ErrNoReminderChannel
	}
	recipients, err := a.profiles.ListReminderRecipients(ctx)
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, prof := range recipients {
		if _, err := a.SendWeeklyReminder(ctx, prof.UserID, now); err != nil {
			a.logger.Error("reminder delivery failed", "user_id", prof.UserID, "error", err)
			continue
		}
		sent++
	}
	return sent, nil
}
