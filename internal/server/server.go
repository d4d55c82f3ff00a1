// Package server exposes the application as a JSON HTTP API.
package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"madfood/internal/app"
	"madfood/internal/auth"
	"madfood/internal/log"
	"madfood/internal/pantry"
	"madfood/internal/planner"
	"madfood/internal/profile"
	"madfood/internal/recipe"
	"madfood/internal/shopping"
)

// Server routes HTTP requests to the application facade and repositories.
type Server struct {
	logger   *log.Logger
	app      *app.App
	auth     *auth.Service
	plans    *planner.Repository
	recipes  *recipe.Repository
	shopping *shopping.Repository
	pantry   *pantry.Repository
	profiles *profile.Repository
}

// New creates a Server.
func New(
	logger *log.Logger,
	application *app.App,
	authService *auth.Service,
	plans *planner.Repository,
	recipes *recipe.Repository,
	shoppingRepo *shopping.Repository,
	pantryRepo *pantry.Repository,
	profiles *profile.Repository,
) *Server {
	return &Server{
		logger:   logger,
		app:      application,
		auth:     authService,
		plans:    plans,
		recipes:  recipes,
		shopping: shoppingRepo,
		pantry:   pantryRepo,
		profiles: profiles,
	}
}

// Routes returns the full route table as an http.Handler.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, _ *http.Request) {
		s.respond(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("POST /api/auth/signup", s.handleSignUp)
	mux.HandleFunc("POST /api/auth/login", s.handleLogIn)

	protected := func(pattern string, h http.HandlerFunc) {
		mux.Handle(pattern, s.auth.Middleware(h))
	}

	protected("GET /api/dashboard/summary", s.handleDashboardSummary)
	protected("GET /api/calendar", s.handleCalendar)

	protected("GET /api/planner/days", s.handleListPlans)
	protected("PUT /api/planner/days/{date}", s.handleSavePlan)
	protected("DELETE /api/planner/days/{date}", s.handleDeletePlan)
	protected("GET /api/planner/favorites", s.handleListFavorites)

	protected("GET /api/recipes", s.handleListRecipes)
	protected("POST /api/recipes", s.handleSaveRecipe)
	protected("POST /api/recipes/import", s.handleImportRecipe)
	protected("GET /api/recipes/{id}", s.handleGetRecipe)
	protected("PUT /api/recipes/{id}", s.handleSaveRecipe)
	protected("DELETE /api/recipes/{id}", s.handleDeleteRecipe)

	protected("GET /api/shopping/lists", s.handleListShoppingLists)
	protected("POST /api/shopping/lists", s.handleCreateShoppingList)
	protected("PUT /api/shopping/lists/{id}", s.handleRenameShoppingList)
	protected("DELETE /api/shopping/lists/{id}", s.handleDeleteShoppingList)
	protected("POST /api/shopping/lists/{id}/items", s.handleSaveShoppingItem)
	protected("PUT /api/shopping/items/{id}", s.handleUpdateShoppingItem)
	protected("DELETE /api/shopping/items/{id}", s.handleDeleteShoppingItem)

	protected("GET /api/pantry", s.handleListPantry)
	protected("POST /api/pantry", s.handleSavePantryItem)
	protected("GET /api/pantry/value", s.handlePantryValue)
	protected("PUT /api/pantry/{id}", s.handleSavePantryItem)
	protected("DELETE /api/pantry/{id}", s.handleDeletePantryItem)

	protected("GET /api/profile", s.handleGetProfile)
	protected("PUT /api/profile", s.handleSaveProfile)

	protected("GET /api/reminder/preview", s.handleReminderPreview)
	protected("POST /api/reminder/send", s.handleSendReminder)

	return mux
}

func (s *Server) respond(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

// respondError maps domain errors onto HTTP statuses. Unknown errors are
// logged and reported as a generic 500 so internals never leak.
func (s *Server) respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		s.respond(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
	case errors.Is(err, auth.ErrEmailTaken):
		s.respond(w, http.StatusConflict, errorResponse{Error: err.Error()})
	case errors.Is(err, auth.ErrInvalidEmail),
		errors.Is(err, auth.ErrWeakPassword),
		errors.Is(err, shopping.ErrNameRequired),
		errors.Is(err, pantry.ErrNameRequired),
		errors.Is(err, recipe.ErrTitleRequired),
		errors.Is(err, recipe.ErrInvalidURL),
		errors.Is(err, app.ErrPhoneMissing),
		errors.Is(err, app.ErrRemindersDisabled):
		s.respond(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, recipe.ErrNoRecipeFound):
		s.respond(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
	case errors.Is(err, app.ErrNoReminderChannel):
		s.respond(w, http.StatusServiceUnavailable, errorResponse{Error: err.Error()})
	default:
		s.logger.Error("request failed", "error", err)
		s.respond(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		s.respond(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return false
	}
	return true
}
