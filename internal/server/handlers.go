package server

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"madfood/internal/auth"
	"madfood/internal/calendar"
	"madfood/internal/dateutil"
	"madfood/internal/pantry"
	"madfood/internal/planner"
	"madfood/internal/profile"
	"madfood/internal/recipe"
	"madfood/internal/shopping"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleSignUp(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !s.decode(w, r, &req) {
		return
	}
	session, err := s.auth.SignUp(r.Context(), req.Email, req.Password)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusCreated, session)
}

func (s *Server) handleLogIn(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !s.decode(w, r, &req) {
		return
	}
	session, err := s.auth.LogIn(r.Context(), req.Email, req.Password)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusOK, session)
}

func (s *Server) handleDashboardSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.app.BuildWeeklySummary(r.Context(), auth.UserID(r.Context()), time.Now())
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusOK, summary)
}

type calendarResponse struct {
	MonthLabel    string                `json:"month_label"`
	WeekdayLabels []string              `json:"weekday_labels"`
	Cells         []calendar.DayCell    `json:"cells"`
	Plans         []planner.PlannedMeal `json:"plans"`
}

func (s *Server) handleCalendar(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	monthDate := now
	if month := r.URL.Query().Get("month"); month != "" {
		parsed, err := dateutil.ParseISO(month + "-01")
		if err != nil {
			s.respond(w, http.StatusBadRequest, errorResponse{Error: "month must be yyyy-MM"})
			return
		}
		monthDate = parsed
	}

	cells := calendar.BuildMonthGrid(monthDate, now)
	plans, err := s.plans.ListForMonth(r.Context(), auth.UserID(r.Context()), monthDate)
	if err != nil {
		s.respondError(w, err)
		return
	}

	s.respond(w, http.StatusOK, calendarResponse{
		MonthLabel:    dateutil.Format(monthDate, "MMMM yyyy"),
		WeekdayLabels: calendar.WeekdayLabels,
		Cells:         cells,
		Plans:         plans,
	})
}

func (s *Server) handleListPlans(w http.ResponseWriter, r *http.Request) {
	start := r.URL.Query().Get("start")
	end := r.URL.Query().Get("end")
	if _, err := dateutil.ParseISO(start); err != nil {
		s.respond(w, http.StatusBadRequest, errorResponse{Error: "start must be yyyy-MM-dd"})
		return
	}
	if _, err := dateutil.ParseISO(end); err != nil {
		s.respond(w, http.StatusBadRequest, errorResponse{Error: "end must be yyyy-MM-dd"})
		return
	}

	plans, err := s.plans.ListForRange(r.Context(), auth.UserID(r.Context()), start, end)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusOK, plans)
}

func (s *Server) handleSavePlan(w http.ResponseWriter, r *http.Request) {
	date := r.PathValue("date")
	if _, err := dateutil.ParseISO(date); err != nil {
		s.respond(w, http.StatusBadRequest, errorResponse{Error: "date must be yyyy-MM-dd"})
		return
	}

	var meal planner.PlannedMeal
	if !s.decode(w, r, &meal) {
		return
	}
	meal.UserID = auth.UserID(r.Context())
	meal.PlannedDate = date

	if err := s.plans.SaveForDay(r.Context(), meal.UserID, meal); err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusNoContent, nil)
}

func (s *Server) handleDeletePlan(w http.ResponseWriter, r *http.Request) {
	date := r.PathValue("date")
	if _, err := dateutil.ParseISO(date); err != nil {
		s.respond(w, http.StatusBadRequest, errorResponse{Error: "date must be yyyy-MM-dd"})
		return
	}
	if err := s.plans.DeleteForDay(r.Context(), auth.UserID(r.Context()), date); err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusNoContent, nil)
}

func (s *Server) handleListFavorites(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	favorites, err := s.plans.ListFavorites(r.Context(), auth.UserID(r.Context()), limit)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusOK, favorites)
}

func (s *Server) handleListRecipes(w http.ResponseWriter, r *http.Request) {
	recipes, err := s.recipes.List(r.Context(), auth.UserID(r.Context()))
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusOK, recipes)
}

func (s *Server) handleGetRecipe(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		s.respond(w, http.StatusBadRequest, errorResponse{Error: "invalid recipe id"})
		return
	}
	rec, err := s.recipes.Get(r.Context(), auth.UserID(r.Context()), id)
	if err != nil {
		s.respondError(w, err)
		return
	}
	if rec == nil {
		s.respond(w, http.StatusNotFound, errorResponse{Error: "recipe not found"})
		return
	}
	s.respond(w, http.StatusOK, rec)
}

func (s *Server) handleSaveRecipe(w http.ResponseWriter, r *http.Request) {
	var rec recipe.WithIngredients
	if !s.decode(w, r, &rec) {
		return
	}
	rec.UserID = auth.UserID(r.Context())
	if idValue := r.PathValue("id"); idValue != "" {
		id, err := strconv.ParseInt(idValue, 10, 64)
		if err != nil {
			s.respond(w, http.StatusBadRequest, errorResponse{Error: "invalid recipe id"})
			return
		}
		rec.ID = id
	}

	saved, err := s.recipes.Save(r.Context(), rec)
	if err != nil {
		s.respondError(w, err)
		return
	}
	status := http.StatusOK
	if rec.ID == 0 {
		status = http.StatusCreated
	}
	s.respond(w, status, saved)
}

func (s *Server) handleDeleteRecipe(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		s.respond(w, http.StatusBadRequest, errorResponse{Error: "invalid recipe id"})
		return
	}
	if err := s.recipes.Delete(r.Context(), auth.UserID(r.Context()), id); err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusNoContent, nil)
}

func (s *Server) handleImportRecipe(w http.ResponseWriter, r *http.Request) {
	var req struct {
		URL string `json:"url"`
	}
	if !s.decode(w, r, &req) {
		return
	}
	saved, err := s.app.ImportRecipe(r.Context(), auth.UserID(r.Context()), req.URL)
	if err != nil {
		// Anything other than a validation or not-found failure means the
		// upstream fetch or extraction broke.
		if errors.Is(err, recipe.ErrInvalidURL) || errors.Is(err, recipe.ErrNoRecipeFound) {
			s.respondError(w, err)
			return
		}
		s.logger.Error("recipe import failed", "error", err)
		s.respond(w, http.StatusBadGateway, errorResponse{Error: "failed to import recipe"})
		return
	}
	s.respond(w, http.StatusCreated, saved)
}

func (s *Server) handleListShoppingLists(w http.ResponseWriter, r *http.Request) {
	lists, err := s.shopping.ListAll(r.Context(), auth.UserID(r.Context()))
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusOK, lists)
}

func (s *Server) handleCreateShoppingList(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if !s.decode(w, r, &req) {
		return
	}
	list, err := s.shopping.CreateList(r.Context(), auth.UserID(r.Context()), req.Name)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusCreated, list)
}

func (s *Server) handleRenameShoppingList(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		s.respond(w, http.StatusBadRequest, errorResponse{Error: "invalid list id"})
		return
	}
	var req struct {
		Name string `json:"name"`
	}
	if !s.decode(w, r, &req) {
		return
	}
	if err := s.shopping.RenameList(r.Context(), auth.UserID(r.Context()), id, req.Name); err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusNoContent, nil)
}

func (s *Server) handleDeleteShoppingList(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		s.respond(w, http.StatusBadRequest, errorResponse{Error: "invalid list id"})
		return
	}
	if err := s.shopping.DeleteList(r.Context(), auth.UserID(r.Context()), id); err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusNoContent, nil)
}

func (s *Server) handleSaveShoppingItem(w http.ResponseWriter, r *http.Request) {
	listID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		s.respond(w, http.StatusBadRequest, errorResponse{Error: "invalid list id"})
		return
	}
	userID := auth.UserID(r.Context())
	list, err := s.shopping.GetList(r.Context(), userID, listID)
	if err != nil {
		s.respondError(w, err)
		return
	}
	if list == nil {
		s.respond(w, http.StatusNotFound, errorResponse{Error: "list not found"})
		return
	}

	var item shopping.Item
	if !s.decode(w, r, &item) {
		return
	}
	item.ID = 0
	item.ListID = listID

	saved, err := s.app.SaveShoppingItem(r.Context(), userID, item)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusCreated, saved)
}

func (s *Server) handleUpdateShoppingItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		s.respond(w, http.StatusBadRequest, errorResponse{Error: "invalid item id"})
		return
	}
	userID := auth.UserID(r.Context())
	existing, err := s.shopping.GetItem(r.Context(), userID, id)
	if err != nil {
		s.respondError(w, err)
		return
	}
	if existing == nil {
		s.respond(w, http.StatusNotFound, errorResponse{Error: "item not found"})
		return
	}

	var item shopping.Item
	if !s.decode(w, r, &item) {
		return
	}
	item.ID = id
	item.ListID = existing.ListID
	item.PurchasedAt = existing.PurchasedAt

	saved, err := s.app.SaveShoppingItem(r.Context(), userID, item)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusOK, saved)
}

func (s *Server) handleDeleteShoppingItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		s.respond(w, http.StatusBadRequest, errorResponse{Error: "invalid item id"})
		return
	}
	userID := auth.UserID(r.Context())
	existing, err := s.shopping.GetItem(r.Context(), userID, id)
	if err != nil {
		s.respondError(w, err)
		return
	}
	if existing == nil {
		s.respond(w, http.StatusNotFound, errorResponse{Error: "item not found"})
		return
	}
	if err := s.shopping.DeleteItem(r.Context(), userID, id); err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusNoContent, nil)
}

func (s *Server) handleListPantry(w http.ResponseWriter, r *http.Request) {
	items, err := s.pantry.List(r.Context(), auth.UserID(r.Context()))
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusOK, items)
}

func (s *Server) handlePantryValue(w http.ResponseWriter, r *http.Request) {
	items, err := s.pantry.List(r.Context(), auth.UserID(r.Context()))
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusOK, map[string]float64{"estimated_value": pantry.EstimatedValue(items)})
}

func (s *Server) handleSavePantryItem(w http.ResponseWriter, r *http.Request) {
	var item pantry.Item
	if !s.decode(w, r, &item) {
		return
	}
	item.UserID = auth.UserID(r.Context())
	if idValue := r.PathValue("id"); idValue != "" {
		id, err := strconv.ParseInt(idValue, 10, 64)
		if err != nil {
			s.respond(w, http.StatusBadRequest, errorResponse{Error: "invalid pantry item id"})
			return
		}
		item.ID = id
	} else {
		item.ID = 0
	}

	saved, err := s.pantry.Save(r.Context(), item)
	if err != nil {
		s.respondError(w, err)
		return
	}
	status := http.StatusOK
	if item.ID == 0 {
		status = http.StatusCreated
	}
	s.respond(w, status, saved)
}

func (s *Server) handleDeletePantryItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		s.respond(w, http.StatusBadRequest, errorResponse{Error: "invalid pantry item id"})
		return
	}
	if err := s.pantry.Delete(r.Context(), auth.UserID(r.Context()), id); err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusNoContent, nil)
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	prof, err := s.profiles.Get(r.Context(), auth.UserID(r.Context()))
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusOK, prof)
}

func (s *Server) handleSaveProfile(w http.ResponseWriter, r *http.Request) {
	var prof profile.Profile
	if !s.decode(w, r, &prof) {
		return
	}
	prof.UserID = auth.UserID(r.Context())

	saved, err := s.profiles.Save(r.Context(), prof)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusOK, saved)
}

func (s *Server) handleReminderPreview(w http.ResponseWriter, r *http.Request) {
	preview, err := s.app.BuildReminderPreview(r.Context(), auth.UserID(r.Context()), time.Now())
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusOK, preview)
}

func (s *Server) handleSendReminder(w http.ResponseWriter, r *http.Request) {
	message, err := s.app.SendWeeklyReminder(r.Context(), auth.UserID(r.Context()), time.Now())
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respond(w, http.StatusOK, map[string]string{"message": message})
}
