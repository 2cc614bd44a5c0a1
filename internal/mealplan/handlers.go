package mealplan

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// Handler handles HTTP requests for the meal plan calendar.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// HandleAssign handles PUT /v1/meal/slots
func (h *Handler) HandleAssign(w http.ResponseWriter, r *http.Request) {
	var req AssignSlotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_payload", "Invalid request body")
		return
	}

	slot, err := h.service.Assign(r.Context(), req)
	if err != nil {
		writeServiceError(w, err, "Failed to assign meal slot")
		return
	}

	writeJSON(w, http.StatusOK, slot)
}

// HandleDelete handles DELETE /v1/meal/slots?profile_id=&date=&meal_type=
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := SlotKeyRequest{
		ProfileID: q.Get("profile_id"),
		Date:      q.Get("date"),
		MealType:  q.Get("meal_type"),
	}

	if err := h.service.Delete(r.Context(), req); err != nil {
		writeServiceError(w, err, "Failed to delete meal slot")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleToggle handles POST /v1/meal/slots/toggle
func (h *Handler) HandleToggle(w http.ResponseWriter, r *http.Request) {
	var req SlotKeyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_payload", "Invalid request body")
		return
	}

	slot, err := h.service.ToggleCompletion(r.Context(), req)
	if err != nil {
		writeServiceError(w, err, "Failed to toggle meal slot")
		return
	}
	if slot == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	writeJSON(w, http.StatusOK, slot)
}

// HandleDay handles GET /v1/meal/day?profile_id=&date=
func (h *Handler) HandleDay(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	profileID, err := uuid.Parse(q.Get("profile_id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "profile_id must be a UUID")
		return
	}

	date := q.Get("date")
	slots, err := h.service.Day(r.Context(), profileID, date)
	if err != nil {
		writeServiceError(w, err, "Failed to get meal day")
		return
	}

	writeJSON(w, http.StatusOK, DayResponse{Date: date, Slots: slots})
}

// HandleWeek handles GET /v1/meal/week?profile_id=&start_date=
func (h *Handler) HandleWeek(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	profileID, err := uuid.Parse(q.Get("profile_id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "profile_id must be a UUID")
		return
	}

	startDate := q.Get("start_date")
	slots, endDate, err := h.service.Week(r.Context(), profileID, startDate)
	if err != nil {
		writeServiceError(w, err, "Failed to get meal week")
		return
	}

	writeJSON(w, http.StatusOK, WeekResponse{StartDate: startDate, EndDate: endDate, Slots: slots})
}

// HandleGenerate handles POST /v1/meal/generate
func (h *Handler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_payload", "Invalid request body")
		return
	}

	slots, err := h.service.Generate(r.Context(), req)
	if err != nil {
		writeServiceError(w, err, "Failed to generate meal plan")
		return
	}

	writeJSON(w, http.StatusOK, WeekResponse{
		StartDate: req.StartDate,
		Slots:     slots,
	})
}

func writeServiceError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, ErrInvalidDate):
		writeError(w, http.StatusBadRequest, "invalid_date", err.Error())
	case errors.Is(err, ErrInvalidMealType):
		writeError(w, http.StatusBadRequest, "invalid_meal_type", "meal_type must be breakfast, lunch, snack or dinner")
	case errors.Is(err, ErrRecipeNotFound):
		writeError(w, http.StatusNotFound, "recipe_not_found", "Recipe not found")
	case strings.HasPrefix(err.Error(), "invalid_request: "):
		writeError(w, http.StatusBadRequest, "invalid_request", strings.TrimPrefix(err.Error(), "invalid_request: "))
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", fallback)
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response in the standard format.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]interface{}{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
