package dailylog

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Handler handles HTTP requests for daily wellness logs.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// HandleWater handles POST /v1/log/water
func (h *Handler) HandleWater(w http.ResponseWriter, r *http.Request) {
	var req WaterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_payload", "Invalid request body")
		return
	}

	log, err := h.service.AddWater(r.Context(), req)
	if err != nil {
		writeServiceError(w, err, "Failed to log water")
		return
	}

	writeJSON(w, http.StatusOK, log)
}

// HandleSleep handles POST /v1/log/sleep
func (h *Handler) HandleSleep(w http.ResponseWriter, r *http.Request) {
	var req SleepRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_payload", "Invalid request body")
		return
	}

	log, err := h.service.SetSleep(r.Context(), req)
	if err != nil {
		writeServiceError(w, err, "Failed to log sleep")
		return
	}

	writeJSON(w, http.StatusOK, log)
}

// HandleWeight handles POST /v1/log/weight
func (h *Handler) HandleWeight(w http.ResponseWriter, r *http.Request) {
	var req WeightRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_payload", "Invalid request body")
		return
	}

	log, err := h.service.SetWeight(r.Context(), req)
	if err != nil {
		writeServiceError(w, err, "Failed to log weight")
		return
	}

	writeJSON(w, http.StatusOK, log)
}

// HandleExercise handles POST /v1/log/exercise
func (h *Handler) HandleExercise(w http.ResponseWriter, r *http.Request) {
	var req ExerciseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_payload", "Invalid request body")
		return
	}

	log, err := h.service.SetExercise(r.Context(), req)
	if err != nil {
		writeServiceError(w, err, "Failed to log exercise")
		return
	}

	writeJSON(w, http.StatusOK, log)
}

// HandleDay handles GET /v1/log/day?profile_id=&date=
func (h *Handler) HandleDay(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	profileID, err := uuid.Parse(q.Get("profile_id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "profile_id must be a UUID")
		return
	}

	log, err := h.service.Day(r.Context(), profileID, q.Get("date"))
	if err != nil {
		writeServiceError(w, err, "Failed to get daily log")
		return
	}

	writeJSON(w, http.StatusOK, log)
}

// HandleRange handles GET /v1/log/range?profile_id=&from=&to=&fallback_weight=
func (h *Handler) HandleRange(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	profileID, err := uuid.Parse(q.Get("profile_id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "profile_id must be a UUID")
		return
	}

	var fallbackWeight *float64
	if raw := q.Get("fallback_weight"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed <= 0 {
			writeError(w, http.StatusBadRequest, "invalid_request", "fallback_weight must be a positive number")
			return
		}
		fallbackWeight = &parsed
	}

	fromDate := q.Get("from")
	toDate := q.Get("to")

	days, err := h.service.Range(r.Context(), profileID, fromDate, toDate, fallbackWeight)
	if err != nil {
		writeServiceError(w, err, "Failed to get log range")
		return
	}

	writeJSON(w, http.StatusOK, RangeResponse{FromDate: fromDate, ToDate: toDate, Days: days})
}

func writeServiceError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, ErrInvalidDate):
		writeError(w, http.StatusBadRequest, "invalid_date", err.Error())
	case errors.Is(err, ErrInvalidRange):
		writeError(w, http.StatusBadRequest, "invalid_range", err.Error())
	case errors.Is(err, ErrRangeTooWide):
		writeError(w, http.StatusBadRequest, "range_too_wide", err.Error())
	case errors.Is(err, ErrInvalidWeight):
		writeError(w, http.StatusBadRequest, "invalid_weight", err.Error())
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
