package nutrition

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
)

// Handler handles HTTP requests for derived nutrition views.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// HandleDay handles GET /v1/nutrition/day?profile_id=&date=
func (h *Handler) HandleDay(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	profileID, err := uuid.Parse(q.Get("profile_id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "profile_id must be a UUID")
		return
	}

	summary, err := h.service.DaySummary(r.Context(), profileID, q.Get("date"))
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidDate):
			writeError(w, http.StatusBadRequest, "invalid_date", err.Error())
		case errors.Is(err, ErrProfileNotFound):
			writeError(w, http.StatusNotFound, "profile_not_found", "Profile not found")
		default:
			writeError(w, http.StatusInternalServerError, "internal_error", "Failed to compute nutrition summary")
		}
		return
	}

	writeJSON(w, http.StatusOK, summary)
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
