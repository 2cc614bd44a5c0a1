package shopping

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// Handler handles HTTP requests for the shopping list.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// HandleRegenerate handles POST /v1/shopping/regenerate
func (h *Handler) HandleRegenerate(w http.ResponseWriter, r *http.Request) {
	var req RegenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_payload", "Invalid request body")
		return
	}

	items, err := h.service.Regenerate(r.Context(), req)
	if err != nil {
		writeServiceError(w, err, "Failed to regenerate shopping list")
		return
	}

	writeJSON(w, http.StatusOK, ListResponse{Items: items})
}

// HandleList handles GET /v1/shopping?profile_id=
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	profileID, err := uuid.Parse(r.URL.Query().Get("profile_id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "profile_id must be a UUID")
		return
	}

	items, err := h.service.List(r.Context(), profileID)
	if err != nil {
		writeServiceError(w, err, "Failed to list shopping items")
		return
	}

	writeJSON(w, http.StatusOK, ListResponse{Items: items})
}

// HandleAddItem handles POST /v1/shopping/items
func (h *Handler) HandleAddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_payload", "Invalid request body")
		return
	}

	item, err := h.service.AddManual(r.Context(), req)
	if err != nil {
		writeServiceError(w, err, "Failed to add shopping item")
		return
	}

	writeJSON(w, http.StatusCreated, item)
}

// HandleToggle handles POST /v1/shopping/items/toggle
func (h *Handler) HandleToggle(w http.ResponseWriter, r *http.Request) {
	var req ToggleItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_payload", "Invalid request body")
		return
	}

	item, err := h.service.Toggle(r.Context(), req)
	if err != nil {
		writeServiceError(w, err, "Failed to toggle shopping item")
		return
	}
	if item == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	writeJSON(w, http.StatusOK, item)
}

// HandleDeleteItem handles DELETE /v1/shopping/items/{id}
func (h *Handler) HandleDeleteItem(w http.ResponseWriter, r *http.Request) {
	itemID := r.PathValue("id")
	if itemID == "" {
		writeError(w, http.StatusBadRequest, "invalid_id", "Item ID is required")
		return
	}

	if err := h.service.Delete(r.Context(), itemID); err != nil {
		writeServiceError(w, err, "Failed to delete shopping item")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleClearChecked handles POST /v1/shopping/clear-checked?profile_id=
func (h *Handler) HandleClearChecked(w http.ResponseWriter, r *http.Request) {
	profileID, err := uuid.Parse(r.URL.Query().Get("profile_id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "profile_id must be a UUID")
		return
	}

	removed, err := h.service.ClearChecked(r.Context(), profileID)
	if err != nil {
		writeServiceError(w, err, "Failed to clear checked items")
		return
	}

	writeJSON(w, http.StatusOK, ClearCheckedResponse{Removed: removed})
}

// HandleClear handles DELETE /v1/shopping?profile_id=
func (h *Handler) HandleClear(w http.ResponseWriter, r *http.Request) {
	profileID, err := uuid.Parse(r.URL.Query().Get("profile_id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "profile_id must be a UUID")
		return
	}

	if err := h.service.Clear(r.Context(), profileID); err != nil {
		writeServiceError(w, err, "Failed to clear shopping list")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func writeServiceError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, ErrEmptyName):
		writeError(w, http.StatusBadRequest, "empty_name", err.Error())
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
