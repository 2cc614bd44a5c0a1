package recipes

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
)

// Handler handles HTTP requests for the recipe catalog.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// HandleList handles GET /v1/recipes?category=&q=&limit=&offset=
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	limit, _ := strconv.Atoi(q.Get("limit"))
	offset, _ := strconv.Atoi(q.Get("offset"))

	recipes, total, err := h.service.List(r.Context(), q.Get("category"), q.Get("q"), limit, offset)
	if err != nil {
		if errors.Is(err, ErrInvalidCategory) {
			writeError(w, http.StatusBadRequest, "invalid_category", "Unknown recipe category")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to list recipes")
		return
	}

	writeJSON(w, http.StatusOK, ListRecipesResponse{Recipes: recipes, Total: total})
}

// HandleGet handles GET /v1/recipes/{id}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_id", "Invalid recipe ID")
		return
	}

	recipe, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "recipe_not_found", "Recipe not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to get recipe")
		return
	}

	writeJSON(w, http.StatusOK, recipe)
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
