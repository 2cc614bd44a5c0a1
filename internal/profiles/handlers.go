package profiles

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
)

// Handler handles HTTP requests for profiles.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// HandleList handles GET /v1/profiles
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.service.ListProfiles(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to list profiles")
		return
	}

	writeJSON(w, http.StatusOK, ProfilesResponse{Profiles: profiles})
}

// HandleGet handles GET /v1/profiles/{id}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_id", "Invalid profile ID")
		return
	}

	profile, err := h.service.GetProfile(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "profile_not_found", "Profile not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to get profile")
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

// HandleCreate handles POST /v1/profiles
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_payload", "Invalid request body")
		return
	}

	profile, err := h.service.CreateProfile(r.Context(), req)
	if err != nil {
		if status, code := errorStatus(err); status != 0 {
			writeError(w, status, code, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to create profile")
		return
	}

	writeJSON(w, http.StatusCreated, profile)
}

// HandleUpdate handles PATCH /v1/profiles/{id}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_id", "Invalid profile ID")
		return
	}

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_payload", "Invalid request body")
		return
	}

	profile, err := h.service.UpdateProfile(r.Context(), id, req)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "profile_not_found", "Profile not found")
			return
		}
		if status, code := errorStatus(err); status != 0 {
			writeError(w, status, code, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to update profile")
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

// HandleDelete handles DELETE /v1/profiles/{id}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_id", "Invalid profile ID")
		return
	}

	if err := h.service.DeleteProfile(r.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "profile_not_found", "Profile not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "Failed to delete profile")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, ErrEmptyName):
		return http.StatusBadRequest, "empty_name"
	case errors.Is(err, ErrInvalidSex):
		return http.StatusBadRequest, "invalid_sex"
	case errors.Is(err, ErrInvalidMeasure):
		return http.StatusBadRequest, "invalid_measurements"
	default:
		return 0, ""
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
