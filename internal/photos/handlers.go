package photos

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/uuid"
)

// Handlers handles HTTP requests for progress photos
type Handlers struct {
	service *Service
}

// NewHandlers creates new handlers
func NewHandlers(service *Service) *Handlers {
	return &Handlers{service: service}
}

// HandleUpload handles POST /v1/photos (multipart upload)
func (h *Handlers) HandleUpload(w http.ResponseWriter, r *http.Request) {
	// Parse multipart form (max 32 MB in memory)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "Failed to parse multipart form")
		return
	}

	profileIDStr := r.FormValue("profile_id")
	if profileIDStr == "" {
		writeError(w, http.StatusBadRequest, "missing_profile_id", "profile_id is required")
		return
	}

	profileID, err := uuid.Parse(profileIDStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_profile_id", "Invalid profile_id format")
		return
	}

	date := r.FormValue("date")
	if date == "" {
		writeError(w, http.StatusBadRequest, "missing_date", "date is required")
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing_file", "File is required")
		return
	}
	file.Close() // Close immediately, service will reopen

	dto, err := h.service.Upload(r.Context(), profileID, date, fileHeader)
	if err != nil {
		switch err {
		case ErrProfileNotFound:
			writeError(w, http.StatusNotFound, "profile_not_found", "Profile not found")
		case ErrInvalidDate:
			writeError(w, http.StatusBadRequest, "invalid_date", "Date must be YYYY-MM-DD")
		case ErrFileTooLarge:
			writeError(w, http.StatusBadRequest, "file_too_large", fmt.Sprintf("File exceeds maximum size of %d MB", h.service.maxUploadMB))
		case ErrUnsupportedMime:
			writeError(w, http.StatusBadRequest, "unsupported_mime", "File type not supported")
		default:
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(dto)
}

// HandleList handles GET /v1/photos
func (h *Handlers) HandleList(w http.ResponseWriter, r *http.Request) {
	profileIDStr := r.URL.Query().Get("profile_id")
	if profileIDStr == "" {
		writeError(w, http.StatusBadRequest, "missing_profile_id", "profile_id is required")
		return
	}

	profileID, err := uuid.Parse(profileIDStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_profile_id", "Invalid profile_id format")
		return
	}

	dtos, err := h.service.ListPhotos(r.Context(), profileID)
	if err != nil {
		if err == ErrProfileNotFound {
			writeError(w, http.StatusNotFound, "profile_not_found", "Profile not found")
		} else {
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(PhotosResponse{Photos: dtos})
}

// HandleDownload handles GET /v1/photos/{id}/download
func (h *Handlers) HandleDownload(w http.ResponseWriter, r *http.Request) {
	idStr := r.PathValue("id")
	photoID, err := uuid.Parse(idStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_id", "Invalid photo ID")
		return
	}

	downloadURL, isRedirect, err := h.service.GetDownloadURL(r.Context(), photoID)
	if err != nil {
		if err == ErrPhotoNotFound {
			writeError(w, http.StatusNotFound, "photo_not_found", "Photo not found")
		} else {
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
		}
		return
	}

	if isRedirect {
		http.Redirect(w, r, downloadURL, http.StatusFound)
		return
	}

	data, contentType, err := h.service.GetData(r.Context(), photoID)
	if err != nil {
		if err == ErrPhotoNotFound {
			writeError(w, http.StatusNotFound, "photo_not_found", "Photo not found")
		} else {
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
		}
		return
	}

	ext := ".jpg"
	switch contentType {
	case "image/png":
		ext = ".png"
	case "image/heic":
		ext = ".heic"
	}

	filename := fmt.Sprintf("photo_%s%s", photoID.String()[:8], ext)

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%s", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Write(data)
}

// HandleDelete handles DELETE /v1/photos/{id}
func (h *Handlers) HandleDelete(w http.ResponseWriter, r *http.Request) {
	idStr := r.PathValue("id")
	photoID, err := uuid.Parse(idStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_id", "Invalid photo ID")
		return
	}

	if err := h.service.DeletePhoto(r.Context(), photoID); err != nil {
		if err == ErrPhotoNotFound {
			writeError(w, http.StatusNotFound, "photo_not_found", "Photo not found")
		} else {
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
