package photos

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pratofit/server/internal/blob"
	"github.com/pratofit/server/internal/storage"
	"github.com/pratofit/server/internal/userctx"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrPhotoNotFound   = errors.New("photo not found")
	ErrFileTooLarge    = errors.New("file too large")
	ErrUnsupportedMime = errors.New("unsupported mime type")
	ErrInvalidDate     = errors.New("invalid date")
)

// LogAttacher links an uploaded photo to the day's log entry.
type LogAttacher interface {
	AttachPhoto(ctx context.Context, profileID uuid.UUID, date string, photoID uuid.UUID) error
}

// Service handles progress photo uploads and retrieval
type Service struct {
	photosStorage  storage.PhotosStorage
	profileStorage storage.Storage
	logs           LogAttacher
	blobStore      blob.Store
	localMode      bool // true if no S3 configured
	maxUploadMB    int
	allowedMimes   []string
	presignTTL     int
}

// NewService creates a new photos service. blobStore may be nil, in which
// case processed images are kept in the metadata store.
func NewService(
	photosStorage storage.PhotosStorage,
	profileStorage storage.Storage,
	logs LogAttacher,
	blobStore blob.Store,
	maxUploadMB int,
	allowedMimes string,
	presignTTLSeconds int,
) *Service {
	mimes := strings.Split(allowedMimes, ",")
	for i, m := range mimes {
		mimes[i] = strings.TrimSpace(m)
	}

	if presignTTLSeconds <= 0 {
		presignTTLSeconds = 900
	}

	return &Service{
		photosStorage:  photosStorage,
		profileStorage: profileStorage,
		logs:           logs,
		blobStore:      blobStore,
		localMode:      blobStore == nil,
		maxUploadMB:    maxUploadMB,
		allowedMimes:   mimes,
		presignTTL:     presignTTLSeconds,
	}
}

// Upload stores an uploaded photo for the given profile and date and links it
// to that day's log entry. The image is normalized to a square JPEG before
// storage; formats the decoder does not understand (e.g. HEIC) are stored as
// uploaded.
func (s *Service) Upload(ctx context.Context, profileID uuid.UUID, date string, fileHeader *multipart.FileHeader) (*PhotoDTO, error) {
	if err := s.ensureProfileAccess(ctx, profileID); err != nil {
		return nil, ErrProfileNotFound
	}

	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, ErrInvalidDate
	}

	maxBytes := int64(s.maxUploadMB) * 1024 * 1024
	if fileHeader.Size > maxBytes {
		return nil, ErrFileTooLarge
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !s.isAllowedMime(contentType) {
		return nil, ErrUnsupportedMime
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	if normalized, err := normalizeImage(data); err == nil {
		data = normalized
		contentType = "image/jpeg"
	}

	ownerUserID := userctx.GetUserIDOrDefault(ctx)
	photoID := uuid.New()

	photo := &storage.ProgressPhoto{
		ID:          photoID,
		OwnerUserID: ownerUserID,
		ProfileID:   profileID,
		Date:        date,
		ContentType: contentType,
		SizeBytes:   int64(len(data)),
	}

	if s.localMode {
		if err := s.photosStorage.CreatePhoto(ctx, photo); err != nil {
			return nil, err
		}
		if err := s.photosStorage.PutPhotoBlob(ctx, photo.ID, data); err != nil {
			_ = s.photosStorage.DeletePhoto(ctx, ownerUserID, photo.ID)
			return nil, fmt.Errorf("failed to store blob: %w", err)
		}
	} else {
		objectKey := fmt.Sprintf("photos/%s/%s", profileID.String(), photoID.String())
		if _, err := s.blobStore.PutObject(ctx, objectKey, data, contentType); err != nil {
			return nil, fmt.Errorf("failed to upload to S3: %w", err)
		}

		photo.ObjectKey = &objectKey
		if err := s.photosStorage.CreatePhoto(ctx, photo); err != nil {
			_ = s.blobStore.DeleteObject(ctx, objectKey)
			return nil, err
		}
	}

	if err := s.logs.AttachPhoto(ctx, profileID, date, photo.ID); err != nil {
		_ = s.deleteStored(ctx, photo)
		return nil, fmt.Errorf("failed to link photo to daily log: %w", err)
	}

	return s.toDTO(photo), nil
}

// ListPhotos returns all photos for a profile, newest first.
func (s *Service) ListPhotos(ctx context.Context, profileID uuid.UUID) ([]PhotoDTO, error) {
	if err := s.ensureProfileAccess(ctx, profileID); err != nil {
		return nil, ErrProfileNotFound
	}

	ownerUserID := userctx.GetUserIDOrDefault(ctx)
	photos, err := s.photosStorage.ListPhotos(ctx, ownerUserID, profileID)
	if err != nil {
		return nil, err
	}

	dtos := make([]PhotoDTO, len(photos))
	for i := range photos {
		dtos[i] = *s.toDTO(&photos[i])
	}

	return dtos, nil
}

// DeletePhoto removes the photo and its stored bytes.
func (s *Service) DeletePhoto(ctx context.Context, id uuid.UUID) error {
	ownerUserID := userctx.GetUserIDOrDefault(ctx)

	photo, err := s.photosStorage.GetPhoto(ctx, ownerUserID, id)
	if err != nil {
		return err
	}
	if photo == nil {
		return ErrPhotoNotFound
	}

	return s.deleteStored(ctx, photo)
}

// GetDownloadURL returns the download URL and whether the caller should
// redirect (true in S3 mode, false when bytes are served directly).
func (s *Service) GetDownloadURL(ctx context.Context, id uuid.UUID) (string, bool, error) {
	ownerUserID := userctx.GetUserIDOrDefault(ctx)

	photo, err := s.photosStorage.GetPhoto(ctx, ownerUserID, id)
	if err != nil {
		return "", false, err
	}
	if photo == nil {
		return "", false, ErrPhotoNotFound
	}

	if s.localMode || photo.ObjectKey == nil || *photo.ObjectKey == "" {
		return "", false, nil
	}

	presignedURL, err := s.blobStore.PresignGet(ctx, *photo.ObjectKey, s.presignTTL)
	if err != nil {
		return "", false, fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	return presignedURL, true, nil
}

// GetData returns the photo bytes and content type for direct serving.
func (s *Service) GetData(ctx context.Context, id uuid.UUID) ([]byte, string, error) {
	ownerUserID := userctx.GetUserIDOrDefault(ctx)

	photo, err := s.photosStorage.GetPhoto(ctx, ownerUserID, id)
	if err != nil {
		return nil, "", err
	}
	if photo == nil {
		return nil, "", ErrPhotoNotFound
	}

	if photo.ObjectKey != nil && *photo.ObjectKey != "" && !s.localMode {
		data, err := s.blobStore.GetObject(ctx, *photo.ObjectKey)
		if err != nil {
			return nil, "", fmt.Errorf("failed to get object from S3: %w", err)
		}
		return data, photo.ContentType, nil
	}

	data, err := s.photosStorage.GetPhotoBlob(ctx, photo.ID)
	if err != nil {
		return nil, "", ErrPhotoNotFound
	}

	return data, photo.ContentType, nil
}

func (s *Service) deleteStored(ctx context.Context, photo *storage.ProgressPhoto) error {
	if !s.localMode && photo.ObjectKey != nil && *photo.ObjectKey != "" {
		// Blob removal failure should not keep the metadata alive.
		_ = s.blobStore.DeleteObject(ctx, *photo.ObjectKey)
	}

	return s.photosStorage.DeletePhoto(ctx, photo.OwnerUserID, photo.ID)
}

func (s *Service) toDTO(photo *storage.ProgressPhoto) *PhotoDTO {
	return &PhotoDTO{
		ID:          photo.ID,
		ProfileID:   photo.ProfileID,
		Date:        photo.Date,
		ContentType: photo.ContentType,
		SizeBytes:   photo.SizeBytes,
		CreatedAt:   photo.CreatedAt,
	}
}

func (s *Service) isAllowedMime(contentType string) bool {
	for _, allowed := range s.allowedMimes {
		if strings.EqualFold(contentType, allowed) {
			return true
		}
	}
	return false
}

func (s *Service) ensureProfileAccess(ctx context.Context, profileID uuid.UUID) error {
	profile, err := s.profileStorage.GetProfile(ctx, profileID)
	if err != nil {
		return ErrProfileNotFound
	}

	if userID, ok := userctx.GetUserID(ctx); ok && strings.TrimSpace(userID) != "" && profile.OwnerUserID != userID {
		return ErrProfileNotFound
	}

	return nil
}
