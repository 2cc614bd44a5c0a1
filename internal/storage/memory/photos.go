package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pratofit/server/internal/storage"
)

type photosStorage struct {
	mu     sync.RWMutex
	photos map[uuid.UUID]storage.ProgressPhoto
	blobs  map[uuid.UUID][]byte
}

func newPhotosStorage() *photosStorage {
	return &photosStorage{
		photos: make(map[uuid.UUID]storage.ProgressPhoto),
		blobs:  make(map[uuid.UUID][]byte),
	}
}

func (s *photosStorage) CreatePhoto(ctx context.Context, photo *storage.ProgressPhoto) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if photo.ID == uuid.Nil {
		photo.ID = uuid.New()
	}

	photo.CreatedAt = time.Now()

	s.photos[photo.ID] = *photo

	return nil
}

func (s *photosStorage) GetPhoto(ctx context.Context, ownerUserID string, id uuid.UUID) (*storage.ProgressPhoto, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	photo, ok := s.photos[id]
	if !ok || photo.OwnerUserID != ownerUserID {
		return nil, nil
	}

	return &photo, nil
}

func (s *photosStorage) ListPhotos(ctx context.Context, ownerUserID string, profileID uuid.UUID) ([]storage.ProgressPhoto, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	photos := make([]storage.ProgressPhoto, 0)
	for _, photo := range s.photos {
		if photo.OwnerUserID == ownerUserID && photo.ProfileID == profileID {
			photos = append(photos, photo)
		}
	}

	sort.Slice(photos, func(i, j int) bool {
		if photos[i].Date != photos[j].Date {
			return photos[i].Date > photos[j].Date
		}

		return photos[i].CreatedAt.After(photos[j].CreatedAt)
	})

	return photos, nil
}

func (s *photosStorage) DeletePhoto(ctx context.Context, ownerUserID string, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	photo, ok := s.photos[id]
	if !ok || photo.OwnerUserID != ownerUserID {
		return ErrNotFound
	}

	delete(s.photos, id)
	delete(s.blobs, id)

	return nil
}

// PutPhotoBlob keeps the processed image bytes in memory. Used only when no
// object store is configured.
func (s *photosStorage) PutPhotoBlob(ctx context.Context, id uuid.UUID, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.blobs[id] = data

	return nil
}

func (s *photosStorage) GetPhotoBlob(ctx context.Context, id uuid.UUID) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.blobs[id]
	if !ok {
		return nil, ErrNotFound
	}

	return data, nil
}
