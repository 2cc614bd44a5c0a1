package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pratofit/server/internal/storage"
)

type photosStorage struct {
	pool *pgxpool.Pool
}

func newPhotosStorage(pool *pgxpool.Pool) *photosStorage {
	return &photosStorage{pool: pool}
}

const photoColumns = `
	id, owner_user_id, profile_id, date, object_key, content_type, size_bytes, created_at
`

func scanPhoto(row pgx.Row) (storage.ProgressPhoto, error) {
	var photo storage.ProgressPhoto
	err := row.Scan(
		&photo.ID,
		&photo.OwnerUserID,
		&photo.ProfileID,
		&photo.Date,
		&photo.ObjectKey,
		&photo.ContentType,
		&photo.SizeBytes,
		&photo.CreatedAt,
	)

	return photo, err
}

func (s *photosStorage) CreatePhoto(ctx context.Context, photo *storage.ProgressPhoto) error {
	if photo.ID == uuid.Nil {
		photo.ID = uuid.New()
	}

	photo.CreatedAt = time.Now()

	_, err := s.pool.Exec(ctx, `
		INSERT INTO progress_photos (`+photoColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`,
		photo.ID,
		photo.OwnerUserID,
		photo.ProfileID,
		photo.Date,
		photo.ObjectKey,
		photo.ContentType,
		photo.SizeBytes,
		photo.CreatedAt,
	)

	return err
}

func (s *photosStorage) GetPhoto(ctx context.Context, ownerUserID string, id uuid.UUID) (*storage.ProgressPhoto, error) {
	photo, err := scanPhoto(s.pool.QueryRow(ctx, `
		SELECT `+photoColumns+`
		FROM progress_photos
		WHERE owner_user_id = $1 AND id = $2
	`, ownerUserID, id))

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	return &photo, nil
}

func (s *photosStorage) ListPhotos(ctx context.Context, ownerUserID string, profileID uuid.UUID) ([]storage.ProgressPhoto, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+photoColumns+`
		FROM progress_photos
		WHERE owner_user_id = $1 AND profile_id = $2
		ORDER BY date DESC, created_at DESC
	`, ownerUserID, profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	photos := []storage.ProgressPhoto{}
	for rows.Next() {
		photo, err := scanPhoto(rows)
		if err != nil {
			return nil, err
		}
		photos = append(photos, photo)
	}

	return photos, rows.Err()
}

func (s *photosStorage) DeletePhoto(ctx context.Context, ownerUserID string, id uuid.UUID) error {
	result, err := s.pool.Exec(ctx, `
		DELETE FROM progress_photos
		WHERE owner_user_id = $1 AND id = $2
	`, ownerUserID, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// Blob bytes go to the object store in Postgres mode; these exist to satisfy
// the interface and are only reached when no object store is configured.
func (s *photosStorage) PutPhotoBlob(ctx context.Context, id uuid.UUID, data []byte) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO photo_blobs (photo_id, data)
		VALUES ($1, $2)
		ON CONFLICT (photo_id) DO UPDATE SET data = EXCLUDED.data
	`, id, data)

	return err
}

func (s *photosStorage) GetPhotoBlob(ctx context.Context, id uuid.UUID) ([]byte, error) {
	var data []byte
	err := s.pool.QueryRow(ctx,
		`SELECT data FROM photo_blobs WHERE photo_id = $1`,
		id,
	).Scan(&data)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}

	if err != nil {
		return nil, err
	}

	return data, nil
}
