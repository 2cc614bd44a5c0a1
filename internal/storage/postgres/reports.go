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

type reportsStorage struct {
	pool *pgxpool.Pool
}

func newReportsStorage(pool *pgxpool.Pool) *reportsStorage {
	return &reportsStorage{pool: pool}
}

const reportColumns = `
	id, owner_user_id, profile_id, from_date, to_date, object_key,
	size_bytes, status, error, data, created_at
`

func scanReport(row pgx.Row) (storage.ReportMeta, error) {
	var report storage.ReportMeta
	err := row.Scan(
		&report.ID,
		&report.OwnerUserID,
		&report.ProfileID,
		&report.FromDate,
		&report.ToDate,
		&report.ObjectKey,
		&report.SizeBytes,
		&report.Status,
		&report.Error,
		&report.Data,
		&report.CreatedAt,
	)

	return report, err
}

func (s *reportsStorage) CreateReport(ctx context.Context, report *storage.ReportMeta) error {
	if report.ID == uuid.Nil {
		report.ID = uuid.New()
	}

	report.CreatedAt = time.Now()

	_, err := s.pool.Exec(ctx, `
		INSERT INTO reports (`+reportColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`,
		report.ID,
		report.OwnerUserID,
		report.ProfileID,
		report.FromDate,
		report.ToDate,
		report.ObjectKey,
		report.SizeBytes,
		report.Status,
		report.Error,
		report.Data,
		report.CreatedAt,
	)

	return err
}

func (s *reportsStorage) GetReport(ctx context.Context, ownerUserID string, id uuid.UUID) (*storage.ReportMeta, error) {
	report, err := scanReport(s.pool.QueryRow(ctx, `
		SELECT `+reportColumns+`
		FROM reports
		WHERE owner_user_id = $1 AND id = $2
	`, ownerUserID, id))

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	return &report, nil
}

func (s *reportsStorage) ListReports(ctx context.Context, ownerUserID string, profileID uuid.UUID, limit, offset int) ([]storage.ReportMeta, int, error) {
	var total int
	err := s.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM reports
		WHERE owner_user_id = $1 AND profile_id = $2
	`, ownerUserID, profileID).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	rows, err := s.pool.Query(ctx, `
		SELECT `+reportColumns+`
		FROM reports
		WHERE owner_user_id = $1 AND profile_id = $2
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4
	`, ownerUserID, profileID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	reports := []storage.ReportMeta{}
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, 0, err
		}
		reports = append(reports, report)
	}

	return reports, total, rows.Err()
}

func (s *reportsStorage) DeleteReport(ctx context.Context, ownerUserID string, id uuid.UUID) error {
	result, err := s.pool.Exec(ctx, `
		DELETE FROM reports
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
