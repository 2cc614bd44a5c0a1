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

type dailyLogStorage struct {
	pool *pgxpool.Pool
}

func newDailyLogStorage(pool *pgxpool.Pool) *dailyLogStorage {
	return &dailyLogStorage{pool: pool}
}

const logColumns = `
	id, owner_user_id, profile_id, date, water_ml, sleep_hours, weight_kg,
	photo_id, exercise_kcal, created_at, updated_at
`

func scanLog(row pgx.Row) (storage.DailyLog, error) {
	var log storage.DailyLog
	err := row.Scan(
		&log.ID,
		&log.OwnerUserID,
		&log.ProfileID,
		&log.Date,
		&log.WaterMl,
		&log.SleepHours,
		&log.WeightKg,
		&log.PhotoID,
		&log.ExerciseKcal,
		&log.CreatedAt,
		&log.UpdatedAt,
	)

	return log, err
}

func (s *dailyLogStorage) GetLog(ctx context.Context, ownerUserID string, profileID uuid.UUID, date string) (storage.DailyLog, bool, error) {
	log, err := scanLog(s.pool.QueryRow(ctx, `
		SELECT `+logColumns+`
		FROM daily_logs
		WHERE owner_user_id = $1 AND profile_id = $2 AND date = $3
	`, ownerUserID, profileID, date))

	if errors.Is(err, pgx.ErrNoRows) {
		return storage.DailyLog{}, false, nil
	}

	if err != nil {
		return storage.DailyLog{}, false, err
	}

	return log, true, nil
}

func (s *dailyLogStorage) UpsertLog(ctx context.Context, log *storage.DailyLog) error {
	if log.ID == uuid.Nil {
		log.ID = uuid.New()
	}

	now := time.Now()
	log.CreatedAt = now
	log.UpdatedAt = now

	_, err := s.pool.Exec(ctx, `
		INSERT INTO daily_logs (`+logColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (profile_id, date)
		DO UPDATE SET water_ml = EXCLUDED.water_ml,
		              sleep_hours = EXCLUDED.sleep_hours,
		              weight_kg = EXCLUDED.weight_kg,
		              photo_id = EXCLUDED.photo_id,
		              exercise_kcal = EXCLUDED.exercise_kcal,
		              updated_at = EXCLUDED.updated_at
	`,
		log.ID,
		log.OwnerUserID,
		log.ProfileID,
		log.Date,
		log.WaterMl,
		log.SleepHours,
		log.WeightKg,
		log.PhotoID,
		log.ExerciseKcal,
		log.CreatedAt,
		log.UpdatedAt,
	)

	return err
}

func (s *dailyLogStorage) ListLogsRange(ctx context.Context, ownerUserID string, profileID uuid.UUID, fromDate, toDate string) ([]storage.DailyLog, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+logColumns+`
		FROM daily_logs
		WHERE owner_user_id = $1 AND profile_id = $2 AND date >= $3 AND date <= $4
		ORDER BY date ASC
	`, ownerUserID, profileID, fromDate, toDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := []storage.DailyLog{}
	for rows.Next() {
		log, err := scanLog(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, log)
	}

	return logs, rows.Err()
}

func (s *dailyLogStorage) LatestWeightBefore(ctx context.Context, ownerUserID string, profileID uuid.UUID, beforeDate string) (*float64, error) {
	var weight float64
	err := s.pool.QueryRow(ctx, `
		SELECT weight_kg
		FROM daily_logs
		WHERE owner_user_id = $1 AND profile_id = $2 AND date < $3 AND weight_kg IS NOT NULL
		ORDER BY date DESC
		LIMIT 1
	`, ownerUserID, profileID, beforeDate).Scan(&weight)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	return &weight, nil
}
