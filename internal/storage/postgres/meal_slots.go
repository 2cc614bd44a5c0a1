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

type mealPlanStorage struct {
	pool *pgxpool.Pool
}

func newMealPlanStorage(pool *pgxpool.Pool) *mealPlanStorage {
	return &mealPlanStorage{pool: pool}
}

const slotColumns = `
	id, owner_user_id, profile_id, date, meal_type, recipe_id, completed, created_at, updated_at
`

func scanSlot(row pgx.Row) (storage.MealSlot, error) {
	var slot storage.MealSlot
	err := row.Scan(
		&slot.ID,
		&slot.OwnerUserID,
		&slot.ProfileID,
		&slot.Date,
		&slot.MealType,
		&slot.RecipeID,
		&slot.Completed,
		&slot.CreatedAt,
		&slot.UpdatedAt,
	)

	return slot, err
}

// UpsertSlot relies on the unique index over (profile_id, date, meal_type).
// A conflicting row is replaced and takes the new slot's ID, matching the
// replace semantics of assigning a recipe to an occupied slot.
func (s *mealPlanStorage) UpsertSlot(ctx context.Context, slot *storage.MealSlot) error {
	if slot.ID == uuid.Nil {
		slot.ID = uuid.New()
	}

	now := time.Now()
	slot.CreatedAt = now
	slot.UpdatedAt = now

	_, err := s.pool.Exec(ctx, `
		INSERT INTO meal_slots (`+slotColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (profile_id, date, meal_type)
		DO UPDATE SET id = EXCLUDED.id,
		              recipe_id = EXCLUDED.recipe_id,
		              completed = EXCLUDED.completed,
		              updated_at = EXCLUDED.updated_at
	`,
		slot.ID,
		slot.OwnerUserID,
		slot.ProfileID,
		slot.Date,
		slot.MealType,
		slot.RecipeID,
		slot.Completed,
		slot.CreatedAt,
		slot.UpdatedAt,
	)

	return err
}

func (s *mealPlanStorage) GetSlot(ctx context.Context, ownerUserID string, profileID uuid.UUID, date, mealType string) (storage.MealSlot, bool, error) {
	slot, err := scanSlot(s.pool.QueryRow(ctx, `
		SELECT `+slotColumns+`
		FROM meal_slots
		WHERE owner_user_id = $1 AND profile_id = $2 AND date = $3 AND meal_type = $4
	`, ownerUserID, profileID, date, mealType))

	if errors.Is(err, pgx.ErrNoRows) {
		return storage.MealSlot{}, false, nil
	}

	if err != nil {
		return storage.MealSlot{}, false, err
	}

	return slot, true, nil
}

func (s *mealPlanStorage) DeleteSlot(ctx context.Context, ownerUserID string, profileID uuid.UUID, date, mealType string) error {
	_, err := s.pool.Exec(ctx, `
		DELETE FROM meal_slots
		WHERE owner_user_id = $1 AND profile_id = $2 AND date = $3 AND meal_type = $4
	`, ownerUserID, profileID, date, mealType)

	return err
}

func (s *mealPlanStorage) ToggleSlotCompletion(ctx context.Context, ownerUserID string, profileID uuid.UUID, date, mealType string) (storage.MealSlot, bool, error) {
	slot, err := scanSlot(s.pool.QueryRow(ctx, `
		UPDATE meal_slots
		SET completed = NOT completed, updated_at = NOW()
		WHERE owner_user_id = $1 AND profile_id = $2 AND date = $3 AND meal_type = $4
		RETURNING `+slotColumns,
		ownerUserID, profileID, date, mealType))

	if errors.Is(err, pgx.ErrNoRows) {
		return storage.MealSlot{}, false, nil
	}

	if err != nil {
		return storage.MealSlot{}, false, err
	}

	return slot, true, nil
}

func (s *mealPlanStorage) ListSlotsForDate(ctx context.Context, ownerUserID string, profileID uuid.UUID, date string) ([]storage.MealSlot, error) {
	return s.ListSlotsRange(ctx, ownerUserID, profileID, date, date)
}

func (s *mealPlanStorage) ListSlots(ctx context.Context, ownerUserID string, profileID uuid.UUID) ([]storage.MealSlot, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+slotColumns+`
		FROM meal_slots
		WHERE owner_user_id = $1 AND profile_id = $2
		ORDER BY date ASC, `+mealTypeOrderSQL+`
	`, ownerUserID, profileID)
	if err != nil {
		return nil, err
	}

	return collectSlots(rows)
}

func (s *mealPlanStorage) ListSlotsRange(ctx context.Context, ownerUserID string, profileID uuid.UUID, fromDate, toDate string) ([]storage.MealSlot, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+slotColumns+`
		FROM meal_slots
		WHERE owner_user_id = $1 AND profile_id = $2 AND date >= $3 AND date <= $4
		ORDER BY date ASC, `+mealTypeOrderSQL+`
	`, ownerUserID, profileID, fromDate, toDate)
	if err != nil {
		return nil, err
	}

	return collectSlots(rows)
}

const mealTypeOrderSQL = `CASE meal_type
		             WHEN 'breakfast' THEN 0
		             WHEN 'lunch' THEN 1
		             WHEN 'snack' THEN 2
		             WHEN 'dinner' THEN 3
		             ELSE 4
		         END ASC`

func collectSlots(rows pgx.Rows) ([]storage.MealSlot, error) {
	defer rows.Close()

	slots := []storage.MealSlot{}
	for rows.Next() {
		slot, err := scanSlot(rows)
		if err != nil {
			return nil, err
		}
		slots = append(slots, slot)
	}

	return slots, rows.Err()
}

func (s *mealPlanStorage) DeleteSlotsFrom(ctx context.Context, ownerUserID string, profileID uuid.UUID, fromDate string) error {
	_, err := s.pool.Exec(ctx, `
		DELETE FROM meal_slots
		WHERE owner_user_id = $1 AND profile_id = $2 AND date >= $3
	`, ownerUserID, profileID, fromDate)

	return err
}
