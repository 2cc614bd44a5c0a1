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

type shoppingStorage struct {
	pool *pgxpool.Pool
}

func newShoppingStorage(pool *pgxpool.Pool) *shoppingStorage {
	return &shoppingStorage{pool: pool}
}

const itemColumns = `
	id, owner_user_id, profile_id, name, amount, category, checked, manual,
	source_date, source_meal_type, created_at, updated_at
`

func scanItem(row pgx.Row) (storage.ShoppingItem, error) {
	var item storage.ShoppingItem
	err := row.Scan(
		&item.ID,
		&item.OwnerUserID,
		&item.ProfileID,
		&item.Name,
		&item.Amount,
		&item.Category,
		&item.Checked,
		&item.Manual,
		&item.SourceDate,
		&item.SourceMealType,
		&item.CreatedAt,
		&item.UpdatedAt,
	)

	return item, err
}

func (s *shoppingStorage) ListItems(ctx context.Context, ownerUserID string, profileID uuid.UUID) ([]storage.ShoppingItem, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+itemColumns+`
		FROM shopping_items
		WHERE owner_user_id = $1 AND profile_id = $2
		ORDER BY category ASC, name ASC, id ASC
	`, ownerUserID, profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectItems(rows)
}

func collectItems(rows pgx.Rows) ([]storage.ShoppingItem, error) {
	items := []storage.ShoppingItem{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

func (s *shoppingStorage) GetItem(ctx context.Context, ownerUserID string, itemID string) (storage.ShoppingItem, bool, error) {
	item, err := scanItem(s.pool.QueryRow(ctx, `
		SELECT `+itemColumns+`
		FROM shopping_items
		WHERE owner_user_id = $1 AND id = $2
	`, ownerUserID, itemID))

	if errors.Is(err, pgx.ErrNoRows) {
		return storage.ShoppingItem{}, false, nil
	}

	if err != nil {
		return storage.ShoppingItem{}, false, err
	}

	return item, true, nil
}

func (s *shoppingStorage) CreateItem(ctx context.Context, item *storage.ShoppingItem) error {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}

	now := time.Now()
	item.CreatedAt = now
	item.UpdatedAt = now

	_, err := s.pool.Exec(ctx, `
		INSERT INTO shopping_items (`+itemColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`,
		item.ID,
		item.OwnerUserID,
		item.ProfileID,
		item.Name,
		item.Amount,
		item.Category,
		item.Checked,
		item.Manual,
		item.SourceDate,
		item.SourceMealType,
		item.CreatedAt,
		item.UpdatedAt,
	)

	return err
}

func (s *shoppingStorage) UpdateItem(ctx context.Context, item *storage.ShoppingItem) error {
	item.UpdatedAt = time.Now()

	result, err := s.pool.Exec(ctx, `
		UPDATE shopping_items
		SET name = $2, amount = $3, category = $4, checked = $5, updated_at = $6
		WHERE id = $1
	`,
		item.ID,
		item.Name,
		item.Amount,
		item.Category,
		item.Checked,
		item.UpdatedAt,
	)

	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (s *shoppingStorage) DeleteItem(ctx context.Context, ownerUserID string, itemID string) (bool, error) {
	result, err := s.pool.Exec(ctx, `
		DELETE FROM shopping_items
		WHERE owner_user_id = $1 AND id = $2
	`, ownerUserID, itemID)
	if err != nil {
		return false, err
	}

	return result.RowsAffected() > 0, nil
}

// ReplaceDerived runs in a transaction: collect checked derived IDs, delete
// all derived rows, insert the new set with checked state carried over by ID.
func (s *shoppingStorage) ReplaceDerived(ctx context.Context, ownerUserID string, profileID uuid.UUID, derived []storage.ShoppingItem) ([]storage.ShoppingItem, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	rows, err := tx.Query(ctx, `
		SELECT id FROM shopping_items
		WHERE owner_user_id = $1 AND profile_id = $2 AND NOT manual AND checked
	`, ownerUserID, profileID)
	if err != nil {
		return nil, err
	}

	checked := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, err
		}
		checked[id] = true
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	_, err = tx.Exec(ctx, `
		DELETE FROM shopping_items
		WHERE owner_user_id = $1 AND profile_id = $2 AND NOT manual
	`, ownerUserID, profileID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	for i := range derived {
		item := derived[i]
		_, err = tx.Exec(ctx, `
			INSERT INTO shopping_items (`+itemColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		`,
			item.ID,
			ownerUserID,
			profileID,
			item.Name,
			item.Amount,
			item.Category,
			item.Checked || checked[item.ID],
			false,
			item.SourceDate,
			item.SourceMealType,
			now,
			now,
		)
		if err != nil {
			return nil, err
		}
	}

	listRows, err := tx.Query(ctx, `
		SELECT `+itemColumns+`
		FROM shopping_items
		WHERE owner_user_id = $1 AND profile_id = $2
		ORDER BY category ASC, name ASC, id ASC
	`, ownerUserID, profileID)
	if err != nil {
		return nil, err
	}

	items, err := collectItems(listRows)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return items, nil
}

func (s *shoppingStorage) DeleteChecked(ctx context.Context, ownerUserID string, profileID uuid.UUID) (int, error) {
	result, err := s.pool.Exec(ctx, `
		DELETE FROM shopping_items
		WHERE owner_user_id = $1 AND profile_id = $2 AND checked
	`, ownerUserID, profileID)
	if err != nil {
		return 0, err
	}

	return int(result.RowsAffected()), nil
}

func (s *shoppingStorage) Clear(ctx context.Context, ownerUserID string, profileID uuid.UUID) error {
	_, err := s.pool.Exec(ctx, `
		DELETE FROM shopping_items
		WHERE owner_user_id = $1 AND profile_id = $2
	`, ownerUserID, profileID)

	return err
}
