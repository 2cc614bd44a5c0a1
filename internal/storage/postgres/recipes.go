package postgres

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pratofit/server/internal/storage"
)

type recipesStorage struct {
	pool *pgxpool.Pool
}

func newRecipesStorage(pool *pgxpool.Pool) *recipesStorage {
	return &recipesStorage{pool: pool}
}

// Ingredients live in a jsonb column; pgx marshals the slice through
// encoding/json.
func (s *recipesStorage) ListRecipes(ctx context.Context, category, query string, limit, offset int) ([]storage.Recipe, int, error) {
	conditions := []string{"TRUE"}
	args := []any{}

	if category != "" {
		args = append(args, category)
		conditions = append(conditions, "category = $1")
	}
	if q := strings.TrimSpace(query); q != "" {
		args = append(args, "%"+q+"%")
		conditions = append(conditions, "name ILIKE $"+strconv.Itoa(len(args)))
	}

	where := strings.Join(conditions, " AND ")

	var total int
	err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM recipes WHERE `+where,
		args...,
	).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	args = append(args, limit, offset)
	rows, err := s.pool.Query(ctx, `
		SELECT id, name, category, calories_kcal, protein_g, carbs_g, fats_g, ingredients, created_at
		FROM recipes
		WHERE `+where+`
		ORDER BY name ASC
		LIMIT NULLIF($`+strconv.Itoa(len(args)-1)+`, 0) OFFSET $`+strconv.Itoa(len(args)),
		args...,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	recipes := []storage.Recipe{}
	for rows.Next() {
		var r storage.Recipe
		err := rows.Scan(
			&r.ID,
			&r.Name,
			&r.Category,
			&r.CaloriesKcal,
			&r.ProteinG,
			&r.CarbsG,
			&r.FatsG,
			&r.Ingredients,
			&r.CreatedAt,
		)
		if err != nil {
			return nil, 0, err
		}
		recipes = append(recipes, r)
	}

	return recipes, total, rows.Err()
}

func (s *recipesStorage) GetRecipe(ctx context.Context, id uuid.UUID) (*storage.Recipe, error) {
	var r storage.Recipe
	err := s.pool.QueryRow(ctx, `
		SELECT id, name, category, calories_kcal, protein_g, carbs_g, fats_g, ingredients, created_at
		FROM recipes
		WHERE id = $1
	`, id).Scan(
		&r.ID,
		&r.Name,
		&r.Category,
		&r.CaloriesKcal,
		&r.ProteinG,
		&r.CarbsG,
		&r.FatsG,
		&r.Ingredients,
		&r.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	return &r, nil
}

