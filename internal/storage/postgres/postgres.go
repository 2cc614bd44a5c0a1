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

var (
	ErrNotFound = errors.New("profile not found")
)

// PostgresStorage is the pgx implementation of every storage interface.
type PostgresStorage struct {
	pool     *pgxpool.Pool
	recipes  *recipesStorage
	mealPlan *mealPlanStorage
	logs     *dailyLogStorage
	shopping *shoppingStorage
	photos   *photosStorage
	reports  *reportsStorage
}

// New connects to Postgres and ensures the default owner profile exists.
func New(ctx context.Context, databaseURL string) (*PostgresStorage, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		return nil, err
	}

	ps := &PostgresStorage{
		pool:     pool,
		recipes:  newRecipesStorage(pool),
		mealPlan: newMealPlanStorage(pool),
		logs:     newDailyLogStorage(pool),
		shopping: newShoppingStorage(pool),
		photos:   newPhotosStorage(pool),
		reports:  newReportsStorage(pool),
	}

	if err := ps.ensureOwnerProfile(ctx); err != nil {
		return nil, err
	}

	return ps, nil
}

func (p *PostgresStorage) ensureOwnerProfile(ctx context.Context) error {
	var exists bool
	err := p.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM profiles WHERE owner_user_id = $1)`,
		"default",
	).Scan(&exists)
	if err != nil || exists {
		return err
	}

	now := time.Now()
	_, err = p.pool.Exec(ctx, `
		INSERT INTO profiles (id, owner_user_id, name, activity_level, goal_intent, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT DO NOTHING
	`,
		uuid.New(),
		"default",
		"Me",
		"moderate",
		"maintain",
		now,
		now,
	)

	return err
}

const profileColumns = `
	id, owner_user_id, name, weight_kg, height_cm, age, sex,
	activity_level, goal_intent, calorie_goal, protein_goal_g,
	carbs_goal_g, fats_goal_g, water_goal_ml, created_at, updated_at
`

func scanProfile(row pgx.Row) (storage.Profile, error) {
	var prof storage.Profile
	err := row.Scan(
		&prof.ID,
		&prof.OwnerUserID,
		&prof.Name,
		&prof.WeightKg,
		&prof.HeightCm,
		&prof.Age,
		&prof.Sex,
		&prof.ActivityLevel,
		&prof.GoalIntent,
		&prof.CalorieGoal,
		&prof.ProteinGoalG,
		&prof.CarbsGoalG,
		&prof.FatsGoalG,
		&prof.WaterGoalMl,
		&prof.CreatedAt,
		&prof.UpdatedAt,
	)

	return prof, err
}

func (p *PostgresStorage) ListProfiles(ctx context.Context) ([]storage.Profile, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT `+profileColumns+` FROM profiles ORDER BY created_at ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	profiles := []storage.Profile{}
	for rows.Next() {
		prof, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, prof)
	}

	return profiles, rows.Err()
}

func (p *PostgresStorage) GetProfile(ctx context.Context, id uuid.UUID) (*storage.Profile, error) {
	prof, err := scanProfile(p.pool.QueryRow(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE id = $1`,
		id,
	))

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}

	if err != nil {
		return nil, err
	}

	return &prof, nil
}

func (p *PostgresStorage) CreateProfile(ctx context.Context, profile *storage.Profile) error {
	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}

	now := time.Now()
	profile.CreatedAt = now
	profile.UpdatedAt = now

	_, err := p.pool.Exec(ctx, `
		INSERT INTO profiles (`+profileColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`,
		profile.ID,
		profile.OwnerUserID,
		profile.Name,
		profile.WeightKg,
		profile.HeightCm,
		profile.Age,
		profile.Sex,
		profile.ActivityLevel,
		profile.GoalIntent,
		profile.CalorieGoal,
		profile.ProteinGoalG,
		profile.CarbsGoalG,
		profile.FatsGoalG,
		profile.WaterGoalMl,
		profile.CreatedAt,
		profile.UpdatedAt,
	)

	return err
}

func (p *PostgresStorage) UpdateProfile(ctx context.Context, profile *storage.Profile) error {
	profile.UpdatedAt = time.Now()

	result, err := p.pool.Exec(ctx, `
		UPDATE profiles
		SET name = $2, weight_kg = $3, height_cm = $4, age = $5, sex = $6,
		    activity_level = $7, goal_intent = $8, calorie_goal = $9,
		    protein_goal_g = $10, carbs_goal_g = $11, fats_goal_g = $12,
		    water_goal_ml = $13, updated_at = $14
		WHERE id = $1
	`,
		profile.ID,
		profile.Name,
		profile.WeightKg,
		profile.HeightCm,
		profile.Age,
		profile.Sex,
		profile.ActivityLevel,
		profile.GoalIntent,
		profile.CalorieGoal,
		profile.ProteinGoalG,
		profile.CarbsGoalG,
		profile.FatsGoalG,
		profile.WaterGoalMl,
		profile.UpdatedAt,
	)

	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (p *PostgresStorage) DeleteProfile(ctx context.Context, id uuid.UUID) error {
	result, err := p.pool.Exec(ctx, `DELETE FROM profiles WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (p *PostgresStorage) Close() error {
	p.pool.Close()

	return nil
}

func (p *PostgresStorage) GetRecipesStorage() storage.RecipesStorage {
	return p.recipes
}

func (p *PostgresStorage) GetMealPlanStorage() storage.MealPlanStorage {
	return p.mealPlan
}

func (p *PostgresStorage) GetDailyLogStorage() storage.DailyLogStorage {
	return p.logs
}

func (p *PostgresStorage) GetShoppingStorage() storage.ShoppingStorage {
	return p.shopping
}

func (p *PostgresStorage) GetPhotosStorage() storage.PhotosStorage {
	return p.photos
}

func (p *PostgresStorage) GetReportsStorage() storage.ReportsStorage {
	return p.reports
}
