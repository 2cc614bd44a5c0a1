package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pratofit/server/internal/storage"
)

var (
	ErrNotFound = errors.New("profile not found")
)

// MemoryStorage is the in-memory implementation of every storage interface.
// Used when DATABASE_URL is not set and as the fallback when Postgres is
// unreachable.
type MemoryStorage struct {
	mu       sync.RWMutex
	profiles map[uuid.UUID]storage.Profile

	recipes  *recipesStorage
	mealPlan *mealPlanStorage
	logs     *dailyLogStorage
	shopping *shoppingStorage
	photos   *photosStorage
	reports  *reportsStorage
}

// New creates a MemoryStorage with a seeded recipe catalog and a default
// owner profile.
func New() *MemoryStorage {
	ownerID := uuid.New()
	owner := storage.Profile{
		ID:            ownerID,
		OwnerUserID:   "default",
		Name:          "Me",
		ActivityLevel: "moderate",
		GoalIntent:    "maintain",
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	return &MemoryStorage{
		profiles: map[uuid.UUID]storage.Profile{
			ownerID: owner,
		},
		recipes:  newRecipesStorage(),
		mealPlan: newMealPlanStorage(),
		logs:     newDailyLogStorage(),
		shopping: newShoppingStorage(),
		photos:   newPhotosStorage(),
		reports:  newReportsStorage(),
	}
}

func (m *MemoryStorage) ListProfiles(ctx context.Context) ([]storage.Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	profiles := make([]storage.Profile, 0, len(m.profiles))
	for _, p := range m.profiles {
		profiles = append(profiles, p)
	}

	return profiles, nil
}

func (m *MemoryStorage) GetProfile(ctx context.Context, id uuid.UUID) (*storage.Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.profiles[id]
	if !ok {
		return nil, ErrNotFound
	}

	return &p, nil
}

func (m *MemoryStorage) CreateProfile(ctx context.Context, profile *storage.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}

	profile.CreatedAt = time.Now()
	profile.UpdatedAt = time.Now()

	m.profiles[profile.ID] = *profile

	return nil
}

func (m *MemoryStorage) UpdateProfile(ctx context.Context, profile *storage.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.profiles[profile.ID]; !ok {
		return ErrNotFound
	}

	profile.UpdatedAt = time.Now()
	m.profiles[profile.ID] = *profile

	return nil
}

func (m *MemoryStorage) DeleteProfile(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.profiles[id]; !ok {
		return ErrNotFound
	}

	delete(m.profiles, id)

	return nil
}

func (m *MemoryStorage) Close() error {
	return nil
}

// Sub-storage accessors, used by the composition root in httpserver.

func (m *MemoryStorage) GetRecipesStorage() storage.RecipesStorage {
	return m.recipes
}

func (m *MemoryStorage) GetMealPlanStorage() storage.MealPlanStorage {
	return m.mealPlan
}

func (m *MemoryStorage) GetDailyLogStorage() storage.DailyLogStorage {
	return m.logs
}

func (m *MemoryStorage) GetShoppingStorage() storage.ShoppingStorage {
	return m.shopping
}

func (m *MemoryStorage) GetPhotosStorage() storage.PhotosStorage {
	return m.photos
}

func (m *MemoryStorage) GetReportsStorage() storage.ReportsStorage {
	return m.reports
}
