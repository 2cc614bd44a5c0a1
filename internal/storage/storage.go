package storage

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Profile is a tracked person: physical attributes plus the derived
// calorie/macro/water targets computed from them.
type Profile struct {
	ID          uuid.UUID
	OwnerUserID string
	Name        string

	WeightKg      float64
	HeightCm      float64
	Age           int
	Sex           string // "male" or "female"
	ActivityLevel string // sedentary, light, moderate, intense, athlete
	GoalIntent    string // "cut", "maintain", "bulk"

	// Derived targets. Recomputed by the goals service when the physical
	// attributes or goal intent change, never on read.
	CalorieGoal  int
	ProteinGoalG int
	CarbsGoalG   int
	FatsGoalG    int
	WaterGoalMl  int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Storage is the profiles store.
type Storage interface {
	ListProfiles(ctx context.Context) ([]Profile, error)

	GetProfile(ctx context.Context, id uuid.UUID) (*Profile, error)

	CreateProfile(ctx context.Context, profile *Profile) error

	UpdateProfile(ctx context.Context, profile *Profile) error

	DeleteProfile(ctx context.Context, id uuid.UUID) error

	// Close releases the underlying connection (Postgres).
	Close() error
}

// Ingredient is one line of a recipe's ingredient list.
type Ingredient struct {
	Name     string
	Amount   string
	Category string
}

// Recipe — a catalog entry. Macros are per full recipe/portion.
// The catalog is read-only for the rest of the system.
type Recipe struct {
	ID           uuid.UUID
	Name         string
	Category     string // "savory", "snack", "dessert", "drink"
	CaloriesKcal int
	ProteinG     int
	CarbsG       int
	FatsG        int
	Ingredients  []Ingredient
	CreatedAt    time.Time
}

// RecipesStorage is the read-only recipe catalog.
type RecipesStorage interface {
	// ListRecipes returns recipes filtered by category and/or name query.
	// Empty category/query match everything. Returns total count for paging.
	ListRecipes(ctx context.Context, category, query string, limit, offset int) ([]Recipe, int, error)

	// GetRecipe returns the recipe or (nil, nil) when the id is unknown.
	GetRecipe(ctx context.Context, id uuid.UUID) (*Recipe, error)
}

// MealSlot is one (date, meal type) position in the plan. At most one slot
// exists per (profile, date, meal type); assignment replaces the previous one.
type MealSlot struct {
	ID          uuid.UUID
	OwnerUserID string
	ProfileID   uuid.UUID
	Date        string // YYYY-MM-DD
	MealType    string // "breakfast", "lunch", "snack", "dinner"
	RecipeID    *uuid.UUID
	Completed   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// MealPlanStorage manages meal slots.
type MealPlanStorage interface {
	// UpsertSlot inserts the slot, replacing any existing slot for the same
	// (owner, profile, date, meal type).
	UpsertSlot(ctx context.Context, slot *MealSlot) error

	// GetSlot returns the slot for the key. bool=false when absent.
	GetSlot(ctx context.Context, ownerUserID string, profileID uuid.UUID, date, mealType string) (MealSlot, bool, error)

	// DeleteSlot removes the slot. Deleting an absent slot is not an error.
	DeleteSlot(ctx context.Context, ownerUserID string, profileID uuid.UUID, date, mealType string) error

	// ToggleSlotCompletion flips the completed flag. bool=false when the
	// slot does not exist (no-op).
	ToggleSlotCompletion(ctx context.Context, ownerUserID string, profileID uuid.UUID, date, mealType string) (MealSlot, bool, error)

	// ListSlotsForDate returns the (≤4) slots for one day.
	ListSlotsForDate(ctx context.Context, ownerUserID string, profileID uuid.UUID, date string) ([]MealSlot, error)

	// ListSlots returns every slot of the profile's plan, ordered like
	// ListSlotsRange.
	ListSlots(ctx context.Context, ownerUserID string, profileID uuid.UUID) ([]MealSlot, error)

	// ListSlotsRange returns slots with from <= date <= to, ordered by
	// (date, meal type).
	ListSlotsRange(ctx context.Context, ownerUserID string, profileID uuid.UUID, from, to string) ([]MealSlot, error)

	// DeleteSlotsFrom removes every slot with date >= from. Used by the
	// plan generator, which overwrites rather than merges.
	DeleteSlotsFrom(ctx context.Context, ownerUserID string, profileID uuid.UUID, from string) error
}

// DailyLog is the per-date rollup of water, sleep, weight and exercise.
// Rows are created lazily on first write and never expire.
type DailyLog struct {
	ID           uuid.UUID
	OwnerUserID  string
	ProfileID    uuid.UUID
	Date         string // YYYY-MM-DD
	WaterMl      int
	SleepHours   float64
	WeightKg     *float64
	PhotoID      *uuid.UUID
	ExerciseKcal *int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// DailyLogStorage manages per-date logs.
type DailyLogStorage interface {
	// GetLog returns the log for the date. bool=false when no row exists.
	GetLog(ctx context.Context, ownerUserID string, profileID uuid.UUID, date string) (DailyLog, bool, error)

	// UpsertLog creates or replaces the log for (owner, profile, date).
	UpsertLog(ctx context.Context, log *DailyLog) error

	// ListLogsRange returns existing rows with from <= date <= to,
	// ascending by date. Missing days are simply absent.
	ListLogsRange(ctx context.Context, ownerUserID string, profileID uuid.UUID, from, to string) ([]DailyLog, error)

	// LatestWeightBefore returns the most recent logged weight with
	// date < before, or nil when the profile has no earlier weight.
	LatestWeightBefore(ctx context.Context, ownerUserID string, profileID uuid.UUID, before string) (*float64, error)
}

// ShoppingItem is a shopping-list entry. Derived items carry a stable id
// computed from their source (date, meal type, ingredient) so checked state
// survives regeneration; manual items get a fresh uuid and persist until
// removed explicitly.
type ShoppingItem struct {
	ID             string
	OwnerUserID    string
	ProfileID      uuid.UUID
	Name           string
	Amount         string
	Category       string
	Checked        bool
	Manual         bool
	SourceDate     string // derived items only
	SourceMealType string // derived items only
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ShoppingStorage manages the shopping list.
type ShoppingStorage interface {
	ListItems(ctx context.Context, ownerUserID string, profileID uuid.UUID) ([]ShoppingItem, error)

	GetItem(ctx context.Context, ownerUserID, id string) (ShoppingItem, bool, error)

	CreateItem(ctx context.Context, item *ShoppingItem) error

	UpdateItem(ctx context.Context, item *ShoppingItem) error

	// DeleteItem removes one item. bool=false when absent (no-op).
	DeleteItem(ctx context.Context, ownerUserID, id string) (bool, error)

	// ReplaceDerived atomically replaces all derived items of the profile
	// with the given set, leaving manual items untouched. Returns the full
	// resulting list.
	ReplaceDerived(ctx context.Context, ownerUserID string, profileID uuid.UUID, items []ShoppingItem) ([]ShoppingItem, error)

	// DeleteChecked removes all checked items and returns how many.
	DeleteChecked(ctx context.Context, ownerUserID string, profileID uuid.UUID) (int, error)

	// Clear removes every item of the profile, manual included.
	Clear(ctx context.Context, ownerUserID string, profileID uuid.UUID) error
}

// ProgressPhoto is an uploaded body photo, already processed to the fixed
// 1080x1080 JPEG format before storage.
type ProgressPhoto struct {
	ID          uuid.UUID
	OwnerUserID string
	ProfileID   uuid.UUID
	Date        string  // YYYY-MM-DD
	ObjectKey   *string // S3 object key (nil in memory mode)
	ContentType string
	SizeBytes   int64
	CreatedAt   time.Time
}

// PhotosStorage manages progress photo metadata (and blob bytes when no
// object store is configured).
type PhotosStorage interface {
	CreatePhoto(ctx context.Context, photo *ProgressPhoto) error

	// GetPhoto returns (nil, nil) when the photo does not exist or belongs
	// to another owner.
	GetPhoto(ctx context.Context, ownerUserID string, id uuid.UUID) (*ProgressPhoto, error)

	ListPhotos(ctx context.Context, ownerUserID string, profileID uuid.UUID) ([]ProgressPhoto, error)

	DeletePhoto(ctx context.Context, ownerUserID string, id uuid.UUID) error

	// PutPhotoBlob / GetPhotoBlob store processed image bytes when no
	// object store is configured; with S3 the bytes live behind ObjectKey.
	PutPhotoBlob(ctx context.Context, photoID uuid.UUID, data []byte) error
	GetPhotoBlob(ctx context.Context, photoID uuid.UUID) ([]byte, error)
}

// ReportMeta is a generated progress report.
type ReportMeta struct {
	ID          uuid.UUID
	OwnerUserID string
	ProfileID   uuid.UUID
	FromDate    string // YYYY-MM-DD
	ToDate      string // YYYY-MM-DD
	ObjectKey   *string
	SizeBytes   int64
	Status      string // "ready" or "failed"
	Error       *string
	CreatedAt   time.Time
	Data        []byte // memory mode only, not persisted in Postgres
}

// ReportsStorage manages report metadata.
type ReportsStorage interface {
	CreateReport(ctx context.Context, report *ReportMeta) error

	// GetReport returns (nil, nil) when the report does not exist or belongs
	// to another owner.
	GetReport(ctx context.Context, ownerUserID string, id uuid.UUID) (*ReportMeta, error)

	// ListReports returns reports newest first plus the total count for paging.
	ListReports(ctx context.Context, ownerUserID string, profileID uuid.UUID, limit, offset int) ([]ReportMeta, int, error)

	DeleteReport(ctx context.Context, ownerUserID string, id uuid.UUID) error
}
