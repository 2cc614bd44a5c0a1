package mealplan

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/pratofit/server/internal/storage"
	"github.com/pratofit/server/internal/userctx"
)

var (
	ErrInvalidDate     = errors.New("invalid date format, expected YYYY-MM-DD")
	ErrInvalidMealType = errors.New("invalid meal type")
	ErrRecipeNotFound  = errors.New("recipe not found")
)

const dateLayout = "2006-01-02"

var mealTypes = []string{"breakfast", "lunch", "snack", "dinner"}

// generationCategories maps each meal type to the recipe categories the
// weekly generator draws from.
var generationCategories = map[string][]string{
	"breakfast": {"snack", "dessert", "drink"},
	"snack":     {"snack", "dessert", "drink"},
	"lunch":     {"savory"},
	"dinner":    {"savory"},
}

// Service manages the meal plan calendar. Each (profile, date, meal type)
// cell holds at most one slot; assigning over an occupied cell replaces it.
type Service struct {
	slots   storage.MealPlanStorage
	recipes storage.RecipesStorage
	rng     *rand.Rand
}

func NewService(slots storage.MealPlanStorage, recipes storage.RecipesStorage, rng *rand.Rand) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return &Service{slots: slots, recipes: recipes, rng: rng}
}

func (s *Service) Assign(ctx context.Context, req AssignSlotRequest) (*MealSlotDTO, error) {
	profileID, err := uuid.Parse(req.ProfileID)
	if err != nil {
		return nil, fmt.Errorf("invalid_request: profile_id must be a UUID")
	}
	if err := validateDate(req.Date); err != nil {
		return nil, err
	}
	if !validMealType(req.MealType) {
		return nil, ErrInvalidMealType
	}

	recipeID, err := uuid.Parse(req.RecipeID)
	if err != nil {
		return nil, fmt.Errorf("invalid_request: recipe_id must be a UUID")
	}

	recipe, err := s.recipes.GetRecipe(ctx, recipeID)
	if err != nil {
		return nil, fmt.Errorf("get recipe: %w", err)
	}
	if recipe == nil {
		return nil, ErrRecipeNotFound
	}

	slot := &storage.MealSlot{
		OwnerUserID: userctx.GetUserIDOrDefault(ctx),
		ProfileID:   profileID,
		Date:        req.Date,
		MealType:    req.MealType,
		RecipeID:    &recipeID,
	}

	if err := s.slots.UpsertSlot(ctx, slot); err != nil {
		return nil, fmt.Errorf("upsert slot: %w", err)
	}

	dto := toDTO(slot)

	return &dto, nil
}

func (s *Service) Delete(ctx context.Context, req SlotKeyRequest) error {
	profileID, err := uuid.Parse(req.ProfileID)
	if err != nil {
		return fmt.Errorf("invalid_request: profile_id must be a UUID")
	}
	if err := validateDate(req.Date); err != nil {
		return err
	}
	if !validMealType(req.MealType) {
		return ErrInvalidMealType
	}

	return s.slots.DeleteSlot(ctx, userctx.GetUserIDOrDefault(ctx), profileID, req.Date, req.MealType)
}

func (s *Service) ToggleCompletion(ctx context.Context, req SlotKeyRequest) (*MealSlotDTO, error) {
	profileID, err := uuid.Parse(req.ProfileID)
	if err != nil {
		return nil, fmt.Errorf("invalid_request: profile_id must be a UUID")
	}
	if err := validateDate(req.Date); err != nil {
		return nil, err
	}
	if !validMealType(req.MealType) {
		return nil, ErrInvalidMealType
	}

	slot, found, err := s.slots.ToggleSlotCompletion(ctx, userctx.GetUserIDOrDefault(ctx), profileID, req.Date, req.MealType)
	if err != nil {
		return nil, fmt.Errorf("toggle slot: %w", err)
	}
	if !found {
		// Toggling an absent slot is a no-op, like deleting one.
		return nil, nil
	}

	dto := toDTO(&slot)

	return &dto, nil
}

func (s *Service) Day(ctx context.Context, profileID uuid.UUID, date string) ([]MealSlotDTO, error) {
	if err := validateDate(date); err != nil {
		return nil, err
	}

	slots, err := s.slots.ListSlotsForDate(ctx, userctx.GetUserIDOrDefault(ctx), profileID, date)
	if err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}

	return toDTOs(slots), nil
}

// Week returns the seven days starting at startDate.
func (s *Service) Week(ctx context.Context, profileID uuid.UUID, startDate string) ([]MealSlotDTO, string, error) {
	start, err := time.Parse(dateLayout, startDate)
	if err != nil {
		return nil, "", ErrInvalidDate
	}

	endDate := start.AddDate(0, 0, 6).Format(dateLayout)

	slots, err := s.slots.ListSlotsRange(ctx, userctx.GetUserIDOrDefault(ctx), profileID, startDate, endDate)
	if err != nil {
		return nil, "", fmt.Errorf("list slots: %w", err)
	}

	return toDTOs(slots), endDate, nil
}

// Generate builds a full week of slots starting at startDate. Every slot
// from startDate onward is discarded first, so generation is a complete
// overwrite of the plan, not a merge.
func (s *Service) Generate(ctx context.Context, req GenerateRequest) ([]MealSlotDTO, error) {
	profileID, err := uuid.Parse(req.ProfileID)
	if err != nil {
		return nil, fmt.Errorf("invalid_request: profile_id must be a UUID")
	}

	start, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return nil, ErrInvalidDate
	}

	candidates, err := s.candidatesByMealType(ctx)
	if err != nil {
		return nil, err
	}

	ownerUserID := userctx.GetUserIDOrDefault(ctx)

	if err := s.slots.DeleteSlotsFrom(ctx, ownerUserID, profileID, req.StartDate); err != nil {
		return nil, fmt.Errorf("clear plan: %w", err)
	}

	created := []MealSlotDTO{}
	for day := 0; day < 7; day++ {
		date := start.AddDate(0, 0, day).Format(dateLayout)
		for _, mealType := range mealTypes {
			pool := candidates[mealType]
			if len(pool) == 0 {
				// No recipe matches this meal type's categories; the
				// slot stays empty rather than failing the whole plan.
				continue
			}
			recipeID := pool[s.rng.Intn(len(pool))]

			slot := &storage.MealSlot{
				OwnerUserID: ownerUserID,
				ProfileID:   profileID,
				Date:        date,
				MealType:    mealType,
				RecipeID:    &recipeID,
			}
			if err := s.slots.UpsertSlot(ctx, slot); err != nil {
				return nil, fmt.Errorf("create slot: %w", err)
			}
			created = append(created, toDTO(slot))
		}
	}

	return created, nil
}

func (s *Service) candidatesByMealType(ctx context.Context) (map[string][]uuid.UUID, error) {
	byCategory := make(map[string][]uuid.UUID)

	recipes, _, err := s.recipes.ListRecipes(ctx, "", "", 0, 0)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	for _, r := range recipes {
		byCategory[r.Category] = append(byCategory[r.Category], r.ID)
	}

	candidates := make(map[string][]uuid.UUID)
	for mealType, categories := range generationCategories {
		for _, category := range categories {
			candidates[mealType] = append(candidates[mealType], byCategory[category]...)
		}
	}

	return candidates, nil
}

func validateDate(date string) error {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return ErrInvalidDate
	}

	return nil
}

func validMealType(mealType string) bool {
	for _, mt := range mealTypes {
		if mt == mealType {
			return true
		}
	}

	return false
}

func toDTO(slot *storage.MealSlot) MealSlotDTO {
	var recipeID *string
	if slot.RecipeID != nil {
		id := slot.RecipeID.String()
		recipeID = &id
	}

	return MealSlotDTO{
		ID:        slot.ID.String(),
		ProfileID: slot.ProfileID.String(),
		Date:      slot.Date,
		MealType:  slot.MealType,
		RecipeID:  recipeID,
		Completed: slot.Completed,
		CreatedAt: slot.CreatedAt,
		UpdatedAt: slot.UpdatedAt,
	}
}

func toDTOs(slots []storage.MealSlot) []MealSlotDTO {
	dtos := make([]MealSlotDTO, 0, len(slots))
	for i := range slots {
		dtos = append(dtos, toDTO(&slots[i]))
	}

	return dtos
}
