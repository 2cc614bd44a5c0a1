package nutrition

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pratofit/server/internal/storage"
	"github.com/pratofit/server/internal/userctx"
)

var (
	ErrInvalidDate     = errors.New("invalid date format, expected YYYY-MM-DD")
	ErrProfileNotFound = errors.New("profile not found")
)

const dateLayout = "2006-01-02"

// Service folds the day's meal slots into consumed macro totals. Slots whose
// recipe reference does not resolve contribute zero and are skipped.
type Service struct {
	profiles storage.Storage
	slots    storage.MealPlanStorage
	recipes  storage.RecipesStorage
	logs     storage.DailyLogStorage
}

func NewService(profiles storage.Storage, slots storage.MealPlanStorage, recipes storage.RecipesStorage, logs storage.DailyLogStorage) *Service {
	return &Service{profiles: profiles, slots: slots, recipes: recipes, logs: logs}
}

func (s *Service) DaySummary(ctx context.Context, profileID uuid.UUID, date string) (*DaySummaryDTO, error) {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, ErrInvalidDate
	}

	ownerUserID := userctx.GetUserIDOrDefault(ctx)

	profile, err := s.profiles.GetProfile(ctx, profileID)
	if err != nil || profile.OwnerUserID != ownerUserID {
		return nil, ErrProfileNotFound
	}

	slots, err := s.slots.ListSlotsForDate(ctx, ownerUserID, profileID, date)
	if err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}

	consumed := TotalsDTO{}
	counted := 0
	for _, slot := range slots {
		if slot.RecipeID == nil {
			continue
		}
		recipe, err := s.recipes.GetRecipe(ctx, *slot.RecipeID)
		if err != nil {
			return nil, fmt.Errorf("get recipe: %w", err)
		}
		if recipe == nil {
			continue
		}
		consumed.CaloriesKcal += recipe.CaloriesKcal
		consumed.ProteinG += recipe.ProteinG
		consumed.CarbsG += recipe.CarbsG
		consumed.FatsG += recipe.FatsG
		counted++
	}

	waterMl := 0
	if log, found, err := s.logs.GetLog(ctx, ownerUserID, profileID, date); err != nil {
		return nil, fmt.Errorf("get log: %w", err)
	} else if found {
		waterMl = log.WaterMl
	}

	return &DaySummaryDTO{
		Date:      date,
		ProfileID: profileID.String(),
		Consumed:  consumed,
		Targets: TargetsDTO{
			CalorieGoal:  profile.CalorieGoal,
			ProteinGoalG: profile.ProteinGoalG,
			CarbsGoalG:   profile.CarbsGoalG,
			FatsGoalG:    profile.FatsGoalG,
			WaterGoalMl:  profile.WaterGoalMl,
		},
		WaterMl:   waterMl,
		SlotCount: counted,
	}, nil
}
