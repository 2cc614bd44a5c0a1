package nutrition

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/pratofit/server/internal/recipes"
	"github.com/pratofit/server/internal/storage"
	"github.com/pratofit/server/internal/storage/memory"
)

func newTestEnv(t *testing.T) (*Handler, *memory.MemoryStorage, uuid.UUID) {
	t.Helper()

	store := memory.New()
	service := NewService(store, store.GetMealPlanStorage(), store.GetRecipesStorage(), store.GetDailyLogStorage())
	handler := NewHandler(service)

	profiles, err := store.ListProfiles(context.Background())
	if err != nil || len(profiles) == 0 {
		t.Fatalf("expected seeded owner profile: %v", err)
	}

	return handler, store, profiles[0].ID
}

func getSummary(t *testing.T, handler *Handler, profileID uuid.UUID, date string) DaySummaryDTO {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet,
		"/v1/nutrition/day?profile_id="+profileID.String()+"&date="+date, nil)
	w := httptest.NewRecorder()

	handler.HandleDay(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var summary DaySummaryDTO
	if err := json.NewDecoder(w.Body).Decode(&summary); err != nil {
		t.Fatalf("failed to decode summary: %v", err)
	}

	return summary
}

func TestHandleDay_EmptyDateIsAllZero(t *testing.T) {
	handler, _, profileID := newTestEnv(t)

	summary := getSummary(t, handler, profileID, "2024-02-01")

	if summary.Consumed != (TotalsDTO{}) {
		t.Errorf("expected all-zero totals, got %+v", summary.Consumed)
	}
	if summary.SlotCount != 0 {
		t.Errorf("expected 0 counted slots, got %d", summary.SlotCount)
	}
}

func TestHandleDay_SumsResolvedRecipes(t *testing.T) {
	handler, store, profileID := newTestEnv(t)

	seed := recipes.Seed()
	first, second := seed[0], seed[1]

	ctx := context.Background()
	for _, slot := range []storage.MealSlot{
		{OwnerUserID: "default", ProfileID: profileID, Date: "2024-02-01", MealType: "lunch", RecipeID: &first.ID},
		{OwnerUserID: "default", ProfileID: profileID, Date: "2024-02-01", MealType: "dinner", RecipeID: &second.ID},
	} {
		s := slot
		if err := store.GetMealPlanStorage().UpsertSlot(ctx, &s); err != nil {
			t.Fatalf("upsert slot: %v", err)
		}
	}

	summary := getSummary(t, handler, profileID, "2024-02-01")

	if summary.Consumed.CaloriesKcal != first.CaloriesKcal+second.CaloriesKcal {
		t.Errorf("expected %d kcal, got %d", first.CaloriesKcal+second.CaloriesKcal, summary.Consumed.CaloriesKcal)
	}
	if summary.Consumed.ProteinG != first.ProteinG+second.ProteinG {
		t.Errorf("expected %d g protein, got %d", first.ProteinG+second.ProteinG, summary.Consumed.ProteinG)
	}
	if summary.SlotCount != 2 {
		t.Errorf("expected 2 counted slots, got %d", summary.SlotCount)
	}
}

func TestHandleDay_UnresolvedRecipeContributesZero(t *testing.T) {
	handler, store, profileID := newTestEnv(t)

	seed := recipes.Seed()
	known := seed[0]
	ghost := uuid.New()

	ctx := context.Background()
	for _, slot := range []storage.MealSlot{
		{OwnerUserID: "default", ProfileID: profileID, Date: "2024-02-02", MealType: "lunch", RecipeID: &known.ID},
		{OwnerUserID: "default", ProfileID: profileID, Date: "2024-02-02", MealType: "dinner", RecipeID: &ghost},
	} {
		s := slot
		if err := store.GetMealPlanStorage().UpsertSlot(ctx, &s); err != nil {
			t.Fatalf("upsert slot: %v", err)
		}
	}

	summary := getSummary(t, handler, profileID, "2024-02-02")

	if summary.Consumed.CaloriesKcal != known.CaloriesKcal {
		t.Errorf("expected only resolved recipe to count, got %d kcal", summary.Consumed.CaloriesKcal)
	}
	if summary.SlotCount != 1 {
		t.Errorf("expected 1 counted slot, got %d", summary.SlotCount)
	}
}

func TestHandleDay_OtherDatesExcluded(t *testing.T) {
	handler, store, profileID := newTestEnv(t)

	seed := recipes.Seed()
	ctx := context.Background()
	slot := storage.MealSlot{
		OwnerUserID: "default", ProfileID: profileID,
		Date: "2024-02-03", MealType: "lunch", RecipeID: &seed[0].ID,
	}
	if err := store.GetMealPlanStorage().UpsertSlot(ctx, &slot); err != nil {
		t.Fatalf("upsert slot: %v", err)
	}

	summary := getSummary(t, handler, profileID, "2024-02-04")

	if summary.Consumed.CaloriesKcal != 0 {
		t.Errorf("expected slots on other dates to be excluded, got %d kcal", summary.Consumed.CaloriesKcal)
	}
}

func TestHandleDay_UnknownProfile(t *testing.T) {
	handler, _, _ := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet,
		"/v1/nutrition/day?profile_id="+uuid.NewString()+"&date=2024-02-01", nil)
	w := httptest.NewRecorder()

	handler.HandleDay(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", w.Code)
	}
}
