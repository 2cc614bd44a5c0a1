package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pratofit/server/internal/storage"
)

type mealPlanStorage struct {
	mu    sync.RWMutex
	slots map[uuid.UUID]storage.MealSlot
}

func newMealPlanStorage() *mealPlanStorage {
	return &mealPlanStorage{slots: make(map[uuid.UUID]storage.MealSlot)}
}

// UpsertSlot replaces any existing slot for the same (profile, date, meal
// type). The replacing slot keeps its own ID.
func (s *mealPlanStorage) UpsertSlot(ctx context.Context, slot *storage.MealSlot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, existing := range s.slots {
		if existing.OwnerUserID == slot.OwnerUserID &&
			existing.ProfileID == slot.ProfileID &&
			existing.Date == slot.Date &&
			existing.MealType == slot.MealType {
			delete(s.slots, id)
		}
	}

	if slot.ID == uuid.Nil {
		slot.ID = uuid.New()
	}

	slot.CreatedAt = time.Now()
	slot.UpdatedAt = time.Now()

	s.slots[slot.ID] = *slot

	return nil
}

func (s *mealPlanStorage) GetSlot(ctx context.Context, ownerUserID string, profileID uuid.UUID, date, mealType string) (storage.MealSlot, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, slot := range s.slots {
		if slot.OwnerUserID == ownerUserID && slot.ProfileID == profileID && slot.Date == date && slot.MealType == mealType {
			return slot, true, nil
		}
	}

	return storage.MealSlot{}, false, nil
}

func (s *mealPlanStorage) DeleteSlot(ctx context.Context, ownerUserID string, profileID uuid.UUID, date, mealType string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, slot := range s.slots {
		if slot.OwnerUserID == ownerUserID && slot.ProfileID == profileID && slot.Date == date && slot.MealType == mealType {
			delete(s.slots, id)
		}
	}

	return nil
}

func (s *mealPlanStorage) ToggleSlotCompletion(ctx context.Context, ownerUserID string, profileID uuid.UUID, date, mealType string) (storage.MealSlot, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, slot := range s.slots {
		if slot.OwnerUserID == ownerUserID && slot.ProfileID == profileID && slot.Date == date && slot.MealType == mealType {
			slot.Completed = !slot.Completed
			slot.UpdatedAt = time.Now()
			s.slots[id] = slot

			return slot, true, nil
		}
	}

	return storage.MealSlot{}, false, nil
}

func (s *mealPlanStorage) ListSlotsForDate(ctx context.Context, ownerUserID string, profileID uuid.UUID, date string) ([]storage.MealSlot, error) {
	return s.listSlots(ownerUserID, profileID, date, date)
}

func (s *mealPlanStorage) ListSlots(ctx context.Context, ownerUserID string, profileID uuid.UUID) ([]storage.MealSlot, error) {
	// ISO dates, so "0000-01-01".."9999-12-31" spans everything.
	return s.listSlots(ownerUserID, profileID, "0000-01-01", "9999-12-31")
}

func (s *mealPlanStorage) ListSlotsRange(ctx context.Context, ownerUserID string, profileID uuid.UUID, fromDate, toDate string) ([]storage.MealSlot, error) {
	return s.listSlots(ownerUserID, profileID, fromDate, toDate)
}

func (s *mealPlanStorage) listSlots(ownerUserID string, profileID uuid.UUID, fromDate, toDate string) ([]storage.MealSlot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	slots := make([]storage.MealSlot, 0)
	for _, slot := range s.slots {
		if slot.OwnerUserID != ownerUserID || slot.ProfileID != profileID {
			continue
		}
		if slot.Date < fromDate || slot.Date > toDate {
			continue
		}
		slots = append(slots, slot)
	}

	// ISO dates sort lexicographically, so a plain string sort gives
	// chronological order.
	sort.Slice(slots, func(i, j int) bool {
		if slots[i].Date != slots[j].Date {
			return slots[i].Date < slots[j].Date
		}

		return mealTypeOrder(slots[i].MealType) < mealTypeOrder(slots[j].MealType)
	})

	return slots, nil
}

func (s *mealPlanStorage) DeleteSlotsFrom(ctx context.Context, ownerUserID string, profileID uuid.UUID, fromDate string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, slot := range s.slots {
		if slot.OwnerUserID != ownerUserID || slot.ProfileID != profileID {
			continue
		}
		if slot.Date < fromDate {
			continue
		}
		delete(s.slots, id)
	}

	return nil
}

func mealTypeOrder(mealType string) int {
	switch mealType {
	case "breakfast":
		return 0
	case "lunch":
		return 1
	case "snack":
		return 2
	case "dinner":
		return 3
	default:
		return 4
	}
}
