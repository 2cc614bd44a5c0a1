package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pratofit/server/internal/storage"
)

type shoppingStorage struct {
	mu    sync.RWMutex
	items map[string]storage.ShoppingItem
}

func newShoppingStorage() *shoppingStorage {
	return &shoppingStorage{items: make(map[string]storage.ShoppingItem)}
}

func (s *shoppingStorage) ListItems(ctx context.Context, ownerUserID string, profileID uuid.UUID) ([]storage.ShoppingItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]storage.ShoppingItem, 0)
	for _, item := range s.items {
		if item.OwnerUserID == ownerUserID && item.ProfileID == profileID {
			items = append(items, item)
		}
	}

	sortItems(items)

	return items, nil
}

func (s *shoppingStorage) GetItem(ctx context.Context, ownerUserID string, itemID string) (storage.ShoppingItem, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.items[itemID]
	if !ok || item.OwnerUserID != ownerUserID {
		return storage.ShoppingItem{}, false, nil
	}

	return item, true, nil
}

func (s *shoppingStorage) CreateItem(ctx context.Context, item *storage.ShoppingItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if item.ID == "" {
		item.ID = uuid.NewString()
	}

	item.CreatedAt = time.Now()
	item.UpdatedAt = time.Now()

	s.items[item.ID] = *item

	return nil
}

func (s *shoppingStorage) UpdateItem(ctx context.Context, item *storage.ShoppingItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[item.ID]; !ok {
		return ErrNotFound
	}

	item.UpdatedAt = time.Now()
	s.items[item.ID] = *item

	return nil
}

func (s *shoppingStorage) DeleteItem(ctx context.Context, ownerUserID string, itemID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[itemID]
	if !ok || item.OwnerUserID != ownerUserID {
		return false, nil
	}

	delete(s.items, itemID)

	return true, nil
}

// ReplaceDerived swaps all non-manual items for the profile with the given
// set. Checked state of a surviving derived item is preserved by ID, and
// manual items are left untouched.
func (s *shoppingStorage) ReplaceDerived(ctx context.Context, ownerUserID string, profileID uuid.UUID, derived []storage.ShoppingItem) ([]storage.ShoppingItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	checked := make(map[string]bool)
	for id, item := range s.items {
		if item.OwnerUserID != ownerUserID || item.ProfileID != profileID || item.Manual {
			continue
		}
		if item.Checked {
			checked[id] = true
		}
		delete(s.items, id)
	}

	now := time.Now()
	for i := range derived {
		item := derived[i]
		item.OwnerUserID = ownerUserID
		item.ProfileID = profileID
		if checked[item.ID] {
			item.Checked = true
		}
		item.CreatedAt = now
		item.UpdatedAt = now
		s.items[item.ID] = item
	}

	items := make([]storage.ShoppingItem, 0)
	for _, item := range s.items {
		if item.OwnerUserID == ownerUserID && item.ProfileID == profileID {
			items = append(items, item)
		}
	}

	sortItems(items)

	return items, nil
}

func (s *shoppingStorage) DeleteChecked(ctx context.Context, ownerUserID string, profileID uuid.UUID) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, item := range s.items {
		if item.OwnerUserID == ownerUserID && item.ProfileID == profileID && item.Checked {
			delete(s.items, id)
			removed++
		}
	}

	return removed, nil
}

func (s *shoppingStorage) Clear(ctx context.Context, ownerUserID string, profileID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, item := range s.items {
		if item.OwnerUserID == ownerUserID && item.ProfileID == profileID {
			delete(s.items, id)
		}
	}

	return nil
}

func sortItems(items []storage.ShoppingItem) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].Category != items[j].Category {
			return items[i].Category < items[j].Category
		}
		if items[i].Name != items[j].Name {
			return items[i].Name < items[j].Name
		}

		return items[i].ID < items[j].ID
	})
}
