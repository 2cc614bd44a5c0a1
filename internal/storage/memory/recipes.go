package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/pratofit/server/internal/recipes"
	"github.com/pratofit/server/internal/storage"
)

type recipesStorage struct {
	mu      sync.RWMutex
	recipes map[uuid.UUID]storage.Recipe
}

func newRecipesStorage() *recipesStorage {
	s := &recipesStorage{recipes: make(map[uuid.UUID]storage.Recipe)}
	for _, r := range recipes.Seed() {
		s.recipes[r.ID] = r
	}

	return s
}

func (s *recipesStorage) ListRecipes(ctx context.Context, category, query string, limit, offset int) ([]storage.Recipe, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q := strings.ToLower(strings.TrimSpace(query))

	matched := make([]storage.Recipe, 0, len(s.recipes))
	for _, r := range s.recipes {
		if category != "" && r.Category != category {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(r.Name), q) {
			continue
		}
		matched = append(matched, r)
	}

	sort.Slice(matched, func(i, j int) bool { return matched[i].Name < matched[j].Name })

	total := len(matched)
	if offset >= total {
		return []storage.Recipe{}, total, nil
	}
	matched = matched[offset:]
	if limit > 0 && limit < len(matched) {
		matched = matched[:limit]
	}

	return matched, total, nil
}

func (s *recipesStorage) GetRecipe(ctx context.Context, id uuid.UUID) (*storage.Recipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.recipes[id]
	if !ok {
		return nil, nil
	}

	return &r, nil
}
