package recipes

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/pratofit/server/internal/storage"
)

var (
	ErrNotFound        = errors.New("recipe not found")
	ErrInvalidCategory = errors.New("invalid category")
)

const (
	defaultLimit = 50
	maxLimit     = 200
)

var validCategories = map[string]bool{
	"savory":  true,
	"snack":   true,
	"dessert": true,
	"drink":   true,
}

// Service exposes the read-only recipe catalog.
type Service struct {
	storage storage.RecipesStorage
}

func NewService(st storage.RecipesStorage) *Service {
	return &Service{storage: st}
}

func (s *Service) List(ctx context.Context, category, query string, limit, offset int) ([]RecipeDTO, int, error) {
	if category != "" && !validCategories[category] {
		return nil, 0, ErrInvalidCategory
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if offset < 0 {
		offset = 0
	}

	recipes, total, err := s.storage.ListRecipes(ctx, category, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list recipes: %w", err)
	}

	dtos := make([]RecipeDTO, 0, len(recipes))
	for i := range recipes {
		dtos = append(dtos, toDTO(&recipes[i]))
	}

	return dtos, total, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*RecipeDTO, error) {
	recipe, err := s.storage.GetRecipe(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get recipe: %w", err)
	}
	if recipe == nil {
		return nil, ErrNotFound
	}

	dto := toDTO(recipe)

	return &dto, nil
}

func toDTO(r *storage.Recipe) RecipeDTO {
	ingredients := make([]IngredientDTO, 0, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		ingredients = append(ingredients, IngredientDTO{
			Name:     ing.Name,
			Amount:   ing.Amount,
			Category: ing.Category,
		})
	}

	return RecipeDTO{
		ID:           r.ID.String(),
		Name:         r.Name,
		Category:     r.Category,
		CaloriesKcal: r.CaloriesKcal,
		ProteinG:     r.ProteinG,
		CarbsG:       r.CarbsG,
		FatsG:        r.FatsG,
		Ingredients:  ingredients,
		CreatedAt:    r.CreatedAt,
	}
}
