package shopping

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/pratofit/server/internal/storage"
	"github.com/pratofit/server/internal/userctx"
)

var ErrEmptyName = errors.New("item name cannot be empty")

// Service projects the meal plan's recipe ingredients into a shopping list.
// Derived item IDs are a stable digest of (date, meal type, ingredient name),
// which lets checked state survive regeneration as long as the underlying
// slot still produces the same ingredient.
type Service struct {
	items   storage.ShoppingStorage
	slots   storage.MealPlanStorage
	recipes storage.RecipesStorage
}

func NewService(items storage.ShoppingStorage, slots storage.MealPlanStorage, recipes storage.RecipesStorage) *Service {
	return &Service{items: items, slots: slots, recipes: recipes}
}

// DerivedItemID builds the stable identifier for a projected ingredient.
func DerivedItemID(date, mealType, ingredientName string) string {
	sum := sha1.Sum([]byte(date + "|" + mealType + "|" + strings.ToLower(strings.TrimSpace(ingredientName))))

	return hex.EncodeToString(sum[:])
}

// Regenerate recomputes the derived part of the list from the whole plan, so
// items backed by a slot outside any particular week survive regeneration.
// Manual items are never touched; checked derived items keep their state when
// the regenerated list still contains them.
func (s *Service) Regenerate(ctx context.Context, req RegenerateRequest) ([]ShoppingItemDTO, error) {
	profileID, err := uuid.Parse(req.ProfileID)
	if err != nil {
		return nil, fmt.Errorf("invalid_request: profile_id must be a UUID")
	}

	ownerUserID := userctx.GetUserIDOrDefault(ctx)

	slots, err := s.slots.ListSlots(ctx, ownerUserID, profileID)
	if err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}

	derived := []storage.ShoppingItem{}
	seen := map[string]bool{}
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
		for _, ing := range recipe.Ingredients {
			id := DerivedItemID(slot.Date, slot.MealType, ing.Name)
			if seen[id] {
				continue
			}
			seen[id] = true
			derived = append(derived, storage.ShoppingItem{
				ID:             id,
				Name:           ing.Name,
				Amount:         ing.Amount,
				Category:       ing.Category,
				SourceDate:     slot.Date,
				SourceMealType: slot.MealType,
			})
		}
	}

	items, err := s.items.ReplaceDerived(ctx, ownerUserID, profileID, derived)
	if err != nil {
		return nil, fmt.Errorf("replace derived: %w", err)
	}

	return toDTOs(items), nil
}

func (s *Service) List(ctx context.Context, profileID uuid.UUID) ([]ShoppingItemDTO, error) {
	items, err := s.items.ListItems(ctx, userctx.GetUserIDOrDefault(ctx), profileID)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}

	return toDTOs(items), nil
}

func (s *Service) AddManual(ctx context.Context, req AddItemRequest) (*ShoppingItemDTO, error) {
	profileID, err := uuid.Parse(req.ProfileID)
	if err != nil {
		return nil, fmt.Errorf("invalid_request: profile_id must be a UUID")
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrEmptyName
	}

	category := req.Category
	if category == "" {
		category = "other"
	}

	item := &storage.ShoppingItem{
		OwnerUserID: userctx.GetUserIDOrDefault(ctx),
		ProfileID:   profileID,
		Name:        name,
		Amount:      req.Amount,
		Category:    category,
		Manual:      true,
	}

	if err := s.items.CreateItem(ctx, item); err != nil {
		return nil, fmt.Errorf("create item: %w", err)
	}

	dto := toDTO(item)

	return &dto, nil
}

func (s *Service) Toggle(ctx context.Context, req ToggleItemRequest) (*ShoppingItemDTO, error) {
	ownerUserID := userctx.GetUserIDOrDefault(ctx)

	item, found, err := s.items.GetItem(ctx, ownerUserID, req.ItemID)
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	if !found {
		// Toggling an item that no longer exists is a no-op, not an error.
		return nil, nil
	}

	item.Checked = !item.Checked
	if err := s.items.UpdateItem(ctx, &item); err != nil {
		return nil, fmt.Errorf("update item: %w", err)
	}

	dto := toDTO(&item)

	return &dto, nil
}

func (s *Service) Delete(ctx context.Context, itemID string) error {
	// An absent item is treated as already deleted.
	_, err := s.items.DeleteItem(ctx, userctx.GetUserIDOrDefault(ctx), itemID)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}

	return nil
}

func (s *Service) ClearChecked(ctx context.Context, profileID uuid.UUID) (int, error) {
	removed, err := s.items.DeleteChecked(ctx, userctx.GetUserIDOrDefault(ctx), profileID)
	if err != nil {
		return 0, fmt.Errorf("delete checked: %w", err)
	}

	return removed, nil
}

func (s *Service) Clear(ctx context.Context, profileID uuid.UUID) error {
	if err := s.items.Clear(ctx, userctx.GetUserIDOrDefault(ctx), profileID); err != nil {
		return fmt.Errorf("clear items: %w", err)
	}

	return nil
}

func toDTO(item *storage.ShoppingItem) ShoppingItemDTO {
	return ShoppingItemDTO{
		ID:             item.ID,
		Name:           item.Name,
		Amount:         item.Amount,
		Category:       item.Category,
		Checked:        item.Checked,
		Manual:         item.Manual,
		SourceDate:     item.SourceDate,
		SourceMealType: item.SourceMealType,
		CreatedAt:      item.CreatedAt,
		UpdatedAt:      item.UpdatedAt,
	}
}

func toDTOs(items []storage.ShoppingItem) []ShoppingItemDTO {
	dtos := make([]ShoppingItemDTO, 0, len(items))
	for i := range items {
		dtos = append(dtos, toDTO(&items[i]))
	}

	return dtos
}
