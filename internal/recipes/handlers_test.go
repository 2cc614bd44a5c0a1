package recipes_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pratofit/server/internal/recipes"
	"github.com/pratofit/server/internal/storage/memory"
)

func newTestHandler() *recipes.Handler {
	store := memory.New()
	return recipes.NewHandler(recipes.NewService(store.GetRecipesStorage()))
}

func TestHandleList_All(t *testing.T) {
	handler := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/v1/recipes", nil)
	w := httptest.NewRecorder()

	handler.HandleList(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var resp recipes.ListRecipesResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.Total != len(recipes.Seed()) {
		t.Errorf("expected total %d, got %d", len(recipes.Seed()), resp.Total)
	}
}

func TestHandleList_FilterByCategory(t *testing.T) {
	handler := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/v1/recipes?category=drink", nil)
	w := httptest.NewRecorder()

	handler.HandleList(w, req)

	var resp recipes.ListRecipesResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if len(resp.Recipes) == 0 {
		t.Fatal("expected drink recipes in seed catalog")
	}
	for _, r := range resp.Recipes {
		if r.Category != "drink" {
			t.Errorf("expected only drink recipes, got category %s", r.Category)
		}
	}
}

func TestHandleList_InvalidCategory(t *testing.T) {
	handler := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/v1/recipes?category=midnight", nil)
	w := httptest.NewRecorder()

	handler.HandleList(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
}

func TestHandleList_Search(t *testing.T) {
	handler := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/v1/recipes?q=salmon", nil)
	w := httptest.NewRecorder()

	handler.HandleList(w, req)

	var resp recipes.ListRecipesResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if len(resp.Recipes) != 1 {
		t.Fatalf("expected 1 match for 'salmon', got %d", len(resp.Recipes))
	}
	if resp.Recipes[0].Name != "Salmon with Quinoa" {
		t.Errorf("unexpected match: %s", resp.Recipes[0].Name)
	}
}

func TestHandleGet_NotFound(t *testing.T) {
	handler := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/v1/recipes/7f0c0000-0000-0000-0000-000000000001", nil)
	req.SetPathValue("id", "7f0c0000-0000-0000-0000-000000000001")
	w := httptest.NewRecorder()

	handler.HandleGet(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", w.Code)
	}
}

func TestHandleGet_IncludesIngredients(t *testing.T) {
	handler := newTestHandler()

	id := recipes.Seed()[0].ID.String()
	req := httptest.NewRequest(http.MethodGet, "/v1/recipes/"+id, nil)
	req.SetPathValue("id", id)
	w := httptest.NewRecorder()

	handler.HandleGet(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var recipe recipes.RecipeDTO
	if err := json.NewDecoder(w.Body).Decode(&recipe); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if len(recipe.Ingredients) == 0 {
		t.Error("expected ingredients in recipe detail")
	}
}
