package recipes

import "time"

type IngredientDTO struct {
	Name     string `json:"name"`
	Amount   string `json:"amount"`
	Category string `json:"category"`
}

type RecipeDTO struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	CaloriesKcal int             `json:"calories_kcal"`
	ProteinG     int             `json:"protein_g"`
	CarbsG       int             `json:"carbs_g"`
	FatsG        int             `json:"fats_g"`
	Ingredients  []IngredientDTO `json:"ingredients"`
	CreatedAt    time.Time       `json:"created_at"`
}

type ListRecipesResponse struct {
	Recipes []RecipeDTO `json:"recipes"`
	Total   int         `json:"total"`
}
