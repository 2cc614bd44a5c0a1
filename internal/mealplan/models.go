package mealplan

import "time"

type MealSlotDTO struct {
	ID        string    `json:"id"`
	ProfileID string    `json:"profile_id"`
	Date      string    `json:"date"`
	MealType  string    `json:"meal_type"`
	RecipeID  *string   `json:"recipe_id"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type AssignSlotRequest struct {
	ProfileID string `json:"profile_id"`
	Date      string `json:"date"`
	MealType  string `json:"meal_type"`
	RecipeID  string `json:"recipe_id"`
}

type SlotKeyRequest struct {
	ProfileID string `json:"profile_id"`
	Date      string `json:"date"`
	MealType  string `json:"meal_type"`
}

type GenerateRequest struct {
	ProfileID string `json:"profile_id"`
	StartDate string `json:"start_date"`
}

type DayResponse struct {
	Date  string        `json:"date"`
	Slots []MealSlotDTO `json:"slots"`
}

type WeekResponse struct {
	StartDate string        `json:"start_date"`
	EndDate   string        `json:"end_date"`
	Slots     []MealSlotDTO `json:"slots"`
}
