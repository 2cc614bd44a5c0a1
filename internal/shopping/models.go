package shopping

import "time"

type ShoppingItemDTO struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Amount         string    `json:"amount"`
	Category       string    `json:"category"`
	Checked        bool      `json:"checked"`
	Manual         bool      `json:"manual"`
	SourceDate     string    `json:"source_date,omitempty"`
	SourceMealType string    `json:"source_meal_type,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type ListResponse struct {
	Items []ShoppingItemDTO `json:"items"`
}

type RegenerateRequest struct {
	ProfileID string `json:"profile_id"`
}

type AddItemRequest struct {
	ProfileID string `json:"profile_id"`
	Name      string `json:"name"`
	Amount    string `json:"amount"`
	Category  string `json:"category"`
}

type ToggleItemRequest struct {
	ProfileID string `json:"profile_id"`
	ItemID    string `json:"item_id"`
}

type ClearCheckedResponse struct {
	Removed int `json:"removed"`
}
