package profiles

import "time"

type ProfileDTO struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	WeightKg      float64   `json:"weight_kg"`
	HeightCm      float64   `json:"height_cm"`
	Age           int       `json:"age"`
	Sex           string    `json:"sex"`
	ActivityLevel string    `json:"activity_level"`
	GoalIntent    string    `json:"goal_intent"`
	CalorieGoal   int       `json:"calorie_goal"`
	ProteinGoalG  int       `json:"protein_goal_g"`
	CarbsGoalG    int       `json:"carbs_goal_g"`
	FatsGoalG     int       `json:"fats_goal_g"`
	WaterGoalMl   int       `json:"water_goal_ml"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type ProfilesResponse struct {
	Profiles []ProfileDTO `json:"profiles"`
}

type CreateProfileRequest struct {
	Name          string  `json:"name"`
	WeightKg      float64 `json:"weight_kg"`
	HeightCm      float64 `json:"height_cm"`
	Age           int     `json:"age"`
	Sex           string  `json:"sex"`
	ActivityLevel string  `json:"activity_level"`
	GoalIntent    string  `json:"goal_intent"`
}

// UpdateProfileRequest carries partial updates; nil fields are left as-is.
type UpdateProfileRequest struct {
	Name          *string  `json:"name,omitempty"`
	WeightKg      *float64 `json:"weight_kg,omitempty"`
	HeightCm      *float64 `json:"height_cm,omitempty"`
	Age           *int     `json:"age,omitempty"`
	Sex           *string  `json:"sex,omitempty"`
	ActivityLevel *string  `json:"activity_level,omitempty"`
	GoalIntent    *string  `json:"goal_intent,omitempty"`
}
