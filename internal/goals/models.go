package goals

import (
	"time"

	"github.com/google/uuid"
)

// TargetsDTO is the API shape of a profile's daily targets.
type TargetsDTO struct {
	ProfileID    uuid.UUID `json:"profile_id"`
	CalorieGoal  int       `json:"calorie_goal"`
	ProteinGoalG int       `json:"protein_goal_g"`
	CarbsGoalG   int       `json:"carbs_goal_g"`
	FatsGoalG    int       `json:"fats_goal_g"`
	WaterGoalMl  int       `json:"water_goal_ml"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// RecalculateRequest triggers an explicit recompute from the current
// profile attributes.
type RecalculateRequest struct {
	ProfileID uuid.UUID `json:"profile_id"`
}
