package nutrition

type TotalsDTO struct {
	CaloriesKcal int `json:"calories_kcal"`
	ProteinG     int `json:"protein_g"`
	CarbsG       int `json:"carbs_g"`
	FatsG        int `json:"fats_g"`
}

type TargetsDTO struct {
	CalorieGoal  int `json:"calorie_goal"`
	ProteinGoalG int `json:"protein_goal_g"`
	CarbsGoalG   int `json:"carbs_goal_g"`
	FatsGoalG    int `json:"fats_goal_g"`
	WaterGoalMl  int `json:"water_goal_ml"`
}

// DaySummaryDTO combines consumed totals with the profile's targets so the
// client can render progress rings in one request.
type DaySummaryDTO struct {
	Date      string     `json:"date"`
	ProfileID string     `json:"profile_id"`
	Consumed  TotalsDTO  `json:"consumed"`
	Targets   TargetsDTO `json:"targets"`
	WaterMl   int        `json:"water_ml"`
	SlotCount int        `json:"slot_count"`
}
