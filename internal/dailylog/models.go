package dailylog

import "time"

type DailyLogDTO struct {
	ID           string    `json:"id"`
	ProfileID    string    `json:"profile_id"`
	Date         string    `json:"date"`
	WaterMl      int       `json:"water_ml"`
	SleepHours   float64   `json:"sleep_hours"`
	WeightKg     *float64  `json:"weight_kg"`
	PhotoID      *string   `json:"photo_id,omitempty"`
	ExerciseKcal *int      `json:"exercise_kcal,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// DayEntryDTO is one element of a range response. FallbackWeight carries the
// forward-filled weight when the day itself has none recorded.
type DayEntryDTO struct {
	Date           string   `json:"date"`
	WaterMl        int      `json:"water_ml"`
	SleepHours     float64  `json:"sleep_hours"`
	WeightKg       *float64 `json:"weight_kg"`
	FallbackWeight *float64 `json:"fallback_weight,omitempty"`
	ExerciseKcal   *int     `json:"exercise_kcal,omitempty"`
}

type WaterRequest struct {
	ProfileID string `json:"profile_id"`
	Date      string `json:"date"`
	DeltaMl   int    `json:"delta_ml"`
}

type SleepRequest struct {
	ProfileID string  `json:"profile_id"`
	Date      string  `json:"date"`
	Hours     float64 `json:"hours"`
}

type WeightRequest struct {
	ProfileID string  `json:"profile_id"`
	Date      string  `json:"date"`
	WeightKg  float64 `json:"weight_kg"`
}

type ExerciseRequest struct {
	ProfileID string `json:"profile_id"`
	Date      string `json:"date"`
	Kcal      int    `json:"kcal"`
}

type RangeResponse struct {
	FromDate string        `json:"from_date"`
	ToDate   string        `json:"to_date"`
	Days     []DayEntryDTO `json:"days"`
}
