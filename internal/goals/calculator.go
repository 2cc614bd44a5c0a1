package goals

import "math"

// Activity level multipliers applied to the basal rate. Unknown levels fall
// back to moderate rather than failing — profile rows may carry legacy labels.
var activityFactors = map[string]float64{
	"sedentary": 1.2,
	"light":     1.375,
	"moderate":  1.55,
	"intense":   1.725,
	"athlete":   1.9,
}

const defaultActivityFactor = 1.55

// macroSplit is the kcal share per macro, keyed by goal intent.
type macroSplit struct {
	Protein float64
	Carbs   float64
	Fats    float64
}

var macroSplits = map[string]macroSplit{
	"cut":      {Protein: 0.40, Carbs: 0.30, Fats: 0.30},
	"bulk":     {Protein: 0.30, Carbs: 0.50, Fats: 0.20},
	"maintain": {Protein: 0.30, Carbs: 0.40, Fats: 0.30},
}

// Energy floor: the calorie goal is never below this, whatever the inputs.
const minCalorieGoal = 1200

const (
	kcalPerGramProtein = 4
	kcalPerGramCarbs   = 4
	kcalPerGramFat     = 9
)

// Targets are the derived daily goals for a profile.
type Targets struct {
	CalorieGoal  int
	ProteinGoalG int
	CarbsGoalG   int
	FatsGoalG    int
	WaterGoalMl  int
}

// Compute derives daily targets from physical attributes via Mifflin-St Jeor.
// Pure and total: every input, including unrecognized activity levels and
// goal intents, maps to a result. It never returns an error.
func Compute(weightKg, heightCm float64, age int, sex, activityLevel, goalIntent string) Targets {
	bmr := 10*weightKg + 6.25*heightCm - 5*float64(age)
	if sex == "male" {
		bmr += 5
	} else {
		bmr -= 161
	}

	factor, ok := activityFactors[activityLevel]
	if !ok {
		factor = defaultActivityFactor
	}
	tdee := bmr * factor

	switch goalIntent {
	case "cut":
		tdee -= 500
	case "bulk":
		tdee += 500
	}

	if tdee < minCalorieGoal {
		tdee = minCalorieGoal
	}
	calories := int(math.Round(tdee))

	split, ok := macroSplits[goalIntent]
	if !ok {
		split = macroSplits["maintain"]
	}

	return Targets{
		CalorieGoal:  calories,
		ProteinGoalG: int(math.Round(tdee * split.Protein / kcalPerGramProtein)),
		CarbsGoalG:   int(math.Round(tdee * split.Carbs / kcalPerGramCarbs)),
		FatsGoalG:    int(math.Round(tdee * split.Fats / kcalPerGramFat)),
		WaterGoalMl:  int(math.Round(weightKg * 35)),
	}
}
