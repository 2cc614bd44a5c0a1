package goals

import (
	"math"
	"testing"
)

func TestCompute_ReferenceProfile(t *testing.T) {
	// 70kg, 175cm, 25y male, moderate activity, maintain:
	// bmr = 10*70 + 6.25*175 - 5*25 + 5 = 1701.75
	// tdee = 1701.75 * 1.55 = 2637.7125
	got := Compute(70, 175, 25, "male", "moderate", "maintain")

	if got.CalorieGoal != 2638 {
		t.Errorf("calorie goal: expected 2638, got %d", got.CalorieGoal)
	}
	if got.ProteinGoalG != 198 {
		t.Errorf("protein: expected 198g, got %d", got.ProteinGoalG)
	}
	if got.CarbsGoalG != 264 {
		t.Errorf("carbs: expected 264g, got %d", got.CarbsGoalG)
	}
	if got.FatsGoalG != 88 {
		t.Errorf("fats: expected 88g, got %d", got.FatsGoalG)
	}
	if got.WaterGoalMl != 2450 {
		t.Errorf("water: expected 2450ml, got %d", got.WaterGoalMl)
	}
}

func TestCompute_UnknownActivityFallsBackToModerate(t *testing.T) {
	known := Compute(70, 175, 25, "male", "moderate", "maintain")

	for _, level := range []string{"", "Moderado", "couch", "EXTREME"} {
		got := Compute(70, 175, 25, "male", level, "maintain")
		if got != known {
			t.Errorf("activity %q: expected moderate fallback %+v, got %+v", level, known, got)
		}
	}
}

func TestCompute_CalorieFloor(t *testing.T) {
	// Small, sedentary profile on a cut would otherwise land well below 1200.
	got := Compute(40, 145, 80, "female", "sedentary", "cut")
	if got.CalorieGoal < 1200 {
		t.Errorf("calorie goal below floor: %d", got.CalorieGoal)
	}
	if got.CalorieGoal != 1200 {
		t.Errorf("expected floor value 1200, got %d", got.CalorieGoal)
	}
}

func TestCompute_IntentAdjustment(t *testing.T) {
	maintain := Compute(80, 180, 30, "male", "moderate", "maintain")
	cut := Compute(80, 180, 30, "male", "moderate", "cut")
	bulk := Compute(80, 180, 30, "male", "moderate", "bulk")

	if cut.CalorieGoal != maintain.CalorieGoal-500 {
		t.Errorf("cut: expected %d, got %d", maintain.CalorieGoal-500, cut.CalorieGoal)
	}
	if bulk.CalorieGoal != maintain.CalorieGoal+500 {
		t.Errorf("bulk: expected %d, got %d", maintain.CalorieGoal+500, bulk.CalorieGoal)
	}
}

func TestCompute_MacrosReconstructEnergy(t *testing.T) {
	cases := []struct {
		weight, height float64
		age            int
		sex, activity  string
		intent         string
	}{
		{70, 175, 25, "male", "moderate", "maintain"},
		{62, 165, 31, "female", "light", "cut"},
		{95, 188, 22, "male", "athlete", "bulk"},
		{55, 160, 45, "female", "sedentary", "maintain"},
	}

	for _, c := range cases {
		got := Compute(c.weight, c.height, c.age, c.sex, c.activity, c.intent)
		kcal := got.ProteinGoalG*4 + got.CarbsGoalG*4 + got.FatsGoalG*9
		if math.Abs(float64(kcal-got.CalorieGoal)) > 3 {
			t.Errorf("%+v: macros reconstruct to %d kcal, goal is %d (drift > 3)", c, kcal, got.CalorieGoal)
		}
	}
}

func TestCompute_FemaleConstant(t *testing.T) {
	male := Compute(70, 170, 30, "male", "sedentary", "maintain")
	female := Compute(70, 170, 30, "female", "sedentary", "maintain")

	// bmr difference is a fixed 166 kcal, so at factor 1.2 the calorie goals
	// must differ by round(166 * 1.2) = 199.
	diff := male.CalorieGoal - female.CalorieGoal
	if diff != 199 {
		t.Errorf("expected male-female calorie gap of 199, got %d", diff)
	}
}

func TestCompute_WaterGoal(t *testing.T) {
	got := Compute(82.4, 180, 30, "male", "moderate", "maintain")
	if got.WaterGoalMl != 2884 {
		t.Errorf("water: expected round(82.4*35)=2884, got %d", got.WaterGoalMl)
	}
}
