package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nutritrack-backend/models"
)

func birthYearForAge(age int) int {
	return time.Now().UTC().Year() - age
}

func TestCalculateNutritionLossGoal(t *testing.T) {
	// Male, 75 kg -> 70 kg over 10 weeks, 175 cm, age 25, sedentary.
	// BMR = 10*75 + 6.25*175 - 5*25 + 5 = 1723.75
	// TDEE = 1723.75 * 1.2 = 2068.5
	// Adjustment = 5*7700 / 10 / 7 = 550
	got := CalculateNutrition(NutritionInput{
		CurrentWeight: 75,
		TargetWeight:  70,
		DurationWeeks: 10,
		Height:        175,
		Gender:        "male",
		GoalType:      models.GoalLoss,
		ActivityLevel: models.ActivitySedentary,
		BirthYear:     birthYearForAge(25),
	})

	require.InDelta(t, 1518.5, got.Calories, 0.001)
	require.InDelta(t, 130.5, got.Protein, 0.001) // 72.5 kg avg * 1.8 g/kg
	require.InDelta(t, 151.85, got.Carbs, 0.001)  // 40% of calories / 4
	require.InDelta(t, 33.7444, got.Fats, 0.001)  // 20% of calories / 9
	assert.Empty(t, got.Warning)
}

func TestCalculateNutritionLossFloor(t *testing.T) {
	in := NutritionInput{
		CurrentWeight: 60,
		TargetWeight:  50,
		DurationWeeks: 1,
		Height:        160,
		Gender:        "female",
		GoalType:      models.GoalLoss,
		ActivityLevel: models.ActivitySedentary,
		BirthYear:     birthYearForAge(30),
	}

	got := CalculateNutrition(in)
	require.InDelta(t, 1200, got.Calories, 0.001)
	assert.NotEmpty(t, got.Warning, "a 10 kg per week deficit should warn")

	in.Gender = "male"
	got = CalculateNutrition(in)
	require.InDelta(t, 1500, got.Calories, 0.001)
}

func TestCalculateNutritionGainHasNoCap(t *testing.T) {
	got := CalculateNutrition(NutritionInput{
		CurrentWeight: 60,
		TargetWeight:  90,
		DurationWeeks: 4,
		Height:        180,
		Gender:        "male",
		GoalType:      models.GoalGain,
		ActivityLevel: models.ActivityHigh,
		BirthYear:     birthYearForAge(20),
	})

	// Adjustment = 30*7700 / 4 / 7 = 8250, added on top of TDEE in full.
	bmr := 10*60.0 + 6.25*180 - 5*20 + 5
	require.InDelta(t, bmr*1.62+8250, got.Calories, 0.001)
	assert.NotEmpty(t, got.Warning)
	assert.Contains(t, got.Warning, "60 weeks")
}

func TestCalculateNutritionMaintainKeepsTDEE(t *testing.T) {
	got := CalculateNutrition(NutritionInput{
		CurrentWeight: 70,
		TargetWeight:  70,
		DurationWeeks: 12,
		Height:        170,
		Gender:        "female",
		GoalType:      models.GoalMaintain,
		ActivityLevel: models.ActivityModerate,
		BirthYear:     birthYearForAge(40),
	})

	bmr := 10*70.0 + 6.25*170 - 5*40 - 161
	require.InDelta(t, bmr*1.42, got.Calories, 0.001)
	require.InDelta(t, 70*1.4, got.Protein, 0.001)
	assert.Empty(t, got.Warning)
}

func TestCalculateNutritionProteinAdjustments(t *testing.T) {
	// Large difference (>20 kg) and short duration (<10 weeks) both raise the
	// per-kg protein allowance.
	got := CalculateNutrition(NutritionInput{
		CurrentWeight: 100,
		TargetWeight:  75,
		DurationWeeks: 8,
		Height:        185,
		Gender:        "male",
		GoalType:      models.GoalLoss,
		ActivityLevel: models.ActivityLight,
		BirthYear:     birthYearForAge(35),
	})

	avg := (100.0 + 75.0) / 2
	require.InDelta(t, avg*(1.8+0.3+0.1), got.Protein, 0.001)
}

func TestCalculateNutritionGenderBranch(t *testing.T) {
	base := NutritionInput{
		CurrentWeight: 70,
		TargetWeight:  70,
		DurationWeeks: 10,
		Height:        170,
		GoalType:      models.GoalMaintain,
		ActivityLevel: models.ActivitySedentary,
		BirthYear:     birthYearForAge(30),
	}

	base.Gender = "MALE"
	male := CalculateNutrition(base)
	base.Gender = "male"
	require.InDelta(t, male.Calories, CalculateNutrition(base).Calories, 0.001,
		"gender comparison is case-insensitive")

	base.Gender = "other"
	other := CalculateNutrition(base)
	base.Gender = "female"
	female := CalculateNutrition(base)
	require.InDelta(t, female.Calories, other.Calories, 0.001,
		"every non-male gender takes the female branch")
	assert.Greater(t, male.Calories, female.Calories)
}

func TestCalculateNutritionDeterministic(t *testing.T) {
	in := NutritionInput{
		CurrentWeight: 82.4,
		TargetWeight:  76.1,
		DurationWeeks: 14,
		Height:        178,
		Gender:        "male",
		GoalType:      models.GoalLoss,
		ActivityLevel: models.ActivityModerate,
		BirthYear:     birthYearForAge(28),
	}
	first := CalculateNutrition(in)
	second := CalculateNutrition(in)
	assert.Equal(t, first, second)
}
