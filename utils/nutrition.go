package utils

import (
	"fmt"
	"math"
	"strings"
	"time"

	"nutritrack-backend/models"
)

// caloriesPerKg is the approximate energy content of one kilogram of body mass.
const caloriesPerKg = 7700

type NutritionInput struct {
	CurrentWeight float64
	TargetWeight  float64
	DurationWeeks int
	Height        int
	Gender        string
	GoalType      models.GoalType
	ActivityLevel models.ActivityLevel
	BirthYear     int
}

type NutritionTargets struct {
	Calories float64
	Protein  float64
	Carbs    float64
	Fats     float64
	// Warning carries advisory text about unrealistic targets. It never blocks
	// goal creation.
	Warning string
}

// CalculateNutrition derives daily calorie and macro targets from body
// attributes and goal parameters. Callers must validate DurationWeeks > 0 and
// profile completeness before calling; the function itself never fails and
// never returns negative values.
//
// Only "male" (case-insensitive) takes the male branch of Mifflin-St Jeor;
// every other gender value takes the female branch, matching the historical
// behavior of the calculator.
func CalculateNutrition(in NutritionInput) NutritionTargets {
	male := strings.ToLower(in.Gender) == "male"
	age := time.Now().UTC().Year() - in.BirthYear

	// Mifflin-St Jeor basal metabolic rate.
	bmr := 10*in.CurrentWeight + 6.25*float64(in.Height) - 5*float64(age)
	if male {
		bmr += 5
	} else {
		bmr -= 161
	}

	tdee := bmr * activityMultiplier(in.ActivityLevel)

	weightDifference := in.TargetWeight - in.CurrentWeight
	totalCaloriesNeeded := math.Abs(weightDifference) * caloriesPerKg
	dailyCalorieAdjustment := totalCaloriesNeeded / float64(in.DurationWeeks) / 7

	var warning string
	if dailyCalorieAdjustment > 2000 {
		suggestedWeeks := int(math.Ceil(math.Abs(weightDifference) / 0.5))
		warning = fmt.Sprintf(
			"Warning: Daily calorie adjustment (%.2f kcal) is highly unrealistic. Consider increasing duration to at least %d weeks for safer weight change.",
			dailyCalorieAdjustment, suggestedWeeks)
	}

	dailyCalories := tdee
	switch in.GoalType {
	case models.GoalLoss:
		dailyCalories -= dailyCalorieAdjustment
		floor := 1200.0
		if male {
			floor = 1500.0
		}
		dailyCalories = math.Max(dailyCalories, floor)
	case models.GoalGain:
		dailyCalories += dailyCalorieAdjustment
	}
	// Maintain keeps TDEE unchanged.

	var proteinPerKg, fatFraction, carbFraction float64
	switch in.GoalType {
	case models.GoalLoss:
		proteinPerKg, fatFraction, carbFraction = 1.8, 0.20, 0.40
	case models.GoalGain:
		proteinPerKg, fatFraction, carbFraction = 1.9, 0.25, 0.45
	default:
		proteinPerKg, fatFraction, carbFraction = 1.4, 0.30, 0.40
	}

	averageWeight := (in.CurrentWeight + in.TargetWeight) / 2
	if math.Abs(weightDifference) > 20 {
		proteinPerKg += 0.3
	}
	if in.DurationWeeks < 10 {
		proteinPerKg += 0.1
	}

	protein := averageWeight * proteinPerKg
	if averageWeight > 0 && protein/averageWeight > 3 {
		proteinWarning := fmt.Sprintf(
			"Warning: Protein intake (%.2f g, %.2f g/kg) is extremely high and may not be sustainable.",
			protein, protein/averageWeight)
		if warning == "" {
			warning = proteinWarning
		} else {
			warning = warning + " " + proteinWarning
		}
	}

	fats := (dailyCalories * fatFraction) / 9
	carbs := (dailyCalories * carbFraction) / 4

	return NutritionTargets{
		Calories: dailyCalories,
		Protein:  math.Max(protein, 0),
		Carbs:    math.Max(carbs, 0),
		Fats:     math.Max(fats, 0),
		Warning:  warning,
	}
}

// activityMultiplier is the canonical TDEE table. An older revision used
// Light=1.3, Moderate=1.4, High=1.5; that set is deprecated.
func activityMultiplier(level models.ActivityLevel) float64 {
	switch level {
	case models.ActivityLight:
		return 1.37
	case models.ActivityModerate:
		return 1.42
	case models.ActivityHigh:
		return 1.62
	default:
		return 1.2
	}
}
