// Package body implements body-composition and energy-expenditure formulas.
// Weights are in pounds, heights in inches.
package body

import "github.com/claude/liftcalc/internal/models"

const (
	kgPerLb = 0.45359237
	cmPerIn = 2.54
)

// BMI returns 703·weight/height² for imperial units.
func BMI(weightLb, heightIn float64) (float64, error) {
	if weightLb <= 0 || heightIn <= 0 {
		return 0, models.InvalidArgument("weight and height must be positive")
	}
	return 703.0 * weightLb / (heightIn * heightIn), nil
}

// BMRMifflin returns the Mifflin-St Jeor basal metabolic rate in kcal/day.
func BMRMifflin(sex Sex, weightLb, heightIn, ageYears float64) (float64, error) {
	if weightLb <= 0 || heightIn <= 0 || ageYears <= 0 {
		return 0, models.InvalidArgument("weight, height, and age must be positive")
	}

	var offset float64
	switch sex {
	case Male:
		offset = 5
	case Female:
		offset = -161
	default:
		return 0, models.InvalidArgument("sex must be 'male' or 'female'")
	}

	weightKg := weightLb * kgPerLb
	heightCm := heightIn * cmPerIn
	return 10*weightKg + 6.25*heightCm - 5*ageYears + offset, nil
}

// TDEE scales bmr by the activity multiplier.
func TDEE(bmr float64, level ActivityLevel) (float64, error) {
	if bmr <= 0 {
		return 0, models.InvalidArgument("bmr must be positive")
	}
	m, ok := level.Multiplier()
	if !ok {
		return 0, models.InvalidArgument("invalid activity level")
	}
	return bmr * m, nil
}

// ProteinTarget returns the daily protein target in grams for a body weight
// and goal.
func ProteinTarget(weightLb float64, goal Goal) (float64, error) {
	if weightLb <= 0 {
		return 0, models.InvalidArgument("weight must be positive")
	}
	c, ok := goal.ProteinPerLb()
	if !ok {
		return 0, models.InvalidArgument("invalid goal")
	}
	return c * weightLb, nil
}

// WeeklyWeightChange returns the signed rate of change in lb/week between two
// weigh-ins taken days apart. Negative means loss.
func WeeklyWeightChange(startLb, endLb, days float64) (float64, error) {
	if days <= 0 {
		return 0, models.InvalidArgument("days must be > 0")
	}
	return (endLb - startLb) * (7 / days), nil
}
