// Package nutrition converts between macronutrient grams and kilocalories.
package nutrition

import (
	"math"

	"github.com/claude/liftcalc/internal/models"
)

// Calories per gram of each macronutrient.
const (
	KcalPerGramProtein = 4
	KcalPerGramCarbs   = 4
	KcalPerGramFat     = 9
	KcalPerGramAlcohol = 7
)

// fractionTolerance is the allowed absolute deviation of a Split's sum from 1.
const fractionTolerance = 1e-9

// Macros holds grams of each macronutrient. AlcoholG defaults to zero.
type Macros struct {
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatG     float64 `json:"fat_g"`
	AlcoholG float64 `json:"alcohol_g"`
}

// Split holds the fraction of total energy allotted to each macronutrient.
// The fractions must be non-negative and sum to 1.
type Split struct {
	Protein float64 `json:"protein"`
	Carbs   float64 `json:"carbs"`
	Fat     float64 `json:"fat"`
	Alcohol float64 `json:"alcohol"`
}

// CaloriesFromMacros returns 4·protein + 4·carbs + 9·fat + 7·alcohol.
func CaloriesFromMacros(m Macros) (float64, error) {
	if m.ProteinG < 0 || m.CarbsG < 0 || m.FatG < 0 || m.AlcoholG < 0 {
		return 0, models.InvalidArgument("macros cannot be negative")
	}
	return KcalPerGramProtein*m.ProteinG +
		KcalPerGramCarbs*m.CarbsG +
		KcalPerGramFat*m.FatG +
		KcalPerGramAlcohol*m.AlcoholG, nil
}

// MacrosFromCalories allots calories across macronutrients by split and
// converts each allotment to grams.
//
// Checks run in order: calories, then fraction signs, then the fraction sum.
// Zero calories yields all-zero grams once the split has been validated.
func MacrosFromCalories(calories float64, split Split) (Macros, error) {
	if calories < 0 {
		return Macros{}, models.InvalidArgument("calories cannot be negative")
	}
	if split.Protein < 0 || split.Carbs < 0 || split.Fat < 0 || split.Alcohol < 0 {
		return Macros{}, models.InvalidArgument("fractions cannot be negative")
	}
	sum := split.Protein + split.Carbs + split.Fat + split.Alcohol
	if math.Abs(sum-1.0) > fractionTolerance {
		return Macros{}, models.InvalidArgument("fractions must sum to 1.0")
	}

	if calories == 0 {
		return Macros{}, nil
	}

	return Macros{
		ProteinG: calories * split.Protein / KcalPerGramProtein,
		CarbsG:   calories * split.Carbs / KcalPerGramCarbs,
		FatG:     calories * split.Fat / KcalPerGramFat,
		AlcoholG: calories * split.Alcohol / KcalPerGramAlcohol,
	}, nil
}
