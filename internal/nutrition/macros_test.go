package nutrition

import (
	"errors"
	"math"
	"testing"

	"github.com/claude/liftcalc/internal/models"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) <= 1e-6
}

// TestCaloriesFromMacros covers the happy path, alcohol, and the all-zero case.
func TestCaloriesFromMacros(t *testing.T) {
	cases := []struct {
		name string
		in   Macros
		want float64
	}{
		{"basic", Macros{ProteinG: 100, CarbsG: 200, FatG: 70}, 1830},
		{"alcohol only", Macros{AlcoholG: 10}, 70},
		{"all zero", Macros{}, 0},
		{"fat only", Macros{FatG: 1}, 9},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := CaloriesFromMacros(tc.in)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("CaloriesFromMacros(%+v) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

// TestCaloriesFromMacrosNegative verifies any negative gram value is rejected.
func TestCaloriesFromMacrosNegative(t *testing.T) {
	cases := []Macros{
		{ProteinG: -1},
		{CarbsG: -1},
		{FatG: -0.5},
		{AlcoholG: -0.1},
	}
	for _, in := range cases {
		if _, err := CaloriesFromMacros(in); !errors.Is(err, models.ErrInvalidArgument) {
			t.Errorf("CaloriesFromMacros(%+v) error = %v, want ErrInvalidArgument", in, err)
		}
	}
}

// TestMacrosFromCalories verifies grams per macro for splits with and without alcohol.
func TestMacrosFromCalories(t *testing.T) {
	cases := []struct {
		name     string
		calories float64
		split    Split
		want     Macros
	}{
		{
			name:     "P30/C40/F30",
			calories: 2000,
			split:    Split{Protein: 0.30, Carbs: 0.40, Fat: 0.30},
			want:     Macros{ProteinG: 150, CarbsG: 200, FatG: 2000 * 0.30 / 9},
		},
		{
			name:     "with alcohol",
			calories: 2100,
			split:    Split{Protein: 0.25, Carbs: 0.45, Fat: 0.20, Alcohol: 0.10},
			want: Macros{
				ProteinG: 2100 * 0.25 / 4,
				CarbsG:   2100 * 0.45 / 4,
				FatG:     2100 * 0.20 / 9,
				AlcoholG: 2100 * 0.10 / 7,
			},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := MacrosFromCalories(tc.calories, tc.split)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !approx(got.ProteinG, tc.want.ProteinG) || !approx(got.CarbsG, tc.want.CarbsG) ||
				!approx(got.FatG, tc.want.FatG) || !approx(got.AlcoholG, tc.want.AlcoholG) {
				t.Errorf("MacrosFromCalories(%v, %+v) = %+v, want %+v", tc.calories, tc.split, got, tc.want)
			}
		})
	}
}

// TestMacrosFromCaloriesZero verifies zero calories returns exact zeros.
func TestMacrosFromCaloriesZero(t *testing.T) {
	got, err := MacrosFromCalories(0, Split{Protein: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != (Macros{}) {
		t.Errorf("MacrosFromCalories(0) = %+v, want zero value", got)
	}
}

// TestMacrosFromCaloriesInvalid verifies each validation step, including that
// zero calories still requires a valid split.
func TestMacrosFromCaloriesInvalid(t *testing.T) {
	cases := []struct {
		name     string
		calories float64
		split    Split
	}{
		{"negative calories", -1, Split{Protein: 0.3, Carbs: 0.4, Fat: 0.3}},
		{"negative fraction", 2000, Split{Protein: -0.1, Carbs: 0.4, Fat: 0.7}},
		{"sum above one", 2000, Split{Protein: 0.3, Carbs: 0.3, Fat: 0.3, Alcohol: 0.2}},
		{"sum below one", 2000, Split{Protein: 0.3, Carbs: 0.3, Fat: 0.39}},
		{"zero calories bad split", 0, Split{Protein: 0.5}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := MacrosFromCalories(tc.calories, tc.split)
			if !errors.Is(err, models.ErrInvalidArgument) {
				t.Errorf("error = %v, want ErrInvalidArgument", err)
			}
		})
	}
}

// TestMacrosFromCaloriesTolerance verifies float rounding in the split sum is tolerated.
func TestMacrosFromCaloriesTolerance(t *testing.T) {
	split := Split{Protein: 0.1, Carbs: 0.2, Fat: 0.7}
	if _, err := MacrosFromCalories(1000, split); err != nil {
		t.Errorf("MacrosFromCalories with 0.1+0.2+0.7 split: unexpected error %v", err)
	}
}
