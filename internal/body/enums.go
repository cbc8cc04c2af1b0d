package body

import (
	"strings"

	"github.com/claude/liftcalc/internal/models"
)

// Sex selects the Mifflin-St Jeor constant. The zero value is invalid.
type Sex int

const (
	Male Sex = iota + 1
	Female
)

func (s Sex) String() string {
	switch s {
	case Male:
		return "male"
	case Female:
		return "female"
	default:
		return "unknown"
	}
}

// ParseSex parses "male" or "female", ignoring case.
func ParseSex(s string) (Sex, error) {
	switch strings.ToLower(s) {
	case "male":
		return Male, nil
	case "female":
		return Female, nil
	}
	return 0, models.InvalidArgument("sex must be 'male' or 'female'")
}

// ActivityLevel scales BMR into TDEE. The zero value is invalid.
type ActivityLevel int

const (
	Sedentary ActivityLevel = iota + 1
	Light
	Moderate
	Active
	VeryActive
)

var activityLevels = []struct {
	level      ActivityLevel
	name       string
	multiplier float64
}{
	{Sedentary, "sedentary", 1.2},
	{Light, "light", 1.375},
	{Moderate, "moderate", 1.55},
	{Active, "active", 1.725},
	{VeryActive, "very_active", 1.9},
}

func (a ActivityLevel) String() string {
	for _, l := range activityLevels {
		if l.level == a {
			return l.name
		}
	}
	return "unknown"
}

// Multiplier returns the TDEE factor for a, and false for an unknown level.
func (a ActivityLevel) Multiplier() (float64, bool) {
	for _, l := range activityLevels {
		if l.level == a {
			return l.multiplier, true
		}
	}
	return 0, false
}

// ParseActivityLevel parses one of sedentary, light, moderate, active or
// very_active, ignoring case.
func ParseActivityLevel(s string) (ActivityLevel, error) {
	key := strings.ToLower(s)
	for _, l := range activityLevels {
		if l.name == key {
			return l.level, nil
		}
	}
	return 0, models.InvalidArgument("invalid activity level")
}

// ActivityMultipliers returns the activity table keyed by level name.
func ActivityMultipliers() map[string]float64 {
	out := make(map[string]float64, len(activityLevels))
	for _, l := range activityLevels {
		out[l.name] = l.multiplier
	}
	return out
}

// Goal picks the protein coefficient. The zero value is invalid; callers
// that take the goal as optional default to GoalMaintain.
type Goal int

const (
	GoalCut Goal = iota + 1
	GoalMaintain
	GoalBulk
)

var goals = []struct {
	goal        Goal
	name        string
	coefficient float64
}{
	{GoalCut, "cut", 1.0},
	{GoalMaintain, "maintain", 0.73},
	{GoalBulk, "bulk", 0.82},
}

func (g Goal) String() string {
	for _, e := range goals {
		if e.goal == g {
			return e.name
		}
	}
	return "unknown"
}

// ProteinPerLb returns grams of protein per pound of body weight for g.
func (g Goal) ProteinPerLb() (float64, bool) {
	for _, e := range goals {
		if e.goal == g {
			return e.coefficient, true
		}
	}
	return 0, false
}

// ParseGoal parses cut, maintain or bulk, ignoring case.
func ParseGoal(s string) (Goal, error) {
	key := strings.ToLower(s)
	for _, e := range goals {
		if e.name == key {
			return e.goal, nil
		}
	}
	return 0, models.InvalidArgument("invalid goal")
}

// ProteinCoefficients returns the goal table keyed by goal name.
func ProteinCoefficients() map[string]float64 {
	out := make(map[string]float64, len(goals))
	for _, e := range goals {
		out[e.name] = e.coefficient
	}
	return out
}
