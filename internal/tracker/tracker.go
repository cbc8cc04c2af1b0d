// Package tracker keeps an in-memory log of strength sets per exercise and
// answers volume and estimated one-rep-max queries over it.
package tracker

import (
	"sync"

	"github.com/claude/liftcalc/internal/models"
)

// Tracker maps exercise names to the sets recorded for them. Exercises are
// listed in the order they were first logged. Safe for concurrent use.
type Tracker struct {
	mu    sync.Mutex
	order []string
	sets  map[string][]models.SetRecord
}

// ExerciseSummary aggregates the sets of one exercise.
type ExerciseSummary struct {
	Exercise  string  `json:"exercise"`
	Sets      int     `json:"sets"`
	TotalReps int     `json:"total_reps"`
	Volume    float64 `json:"volume"`
	Best1RM   float64 `json:"best_1rm"`
}

// New returns an empty tracker.
func New() *Tracker {
	return &Tracker{sets: make(map[string][]models.SetRecord)}
}

// ValidateSet checks the preconditions of AddSet without touching any state.
func ValidateSet(exercise string, reps int, weight float64) error {
	if exercise == "" {
		return models.InvalidArgument("exercise must be a non-empty string")
	}
	if reps <= 0 {
		return models.InvalidArgument("reps must be positive")
	}
	if weight < 0 {
		return models.InvalidArgument("weight cannot be negative")
	}
	return nil
}

// AddSet appends a set to exercise, creating the exercise on first use.
// On error nothing is recorded.
func (t *Tracker) AddSet(exercise string, reps int, weight float64) error {
	if err := ValidateSet(exercise, reps, weight); err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.appendLocked(exercise, models.SetRecord{Reps: reps, Weight: weight})
	return nil
}

func (t *Tracker) appendLocked(exercise string, rec models.SetRecord) {
	if _, ok := t.sets[exercise]; !ok {
		t.order = append(t.order, exercise)
	}
	t.sets[exercise] = append(t.sets[exercise], rec)
}

// Load replays stored rows in order. Rows are validated up front so a bad
// row leaves the tracker untouched.
func (t *Tracker) Load(rows []models.WorkoutSetRow) error {
	for _, r := range rows {
		if err := ValidateSet(r.Exercise, r.Reps, r.Weight); err != nil {
			return err
		}
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	for _, r := range rows {
		t.appendLocked(r.Exercise, r.Record())
	}
	return nil
}

// Volume returns the sum of reps × weight over the sets of exercise, or 0
// when nothing was logged for it.
func (t *Tracker) Volume(exercise string) float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return volume(t.sets[exercise])
}

// TotalVolume returns the sum of reps × weight over every logged set.
func (t *Tracker) TotalVolume() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	var total float64
	for _, name := range t.order {
		total += volume(t.sets[name])
	}
	return total
}

// Best1RM returns the highest Epley estimate among the sets of exercise, or
// 0 when nothing was logged for it.
func (t *Tracker) Best1RM(exercise string) float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return best1RM(t.sets[exercise])
}

// Exercises returns exercise names in first-logged order.
func (t *Tracker) Exercises() []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// Sets returns a copy of the sets logged for exercise.
func (t *Tracker) Sets(exercise string) []models.SetRecord {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]models.SetRecord, len(t.sets[exercise]))
	copy(out, t.sets[exercise])
	return out
}

// Summary returns per-exercise aggregates in first-logged order.
func (t *Tracker) Summary() []ExerciseSummary {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]ExerciseSummary, 0, len(t.order))
	for _, name := range t.order {
		sets := t.sets[name]
		s := ExerciseSummary{
			Exercise: name,
			Sets:     len(sets),
			Volume:   volume(sets),
			Best1RM:  best1RM(sets),
		}
		for _, rec := range sets {
			s.TotalReps += rec.Reps
		}
		out = append(out, s)
	}
	return out
}

// Reset drops every logged set.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.order = nil
	t.sets = make(map[string][]models.SetRecord)
}

func volume(sets []models.SetRecord) float64 {
	var v float64
	for _, s := range sets {
		v += s.Volume()
	}
	return v
}

func best1RM(sets []models.SetRecord) float64 {
	if len(sets) == 0 {
		return 0.0
	}
	best := sets[0].EstimatedOneRepMax()
	for _, s := range sets[1:] {
		if e := s.EstimatedOneRepMax(); e > best {
			best = e
		}
	}
	return best
}
