package models

import (
	"time"

	"github.com/google/uuid"
)

// SetRecord is a single logged set: repetitions at a given weight.
type SetRecord struct {
	Reps   int     `json:"reps"`
	Weight float64 `json:"weight"`
}

// Volume returns reps × weight.
func (s SetRecord) Volume() float64 {
	return float64(s.Reps) * s.Weight
}

// EstimatedOneRepMax returns the Epley estimate weight × (1 + reps/30).
func (s SetRecord) EstimatedOneRepMax() float64 {
	return s.Weight * (1 + float64(s.Reps)/30)
}

// SessionRow is a row in the sessions table.
type SessionRow struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// WorkoutSetRow is a row in the workout_sets table.
type WorkoutSetRow struct {
	SessionID uuid.UUID `json:"session_id"`
	Exercise  string    `json:"exercise"`
	SetNumber int       `json:"set_number"`
	Reps      int       `json:"reps"`
	Weight    float64   `json:"weight"`
	CreatedAt time.Time `json:"created_at"`
}

// Record returns the tracker view of the row.
func (r WorkoutSetRow) Record() SetRecord {
	return SetRecord{Reps: r.Reps, Weight: r.Weight}
}
