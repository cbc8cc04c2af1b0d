package storage

import (
	"context"
	"fmt"

	"github.com/claude/liftcalc/internal/tracker"
	"github.com/google/uuid"
)

// exerciseSummaryQuery mirrors tracker.Tracker.Summary. reps / 30.0 keeps the
// Epley term in floating point.
const exerciseSummaryQuery = `SELECT exercise,
        COUNT(*)::int,
        COALESCE(SUM(reps), 0)::int,
        COALESCE(SUM(reps * weight), 0),
        COALESCE(MAX(weight * (1 + reps / 30.0)), 0)
 FROM workout_sets
 WHERE session_id = $1
 GROUP BY exercise
 ORDER BY MIN(id) ASC`

// GetExerciseSummary aggregates a session's sets per exercise in SQL. The
// result matches tracker.Tracker.Summary for the same sets: exercises in
// first-logged order, tonnage as SUM(reps*weight), best Epley estimate.
func (db *DB) GetExerciseSummary(ctx context.Context, sessionID uuid.UUID) ([]tracker.ExerciseSummary, error) {
	rows, err := db.Pool.Query(ctx, exerciseSummaryQuery, sessionID)
	if err != nil {
		return nil, fmt.Errorf("querying exercise summary: %w", err)
	}
	defer rows.Close()

	result := make([]tracker.ExerciseSummary, 0)
	for rows.Next() {
		var s tracker.ExerciseSummary
		if err := rows.Scan(&s.Exercise, &s.Sets, &s.TotalReps, &s.Volume, &s.Best1RM); err != nil {
			return nil, fmt.Errorf("scanning exercise summary: %w", err)
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
