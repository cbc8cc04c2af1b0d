package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/claude/liftcalc/internal/models"
	"github.com/google/uuid"
)

const setColumns = 6

// InsertWorkoutSets batch-inserts logged sets. Returns count inserted.
func (db *DB) InsertWorkoutSets(ctx context.Context, rows []models.WorkoutSetRow) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	query, args := insertSetsQuery(rows)
	tag, err := db.Pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("inserting workout sets: %w", err)
	}
	return tag.RowsAffected(), nil
}

// insertSetsQuery builds a multi-row INSERT with one placeholder group per row.
func insertSetsQuery(rows []models.WorkoutSetRow) (string, []any) {
	query := `INSERT INTO workout_sets (session_id, exercise, set_number, reps, weight, created_at) VALUES `
	args := make([]any, 0, len(rows)*setColumns)
	valueStrings := make([]string, 0, len(rows))

	for i, r := range rows {
		base := i * setColumns
		valueStrings = append(valueStrings, fmt.Sprintf(
			"($%d,$%d,$%d,$%d,$%d,$%d)",
			base+1, base+2, base+3, base+4, base+5, base+6,
		))
		args = append(args, r.SessionID, r.Exercise, r.SetNumber, r.Reps, r.Weight, r.CreatedAt)
	}

	return query + strings.Join(valueStrings, ","), args
}

// QueryWorkoutSets returns the sets of a session in insertion order.
func (db *DB) QueryWorkoutSets(ctx context.Context, sessionID uuid.UUID) ([]models.WorkoutSetRow, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT session_id, exercise, set_number, reps, weight, created_at
		 FROM workout_sets
		 WHERE session_id = $1
		 ORDER BY id ASC`,
		sessionID)
	if err != nil {
		return nil, fmt.Errorf("querying workout sets: %w", err)
	}
	defer rows.Close()

	var result []models.WorkoutSetRow
	for rows.Next() {
		var r models.WorkoutSetRow
		if err := rows.Scan(&r.SessionID, &r.Exercise, &r.SetNumber, &r.Reps, &r.Weight, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning workout set: %w", err)
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

// DeleteWorkoutSets removes every set of a session. The session row is kept.
func (db *DB) DeleteWorkoutSets(ctx context.Context, sessionID uuid.UUID) error {
	_, err := db.Pool.Exec(ctx, `DELETE FROM workout_sets WHERE session_id = $1`, sessionID)
	if err != nil {
		return fmt.Errorf("deleting workout sets: %w", err)
	}
	return nil
}
