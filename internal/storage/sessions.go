package storage

import (
	"context"
	"fmt"

	"github.com/claude/liftcalc/internal/models"
	"github.com/google/uuid"
)

// CreateSession inserts a session row.
func (db *DB) CreateSession(ctx context.Context, s models.SessionRow) error {
	_, err := db.Pool.Exec(ctx,
		`INSERT INTO sessions (id, name, created_at) VALUES ($1, $2, $3)`,
		s.ID, s.Name, s.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting session: %w", err)
	}
	return nil
}

// SessionExists reports whether a session row exists.
func (db *DB) SessionExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := db.Pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM sessions WHERE id = $1)`, id,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("looking up session: %w", err)
	}
	return exists, nil
}

// ListSessions returns every session, oldest first.
func (db *DB) ListSessions(ctx context.Context) ([]models.SessionRow, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, name, created_at FROM sessions ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying sessions: %w", err)
	}
	defer rows.Close()

	var result []models.SessionRow
	for rows.Next() {
		var s models.SessionRow
		if err := rows.Scan(&s.ID, &s.Name, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning session: %w", err)
		}
		result = append(result, s)
	}
	return result, rows.Err()
}
