// Package setlog stores sessions and sets in a local SQLite file for
// single-user use without a PostgreSQL server.
package setlog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/claude/liftcalc/internal/models"
	"github.com/claude/liftcalc/internal/session"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS workout_sets (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id TEXT NOT NULL REFERENCES sessions(id),
	exercise   TEXT NOT NULL,
	set_number INTEGER NOT NULL,
	reps       INTEGER NOT NULL,
	weight     REAL NOT NULL,
	created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS workout_sets_session_idx ON workout_sets(session_id, id);
`

// DB is a SQLite-backed set store.
type DB struct {
	db *sql.DB
}

// Compile-time check: *DB satisfies session.SetStore.
var _ session.SetStore = (*DB)(nil)

// Open opens (or creates) the set log at dir/setlog.db.
func Open(dir string) (*DB, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating setlog dir %s: %w", dir, err)
	}

	dbPath := filepath.Join(dir, "setlog.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening setlog db: %w", err)
	}
	// SQLite allows a single writer.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating setlog tables: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the set log.
func (s *DB) Close() error {
	return s.db.Close()
}

// CreateSession records a new session.
func (s *DB) CreateSession(ctx context.Context, row models.SessionRow) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (id, name, created_at) VALUES (?, ?, ?)`,
		row.ID.String(), row.Name, row.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("inserting session: %w", err)
	}
	return nil
}

// SessionExists reports whether a session with id was created.
func (s *DB) SessionExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sessions WHERE id = ?`, id.String(),
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("looking up session: %w", err)
	}
	return count > 0, nil
}

// ListSessions returns every session, oldest first.
func (s *DB) ListSessions(ctx context.Context) ([]models.SessionRow, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, created_at FROM sessions ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying sessions: %w", err)
	}
	defer rows.Close()

	var result []models.SessionRow
	for rows.Next() {
		var r models.SessionRow
		var id, created string
		if err := rows.Scan(&id, &r.Name, &created); err != nil {
			return nil, fmt.Errorf("scanning session: %w", err)
		}
		if r.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("parsing session id %q: %w", id, err)
		}
		if r.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
			return nil, fmt.Errorf("parsing session time %q: %w", created, err)
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

// InsertWorkoutSets appends sets in a single transaction. Returns count inserted.
func (s *DB) InsertWorkoutSets(ctx context.Context, rows []models.WorkoutSetRow) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO workout_sets (session_id, exercise, set_number, reps, weight, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	var inserted int64
	for _, r := range rows {
		res, err := stmt.ExecContext(ctx, r.SessionID.String(), r.Exercise, r.SetNumber,
			r.Reps, r.Weight, r.CreatedAt.UTC().Format(time.RFC3339Nano))
		if err != nil {
			return 0, fmt.Errorf("inserting workout set: %w", err)
		}
		n, _ := res.RowsAffected()
		inserted += n
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing sets: %w", err)
	}
	return inserted, nil
}

// QueryWorkoutSets returns the sets of a session in insertion order.
func (s *DB) QueryWorkoutSets(ctx context.Context, sessionID uuid.UUID) ([]models.WorkoutSetRow, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT exercise, set_number, reps, weight, created_at
		 FROM workout_sets WHERE session_id = ? ORDER BY id ASC`, sessionID.String())
	if err != nil {
		return nil, fmt.Errorf("querying workout sets: %w", err)
	}
	defer rows.Close()

	var result []models.WorkoutSetRow
	for rows.Next() {
		r := models.WorkoutSetRow{SessionID: sessionID}
		var created string
		if err := rows.Scan(&r.Exercise, &r.SetNumber, &r.Reps, &r.Weight, &created); err != nil {
			return nil, fmt.Errorf("scanning workout set: %w", err)
		}
		if r.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
			return nil, fmt.Errorf("parsing set time %q: %w", created, err)
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

// DeleteWorkoutSets removes every set of a session. The session itself is kept.
func (s *DB) DeleteWorkoutSets(ctx context.Context, sessionID uuid.UUID) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM workout_sets WHERE session_id = ?`, sessionID.String()); err != nil {
		return fmt.Errorf("deleting workout sets: %w", err)
	}
	return nil
}
