// Package session keeps one workout tracker per session and mirrors every
// logged set into a SetStore so sessions survive restarts.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/claude/liftcalc/internal/models"
	"github.com/claude/liftcalc/internal/tracker"
	"github.com/google/uuid"
)

// ErrSessionNotFound is returned for ids that were never created.
var ErrSessionNotFound = errors.New("session not found")

// SetStore persists sessions and their sets. Both *storage.DB (PostgreSQL)
// and *setlog.DB (SQLite) satisfy this interface.
type SetStore interface {
	CreateSession(ctx context.Context, s models.SessionRow) error
	SessionExists(ctx context.Context, id uuid.UUID) (bool, error)
	ListSessions(ctx context.Context) ([]models.SessionRow, error)
	InsertWorkoutSets(ctx context.Context, rows []models.WorkoutSetRow) (int64, error)
	QueryWorkoutSets(ctx context.Context, sessionID uuid.UUID) ([]models.WorkoutSetRow, error)
	DeleteWorkoutSets(ctx context.Context, sessionID uuid.UUID) error
}

// Registry maps session ids to trackers. A nil store keeps everything in memory.
type Registry struct {
	store SetStore
	log   *slog.Logger

	mu       sync.Mutex
	trackers map[uuid.UUID]*tracker.Tracker
	sessions map[uuid.UUID]models.SessionRow
	// writes serializes store write + tracker update per session.
	writes map[uuid.UUID]*sync.Mutex
}

// NewRegistry creates a registry backed by store, which may be nil.
func NewRegistry(store SetStore, log *slog.Logger) *Registry {
	return &Registry{
		store:    store,
		log:      log,
		trackers: make(map[uuid.UUID]*tracker.Tracker),
		sessions: make(map[uuid.UUID]models.SessionRow),
		writes:   make(map[uuid.UUID]*sync.Mutex),
	}
}

// writeLock returns the mutex guarding writes to session id.
func (r *Registry) writeLock(id uuid.UUID) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.writes[id]
	if !ok {
		m = &sync.Mutex{}
		r.writes[id] = m
	}
	return m
}

// Create starts a new, empty session.
func (r *Registry) Create(ctx context.Context, name string) (models.SessionRow, error) {
	row := models.SessionRow{
		ID:        uuid.New(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	if r.store != nil {
		if err := r.store.CreateSession(ctx, row); err != nil {
			return models.SessionRow{}, fmt.Errorf("creating session: %w", err)
		}
	}

	r.mu.Lock()
	r.trackers[row.ID] = tracker.New()
	r.sessions[row.ID] = row
	r.mu.Unlock()

	r.log.Info("session created", "session", row.ID, "name", name)
	return row, nil
}

// Sessions lists known sessions. With a store, stored sessions are included.
func (r *Registry) Sessions(ctx context.Context) ([]models.SessionRow, error) {
	if r.store != nil {
		rows, err := r.store.ListSessions(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing sessions: %w", err)
		}
		return rows, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.SessionRow, 0, len(r.sessions))
	for _, s := range r.sessions {
		out = append(out, s)
	}
	sortSessions(out)
	return out, nil
}

// Tracker returns the tracker for id, loading it from the store when it is
// not in memory yet.
func (r *Registry) Tracker(ctx context.Context, id uuid.UUID) (*tracker.Tracker, error) {
	r.mu.Lock()
	t, ok := r.trackers[id]
	r.mu.Unlock()
	if ok {
		return t, nil
	}
	if r.store == nil {
		return nil, ErrSessionNotFound
	}

	exists, err := r.store.SessionExists(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("looking up session %s: %w", id, err)
	}
	if !exists {
		return nil, ErrSessionNotFound
	}

	rows, err := r.store.QueryWorkoutSets(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("loading sets for session %s: %w", id, err)
	}
	loaded := tracker.New()
	if err := loaded.Load(rows); err != nil {
		return nil, fmt.Errorf("replaying sets for session %s: %w", id, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	// Another caller may have loaded it while we were querying.
	if t, ok := r.trackers[id]; ok {
		return t, nil
	}
	r.trackers[id] = loaded
	r.log.Debug("session loaded from store", "session", id, "sets", len(rows))
	return loaded, nil
}

// AddSet validates the set, stores it, then records it in the tracker. A
// rejected set or a failed write leaves the tracker unchanged. Writes to one
// session are serialized so the store and the tracker see the same order.
func (r *Registry) AddSet(ctx context.Context, id uuid.UUID, exercise string, reps int, weight float64) error {
	if err := tracker.ValidateSet(exercise, reps, weight); err != nil {
		return err
	}
	t, err := r.Tracker(ctx, id)
	if err != nil {
		return err
	}

	lock := r.writeLock(id)
	lock.Lock()
	defer lock.Unlock()

	if r.store != nil {
		row := models.WorkoutSetRow{
			SessionID: id,
			Exercise:  exercise,
			SetNumber: len(t.Sets(exercise)) + 1,
			Reps:      reps,
			Weight:    weight,
			CreatedAt: time.Now().UTC(),
		}
		if _, err := r.store.InsertWorkoutSets(ctx, []models.WorkoutSetRow{row}); err != nil {
			return fmt.Errorf("storing set: %w", err)
		}
	}

	return t.AddSet(exercise, reps, weight)
}

// Reset clears every set of a session, in the store first.
func (r *Registry) Reset(ctx context.Context, id uuid.UUID) error {
	t, err := r.Tracker(ctx, id)
	if err != nil {
		return err
	}

	lock := r.writeLock(id)
	lock.Lock()
	defer lock.Unlock()

	if r.store != nil {
		if err := r.store.DeleteWorkoutSets(ctx, id); err != nil {
			return fmt.Errorf("deleting sets: %w", err)
		}
	}
	t.Reset()
	r.log.Info("session reset", "session", id)
	return nil
}

// sortSessions orders sessions oldest first.
func sortSessions(rows []models.SessionRow) {
	slices.SortFunc(rows, func(a, b models.SessionRow) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
}
