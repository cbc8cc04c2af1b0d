package mcp

import (
	"context"

	"github.com/claude/liftcalc/internal/models"
	"github.com/claude/liftcalc/internal/session"
	"github.com/claude/liftcalc/internal/tracker"
	"github.com/google/uuid"
)

// SessionSource abstracts workout sessions for MCP tools. Both LocalSource
// (in-process registry) and HTTPClient (remote via REST API) satisfy this
// interface. An empty exercise passed to Volume means every exercise.
type SessionSource interface {
	CreateSession(ctx context.Context, name string) (models.SessionRow, error)
	ListSessions(ctx context.Context) ([]models.SessionRow, error)
	AddSet(ctx context.Context, id uuid.UUID, exercise string, reps int, weight float64) error
	Volume(ctx context.Context, id uuid.UUID, exercise string) (float64, error)
	Best1RM(ctx context.Context, id uuid.UUID, exercise string) (float64, error)
	Exercises(ctx context.Context, id uuid.UUID) ([]string, error)
	Reset(ctx context.Context, id uuid.UUID) error
	Summary(ctx context.Context, id uuid.UUID) ([]tracker.ExerciseSummary, error)
}

// LocalSource serves sessions from a registry in the same process.
type LocalSource struct {
	reg *session.Registry
}

// Compile-time checks.
var (
	_ SessionSource = (*LocalSource)(nil)
	_ SessionSource = (*HTTPClient)(nil)
)

// NewLocalSource wraps reg.
func NewLocalSource(reg *session.Registry) *LocalSource {
	return &LocalSource{reg: reg}
}

func (l *LocalSource) CreateSession(ctx context.Context, name string) (models.SessionRow, error) {
	return l.reg.Create(ctx, name)
}

func (l *LocalSource) ListSessions(ctx context.Context) ([]models.SessionRow, error) {
	return l.reg.Sessions(ctx)
}

func (l *LocalSource) AddSet(ctx context.Context, id uuid.UUID, exercise string, reps int, weight float64) error {
	return l.reg.AddSet(ctx, id, exercise, reps, weight)
}

func (l *LocalSource) Volume(ctx context.Context, id uuid.UUID, exercise string) (float64, error) {
	t, err := l.reg.Tracker(ctx, id)
	if err != nil {
		return 0, err
	}
	if exercise == "" {
		return t.TotalVolume(), nil
	}
	return t.Volume(exercise), nil
}

func (l *LocalSource) Best1RM(ctx context.Context, id uuid.UUID, exercise string) (float64, error) {
	t, err := l.reg.Tracker(ctx, id)
	if err != nil {
		return 0, err
	}
	return t.Best1RM(exercise), nil
}

func (l *LocalSource) Exercises(ctx context.Context, id uuid.UUID) ([]string, error) {
	t, err := l.reg.Tracker(ctx, id)
	if err != nil {
		return nil, err
	}
	return t.Exercises(), nil
}

func (l *LocalSource) Reset(ctx context.Context, id uuid.UUID) error {
	return l.reg.Reset(ctx, id)
}

func (l *LocalSource) Summary(ctx context.Context, id uuid.UUID) ([]tracker.ExerciseSummary, error) {
	t, err := l.reg.Tracker(ctx, id)
	if err != nil {
		return nil, err
	}
	return t.Summary(), nil
}
