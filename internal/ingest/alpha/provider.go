package alpha

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/claude/liftcalc/internal/ingest"
	"github.com/claude/liftcalc/internal/models"
	"github.com/claude/liftcalc/internal/session"
	"github.com/google/uuid"
)

// Provider loads Alpha Progression exports into the session registry, one
// session per exported workout.
type Provider struct {
	sessions *session.Registry
	log      *slog.Logger
}

// NewProvider creates a new Alpha Progression import provider.
func NewProvider(sessions *session.Registry, log *slog.Logger) *Provider {
	return &Provider{sessions: sessions, log: log}
}

// ErrInvalidExport wraps every error caused by the export's content.
var ErrInvalidExport = errors.New("invalid alpha export")

// Ingest parses an export and records its sets. Warmup sets are only
// recorded when includeWarmups is set. Sets the tracker rejects (zero reps)
// are counted as skipped rather than failing the import.
//
// A malformed export fails before anything is stored. The import is not
// atomic otherwise: when a store error stops it partway, the partial Result
// is returned with the error and lists the sessions already created.
func (p *Provider) Ingest(ctx context.Context, r io.Reader, includeWarmups bool) (*ingest.Result, error) {
	parsed, err := Parse(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidExport, err)
	}

	result := &ingest.Result{SessionIDs: []uuid.UUID{}}
	for _, s := range parsed {
		name := fmt.Sprintf("%s (%s)", s.Name, s.Date.Format("2006-01-02"))
		row, err := p.sessions.Create(ctx, name)
		if err != nil {
			return result, fmt.Errorf("creating session %q: %w", name, err)
		}
		result.SessionsCreated++
		result.SessionIDs = append(result.SessionIDs, row.ID)

		for _, ex := range s.Exercises {
			for _, set := range ex.Sets {
				if set.Warmup && !includeWarmups {
					continue
				}
				result.SetsReceived++
				err := p.sessions.AddSet(ctx, row.ID, ex.Name, set.Reps, set.WeightLb)
				switch {
				case err == nil:
					result.SetsInserted++
				case errors.Is(err, models.ErrInvalidArgument):
					result.SetsSkipped++
					p.log.Debug("alpha import: set skipped", "exercise", ex.Name, "error", err)
				default:
					return result, fmt.Errorf("storing set for %q: %w", ex.Name, err)
				}
			}
		}
	}

	p.log.Info("alpha import complete",
		"sessions", result.SessionsCreated,
		"sets", result.SetsInserted,
		"skipped", result.SetsSkipped,
	)
	return result, nil
}
