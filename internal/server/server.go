package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/claude/liftcalc/internal/ingest/alpha"
	"github.com/claude/liftcalc/internal/session"
	"github.com/claude/liftcalc/internal/tracker"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// SummaryStore computes per-exercise summaries from persisted sets.
// *storage.DB satisfies it.
type SummaryStore interface {
	GetExerciseSummary(ctx context.Context, sessionID uuid.UUID) ([]tracker.ExerciseSummary, error)
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	sessions  *session.Registry
	alpha     *alpha.Provider
	summaries SummaryStore
	log       *slog.Logger
	apiKey    string
	router    chi.Router
}

// New creates a new Server with all routes configured.
func New(sessions *session.Registry, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		sessions: sessions,
		alpha:    alpha.NewProvider(sessions, log),
		log:      log,
		apiKey:   apiKey,
		router:   chi.NewRouter(),
	}
	s.routes()
	return s
}

// SetSummaryStore makes the summary endpoint aggregate in the database
// instead of over the in-memory tracker.
func (s *Server) SetSummaryStore(store SummaryStore) {
	s.summaries = store
}

// MountMCP serves an MCP transport handler at /mcp behind the API key.
func (s *Server) MountMCP(h http.Handler) {
	s.router.With(APIKeyAuth(s.apiKey)).Handle("/mcp", h)
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	// Calculators (stateless, no auth)
	s.router.Get("/api/v1/circle", s.handleCircle)
	s.router.Route("/api/v1/nutrition", func(r chi.Router) {
		r.Get("/calories", s.handleCalories)
		r.Get("/macros", s.handleMacros)
	})
	s.router.Route("/api/v1/body", func(r chi.Router) {
		r.Get("/bmi", s.handleBMI)
		r.Get("/bmr", s.handleBMR)
		r.Get("/tdee", s.handleTDEE)
		r.Get("/protein", s.handleProtein)
		r.Get("/weight-change", s.handleWeightChange)
	})

	// Workout sessions: reads are open, writes need the API key
	s.router.Route("/api/v1/sessions", func(r chi.Router) {
		r.Get("/", s.handleListSessions)
		r.With(APIKeyAuth(s.apiKey)).Post("/", s.handleCreateSession)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/exercises", s.handleExercises)
			r.Get("/exercises/{exercise}/1rm", s.handleBest1RM)
			r.Get("/exercises/{exercise}/sets", s.handleSets)
			r.Get("/volume", s.handleVolume)
			r.Get("/summary", s.handleSummary)

			r.Group(func(r chi.Router) {
				r.Use(APIKeyAuth(s.apiKey))
				r.Post("/sets", s.handleAddSet)
				r.Delete("/sets", s.handleReset)
			})
		})
	})

	// Imports create one session per exported workout
	s.router.With(APIKeyAuth(s.apiKey)).Post("/api/v1/import/alpha", s.handleAlphaImport)
}
