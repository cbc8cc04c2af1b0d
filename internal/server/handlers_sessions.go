package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/claude/liftcalc/internal/ingest/alpha"
	"github.com/claude/liftcalc/internal/models"
	"github.com/claude/liftcalc/internal/tracker"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type createSessionRequest struct {
	Name string `json:"name"`
}

type addSetRequest struct {
	Exercise string  `json:"exercise"`
	Reps     int     `json:"reps"`
	Weight   float64 `json:"weight"`
}

// sessionTracker resolves the {id} URL param to its tracker.
func (s *Server) sessionTracker(r *http.Request) (uuid.UUID, *tracker.Tracker, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, nil, models.InvalidArgument("invalid session id")
	}
	t, err := s.sessions.Tracker(r.Context(), id)
	if err != nil {
		return uuid.Nil, nil, err
	}
	return id, t, nil
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	rows, err := s.sessions.Sessions(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	if rows == nil {
		rows = []models.SessionRow{}
	}
	writeJSON(w, http.StatusOK, rows)
}

// handleCreateSession accepts an optional {"name": "..."} body.
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
			return
		}
	}

	row, err := s.sessions.Create(r.Context(), req.Name)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, row)
}

func (s *Server) handleAddSet(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, models.InvalidArgument("invalid session id"))
		return
	}

	var req addSetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	if err := s.sessions.AddSet(r.Context(), id, req.Exercise, req.Reps, req.Weight); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, req)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, models.InvalidArgument("invalid session id"))
		return
	}
	if err := s.sessions.Reset(r.Context(), id); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleExercises(w http.ResponseWriter, r *http.Request) {
	_, t, err := s.sessionTracker(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t.Exercises())
}

// handleVolume returns the session's total volume, or one exercise's volume
// when ?exercise= is set. Unknown exercises report 0.
func (s *Server) handleVolume(w http.ResponseWriter, r *http.Request) {
	_, t, err := s.sessionTracker(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	resp := map[string]any{}
	if ex := r.URL.Query().Get("exercise"); ex != "" {
		resp["exercise"] = ex
		resp["volume"] = t.Volume(ex)
	} else {
		resp["volume"] = t.TotalVolume()
	}
	writeJSON(w, http.StatusOK, resp)
}

// exerciseParam returns the decoded {exercise} URL param. chi matches on the
// raw path, so names containing "/" arrive still escaped.
func exerciseParam(r *http.Request) (string, error) {
	ex, err := url.PathUnescape(chi.URLParam(r, "exercise"))
	if err != nil {
		return "", models.InvalidArgument("invalid exercise name")
	}
	return ex, nil
}

func (s *Server) handleBest1RM(w http.ResponseWriter, r *http.Request) {
	_, t, err := s.sessionTracker(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	ex, err := exerciseParam(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"exercise": ex, "best_1rm": t.Best1RM(ex)})
}

func (s *Server) handleSets(w http.ResponseWriter, r *http.Request) {
	_, t, err := s.sessionTracker(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	ex, err := exerciseParam(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t.Sets(ex))
}

// handleSummary aggregates in the database when a summary store is attached,
// otherwise over the in-memory tracker.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	id, t, err := s.sessionTracker(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	var summary []tracker.ExerciseSummary
	if s.summaries != nil {
		summary, err = s.summaries.GetExerciseSummary(r.Context(), id)
		if err != nil {
			s.writeError(w, err)
			return
		}
	} else {
		summary = t.Summary()
	}
	if summary == nil {
		summary = []tracker.ExerciseSummary{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"session":      id,
		"total_volume": t.TotalVolume(),
		"exercises":    summary,
	})
}

// maxImportBytes caps the size of an uploaded export.
const maxImportBytes = 10 << 20

// handleAlphaImport loads an Alpha Progression CSV export from the request
// body. ?warmups=true also records warmup sets. Malformed exports are 400,
// store failures 500.
func (s *Server) handleAlphaImport(w http.ResponseWriter, r *http.Request) {
	body := http.MaxBytesReader(w, r.Body, maxImportBytes)
	warmups := r.URL.Query().Get("warmups") == "true"

	result, err := s.alpha.Ingest(r.Context(), body, warmups)
	switch {
	case errors.Is(err, alpha.ErrInvalidExport):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	case err != nil:
		// Sessions created before the failure stay; report them.
		s.log.Error("alpha import failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": err.Error(), "partial": result})
		return
	}
	writeJSON(w, http.StatusOK, result)
}
