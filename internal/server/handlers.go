package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/claude/liftcalc/internal/models"
	"github.com/claude/liftcalc/internal/session"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps calculator and session errors onto HTTP status codes.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrInvalidArgument):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, session.ErrSessionNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	default:
		s.log.Error("request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
}

// queryFloat reads a required float query parameter.
func queryFloat(r *http.Request, name string) (float64, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return 0, models.InvalidArgument(name + " parameter required")
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, models.InvalidArgument(fmt.Sprintf("%s: invalid number %q", name, v))
	}
	return f, nil
}

// optionalFloat reads a float query parameter, returning def when absent.
func optionalFloat(r *http.Request, name string, def float64) (float64, error) {
	if r.URL.Query().Get(name) == "" {
		return def, nil
	}
	return queryFloat(r, name)
}

// queryFloats reads several required float parameters in order.
func queryFloats(r *http.Request, names ...string) ([]float64, error) {
	out := make([]float64, len(names))
	for i, name := range names {
		f, err := queryFloat(r, name)
		if err != nil {
			return nil, err
		}
		out[i] = f
	}
	return out, nil
}
