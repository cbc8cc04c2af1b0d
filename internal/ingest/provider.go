// Package ingest holds types shared by workout-log importers.
package ingest

import "github.com/google/uuid"

// Result holds the outcome of an import.
type Result struct {
	SessionsCreated int         `json:"sessions_created"`
	SessionIDs      []uuid.UUID `json:"session_ids"`

	SetsReceived int `json:"sets_received"`
	SetsInserted int `json:"sets_inserted"`
	SetsSkipped  int `json:"sets_skipped"`

	Message string `json:"message,omitempty"`
}
