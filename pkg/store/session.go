package store

import (
	"time"

	"github.com/google/uuid"
)

// Session is the per-identity conversational state held in memory. It is
// owned by the session store; everything else works on transient copies.
type Session struct {
	Identity string    `json:"identity"`
	Id       uuid.UUID `json:"id"` // correlation id shared by all transcript turns

	Phase       string `json:"phase"`
	ActiveScope string `json:"active_scope"` // sticky until changed or session ends

	LastActivity time.Time `json:"last_activity"`
	LastQuery    string    `json:"last_query"`
	LastAnswer   string    `json:"last_answer"`

	// Set while the closing sub-flow runs.
	Unresolved bool   `json:"unresolved"`
	Summary    string `json:"summary"`

	// Prompted records that the inactivity sweep already nudged this session
	// during the current idle window. Cleared whenever LastActivity advances.
	Prompted bool `json:"prompted"`
}

const (
	PhaseIdle                   = "IDLE"
	PhaseAwaitingScopeSelection = "AWAITING_SCOPE"
	PhaseQuerying               = "QUERYING"
	PhaseResolutionPending      = "RESOLUTION_PENDING"
	PhaseAwaitingEmail          = "AWAITING_EMAIL"
	PhaseEnded                  = "ENDED"
)
