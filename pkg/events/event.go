package events

import "time"

// Event is anything publishable to the helpdesk event bus.
type Event interface {
	EventType() string
	Payload() interface{}
}

// CaseClosedEvent is emitted when a session finishes the email sub-flow. The
// dashboard consumes it for follow-up queues.
type CaseClosedEvent struct {
	Identity   string    `json:"identity"`
	SessionId  string    `json:"session_id"`
	Unresolved bool      `json:"unresolved"`
	ClosedAt   time.Time `json:"closed_at"`
}

func (e CaseClosedEvent) EventType() string    { return "case.closed" }
func (e CaseClosedEvent) Payload() interface{} { return e }

// SessionStartedEvent marks the first message of a new session.
type SessionStartedEvent struct {
	Identity  string    `json:"identity"`
	SessionId string    `json:"session_id"`
	StartedAt time.Time `json:"started_at"`
}

func (e SessionStartedEvent) EventType() string    { return "session.started" }
func (e SessionStartedEvent) Payload() interface{} { return e }
