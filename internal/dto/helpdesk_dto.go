package dto

import (
	"strings"
	"time"
)

// IncomingMessage is the normalized inbound event handed to the orchestrator,
// regardless of which platform webhook produced it.
type IncomingMessage struct {
	Identity string `json:"identity" validate:"required"`
	Text     string `json:"text"`
	// Callback carries the payload of a button press ("resolved"/"unresolved").
	// Empty for plain text messages.
	Callback string `json:"callback,omitempty"`
}

// OutgoingButton is a single inline choice attached to an outbound message.
type OutgoingButton struct {
	Text string `json:"text"`
	Data string `json:"data"`
}

// TranscriptTurn is one question/answer pair of a session, in order.
type TranscriptTurn struct {
	Query     string    `json:"query"`
	Response  string    `json:"response"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// GetTranscriptResponse is the support-staff view of a full session log.
type GetTranscriptResponse struct {
	SessionId string           `json:"session_id"`
	Identity  string           `json:"identity"`
	Turns     []TranscriptTurn `json:"turns"`
}

// CaseClosedMessage is the payload published when the email sub-flow
// completes; the consumer side sends the confirmation email.
type CaseClosedMessage struct {
	Identity   string `json:"identity"`
	SessionId  string `json:"session_id"`
	Email      string `json:"email"`
	Unresolved bool   `json:"unresolved"`
	Summary    string `json:"summary"`
}

// NeedsScopeError signals that no project scope could be resolved for a
// message. KnownProjects feeds the user-facing prompt.
type NeedsScopeError struct {
	KnownProjects []string
}

func (e *NeedsScopeError) Error() string {
	return "could not resolve a project for this message"
}

// Prompt renders the clarification text sent back to the user.
func (e *NeedsScopeError) Prompt() string {
	if len(e.KnownProjects) == 0 {
		return "I couldn't tell which project you mean, and no projects are available for your account yet. Please contact your administrator."
	}
	return "Which project is this about? You can mention the project name, or tag it like #project. Your projects:\n- " +
		strings.Join(e.KnownProjects, "\n- ")
}

// AccessDeniedError is the fail-closed result of the access gate.
type AccessDeniedError struct {
	Reason string
}

func (e *AccessDeniedError) Error() string {
	return e.Reason
}
