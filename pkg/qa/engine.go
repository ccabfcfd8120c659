package qa

import "context"

// Result is a single answer from the retrieval+LLM collaborator. Resolved is
// the collaborator's own judgment of whether the answer settles the question;
// nil when the collaborator offers none.
type Result struct {
	Answer   string
	Resolved *bool
}

// Engine is the external question-answering collaborator. Calls may be slow,
// may fail, and are not idempotent; the orchestrator bounds them with a
// timeout and treats any error as a recoverable turn failure.
type Engine interface {
	AnswerQuery(ctx context.Context, question, identity, scope string) (*Result, error)
}

// Summarizer condenses a conversation log for the closing email. It must
// tolerate empty input by returning a fixed placeholder.
type Summarizer interface {
	Summarize(ctx context.Context, logText string) string
}
