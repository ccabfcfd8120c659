package contract

import (
	"context"

	"ai-helpdesk-be/internal/entity"

	"github.com/google/uuid"
)

// TranscriptRepository is the append-only session log.
type TranscriptRepository interface {
	AppendTurn(ctx context.Context, turn *entity.QueryLog) error
	FindBySessionId(ctx context.Context, sessionId uuid.UUID) ([]*entity.QueryLog, error)
	// MarkResolution stamps every turn of a session with the closing status
	// and attaches the summary.
	MarkResolution(ctx context.Context, sessionId uuid.UUID, status string, summary *string) error
}
