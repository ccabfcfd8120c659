package messenger

import (
	"context"

	"ai-helpdesk-be/internal/dto"
)

// Messenger is the outbound chat-platform abstraction. Implementations must
// be safe for concurrent use across identities.
type Messenger interface {
	Send(ctx context.Context, identity, text string, buttons []dto.OutgoingButton) error
}
