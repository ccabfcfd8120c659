package delivery

import (
	"context"
	"time"

	"ai-helpdesk-be/internal/dto"
	"ai-helpdesk-be/internal/pkg/logger"
	"ai-helpdesk-be/pkg/messenger"
)

// DegradedText is the last-ditch message sent after retries are exhausted.
const DegradedText = "I'm having trouble sending messages right now. Please try again later."

// Manager wraps the outbound messenger with bounded retry. Delivery is always
// best-effort: a persistent failure is reported to the caller as false, never
// as a panic or a propagated error.
type Manager struct {
	messenger   messenger.Messenger
	maxAttempts int
	retryDelay  time.Duration
	logger      logger.ILogger
}

func NewManager(m messenger.Messenger, maxAttempts int, retryDelay time.Duration, log logger.ILogger) *Manager {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &Manager{
		messenger:   m,
		maxAttempts: maxAttempts,
		retryDelay:  retryDelay,
		logger:      log,
	}
}

// Send delivers text (with optional buttons) to the identity. Returns true if
// any attempt succeeded.
func (d *Manager) Send(ctx context.Context, identity, text string, buttons []dto.OutgoingButton) bool {
	var lastErr error
	for attempt := 1; attempt <= d.maxAttempts; attempt++ {
		if err := d.messenger.Send(ctx, identity, text, buttons); err == nil {
			return true
		} else {
			lastErr = err
			d.logger.Warn("DELIVERY", "Send attempt failed", map[string]interface{}{
				"identity": identity,
				"attempt":  attempt,
				"error":    err.Error(),
			})
		}

		if attempt < d.maxAttempts {
			select {
			case <-ctx.Done():
				return false
			case <-time.After(d.retryDelay):
			}
		}
	}

	d.logger.Error("DELIVERY", "All send attempts exhausted", map[string]interface{}{
		"identity": identity,
		"attempts": d.maxAttempts,
		"error":    lastErr.Error(),
	})

	// One degraded-mode message; a second failure is swallowed.
	if err := d.messenger.Send(ctx, identity, DegradedText, nil); err != nil {
		d.logger.Error("DELIVERY", "Degraded message also failed", map[string]interface{}{
			"identity": identity,
			"error":    err.Error(),
		})
	}
	return false
}
