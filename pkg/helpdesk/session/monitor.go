package session

import (
	"context"
	"time"

	"ai-helpdesk-be/internal/pkg/logger"
	"ai-helpdesk-be/pkg/store"
)

// PromptFunc delivers the resolved/unresolved nudge for an idle session.
type PromptFunc func(ctx context.Context, identity string)

// Monitor periodically sweeps the session store and prompts sessions that sit
// in ResolutionPending past the idle threshold. Each idle window produces
// exactly one prompt: the Prompted flag is set under the session lock and only
// cleared when the user becomes active again.
type Monitor struct {
	sessions      *Store
	sweepInterval time.Duration
	idleThreshold time.Duration
	prompt        PromptFunc
	logger        logger.ILogger
}

func NewMonitor(sessions *Store, sweepInterval, idleThreshold time.Duration, prompt PromptFunc, log logger.ILogger) *Monitor {
	return &Monitor{
		sessions:      sessions,
		sweepInterval: sweepInterval,
		idleThreshold: idleThreshold,
		prompt:        prompt,
		logger:        log,
	}
}

// Run blocks until ctx is cancelled, sweeping once per interval.
func (m *Monitor) Run(ctx context.Context) {
	ticker := time.NewTicker(m.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.logger.Info("MONITOR", "Inactivity monitor stopped", nil)
			return
		case <-ticker.C:
			m.sweep(ctx)
		}
	}
}

func (m *Monitor) sweep(ctx context.Context) {
	cutoff := time.Now().Add(-m.idleThreshold)

	for _, sess := range m.sessions.Snapshot() {
		if sess.Phase != store.PhaseResolutionPending || sess.Prompted || sess.LastActivity.After(cutoff) {
			continue
		}

		// Re-check under the session lock: a message may have arrived since
		// the snapshot was taken.
		claimed := false
		m.sessions.Update(sess.Identity, func(s *store.Session) {
			if s.Phase == store.PhaseResolutionPending && !s.Prompted && !s.LastActivity.After(cutoff) {
				s.Prompted = true
				claimed = true
			}
		})
		if !claimed {
			continue
		}

		m.logger.Info("MONITOR", "Prompting idle session", map[string]interface{}{
			"identity":   sess.Identity,
			"session_id": sess.Id.String(),
		})
		m.prompt(ctx, sess.Identity)
	}
}
