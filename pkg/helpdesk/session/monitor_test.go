package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"ai-helpdesk-be/internal/pkg/logger"
	"ai-helpdesk-be/pkg/store"
)

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

var _ logger.ILogger = nopLogger{}

type promptRecorder struct {
	mu      sync.Mutex
	prompts []string
}

func (p *promptRecorder) prompt(_ context.Context, identity string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.prompts = append(p.prompts, identity)
}

func (p *promptRecorder) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.prompts)
}

func TestSweepPromptsIdlePendingSession(t *testing.T) {
	s := NewStore(0)
	rec := &promptRecorder{}
	m := NewMonitor(s, time.Minute, 5*time.Minute, rec.prompt, nopLogger{})

	s.Update("idle-user", func(sess *store.Session) {
		sess.Phase = store.PhaseResolutionPending
		sess.LastActivity = time.Now().Add(-10 * time.Minute)
	})
	s.Update("active-user", func(sess *store.Session) {
		sess.Phase = store.PhaseResolutionPending
		sess.LastActivity = time.Now()
	})
	s.Update("querying-user", func(sess *store.Session) {
		sess.Phase = store.PhaseQuerying
		sess.LastActivity = time.Now().Add(-10 * time.Minute)
	})

	m.sweep(context.Background())

	if rec.count() != 1 {
		t.Fatalf("prompts = %v, want exactly [idle-user]", rec.prompts)
	}
	if rec.prompts[0] != "idle-user" {
		t.Errorf("prompted %q, want idle-user", rec.prompts[0])
	}

	sess, _ := s.Get("idle-user")
	if !sess.Prompted {
		t.Error("Prompted flag not set after sweep")
	}
}

func TestSweepPromptsOncePerIdleWindow(t *testing.T) {
	s := NewStore(0)
	rec := &promptRecorder{}
	m := NewMonitor(s, time.Minute, 5*time.Minute, rec.prompt, nopLogger{})

	s.Update("user1", func(sess *store.Session) {
		sess.Phase = store.PhaseResolutionPending
		sess.LastActivity = time.Now().Add(-10 * time.Minute)
	})

	m.sweep(context.Background())
	m.sweep(context.Background())
	m.sweep(context.Background())

	if rec.count() != 1 {
		t.Fatalf("prompts = %d, want 1 per idle window", rec.count())
	}

	// Activity clears the flag; going idle again earns a new prompt.
	s.Update("user1", func(sess *store.Session) {
		sess.LastActivity = time.Now().Add(-10 * time.Minute)
		sess.Prompted = false
	})

	m.sweep(context.Background())
	if rec.count() != 2 {
		t.Fatalf("prompts = %d, want 2 after renewed inactivity", rec.count())
	}
}

func TestRunStopsOnContextCancel(t *testing.T) {
	s := NewStore(0)
	m := NewMonitor(s, 10*time.Millisecond, time.Minute, func(context.Context, string) {}, nopLogger{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		m.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}
