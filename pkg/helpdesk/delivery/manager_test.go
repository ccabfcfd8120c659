package delivery

import (
	"context"
	"errors"
	"testing"
	"time"

	"ai-helpdesk-be/internal/dto"
	"ai-helpdesk-be/internal/pkg/logger"
)

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

var _ logger.ILogger = nopLogger{}

type sent struct {
	text    string
	buttons []dto.OutgoingButton
}

// flakyMessenger fails the first failures calls, then succeeds.
type flakyMessenger struct {
	failures int
	calls    int
	sent     []sent
}

func (m *flakyMessenger) Send(_ context.Context, _ string, text string, buttons []dto.OutgoingButton) error {
	m.calls++
	if m.calls <= m.failures {
		return errors.New("network down")
	}
	m.sent = append(m.sent, sent{text: text, buttons: buttons})
	return nil
}

func TestSendFirstAttemptSucceeds(t *testing.T) {
	m := &flakyMessenger{}
	d := NewManager(m, 3, time.Millisecond, nopLogger{})

	ok := d.Send(context.Background(), "user1", "hello", nil)

	if !ok {
		t.Fatal("Send() = false, want true")
	}
	if m.calls != 1 {
		t.Errorf("calls = %d, want 1", m.calls)
	}
}

func TestSendRetriesUntilSuccess(t *testing.T) {
	m := &flakyMessenger{failures: 2}
	d := NewManager(m, 3, time.Millisecond, nopLogger{})

	ok := d.Send(context.Background(), "user1", "hello", nil)

	if !ok {
		t.Fatal("Send() = false, want true after retries")
	}
	if m.calls != 3 {
		t.Errorf("calls = %d, want 3", m.calls)
	}
	if len(m.sent) != 1 || m.sent[0].text != "hello" {
		t.Errorf("sent = %+v, want single hello", m.sent)
	}
}

func TestSendExhaustedFallsBackToDegraded(t *testing.T) {
	m := &flakyMessenger{failures: 3}
	d := NewManager(m, 3, time.Millisecond, nopLogger{})

	ok := d.Send(context.Background(), "user1", "hello", nil)

	if ok {
		t.Fatal("Send() = true, want false after exhaustion")
	}
	// 3 attempts + 1 degraded message.
	if m.calls != 4 {
		t.Errorf("calls = %d, want 4", m.calls)
	}
	if len(m.sent) != 1 || m.sent[0].text != DegradedText {
		t.Errorf("sent = %+v, want only the degraded message", m.sent)
	}
}

func TestSendDegradedFailureIsSwallowed(t *testing.T) {
	m := &flakyMessenger{failures: 10}
	d := NewManager(m, 2, time.Millisecond, nopLogger{})

	ok := d.Send(context.Background(), "user1", "hello", nil)

	if ok {
		t.Fatal("Send() = true, want false")
	}
	if m.calls != 3 {
		t.Errorf("calls = %d, want 2 attempts + 1 degraded", m.calls)
	}
}

func TestSendStopsOnCancelledContext(t *testing.T) {
	m := &flakyMessenger{failures: 10}
	d := NewManager(m, 5, time.Hour, nopLogger{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ok := d.Send(ctx, "user1", "hello", nil)

	if ok {
		t.Fatal("Send() = true, want false on dead context")
	}
	if m.calls != 1 {
		t.Errorf("calls = %d, want 1 before the retry delay aborts", m.calls)
	}
}
