package service

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"ai-helpdesk-be/internal/dto"
	"ai-helpdesk-be/internal/entity"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTranscriptRepo struct {
	turns []*entity.QueryLog
}

func (r *fakeTranscriptRepo) AppendTurn(_ context.Context, turn *entity.QueryLog) error {
	r.turns = append(r.turns, turn)
	return nil
}

func (r *fakeTranscriptRepo) FindBySessionId(_ context.Context, sessionId uuid.UUID) ([]*entity.QueryLog, error) {
	var out []*entity.QueryLog
	for _, t := range r.turns {
		if t.SessionId == sessionId {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeTranscriptRepo) MarkResolution(context.Context, uuid.UUID, string, *string) error {
	return nil
}

type sentEmail struct {
	to         string
	sessionId  string
	unresolved bool
	summary    string
	logText    string
}

type fakeEmailService struct {
	mu   sync.Mutex
	sent []sentEmail
}

func (s *fakeEmailService) SendCaseTranscript(toEmail, sessionId string, unresolved bool, summary, logText string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, sentEmail{
		to:         toEmail,
		sessionId:  sessionId,
		unresolved: unresolved,
		summary:    summary,
		logText:    logText,
	})
	return nil
}

func (s *fakeEmailService) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sent)
}

func TestConsumerSendsCaseEmail(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	sessionId := uuid.New()

	transcripts := &fakeTranscriptRepo{
		turns: []*entity.QueryLog{
			{SessionId: sessionId, Query: "how to reset", Response: "Use the portal."},
		},
	}
	emails := &fakeEmailService{}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cs := NewConsumerService(pubSub, "helpdesk.case.closed", transcripts, emails, nil)
	require.NoError(t, cs.Consume(ctx))

	payload, err := json.Marshal(dto.CaseClosedMessage{
		Identity:   "chat-100",
		SessionId:  sessionId.String(),
		Email:      "user@example.com",
		Unresolved: true,
		Summary:    "Password reset issue.",
	})
	require.NoError(t, err)

	pub := NewPublisherService(pubSub, "helpdesk.case.closed")
	require.NoError(t, pub.Publish(ctx, payload))

	require.Eventually(t, func() bool {
		return emails.count() == 1
	}, 2*time.Second, 10*time.Millisecond)

	got := emails.sent[0]
	assert.Equal(t, "user@example.com", got.to)
	assert.Equal(t, sessionId.String(), got.sessionId)
	assert.True(t, got.unresolved)
	assert.Equal(t, "Password reset issue.", got.summary)
	assert.Contains(t, got.logText, "User: how to reset")
	assert.Contains(t, got.logText, "Bot: Use the portal.")
}

func TestConsumerAcksMalformedMessages(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	emails := &fakeEmailService{}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cs := NewConsumerService(pubSub, "helpdesk.case.closed", &fakeTranscriptRepo{}, emails, nil)
	require.NoError(t, cs.Consume(ctx))

	pub := NewPublisherService(pubSub, "helpdesk.case.closed")
	require.NoError(t, pub.Publish(ctx, []byte("{not json")))

	// Give the worker a beat; the broken message must be dropped, not retried.
	time.Sleep(100 * time.Millisecond)
	assert.Zero(t, emails.count())
}
