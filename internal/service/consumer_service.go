package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"ai-helpdesk-be/internal/dto"
	"ai-helpdesk-be/internal/pkg/mailer"
	"ai-helpdesk-be/internal/repository/contract"
	"ai-helpdesk-be/pkg/events"
	"ai-helpdesk-be/pkg/helpdesk/orchestrator"
	pktNats "ai-helpdesk-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService finalizes closed cases off the hot path: it renders the
// transcript, emails it to the address the user supplied, and emits the
// case-closed event to the external bus.
type consumerService struct {
	pubSub         *gochannel.GoChannel
	topicName      string
	transcripts    contract.TranscriptRepository
	emailService   mailer.IEmailService
	eventPublisher *pktNats.Publisher
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	transcripts contract.TranscriptRepository,
	emailService mailer.IEmailService,
	eventPublisher *pktNats.Publisher,
) IConsumerService {
	return &consumerService{
		pubSub:         pubSub,
		topicName:      topicName,
		transcripts:    transcripts,
		emailService:   emailService,
		eventPublisher: eventPublisher,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.CaseClosedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal case closure: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	sessionId, err := uuid.Parse(payload.SessionId)
	if err != nil {
		log.Printf("[ERROR] Invalid session id in case closure %q: %v", payload.SessionId, err)
		msg.Ack()
		return
	}

	log.Printf("[INFO] Finalizing case for session %s (unresolved=%t)", sessionId, payload.Unresolved)

	turns, err := cs.transcripts.FindBySessionId(ctx, sessionId)
	if err != nil {
		log.Printf("[ERROR] Failed to fetch transcript for session %s: %v", sessionId, err)
		msg.Nack() // Nack for retriable errors
		return
	}

	logText := orchestrator.RenderLogText(turns)

	if err := cs.emailService.SendCaseTranscript(
		payload.Email,
		payload.SessionId,
		payload.Unresolved,
		payload.Summary,
		logText,
	); err != nil {
		log.Printf("[ERROR] Failed to send case email for session %s: %v", sessionId, err)
		msg.Nack()
		return
	}

	if cs.eventPublisher != nil {
		evt := events.CaseClosedEvent{
			Identity:   payload.Identity,
			SessionId:  payload.SessionId,
			Unresolved: payload.Unresolved,
			ClosedAt:   time.Now().UTC(),
		}
		// Auxiliary; a bus outage must not re-run the email.
		if err := cs.eventPublisher.Publish(ctx, evt); err != nil {
			log.Printf("[WARN] Failed to publish case.closed event: %v", err)
		}
	}

	log.Printf("[SUCCESS] Case finalized for session %s, email sent to %s", sessionId, payload.Email)
	msg.Ack()
}
