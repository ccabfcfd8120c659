package service

import (
	"context"

	"ai-helpdesk-be/internal/dto"
	"ai-helpdesk-be/internal/repository/contract"
	"ai-helpdesk-be/pkg/helpdesk/orchestrator"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IHelpdeskService interface {
	// Dispatch hands a webhook update to the per-identity pipeline. Returns
	// immediately so the webhook can be acknowledged fast.
	Dispatch(msg dto.IncomingMessage)
	GetTranscript(ctx context.Context, sessionId string) (*dto.GetTranscriptResponse, error)
}

type helpdeskService struct {
	dispatcher  *orchestrator.Dispatcher
	transcripts contract.TranscriptRepository
}

func NewHelpdeskService(dispatcher *orchestrator.Dispatcher, transcripts contract.TranscriptRepository) IHelpdeskService {
	return &helpdeskService{
		dispatcher:  dispatcher,
		transcripts: transcripts,
	}
}

func (s *helpdeskService) Dispatch(msg dto.IncomingMessage) {
	s.dispatcher.Dispatch(msg)
}

func (s *helpdeskService) GetTranscript(ctx context.Context, sessionId string) (*dto.GetTranscriptResponse, error) {
	id, err := uuid.Parse(sessionId)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "invalid session id")
	}

	turns, err := s.transcripts.FindBySessionId(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(turns) == 0 {
		return nil, fiber.NewError(fiber.StatusNotFound, "session not found")
	}

	res := &dto.GetTranscriptResponse{
		SessionId: id.String(),
		Identity:  turns[0].ChatId,
		Turns:     make([]dto.TranscriptTurn, 0, len(turns)),
	}
	for _, t := range turns {
		res.Turns = append(res.Turns, dto.TranscriptTurn{
			Query:     t.Query,
			Response:  t.Response,
			Status:    t.ResolutionStatus,
			Timestamp: t.Timestamp,
		})
	}
	return res, nil
}
