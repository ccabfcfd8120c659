package service

import (
	"context"
	"encoding/json"

	"ai-helpdesk-be/internal/dto"
	"ai-helpdesk-be/internal/pkg/logger"
)

// ICaseService queues closed cases for asynchronous finalization (summary
// email, event emission). Implements the orchestrator's CasePublisher.
type ICaseService interface {
	PublishCaseClosed(ctx context.Context, msg *dto.CaseClosedMessage) error
}

type caseService struct {
	publisherService IPublisherService
	logger           logger.ILogger
}

func NewCaseService(publisherService IPublisherService, log logger.ILogger) ICaseService {
	return &caseService{
		publisherService: publisherService,
		logger:           log,
	}
}

func (c *caseService) PublishCaseClosed(ctx context.Context, msg *dto.CaseClosedMessage) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	if err := c.publisherService.Publish(ctx, payload); err != nil {
		return err
	}

	c.logger.Info("CASE", "Case closure queued", map[string]interface{}{
		"identity":   msg.Identity,
		"session_id": msg.SessionId,
		"unresolved": msg.Unresolved,
	})
	return nil
}
