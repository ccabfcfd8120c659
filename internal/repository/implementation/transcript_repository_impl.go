package implementation

import (
	"context"

	"ai-helpdesk-be/internal/entity"
	"ai-helpdesk-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TranscriptRepositoryImpl struct {
	db *gorm.DB
}

func NewTranscriptRepository(db *gorm.DB) contract.TranscriptRepository {
	return &TranscriptRepositoryImpl{db: db}
}

func (r *TranscriptRepositoryImpl) AppendTurn(ctx context.Context, turn *entity.QueryLog) error {
	return r.db.WithContext(ctx).Create(turn).Error
}

func (r *TranscriptRepositoryImpl) FindBySessionId(ctx context.Context, sessionId uuid.UUID) ([]*entity.QueryLog, error) {
	var turns []*entity.QueryLog
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionId).
		Order("timestamp ASC").
		Find(&turns).Error
	if err != nil {
		return nil, err
	}
	return turns, nil
}

func (r *TranscriptRepositoryImpl) MarkResolution(ctx context.Context, sessionId uuid.UUID, status string, summary *string) error {
	return r.db.WithContext(ctx).
		Model(&entity.QueryLog{}).
		Where("session_id = ?", sessionId).
		Updates(map[string]interface{}{
			"resolution_status": status,
			"summary":           summary,
		}).Error
}
