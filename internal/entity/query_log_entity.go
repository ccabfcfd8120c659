package entity

import (
	"time"

	"github.com/google/uuid"
)

// Resolution status values for a logged turn.
const (
	ResolutionPendingStatus = "pending"
	ResolutionResolved      = "resolved"
	ResolutionUnresolved    = "unresolved"
)

// QueryLog is one transcript turn. Turns of the same session share SessionId;
// the append is at-least-once, ordering is by Timestamp.
type QueryLog struct {
	Id               uint      `gorm:"column:id;primaryKey;autoIncrement"`
	ChatId           string    `gorm:"column:chat_id;index;not null"`
	Query            string    `gorm:"column:query;not null"`
	Response         string    `gorm:"column:response;not null"`
	ResolutionStatus string    `gorm:"column:resolution_status;not null"`
	SessionId        uuid.UUID `gorm:"column:session_id;type:uuid;index;not null"`
	Timestamp        time.Time `gorm:"column:timestamp;not null"`
	Summary          *string   `gorm:"column:summary"`
}

func (QueryLog) TableName() string { return "query_logs" }
