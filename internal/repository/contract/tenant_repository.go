package contract

import (
	"context"
	"time"

	"ai-helpdesk-be/internal/entity"
)

// TenantRepository reads the registration/subscription/grant tables the
// access gate and project directory consult. The tables themselves are owned
// by the registration flow, not by this service.
type TenantRepository interface {
	FindEmployeeByChatId(ctx context.Context, chatId string) (*entity.Employee, error)
	// ClearChatBinding removes the chat_id from an employee row so a lapsed
	// subscriber has to re-register.
	ClearChatBinding(ctx context.Context, employeeId uint) error
	HasActiveSubscription(ctx context.Context, businessId uint, at time.Time) (bool, error)
	HasProjectAccess(ctx context.Context, businessId uint, docId string) (bool, error)
	ListProjects(ctx context.Context, businessId uint) ([]*entity.ProjectAccess, error)
}
