package access

import (
	"context"
	"time"

	"ai-helpdesk-be/internal/dto"
	"ai-helpdesk-be/internal/pkg/logger"
	"ai-helpdesk-be/internal/repository/contract"
	"ai-helpdesk-be/internal/repository/memory"
)

// Denial reasons shown to the user. Store failures deliberately collapse into
// the generic unavailable text: the gate fails closed, never open.
const (
	ReasonNotRegistered       = "You are not registered. Please complete registration with your company code before using the helpdesk."
	ReasonSubscriptionExpired = "Your company's subscription has expired. Please contact your administrator to renew, then register again."
	ReasonNoProjectAccess     = "Your company does not have access to this project."
	ReasonServiceUnavailable  = "The service is temporarily unavailable. Please try again in a moment."
)

// Grant is the successful outcome of a gate check.
type Grant struct {
	EmployeeId uint
	BusinessId uint
}

// Gate decides whether an identity may query a scope. It runs on every
// query-bearing message, not just at session start, because a subscription
// can lapse mid-session.
type Gate struct {
	tenantRepo contract.TenantRepository
	directory  *memory.DirectoryCache
	logger     logger.ILogger
}

func NewGate(tenantRepo contract.TenantRepository, directory *memory.DirectoryCache, log logger.ILogger) *Gate {
	return &Gate{
		tenantRepo: tenantRepo,
		directory:  directory,
		logger:     log,
	}
}

// Check evaluates, in order: registration, subscription window, project
// grant. scope may be empty when the caller only needs the tenant identity
// (e.g. to build the project directory prompt).
func (g *Gate) Check(ctx context.Context, identity, scope string) (*Grant, error) {
	employee, err := g.tenantRepo.FindEmployeeByChatId(ctx, identity)
	if err != nil {
		g.logger.Error("ACCESS", "Tenant store lookup failed", map[string]interface{}{
			"identity": identity, "error": err.Error(),
		})
		return nil, &dto.AccessDeniedError{Reason: ReasonServiceUnavailable}
	}
	if employee == nil {
		return nil, &dto.AccessDeniedError{Reason: ReasonNotRegistered}
	}

	active, err := g.tenantRepo.HasActiveSubscription(ctx, employee.BusinessId, time.Now())
	if err != nil {
		g.logger.Error("ACCESS", "Subscription lookup failed", map[string]interface{}{
			"identity": identity, "error": err.Error(),
		})
		return nil, &dto.AccessDeniedError{Reason: ReasonServiceUnavailable}
	}
	if !active {
		// Lapsed subscription invalidates the chat binding so the identity
		// has to re-register once the company renews.
		if err := g.tenantRepo.ClearChatBinding(ctx, employee.Id); err != nil {
			g.logger.Warn("ACCESS", "Failed to clear chat binding after lapse", map[string]interface{}{
				"identity": identity, "error": err.Error(),
			})
		}
		g.directory.Invalidate(employee.BusinessId)
		return nil, &dto.AccessDeniedError{Reason: ReasonSubscriptionExpired}
	}

	if scope != "" {
		granted, err := g.tenantRepo.HasProjectAccess(ctx, employee.BusinessId, scope)
		if err != nil {
			g.logger.Error("ACCESS", "Project grant lookup failed", map[string]interface{}{
				"identity": identity, "scope": scope, "error": err.Error(),
			})
			return nil, &dto.AccessDeniedError{Reason: ReasonServiceUnavailable}
		}
		if !granted {
			return nil, &dto.AccessDeniedError{Reason: ReasonNoProjectAccess}
		}
	}

	return &Grant{EmployeeId: employee.Id, BusinessId: employee.BusinessId}, nil
}
