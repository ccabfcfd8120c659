package implementation

import (
	"context"
	"errors"
	"time"

	"ai-helpdesk-be/internal/entity"
	"ai-helpdesk-be/internal/repository/contract"

	"gorm.io/gorm"
)

type TenantRepositoryImpl struct {
	db *gorm.DB
}

func NewTenantRepository(db *gorm.DB) contract.TenantRepository {
	return &TenantRepositoryImpl{db: db}
}

func (r *TenantRepositoryImpl) FindEmployeeByChatId(ctx context.Context, chatId string) (*entity.Employee, error) {
	var employee entity.Employee
	err := r.db.WithContext(ctx).Where("chat_id = ?", chatId).First(&employee).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &employee, nil
}

func (r *TenantRepositoryImpl) ClearChatBinding(ctx context.Context, employeeId uint) error {
	return r.db.WithContext(ctx).
		Model(&entity.Employee{}).
		Where("employee_id = ?", employeeId).
		Update("chat_id", nil).Error
}

func (r *TenantRepositoryImpl) HasActiveSubscription(ctx context.Context, businessId uint, at time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Subscription{}).
		Where("business_id = ? AND start_date <= ? AND end_date >= ?", businessId, at, at).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *TenantRepositoryImpl) HasProjectAccess(ctx context.Context, businessId uint, docId string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.ProjectAccess{}).
		Where("business_id = ? AND doc_id = ?", businessId, docId).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *TenantRepositoryImpl) ListProjects(ctx context.Context, businessId uint) ([]*entity.ProjectAccess, error) {
	var projects []*entity.ProjectAccess
	err := r.db.WithContext(ctx).
		Where("business_id = ?", businessId).
		Order("doc_name ASC").
		Find(&projects).Error
	if err != nil {
		return nil, err
	}
	return projects, nil
}
