// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/moneybook/backend/internal/application/adapter"
	"github.com/moneybook/backend/internal/domain/entity"
	domainerror "github.com/moneybook/backend/internal/domain/error"
	"github.com/moneybook/backend/internal/integration/persistence/model"
)

// recurringRepository implements the adapter.RecurringRepository interface.
type recurringRepository struct {
	db *gorm.DB
}

// NewRecurringRepository creates a new recurring transaction repository instance.
func NewRecurringRepository(db *gorm.DB) adapter.RecurringRepository {
	return &recurringRepository{
		db: db,
	}
}

// Create creates a new recurring transaction in the database.
func (r *recurringRepository) Create(ctx context.Context, recurring *entity.RecurringTransaction) error {
	recurringModel := model.RecurringFromEntity(recurring)
	result := r.db.WithContext(ctx).Create(recurringModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByID retrieves a non-deleted recurring transaction by its ID.
func (r *recurringRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.RecurringTransaction, error) {
	var recurringModel model.RecurringModel
	result := r.db.WithContext(ctx).
		Where("id = ?", id).
		Where("deleted_at IS NULL").
		First(&recurringModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrRecurringNotFound
		}
		return nil, result.Error
	}
	return recurringModel.ToEntity(), nil
}

// FindByUserID retrieves the user's non-deleted recurring transactions,
// soonest execution first.
func (r *recurringRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.RecurringTransaction, error) {
	var recurringModels []model.RecurringModel
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("deleted_at IS NULL").
		Order("next_execution_date ASC").
		Find(&recurringModels)
	if result.Error != nil {
		return nil, result.Error
	}

	recurring := make([]*entity.RecurringTransaction, len(recurringModels))
	for i, rm := range recurringModels {
		recurring[i] = rm.ToEntity()
	}
	return recurring, nil
}

// FindActiveDue retrieves every active rule whose next execution date is
// on or before the given date, across all users.
func (r *recurringRepository) FindActiveDue(ctx context.Context, date time.Time) ([]*entity.RecurringTransaction, error) {
	var recurringModels []model.RecurringModel
	result := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Where("next_execution_date <= ?", date).
		Where("deleted_at IS NULL").
		Order("next_execution_date ASC").
		Find(&recurringModels)
	if result.Error != nil {
		return nil, result.Error
	}

	recurring := make([]*entity.RecurringTransaction, len(recurringModels))
	for i, rm := range recurringModels {
		recurring[i] = rm.ToEntity()
	}
	return recurring, nil
}

// Update updates an existing recurring transaction in the database.
func (r *recurringRepository) Update(ctx context.Context, recurring *entity.RecurringTransaction) error {
	recurringModel := model.RecurringFromEntity(recurring)
	result := r.db.WithContext(ctx).Save(recurringModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}
