// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/moneybook/backend/internal/domain/entity"
)

// RecurringRepository defines the interface for recurring transaction
// persistence operations.
type RecurringRepository interface {
	// Create persists a new recurring transaction.
	Create(ctx context.Context, recurring *entity.RecurringTransaction) error

	// FindByID retrieves a non-deleted recurring transaction by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.RecurringTransaction, error)

	// FindByUserID retrieves all non-deleted recurring transactions for a user.
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.RecurringTransaction, error)

	// FindActiveDue retrieves every active, non-deleted rule whose
	// next execution date is on or before the given date.
	FindActiveDue(ctx context.Context, date time.Time) ([]*entity.RecurringTransaction, error)

	// Update persists changes to an existing recurring transaction.
	Update(ctx context.Context, recurring *entity.RecurringTransaction) error
}
