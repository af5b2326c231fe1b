// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/moneybook/backend/internal/domain/entity"
)

// BudgetRepository defines the interface for budget persistence operations.
type BudgetRepository interface {
	// Create persists a new budget.
	Create(ctx context.Context, budget *entity.Budget) error

	// FindByID retrieves a non-deleted budget by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Budget, error)

	// FindActiveByUserID retrieves all active, non-deleted budgets for a user.
	FindActiveByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Budget, error)

	// FindOverlapping retrieves an active, non-deleted budget for the same
	// user and category bucket whose inclusive date range intersects
	// [start, end]. A nil category matches only all-category budgets.
	// Returns nil when no such budget exists.
	FindOverlapping(ctx context.Context, userID uuid.UUID, category *entity.Category, start, end time.Time) (*entity.Budget, error)

	// Update persists changes to an existing budget.
	Update(ctx context.Context, budget *entity.Budget) error
}
