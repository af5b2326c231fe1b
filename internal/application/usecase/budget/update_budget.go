package budget

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/moneybook/backend/internal/application/adapter"
	"github.com/moneybook/backend/internal/domain/entity"
	domainerror "github.com/moneybook/backend/internal/domain/error"
)

// UpdateBudgetInput represents the input for budget updates.
type UpdateBudgetInput struct {
	UserID         uuid.UUID
	BudgetID       uuid.UUID
	Name           string
	Period         entity.BudgetPeriod
	StartDate      time.Time
	EndDate        time.Time
	Amount         decimal.Decimal
	Category       *entity.Category
	AlertThreshold decimal.Decimal
	IsActive       bool
}

// UpdateBudgetOutput represents the output of a budget update.
type UpdateBudgetOutput struct {
	Budget *entity.Budget
}

// UpdateBudgetUseCase handles budget update logic.
type UpdateBudgetUseCase struct {
	budgetRepo adapter.BudgetRepository
}

// NewUpdateBudgetUseCase creates a new UpdateBudgetUseCase instance.
func NewUpdateBudgetUseCase(budgetRepo adapter.BudgetRepository) *UpdateBudgetUseCase {
	return &UpdateBudgetUseCase{
		budgetRepo: budgetRepo,
	}
}

// Execute performs the budget update.
func (uc *UpdateBudgetUseCase) Execute(ctx context.Context, input UpdateBudgetInput) (*UpdateBudgetOutput, error) {
	if !input.Amount.IsPositive() {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeInvalidBudgetAmount,
			"budget amount must be greater than zero",
			domainerror.ErrInvalidBudgetAmount,
		)
	}

	if input.StartDate.After(input.EndDate) {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeInvalidBudgetDateRange,
			"start date must not be after end date",
			domainerror.ErrInvalidBudgetDateRange,
		)
	}

	if !input.Period.IsValid() {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeInvalidBudgetPeriod,
			"period must be 'WEEKLY', 'MONTHLY', or 'YEARLY'",
			domainerror.ErrInvalidBudgetPeriod,
		)
	}

	budget, err := findOwnedBudget(ctx, uc.budgetRepo, input.BudgetID, input.UserID)
	if err != nil {
		return nil, err
	}

	// Changing the period or category must not collide with another
	// active budget in the target bucket.
	existing, err := uc.budgetRepo.FindOverlapping(ctx, input.UserID, input.Category, input.StartDate, input.EndDate)
	if err != nil {
		return nil, fmt.Errorf("failed to check budget overlap: %w", err)
	}
	if existing != nil && existing.ID != budget.ID {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeDuplicateBudgetPeriod,
			"an active budget for this category already overlaps the period",
			domainerror.ErrDuplicateBudgetPeriod,
		)
	}

	alertThreshold := input.AlertThreshold
	if alertThreshold.IsZero() {
		alertThreshold = entity.DefaultAlertThreshold
	}

	budget.Update(
		input.Name,
		input.Period,
		input.StartDate,
		input.EndDate,
		input.Amount,
		input.Category,
		alertThreshold,
		input.IsActive,
	)

	if err := uc.budgetRepo.Update(ctx, budget); err != nil {
		return nil, fmt.Errorf("failed to update budget: %w", err)
	}

	return &UpdateBudgetOutput{
		Budget: budget,
	}, nil
}
