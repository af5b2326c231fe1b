// Package budget contains budget-related use cases.
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

// CreateBudgetInput represents the input for budget creation.
type CreateBudgetInput struct {
	UserID         uuid.UUID
	Name           string
	Period         entity.BudgetPeriod
	StartDate      time.Time
	EndDate        time.Time
	Amount         decimal.Decimal
	Category       *entity.Category // Optional, nil means all categories
	AlertThreshold decimal.Decimal  // Optional, zero falls back to the default
}

// CreateBudgetOutput represents the output of budget creation.
type CreateBudgetOutput struct {
	Budget *entity.Budget
}

// CreateBudgetUseCase handles budget creation logic.
type CreateBudgetUseCase struct {
	budgetRepo adapter.BudgetRepository
}

// NewCreateBudgetUseCase creates a new CreateBudgetUseCase instance.
func NewCreateBudgetUseCase(budgetRepo adapter.BudgetRepository) *CreateBudgetUseCase {
	return &CreateBudgetUseCase{
		budgetRepo: budgetRepo,
	}
}

// Execute performs the budget creation.
func (uc *CreateBudgetUseCase) Execute(ctx context.Context, input CreateBudgetInput) (*CreateBudgetOutput, error) {
	// Validate amount
	if !input.Amount.IsPositive() {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeInvalidBudgetAmount,
			"budget amount must be greater than zero",
			domainerror.ErrInvalidBudgetAmount,
		)
	}

	// Validate date range
	if input.StartDate.After(input.EndDate) {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeInvalidBudgetDateRange,
			"start date must not be after end date",
			domainerror.ErrInvalidBudgetDateRange,
		)
	}

	// Validate period
	if !input.Period.IsValid() {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeInvalidBudgetPeriod,
			"period must be 'WEEKLY', 'MONTHLY', or 'YEARLY'",
			domainerror.ErrInvalidBudgetPeriod,
		)
	}

	// Validate category when scoped
	if input.Category != nil && !input.Category.IsValid() {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeMissingBudgetFields,
			"unknown category",
			nil,
		)
	}

	// Reject an overlapping active budget in the same category bucket
	existing, err := uc.budgetRepo.FindOverlapping(ctx, input.UserID, input.Category, input.StartDate, input.EndDate)
	if err != nil {
		return nil, fmt.Errorf("failed to check budget overlap: %w", err)
	}
	if existing != nil {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeDuplicateBudgetPeriod,
			"an active budget for this category already overlaps the period",
			domainerror.ErrDuplicateBudgetPeriod,
		)
	}

	budget := entity.NewBudget(
		input.UserID,
		input.Name,
		input.Period,
		input.StartDate,
		input.EndDate,
		input.Amount,
		input.Category,
		input.AlertThreshold,
	)

	if err := uc.budgetRepo.Create(ctx, budget); err != nil {
		return nil, fmt.Errorf("failed to create budget: %w", err)
	}

	return &CreateBudgetOutput{
		Budget: budget,
	}, nil
}
