package budget

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/moneybook/backend/internal/application/adapter"
	"github.com/moneybook/backend/internal/domain/entity"
)

// DeactivateBudgetInput represents the input for budget deactivation.
type DeactivateBudgetInput struct {
	UserID   uuid.UUID
	BudgetID uuid.UUID
}

// DeactivateBudgetOutput represents the output of budget deactivation.
type DeactivateBudgetOutput struct {
	Budget *entity.Budget
}

// DeactivateBudgetUseCase turns a budget off without deleting it.
type DeactivateBudgetUseCase struct {
	budgetRepo adapter.BudgetRepository
}

// NewDeactivateBudgetUseCase creates a new DeactivateBudgetUseCase instance.
func NewDeactivateBudgetUseCase(budgetRepo adapter.BudgetRepository) *DeactivateBudgetUseCase {
	return &DeactivateBudgetUseCase{
		budgetRepo: budgetRepo,
	}
}

// Execute performs the deactivation. Idempotent.
func (uc *DeactivateBudgetUseCase) Execute(ctx context.Context, input DeactivateBudgetInput) (*DeactivateBudgetOutput, error) {
	budget, err := findOwnedBudget(ctx, uc.budgetRepo, input.BudgetID, input.UserID)
	if err != nil {
		return nil, err
	}

	budget.Deactivate()

	if err := uc.budgetRepo.Update(ctx, budget); err != nil {
		return nil, fmt.Errorf("failed to deactivate budget: %w", err)
	}

	return &DeactivateBudgetOutput{
		Budget: budget,
	}, nil
}
