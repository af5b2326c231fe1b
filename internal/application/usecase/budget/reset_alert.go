package budget

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/moneybook/backend/internal/application/adapter"
	"github.com/moneybook/backend/internal/domain/entity"
)

// ResetBudgetAlertInput represents the input for clearing the alert latch.
type ResetBudgetAlertInput struct {
	UserID   uuid.UUID
	BudgetID uuid.UUID
}

// ResetBudgetAlertOutput represents the output of clearing the alert latch.
type ResetBudgetAlertOutput struct {
	Budget *entity.Budget
}

// ResetBudgetAlertUseCase re-arms a budget's one-shot alert.
type ResetBudgetAlertUseCase struct {
	budgetRepo adapter.BudgetRepository
}

// NewResetBudgetAlertUseCase creates a new ResetBudgetAlertUseCase instance.
func NewResetBudgetAlertUseCase(budgetRepo adapter.BudgetRepository) *ResetBudgetAlertUseCase {
	return &ResetBudgetAlertUseCase{
		budgetRepo: budgetRepo,
	}
}

// Execute clears the alert latch. Idempotent.
func (uc *ResetBudgetAlertUseCase) Execute(ctx context.Context, input ResetBudgetAlertInput) (*ResetBudgetAlertOutput, error) {
	budget, err := findOwnedBudget(ctx, uc.budgetRepo, input.BudgetID, input.UserID)
	if err != nil {
		return nil, err
	}

	budget.ResetAlert()

	if err := uc.budgetRepo.Update(ctx, budget); err != nil {
		return nil, fmt.Errorf("failed to reset budget alert: %w", err)
	}

	return &ResetBudgetAlertOutput{
		Budget: budget,
	}, nil
}
