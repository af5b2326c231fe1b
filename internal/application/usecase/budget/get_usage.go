package budget

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/moneybook/backend/internal/application/adapter"
	"github.com/moneybook/backend/internal/domain/entity"
)

// GetBudgetUsageInput represents the input for usage computation.
type GetBudgetUsageInput struct {
	UserID   uuid.UUID
	BudgetID uuid.UUID
}

// GetBudgetUsageOutput represents the output of usage computation.
type GetBudgetUsageOutput struct {
	Usage *entity.BudgetUsage
}

// GetBudgetUsageUseCase computes spend against a budget and dispatches
// the one-shot threshold alert.
type GetBudgetUsageUseCase struct {
	budgetRepo  adapter.BudgetRepository
	ledgerRepo  adapter.LedgerRepository
	userRepo    adapter.UserRepository
	alertSender adapter.AlertSender
	logger      *slog.Logger
}

// NewGetBudgetUsageUseCase creates a new GetBudgetUsageUseCase instance.
func NewGetBudgetUsageUseCase(
	budgetRepo adapter.BudgetRepository,
	ledgerRepo adapter.LedgerRepository,
	userRepo adapter.UserRepository,
	alertSender adapter.AlertSender,
	logger *slog.Logger,
) *GetBudgetUsageUseCase {
	return &GetBudgetUsageUseCase{
		budgetRepo:  budgetRepo,
		ledgerRepo:  ledgerRepo,
		userRepo:    userRepo,
		alertSender: alertSender,
		logger:      logger,
	}
}

// Execute computes the budget's usage from actual ledger spend. When the
// usage crosses the alert threshold for the first time, an alert email is
// sent and the latch persisted; delivery failure leaves the latch clear so
// the next read retries.
func (uc *GetBudgetUsageUseCase) Execute(ctx context.Context, input GetBudgetUsageInput) (*GetBudgetUsageOutput, error) {
	budget, err := findOwnedBudget(ctx, uc.budgetRepo, input.BudgetID, input.UserID)
	if err != nil {
		return nil, err
	}

	// Spend counts every expense in the period regardless of the
	// budget's category; the category only scopes overlap detection.
	totalSpent, err := uc.ledgerRepo.SumByTypeAndRange(
		ctx,
		budget.UserID,
		entity.LedgerTypeExpense,
		nil,
		budget.StartDate,
		budget.EndDate,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to sum budget spend: %w", err)
	}

	usage := budget.ComputeUsage(totalSpent)

	if usage.ShouldAlert {
		uc.dispatchAlert(ctx, budget, usage)
	}

	return &GetBudgetUsageOutput{
		Usage: usage,
	}, nil
}

// dispatchAlert delivers the threshold notification and latches the
// alert flag. Alerting is best-effort: failures are logged, never
// surfaced to the caller.
func (uc *GetBudgetUsageUseCase) dispatchAlert(ctx context.Context, budget *entity.Budget, usage *entity.BudgetUsage) {
	user, err := uc.userRepo.FindByID(ctx, budget.UserID)
	if err != nil {
		uc.logger.Warn("budget alert skipped: user lookup failed",
			"budget_id", budget.ID,
			"error", err,
		)
		return
	}

	if !user.BudgetAlerts {
		return
	}

	alert := adapter.BudgetAlert{
		RecipientEmail: user.Email,
		RecipientName:  user.Name,
		Budget:         budget,
		Usage:          usage,
	}

	if err := uc.alertSender.SendBudgetAlert(ctx, alert); err != nil {
		uc.logger.Warn("budget alert delivery failed",
			"budget_id", budget.ID,
			"usage_pct", usage.UsagePercentage.String(),
			"error", err,
		)
		return
	}

	budget.MarkAlertSent()
	if err := uc.budgetRepo.Update(ctx, budget); err != nil {
		uc.logger.Error("failed to persist budget alert latch",
			"budget_id", budget.ID,
			"error", err,
		)
		return
	}

	uc.logger.Info("budget alert sent",
		"budget_id", budget.ID,
		"usage_pct", usage.UsagePercentage.String(),
	)
}
