package recurring

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/moneybook/backend/internal/application/adapter"
	"github.com/moneybook/backend/internal/domain/entity"
	domainerror "github.com/moneybook/backend/internal/domain/error"
)

// ExecuteDueRecurringInput represents the input for a scheduler run.
type ExecuteDueRecurringInput struct {
	Date time.Time
}

// ExecuteDueRecurringOutput summarizes one scheduler run.
type ExecuteDueRecurringOutput struct {
	Executed int
	Skipped  int
	Failed   int
}

// ExecuteDueRecurringUseCase materializes ledger entries for every rule
// due on or before the given date. It catches up missed executions one
// period at a time after scheduler downtime.
type ExecuteDueRecurringUseCase struct {
	recurringRepo adapter.RecurringRepository
	ledgerRepo    adapter.LedgerRepository
	statsCache    adapter.StatsCache
	logger        *slog.Logger
}

// NewExecuteDueRecurringUseCase creates a new ExecuteDueRecurringUseCase instance.
func NewExecuteDueRecurringUseCase(
	recurringRepo adapter.RecurringRepository,
	ledgerRepo adapter.LedgerRepository,
	statsCache adapter.StatsCache,
	logger *slog.Logger,
) *ExecuteDueRecurringUseCase {
	return &ExecuteDueRecurringUseCase{
		recurringRepo: recurringRepo,
		ledgerRepo:    ledgerRepo,
		statsCache:    statsCache,
		logger:        logger,
	}
}

// Execute runs one scheduling pass. Per-rule failures are logged and
// counted, never fatal to the pass.
func (uc *ExecuteDueRecurringUseCase) Execute(ctx context.Context, input ExecuteDueRecurringInput) (*ExecuteDueRecurringOutput, error) {
	due, err := uc.recurringRepo.FindActiveDue(ctx, input.Date)
	if err != nil {
		return nil, fmt.Errorf("failed to load due recurring transactions: %w", err)
	}

	out := &ExecuteDueRecurringOutput{}
	for _, rule := range due {
		uc.executeRule(ctx, rule, input.Date, out)
	}

	if out.Executed > 0 {
		uc.logger.Info("recurring execution pass complete",
			"date", input.Date.Format("2006-01-02"),
			"executed", out.Executed,
			"skipped", out.Skipped,
			"failed", out.Failed,
		)
	}

	return out, nil
}

// executeRule advances one rule through every execution date that is
// due, persisting an auto-generated entry for each.
func (uc *ExecuteDueRecurringUseCase) executeRule(ctx context.Context, rule *entity.RecurringTransaction, date time.Time, out *ExecuteDueRecurringOutput) {
	logger := uc.logger.With("recurring_id", rule.ID, "user_id", rule.UserID)
	touched := false

	for !rule.NextExecutionDate.After(date) {
		execDate := rule.NextExecutionDate
		if rule.IsExpired(execDate) {
			break
		}

		entry := rule.NewEntryFromRecurring(execDate)
		err := uc.ledgerRepo.Create(ctx, entry)
		switch {
		case err == nil:
			out.Executed++
			touched = true
		case isDuplicateExecution(err):
			// A concurrent scheduler already generated this date.
			// Still advance past it.
			logger.Warn("duplicate execution skipped", "execution_date", execDate.Format("2006-01-02"))
			out.Skipped++
			touched = true
		default:
			logger.Error("failed to generate recurring entry",
				"execution_date", execDate.Format("2006-01-02"),
				"error", err,
			)
			out.Failed++
			return
		}

		rule.MarkExecuted(execDate)
	}

	if !touched {
		return
	}

	if err := uc.recurringRepo.Update(ctx, rule); err != nil {
		logger.Error("failed to persist recurring schedule", "error", err)
		out.Failed++
		return
	}

	_ = uc.statsCache.InvalidateUser(ctx, rule.UserID.String())
}

// isDuplicateExecution reports whether the error is the idempotency
// collision on (source_recurring_id, recorded_date).
func isDuplicateExecution(err error) bool {
	if errors.Is(err, domainerror.ErrDuplicateExecution) {
		return true
	}
	var ledgerErr *domainerror.LedgerError
	return errors.As(err, &ledgerErr) && ledgerErr.Code == domainerror.ErrCodeDuplicateExecution
}
