// Package recurring contains recurring transaction use cases.
package recurring

import (
	"context"

	"github.com/google/uuid"

	"github.com/moneybook/backend/internal/application/adapter"
	"github.com/moneybook/backend/internal/domain/entity"
	domainerror "github.com/moneybook/backend/internal/domain/error"
)

// findOwnedRecurring loads a rule and verifies it belongs to the user.
func findOwnedRecurring(ctx context.Context, repo adapter.RecurringRepository, recurringID, userID uuid.UUID) (*entity.RecurringTransaction, error) {
	recurring, err := repo.FindByID(ctx, recurringID)
	if err != nil {
		return nil, domainerror.NewRecurringError(
			domainerror.ErrCodeRecurringNotFound,
			"recurring transaction not found",
			domainerror.ErrRecurringNotFound,
		)
	}
	if recurring.UserID != userID {
		return nil, domainerror.NewRecurringError(
			domainerror.ErrCodeUnauthorizedRecurringAccess,
			"recurring transaction does not belong to user",
			domainerror.ErrUnauthorizedRecurringAccess,
		)
	}
	return recurring, nil
}

// buildRecurrence validates and assembles the recurrence variant from
// its flattened transport form.
func buildRecurrence(pattern entity.RecurrencePattern, interval int, executionDay *int) (entity.Recurrence, error) {
	if interval < 1 {
		return nil, domainerror.NewRecurringError(
			domainerror.ErrCodeInvalidRecurrenceInterval,
			"recurrence interval must be at least 1",
			domainerror.ErrInvalidRecurrenceInterval,
		)
	}
	if executionDay != nil && (*executionDay < 1 || *executionDay > 31) {
		return nil, domainerror.NewRecurringError(
			domainerror.ErrCodeInvalidExecutionDay,
			"execution day of month must be between 1 and 31",
			domainerror.ErrInvalidExecutionDay,
		)
	}
	recurrence, ok := entity.NewRecurrence(pattern, interval, executionDay)
	if !ok {
		return nil, domainerror.NewRecurringError(
			domainerror.ErrCodeInvalidRecurrencePattern,
			"pattern must be 'DAILY', 'WEEKLY', 'MONTHLY', or 'YEARLY'",
			domainerror.ErrInvalidRecurrencePattern,
		)
	}
	return recurrence, nil
}
