package recurring

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

// UpdateRecurringInput represents the input for recurring rule updates.
type UpdateRecurringInput struct {
	UserID        uuid.UUID
	RecurringID   uuid.UUID
	Name          string
	Type          entity.LedgerType
	Amount        decimal.Decimal
	Description   string
	Place         string
	Category      entity.Category
	PaymentMethod entity.PaymentMethod
	Pattern       entity.RecurrencePattern
	Interval      int
	ExecutionDay  *int
	StartDate     time.Time
	EndDate       *time.Time
}

// UpdateRecurringOutput represents the output of a recurring rule update.
type UpdateRecurringOutput struct {
	Recurring *entity.RecurringTransaction
}

// UpdateRecurringUseCase handles recurring rule update logic.
type UpdateRecurringUseCase struct {
	recurringRepo adapter.RecurringRepository
}

// NewUpdateRecurringUseCase creates a new UpdateRecurringUseCase instance.
func NewUpdateRecurringUseCase(recurringRepo adapter.RecurringRepository) *UpdateRecurringUseCase {
	return &UpdateRecurringUseCase{
		recurringRepo: recurringRepo,
	}
}

// Execute performs the recurring rule update. Changing the schedule
// recomputes the next execution date from the last execution.
func (uc *UpdateRecurringUseCase) Execute(ctx context.Context, input UpdateRecurringInput) (*UpdateRecurringOutput, error) {
	if !input.Amount.IsPositive() {
		return nil, domainerror.NewRecurringError(
			domainerror.ErrCodeInvalidRecurringAmount,
			"amount must be greater than zero",
			domainerror.ErrInvalidRecurringAmount,
		)
	}

	if input.EndDate != nil && input.StartDate.After(*input.EndDate) {
		return nil, domainerror.NewRecurringError(
			domainerror.ErrCodeInvalidRecurringDateRange,
			"start date must not be after end date",
			domainerror.ErrInvalidRecurringDateRange,
		)
	}

	recurrence, err := buildRecurrence(input.Pattern, input.Interval, input.ExecutionDay)
	if err != nil {
		return nil, err
	}

	recurring, err := findOwnedRecurring(ctx, uc.recurringRepo, input.RecurringID, input.UserID)
	if err != nil {
		return nil, err
	}

	recurring.Name = input.Name
	recurring.Type = input.Type
	recurring.Amount = input.Amount
	recurring.Description = input.Description
	recurring.Place = input.Place
	recurring.Category = input.Category
	recurring.PaymentMethod = input.PaymentMethod
	recurring.Recurrence = recurrence
	recurring.StartDate = input.StartDate
	recurring.EndDate = input.EndDate
	if recurring.LastExecutionDate == nil {
		// Not yet executed: the first run moves with the start date.
		recurring.NextExecutionDate = input.StartDate
	} else {
		recurring.CalculateNextExecutionDate()
	}
	recurring.Touch()

	if err := uc.recurringRepo.Update(ctx, recurring); err != nil {
		return nil, fmt.Errorf("failed to update recurring transaction: %w", err)
	}

	return &UpdateRecurringOutput{
		Recurring: recurring,
	}, nil
}
