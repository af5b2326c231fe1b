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

// CreateRecurringInput represents the input for recurring rule creation.
type CreateRecurringInput struct {
	UserID        uuid.UUID
	Name          string
	Type          entity.LedgerType
	Amount        decimal.Decimal
	Description   string
	Place         string
	Category      entity.Category
	PaymentMethod entity.PaymentMethod
	Pattern       entity.RecurrencePattern
	Interval      int
	ExecutionDay  *int // Only meaningful for MONTHLY
	StartDate     time.Time
	EndDate       *time.Time // Optional, nil means unbounded
}

// CreateRecurringOutput represents the output of recurring rule creation.
type CreateRecurringOutput struct {
	Recurring *entity.RecurringTransaction
}

// CreateRecurringUseCase handles recurring rule creation logic.
type CreateRecurringUseCase struct {
	recurringRepo adapter.RecurringRepository
}

// NewCreateRecurringUseCase creates a new CreateRecurringUseCase instance.
func NewCreateRecurringUseCase(recurringRepo adapter.RecurringRepository) *CreateRecurringUseCase {
	return &CreateRecurringUseCase{
		recurringRepo: recurringRepo,
	}
}

// Execute performs the recurring rule creation.
func (uc *CreateRecurringUseCase) Execute(ctx context.Context, input CreateRecurringInput) (*CreateRecurringOutput, error) {
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

	if !input.Type.IsValid() || !input.Category.IsValid() || !input.PaymentMethod.IsValid() {
		return nil, domainerror.NewRecurringError(
			domainerror.ErrCodeMissingRecurringFields,
			"type, category, and payment method are required",
			nil,
		)
	}

	recurrence, err := buildRecurrence(input.Pattern, input.Interval, input.ExecutionDay)
	if err != nil {
		return nil, err
	}

	recurring := entity.NewRecurringTransaction(
		input.UserID,
		input.Name,
		input.Type,
		input.Amount,
		input.Description,
		input.Place,
		input.Category,
		input.PaymentMethod,
		recurrence,
		input.StartDate,
		input.EndDate,
	)

	if err := uc.recurringRepo.Create(ctx, recurring); err != nil {
		return nil, fmt.Errorf("failed to create recurring transaction: %w", err)
	}

	return &CreateRecurringOutput{
		Recurring: recurring,
	}, nil
}
