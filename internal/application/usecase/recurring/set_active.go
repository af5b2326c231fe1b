package recurring

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/moneybook/backend/internal/application/adapter"
	"github.com/moneybook/backend/internal/domain/entity"
)

// SetRecurringActiveInput represents the input for toggling a rule.
type SetRecurringActiveInput struct {
	UserID      uuid.UUID
	RecurringID uuid.UUID
	Active      bool
}

// SetRecurringActiveOutput represents the output of toggling a rule.
type SetRecurringActiveOutput struct {
	Recurring *entity.RecurringTransaction
}

// SetRecurringActiveUseCase pauses or resumes a recurring rule.
type SetRecurringActiveUseCase struct {
	recurringRepo adapter.RecurringRepository
}

// NewSetRecurringActiveUseCase creates a new SetRecurringActiveUseCase instance.
func NewSetRecurringActiveUseCase(recurringRepo adapter.RecurringRepository) *SetRecurringActiveUseCase {
	return &SetRecurringActiveUseCase{
		recurringRepo: recurringRepo,
	}
}

// Execute toggles the rule. Deactivation leaves already-generated
// entries and the scheduled next execution date untouched.
func (uc *SetRecurringActiveUseCase) Execute(ctx context.Context, input SetRecurringActiveInput) (*SetRecurringActiveOutput, error) {
	recurring, err := findOwnedRecurring(ctx, uc.recurringRepo, input.RecurringID, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.Active {
		recurring.Activate()
	} else {
		recurring.Deactivate()
	}

	if err := uc.recurringRepo.Update(ctx, recurring); err != nil {
		return nil, fmt.Errorf("failed to update recurring transaction: %w", err)
	}

	return &SetRecurringActiveOutput{
		Recurring: recurring,
	}, nil
}
