package recurring

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/moneybook/backend/internal/application/adapter"
)

// DeleteRecurringInput represents the input for recurring rule deletion.
type DeleteRecurringInput struct {
	UserID      uuid.UUID
	RecurringID uuid.UUID
}

// DeleteRecurringUseCase handles recurring rule soft deletion.
type DeleteRecurringUseCase struct {
	recurringRepo adapter.RecurringRepository
}

// NewDeleteRecurringUseCase creates a new DeleteRecurringUseCase instance.
func NewDeleteRecurringUseCase(recurringRepo adapter.RecurringRepository) *DeleteRecurringUseCase {
	return &DeleteRecurringUseCase{
		recurringRepo: recurringRepo,
	}
}

// Execute soft-deletes the rule. Entries it already generated keep
// their source reference and survive.
func (uc *DeleteRecurringUseCase) Execute(ctx context.Context, input DeleteRecurringInput) error {
	recurring, err := findOwnedRecurring(ctx, uc.recurringRepo, input.RecurringID, input.UserID)
	if err != nil {
		return err
	}

	recurring.SoftDelete()

	if err := uc.recurringRepo.Update(ctx, recurring); err != nil {
		return fmt.Errorf("failed to delete recurring transaction: %w", err)
	}

	return nil
}
