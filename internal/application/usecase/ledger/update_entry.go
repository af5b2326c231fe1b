package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/moneybook/backend/internal/application/adapter"
	"github.com/moneybook/backend/internal/domain/entity"
)

// UpdateEntryInput represents the input for ledger entry updates.
type UpdateEntryInput struct {
	UserID        uuid.UUID
	EntryID       uuid.UUID
	Type          entity.LedgerType
	Amount        decimal.Decimal
	Description   string
	Place         string
	Category      entity.Category
	PaymentMethod entity.PaymentMethod
	RecordedDate  time.Time
}

// UpdateEntryOutput represents the output of a ledger entry update.
type UpdateEntryOutput struct {
	Entry *entity.LedgerEntry
}

// UpdateEntryUseCase handles ledger entry update logic.
type UpdateEntryUseCase struct {
	ledgerRepo adapter.LedgerRepository
	statsCache adapter.StatsCache
}

// NewUpdateEntryUseCase creates a new UpdateEntryUseCase instance.
func NewUpdateEntryUseCase(ledgerRepo adapter.LedgerRepository, statsCache adapter.StatsCache) *UpdateEntryUseCase {
	return &UpdateEntryUseCase{
		ledgerRepo: ledgerRepo,
		statsCache: statsCache,
	}
}

// Execute performs the ledger entry update.
func (uc *UpdateEntryUseCase) Execute(ctx context.Context, input UpdateEntryInput) (*UpdateEntryOutput, error) {
	if err := validateEntryFields(
		input.Type,
		input.Amount,
		input.Category,
		input.PaymentMethod,
		input.RecordedDate,
		time.Now().UTC(),
	); err != nil {
		return nil, err
	}

	entry, err := findOwnedEntry(ctx, uc.ledgerRepo, input.EntryID, input.UserID)
	if err != nil {
		return nil, err
	}

	entry.Update(
		input.Type,
		input.Amount,
		input.Description,
		input.Place,
		input.Category,
		input.PaymentMethod,
		input.RecordedDate,
	)

	if err := uc.ledgerRepo.Update(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to update ledger entry: %w", err)
	}

	_ = uc.statsCache.InvalidateUser(ctx, input.UserID.String())

	return &UpdateEntryOutput{
		Entry: entry,
	}, nil
}
