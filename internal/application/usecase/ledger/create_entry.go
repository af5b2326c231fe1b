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

// CreateEntryInput represents the input for ledger entry creation.
type CreateEntryInput struct {
	UserID        uuid.UUID
	Type          entity.LedgerType
	Amount        decimal.Decimal
	Description   string
	Place         string
	Category      entity.Category
	PaymentMethod entity.PaymentMethod
	RecordedDate  time.Time
}

// CreateEntryOutput represents the output of ledger entry creation.
type CreateEntryOutput struct {
	Entry *entity.LedgerEntry
}

// CreateEntryUseCase handles ledger entry creation logic.
type CreateEntryUseCase struct {
	ledgerRepo adapter.LedgerRepository
	statsCache adapter.StatsCache
}

// NewCreateEntryUseCase creates a new CreateEntryUseCase instance.
func NewCreateEntryUseCase(ledgerRepo adapter.LedgerRepository, statsCache adapter.StatsCache) *CreateEntryUseCase {
	return &CreateEntryUseCase{
		ledgerRepo: ledgerRepo,
		statsCache: statsCache,
	}
}

// Execute performs the ledger entry creation.
func (uc *CreateEntryUseCase) Execute(ctx context.Context, input CreateEntryInput) (*CreateEntryOutput, error) {
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

	entry := entity.NewLedgerEntry(
		input.UserID,
		input.Type,
		input.Amount,
		input.Description,
		input.Place,
		input.Category,
		input.PaymentMethod,
		input.RecordedDate,
	)

	if err := uc.ledgerRepo.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to create ledger entry: %w", err)
	}

	// Cached statistics are now stale. Invalidation is best-effort.
	_ = uc.statsCache.InvalidateUser(ctx, input.UserID.String())

	return &CreateEntryOutput{
		Entry: entry,
	}, nil
}
