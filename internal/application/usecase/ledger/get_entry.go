package ledger

import (
	"context"

	"github.com/google/uuid"

	"github.com/moneybook/backend/internal/application/adapter"
	"github.com/moneybook/backend/internal/domain/entity"
)

// GetEntryInput represents the input for ledger entry retrieval.
type GetEntryInput struct {
	UserID  uuid.UUID
	EntryID uuid.UUID
}

// GetEntryOutput represents the output of ledger entry retrieval.
type GetEntryOutput struct {
	Entry *entity.LedgerEntry
}

// GetEntryUseCase handles ledger entry retrieval logic.
type GetEntryUseCase struct {
	ledgerRepo adapter.LedgerRepository
}

// NewGetEntryUseCase creates a new GetEntryUseCase instance.
func NewGetEntryUseCase(ledgerRepo adapter.LedgerRepository) *GetEntryUseCase {
	return &GetEntryUseCase{
		ledgerRepo: ledgerRepo,
	}
}

// Execute performs the ledger entry retrieval.
func (uc *GetEntryUseCase) Execute(ctx context.Context, input GetEntryInput) (*GetEntryOutput, error) {
	entry, err := findOwnedEntry(ctx, uc.ledgerRepo, input.EntryID, input.UserID)
	if err != nil {
		return nil, err
	}

	return &GetEntryOutput{
		Entry: entry,
	}, nil
}
