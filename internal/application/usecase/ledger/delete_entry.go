package ledger

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/moneybook/backend/internal/application/adapter"
)

// DeleteEntryInput represents the input for ledger entry deletion.
type DeleteEntryInput struct {
	UserID  uuid.UUID
	EntryID uuid.UUID
}

// DeleteEntryUseCase handles ledger entry soft deletion.
type DeleteEntryUseCase struct {
	ledgerRepo adapter.LedgerRepository
	statsCache adapter.StatsCache
}

// NewDeleteEntryUseCase creates a new DeleteEntryUseCase instance.
func NewDeleteEntryUseCase(ledgerRepo adapter.LedgerRepository, statsCache adapter.StatsCache) *DeleteEntryUseCase {
	return &DeleteEntryUseCase{
		ledgerRepo: ledgerRepo,
		statsCache: statsCache,
	}
}

// Execute soft-deletes the entry. Deleted entries drop out of every
// listing and aggregate immediately.
func (uc *DeleteEntryUseCase) Execute(ctx context.Context, input DeleteEntryInput) error {
	entry, err := findOwnedEntry(ctx, uc.ledgerRepo, input.EntryID, input.UserID)
	if err != nil {
		return err
	}

	if err := uc.ledgerRepo.SoftDelete(ctx, entry.ID); err != nil {
		return fmt.Errorf("failed to delete ledger entry: %w", err)
	}

	_ = uc.statsCache.InvalidateUser(ctx, input.UserID.String())

	return nil
}
