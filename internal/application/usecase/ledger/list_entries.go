package ledger

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/moneybook/backend/internal/application/adapter"
	"github.com/moneybook/backend/internal/domain/entity"
	domainerror "github.com/moneybook/backend/internal/domain/error"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// ListEntriesInput represents the input for filtered entry listing.
type ListEntriesInput struct {
	UserID    uuid.UUID
	Condition entity.LedgerSearchCondition
	Page      int
	Limit     int
}

// ListEntriesOutput represents one page of a filtered entry listing.
type ListEntriesOutput struct {
	Result *entity.LedgerListResult
}

// ListEntriesUseCase handles filtered, paginated entry listing.
type ListEntriesUseCase struct {
	ledgerRepo adapter.LedgerRepository
}

// NewListEntriesUseCase creates a new ListEntriesUseCase instance.
func NewListEntriesUseCase(ledgerRepo adapter.LedgerRepository) *ListEntriesUseCase {
	return &ListEntriesUseCase{
		ledgerRepo: ledgerRepo,
	}
}

// Execute lists the user's entries matching the condition, newest
// recorded date first.
func (uc *ListEntriesUseCase) Execute(ctx context.Context, input ListEntriesInput) (*ListEntriesOutput, error) {
	cond := input.Condition
	if cond.StartDate != nil && cond.EndDate != nil && cond.StartDate.After(*cond.EndDate) {
		return nil, domainerror.NewLedgerError(
			domainerror.ErrCodeInvalidLedgerDateRange,
			"start date must not be after end date",
			domainerror.ErrInvalidLedgerDateRange,
		)
	}

	page := input.Page
	if page < 1 {
		page = 1
	}
	limit := input.Limit
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	result, err := uc.ledgerRepo.Search(ctx, input.UserID, cond, page, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger entries: %w", err)
	}

	return &ListEntriesOutput{
		Result: result,
	}, nil
}
