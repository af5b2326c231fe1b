package statistics

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/moneybook/backend/internal/application/adapter"
	"github.com/moneybook/backend/internal/domain/entity"
	domainerror "github.com/moneybook/backend/internal/domain/error"
)

// TopCategoriesInput represents the input for the top-spending query.
type TopCategoriesInput struct {
	UserID    uuid.UUID
	StartDate time.Time
	EndDate   time.Time
	Limit     int
}

// TopCategoriesOutput represents the output of the top-spending query.
type TopCategoriesOutput struct {
	Summaries []entity.CategorySummary
}

// TopCategoriesUseCase returns the n largest expense categories.
// Percentages are shares of the returned rows, not of all spending, so
// they always total 100 across the result.
type TopCategoriesUseCase struct {
	ledgerRepo adapter.LedgerRepository
}

// NewTopCategoriesUseCase creates a new TopCategoriesUseCase instance.
func NewTopCategoriesUseCase(ledgerRepo adapter.LedgerRepository) *TopCategoriesUseCase {
	return &TopCategoriesUseCase{
		ledgerRepo: ledgerRepo,
	}
}

// Execute performs the top-spending query.
func (uc *TopCategoriesUseCase) Execute(ctx context.Context, input TopCategoriesInput) (*TopCategoriesOutput, error) {
	if err := validateRange(input.StartDate, input.EndDate); err != nil {
		return nil, err
	}

	if input.Limit < 1 {
		return nil, domainerror.NewStatisticsError(
			domainerror.ErrCodeInvalidTopLimit,
			"limit must be at least 1",
			domainerror.ErrInvalidTopLimit,
		)
	}

	rows, err := uc.ledgerRepo.CategoryGroupedSums(ctx, input.UserID, input.StartDate, input.EndDate, input.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate top categories: %w", err)
	}

	return &TopCategoriesOutput{
		Summaries: buildCategorySummaries(rows),
	}, nil
}
