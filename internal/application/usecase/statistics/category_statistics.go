package statistics

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/moneybook/backend/internal/application/adapter"
	"github.com/moneybook/backend/internal/domain/entity"
)

// CategoryStatisticsInput represents the input for category aggregation.
type CategoryStatisticsInput struct {
	UserID    uuid.UUID
	StartDate time.Time
	EndDate   time.Time
}

// CategoryStatisticsOutput represents the output of category aggregation.
type CategoryStatisticsOutput struct {
	Summaries []entity.CategorySummary
}

// CategoryStatisticsUseCase aggregates expense totals per category,
// largest first, with each category's share of total expense.
type CategoryStatisticsUseCase struct {
	ledgerRepo adapter.LedgerRepository
	statsCache adapter.StatsCache
	logger     *slog.Logger
}

// NewCategoryStatisticsUseCase creates a new CategoryStatisticsUseCase instance.
func NewCategoryStatisticsUseCase(
	ledgerRepo adapter.LedgerRepository,
	statsCache adapter.StatsCache,
	logger *slog.Logger,
) *CategoryStatisticsUseCase {
	return &CategoryStatisticsUseCase{
		ledgerRepo: ledgerRepo,
		statsCache: statsCache,
		logger:     logger,
	}
}

// Execute performs the category aggregation, read-through cached.
func (uc *CategoryStatisticsUseCase) Execute(ctx context.Context, input CategoryStatisticsInput) (*CategoryStatisticsOutput, error) {
	if err := validateRange(input.StartDate, input.EndDate); err != nil {
		return nil, err
	}

	key := cacheKey(input.UserID, "category", input.StartDate, input.EndDate)
	var cached []entity.CategorySummary
	if hit, err := uc.statsCache.Get(ctx, key, &cached); err != nil {
		uc.logger.Warn("stats cache read failed", "key", key, "error", err)
	} else if hit {
		return &CategoryStatisticsOutput{Summaries: cached}, nil
	}

	rows, err := uc.ledgerRepo.CategoryGroupedSums(ctx, input.UserID, input.StartDate, input.EndDate, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate category sums: %w", err)
	}

	summaries := buildCategorySummaries(rows)

	if err := uc.statsCache.Set(ctx, key, summaries, statsCacheTTL); err != nil {
		uc.logger.Warn("stats cache write failed", "key", key, "error", err)
	}

	return &CategoryStatisticsOutput{Summaries: summaries}, nil
}

// buildCategorySummaries converts grouped rows into summaries with each
// row's percentage of the combined total.
func buildCategorySummaries(rows []adapter.CategoryGroupedSum) []entity.CategorySummary {
	total := decimal.Zero
	for _, row := range rows {
		total = total.Add(row.Sum)
	}

	summaries := make([]entity.CategorySummary, 0, len(rows))
	for _, row := range rows {
		summaries = append(summaries, entity.CategorySummary{
			Category:         row.Category,
			TotalAmount:      row.Sum,
			TransactionCount: row.Count,
			Percentage:       percentOf(row.Sum, total),
		})
	}
	return summaries
}
