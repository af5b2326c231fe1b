package statistics

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/moneybook/backend/internal/application/adapter"
	"github.com/moneybook/backend/internal/domain/entity"
)

// MonthlyStatisticsInput represents the input for per-month aggregation.
type MonthlyStatisticsInput struct {
	UserID    uuid.UUID
	StartDate time.Time
	EndDate   time.Time
}

// MonthlyStatisticsOutput represents the output of per-month aggregation.
type MonthlyStatisticsOutput struct {
	Summaries []*entity.MonthlySummary
}

// MonthlyStatisticsUseCase aggregates income and expense per calendar
// month. Months without activity are absent from the result.
type MonthlyStatisticsUseCase struct {
	ledgerRepo adapter.LedgerRepository
	statsCache adapter.StatsCache
	logger     *slog.Logger
}

// NewMonthlyStatisticsUseCase creates a new MonthlyStatisticsUseCase instance.
func NewMonthlyStatisticsUseCase(
	ledgerRepo adapter.LedgerRepository,
	statsCache adapter.StatsCache,
	logger *slog.Logger,
) *MonthlyStatisticsUseCase {
	return &MonthlyStatisticsUseCase{
		ledgerRepo: ledgerRepo,
		statsCache: statsCache,
		logger:     logger,
	}
}

// Execute performs the per-month aggregation, read-through cached.
func (uc *MonthlyStatisticsUseCase) Execute(ctx context.Context, input MonthlyStatisticsInput) (*MonthlyStatisticsOutput, error) {
	if err := validateRange(input.StartDate, input.EndDate); err != nil {
		return nil, err
	}

	key := cacheKey(input.UserID, "monthly", input.StartDate, input.EndDate)
	var cached []*entity.MonthlySummary
	if hit, err := uc.statsCache.Get(ctx, key, &cached); err != nil {
		uc.logger.Warn("stats cache read failed", "key", key, "error", err)
	} else if hit {
		return &MonthlyStatisticsOutput{Summaries: cached}, nil
	}

	rows, err := uc.ledgerRepo.MonthlyGroupedSums(ctx, input.UserID, input.StartDate, input.EndDate)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate monthly sums: %w", err)
	}

	summaries := make([]*entity.MonthlySummary, 0, len(rows))
	for _, row := range rows {
		summaries = append(summaries, &entity.MonthlySummary{
			Year:         row.Year,
			Month:        row.Month,
			TotalIncome:  row.IncomeSum,
			TotalExpense: row.ExpenseSum,
			NetAmount:    row.IncomeSum.Sub(row.ExpenseSum),
		})
	}

	if err := uc.statsCache.Set(ctx, key, summaries, statsCacheTTL); err != nil {
		uc.logger.Warn("stats cache write failed", "key", key, "error", err)
	}

	return &MonthlyStatisticsOutput{Summaries: summaries}, nil
}
