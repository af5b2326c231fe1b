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

// PaymentMethodStatisticsInput represents the input for payment method aggregation.
type PaymentMethodStatisticsInput struct {
	UserID    uuid.UUID
	StartDate time.Time
	EndDate   time.Time
}

// PaymentMethodStatisticsOutput represents the output of payment method aggregation.
type PaymentMethodStatisticsOutput struct {
	Summaries []entity.PaymentMethodSummary
}

// PaymentMethodStatisticsUseCase aggregates totals and counts per
// payment method, largest first.
type PaymentMethodStatisticsUseCase struct {
	ledgerRepo adapter.LedgerRepository
	statsCache adapter.StatsCache
	logger     *slog.Logger
}

// NewPaymentMethodStatisticsUseCase creates a new PaymentMethodStatisticsUseCase instance.
func NewPaymentMethodStatisticsUseCase(
	ledgerRepo adapter.LedgerRepository,
	statsCache adapter.StatsCache,
	logger *slog.Logger,
) *PaymentMethodStatisticsUseCase {
	return &PaymentMethodStatisticsUseCase{
		ledgerRepo: ledgerRepo,
		statsCache: statsCache,
		logger:     logger,
	}
}

// Execute performs the payment method aggregation, read-through cached.
func (uc *PaymentMethodStatisticsUseCase) Execute(ctx context.Context, input PaymentMethodStatisticsInput) (*PaymentMethodStatisticsOutput, error) {
	if err := validateRange(input.StartDate, input.EndDate); err != nil {
		return nil, err
	}

	key := cacheKey(input.UserID, "payment", input.StartDate, input.EndDate)
	var cached []entity.PaymentMethodSummary
	if hit, err := uc.statsCache.Get(ctx, key, &cached); err != nil {
		uc.logger.Warn("stats cache read failed", "key", key, "error", err)
	} else if hit {
		return &PaymentMethodStatisticsOutput{Summaries: cached}, nil
	}

	rows, err := uc.ledgerRepo.PaymentMethodGroupedSums(ctx, input.UserID, input.StartDate, input.EndDate)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate payment method sums: %w", err)
	}

	summaries := make([]entity.PaymentMethodSummary, 0, len(rows))
	for _, row := range rows {
		summaries = append(summaries, entity.PaymentMethodSummary{
			PaymentMethod:    row.PaymentMethod,
			TotalAmount:      row.Sum,
			TransactionCount: row.Count,
		})
	}

	if err := uc.statsCache.Set(ctx, key, summaries, statsCacheTTL); err != nil {
		uc.logger.Warn("stats cache write failed", "key", key, "error", err)
	}

	return &PaymentMethodStatisticsOutput{Summaries: summaries}, nil
}
