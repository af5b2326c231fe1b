// Package insights contains AI-assisted analysis use cases.
package insights

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/moneybook/backend/internal/application/adapter"
	"github.com/moneybook/backend/internal/domain/entity"
	domainerror "github.com/moneybook/backend/internal/domain/error"
)

// SpendingAdviceInput represents the input for advice generation.
type SpendingAdviceInput struct {
	UserID      uuid.UUID
	TargetMonth time.Time // Any day inside the month under analysis
}

// SpendingAdviceOutput represents the output of advice generation.
type SpendingAdviceOutput struct {
	Advice   string
	Summary  *entity.MonthlySummary
	TopSpend []entity.CategorySummary
}

// SpendingAdviceUseCase feeds a month of aggregates to the advice model
// and returns its analysis.
type SpendingAdviceUseCase struct {
	ledgerRepo    adapter.LedgerRepository
	adviceService adapter.AdviceService
}

// NewSpendingAdviceUseCase creates a new SpendingAdviceUseCase instance.
func NewSpendingAdviceUseCase(ledgerRepo adapter.LedgerRepository, adviceService adapter.AdviceService) *SpendingAdviceUseCase {
	return &SpendingAdviceUseCase{
		ledgerRepo:    ledgerRepo,
		adviceService: adviceService,
	}
}

// Execute aggregates the month and generates advice from it.
func (uc *SpendingAdviceUseCase) Execute(ctx context.Context, input SpendingAdviceInput) (*SpendingAdviceOutput, error) {
	if input.TargetMonth.IsZero() {
		return nil, domainerror.NewStatisticsError(
			domainerror.ErrCodeMissingStatsStartDate,
			"target month is required",
			domainerror.ErrMissingStatsStartDate,
		)
	}

	start := time.Date(input.TargetMonth.Year(), input.TargetMonth.Month(), 1, 0, 0, 0, 0, input.TargetMonth.Location())
	end := start.AddDate(0, 1, -1)

	summary := entity.EmptyMonthlySummary(start.Year(), int(start.Month()))
	rows, err := uc.ledgerRepo.MonthlyGroupedSums(ctx, input.UserID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate month: %w", err)
	}
	if len(rows) > 0 {
		summary.TotalIncome = rows[0].IncomeSum
		summary.TotalExpense = rows[0].ExpenseSum
		summary.NetAmount = rows[0].IncomeSum.Sub(rows[0].ExpenseSum)
	}

	grouped, err := uc.ledgerRepo.CategoryGroupedSums(ctx, input.UserID, start, end, 5)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate top categories: %w", err)
	}

	topSpend := make([]entity.CategorySummary, 0, len(grouped))
	for _, row := range grouped {
		topSpend = append(topSpend, entity.CategorySummary{
			Category:         row.Category,
			TotalAmount:      row.Sum,
			TransactionCount: row.Count,
		})
	}

	advice, err := uc.adviceService.GenerateSpendingAdvice(ctx, summary, topSpend)
	if err != nil {
		return nil, fmt.Errorf("failed to generate spending advice: %w", err)
	}

	return &SpendingAdviceOutput{
		Advice:   advice,
		Summary:  summary,
		TopSpend: topSpend,
	}, nil
}
