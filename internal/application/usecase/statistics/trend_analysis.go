package statistics

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/moneybook/backend/internal/application/adapter"
	"github.com/moneybook/backend/internal/domain/entity"
)

// TrendAnalysisInput represents the input for month-over-month trends.
type TrendAnalysisInput struct {
	UserID      uuid.UUID
	TargetMonth time.Time // Any day inside the month under analysis
}

// TrendAnalysisOutput represents the output of month-over-month trends.
type TrendAnalysisOutput struct {
	Trend *entity.TrendResult
}

// TrendAnalysisUseCase compares a month's totals against the month
// before it.
type TrendAnalysisUseCase struct {
	ledgerRepo adapter.LedgerRepository
}

// NewTrendAnalysisUseCase creates a new TrendAnalysisUseCase instance.
func NewTrendAnalysisUseCase(ledgerRepo adapter.LedgerRepository) *TrendAnalysisUseCase {
	return &TrendAnalysisUseCase{
		ledgerRepo: ledgerRepo,
	}
}

// Execute computes the trend. Both months are fetched with a single
// range query; a month with no activity contributes zero totals.
func (uc *TrendAnalysisUseCase) Execute(ctx context.Context, input TrendAnalysisInput) (*TrendAnalysisOutput, error) {
	curStart, curEnd := monthBounds(input.TargetMonth)
	prevStart, _ := monthBounds(curStart.AddDate(0, 0, -1))

	rows, err := uc.ledgerRepo.MonthlyGroupedSums(ctx, input.UserID, prevStart, curEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate trend months: %w", err)
	}

	current := entity.EmptyMonthlySummary(curStart.Year(), int(curStart.Month()))
	previous := entity.EmptyMonthlySummary(prevStart.Year(), int(prevStart.Month()))
	for _, row := range rows {
		summary := &entity.MonthlySummary{
			Year:         row.Year,
			Month:        row.Month,
			TotalIncome:  row.IncomeSum,
			TotalExpense: row.ExpenseSum,
			NetAmount:    row.IncomeSum.Sub(row.ExpenseSum),
		}
		switch {
		case row.Year == current.Year && row.Month == current.Month:
			current = summary
		case row.Year == previous.Year && row.Month == previous.Month:
			previous = summary
		}
	}

	return &TrendAnalysisOutput{
		Trend: &entity.TrendResult{
			CurrentMonth:      current,
			PreviousMonth:     previous,
			ExpenseChangeRate: changeRate(previous.TotalExpense, current.TotalExpense),
			IncomeChangeRate:  changeRate(previous.TotalIncome, current.TotalIncome),
		},
	}, nil
}
