// Package statistics contains aggregation use cases over the ledger.
package statistics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/moneybook/backend/internal/application/adapter"
	"github.com/moneybook/backend/internal/domain/entity"
	domainerror "github.com/moneybook/backend/internal/domain/error"
)

// fakeLedgerAggregates serves canned rows for the grouped queries.
type fakeLedgerAggregates struct {
	monthlyRows  []adapter.MonthlyGroupedSum
	categoryRows []adapter.CategoryGroupedSum
	lastLimit    int
}

func (r *fakeLedgerAggregates) Create(ctx context.Context, entry *entity.LedgerEntry) error {
	return nil
}

func (r *fakeLedgerAggregates) FindByID(ctx context.Context, id uuid.UUID) (*entity.LedgerEntry, error) {
	return nil, domainerror.ErrLedgerEntryNotFound
}

func (r *fakeLedgerAggregates) Search(ctx context.Context, userID uuid.UUID, cond entity.LedgerSearchCondition, page, limit int) (*entity.LedgerListResult, error) {
	return &entity.LedgerListResult{}, nil
}

func (r *fakeLedgerAggregates) Update(ctx context.Context, entry *entity.LedgerEntry) error {
	return nil
}

func (r *fakeLedgerAggregates) SoftDelete(ctx context.Context, id uuid.UUID) error { return nil }

func (r *fakeLedgerAggregates) SumByTypeAndRange(ctx context.Context, userID uuid.UUID, ledgerType entity.LedgerType, category *entity.Category, start, end time.Time) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

func (r *fakeLedgerAggregates) MonthlyGroupedSums(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]adapter.MonthlyGroupedSum, error) {
	return r.monthlyRows, nil
}

func (r *fakeLedgerAggregates) CategoryGroupedSums(ctx context.Context, userID uuid.UUID, start, end time.Time, limit int) ([]adapter.CategoryGroupedSum, error) {
	r.lastLimit = limit
	return r.categoryRows, nil
}

func (r *fakeLedgerAggregates) PaymentMethodGroupedSums(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]adapter.PaymentMethodGroupedSum, error) {
	return nil, nil
}

func assertStatsErrorCode(t *testing.T, err error, code domainerror.StatisticsErrorCode) {
	t.Helper()
	var statsErr *domainerror.StatisticsError
	if !errors.As(err, &statsErr) {
		t.Fatalf("expected StatisticsError, got %v", err)
	}
	if statsErr.Code != code {
		t.Errorf("expected error code %s, got %s", code, statsErr.Code)
	}
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestChangeRate(t *testing.T) {
	tests := []struct {
		name string
		prev string
		cur  string
		want string
	}{
		{"increase", "100000", "150000", "50"},
		{"decrease", "200000", "150000", "-25"},
		{"unchanged", "80000", "80000", "0"},
		{"zero baseline", "0", "50000", "0"},
		{"drop to zero", "50000", "0", "-100"},
		{"fractional rounds to two places", "30000", "40000", "33.33"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := changeRate(dec(tt.prev), dec(tt.cur))
			if !got.Equal(dec(tt.want)) {
				t.Errorf("changeRate(%s, %s) = %s, want %s", tt.prev, tt.cur, got, tt.want)
			}
		})
	}
}

func TestPercentOf(t *testing.T) {
	tests := []struct {
		name  string
		part  string
		whole string
		want  string
	}{
		{"half", "50", "100", "50"},
		{"whole", "120000", "120000", "100"},
		{"fractional rounds to two places", "1", "3", "33.33"},
		{"zero whole", "50", "0", "0"},
		{"negative whole", "50", "-10", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := percentOf(dec(tt.part), dec(tt.whole))
			if !got.Equal(dec(tt.want)) {
				t.Errorf("percentOf(%s, %s) = %s, want %s", tt.part, tt.whole, got, tt.want)
			}
		})
	}
}

func TestMonthBounds(t *testing.T) {
	tests := []struct {
		name      string
		in        time.Time
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			"mid month",
			time.Date(2025, time.June, 15, 13, 45, 0, 0, time.UTC),
			time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2025, time.June, 30, 0, 0, 0, 0, time.UTC),
		},
		{
			"february leap year",
			time.Date(2024, time.February, 10, 0, 0, 0, 0, time.UTC),
			time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC),
		},
		{
			"december",
			time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC),
			time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := monthBounds(tt.in)
			if !start.Equal(tt.wantStart) {
				t.Errorf("start = %s, want %s", start, tt.wantStart)
			}
			if !end.Equal(tt.wantEnd) {
				t.Errorf("end = %s, want %s", end, tt.wantEnd)
			}
		})
	}
}

func TestBuildCategorySummaries(t *testing.T) {
	rows := []adapter.CategoryGroupedSum{
		{Category: entity.CategoryFood, Sum: dec("120000"), Count: 8},
		{Category: entity.CategoryTransport, Sum: dec("60000"), Count: 4},
		{Category: entity.CategoryCafe, Sum: dec("20000"), Count: 5},
	}

	summaries := buildCategorySummaries(rows)
	if len(summaries) != 3 {
		t.Fatalf("expected 3 summaries, got %d", len(summaries))
	}

	wantPercent := []string{"60", "30", "10"}
	for i, want := range wantPercent {
		if !summaries[i].Percentage.Equal(dec(want)) {
			t.Errorf("row %d: percentage = %s, want %s", i, summaries[i].Percentage, want)
		}
	}
	if summaries[0].Category != entity.CategoryFood {
		t.Errorf("expected row order preserved, got %s first", summaries[0].Category)
	}
	if summaries[2].TransactionCount != 5 {
		t.Errorf("expected transaction count 5, got %d", summaries[2].TransactionCount)
	}

	if got := buildCategorySummaries(nil); len(got) != 0 {
		t.Errorf("expected empty result for no rows, got %d", len(got))
	}
}

func TestTrendAnalysisUseCase_Execute(t *testing.T) {
	userID := uuid.New()
	target := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)

	t.Run("compares current month against previous", func(t *testing.T) {
		repo := &fakeLedgerAggregates{
			monthlyRows: []adapter.MonthlyGroupedSum{
				{Year: 2025, Month: 5, IncomeSum: dec("3000000"), ExpenseSum: dec("1000000")},
				{Year: 2025, Month: 6, IncomeSum: dec("3300000"), ExpenseSum: dec("1500000")},
			},
		}

		uc := NewTrendAnalysisUseCase(repo)
		out, err := uc.Execute(context.Background(), TrendAnalysisInput{UserID: userID, TargetMonth: target})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		trend := out.Trend
		if trend.CurrentMonth.Month != 6 || trend.PreviousMonth.Month != 5 {
			t.Fatalf("unexpected months: current=%d previous=%d", trend.CurrentMonth.Month, trend.PreviousMonth.Month)
		}
		if !trend.ExpenseChangeRate.Equal(dec("50")) {
			t.Errorf("expense change rate = %s, want 50", trend.ExpenseChangeRate)
		}
		if !trend.IncomeChangeRate.Equal(dec("10")) {
			t.Errorf("income change rate = %s, want 10", trend.IncomeChangeRate)
		}
		if !trend.CurrentMonth.NetAmount.Equal(dec("1800000")) {
			t.Errorf("current net = %s, want 1800000", trend.CurrentMonth.NetAmount)
		}
	})

	t.Run("empty previous month yields zero change rates", func(t *testing.T) {
		repo := &fakeLedgerAggregates{
			monthlyRows: []adapter.MonthlyGroupedSum{
				{Year: 2025, Month: 6, IncomeSum: dec("3000000"), ExpenseSum: dec("1200000")},
			},
		}

		uc := NewTrendAnalysisUseCase(repo)
		out, err := uc.Execute(context.Background(), TrendAnalysisInput{UserID: userID, TargetMonth: target})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		trend := out.Trend
		if !trend.PreviousMonth.TotalExpense.IsZero() {
			t.Errorf("expected empty previous month, got expense %s", trend.PreviousMonth.TotalExpense)
		}
		if !trend.ExpenseChangeRate.IsZero() || !trend.IncomeChangeRate.IsZero() {
			t.Errorf("expected zero change rates against an empty baseline, got %s / %s",
				trend.ExpenseChangeRate, trend.IncomeChangeRate)
		}
	})

	t.Run("january previous month crosses the year boundary", func(t *testing.T) {
		repo := &fakeLedgerAggregates{
			monthlyRows: []adapter.MonthlyGroupedSum{
				{Year: 2024, Month: 12, IncomeSum: dec("1000000"), ExpenseSum: dec("500000")},
				{Year: 2025, Month: 1, IncomeSum: dec("1000000"), ExpenseSum: dec("600000")},
			},
		}

		uc := NewTrendAnalysisUseCase(repo)
		out, err := uc.Execute(context.Background(), TrendAnalysisInput{
			UserID:      userID,
			TargetMonth: time.Date(2025, time.January, 20, 0, 0, 0, 0, time.UTC),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if out.Trend.PreviousMonth.Year != 2024 || out.Trend.PreviousMonth.Month != 12 {
			t.Fatalf("expected previous month 2024-12, got %d-%d",
				out.Trend.PreviousMonth.Year, out.Trend.PreviousMonth.Month)
		}
		if !out.Trend.ExpenseChangeRate.Equal(dec("20")) {
			t.Errorf("expense change rate = %s, want 20", out.Trend.ExpenseChangeRate)
		}
	})
}

func TestTopCategoriesUseCase_Execute(t *testing.T) {
	userID := uuid.New()
	start := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, time.June, 30, 0, 0, 0, 0, time.UTC)

	t.Run("returns percentages over the returned rows", func(t *testing.T) {
		repo := &fakeLedgerAggregates{
			categoryRows: []adapter.CategoryGroupedSum{
				{Category: entity.CategoryFood, Sum: dec("150000"), Count: 10},
				{Category: entity.CategoryShopping, Sum: dec("50000"), Count: 2},
			},
		}

		uc := NewTopCategoriesUseCase(repo)
		out, err := uc.Execute(context.Background(), TopCategoriesInput{
			UserID:    userID,
			StartDate: start,
			EndDate:   end,
			Limit:     2,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if repo.lastLimit != 2 {
			t.Errorf("expected limit 2 passed to the query, got %d", repo.lastLimit)
		}
		if len(out.Summaries) != 2 {
			t.Fatalf("expected 2 summaries, got %d", len(out.Summaries))
		}
		if !out.Summaries[0].Percentage.Equal(dec("75")) {
			t.Errorf("top percentage = %s, want 75", out.Summaries[0].Percentage)
		}
		if !out.Summaries[1].Percentage.Equal(dec("25")) {
			t.Errorf("second percentage = %s, want 25", out.Summaries[1].Percentage)
		}
	})

	t.Run("validation", func(t *testing.T) {
		uc := NewTopCategoriesUseCase(&fakeLedgerAggregates{})

		tests := []struct {
			name  string
			input TopCategoriesInput
			code  domainerror.StatisticsErrorCode
		}{
			{
				"missing start date",
				TopCategoriesInput{UserID: userID, EndDate: end, Limit: 5},
				domainerror.ErrCodeMissingStatsStartDate,
			},
			{
				"missing end date",
				TopCategoriesInput{UserID: userID, StartDate: start, Limit: 5},
				domainerror.ErrCodeMissingStatsEndDate,
			},
			{
				"start after end",
				TopCategoriesInput{UserID: userID, StartDate: end, EndDate: start, Limit: 5},
				domainerror.ErrCodeInvalidStatsDateRange,
			},
			{
				"limit below one",
				TopCategoriesInput{UserID: userID, StartDate: start, EndDate: end, Limit: 0},
				domainerror.ErrCodeInvalidTopLimit,
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := uc.Execute(context.Background(), tt.input)
				if err == nil {
					t.Fatal("expected an error")
				}
				assertStatsErrorCode(t, err, tt.code)
			})
		}
	})
}
