// Package entity defines the core business entities for the domain layer.
package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func newTestBudget(amount int64, threshold int64) *Budget {
	return NewBudget(
		uuid.New(),
		"June budget",
		BudgetPeriodMonthly,
		date(2025, time.June, 1),
		date(2025, time.June, 30),
		decimal.NewFromInt(amount),
		nil,
		decimal.NewFromInt(threshold),
	)
}

func TestNewBudget_DefaultAlertThreshold(t *testing.T) {
	budget := NewBudget(
		uuid.New(),
		"No threshold",
		BudgetPeriodMonthly,
		date(2025, time.June, 1),
		date(2025, time.June, 30),
		decimal.NewFromInt(100000),
		nil,
		decimal.Zero,
	)

	if !budget.AlertThreshold.Equal(DefaultAlertThreshold) {
		t.Errorf("expected default threshold %s, got %s", DefaultAlertThreshold, budget.AlertThreshold)
	}
	if !budget.IsActive {
		t.Error("expected new budget to be active")
	}
	if budget.IsAlertSent {
		t.Error("expected new budget alert latch to be clear")
	}
}

func TestBudget_ComputeUsage(t *testing.T) {
	t.Run("partial usage", func(t *testing.T) {
		budget := newTestBudget(300000, 80)
		usage := budget.ComputeUsage(decimal.NewFromInt(120000))

		if !usage.TotalSpent.Equal(decimal.NewFromInt(120000)) {
			t.Errorf("expected total spent 120000, got %s", usage.TotalSpent)
		}
		if !usage.RemainingAmount.Equal(decimal.NewFromInt(180000)) {
			t.Errorf("expected remaining 180000, got %s", usage.RemainingAmount)
		}
		if !usage.UsagePercentage.Equal(decimal.NewFromInt(40)) {
			t.Errorf("expected usage 40%%, got %s", usage.UsagePercentage)
		}
		if usage.IsExceeded {
			t.Error("expected budget not to be exceeded")
		}
		if usage.ShouldAlert {
			t.Error("expected no alert below the threshold")
		}
	})

	t.Run("exceeded budget", func(t *testing.T) {
		budget := newTestBudget(300000, 80)
		usage := budget.ComputeUsage(decimal.NewFromInt(360000))

		if !usage.IsExceeded {
			t.Error("expected budget to be exceeded")
		}
		if !usage.RemainingAmount.Equal(decimal.NewFromInt(-60000)) {
			t.Errorf("expected remaining -60000, got %s", usage.RemainingAmount)
		}
		if !usage.UsagePercentage.Equal(decimal.NewFromInt(120)) {
			t.Errorf("expected usage 120%%, got %s", usage.UsagePercentage)
		}
		if !usage.ShouldAlert {
			t.Error("expected alert above the threshold")
		}
	})

	t.Run("spend equal to amount is not exceeded", func(t *testing.T) {
		budget := newTestBudget(300000, 80)
		usage := budget.ComputeUsage(decimal.NewFromInt(300000))

		if usage.IsExceeded {
			t.Error("expected spend equal to the budget not to count as exceeded")
		}
		if !usage.UsagePercentage.Equal(decimal.NewFromInt(100)) {
			t.Errorf("expected usage 100%%, got %s", usage.UsagePercentage)
		}
	})

	t.Run("usage exactly at the threshold alerts", func(t *testing.T) {
		budget := newTestBudget(100000, 80)
		usage := budget.ComputeUsage(decimal.NewFromInt(80000))

		if !usage.ShouldAlert {
			t.Error("expected alert exactly at the threshold")
		}
	})

	t.Run("latched alert does not fire again", func(t *testing.T) {
		budget := newTestBudget(100000, 80)
		budget.MarkAlertSent()
		usage := budget.ComputeUsage(decimal.NewFromInt(90000))

		if usage.ShouldAlert {
			t.Error("expected latched budget not to alert again")
		}
	})

	t.Run("reset alert re-arms the latch", func(t *testing.T) {
		budget := newTestBudget(100000, 80)
		budget.MarkAlertSent()
		budget.ResetAlert()
		usage := budget.ComputeUsage(decimal.NewFromInt(90000))

		if !usage.ShouldAlert {
			t.Error("expected reset budget to alert again")
		}
	})

	t.Run("zero amount budget", func(t *testing.T) {
		budget := newTestBudget(0, 80)
		usage := budget.ComputeUsage(decimal.NewFromInt(1000))

		if !usage.UsagePercentage.IsZero() {
			t.Errorf("expected zero usage percentage, got %s", usage.UsagePercentage)
		}
		if !usage.IsExceeded {
			t.Error("expected any spend to exceed a zero budget")
		}
	})
}

func TestBudget_Overlaps(t *testing.T) {
	budget := newTestBudget(300000, 80)

	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  bool
	}{
		{
			name:  "identical range",
			start: date(2025, time.June, 1),
			end:   date(2025, time.June, 30),
			want:  true,
		},
		{
			name:  "partial overlap at the end",
			start: date(2025, time.June, 15),
			end:   date(2025, time.July, 14),
			want:  true,
		},
		{
			name:  "touching on the last day",
			start: date(2025, time.June, 30),
			end:   date(2025, time.July, 30),
			want:  true,
		},
		{
			name:  "disjoint following month",
			start: date(2025, time.July, 1),
			end:   date(2025, time.July, 31),
			want:  false,
		},
		{
			name:  "disjoint preceding month",
			start: date(2025, time.May, 1),
			end:   date(2025, time.May, 31),
			want:  false,
		},
		{
			name:  "fully contained",
			start: date(2025, time.June, 10),
			end:   date(2025, time.June, 20),
			want:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := budget.Overlaps(tt.start, tt.end); got != tt.want {
				t.Errorf("Overlaps(%s, %s) = %v, want %v",
					tt.start.Format("2006-01-02"), tt.end.Format("2006-01-02"), got, tt.want)
			}
		})
	}
}

func TestBudget_IsWithinPeriod(t *testing.T) {
	budget := newTestBudget(300000, 80)

	if !budget.IsWithinPeriod(date(2025, time.June, 1)) {
		t.Error("expected start date to be inside the period")
	}
	if !budget.IsWithinPeriod(date(2025, time.June, 30)) {
		t.Error("expected end date to be inside the period")
	}
	if budget.IsWithinPeriod(date(2025, time.July, 1)) {
		t.Error("expected the day after the end date to be outside the period")
	}
}
