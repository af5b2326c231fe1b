// Package entity defines the core business entities for the domain layer.
package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestNewRecurrence(t *testing.T) {
	day := 15

	tests := []struct {
		name         string
		pattern      RecurrencePattern
		interval     int
		executionDay *int
		wantOK       bool
	}{
		{name: "daily", pattern: RecurrenceDaily, interval: 1, wantOK: true},
		{name: "weekly", pattern: RecurrenceWeekly, interval: 2, wantOK: true},
		{name: "monthly", pattern: RecurrenceMonthly, interval: 1, executionDay: &day, wantOK: true},
		{name: "yearly", pattern: RecurrenceYearly, interval: 1, wantOK: true},
		{name: "unknown pattern", pattern: RecurrencePattern("HOURLY"), interval: 1, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recurrence, ok := NewRecurrence(tt.pattern, tt.interval, tt.executionDay)
			if ok != tt.wantOK {
				t.Fatalf("expected ok=%v, got %v", tt.wantOK, ok)
			}
			if !tt.wantOK {
				return
			}
			if recurrence.Pattern() != tt.pattern {
				t.Errorf("expected pattern %s, got %s", tt.pattern, recurrence.Pattern())
			}
			if recurrence.Interval() != tt.interval {
				t.Errorf("expected interval %d, got %d", tt.interval, recurrence.Interval())
			}
		})
	}
}

func TestRecurrence_Next(t *testing.T) {
	day31 := 31
	day15 := 15

	tests := []struct {
		name       string
		recurrence Recurrence
		base       time.Time
		want       time.Time
	}{
		{
			name:       "daily advances by one day",
			recurrence: DailyRecurrence{Every: 1},
			base:       date(2025, time.June, 10),
			want:       date(2025, time.June, 11),
		},
		{
			name:       "daily with interval crosses month boundary",
			recurrence: DailyRecurrence{Every: 3},
			base:       date(2025, time.June, 29),
			want:       date(2025, time.July, 2),
		},
		{
			name:       "weekly advances by seven days",
			recurrence: WeeklyRecurrence{Every: 1},
			base:       date(2025, time.June, 10),
			want:       date(2025, time.June, 17),
		},
		{
			name:       "biweekly advances by fourteen days",
			recurrence: WeeklyRecurrence{Every: 2},
			base:       date(2025, time.June, 10),
			want:       date(2025, time.June, 24),
		},
		{
			name:       "monthly keeps the day of month",
			recurrence: MonthlyRecurrence{Every: 1},
			base:       date(2025, time.June, 10),
			want:       date(2025, time.July, 10),
		},
		{
			name:       "monthly from Jan 31 clamps to Feb 28",
			recurrence: MonthlyRecurrence{Every: 1},
			base:       date(2025, time.January, 31),
			want:       date(2025, time.February, 28),
		},
		{
			name:       "monthly from Jan 31 clamps to Feb 29 in a leap year",
			recurrence: MonthlyRecurrence{Every: 1},
			base:       date(2024, time.January, 31),
			want:       date(2024, time.February, 29),
		},
		{
			name:       "monthly execution day pins the result",
			recurrence: MonthlyRecurrence{Every: 1, ExecutionDay: &day15},
			base:       date(2025, time.June, 3),
			want:       date(2025, time.July, 15),
		},
		{
			name:       "monthly execution day 31 clamps to short months",
			recurrence: MonthlyRecurrence{Every: 1, ExecutionDay: &day31},
			base:       date(2025, time.March, 31),
			want:       date(2025, time.April, 30),
		},
		{
			name:       "monthly crosses the year boundary",
			recurrence: MonthlyRecurrence{Every: 2},
			base:       date(2025, time.November, 15),
			want:       date(2026, time.January, 15),
		},
		{
			name:       "yearly advances by one year",
			recurrence: YearlyRecurrence{Every: 1},
			base:       date(2025, time.June, 10),
			want:       date(2026, time.June, 10),
		},
		{
			name:       "yearly from Feb 29 clamps to Feb 28",
			recurrence: YearlyRecurrence{Every: 1},
			base:       date(2024, time.February, 29),
			want:       date(2025, time.February, 28),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.recurrence.next(tt.base)
			if !got.Equal(tt.want) {
				t.Errorf("expected %s, got %s", tt.want.Format("2006-01-02"), got.Format("2006-01-02"))
			}
		})
	}
}

func TestRecurringTransaction_ShouldExecuteOn(t *testing.T) {
	newRule := func() *RecurringTransaction {
		return NewRecurringTransaction(
			uuid.New(),
			"Streaming subscription",
			LedgerTypeExpense,
			decimal.NewFromInt(13500),
			"",
			"",
			CategorySubscription,
			PaymentMethodCard,
			MonthlyRecurrence{Every: 1},
			date(2025, time.June, 15),
			nil,
		)
	}

	t.Run("due on the next execution date", func(t *testing.T) {
		rule := newRule()
		if !rule.ShouldExecuteOn(date(2025, time.June, 15)) {
			t.Error("expected rule to be due on its next execution date")
		}
	})

	t.Run("not due on other days", func(t *testing.T) {
		rule := newRule()
		if rule.ShouldExecuteOn(date(2025, time.June, 14)) {
			t.Error("expected rule not to be due the day before")
		}
	})

	t.Run("inactive rule is never due", func(t *testing.T) {
		rule := newRule()
		rule.Deactivate()
		if rule.ShouldExecuteOn(date(2025, time.June, 15)) {
			t.Error("expected deactivated rule not to be due")
		}
	})

	t.Run("expired rule is never due", func(t *testing.T) {
		rule := newRule()
		end := date(2025, time.June, 1)
		rule.EndDate = &end
		if rule.ShouldExecuteOn(date(2025, time.June, 15)) {
			t.Error("expected expired rule not to be due")
		}
	})
}

func TestRecurringTransaction_MarkExecuted(t *testing.T) {
	rule := NewRecurringTransaction(
		uuid.New(),
		"Rent",
		LedgerTypeExpense,
		decimal.NewFromInt(900000),
		"",
		"",
		CategoryLiving,
		PaymentMethodTransfer,
		MonthlyRecurrence{Every: 1},
		date(2025, time.June, 1),
		nil,
	)

	if !rule.NextExecutionDate.Equal(date(2025, time.June, 1)) {
		t.Fatalf("expected first execution on the start date, got %s", rule.NextExecutionDate)
	}

	rule.MarkExecuted(date(2025, time.June, 1))

	if rule.LastExecutionDate == nil || !rule.LastExecutionDate.Equal(date(2025, time.June, 1)) {
		t.Errorf("expected last execution date to be recorded")
	}
	if !rule.NextExecutionDate.Equal(date(2025, time.July, 1)) {
		t.Errorf("expected next execution on 2025-07-01, got %s", rule.NextExecutionDate.Format("2006-01-02"))
	}
}

func TestRecurringTransaction_NewEntryFromRecurring(t *testing.T) {
	rule := NewRecurringTransaction(
		uuid.New(),
		"Gym membership",
		LedgerTypeExpense,
		decimal.NewFromInt(60000),
		"Monthly fee",
		"Downtown gym",
		CategoryEtc,
		PaymentMethodCard,
		MonthlyRecurrence{Every: 1},
		date(2025, time.June, 1),
		nil,
	)

	entry := rule.NewEntryFromRecurring(date(2025, time.June, 1))

	if !entry.IsAutoGenerated {
		t.Error("expected generated entry to be marked auto-generated")
	}
	if entry.SourceRecurringID == nil || *entry.SourceRecurringID != rule.ID {
		t.Error("expected generated entry to reference the rule")
	}
	if entry.UserID != rule.UserID {
		t.Error("expected generated entry to belong to the rule's user")
	}
	if !entry.Amount.Equal(rule.Amount) {
		t.Errorf("expected amount %s, got %s", rule.Amount, entry.Amount)
	}
	if !entry.RecordedDate.Equal(date(2025, time.June, 1)) {
		t.Errorf("expected recorded date 2025-06-01, got %s", entry.RecordedDate.Format("2006-01-02"))
	}
}
