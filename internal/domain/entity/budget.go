// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BudgetPeriod represents the period type of a budget.
type BudgetPeriod string

const (
	BudgetPeriodWeekly  BudgetPeriod = "WEEKLY"
	BudgetPeriodMonthly BudgetPeriod = "MONTHLY"
	BudgetPeriodYearly  BudgetPeriod = "YEARLY"
)

// IsValid reports whether the budget period is one of the known values.
func (p BudgetPeriod) IsValid() bool {
	return p == BudgetPeriodWeekly || p == BudgetPeriodMonthly || p == BudgetPeriodYearly
}

// DefaultAlertThreshold is the usage percentage at which an alert fires
// when no explicit threshold is configured.
var DefaultAlertThreshold = decimal.NewFromFloat(80.00)

// Budget represents a spending cap over a date range. Category labels
// the budget and buckets overlap detection (nil is its own bucket);
// usage always counts every expense in the period.
type Budget struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	Name           string
	Period         BudgetPeriod
	StartDate      time.Time
	EndDate        time.Time
	Amount         decimal.Decimal
	Category       *Category
	AlertThreshold decimal.Decimal
	IsActive       bool
	IsAlertSent    bool
	AuditInfo
}

// NewBudget creates an active budget. A zero alertThreshold falls back
// to DefaultAlertThreshold.
func NewBudget(
	userID uuid.UUID,
	name string,
	period BudgetPeriod,
	startDate, endDate time.Time,
	amount decimal.Decimal,
	category *Category,
	alertThreshold decimal.Decimal,
) *Budget {
	if alertThreshold.IsZero() {
		alertThreshold = DefaultAlertThreshold
	}
	return &Budget{
		ID:             uuid.New(),
		UserID:         userID,
		Name:           name,
		Period:         period,
		StartDate:      startDate,
		EndDate:        endDate,
		Amount:         amount,
		Category:       category,
		AlertThreshold: alertThreshold,
		IsActive:       true,
		AuditInfo:      NewAuditInfo(),
	}
}

// IsExpired reports whether the budget period has already ended.
func (b *Budget) IsExpired(today time.Time) bool {
	return today.After(b.EndDate)
}

// IsWithinPeriod reports whether date falls inside [StartDate, EndDate].
func (b *Budget) IsWithinPeriod(date time.Time) bool {
	return !date.Before(b.StartDate) && !date.After(b.EndDate)
}

// Overlaps reports whether the budget's inclusive date range intersects
// [start, end].
func (b *Budget) Overlaps(start, end time.Time) bool {
	return !b.StartDate.After(end) && !b.EndDate.Before(start)
}

// Deactivate turns the budget off without deleting it.
func (b *Budget) Deactivate() {
	b.IsActive = false
	b.Touch()
}

// MarkAlertSent latches the one-shot alert flag. Idempotent.
func (b *Budget) MarkAlertSent() {
	b.IsAlertSent = true
	b.Touch()
}

// ResetAlert clears the alert latch so a new alert may fire. Idempotent.
func (b *Budget) ResetAlert() {
	b.IsAlertSent = false
	b.Touch()
}

// Update replaces the mutable budget fields.
func (b *Budget) Update(
	name string,
	period BudgetPeriod,
	startDate, endDate time.Time,
	amount decimal.Decimal,
	category *Category,
	alertThreshold decimal.Decimal,
	isActive bool,
) {
	b.Name = name
	b.Period = period
	b.StartDate = startDate
	b.EndDate = endDate
	b.Amount = amount
	b.Category = category
	b.AlertThreshold = alertThreshold
	b.IsActive = isActive
	b.Touch()
}

// BudgetUsage is the computed spend-vs-budget state for one budget.
type BudgetUsage struct {
	Budget          *Budget
	TotalSpent      decimal.Decimal
	RemainingAmount decimal.Decimal
	UsagePercentage decimal.Decimal
	IsExceeded      bool
	ShouldAlert     bool
}

// ComputeUsage derives usage figures from the actual spend supplied by
// the ledger store. A zero budget amount yields a 0 usage percentage and
// IsExceeded iff anything was spent at all.
func (b *Budget) ComputeUsage(totalSpent decimal.Decimal) *BudgetUsage {
	usage := &BudgetUsage{
		Budget:          b,
		TotalSpent:      totalSpent,
		RemainingAmount: b.Amount.Sub(totalSpent),
	}

	if b.Amount.IsZero() {
		usage.UsagePercentage = decimal.Zero
		usage.IsExceeded = totalSpent.IsPositive()
	} else {
		// Divide at 4 decimal places before scaling to 2 so the
		// percentage is not truncated prematurely.
		usage.UsagePercentage = totalSpent.
			DivRound(b.Amount, 4).
			Mul(decimal.NewFromInt(100)).
			Round(2)
		usage.IsExceeded = totalSpent.GreaterThan(b.Amount)
	}

	usage.ShouldAlert = usage.UsagePercentage.GreaterThanOrEqual(b.AlertThreshold) && !b.IsAlertSent
	return usage
}
