// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RecurrencePattern names the supported recurrence cadences.
type RecurrencePattern string

const (
	RecurrenceDaily   RecurrencePattern = "DAILY"
	RecurrenceWeekly  RecurrencePattern = "WEEKLY"
	RecurrenceMonthly RecurrencePattern = "MONTHLY"
	RecurrenceYearly  RecurrencePattern = "YEARLY"
)

// Recurrence is a closed variant describing how the next execution date
// is derived from a base date. Each arm carries only the parameters its
// pattern needs; the unexported method keeps the set of implementations
// fixed to this package.
type Recurrence interface {
	Pattern() RecurrencePattern
	Interval() int
	ExecutionDayOfMonth() *int
	next(base time.Time) time.Time
}

// DailyRecurrence advances by Every days.
type DailyRecurrence struct {
	Every int
}

func (r DailyRecurrence) Pattern() RecurrencePattern { return RecurrenceDaily }
func (r DailyRecurrence) Interval() int              { return r.Every }
func (r DailyRecurrence) ExecutionDayOfMonth() *int  { return nil }
func (r DailyRecurrence) next(base time.Time) time.Time {
	return base.AddDate(0, 0, r.Every)
}

// WeeklyRecurrence advances by Every weeks.
type WeeklyRecurrence struct {
	Every int
}

func (r WeeklyRecurrence) Pattern() RecurrencePattern { return RecurrenceWeekly }
func (r WeeklyRecurrence) Interval() int              { return r.Every }
func (r WeeklyRecurrence) ExecutionDayOfMonth() *int  { return nil }
func (r WeeklyRecurrence) next(base time.Time) time.Time {
	return base.AddDate(0, 0, 7*r.Every)
}

// MonthlyRecurrence advances by Every months. When ExecutionDay is set,
// the result is pinned to that day of month, clamped to the length of
// the target month (a day-31 rule lands on Feb 29 in a leap year).
type MonthlyRecurrence struct {
	Every        int
	ExecutionDay *int
}

func (r MonthlyRecurrence) Pattern() RecurrencePattern { return RecurrenceMonthly }
func (r MonthlyRecurrence) Interval() int              { return r.Every }
func (r MonthlyRecurrence) ExecutionDayOfMonth() *int  { return r.ExecutionDay }
func (r MonthlyRecurrence) next(base time.Time) time.Time {
	candidate := addMonths(base, r.Every)
	if r.ExecutionDay == nil {
		return candidate
	}
	day := *r.ExecutionDay
	if max := daysInMonth(candidate.Year(), candidate.Month()); day > max {
		day = max
	}
	return time.Date(candidate.Year(), candidate.Month(), day, 0, 0, 0, 0, candidate.Location())
}

// YearlyRecurrence advances by Every years.
type YearlyRecurrence struct {
	Every int
}

func (r YearlyRecurrence) Pattern() RecurrencePattern { return RecurrenceYearly }
func (r YearlyRecurrence) Interval() int              { return r.Every }
func (r YearlyRecurrence) ExecutionDayOfMonth() *int  { return nil }
func (r YearlyRecurrence) next(base time.Time) time.Time {
	return addMonths(base, 12*r.Every)
}

// NewRecurrence builds the variant matching the flattened persistence
// representation (pattern, interval, optional day-of-month). Returns
// false when the pattern is unknown.
func NewRecurrence(pattern RecurrencePattern, interval int, executionDay *int) (Recurrence, bool) {
	switch pattern {
	case RecurrenceDaily:
		return DailyRecurrence{Every: interval}, true
	case RecurrenceWeekly:
		return WeeklyRecurrence{Every: interval}, true
	case RecurrenceMonthly:
		return MonthlyRecurrence{Every: interval, ExecutionDay: executionDay}, true
	case RecurrenceYearly:
		return YearlyRecurrence{Every: interval}, true
	}
	return nil, false
}

// addMonths advances n calendar months, clamping the day of month to the
// target month's length. time.Time.AddDate normalizes overflow (Jan 31 +
// 1 month = Mar 2), which is not what calendar recurrence wants.
func addMonths(t time.Time, n int) time.Time {
	year, month, day := t.Date()
	month += time.Month(n)
	// Normalize year/month with a day-1 anchor, then clamp the day.
	anchor := time.Date(year, month, 1, 0, 0, 0, 0, t.Location())
	if max := daysInMonth(anchor.Year(), anchor.Month()); day > max {
		day = max
	}
	return time.Date(anchor.Year(), anchor.Month(), day, 0, 0, 0, 0, t.Location())
}

// daysInMonth returns the number of days in the given month.
func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// RecurringTransaction is a rule that periodically materializes new
// ledger entries. Generated entries reference the rule through
// LedgerEntry.SourceRecurringID and outlive its deactivation.
type RecurringTransaction struct {
	ID                uuid.UUID
	UserID            uuid.UUID
	Name              string
	Type              LedgerType
	Amount            decimal.Decimal
	Description       string
	Place             string
	Category          Category
	PaymentMethod     PaymentMethod
	Recurrence        Recurrence
	StartDate         time.Time
	EndDate           *time.Time
	NextExecutionDate time.Time
	LastExecutionDate *time.Time
	IsActive          bool
	AuditInfo
}

// NewRecurringTransaction creates an active rule with its first
// execution date computed from the start date.
func NewRecurringTransaction(
	userID uuid.UUID,
	name string,
	ledgerType LedgerType,
	amount decimal.Decimal,
	description string,
	place string,
	category Category,
	paymentMethod PaymentMethod,
	recurrence Recurrence,
	startDate time.Time,
	endDate *time.Time,
) *RecurringTransaction {
	rt := &RecurringTransaction{
		ID:            uuid.New(),
		UserID:        userID,
		Name:          name,
		Type:          ledgerType,
		Amount:        amount,
		Description:   description,
		Place:         place,
		Category:      category,
		PaymentMethod: paymentMethod,
		Recurrence:    recurrence,
		StartDate:     startDate,
		EndDate:       endDate,
		IsActive:      true,
		AuditInfo:     NewAuditInfo(),
	}
	rt.NextExecutionDate = startDate
	return rt
}

// IsExpired reports whether the rule's end date has passed. Unbounded
// rules never expire.
func (rt *RecurringTransaction) IsExpired(today time.Time) bool {
	if rt.EndDate == nil {
		return false
	}
	return today.After(*rt.EndDate)
}

// ShouldExecuteOn reports whether the rule is due on the given day.
func (rt *RecurringTransaction) ShouldExecuteOn(today time.Time) bool {
	return rt.IsActive && !rt.IsExpired(today) && sameDay(today, rt.NextExecutionDate)
}

// CalculateNextExecutionDate recomputes NextExecutionDate from the last
// execution date, falling back to the start date before the first run.
func (rt *RecurringTransaction) CalculateNextExecutionDate() {
	base := rt.StartDate
	if rt.LastExecutionDate != nil {
		base = *rt.LastExecutionDate
	}
	rt.NextExecutionDate = rt.Recurrence.next(base)
}

// MarkExecuted records an execution and schedules the next one. It is
// not guarded against re-entry for the same date; the execution driver
// must ensure at-most-once execution per due date.
func (rt *RecurringTransaction) MarkExecuted(executionDate time.Time) {
	rt.LastExecutionDate = &executionDate
	rt.CalculateNextExecutionDate()
	rt.Touch()
}

// Activate turns the rule back on.
func (rt *RecurringTransaction) Activate() {
	rt.IsActive = true
	rt.Touch()
}

// Deactivate stops future executions. Already-generated entries and the
// scheduled NextExecutionDate are left untouched.
func (rt *RecurringTransaction) Deactivate() {
	rt.IsActive = false
	rt.Touch()
}

// NewEntryFromRecurring builds the auto-generated ledger entry for one
// execution. Persistence is the caller's responsibility.
func (rt *RecurringTransaction) NewEntryFromRecurring(recordedDate time.Time) *LedgerEntry {
	sourceID := rt.ID
	return &LedgerEntry{
		ID:                uuid.New(),
		UserID:            rt.UserID,
		Type:              rt.Type,
		Amount:            rt.Amount,
		Description:       rt.Description,
		Place:             rt.Place,
		Category:          rt.Category,
		PaymentMethod:     rt.PaymentMethod,
		RecordedDate:      recordedDate,
		IsAutoGenerated:   true,
		SourceRecurringID: &sourceID,
		AuditInfo:         NewAuditInfo(),
	}
}

// sameDay compares two instants by calendar date only.
func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
