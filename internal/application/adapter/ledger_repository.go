// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/moneybook/backend/internal/domain/entity"
)

// MonthlyGroupedSum is one (year, month) row of the grouped-by-month query.
type MonthlyGroupedSum struct {
	Year       int
	Month      int
	IncomeSum  decimal.Decimal
	ExpenseSum decimal.Decimal
}

// CategoryGroupedSum is one row of the grouped-by-category query,
// ordered by sum descending.
type CategoryGroupedSum struct {
	Category entity.Category
	Sum      decimal.Decimal
	Count    int64
}

// PaymentMethodGroupedSum is one row of the grouped-by-payment-method
// query, ordered by sum descending.
type PaymentMethodGroupedSum struct {
	PaymentMethod entity.PaymentMethod
	Sum           decimal.Decimal
	Count         int64
}

// LedgerRepository defines the interface for ledger entry persistence
// and the aggregate queries the statistics and budget engines consume.
type LedgerRepository interface {
	// Create persists a new ledger entry. An auto-generated entry that
	// collides on (source_recurring_id, recorded_date) returns
	// ErrDuplicateExecution.
	Create(ctx context.Context, entry *entity.LedgerEntry) error

	// FindByID retrieves a non-deleted entry by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.LedgerEntry, error)

	// Search retrieves non-deleted entries for a user matching the
	// condition, newest recorded date first, with offset pagination.
	Search(ctx context.Context, userID uuid.UUID, cond entity.LedgerSearchCondition, page, limit int) (*entity.LedgerListResult, error)

	// Update persists changes to an existing entry.
	Update(ctx context.Context, entry *entity.LedgerEntry) error

	// SoftDelete marks an entry as deleted.
	SoftDelete(ctx context.Context, id uuid.UUID) error

	// SumByTypeAndRange returns the sum of non-deleted entries of the
	// given type recorded within [start, end]. A non-nil category
	// restricts the sum to that category. Zero when none exist.
	SumByTypeAndRange(ctx context.Context, userID uuid.UUID, ledgerType entity.LedgerType, category *entity.Category, start, end time.Time) (decimal.Decimal, error)

	// MonthlyGroupedSums returns per-month income/expense sums within
	// [start, end], ordered by year then month ascending. Months with
	// no activity are absent.
	MonthlyGroupedSums(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]MonthlyGroupedSum, error)

	// CategoryGroupedSums returns per-category EXPENSE sums and counts
	// within [start, end], ordered by sum descending. A positive limit
	// caps the number of rows.
	CategoryGroupedSums(ctx context.Context, userID uuid.UUID, start, end time.Time, limit int) ([]CategoryGroupedSum, error)

	// PaymentMethodGroupedSums returns per-payment-method sums and
	// counts within [start, end], ordered by sum descending.
	PaymentMethodGroupedSums(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]PaymentMethodGroupedSum, error)
}
