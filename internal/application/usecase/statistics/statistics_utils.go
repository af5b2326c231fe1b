// Package statistics contains aggregation use cases over the ledger.
package statistics

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domainerror "github.com/moneybook/backend/internal/domain/error"
)

// statsCacheTTL bounds staleness between writes and the next explicit
// invalidation.
const statsCacheTTL = 5 * time.Minute

var oneHundred = decimal.NewFromInt(100)

// validateRange checks the start/end pair shared by the range queries.
func validateRange(start, end time.Time) error {
	if start.IsZero() {
		return domainerror.NewStatisticsError(
			domainerror.ErrCodeMissingStatsStartDate,
			"start date is required",
			domainerror.ErrMissingStatsStartDate,
		)
	}
	if end.IsZero() {
		return domainerror.NewStatisticsError(
			domainerror.ErrCodeMissingStatsEndDate,
			"end date is required",
			domainerror.ErrMissingStatsEndDate,
		)
	}
	if start.After(end) {
		return domainerror.NewStatisticsError(
			domainerror.ErrCodeInvalidStatsDateRange,
			"start date must not be after end date",
			domainerror.ErrInvalidStatsDateRange,
		)
	}
	return nil
}

// percentOf returns part/whole scaled to a percentage at two decimal
// places. A non-positive whole yields zero rather than a division error.
func percentOf(part, whole decimal.Decimal) decimal.Decimal {
	if !whole.IsPositive() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(oneHundred).Round(2)
}

// changeRate returns the month-over-month change of cur against prev as
// a percentage at two decimal places. A zero baseline yields zero.
func changeRate(prev, cur decimal.Decimal) decimal.Decimal {
	if prev.IsZero() {
		return decimal.Zero
	}
	return cur.Sub(prev).Div(prev).Mul(oneHundred).Round(2)
}

// monthBounds returns the first and last day of the month containing t.
func monthBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	end := start.AddDate(0, 1, -1)
	return start, end
}

// cacheKey builds the per-user, per-operation, per-range cache key.
func cacheKey(userID uuid.UUID, op string, start, end time.Time) string {
	return fmt.Sprintf("stats:%s:%s:%s:%s",
		userID,
		op,
		start.Format("2006-01-02"),
		end.Format("2006-01-02"),
	)
}
