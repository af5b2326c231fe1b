// Package ledger contains ledger entry use cases.
package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/moneybook/backend/internal/application/adapter"
	"github.com/moneybook/backend/internal/domain/entity"
	domainerror "github.com/moneybook/backend/internal/domain/error"
)

// validateEntryFields checks the user-supplied fields shared by entry
// creation and update.
func validateEntryFields(
	ledgerType entity.LedgerType,
	amount decimal.Decimal,
	category entity.Category,
	paymentMethod entity.PaymentMethod,
	recordedDate time.Time,
	now time.Time,
) error {
	if !ledgerType.IsValid() {
		return domainerror.NewLedgerError(
			domainerror.ErrCodeInvalidLedgerType,
			"type must be 'INCOME' or 'EXPENSE'",
			domainerror.ErrInvalidLedgerType,
		)
	}
	if !amount.IsPositive() {
		return domainerror.NewLedgerError(
			domainerror.ErrCodeInvalidLedgerAmount,
			"amount must be greater than zero",
			domainerror.ErrInvalidLedgerAmount,
		)
	}
	if !category.IsValid() {
		return domainerror.NewLedgerError(
			domainerror.ErrCodeInvalidLedgerCategory,
			"unknown category",
			domainerror.ErrInvalidLedgerCategory,
		)
	}
	if !paymentMethod.IsValid() {
		return domainerror.NewLedgerError(
			domainerror.ErrCodeInvalidPaymentMethod,
			"unknown payment method",
			domainerror.ErrInvalidPaymentMethod,
		)
	}
	// Compare calendar dates so an entry recorded later today passes.
	if recordedDate.After(now) && !sameCalendarDay(recordedDate, now) {
		return domainerror.NewLedgerError(
			domainerror.ErrCodeFutureRecordedDate,
			"recorded date must not be in the future",
			domainerror.ErrFutureRecordedDate,
		)
	}
	return nil
}

// sameCalendarDay compares two instants by date only.
func sameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// findOwnedEntry loads an entry and verifies it belongs to the user.
func findOwnedEntry(ctx context.Context, repo adapter.LedgerRepository, entryID, userID uuid.UUID) (*entity.LedgerEntry, error) {
	entry, err := repo.FindByID(ctx, entryID)
	if err != nil {
		return nil, domainerror.NewLedgerError(
			domainerror.ErrCodeLedgerEntryNotFound,
			"ledger entry not found",
			domainerror.ErrLedgerEntryNotFound,
		)
	}
	if entry.UserID != userID {
		return nil, domainerror.NewLedgerError(
			domainerror.ErrCodeUnauthorizedLedgerAccess,
			"ledger entry does not belong to user",
			domainerror.ErrUnauthorizedLedgerAccess,
		)
	}
	return entry, nil
}
