// Package error defines domain-specific errors for the ledger application.
package error

import "errors"

// Ledger domain errors.
var (
	// ErrLedgerEntryNotFound is returned when an entry is not found or soft-deleted.
	ErrLedgerEntryNotFound = errors.New("ledger entry not found")

	// ErrInvalidLedgerAmount is returned when the amount is zero or negative.
	ErrInvalidLedgerAmount = errors.New("invalid ledger amount")

	// ErrInvalidLedgerType is returned when the type is neither INCOME nor EXPENSE.
	ErrInvalidLedgerType = errors.New("invalid ledger type")

	// ErrInvalidLedgerCategory is returned when the category is outside the closed set.
	ErrInvalidLedgerCategory = errors.New("invalid ledger category")

	// ErrInvalidPaymentMethod is returned when the payment method is unknown.
	ErrInvalidPaymentMethod = errors.New("invalid payment method")

	// ErrFutureRecordedDate is returned when the recorded date lies in the future.
	ErrFutureRecordedDate = errors.New("recorded date must not be in the future")

	// ErrInvalidLedgerDateRange is returned when a search range has start after end.
	ErrInvalidLedgerDateRange = errors.New("invalid date range")

	// ErrUnauthorizedLedgerAccess is returned when the entry belongs to another user.
	ErrUnauthorizedLedgerAccess = errors.New("unauthorized access to ledger entry")

	// ErrDuplicateExecution is returned when an auto-generated entry for the same
	// recurring rule and date already exists.
	ErrDuplicateExecution = errors.New("entry already generated for this date")
)

// LedgerErrorCode defines error codes for ledger errors.
// Format: LGR-XXYYYY where XX is category and YYYY is specific error.
type LedgerErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeLedgerEntryNotFound      LedgerErrorCode = "LGR-010001"
	ErrCodeInvalidLedgerAmount      LedgerErrorCode = "LGR-010002"
	ErrCodeInvalidLedgerType        LedgerErrorCode = "LGR-010003"
	ErrCodeInvalidLedgerCategory    LedgerErrorCode = "LGR-010004"
	ErrCodeInvalidPaymentMethod     LedgerErrorCode = "LGR-010005"
	ErrCodeFutureRecordedDate       LedgerErrorCode = "LGR-010006"
	ErrCodeInvalidLedgerDateRange   LedgerErrorCode = "LGR-010007"
	ErrCodeUnauthorizedLedgerAccess LedgerErrorCode = "LGR-010008"
	ErrCodeMissingLedgerFields      LedgerErrorCode = "LGR-010009"

	// Persistence errors (02XXXX)
	ErrCodeDuplicateExecution LedgerErrorCode = "LGR-020001"
)

// LedgerError represents a ledger error with code and message.
type LedgerError struct {
	Code    LedgerErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *LedgerError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *LedgerError) Unwrap() error {
	return e.Err
}

// NewLedgerError creates a new LedgerError with the given code and message.
func NewLedgerError(code LedgerErrorCode, message string, err error) *LedgerError {
	return &LedgerError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
