// Package error defines domain-specific errors for the ledger application.
package error

import "errors"

// Recurring transaction domain errors.
var (
	// ErrRecurringNotFound is returned when a recurring rule is not found or soft-deleted.
	ErrRecurringNotFound = errors.New("recurring transaction not found")

	// ErrInvalidRecurrencePattern is returned when the pattern is unknown.
	ErrInvalidRecurrencePattern = errors.New("invalid recurrence pattern")

	// ErrInvalidRecurrenceInterval is returned when the interval is less than one.
	ErrInvalidRecurrenceInterval = errors.New("recurrence interval must be at least 1")

	// ErrInvalidExecutionDay is returned when executionDayOfMonth is outside 1-31.
	ErrInvalidExecutionDay = errors.New("execution day of month must be between 1 and 31")

	// ErrInvalidRecurringAmount is returned when the amount is zero or negative.
	ErrInvalidRecurringAmount = errors.New("invalid recurring amount")

	// ErrInvalidRecurringDateRange is returned when the end date precedes the start date.
	ErrInvalidRecurringDateRange = errors.New("invalid recurring date range")

	// ErrUnauthorizedRecurringAccess is returned when the rule belongs to another user.
	ErrUnauthorizedRecurringAccess = errors.New("unauthorized access to recurring transaction")
)

// RecurringErrorCode defines error codes for recurring transaction errors.
// Format: RCR-XXYYYY where XX is category and YYYY is specific error.
type RecurringErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeRecurringNotFound           RecurringErrorCode = "RCR-010001"
	ErrCodeInvalidRecurrencePattern    RecurringErrorCode = "RCR-010002"
	ErrCodeInvalidRecurrenceInterval   RecurringErrorCode = "RCR-010003"
	ErrCodeInvalidExecutionDay         RecurringErrorCode = "RCR-010004"
	ErrCodeInvalidRecurringAmount      RecurringErrorCode = "RCR-010005"
	ErrCodeInvalidRecurringDateRange   RecurringErrorCode = "RCR-010006"
	ErrCodeUnauthorizedRecurringAccess RecurringErrorCode = "RCR-010007"
	ErrCodeMissingRecurringFields      RecurringErrorCode = "RCR-010008"
)

// RecurringError represents a recurring transaction error with code and message.
type RecurringError struct {
	Code    RecurringErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *RecurringError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *RecurringError) Unwrap() error {
	return e.Err
}

// NewRecurringError creates a new RecurringError with the given code and message.
func NewRecurringError(code RecurringErrorCode, message string, err error) *RecurringError {
	return &RecurringError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
