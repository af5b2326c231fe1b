// Package error defines domain-specific errors for the ledger application.
package error

import "errors"

// Budget domain errors.
var (
	// ErrBudgetNotFound is returned when a budget is not found or soft-deleted.
	ErrBudgetNotFound = errors.New("budget not found")

	// ErrDuplicateBudgetPeriod is returned when an active budget for the same
	// user and category already covers an overlapping date range.
	ErrDuplicateBudgetPeriod = errors.New("a budget for this category already exists in the period")

	// ErrInvalidBudgetAmount is returned when the budget amount is zero or negative.
	ErrInvalidBudgetAmount = errors.New("invalid budget amount")

	// ErrInvalidBudgetDateRange is returned when the start date is after the end date.
	ErrInvalidBudgetDateRange = errors.New("invalid budget date range")

	// ErrInvalidBudgetPeriod is returned when the period is not weekly, monthly, or yearly.
	ErrInvalidBudgetPeriod = errors.New("invalid budget period")

	// ErrUnauthorizedBudgetAccess is returned when the budget belongs to another user.
	ErrUnauthorizedBudgetAccess = errors.New("unauthorized access to budget")
)

// BudgetErrorCode defines error codes for budget errors.
// Format: BGT-XXYYYY where XX is category and YYYY is specific error.
type BudgetErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeBudgetNotFound           BudgetErrorCode = "BGT-010001"
	ErrCodeDuplicateBudgetPeriod    BudgetErrorCode = "BGT-010002"
	ErrCodeInvalidBudgetAmount      BudgetErrorCode = "BGT-010003"
	ErrCodeInvalidBudgetDateRange   BudgetErrorCode = "BGT-010004"
	ErrCodeInvalidBudgetPeriod      BudgetErrorCode = "BGT-010005"
	ErrCodeUnauthorizedBudgetAccess BudgetErrorCode = "BGT-010006"
	ErrCodeMissingBudgetFields      BudgetErrorCode = "BGT-010007"
)

// BudgetError represents a budget error with code and message.
type BudgetError struct {
	Code    BudgetErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *BudgetError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *BudgetError) Unwrap() error {
	return e.Err
}

// NewBudgetError creates a new BudgetError with the given code and message.
func NewBudgetError(code BudgetErrorCode, message string, err error) *BudgetError {
	return &BudgetError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
