// Package error defines domain-specific errors for the ledger application.
package error

import "errors"

// Statistics domain errors.
var (
	// ErrMissingStatsStartDate is returned when the start date is absent.
	ErrMissingStatsStartDate = errors.New("start date is required")

	// ErrMissingStatsEndDate is returned when the end date is absent.
	ErrMissingStatsEndDate = errors.New("end date is required")

	// ErrInvalidStatsDateRange is returned when the start date is after the end date.
	ErrInvalidStatsDateRange = errors.New("start date must not be after end date")

	// ErrInvalidTopLimit is returned when the top-N limit is less than one.
	ErrInvalidTopLimit = errors.New("limit must be at least 1")
)

// StatisticsErrorCode defines error codes for statistics errors.
// Format: STT-XXYYYY where XX is category and YYYY is specific error.
type StatisticsErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeMissingStatsStartDate StatisticsErrorCode = "STT-010001"
	ErrCodeMissingStatsEndDate   StatisticsErrorCode = "STT-010002"
	ErrCodeInvalidStatsDateRange StatisticsErrorCode = "STT-010003"
	ErrCodeInvalidTopLimit       StatisticsErrorCode = "STT-010004"
)

// StatisticsError represents a statistics error with code and message.
type StatisticsError struct {
	Code    StatisticsErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *StatisticsError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *StatisticsError) Unwrap() error {
	return e.Err
}

// NewStatisticsError creates a new StatisticsError with the given code and message.
func NewStatisticsError(code StatisticsErrorCode, message string, err error) *StatisticsError {
	return &StatisticsError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
