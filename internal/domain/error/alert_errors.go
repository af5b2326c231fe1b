// Package error defines domain-specific errors for the ledger application.
package error

import "errors"

// Alert delivery errors.
var (
	// ErrAlertDeliveryFailed is returned when a budget alert could not be delivered.
	ErrAlertDeliveryFailed = errors.New("alert delivery failed")
)

// AlertErrorCode defines error codes for alert delivery errors.
// Format: ALT-XXYYYY where XX is category and YYYY is specific error.
type AlertErrorCode string

const (
	// Delivery errors (01XXXX)
	ErrCodeTemporaryAlertFailure AlertErrorCode = "ALT-010001"
	ErrCodePermanentAlertFailure AlertErrorCode = "ALT-010002"
)

// AlertError represents an alert delivery error with code and message.
type AlertError struct {
	Code    AlertErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AlertError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AlertError) Unwrap() error {
	return e.Err
}

// NewAlertError creates a new AlertError with the given code and message.
func NewAlertError(code AlertErrorCode, message string, err error) *AlertError {
	return &AlertError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
