// Package error defines domain-specific errors for the Taxable Tracker application.
package error

import "errors"

// Report domain errors.
var (
	// ErrInvalidReportYear is returned when the report year is missing or out of range.
	ErrInvalidReportYear = errors.New("invalid report year")

	// ErrInvalidReportSource is returned when the source filter is outside the
	// permitted set and not "all".
	ErrInvalidReportSource = errors.New("invalid report source filter")
)

// ReportErrorCode defines error codes for report errors.
// Format: RPT-XXYYYY where XX is category and YYYY is specific error.
type ReportErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidReportYear   ReportErrorCode = "RPT-010001"
	ErrCodeInvalidReportSource ReportErrorCode = "RPT-010002"
)

// ReportError represents a report error with code and message.
type ReportError struct {
	Code    ReportErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ReportError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ReportError) Unwrap() error {
	return e.Err
}

// NewReportError creates a new ReportError with the given code and message.
func NewReportError(code ReportErrorCode, message string, err error) *ReportError {
	return &ReportError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
