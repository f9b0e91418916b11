// Package error defines domain-specific errors for the Taxable Tracker application.
package error

import "errors"

// Fuel log domain errors.
var (
	// ErrInvalidFuelLogDate is returned when the fill date is malformed or missing.
	ErrInvalidFuelLogDate = errors.New("invalid fuel log date")

	// ErrNegativeOdometer is returned when the odometer reading is negative.
	ErrNegativeOdometer = errors.New("odometer reading must not be negative")

	// ErrNegativeFuelCost is returned when a negative total cost is submitted
	// while negative amounts are disallowed.
	ErrNegativeFuelCost = errors.New("negative fuel cost not allowed")
)

// FuelLogErrorCode defines error codes for fuel log errors.
// Format: FUEL-XXYYYY where XX is category and YYYY is specific error.
type FuelLogErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidFuelLogDate   FuelLogErrorCode = "FUEL-010001"
	ErrCodeNegativeOdometer     FuelLogErrorCode = "FUEL-010002"
	ErrCodeNegativeFuelCost     FuelLogErrorCode = "FUEL-010003"
	ErrCodeInvalidFuelLogSource FuelLogErrorCode = "FUEL-010004"
	ErrCodeMissingFuelLogFields FuelLogErrorCode = "FUEL-010005"
)

// FuelLogError represents a fuel log error with code and message.
type FuelLogError struct {
	Code    FuelLogErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *FuelLogError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *FuelLogError) Unwrap() error {
	return e.Err
}

// NewFuelLogError creates a new FuelLogError with the given code and message.
func NewFuelLogError(code FuelLogErrorCode, message string, err error) *FuelLogError {
	return &FuelLogError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
