// Package error defines domain-specific errors for the Taxable Tracker application.
package error

import "errors"

// Transaction domain errors.
var (
	// ErrInvalidTransactionType is returned when the transaction type is not income or expense.
	ErrInvalidTransactionType = errors.New("invalid transaction type")

	// ErrInvalidSource is returned when the source tag is outside the permitted set.
	ErrInvalidSource = errors.New("invalid source tag")

	// ErrInvalidTransactionDate is returned when the transaction date is malformed or missing.
	ErrInvalidTransactionDate = errors.New("invalid transaction date")

	// ErrNegativeAmount is returned when a negative amount is submitted while
	// negative amounts are disallowed.
	ErrNegativeAmount = errors.New("negative amount not allowed")

	// ErrMissingCategory is returned when the transaction category is empty.
	ErrMissingCategory = errors.New("missing transaction category")
)

// TransactionErrorCode defines error codes for transaction errors.
// Format: TXN-XXYYYY where XX is category and YYYY is specific error.
type TransactionErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidTransactionType   TransactionErrorCode = "TXN-010001"
	ErrCodeInvalidSource            TransactionErrorCode = "TXN-010002"
	ErrCodeInvalidTransactionDate   TransactionErrorCode = "TXN-010003"
	ErrCodeNegativeAmount           TransactionErrorCode = "TXN-010004"
	ErrCodeMissingCategory          TransactionErrorCode = "TXN-010005"
	ErrCodeMissingTransactionFields TransactionErrorCode = "TXN-010006"
)

// TransactionError represents a transaction error with code and message.
type TransactionError struct {
	Code    TransactionErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *TransactionError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *TransactionError) Unwrap() error {
	return e.Err
}

// NewTransactionError creates a new TransactionError with the given code and message.
func NewTransactionError(code TransactionErrorCode, message string, err error) *TransactionError {
	return &TransactionError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
