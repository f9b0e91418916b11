// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/taxable-tracker/backend/internal/application/adapter"
	"github.com/taxable-tracker/backend/internal/domain/entity"
	domainerror "github.com/taxable-tracker/backend/internal/domain/error"
)

const (
	// MaxVendorLength is the maximum allowed length for the vendor field.
	MaxVendorLength = 255
	// MaxNotesLength is the maximum allowed length for transaction notes.
	MaxNotesLength = 1000
)

// CreateTransactionInput represents the input for transaction creation.
type CreateTransactionInput struct {
	Date        time.Time
	Type        entity.TransactionType
	Source      string
	Category    string
	Amount      decimal.Decimal
	Vendor      string
	Notes       string
	ReceiptPath string
}

// CreateTransactionOutput represents the output of transaction creation.
type CreateTransactionOutput struct {
	Transaction *entity.Transaction
}

// CreateTransactionUseCase handles transaction creation logic.
// All validation happens here, before the record enters the store; the
// aggregation layer assumes well-formed records.
type CreateTransactionUseCase struct {
	transactionRepo      adapter.TransactionRepository
	allowedSources       []string
	allowNegativeAmounts bool
}

// NewCreateTransactionUseCase creates a new CreateTransactionUseCase instance.
func NewCreateTransactionUseCase(
	transactionRepo adapter.TransactionRepository,
	allowedSources []string,
	allowNegativeAmounts bool,
) *CreateTransactionUseCase {
	return &CreateTransactionUseCase{
		transactionRepo:      transactionRepo,
		allowedSources:       allowedSources,
		allowNegativeAmounts: allowNegativeAmounts,
	}
}

// Execute performs the transaction creation.
func (uc *CreateTransactionUseCase) Execute(ctx context.Context, input CreateTransactionInput) (*CreateTransactionOutput, error) {
	if input.Date.IsZero() {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionDate,
			"date is required",
			domainerror.ErrInvalidTransactionDate,
		)
	}

	if !isValidTransactionType(input.Type) {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionType,
			"transaction type must be 'expense' or 'income'",
			domainerror.ErrInvalidTransactionType,
		)
	}

	if !isAllowedSource(input.Source, uc.allowedSources) {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidSource,
			fmt.Sprintf("source must be one of: %s", strings.Join(uc.allowedSources, ", ")),
			domainerror.ErrInvalidSource,
		)
	}

	category := strings.TrimSpace(input.Category)
	if category == "" {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeMissingCategory,
			"category is required",
			domainerror.ErrMissingCategory,
		)
	}

	if input.Amount.IsNegative() && !uc.allowNegativeAmounts {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeNegativeAmount,
			"amount must not be negative",
			domainerror.ErrNegativeAmount,
		)
	}

	if len(input.Vendor) > MaxVendorLength {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeMissingTransactionFields,
			fmt.Sprintf("vendor must not exceed %d characters", MaxVendorLength),
			nil,
		)
	}
	if len(input.Notes) > MaxNotesLength {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeMissingTransactionFields,
			fmt.Sprintf("notes must not exceed %d characters", MaxNotesLength),
			nil,
		)
	}

	transaction := entity.NewTransaction(
		input.Date,
		input.Type,
		input.Source,
		category,
		input.Amount,
		input.Vendor,
		input.Notes,
		input.ReceiptPath,
	)

	if err := uc.transactionRepo.Create(ctx, transaction); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	return &CreateTransactionOutput{
		Transaction: transaction,
	}, nil
}

// isValidTransactionType validates the transaction type.
func isValidTransactionType(transactionType entity.TransactionType) bool {
	return transactionType == entity.TransactionTypeExpense || transactionType == entity.TransactionTypeIncome
}

// isAllowedSource reports whether source is a member of the configured set.
func isAllowedSource(source string, allowed []string) bool {
	for _, s := range allowed {
		if source == s {
			return true
		}
	}
	return false
}
