// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType represents the type of transaction (expense or income).
type TransactionType string

const (
	TransactionTypeExpense TransactionType = "expense"
	TransactionTypeIncome  TransactionType = "income"
)

// SourceAll is the sentinel source filter value meaning "no filter".
const SourceAll = "all"

// Transaction represents a single income or expense record.
// Transactions are append-only: once created they are never updated or
// deleted.
type Transaction struct {
	ID          uuid.UUID
	Date        time.Time // calendar date, no time component
	Type        TransactionType
	Source      string // closed-set tag, e.g. rental/work/personal
	Category    string // soft reference to Category.Name
	Amount      decimal.Decimal
	Vendor      string
	Notes       string
	ReceiptPath string
	CreatedAt   time.Time
}

// NewTransaction creates a new Transaction entity.
func NewTransaction(
	date time.Time,
	transactionType TransactionType,
	source string,
	category string,
	amount decimal.Decimal,
	vendor string,
	notes string,
	receiptPath string,
) *Transaction {
	return &Transaction{
		ID:          uuid.New(),
		Date:        date,
		Type:        transactionType,
		Source:      source,
		Category:    category,
		Amount:      amount,
		Vendor:      vendor,
		Notes:       notes,
		ReceiptPath: receiptPath,
		CreatedAt:   time.Now().UTC(),
	}
}
