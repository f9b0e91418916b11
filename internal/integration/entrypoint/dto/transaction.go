// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/taxable-tracker/backend/internal/domain/entity"
)

// CreateTransactionRequest represents the request body for transaction creation.
type CreateTransactionRequest struct {
	Date        string  `json:"date" binding:"required"`
	Type        string  `json:"type" binding:"required,oneof=expense income"`
	Source      string  `json:"source" binding:"required"`
	Category    string  `json:"category" binding:"required"`
	Amount      float64 `json:"amount"`
	Vendor      string  `json:"vendor,omitempty" binding:"omitempty,max=255"`
	Notes       string  `json:"notes,omitempty" binding:"omitempty,max=1000"`
	ReceiptPath string  `json:"receipt_path,omitempty" binding:"omitempty,max=500"`
}

// TransactionResponse represents a single transaction in API responses.
// Amounts are formatted with exactly two decimal places.
type TransactionResponse struct {
	ID          string    `json:"id"`
	Date        string    `json:"date"`
	Type        string    `json:"type"`
	Source      string    `json:"source"`
	Category    string    `json:"category"`
	Amount      string    `json:"amount"`
	Vendor      string    `json:"vendor"`
	Notes       string    `json:"notes"`
	ReceiptPath string    `json:"receipt_path,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// TransactionListResponse represents the response for listing transactions.
type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Total        int                   `json:"total"`
}

// ToTransactionResponse converts a Transaction entity to a TransactionResponse DTO.
func ToTransactionResponse(txn *entity.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:          txn.ID.String(),
		Date:        txn.Date.Format("2006-01-02"),
		Type:        string(txn.Type),
		Source:      txn.Source,
		Category:    txn.Category,
		Amount:      txn.Amount.StringFixed(2),
		Vendor:      txn.Vendor,
		Notes:       txn.Notes,
		ReceiptPath: txn.ReceiptPath,
		CreatedAt:   txn.CreatedAt,
	}
}

// ToTransactionListResponse converts transaction entities to a list response.
func ToTransactionListResponse(transactions []*entity.Transaction) TransactionListResponse {
	items := make([]TransactionResponse, len(transactions))
	for i, t := range transactions {
		items[i] = ToTransactionResponse(t)
	}
	return TransactionListResponse{
		Transactions: items,
		Total:        len(items),
	}
}
