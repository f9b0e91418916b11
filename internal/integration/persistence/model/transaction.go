// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/taxable-tracker/backend/internal/domain/entity"
)

// TransactionModel represents the transactions table in the database.
type TransactionModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Date        time.Time       `gorm:"type:date;not null;index"`
	Type        string          `gorm:"type:varchar(10);not null;index"`
	Source      string          `gorm:"type:varchar(20);not null;index"`
	Category    string          `gorm:"type:varchar(100);not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Vendor      string          `gorm:"type:varchar(255)"`
	Notes       string          `gorm:"type:text"`
	ReceiptPath string          `gorm:"type:varchar(500)"`
	CreatedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for the TransactionModel.
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToEntity converts a TransactionModel to a domain Transaction entity.
func (m *TransactionModel) ToEntity() *entity.Transaction {
	return &entity.Transaction{
		ID:          m.ID,
		Date:        m.Date,
		Type:        entity.TransactionType(m.Type),
		Source:      m.Source,
		Category:    m.Category,
		Amount:      m.Amount,
		Vendor:      m.Vendor,
		Notes:       m.Notes,
		ReceiptPath: m.ReceiptPath,
		CreatedAt:   m.CreatedAt,
	}
}

// TransactionFromEntity creates a TransactionModel from a domain Transaction entity.
func TransactionFromEntity(transaction *entity.Transaction) *TransactionModel {
	return &TransactionModel{
		ID:          transaction.ID,
		Date:        transaction.Date,
		Type:        string(transaction.Type),
		Source:      transaction.Source,
		Category:    transaction.Category,
		Amount:      transaction.Amount,
		Vendor:      transaction.Vendor,
		Notes:       transaction.Notes,
		ReceiptPath: transaction.ReceiptPath,
		CreatedAt:   transaction.CreatedAt,
	}
}
