// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/taxable-tracker/backend/internal/application/adapter"
	"github.com/taxable-tracker/backend/internal/domain/entity"
	"github.com/taxable-tracker/backend/internal/integration/persistence/model"
)

// transactionRepository implements the adapter.TransactionRepository interface.
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository instance.
func NewTransactionRepository(db *gorm.DB) adapter.TransactionRepository {
	return &transactionRepository{
		db: db,
	}
}

// Create creates a new transaction in the database.
func (r *transactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	transactionModel := model.TransactionFromEntity(transaction)
	result := r.db.WithContext(ctx).Create(transactionModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByFilter retrieves transactions matching the filter, ordered by date
// ascending with creation time and ID as tiebreakers so results are
// deterministic for a fixed input.
func (r *transactionRepository) FindByFilter(ctx context.Context, filter adapter.RecordFilter) ([]*entity.Transaction, error) {
	var transactionModels []model.TransactionModel

	query := r.db.WithContext(ctx).Model(&model.TransactionModel{})
	if filter.StartDate != nil {
		query = query.Where("date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("date < ?", *filter.EndDate)
	}
	if filter.Source != "" {
		query = query.Where("source = ?", filter.Source)
	}

	result := query.
		Order("date ASC").
		Order("created_at ASC").
		Order("id ASC").
		Find(&transactionModels)
	if result.Error != nil {
		return nil, result.Error
	}

	transactions := make([]*entity.Transaction, len(transactionModels))
	for i, tm := range transactionModels {
		transactions[i] = tm.ToEntity()
	}
	return transactions, nil
}
