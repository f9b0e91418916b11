// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"fmt"
	"time"

	"github.com/taxable-tracker/backend/internal/application/adapter"
	"github.com/taxable-tracker/backend/internal/domain/entity"
)

// ListTransactionsInput represents the input for listing transactions.
// Year of zero means no date restriction. Source of "" or "all" means no
// source filter. Limit of zero means no cap; a positive limit keeps the
// most recent rows (used by the home view).
type ListTransactionsInput struct {
	Year   int
	Source string
	Limit  int
}

// ListTransactionsOutput represents the result of listing transactions.
type ListTransactionsOutput struct {
	Transactions []*entity.Transaction
}

// ListTransactionsUseCase handles transaction listing logic.
type ListTransactionsUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewListTransactionsUseCase creates a new ListTransactionsUseCase instance.
func NewListTransactionsUseCase(transactionRepo adapter.TransactionRepository) *ListTransactionsUseCase {
	return &ListTransactionsUseCase{
		transactionRepo: transactionRepo,
	}
}

// Execute retrieves transactions, newest first.
func (uc *ListTransactionsUseCase) Execute(ctx context.Context, input ListTransactionsInput) (*ListTransactionsOutput, error) {
	filter := adapter.RecordFilter{}
	if input.Year > 0 {
		start, end := YearRange(input.Year)
		filter.StartDate = &start
		filter.EndDate = &end
	}
	if input.Source != "" && input.Source != entity.SourceAll {
		filter.Source = input.Source
	}

	transactions, err := uc.transactionRepo.FindByFilter(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	// Repository order is oldest first; the listing view wants newest first.
	reversed := make([]*entity.Transaction, len(transactions))
	for i, t := range transactions {
		reversed[len(transactions)-1-i] = t
	}

	if input.Limit > 0 && len(reversed) > input.Limit {
		reversed = reversed[:input.Limit]
	}

	return &ListTransactionsOutput{
		Transactions: reversed,
	}, nil
}

// YearRange returns the half-open interval [Jan 1 of year, Jan 1 of year+1)
// in UTC.
func YearRange(year int) (time.Time, time.Time) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year+1, time.January, 1, 0, 0, 0, 0, time.UTC)
	return start, end
}
