// Package adapter defines interfaces for external dependencies (repositories, services).
package adapter

import (
	"context"
	"time"

	"github.com/taxable-tracker/backend/internal/domain/entity"
)

// RecordFilter restricts listing to a date range and/or source tag.
// StartDate is inclusive, EndDate exclusive. A nil date bound means
// unbounded; an empty Source means no source filter.
type RecordFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Source    string
}

// TransactionRepository defines the interface for transaction data operations.
// Implementations return rows ordered by date ascending with creation order
// as tiebreaker, so listings and exports are deterministic for a fixed input.
type TransactionRepository interface {
	// Create persists a new transaction.
	Create(ctx context.Context, transaction *entity.Transaction) error

	// FindByFilter retrieves transactions matching the filter.
	FindByFilter(ctx context.Context, filter RecordFilter) ([]*entity.Transaction, error)
}
