// Package adapter defines interfaces for external dependencies (repositories, services).
package adapter

import (
	"context"

	"github.com/taxable-tracker/backend/internal/domain/entity"
)

// FuelLogRepository defines the interface for fuel log data operations.
// Implementations return rows ordered by fill date ascending with creation
// order as tiebreaker.
type FuelLogRepository interface {
	// Create persists a new fuel log.
	Create(ctx context.Context, fuelLog *entity.FuelLog) error

	// FindByFilter retrieves fuel logs matching the filter.
	FindByFilter(ctx context.Context, filter RecordFilter) ([]*entity.FuelLog, error)
}
