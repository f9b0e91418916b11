// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/taxable-tracker/backend/internal/application/adapter"
	"github.com/taxable-tracker/backend/internal/domain/entity"
	"github.com/taxable-tracker/backend/internal/integration/persistence/model"
)

// fuelLogRepository implements the adapter.FuelLogRepository interface.
type fuelLogRepository struct {
	db *gorm.DB
}

// NewFuelLogRepository creates a new fuel log repository instance.
func NewFuelLogRepository(db *gorm.DB) adapter.FuelLogRepository {
	return &fuelLogRepository{
		db: db,
	}
}

// Create creates a new fuel log in the database.
func (r *fuelLogRepository) Create(ctx context.Context, fuelLog *entity.FuelLog) error {
	fuelLogModel := model.FuelLogFromEntity(fuelLog)
	result := r.db.WithContext(ctx).Create(fuelLogModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByFilter retrieves fuel logs matching the filter, ordered by fill
// date ascending with creation time and ID as tiebreakers.
func (r *fuelLogRepository) FindByFilter(ctx context.Context, filter adapter.RecordFilter) ([]*entity.FuelLog, error) {
	var fuelLogModels []model.FuelLogModel

	query := r.db.WithContext(ctx).Model(&model.FuelLogModel{})
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
		Find(&fuelLogModels)
	if result.Error != nil {
		return nil, result.Error
	}

	fuelLogs := make([]*entity.FuelLog, len(fuelLogModels))
	for i, fm := range fuelLogModels {
		fuelLogs[i] = fm.ToEntity()
	}
	return fuelLogs, nil
}
