// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/taxable-tracker/backend/internal/domain/entity"
)

// FuelLogModel represents the fuel_logs table in the database.
type FuelLogModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Date        time.Time       `gorm:"type:date;not null;index"`
	Source      string          `gorm:"type:varchar(20);not null;index"`
	OdometerKM  int64           `gorm:"not null"`
	TotalCost   decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Notes       string          `gorm:"type:text"`
	ReceiptPath string          `gorm:"type:varchar(500)"`
	CreatedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for the FuelLogModel.
func (FuelLogModel) TableName() string {
	return "fuel_logs"
}

// ToEntity converts a FuelLogModel to a domain FuelLog entity.
func (m *FuelLogModel) ToEntity() *entity.FuelLog {
	return &entity.FuelLog{
		ID:          m.ID,
		Date:        m.Date,
		Source:      m.Source,
		OdometerKM:  m.OdometerKM,
		TotalCost:   m.TotalCost,
		Notes:       m.Notes,
		ReceiptPath: m.ReceiptPath,
		CreatedAt:   m.CreatedAt,
	}
}

// FuelLogFromEntity creates a FuelLogModel from a domain FuelLog entity.
func FuelLogFromEntity(fuelLog *entity.FuelLog) *FuelLogModel {
	return &FuelLogModel{
		ID:          fuelLog.ID,
		Date:        fuelLog.Date,
		Source:      fuelLog.Source,
		OdometerKM:  fuelLog.OdometerKM,
		TotalCost:   fuelLog.TotalCost,
		Notes:       fuelLog.Notes,
		ReceiptPath: fuelLog.ReceiptPath,
		CreatedAt:   fuelLog.CreatedAt,
	}
}
