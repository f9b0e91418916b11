// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FuelLog represents a single vehicle fuel fill-up.
// Odometer readings are expected to increase over time but this is not
// validated at write time; the economy derivation tolerates violations.
type FuelLog struct {
	ID          uuid.UUID
	Date        time.Time // fill date, no time component
	Source      string
	OdometerKM  int64
	TotalCost   decimal.Decimal
	Notes       string
	ReceiptPath string
	CreatedAt   time.Time
}

// NewFuelLog creates a new FuelLog entity.
func NewFuelLog(
	date time.Time,
	source string,
	odometerKM int64,
	totalCost decimal.Decimal,
	notes string,
	receiptPath string,
) *FuelLog {
	return &FuelLog{
		ID:          uuid.New(),
		Date:        date,
		Source:      source,
		OdometerKM:  odometerKM,
		TotalCost:   totalCost,
		Notes:       notes,
		ReceiptPath: receiptPath,
		CreatedAt:   time.Now().UTC(),
	}
}

// FuelLogWithEconomy pairs a fuel log with its derived economy metrics.
// DistanceKM and CostPerKM are nil for the first fill-up in date order and
// whenever the odometer did not advance past the previous reading.
type FuelLogWithEconomy struct {
	FuelLog    *FuelLog
	DistanceKM *int64
	CostPerKM  *decimal.Decimal // cost per kilometer, rounded to 3 decimals
}
