// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/taxable-tracker/backend/internal/domain/entity"
)

// CreateFuelLogRequest represents the request body for fuel log creation.
type CreateFuelLogRequest struct {
	Date        string  `json:"date" binding:"required"`
	Source      string  `json:"source,omitempty"`
	OdometerKM  int64   `json:"odometer_km"`
	TotalCost   float64 `json:"total_cost"`
	Notes       string  `json:"notes,omitempty" binding:"omitempty,max=1000"`
	ReceiptPath string  `json:"receipt_path,omitempty" binding:"omitempty,max=500"`
}

// FuelLogResponse represents a single fuel log in API responses.
// DistanceKM and CostPerKM are omitted for the first fill-up and for
// entries whose odometer did not advance.
type FuelLogResponse struct {
	ID          string    `json:"id"`
	Date        string    `json:"date"`
	Source      string    `json:"source"`
	OdometerKM  int64     `json:"odometer_km"`
	TotalCost   string    `json:"total_cost"`
	DistanceKM  *int64    `json:"distance_km,omitempty"`
	CostPerKM   *string   `json:"cost_per_km,omitempty"`
	Notes       string    `json:"notes"`
	ReceiptPath string    `json:"receipt_path,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// FuelLogListResponse represents the response for listing fuel logs.
type FuelLogListResponse struct {
	FuelLogs []FuelLogResponse `json:"fuel_logs"`
	Total    int               `json:"total"`
}

// ToFuelLogResponse converts a FuelLog entity to a FuelLogResponse DTO
// without derived metrics.
func ToFuelLogResponse(f *entity.FuelLog) FuelLogResponse {
	return FuelLogResponse{
		ID:          f.ID.String(),
		Date:        f.Date.Format("2006-01-02"),
		Source:      f.Source,
		OdometerKM:  f.OdometerKM,
		TotalCost:   f.TotalCost.StringFixed(2),
		Notes:       f.Notes,
		ReceiptPath: f.ReceiptPath,
		CreatedAt:   f.CreatedAt,
	}
}

// ToFuelLogListResponse converts derived fuel log entries to a list response.
func ToFuelLogListResponse(fuelLogs []*entity.FuelLogWithEconomy) FuelLogListResponse {
	items := make([]FuelLogResponse, len(fuelLogs))
	for i, f := range fuelLogs {
		item := ToFuelLogResponse(f.FuelLog)
		item.DistanceKM = f.DistanceKM
		if f.CostPerKM != nil {
			costPerKM := f.CostPerKM.StringFixed(3)
			item.CostPerKM = &costPerKM
		}
		items[i] = item
	}
	return FuelLogListResponse{
		FuelLogs: items,
		Total:    len(items),
	}
}
