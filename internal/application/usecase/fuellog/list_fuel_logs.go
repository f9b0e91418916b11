// Package fuellog contains fuel log use cases and the fuel economy derivation.
package fuellog

import (
	"context"
	"fmt"
	"time"

	"github.com/taxable-tracker/backend/internal/application/adapter"
	"github.com/taxable-tracker/backend/internal/domain/entity"
)

// ListFuelLogsInput represents the input for listing fuel logs.
// Year of zero means no date restriction; Source of "" or "all" means no
// source filter.
type ListFuelLogsInput struct {
	Year        int
	Source      string
	NewestFirst bool
}

// ListFuelLogsOutput represents the result of listing fuel logs with their
// derived economy metrics.
type ListFuelLogsOutput struct {
	FuelLogs []*entity.FuelLogWithEconomy
}

// ListFuelLogsUseCase handles fuel log listing with economy derivation.
type ListFuelLogsUseCase struct {
	fuelLogRepo adapter.FuelLogRepository
}

// NewListFuelLogsUseCase creates a new ListFuelLogsUseCase instance.
func NewListFuelLogsUseCase(fuelLogRepo adapter.FuelLogRepository) *ListFuelLogsUseCase {
	return &ListFuelLogsUseCase{
		fuelLogRepo: fuelLogRepo,
	}
}

// Execute retrieves fuel logs and derives distance and cost-per-kilometer
// for each entry.
func (uc *ListFuelLogsUseCase) Execute(ctx context.Context, input ListFuelLogsInput) (*ListFuelLogsOutput, error) {
	filter := adapter.RecordFilter{}
	if input.Year > 0 {
		start := time.Date(input.Year, time.January, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(input.Year+1, time.January, 1, 0, 0, 0, 0, time.UTC)
		filter.StartDate = &start
		filter.EndDate = &end
	}
	if input.Source != "" && input.Source != entity.SourceAll {
		filter.Source = input.Source
	}

	logs, err := uc.fuelLogRepo.FindByFilter(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list fuel logs: %w", err)
	}

	return &ListFuelLogsOutput{
		FuelLogs: DeriveEconomy(logs, input.NewestFirst),
	}, nil
}
