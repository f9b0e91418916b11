// Package fuellog contains fuel log use cases and the fuel economy derivation.
package fuellog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/taxable-tracker/backend/internal/application/adapter"
	"github.com/taxable-tracker/backend/internal/domain/entity"
	domainerror "github.com/taxable-tracker/backend/internal/domain/error"
)

// MaxFuelNotesLength is the maximum allowed length for fuel log notes.
const MaxFuelNotesLength = 1000

// CreateFuelLogInput represents the input for fuel log creation.
type CreateFuelLogInput struct {
	Date        time.Time
	Source      string
	OdometerKM  int64
	TotalCost   decimal.Decimal
	Notes       string
	ReceiptPath string
}

// CreateFuelLogOutput represents the output of fuel log creation.
type CreateFuelLogOutput struct {
	FuelLog *entity.FuelLog
}

// CreateFuelLogUseCase handles fuel log creation logic.
// Odometer monotonicity is deliberately not validated here; the economy
// derivation tolerates non-increasing readings at read time.
type CreateFuelLogUseCase struct {
	fuelLogRepo          adapter.FuelLogRepository
	allowedSources       []string
	allowNegativeAmounts bool
}

// NewCreateFuelLogUseCase creates a new CreateFuelLogUseCase instance.
func NewCreateFuelLogUseCase(
	fuelLogRepo adapter.FuelLogRepository,
	allowedSources []string,
	allowNegativeAmounts bool,
) *CreateFuelLogUseCase {
	return &CreateFuelLogUseCase{
		fuelLogRepo:          fuelLogRepo,
		allowedSources:       allowedSources,
		allowNegativeAmounts: allowNegativeAmounts,
	}
}

// Execute performs the fuel log creation.
func (uc *CreateFuelLogUseCase) Execute(ctx context.Context, input CreateFuelLogInput) (*CreateFuelLogOutput, error) {
	if input.Date.IsZero() {
		return nil, domainerror.NewFuelLogError(
			domainerror.ErrCodeInvalidFuelLogDate,
			"fill date is required",
			domainerror.ErrInvalidFuelLogDate,
		)
	}

	if !isAllowedSource(input.Source, uc.allowedSources) {
		return nil, domainerror.NewFuelLogError(
			domainerror.ErrCodeInvalidFuelLogSource,
			fmt.Sprintf("source must be one of: %s", strings.Join(uc.allowedSources, ", ")),
			domainerror.ErrInvalidSource,
		)
	}

	if input.OdometerKM < 0 {
		return nil, domainerror.NewFuelLogError(
			domainerror.ErrCodeNegativeOdometer,
			"odometer reading must not be negative",
			domainerror.ErrNegativeOdometer,
		)
	}

	if input.TotalCost.IsNegative() && !uc.allowNegativeAmounts {
		return nil, domainerror.NewFuelLogError(
			domainerror.ErrCodeNegativeFuelCost,
			"total cost must not be negative",
			domainerror.ErrNegativeFuelCost,
		)
	}

	if len(input.Notes) > MaxFuelNotesLength {
		return nil, domainerror.NewFuelLogError(
			domainerror.ErrCodeMissingFuelLogFields,
			fmt.Sprintf("notes must not exceed %d characters", MaxFuelNotesLength),
			nil,
		)
	}

	fuelLog := entity.NewFuelLog(
		input.Date,
		input.Source,
		input.OdometerKM,
		input.TotalCost,
		input.Notes,
		input.ReceiptPath,
	)

	if err := uc.fuelLogRepo.Create(ctx, fuelLog); err != nil {
		return nil, fmt.Errorf("failed to create fuel log: %w", err)
	}

	return &CreateFuelLogOutput{
		FuelLog: fuelLog,
	}, nil
}

// isAllowedSource reports whether source is a member of the configured set.
func isAllowedSource(source string, allowed []string) bool {
	for _, s := range allowed {
		if source == s {
			return true
		}
	}
	return false
}
