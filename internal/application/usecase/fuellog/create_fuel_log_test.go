// Package fuellog contains fuel log use cases and the fuel economy derivation.
package fuellog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/taxable-tracker/backend/internal/application/adapter"
	"github.com/taxable-tracker/backend/internal/domain/entity"
	domainerror "github.com/taxable-tracker/backend/internal/domain/error"
)

var testSources = []string{"rental", "work", "personal"}

// fakeFuelLogRepository records created fuel logs in memory.
type fakeFuelLogRepository struct {
	fuelLogs  []*entity.FuelLog
	createErr error
}

func (r *fakeFuelLogRepository) Create(ctx context.Context, fuelLog *entity.FuelLog) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.fuelLogs = append(r.fuelLogs, fuelLog)
	return nil
}

func (r *fakeFuelLogRepository) FindByFilter(ctx context.Context, filter adapter.RecordFilter) ([]*entity.FuelLog, error) {
	var result []*entity.FuelLog
	for _, f := range r.fuelLogs {
		if filter.StartDate != nil && f.Date.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && !f.Date.Before(*filter.EndDate) {
			continue
		}
		if filter.Source != "" && f.Source != filter.Source {
			continue
		}
		result = append(result, f)
	}
	return result, nil
}

func validFuelInput() CreateFuelLogInput {
	return CreateFuelLogInput{
		Date:       time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC),
		Source:     "personal",
		OdometerKM: 45230,
		TotalCost:  decimal.RequireFromString("62.40"),
	}
}

func fuelLogErrorCode(t *testing.T, err error) domainerror.FuelLogErrorCode {
	t.Helper()
	var fuelErr *domainerror.FuelLogError
	if !errors.As(err, &fuelErr) {
		t.Fatalf("expected a fuel log error, got %v", err)
	}
	return fuelErr.Code
}

func TestCreateFuelLogUseCase_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a valid fuel log", func(t *testing.T) {
		repo := &fakeFuelLogRepository{}
		useCase := NewCreateFuelLogUseCase(repo, testSources, false)

		output, err := useCase.Execute(ctx, validFuelInput())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.FuelLog == nil {
			t.Fatal("expected a fuel log in the output")
		}
		if len(repo.fuelLogs) != 1 {
			t.Errorf("expected 1 stored fuel log, got %d", len(repo.fuelLogs))
		}
	})

	t.Run("rejects a zero date", func(t *testing.T) {
		useCase := NewCreateFuelLogUseCase(&fakeFuelLogRepository{}, testSources, false)

		input := validFuelInput()
		input.Date = time.Time{}
		_, err := useCase.Execute(ctx, input)
		if code := fuelLogErrorCode(t, err); code != domainerror.ErrCodeInvalidFuelLogDate {
			t.Errorf("expected code %s, got %s", domainerror.ErrCodeInvalidFuelLogDate, code)
		}
	})

	t.Run("rejects a source outside the configured set", func(t *testing.T) {
		useCase := NewCreateFuelLogUseCase(&fakeFuelLogRepository{}, testSources, false)

		input := validFuelInput()
		input.Source = "fleet"
		_, err := useCase.Execute(ctx, input)
		if code := fuelLogErrorCode(t, err); code != domainerror.ErrCodeInvalidFuelLogSource {
			t.Errorf("expected code %s, got %s", domainerror.ErrCodeInvalidFuelLogSource, code)
		}
	})

	t.Run("rejects a negative odometer reading", func(t *testing.T) {
		useCase := NewCreateFuelLogUseCase(&fakeFuelLogRepository{}, testSources, false)

		input := validFuelInput()
		input.OdometerKM = -1
		_, err := useCase.Execute(ctx, input)
		if code := fuelLogErrorCode(t, err); code != domainerror.ErrCodeNegativeOdometer {
			t.Errorf("expected code %s, got %s", domainerror.ErrCodeNegativeOdometer, code)
		}
	})

	t.Run("accepts an odometer reading lower than the previous log", func(t *testing.T) {
		// Meter resets are resolved at read time, not rejected at write time.
		repo := &fakeFuelLogRepository{}
		useCase := NewCreateFuelLogUseCase(repo, testSources, false)

		first := validFuelInput()
		if _, err := useCase.Execute(ctx, first); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		second := validFuelInput()
		second.Date = first.Date.AddDate(0, 0, 7)
		second.OdometerKM = 100
		if _, err := useCase.Execute(ctx, second); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("rejects a negative cost by default", func(t *testing.T) {
		useCase := NewCreateFuelLogUseCase(&fakeFuelLogRepository{}, testSources, false)

		input := validFuelInput()
		input.TotalCost = decimal.RequireFromString("-5.00")
		_, err := useCase.Execute(ctx, input)
		if code := fuelLogErrorCode(t, err); code != domainerror.ErrCodeNegativeFuelCost {
			t.Errorf("expected code %s, got %s", domainerror.ErrCodeNegativeFuelCost, code)
		}
	})

	t.Run("allows a negative cost when configured", func(t *testing.T) {
		useCase := NewCreateFuelLogUseCase(&fakeFuelLogRepository{}, testSources, true)

		input := validFuelInput()
		input.TotalCost = decimal.RequireFromString("-5.00")
		if _, err := useCase.Execute(ctx, input); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

func TestListFuelLogsUseCase_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("derives economy for the filtered year", func(t *testing.T) {
		repo := &fakeFuelLogRepository{fuelLogs: []*entity.FuelLog{
			fuelLogAt(1, 100, "40.00"),
			fuelLogAt(8, 250, "30.00"),
			entity.NewFuelLog(time.Date(2023, time.December, 1, 0, 0, 0, 0, time.UTC), "personal", 50, decimal.RequireFromString("20.00"), "", ""),
		}}
		useCase := NewListFuelLogsUseCase(repo)

		output, err := useCase.Execute(ctx, ListFuelLogsInput{Year: 2024, NewestFirst: true})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(output.FuelLogs) != 2 {
			t.Fatalf("expected 2 fuel logs, got %d", len(output.FuelLogs))
		}
		newest := output.FuelLogs[0]
		if newest.FuelLog.OdometerKM != 250 {
			t.Errorf("expected newest log first, got odometer %d", newest.FuelLog.OdometerKM)
		}
		if newest.DistanceKM == nil || *newest.DistanceKM != 150 {
			t.Error("expected derived distance 150 on the newest log")
		}
	})

	t.Run("applies the source filter", func(t *testing.T) {
		work := fuelLogAt(8, 250, "30.00")
		work.Source = "work"
		repo := &fakeFuelLogRepository{fuelLogs: []*entity.FuelLog{
			fuelLogAt(1, 100, "40.00"),
			work,
		}}
		useCase := NewListFuelLogsUseCase(repo)

		output, err := useCase.Execute(ctx, ListFuelLogsInput{Source: "work"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(output.FuelLogs) != 1 {
			t.Fatalf("expected 1 fuel log, got %d", len(output.FuelLogs))
		}
		if output.FuelLogs[0].FuelLog.Source != "work" {
			t.Errorf("expected work log, got source %s", output.FuelLogs[0].FuelLog.Source)
		}
	})
}
