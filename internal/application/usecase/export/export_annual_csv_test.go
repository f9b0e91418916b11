// Package export contains the CSV export use case.
package export

import (
	"context"
	"encoding/csv"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/taxable-tracker/backend/internal/application/adapter"
	"github.com/taxable-tracker/backend/internal/domain/entity"
	domainerror "github.com/taxable-tracker/backend/internal/domain/error"
)

var testSources = []string{"rental", "work", "personal"}

type fakeTransactionRepository struct {
	transactions []*entity.Transaction
}

func (r *fakeTransactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	r.transactions = append(r.transactions, transaction)
	return nil
}

func (r *fakeTransactionRepository) FindByFilter(ctx context.Context, filter adapter.RecordFilter) ([]*entity.Transaction, error) {
	var result []*entity.Transaction
	for _, t := range r.transactions {
		if filter.StartDate != nil && t.Date.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && !t.Date.Before(*filter.EndDate) {
			continue
		}
		if filter.Source != "" && t.Source != filter.Source {
			continue
		}
		result = append(result, t)
	}
	return result, nil
}

type fakeFuelLogRepository struct {
	fuelLogs []*entity.FuelLog
}

func (r *fakeFuelLogRepository) Create(ctx context.Context, fuelLog *entity.FuelLog) error {
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

func parseCSV(t *testing.T, content string) [][]string {
	t.Helper()
	rows, err := csv.NewReader(strings.NewReader(content)).ReadAll()
	if err != nil {
		t.Fatalf("failed to parse exported CSV: %v", err)
	}
	return rows
}

func TestExportAnnualCSVUseCase_Execute(t *testing.T) {
	ctx := context.Background()
	date := time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC)

	t.Run("exports the unified header and transaction rows", func(t *testing.T) {
		txRepo := &fakeTransactionRepository{transactions: []*entity.Transaction{
			entity.NewTransaction(date, entity.TransactionTypeExpense, "rental", "Utilities", decimal.RequireFromString("85.5"), "Hydro Co", "march bill", ""),
		}}
		useCase := NewExportAnnualCSVUseCase(txRepo, &fakeFuelLogRepository{}, testSources)

		output, err := useCase.Execute(ctx, ExportAnnualCSVInput{Year: 2024})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		rows := parseCSV(t, output.Content)
		if len(rows) != 2 {
			t.Fatalf("expected header plus 1 row, got %d rows", len(rows))
		}

		wantHeader := []string{"date", "type", "source", "category", "amount", "vendor", "notes", "odometer_km"}
		for i, want := range wantHeader {
			if rows[0][i] != want {
				t.Errorf("header column %d: expected %s, got %s", i, want, rows[0][i])
			}
		}

		row := rows[1]
		want := []string{"2024-03-10", "expense", "rental", "Utilities", "85.50", "Hydro Co", "march bill", ""}
		for i, w := range want {
			if row[i] != w {
				t.Errorf("column %d: expected %q, got %q", i, w, row[i])
			}
		}
	})

	t.Run("synthesizes fuel rows as Fuel expenses with the odometer reading", func(t *testing.T) {
		fuelRepo := &fakeFuelLogRepository{fuelLogs: []*entity.FuelLog{
			entity.NewFuelLog(date, "personal", 45230, decimal.RequireFromString("62.4"), "", ""),
		}}
		useCase := NewExportAnnualCSVUseCase(&fakeTransactionRepository{}, fuelRepo, testSources)

		output, err := useCase.Execute(ctx, ExportAnnualCSVInput{Year: 2024, IncludeFuelLog: true})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		rows := parseCSV(t, output.Content)
		if len(rows) != 2 {
			t.Fatalf("expected header plus 1 row, got %d rows", len(rows))
		}

		row := rows[1]
		want := []string{"2024-03-10", "expense", "personal", "Fuel", "62.40", "", "", "45230"}
		for i, w := range want {
			if row[i] != w {
				t.Errorf("column %d: expected %q, got %q", i, w, row[i])
			}
		}
	})

	t.Run("omits fuel rows when not included", func(t *testing.T) {
		fuelRepo := &fakeFuelLogRepository{fuelLogs: []*entity.FuelLog{
			entity.NewFuelLog(date, "personal", 45230, decimal.RequireFromString("62.40"), "", ""),
		}}
		useCase := NewExportAnnualCSVUseCase(&fakeTransactionRepository{}, fuelRepo, testSources)

		output, err := useCase.Execute(ctx, ExportAnnualCSVInput{Year: 2024, IncludeFuelLog: false})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		rows := parseCSV(t, output.Content)
		if len(rows) != 1 {
			t.Errorf("expected header only, got %d rows", len(rows))
		}
	})

	t.Run("transaction rows precede fuel rows", func(t *testing.T) {
		txRepo := &fakeTransactionRepository{transactions: []*entity.Transaction{
			entity.NewTransaction(date.AddDate(0, 1, 0), entity.TransactionTypeIncome, "work", "Consulting", decimal.RequireFromString("500"), "", "", ""),
		}}
		fuelRepo := &fakeFuelLogRepository{fuelLogs: []*entity.FuelLog{
			entity.NewFuelLog(date, "personal", 45230, decimal.RequireFromString("62.40"), "", ""),
		}}
		useCase := NewExportAnnualCSVUseCase(txRepo, fuelRepo, testSources)

		output, err := useCase.Execute(ctx, ExportAnnualCSVInput{Year: 2024, IncludeFuelLog: true})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		rows := parseCSV(t, output.Content)
		if len(rows) != 3 {
			t.Fatalf("expected header plus 2 rows, got %d rows", len(rows))
		}
		if rows[1][3] != "Consulting" {
			t.Errorf("expected transaction row first, got category %s", rows[1][3])
		}
		if rows[2][3] != "Fuel" {
			t.Errorf("expected fuel row last, got category %s", rows[2][3])
		}
	})

	t.Run("escapes fields containing commas and quotes", func(t *testing.T) {
		txRepo := &fakeTransactionRepository{transactions: []*entity.Transaction{
			entity.NewTransaction(date, entity.TransactionTypeExpense, "rental", "Repairs & Maintenance", decimal.RequireFromString("120"), `Bob's "Best" Plumbing, Inc.`, "sink, faucet", ""),
		}}
		useCase := NewExportAnnualCSVUseCase(txRepo, &fakeFuelLogRepository{}, testSources)

		output, err := useCase.Execute(ctx, ExportAnnualCSVInput{Year: 2024})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		rows := parseCSV(t, output.Content)
		if rows[1][5] != `Bob's "Best" Plumbing, Inc.` {
			t.Errorf("vendor round-trip failed: %q", rows[1][5])
		}
		if rows[1][6] != "sink, faucet" {
			t.Errorf("notes round-trip failed: %q", rows[1][6])
		}
	})

	t.Run("names the file after the year", func(t *testing.T) {
		useCase := NewExportAnnualCSVUseCase(&fakeTransactionRepository{}, &fakeFuelLogRepository{}, testSources)

		output, err := useCase.Execute(ctx, ExportAnnualCSVInput{Year: 2024})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.Filename != "taxable_2024.csv" {
			t.Errorf("expected filename taxable_2024.csv, got %s", output.Filename)
		}
		if output.MediaType != MediaTypeCSV {
			t.Errorf("expected media type %s, got %s", MediaTypeCSV, output.MediaType)
		}
	})

	t.Run("includes the source in the filename when filtered", func(t *testing.T) {
		useCase := NewExportAnnualCSVUseCase(&fakeTransactionRepository{}, &fakeFuelLogRepository{}, testSources)

		output, err := useCase.Execute(ctx, ExportAnnualCSVInput{Year: 2024, Source: "rental"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.Filename != "taxable_2024_rental.csv" {
			t.Errorf("expected filename taxable_2024_rental.csv, got %s", output.Filename)
		}
	})

	t.Run("treats the all source as unfiltered", func(t *testing.T) {
		useCase := NewExportAnnualCSVUseCase(&fakeTransactionRepository{}, &fakeFuelLogRepository{}, testSources)

		output, err := useCase.Execute(ctx, ExportAnnualCSVInput{Year: 2024, Source: entity.SourceAll})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.Filename != "taxable_2024.csv" {
			t.Errorf("expected filename taxable_2024.csv, got %s", output.Filename)
		}
	})

	t.Run("rejects invalid parameters", func(t *testing.T) {
		useCase := NewExportAnnualCSVUseCase(&fakeTransactionRepository{}, &fakeFuelLogRepository{}, testSources)

		var rptErr *domainerror.ReportError
		if _, err := useCase.Execute(ctx, ExportAnnualCSVInput{Year: -1}); !errors.As(err, &rptErr) {
			t.Errorf("expected a report error for a negative year, got %v", err)
		}
		if _, err := useCase.Execute(ctx, ExportAnnualCSVInput{Year: 2024, Source: "crypto"}); !errors.As(err, &rptErr) {
			t.Errorf("expected a report error for an unknown source, got %v", err)
		}
	})
}
