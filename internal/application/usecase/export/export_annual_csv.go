// Package export contains the CSV export use case.
package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/taxable-tracker/backend/internal/application/adapter"
	"github.com/taxable-tracker/backend/internal/application/usecase/report"
	"github.com/taxable-tracker/backend/internal/domain/entity"
	domainerror "github.com/taxable-tracker/backend/internal/domain/error"
)

// MediaTypeCSV is the media type of the export payload.
const MediaTypeCSV = "text/csv"

// csvDateFormat is the layout for date cells.
const csvDateFormat = "2006-01-02"

// csvHeader is the fixed header row of the unified export layout.
var csvHeader = []string{"date", "type", "source", "category", "amount", "vendor", "notes", "odometer_km"}

// ExportAnnualCSVInput represents the input for the CSV export. It mirrors
// the annual report query: the export serializes the same filtered raw
// rows the aggregator consumes, not the aggregated output.
type ExportAnnualCSVInput struct {
	Year           int
	Source         string
	IncludeFuelLog bool
}

// ExportAnnualCSVOutput represents the export result.
type ExportAnnualCSVOutput struct {
	Content   string
	Filename  string
	MediaType string
}

// ExportAnnualCSVUseCase serializes a year's transactions and fuel logs
// into a single CSV table. Fuel rows are synthesized as expense rows in the
// Fuel category carrying the odometer reading; transaction rows leave the
// odometer column empty. Amounts are formatted with exactly two decimals
// and empty optional fields are emitted as empty strings. Row order follows
// the store's chronological return order, transactions first.
type ExportAnnualCSVUseCase struct {
	transactionRepo adapter.TransactionRepository
	fuelLogRepo     adapter.FuelLogRepository
	allowedSources  []string
}

// NewExportAnnualCSVUseCase creates a new ExportAnnualCSVUseCase instance.
func NewExportAnnualCSVUseCase(
	transactionRepo adapter.TransactionRepository,
	fuelLogRepo adapter.FuelLogRepository,
	allowedSources []string,
) *ExportAnnualCSVUseCase {
	return &ExportAnnualCSVUseCase{
		transactionRepo: transactionRepo,
		fuelLogRepo:     fuelLogRepo,
		allowedSources:  allowedSources,
	}
}

// Execute produces the CSV export.
func (uc *ExportAnnualCSVUseCase) Execute(ctx context.Context, input ExportAnnualCSVInput) (*ExportAnnualCSVOutput, error) {
	if err := uc.validateInput(input); err != nil {
		return nil, err
	}

	transactions, fuelLogs, err := report.FetchYearRecords(
		ctx, uc.transactionRepo, uc.fuelLogRepo,
		input.Year, input.Source, input.IncludeFuelLog,
	)
	if err != nil {
		return nil, err
	}

	var sb strings.Builder
	w := csv.NewWriter(&sb)

	if err := w.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, t := range transactions {
		record := []string{
			t.Date.Format(csvDateFormat),
			string(t.Type),
			t.Source,
			t.Category,
			t.Amount.StringFixed(2),
			t.Vendor,
			t.Notes,
			"", // odometer_km
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write transaction row: %w", err)
		}
	}

	for _, f := range fuelLogs {
		record := []string{
			f.Date.Format(csvDateFormat),
			string(entity.TransactionTypeExpense),
			f.Source,
			entity.FuelCategoryName,
			f.TotalCost.StringFixed(2),
			"", // vendor
			f.Notes,
			strconv.FormatInt(f.OdometerKM, 10),
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write fuel log row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV: %w", err)
	}

	return &ExportAnnualCSVOutput{
		Content:   sb.String(),
		Filename:  exportFilename(input.Year, input.Source),
		MediaType: MediaTypeCSV,
	}, nil
}

// validateInput validates the export parameters.
func (uc *ExportAnnualCSVUseCase) validateInput(input ExportAnnualCSVInput) error {
	if input.Year <= 0 {
		return domainerror.NewReportError(
			domainerror.ErrCodeInvalidReportYear,
			"year must be a positive calendar year",
			domainerror.ErrInvalidReportYear,
		)
	}

	source := input.Source
	if source == "" || source == entity.SourceAll {
		return nil
	}
	for _, s := range uc.allowedSources {
		if source == s {
			return nil
		}
	}
	return domainerror.NewReportError(
		domainerror.ErrCodeInvalidReportSource,
		fmt.Sprintf("source must be 'all' or one of: %s", strings.Join(uc.allowedSources, ", ")),
		domainerror.ErrInvalidReportSource,
	)
}

// exportFilename builds the suggested download name:
// taxable_<year>.csv, or taxable_<year>_<source>.csv for a non-all filter.
func exportFilename(year int, source string) string {
	if source != "" && source != entity.SourceAll {
		return fmt.Sprintf("taxable_%d_%s.csv", year, source)
	}
	return fmt.Sprintf("taxable_%d.csv", year)
}
