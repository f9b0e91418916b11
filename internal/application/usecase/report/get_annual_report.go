// Package report contains the year-to-date reporting use cases.
package report

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/taxable-tracker/backend/internal/application/adapter"
	"github.com/taxable-tracker/backend/internal/domain/entity"
	domainerror "github.com/taxable-tracker/backend/internal/domain/error"
)

// monthKeyFormat is the layout for by-month bucket keys ("YYYY-MM").
const monthKeyFormat = "2006-01"

// amountPrecision is the number of decimal places for monetary output values.
const amountPrecision = 2

// GetAnnualReportInput represents the input for the annual report.
type GetAnnualReportInput struct {
	Year int
	// Source restricts both transactions and fuel logs to one source tag.
	// Empty or "all" means no filter.
	Source string
	// IncludeFuelLog folds fuel costs into the Fuel category and into
	// expense totals.
	IncludeFuelLog bool
}

// CategoryTotal is one entry of the per-category expense breakdown.
type CategoryTotal struct {
	Category string
	Amount   decimal.Decimal
}

// MonthlyTotal is one entry of the per-month income/expense series.
// Month is keyed "YYYY-MM".
type MonthlyTotal struct {
	Month   string
	Income  decimal.Decimal
	Expense decimal.Decimal
	Net     decimal.Decimal
}

// GetAnnualReportOutput represents the aggregated report for one year.
// All monetary values are rounded to two decimals; accumulation happens at
// full precision so rounding error does not compound.
type GetAnnualReportOutput struct {
	Year         int
	Source       string
	IncomeTotal  decimal.Decimal
	ExpenseTotal decimal.Decimal
	NetTotal     decimal.Decimal
	ByCategory   []CategoryTotal
	ByMonth      []MonthlyTotal
	// Transactions is the full year's record list, newest first, as shown
	// on the report view.
	Transactions []*entity.Transaction
}

// GetAnnualReportUseCase aggregates a year of transactions and fuel logs
// into totals, a category breakdown, and a monthly series. Given the same
// record set and parameters the output is identical across runs: category
// and month orderings are explicit sort keys, never map traversal order.
type GetAnnualReportUseCase struct {
	transactionRepo adapter.TransactionRepository
	fuelLogRepo     adapter.FuelLogRepository
	allowedSources  []string
}

// NewGetAnnualReportUseCase creates a new GetAnnualReportUseCase instance.
func NewGetAnnualReportUseCase(
	transactionRepo adapter.TransactionRepository,
	fuelLogRepo adapter.FuelLogRepository,
	allowedSources []string,
) *GetAnnualReportUseCase {
	return &GetAnnualReportUseCase{
		transactionRepo: transactionRepo,
		fuelLogRepo:     fuelLogRepo,
		allowedSources:  allowedSources,
	}
}

// Execute computes the annual report.
func (uc *GetAnnualReportUseCase) Execute(ctx context.Context, input GetAnnualReportInput) (*GetAnnualReportOutput, error) {
	if err := uc.validateInput(input); err != nil {
		return nil, err
	}

	transactions, fuelLogs, err := FetchYearRecords(
		ctx, uc.transactionRepo, uc.fuelLogRepo,
		input.Year, input.Source, input.IncludeFuelLog,
	)
	if err != nil {
		return nil, err
	}

	var incomeTotal, expenseTotal decimal.Decimal
	byCategory := make(map[string]decimal.Decimal)
	monthIncome := make(map[string]decimal.Decimal)
	monthExpense := make(map[string]decimal.Decimal)

	for _, t := range transactions {
		month := t.Date.Format(monthKeyFormat)
		switch t.Type {
		case entity.TransactionTypeIncome:
			incomeTotal = incomeTotal.Add(t.Amount)
			monthIncome[month] = monthIncome[month].Add(t.Amount)
		case entity.TransactionTypeExpense:
			expenseTotal = expenseTotal.Add(t.Amount)
			byCategory[t.Category] = byCategory[t.Category].Add(t.Amount)
			monthExpense[month] = monthExpense[month].Add(t.Amount)
		}
	}

	for _, f := range fuelLogs {
		month := f.Date.Format(monthKeyFormat)
		expenseTotal = expenseTotal.Add(f.TotalCost)
		byCategory[entity.FuelCategoryName] = byCategory[entity.FuelCategoryName].Add(f.TotalCost)
		monthExpense[month] = monthExpense[month].Add(f.TotalCost)
	}

	roundedIncome := incomeTotal.Round(amountPrecision)
	roundedExpense := expenseTotal.Round(amountPrecision)

	output := &GetAnnualReportOutput{
		Year:         input.Year,
		Source:       normalizeSource(input.Source),
		IncomeTotal:  roundedIncome,
		ExpenseTotal: roundedExpense,
		NetTotal:     roundedIncome.Sub(roundedExpense),
		ByCategory:   sortedCategoryTotals(byCategory),
		ByMonth:      sortedMonthlyTotals(monthIncome, monthExpense),
		Transactions: newestFirst(transactions),
	}

	return output, nil
}

// validateInput validates the report parameters.
func (uc *GetAnnualReportUseCase) validateInput(input GetAnnualReportInput) error {
	if input.Year <= 0 {
		return domainerror.NewReportError(
			domainerror.ErrCodeInvalidReportYear,
			"year must be a positive calendar year",
			domainerror.ErrInvalidReportYear,
		)
	}

	source := normalizeSource(input.Source)
	if source == entity.SourceAll {
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

// FetchYearRecords loads the transaction and fuel log sets for the
// half-open interval [Jan 1 of year, Jan 1 of year+1), restricted to one
// source tag when source is not "all". The fuel set is empty when
// includeFuelLog is false. Shared by the report and CSV export paths so
// both operate on the same filtered rows.
func FetchYearRecords(
	ctx context.Context,
	transactionRepo adapter.TransactionRepository,
	fuelLogRepo adapter.FuelLogRepository,
	year int,
	source string,
	includeFuelLog bool,
) ([]*entity.Transaction, []*entity.FuelLog, error) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year+1, time.January, 1, 0, 0, 0, 0, time.UTC)

	filter := adapter.RecordFilter{
		StartDate: &start,
		EndDate:   &end,
	}
	if s := normalizeSource(source); s != entity.SourceAll {
		filter.Source = s
	}

	transactions, err := transactionRepo.FindByFilter(ctx, filter)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	var fuelLogs []*entity.FuelLog
	if includeFuelLog {
		fuelLogs, err = fuelLogRepo.FindByFilter(ctx, filter)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load fuel logs: %w", err)
		}
	}

	return transactions, fuelLogs, nil
}

// normalizeSource maps the empty filter to "all".
func normalizeSource(source string) string {
	if source == "" {
		return entity.SourceAll
	}
	return source
}

// sortedCategoryTotals converts the accumulation map into a slice sorted by
// category name ascending, rounding each value at the point of output.
func sortedCategoryTotals(byCategory map[string]decimal.Decimal) []CategoryTotal {
	totals := make([]CategoryTotal, 0, len(byCategory))
	for name, amount := range byCategory {
		totals = append(totals, CategoryTotal{
			Category: name,
			Amount:   amount.Round(amountPrecision),
		})
	}
	sort.Slice(totals, func(i, j int) bool {
		return totals[i].Category < totals[j].Category
	})
	return totals
}

// sortedMonthlyTotals merges the per-month income and expense maps into a
// slice sorted by month key ascending. Only months present in the input
// appear; there is no zero-filling.
func sortedMonthlyTotals(income, expense map[string]decimal.Decimal) []MonthlyTotal {
	months := make(map[string]struct{}, len(income)+len(expense))
	for m := range income {
		months[m] = struct{}{}
	}
	for m := range expense {
		months[m] = struct{}{}
	}

	totals := make([]MonthlyTotal, 0, len(months))
	for m := range months {
		in := income[m].Round(amountPrecision)
		ex := expense[m].Round(amountPrecision)
		totals = append(totals, MonthlyTotal{
			Month:   m,
			Income:  in,
			Expense: ex,
			Net:     in.Sub(ex),
		})
	}
	sort.Slice(totals, func(i, j int) bool {
		return totals[i].Month < totals[j].Month
	})
	return totals
}

// newestFirst reverses the repository's oldest-first order for display.
func newestFirst(transactions []*entity.Transaction) []*entity.Transaction {
	reversed := make([]*entity.Transaction, len(transactions))
	for i, t := range transactions {
		reversed[len(transactions)-1-i] = t
	}
	return reversed
}
