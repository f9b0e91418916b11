// Package report contains the year-to-date reporting use cases.
package report

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

// fakeTransactionRepository serves canned transactions, applying the date
// and source filter the way the real store does.
type fakeTransactionRepository struct {
	transactions []*entity.Transaction
	err          error
}

func (r *fakeTransactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	r.transactions = append(r.transactions, transaction)
	return nil
}

func (r *fakeTransactionRepository) FindByFilter(ctx context.Context, filter adapter.RecordFilter) ([]*entity.Transaction, error) {
	if r.err != nil {
		return nil, r.err
	}
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
	err      error
}

func (r *fakeFuelLogRepository) Create(ctx context.Context, fuelLog *entity.FuelLog) error {
	r.fuelLogs = append(r.fuelLogs, fuelLog)
	return nil
}

func (r *fakeFuelLogRepository) FindByFilter(ctx context.Context, filter adapter.RecordFilter) ([]*entity.FuelLog, error) {
	if r.err != nil {
		return nil, r.err
	}
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

func testTransaction(date time.Time, transactionType entity.TransactionType, source, category, amount string) *entity.Transaction {
	return entity.NewTransaction(date, transactionType, source, category, decimal.RequireFromString(amount), "", "", "")
}

func testFuelLog(date time.Time, source string, odometerKM int64, totalCost string) *entity.FuelLog {
	return entity.NewFuelLog(date, source, odometerKM, decimal.RequireFromString(totalCost), "", "")
}

func march(day int) time.Time {
	return time.Date(2024, time.March, day, 0, 0, 0, 0, time.UTC)
}

func TestGetAnnualReportUseCase_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("aggregates income and expenses for the year", func(t *testing.T) {
		txRepo := &fakeTransactionRepository{transactions: []*entity.Transaction{
			testTransaction(march(1), entity.TransactionTypeIncome, "rental", "Rental Income", "1000.00"),
			testTransaction(march(10), entity.TransactionTypeExpense, "rental", "Utilities", "150.00"),
		}}
		useCase := NewGetAnnualReportUseCase(txRepo, &fakeFuelLogRepository{}, testSources)

		output, err := useCase.Execute(ctx, GetAnnualReportInput{Year: 2024})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if got := output.IncomeTotal.String(); got != "1000" {
			t.Errorf("expected income total 1000, got %s", got)
		}
		if got := output.ExpenseTotal.String(); got != "150" {
			t.Errorf("expected expense total 150, got %s", got)
		}
		if got := output.NetTotal.String(); got != "850" {
			t.Errorf("expected net total 850, got %s", got)
		}
		if output.Source != entity.SourceAll {
			t.Errorf("expected source all, got %s", output.Source)
		}

		if len(output.ByCategory) != 1 {
			t.Fatalf("expected 1 category entry, got %d", len(output.ByCategory))
		}
		if output.ByCategory[0].Category != "Utilities" || output.ByCategory[0].Amount.String() != "150" {
			t.Errorf("unexpected category entry: %+v", output.ByCategory[0])
		}

		if len(output.ByMonth) != 1 {
			t.Fatalf("expected 1 month entry, got %d", len(output.ByMonth))
		}
		month := output.ByMonth[0]
		if month.Month != "2024-03" {
			t.Errorf("expected month key 2024-03, got %s", month.Month)
		}
		if month.Net.String() != "850" {
			t.Errorf("expected month net 850, got %s", month.Net.String())
		}
	})

	t.Run("excludes records from other years", func(t *testing.T) {
		txRepo := &fakeTransactionRepository{transactions: []*entity.Transaction{
			testTransaction(march(1), entity.TransactionTypeIncome, "rental", "Rental Income", "1000.00"),
			testTransaction(time.Date(2023, time.December, 31, 0, 0, 0, 0, time.UTC), entity.TransactionTypeIncome, "rental", "Rental Income", "500.00"),
			testTransaction(time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC), entity.TransactionTypeIncome, "rental", "Rental Income", "500.00"),
		}}
		useCase := NewGetAnnualReportUseCase(txRepo, &fakeFuelLogRepository{}, testSources)

		output, err := useCase.Execute(ctx, GetAnnualReportInput{Year: 2024})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := output.IncomeTotal.String(); got != "1000" {
			t.Errorf("expected income total 1000, got %s", got)
		}
		if len(output.Transactions) != 1 {
			t.Errorf("expected 1 transaction, got %d", len(output.Transactions))
		}
	})

	t.Run("folds fuel logs into expenses and the Fuel category", func(t *testing.T) {
		txRepo := &fakeTransactionRepository{transactions: []*entity.Transaction{
			testTransaction(march(10), entity.TransactionTypeExpense, "personal", "Meals", "20.00"),
		}}
		fuelRepo := &fakeFuelLogRepository{fuelLogs: []*entity.FuelLog{
			testFuelLog(march(5), "personal", 1000, "40.00"),
			testFuelLog(time.Date(2024, time.April, 2, 0, 0, 0, 0, time.UTC), "personal", 1400, "60.00"),
		}}
		useCase := NewGetAnnualReportUseCase(txRepo, fuelRepo, testSources)

		output, err := useCase.Execute(ctx, GetAnnualReportInput{Year: 2024, IncludeFuelLog: true})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if got := output.ExpenseTotal.String(); got != "120" {
			t.Errorf("expected expense total 120, got %s", got)
		}
		if got := output.NetTotal.String(); got != "-120" {
			t.Errorf("expected net total -120, got %s", got)
		}

		var fuelTotal string
		for _, c := range output.ByCategory {
			if c.Category == entity.FuelCategoryName {
				fuelTotal = c.Amount.String()
			}
		}
		if fuelTotal != "100" {
			t.Errorf("expected Fuel category total 100, got %s", fuelTotal)
		}

		// Fuel costs land in their own months so the monthly series stays
		// consistent with the year totals.
		if len(output.ByMonth) != 2 {
			t.Fatalf("expected 2 month entries, got %d", len(output.ByMonth))
		}
		if output.ByMonth[0].Month != "2024-03" || output.ByMonth[0].Expense.String() != "60" {
			t.Errorf("unexpected March entry: %+v", output.ByMonth[0])
		}
		if output.ByMonth[1].Month != "2024-04" || output.ByMonth[1].Expense.String() != "60" {
			t.Errorf("unexpected April entry: %+v", output.ByMonth[1])
		}
	})

	t.Run("ignores fuel logs when not included", func(t *testing.T) {
		fuelRepo := &fakeFuelLogRepository{fuelLogs: []*entity.FuelLog{
			testFuelLog(march(5), "personal", 1000, "40.00"),
		}}
		useCase := NewGetAnnualReportUseCase(&fakeTransactionRepository{}, fuelRepo, testSources)

		output, err := useCase.Execute(ctx, GetAnnualReportInput{Year: 2024, IncludeFuelLog: false})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !output.ExpenseTotal.IsZero() {
			t.Errorf("expected zero expense total, got %s", output.ExpenseTotal.String())
		}
		if len(output.ByCategory) != 0 {
			t.Errorf("expected no category entries, got %d", len(output.ByCategory))
		}
	})

	t.Run("filters by source", func(t *testing.T) {
		txRepo := &fakeTransactionRepository{transactions: []*entity.Transaction{
			testTransaction(march(1), entity.TransactionTypeIncome, "rental", "Rental Income", "1000.00"),
			testTransaction(march(2), entity.TransactionTypeIncome, "work", "Consulting", "2000.00"),
		}}
		useCase := NewGetAnnualReportUseCase(txRepo, &fakeFuelLogRepository{}, testSources)

		output, err := useCase.Execute(ctx, GetAnnualReportInput{Year: 2024, Source: "rental"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := output.IncomeTotal.String(); got != "1000" {
			t.Errorf("expected income total 1000, got %s", got)
		}
		if output.Source != "rental" {
			t.Errorf("expected source rental, got %s", output.Source)
		}
	})

	t.Run("totals round at output not during accumulation", func(t *testing.T) {
		// Three thirds of a cent sum to a whole cent, not zero.
		txRepo := &fakeTransactionRepository{transactions: []*entity.Transaction{
			testTransaction(march(1), entity.TransactionTypeExpense, "work", "Tools", "0.00333"),
			testTransaction(march(2), entity.TransactionTypeExpense, "work", "Tools", "0.00333"),
			testTransaction(march(3), entity.TransactionTypeExpense, "work", "Tools", "0.00334"),
		}}
		useCase := NewGetAnnualReportUseCase(txRepo, &fakeFuelLogRepository{}, testSources)

		output, err := useCase.Execute(ctx, GetAnnualReportInput{Year: 2024})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := output.ExpenseTotal.String(); got != "0.01" {
			t.Errorf("expected expense total 0.01, got %s", got)
		}
		if got := output.NetTotal.String(); got != "-0.01" {
			t.Errorf("expected net total -0.01, got %s", got)
		}
	})

	t.Run("monthly nets sum to the year net", func(t *testing.T) {
		txRepo := &fakeTransactionRepository{transactions: []*entity.Transaction{
			testTransaction(time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC), entity.TransactionTypeIncome, "rental", "Rental Income", "1200.00"),
			testTransaction(time.Date(2024, time.February, 5, 0, 0, 0, 0, time.UTC), entity.TransactionTypeExpense, "rental", "Utilities", "85.50"),
			testTransaction(time.Date(2024, time.February, 20, 0, 0, 0, 0, time.UTC), entity.TransactionTypeIncome, "work", "Consulting", "300.25"),
		}}
		fuelRepo := &fakeFuelLogRepository{fuelLogs: []*entity.FuelLog{
			testFuelLog(time.Date(2024, time.January, 12, 0, 0, 0, 0, time.UTC), "personal", 1000, "45.75"),
		}}
		useCase := NewGetAnnualReportUseCase(txRepo, fuelRepo, testSources)

		output, err := useCase.Execute(ctx, GetAnnualReportInput{Year: 2024, IncludeFuelLog: true})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var monthSum decimal.Decimal
		for _, m := range output.ByMonth {
			monthSum = monthSum.Add(m.Net)
		}
		if !monthSum.Equal(output.NetTotal) {
			t.Errorf("expected monthly nets to sum to %s, got %s", output.NetTotal.String(), monthSum.String())
		}

		var categorySum decimal.Decimal
		for _, c := range output.ByCategory {
			categorySum = categorySum.Add(c.Amount)
		}
		if !categorySum.Equal(output.ExpenseTotal) {
			t.Errorf("expected category totals to sum to %s, got %s", output.ExpenseTotal.String(), categorySum.String())
		}
	})

	t.Run("categories sort by name and months by key", func(t *testing.T) {
		txRepo := &fakeTransactionRepository{transactions: []*entity.Transaction{
			testTransaction(time.Date(2024, time.November, 1, 0, 0, 0, 0, time.UTC), entity.TransactionTypeExpense, "rental", "Utilities", "10.00"),
			testTransaction(march(1), entity.TransactionTypeExpense, "rental", "Insurance", "20.00"),
			testTransaction(time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), entity.TransactionTypeExpense, "rental", "Condo Fees", "30.00"),
		}}
		useCase := NewGetAnnualReportUseCase(txRepo, &fakeFuelLogRepository{}, testSources)

		output, err := useCase.Execute(ctx, GetAnnualReportInput{Year: 2024})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		wantCategories := []string{"Condo Fees", "Insurance", "Utilities"}
		for i, want := range wantCategories {
			if output.ByCategory[i].Category != want {
				t.Errorf("category %d: expected %s, got %s", i, want, output.ByCategory[i].Category)
			}
		}

		wantMonths := []string{"2024-01", "2024-03", "2024-11"}
		for i, want := range wantMonths {
			if output.ByMonth[i].Month != want {
				t.Errorf("month %d: expected %s, got %s", i, want, output.ByMonth[i].Month)
			}
		}
	})

	t.Run("transactions list is newest first", func(t *testing.T) {
		txRepo := &fakeTransactionRepository{transactions: []*entity.Transaction{
			testTransaction(march(1), entity.TransactionTypeIncome, "rental", "Rental Income", "1000.00"),
			testTransaction(march(15), entity.TransactionTypeExpense, "rental", "Utilities", "50.00"),
		}}
		useCase := NewGetAnnualReportUseCase(txRepo, &fakeFuelLogRepository{}, testSources)

		output, err := useCase.Execute(ctx, GetAnnualReportInput{Year: 2024})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(output.Transactions) != 2 {
			t.Fatalf("expected 2 transactions, got %d", len(output.Transactions))
		}
		if !output.Transactions[0].Date.Equal(march(15)) {
			t.Errorf("expected newest transaction first, got date %s", output.Transactions[0].Date)
		}
	})

	t.Run("rejects a non-positive year", func(t *testing.T) {
		useCase := NewGetAnnualReportUseCase(&fakeTransactionRepository{}, &fakeFuelLogRepository{}, testSources)

		_, err := useCase.Execute(ctx, GetAnnualReportInput{Year: 0})
		var rptErr *domainerror.ReportError
		if !errors.As(err, &rptErr) {
			t.Fatalf("expected a report error, got %v", err)
		}
		if rptErr.Code != domainerror.ErrCodeInvalidReportYear {
			t.Errorf("expected code %s, got %s", domainerror.ErrCodeInvalidReportYear, rptErr.Code)
		}
	})

	t.Run("rejects an unknown source", func(t *testing.T) {
		useCase := NewGetAnnualReportUseCase(&fakeTransactionRepository{}, &fakeFuelLogRepository{}, testSources)

		_, err := useCase.Execute(ctx, GetAnnualReportInput{Year: 2024, Source: "crypto"})
		var rptErr *domainerror.ReportError
		if !errors.As(err, &rptErr) {
			t.Fatalf("expected a report error, got %v", err)
		}
		if rptErr.Code != domainerror.ErrCodeInvalidReportSource {
			t.Errorf("expected code %s, got %s", domainerror.ErrCodeInvalidReportSource, rptErr.Code)
		}
	})

	t.Run("propagates repository failures", func(t *testing.T) {
		txRepo := &fakeTransactionRepository{err: errors.New("connection refused")}
		useCase := NewGetAnnualReportUseCase(txRepo, &fakeFuelLogRepository{}, testSources)

		if _, err := useCase.Execute(ctx, GetAnnualReportInput{Year: 2024}); err == nil {
			t.Error("expected an error when the repository fails")
		}
	})
}
