// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"github.com/taxable-tracker/backend/internal/application/usecase/report"
)

// CategoryTotalResponse represents one category in the expense breakdown.
type CategoryTotalResponse struct {
	Category string `json:"category"`
	Amount   string `json:"amount"`
}

// MonthlyTotalResponse represents one month of the income/expense series.
type MonthlyTotalResponse struct {
	Month   string `json:"month"`
	Income  string `json:"income"`
	Expense string `json:"expense"`
	Net     string `json:"net"`
}

// AnnualReportResponse represents the annual report in API responses.
type AnnualReportResponse struct {
	Year         int                     `json:"year"`
	Source       string                  `json:"source"`
	IncomeTotal  string                  `json:"income_total"`
	ExpenseTotal string                  `json:"expense_total"`
	NetTotal     string                  `json:"net_total"`
	ByCategory   []CategoryTotalResponse `json:"by_category"`
	ByMonth      []MonthlyTotalResponse  `json:"by_month"`
	Transactions []TransactionResponse   `json:"transactions"`
}

// ToAnnualReportResponse converts the report output to its API response.
func ToAnnualReportResponse(output *report.GetAnnualReportOutput) AnnualReportResponse {
	byCategory := make([]CategoryTotalResponse, len(output.ByCategory))
	for i, c := range output.ByCategory {
		byCategory[i] = CategoryTotalResponse{
			Category: c.Category,
			Amount:   c.Amount.StringFixed(2),
		}
	}

	byMonth := make([]MonthlyTotalResponse, len(output.ByMonth))
	for i, m := range output.ByMonth {
		byMonth[i] = MonthlyTotalResponse{
			Month:   m.Month,
			Income:  m.Income.StringFixed(2),
			Expense: m.Expense.StringFixed(2),
			Net:     m.Net.StringFixed(2),
		}
	}

	transactions := make([]TransactionResponse, len(output.Transactions))
	for i, t := range output.Transactions {
		transactions[i] = ToTransactionResponse(t)
	}

	return AnnualReportResponse{
		Year:         output.Year,
		Source:       output.Source,
		IncomeTotal:  output.IncomeTotal.StringFixed(2),
		ExpenseTotal: output.ExpenseTotal.StringFixed(2),
		NetTotal:     output.NetTotal.StringFixed(2),
		ByCategory:   byCategory,
		ByMonth:      byMonth,
		Transactions: transactions,
	}
}
