// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/taxable-tracker/backend/config"
	"github.com/taxable-tracker/backend/internal/application/adapter"
	"github.com/taxable-tracker/backend/internal/application/usecase/category"
	"github.com/taxable-tracker/backend/internal/application/usecase/export"
	"github.com/taxable-tracker/backend/internal/application/usecase/fuellog"
	"github.com/taxable-tracker/backend/internal/application/usecase/report"
	"github.com/taxable-tracker/backend/internal/application/usecase/transaction"
	"github.com/taxable-tracker/backend/internal/domain/entity"
	"github.com/taxable-tracker/backend/internal/infra/server/router"
	"github.com/taxable-tracker/backend/internal/integration/entrypoint/controller"
	"github.com/taxable-tracker/backend/internal/integration/entrypoint/middleware"
	"github.com/taxable-tracker/backend/internal/integration/persistence"
	"github.com/taxable-tracker/backend/internal/integration/persistence/model"
	"github.com/taxable-tracker/backend/test/integration/mock"
)

const (
	testUsername = "tester"
	testPassword = "secret"
)

var testSources = []string{"rental", "work", "personal"}

// TestContext holds the test state for each scenario.
type TestContext struct {
	server       *httptest.Server
	db           *mock.Db
	response     *http.Response
	responseBody []byte

	transactionRepo adapter.TransactionRepository
	fuelLogRepo     adapter.FuelLogRepository
	categoryRepo    adapter.CategoryRepository

	authenticated bool
	password      string
}

// contextKey is used to store TestContext in context.Context.
type contextKey struct{}

// GetTestContext retrieves the TestContext from context.
func GetTestContext(ctx context.Context) *TestContext {
	if tc, ok := ctx.Value(contextKey{}).(*TestContext); ok {
		return tc
	}
	return nil
}

// SetTestContext stores the TestContext in context.
func SetTestContext(ctx context.Context, tc *TestContext) context.Context {
	return context.WithValue(ctx, contextKey{}, tc)
}

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc, err := newTestContext()
		if err != nil {
			return ctx, err
		}
		return SetTestContext(ctx, tc), nil
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		tc := GetTestContext(ctx)
		if tc != nil {
			if tc.server != nil {
				tc.server.Close()
			}
			if tc.db != nil {
				_ = tc.db.Close()
			}
		}
		return ctx, nil
	})

	registerGivenSteps(ctx)
	registerRequestSteps(ctx)
	registerResponseSteps(ctx)
}

// newTestContext wires the full application stack over an isolated
// in-memory database and starts a test server.
func newTestContext() (*TestContext, error) {
	db, err := mock.NewDb(
		&model.CategoryModel{},
		&model.TransactionModel{},
		&model.FuelLogModel{},
	)
	if err != nil {
		return nil, err
	}

	tc := &TestContext{
		db:            db,
		authenticated: true,
		password:      testPassword,
	}

	tc.categoryRepo = persistence.NewCategoryRepository(db.DB())
	tc.transactionRepo = persistence.NewTransactionRepository(db.DB())
	tc.fuelLogRepo = persistence.NewFuelLogRepository(db.DB())

	listCategories := category.NewListCategoriesUseCase(tc.categoryRepo)
	createCategory := category.NewCreateCategoryUseCase(tc.categoryRepo)
	listTransactions := transaction.NewListTransactionsUseCase(tc.transactionRepo)
	createTransaction := transaction.NewCreateTransactionUseCase(tc.transactionRepo, testSources, false)
	listFuelLogs := fuellog.NewListFuelLogsUseCase(tc.fuelLogRepo)
	createFuelLog := fuellog.NewCreateFuelLogUseCase(tc.fuelLogRepo, testSources, false)
	annualReport := report.NewGetAnnualReportUseCase(tc.transactionRepo, tc.fuelLogRepo, testSources)
	exportCSV := export.NewExportAnnualCSVUseCase(tc.transactionRepo, tc.fuelLogRepo, testSources)

	authCfg := &config.AuthConfig{Username: testUsername, Password: testPassword}
	authMiddleware := middleware.NewBasicAuthMiddleware(authCfg, nil)

	r := router.NewRouter(
		controller.NewHealthController(func() bool { return true }),
		controller.NewCategoryController(listCategories, createCategory),
		controller.NewTransactionController(listTransactions, createTransaction),
		controller.NewFuelLogController(listFuelLogs, createFuelLog, testSources[0]),
		controller.NewReportController(annualReport, exportCSV, true),
		authMiddleware,
	)

	tc.server = httptest.NewServer(r.Setup("test"))
	return tc, nil
}

func registerGivenSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^the following transactions exist:$`, theFollowingTransactionsExist)
	ctx.Step(`^the following fuel logs exist:$`, theFollowingFuelLogsExist)
	ctx.Step(`^the following categories exist:$`, theFollowingCategoriesExist)
}

func registerRequestSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^I am not authenticated$`, iAmNotAuthenticated)
	ctx.Step(`^I use the wrong password$`, iUseTheWrongPassword)
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)"$`, iSendARequestTo)
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, iSendARequestToWithBody)
}

func registerResponseSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^the response status should be (\d+)$`, theResponseStatusShouldBe)
	ctx.Step(`^the response should be JSON$`, theResponseShouldBeJSON)
	ctx.Step(`^the response should contain "((?:[^"\\]|\\.)*)"$`, theResponseShouldContain)
	ctx.Step(`^the response should not contain "([^"]*)"$`, theResponseShouldNotContain)
	ctx.Step(`^the response field "([^"]*)" should be "([^"]*)"$`, theResponseFieldShouldBe)
	ctx.Step(`^the response field "([^"]*)" should have (\d+) items$`, theResponseFieldShouldHaveItems)
	ctx.Step(`^the CSV response should have (\d+) data rows$`, theCSVResponseShouldHaveDataRows)
	ctx.Step(`^the download filename should be "([^"]*)"$`, theDownloadFilenameShouldBe)
}

// Given steps

func parseTableDate(value string) (time.Time, error) {
	return time.Parse("2006-01-02", value)
}

// tableRows maps each data row of a godog table by its header column names.
func tableRows(table *godog.Table) ([]map[string]string, error) {
	if len(table.Rows) < 2 {
		return nil, fmt.Errorf("table needs a header row and at least one data row")
	}
	headers := make([]string, len(table.Rows[0].Cells))
	for i, cell := range table.Rows[0].Cells {
		headers[i] = cell.Value
	}

	rows := make([]map[string]string, 0, len(table.Rows)-1)
	for _, row := range table.Rows[1:] {
		if len(row.Cells) != len(headers) {
			return nil, fmt.Errorf("row has %d cells, header has %d", len(row.Cells), len(headers))
		}
		m := make(map[string]string, len(headers))
		for i, cell := range row.Cells {
			m[headers[i]] = cell.Value
		}
		rows = append(rows, m)
	}
	return rows, nil
}

func theFollowingTransactionsExist(ctx context.Context, table *godog.Table) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	rows, err := tableRows(table)
	if err != nil {
		return err
	}

	for _, row := range rows {
		date, err := parseTableDate(row["date"])
		if err != nil {
			return fmt.Errorf("invalid date %q: %w", row["date"], err)
		}
		amount, err := decimal.NewFromString(row["amount"])
		if err != nil {
			return fmt.Errorf("invalid amount %q: %w", row["amount"], err)
		}

		t := entity.NewTransaction(
			date,
			entity.TransactionType(row["type"]),
			row["source"],
			row["category"],
			amount,
			row["vendor"],
			row["notes"],
			"",
		)
		if err := tc.transactionRepo.Create(context.Background(), t); err != nil {
			return fmt.Errorf("failed to seed transaction: %w", err)
		}
	}
	return nil
}

func theFollowingFuelLogsExist(ctx context.Context, table *godog.Table) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	rows, err := tableRows(table)
	if err != nil {
		return err
	}

	for _, row := range rows {
		date, err := parseTableDate(row["date"])
		if err != nil {
			return fmt.Errorf("invalid date %q: %w", row["date"], err)
		}
		odometer, err := strconv.ParseInt(row["odometer_km"], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid odometer %q: %w", row["odometer_km"], err)
		}
		cost, err := decimal.NewFromString(row["total_cost"])
		if err != nil {
			return fmt.Errorf("invalid cost %q: %w", row["total_cost"], err)
		}

		source := row["source"]
		if source == "" {
			source = testSources[0]
		}

		f := entity.NewFuelLog(date, source, odometer, cost, row["notes"], "")
		if err := tc.fuelLogRepo.Create(context.Background(), f); err != nil {
			return fmt.Errorf("failed to seed fuel log: %w", err)
		}
	}
	return nil
}

func theFollowingCategoriesExist(ctx context.Context, table *godog.Table) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	rows, err := tableRows(table)
	if err != nil {
		return err
	}

	for _, row := range rows {
		if err := tc.categoryRepo.Create(context.Background(), entity.NewCategory(row["name"])); err != nil {
			return fmt.Errorf("failed to seed category: %w", err)
		}
	}
	return nil
}

// Request steps

func iAmNotAuthenticated(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	tc.authenticated = false
	return nil
}

func iUseTheWrongPassword(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	tc.password = "not-the-password"
	return nil
}

func (tc *TestContext) send(method, endpoint string, body io.Reader) error {
	req, err := http.NewRequest(method, tc.server.URL+endpoint, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tc.authenticated {
		req.SetBasicAuth(testUsername, tc.password)
	}

	resp, err := tc.server.Client().Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	tc.response = resp
	tc.responseBody, err = io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	return nil
}

func iSendARequestTo(ctx context.Context, method, endpoint string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	return tc.send(method, endpoint, nil)
}

func iSendARequestToWithBody(ctx context.Context, method, endpoint string, body *godog.DocString) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	return tc.send(method, endpoint, bytes.NewBufferString(body.Content))
}

// Response steps

func theResponseStatusShouldBe(ctx context.Context, expectedStatus int) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	if tc.response == nil {
		return fmt.Errorf("no response received")
	}
	if tc.response.StatusCode != expectedStatus {
		return fmt.Errorf("expected status %d, got %d. Body: %s", expectedStatus, tc.response.StatusCode, string(tc.responseBody))
	}
	return nil
}

func theResponseShouldBeJSON(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	var js json.RawMessage
	if err := json.Unmarshal(tc.responseBody, &js); err != nil {
		return fmt.Errorf("response is not valid JSON: %w", err)
	}
	return nil
}

func theResponseShouldContain(ctx context.Context, expected string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	expected = strings.ReplaceAll(expected, `\"`, `"`)
	if !strings.Contains(string(tc.responseBody), expected) {
		return fmt.Errorf("response does not contain %q. Body: %s", expected, string(tc.responseBody))
	}
	return nil
}

func theResponseShouldNotContain(ctx context.Context, unexpected string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	if strings.Contains(string(tc.responseBody), unexpected) {
		return fmt.Errorf("response unexpectedly contains %q. Body: %s", unexpected, string(tc.responseBody))
	}
	return nil
}

func theResponseFieldShouldBe(ctx context.Context, field, expected string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	var data map[string]interface{}
	if err := json.Unmarshal(tc.responseBody, &data); err != nil {
		return fmt.Errorf("failed to parse response JSON: %w", err)
	}

	value, ok := data[field]
	if !ok {
		return fmt.Errorf("field %q not found in response", field)
	}

	actual := fmt.Sprintf("%v", value)
	if actual != expected {
		return fmt.Errorf("field %q expected %q, got %q", field, expected, actual)
	}
	return nil
}

func theResponseFieldShouldHaveItems(ctx context.Context, field string, expectedCount int) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	var data map[string]interface{}
	if err := json.Unmarshal(tc.responseBody, &data); err != nil {
		return fmt.Errorf("failed to parse response JSON: %w", err)
	}

	value, ok := data[field]
	if !ok {
		return fmt.Errorf("field %q not found in response", field)
	}
	items, ok := value.([]interface{})
	if !ok {
		return fmt.Errorf("field %q is not a list", field)
	}
	if len(items) != expectedCount {
		return fmt.Errorf("field %q expected %d items, got %d", field, expectedCount, len(items))
	}
	return nil
}

func theCSVResponseShouldHaveDataRows(ctx context.Context, expectedCount int) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	rows, err := csv.NewReader(bytes.NewReader(tc.responseBody)).ReadAll()
	if err != nil {
		return fmt.Errorf("response is not valid CSV: %w", err)
	}
	if len(rows) == 0 {
		return fmt.Errorf("CSV response has no header row")
	}
	if got := len(rows) - 1; got != expectedCount {
		return fmt.Errorf("expected %d data rows, got %d", expectedCount, got)
	}
	return nil
}

func theDownloadFilenameShouldBe(ctx context.Context, expected string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	disposition := tc.response.Header.Get("Content-Disposition")
	if !strings.Contains(disposition, expected) {
		return fmt.Errorf("Content-Disposition %q does not name %q", disposition, expected)
	}
	return nil
}
