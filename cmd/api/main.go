// Package main is the entry point for the Taxable Tracker API server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/taxable-tracker/backend/config"
	"github.com/taxable-tracker/backend/internal/application/usecase/category"
	"github.com/taxable-tracker/backend/internal/application/usecase/export"
	"github.com/taxable-tracker/backend/internal/application/usecase/fuellog"
	"github.com/taxable-tracker/backend/internal/application/usecase/report"
	"github.com/taxable-tracker/backend/internal/application/usecase/transaction"
	"github.com/taxable-tracker/backend/internal/infra/db"
	"github.com/taxable-tracker/backend/internal/infra/server/router"
	"github.com/taxable-tracker/backend/internal/integration/entrypoint/controller"
	"github.com/taxable-tracker/backend/internal/integration/entrypoint/middleware"
	"github.com/taxable-tracker/backend/internal/integration/persistence"
	"github.com/taxable-tracker/backend/internal/integration/persistence/model"
)

func main() {
	// Load .env file if it exists (development only)
	_ = godotenv.Load()

	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg := config.Load()

	slog.Info("Starting Taxable Tracker API",
		"environment", cfg.Server.Environment,
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
	)

	// Initialize database connection
	database, err := db.NewConnection(&cfg.Database)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := database.Close(); err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}()

	// Run database migrations
	if err := database.AutoMigrate(
		&model.CategoryModel{},
		&model.TransactionModel{},
		&model.FuelLogModel{},
	); err != nil {
		slog.Error("Failed to run database migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database migrations completed successfully")

	// Create repositories
	categoryRepo := persistence.NewCategoryRepository(database.DB())
	transactionRepo := persistence.NewTransactionRepository(database.DB())
	fuelLogRepo := persistence.NewFuelLogRepository(database.DB())

	// Seed default categories into an empty store
	ensureDefaultsUseCase := category.NewEnsureDefaultCategoriesUseCase(categoryRepo, cfg.Tracker.DefaultCategories)
	if err := ensureDefaultsUseCase.Execute(context.Background()); err != nil {
		slog.Error("Failed to seed default categories", "error", err)
		os.Exit(1)
	}

	// Create use cases
	listCategoriesUseCase := category.NewListCategoriesUseCase(categoryRepo)
	createCategoryUseCase := category.NewCreateCategoryUseCase(categoryRepo)

	listTransactionsUseCase := transaction.NewListTransactionsUseCase(transactionRepo)
	createTransactionUseCase := transaction.NewCreateTransactionUseCase(
		transactionRepo,
		cfg.Tracker.AllowedSources,
		cfg.Tracker.AllowNegativeAmounts,
	)

	listFuelLogsUseCase := fuellog.NewListFuelLogsUseCase(fuelLogRepo)
	createFuelLogUseCase := fuellog.NewCreateFuelLogUseCase(
		fuelLogRepo,
		cfg.Tracker.AllowedSources,
		cfg.Tracker.AllowNegativeAmounts,
	)

	annualReportUseCase := report.NewGetAnnualReportUseCase(transactionRepo, fuelLogRepo, cfg.Tracker.AllowedSources)
	exportCSVUseCase := export.NewExportAnnualCSVUseCase(transactionRepo, fuelLogRepo, cfg.Tracker.AllowedSources)

	// Create controllers
	healthController := controller.NewHealthController(database.HealthCheck)
	categoryController := controller.NewCategoryController(listCategoriesUseCase, createCategoryUseCase)
	transactionController := controller.NewTransactionController(listTransactionsUseCase, createTransactionUseCase)
	fuelLogController := controller.NewFuelLogController(listFuelLogsUseCase, createFuelLogUseCase, cfg.Tracker.AllowedSources[0])
	reportController := controller.NewReportController(annualReportUseCase, exportCSVUseCase, cfg.Tracker.FoldFuelByDefault)

	// Create middleware
	authRateLimiter := middleware.NewRateLimiter()
	authMiddleware := middleware.NewBasicAuthMiddleware(&cfg.Auth, authRateLimiter)

	if cfg.Auth.Username == "" || (cfg.Auth.Password == "" && cfg.Auth.PasswordHash == "") {
		slog.Warn("APP_USER/APP_PASS not configured, all API requests will be rejected")
	}

	// Setup router
	r := router.NewRouter(
		healthController,
		categoryController,
		transactionController,
		fuelLogController,
		reportController,
		authMiddleware,
	)
	engine := r.Setup(cfg.Server.Environment)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in a goroutine
	go func() {
		slog.Info("Server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited properly")
}
