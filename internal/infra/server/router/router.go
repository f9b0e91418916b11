// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/taxable-tracker/backend/internal/integration/entrypoint/controller"
	"github.com/taxable-tracker/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine                *gin.Engine
	healthController      *controller.HealthController
	categoryController    *controller.CategoryController
	transactionController *controller.TransactionController
	fuelLogController     *controller.FuelLogController
	reportController      *controller.ReportController
	authMiddleware        *middleware.BasicAuthMiddleware
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	categoryController *controller.CategoryController,
	transactionController *controller.TransactionController,
	fuelLogController *controller.FuelLogController,
	reportController *controller.ReportController,
	authMiddleware *middleware.BasicAuthMiddleware,
) *Router {
	return &Router{
		healthController:      healthController,
		categoryController:    categoryController,
		transactionController: transactionController,
		fuelLogController:     fuelLogController,
		reportController:      reportController,
		authMiddleware:        authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	// Set Gin mode based on environment
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Create router with default middleware (logger and recovery)
	r.engine = gin.Default()

	// Setup routes
	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	// API v1 group, protected by the single-user basic auth credential
	v1 := r.engine.Group("/api/v1")
	if r.authMiddleware != nil {
		v1.Use(r.authMiddleware.Authenticate())
	}
	{
		if r.categoryController != nil {
			categories := v1.Group("/categories")
			{
				categories.GET("", r.categoryController.List)
				categories.POST("", r.categoryController.Create)
			}
		}

		if r.transactionController != nil {
			transactions := v1.Group("/transactions")
			{
				transactions.GET("", r.transactionController.List)
				transactions.POST("", r.transactionController.Create)
			}
		}

		if r.fuelLogController != nil {
			fuelLogs := v1.Group("/fuel-logs")
			{
				fuelLogs.GET("", r.fuelLogController.List)
				fuelLogs.POST("", r.fuelLogController.Create)
			}
		}

		if r.reportController != nil {
			reports := v1.Group("/reports")
			{
				reports.GET("/annual", r.reportController.GetAnnual)
				reports.GET("/annual/export", r.reportController.ExportAnnual)
			}
		}
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
