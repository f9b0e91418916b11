// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/taxable-tracker/backend/internal/application/usecase/fuellog"
	domainerror "github.com/taxable-tracker/backend/internal/domain/error"
	"github.com/taxable-tracker/backend/internal/integration/entrypoint/dto"
)

// FuelLogController handles fuel log endpoints.
type FuelLogController struct {
	listUseCase   *fuellog.ListFuelLogsUseCase
	createUseCase *fuellog.CreateFuelLogUseCase
	defaultSource string
}

// NewFuelLogController creates a new fuel log controller instance.
// defaultSource is applied when a creation request omits the source tag.
func NewFuelLogController(
	listUseCase *fuellog.ListFuelLogsUseCase,
	createUseCase *fuellog.CreateFuelLogUseCase,
	defaultSource string,
) *FuelLogController {
	return &FuelLogController{
		listUseCase:   listUseCase,
		createUseCase: createUseCase,
		defaultSource: defaultSource,
	}
}

// List handles GET /fuel-logs requests.
// Results carry derived distance and cost-per-kilometer, newest first
// unless newest_first=false.
func (c *FuelLogController) List(ctx *gin.Context) {
	input := fuellog.ListFuelLogsInput{
		Source:      ctx.Query("source"),
		NewestFirst: ctx.DefaultQuery("newest_first", "true") != "false",
	}

	if yearStr := ctx.Query("year"); yearStr != "" {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid year parameter",
			})
			return
		}
		input.Year = year
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to retrieve fuel logs",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToFuelLogListResponse(output.FuelLogs))
}

// Create handles POST /fuel-logs requests.
func (c *FuelLogController) Create(ctx *gin.Context) {
	var req dto.CreateFuelLogRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeMissingFuelLogFields),
		})
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid date format. Use YYYY-MM-DD",
			Code:  string(domainerror.ErrCodeInvalidFuelLogDate),
		})
		return
	}

	source := req.Source
	if source == "" {
		source = c.defaultSource
	}

	input := fuellog.CreateFuelLogInput{
		Date:        date,
		Source:      source,
		OdometerKM:  req.OdometerKM,
		TotalCost:   decimal.NewFromFloat(req.TotalCost),
		Notes:       req.Notes,
		ReceiptPath: req.ReceiptPath,
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleFuelLogError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToFuelLogResponse(output.FuelLog))
}

// handleFuelLogError handles fuel log errors and returns appropriate HTTP responses.
func (c *FuelLogController) handleFuelLogError(ctx *gin.Context, err error) {
	var fuelErr *domainerror.FuelLogError
	if errors.As(err, &fuelErr) {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: fuelErr.Message,
			Code:  string(fuelErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}
