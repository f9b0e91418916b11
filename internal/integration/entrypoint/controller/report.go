// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/taxable-tracker/backend/internal/application/usecase/export"
	"github.com/taxable-tracker/backend/internal/application/usecase/report"
	domainerror "github.com/taxable-tracker/backend/internal/domain/error"
	"github.com/taxable-tracker/backend/internal/integration/entrypoint/dto"
)

// ReportController handles report and export endpoints.
type ReportController struct {
	reportUseCase     *report.GetAnnualReportUseCase
	exportUseCase     *export.ExportAnnualCSVUseCase
	foldFuelByDefault bool
}

// NewReportController creates a new report controller instance.
func NewReportController(
	reportUseCase *report.GetAnnualReportUseCase,
	exportUseCase *export.ExportAnnualCSVUseCase,
	foldFuelByDefault bool,
) *ReportController {
	return &ReportController{
		reportUseCase:     reportUseCase,
		exportUseCase:     exportUseCase,
		foldFuelByDefault: foldFuelByDefault,
	}
}

// GetAnnual handles GET /reports/annual requests.
func (c *ReportController) GetAnnual(ctx *gin.Context) {
	year, source, includeFuel, ok := c.parseReportQuery(ctx)
	if !ok {
		return
	}

	output, err := c.reportUseCase.Execute(ctx.Request.Context(), report.GetAnnualReportInput{
		Year:           year,
		Source:         source,
		IncludeFuelLog: includeFuel,
	})
	if err != nil {
		c.handleReportError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToAnnualReportResponse(output))
}

// ExportAnnual handles GET /reports/annual/export requests.
// The response body is the CSV payload with a download filename.
func (c *ReportController) ExportAnnual(ctx *gin.Context) {
	year, source, includeFuel, ok := c.parseReportQuery(ctx)
	if !ok {
		return
	}

	output, err := c.exportUseCase.Execute(ctx.Request.Context(), export.ExportAnnualCSVInput{
		Year:           year,
		Source:         source,
		IncludeFuelLog: includeFuel,
	})
	if err != nil {
		c.handleReportError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", output.Filename))
	ctx.Data(http.StatusOK, output.MediaType, []byte(output.Content))
}

// parseReportQuery parses the shared report/export query parameters.
// The year defaults to the current calendar year, matching the original
// report view.
func (c *ReportController) parseReportQuery(ctx *gin.Context) (year int, source string, includeFuel bool, ok bool) {
	year = time.Now().UTC().Year()
	if yearStr := ctx.Query("year"); yearStr != "" {
		parsed, err := strconv.Atoi(yearStr)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid year parameter",
				Code:  string(domainerror.ErrCodeInvalidReportYear),
			})
			return 0, "", false, false
		}
		year = parsed
	}

	source = ctx.Query("source")

	includeFuel = c.foldFuelByDefault
	if fuelStr := ctx.Query("include_fuel_log"); fuelStr != "" {
		parsed, err := strconv.ParseBool(fuelStr)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid include_fuel_log parameter",
			})
			return 0, "", false, false
		}
		includeFuel = parsed
	}

	return year, source, includeFuel, true
}

// handleReportError handles report errors and returns appropriate HTTP responses.
func (c *ReportController) handleReportError(ctx *gin.Context, err error) {
	var rptErr *domainerror.ReportError
	if errors.As(err, &rptErr) {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: rptErr.Message,
			Code:  string(rptErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}
