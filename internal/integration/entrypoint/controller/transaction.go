// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/taxable-tracker/backend/internal/application/usecase/transaction"
	"github.com/taxable-tracker/backend/internal/domain/entity"
	domainerror "github.com/taxable-tracker/backend/internal/domain/error"
	"github.com/taxable-tracker/backend/internal/integration/entrypoint/dto"
)

// TransactionController handles transaction endpoints.
type TransactionController struct {
	listUseCase   *transaction.ListTransactionsUseCase
	createUseCase *transaction.CreateTransactionUseCase
}

// NewTransactionController creates a new transaction controller instance.
func NewTransactionController(
	listUseCase *transaction.ListTransactionsUseCase,
	createUseCase *transaction.CreateTransactionUseCase,
) *TransactionController {
	return &TransactionController{
		listUseCase:   listUseCase,
		createUseCase: createUseCase,
	}
}

// List handles GET /transactions requests.
func (c *TransactionController) List(ctx *gin.Context) {
	input := transaction.ListTransactionsInput{
		Source: ctx.Query("source"),
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

	if limitStr := ctx.Query("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil {
			input.Limit = limit
		}
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to retrieve transactions",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionListResponse(output.Transactions))
}

// Create handles POST /transactions requests.
func (c *TransactionController) Create(ctx *gin.Context) {
	var req dto.CreateTransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeMissingTransactionFields),
		})
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid date format. Use YYYY-MM-DD",
			Code:  string(domainerror.ErrCodeInvalidTransactionDate),
		})
		return
	}

	input := transaction.CreateTransactionInput{
		Date:        date,
		Type:        entity.TransactionType(req.Type),
		Source:      req.Source,
		Category:    req.Category,
		Amount:      decimal.NewFromFloat(req.Amount),
		Vendor:      req.Vendor,
		Notes:       req.Notes,
		ReceiptPath: req.ReceiptPath,
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToTransactionResponse(output.Transaction))
}

// handleTransactionError handles transaction errors and returns appropriate HTTP responses.
func (c *TransactionController) handleTransactionError(ctx *gin.Context, err error) {
	var txnErr *domainerror.TransactionError
	if errors.As(err, &txnErr) {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: txnErr.Message,
			Code:  string(txnErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}
