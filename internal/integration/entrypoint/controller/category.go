// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/taxable-tracker/backend/internal/application/usecase/category"
	domainerror "github.com/taxable-tracker/backend/internal/domain/error"
	"github.com/taxable-tracker/backend/internal/integration/entrypoint/dto"
)

// CategoryController handles category endpoints.
type CategoryController struct {
	listUseCase   *category.ListCategoriesUseCase
	createUseCase *category.CreateCategoryUseCase
}

// NewCategoryController creates a new category controller instance.
func NewCategoryController(
	listUseCase *category.ListCategoriesUseCase,
	createUseCase *category.CreateCategoryUseCase,
) *CategoryController {
	return &CategoryController{
		listUseCase:   listUseCase,
		createUseCase: createUseCase,
	}
}

// List handles GET /categories requests.
func (c *CategoryController) List(ctx *gin.Context) {
	output, err := c.listUseCase.Execute(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to retrieve categories",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCategoryListResponse(output.Categories))
}

// Create handles POST /categories requests.
// Creation is idempotent: an existing name returns the existing category
// with 200, a blank name is a silent no-op answered with 204.
func (c *CategoryController) Create(ctx *gin.Context) {
	var req dto.CreateCategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
		})
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), category.CreateCategoryInput{
		Name: req.Name,
	})
	if err != nil {
		c.handleCategoryError(ctx, err)
		return
	}

	if output.Category == nil {
		ctx.Status(http.StatusNoContent)
		return
	}

	status := http.StatusOK
	if output.Created {
		status = http.StatusCreated
	}
	ctx.JSON(status, dto.ToCategoryResponse(output.Category))
}

// handleCategoryError handles category errors and returns appropriate HTTP responses.
func (c *CategoryController) handleCategoryError(ctx *gin.Context, err error) {
	var catErr *domainerror.CategoryError
	if errors.As(err, &catErr) {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: catErr.Message,
			Code:  string(catErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}
