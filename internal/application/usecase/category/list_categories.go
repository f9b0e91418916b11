// Package category contains category-related use cases.
package category

import (
	"context"
	"fmt"

	"github.com/taxable-tracker/backend/internal/application/adapter"
	"github.com/taxable-tracker/backend/internal/domain/entity"
)

// ListCategoriesOutput represents the output of listing categories.
type ListCategoriesOutput struct {
	Categories []*entity.Category
}

// ListCategoriesUseCase handles listing all categories.
type ListCategoriesUseCase struct {
	categoryRepo adapter.CategoryRepository
}

// NewListCategoriesUseCase creates a new ListCategoriesUseCase instance.
func NewListCategoriesUseCase(categoryRepo adapter.CategoryRepository) *ListCategoriesUseCase {
	return &ListCategoriesUseCase{
		categoryRepo: categoryRepo,
	}
}

// Execute retrieves all categories ordered by name.
func (uc *ListCategoriesUseCase) Execute(ctx context.Context) (*ListCategoriesOutput, error) {
	categories, err := uc.categoryRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	return &ListCategoriesOutput{
		Categories: categories,
	}, nil
}
