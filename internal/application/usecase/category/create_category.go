// Package category contains category-related use cases.
package category

import (
	"context"
	"fmt"
	"strings"

	"github.com/taxable-tracker/backend/internal/application/adapter"
	"github.com/taxable-tracker/backend/internal/domain/entity"
	domainerror "github.com/taxable-tracker/backend/internal/domain/error"
)

// MaxCategoryNameLength is the maximum allowed length for category names.
const MaxCategoryNameLength = 100

// CreateCategoryInput represents the input for category creation.
type CreateCategoryInput struct {
	Name string
}

// CreateCategoryOutput represents the output of category creation.
// Category is nil when the trimmed name was empty. Created is false when
// the call was a no-op (empty name or the category already existed).
type CreateCategoryOutput struct {
	Category *entity.Category
	Created  bool
}

// CreateCategoryUseCase handles category creation logic.
// Creation is idempotent: submitting an existing name returns the existing
// category, and an empty name after trimming is a silent no-op.
type CreateCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
}

// NewCreateCategoryUseCase creates a new CreateCategoryUseCase instance.
func NewCreateCategoryUseCase(categoryRepo adapter.CategoryRepository) *CreateCategoryUseCase {
	return &CreateCategoryUseCase{
		categoryRepo: categoryRepo,
	}
}

// Execute performs the category creation.
func (uc *CreateCategoryUseCase) Execute(ctx context.Context, input CreateCategoryInput) (*CreateCategoryOutput, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return &CreateCategoryOutput{}, nil
	}

	if len(name) > MaxCategoryNameLength {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryNameTooLong,
			fmt.Sprintf("category name must not exceed %d characters", MaxCategoryNameLength),
			domainerror.ErrCategoryNameTooLong,
		)
	}

	existing, err := uc.categoryRepo.FindByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to check category name existence: %w", err)
	}
	if existing != nil {
		return &CreateCategoryOutput{Category: existing}, nil
	}

	category := entity.NewCategory(name)
	if err := uc.categoryRepo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return &CreateCategoryOutput{
		Category: category,
		Created:  true,
	}, nil
}
