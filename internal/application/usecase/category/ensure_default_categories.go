// Package category contains category-related use cases.
package category

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/taxable-tracker/backend/internal/application/adapter"
	"github.com/taxable-tracker/backend/internal/domain/entity"
)

// EnsureDefaultCategoriesUseCase seeds the default category list into an
// empty category table. It is idempotent and intended to run once at
// process start, outside request handling.
type EnsureDefaultCategoriesUseCase struct {
	categoryRepo adapter.CategoryRepository
	defaults     []string
}

// NewEnsureDefaultCategoriesUseCase creates a new EnsureDefaultCategoriesUseCase instance.
func NewEnsureDefaultCategoriesUseCase(categoryRepo adapter.CategoryRepository, defaults []string) *EnsureDefaultCategoriesUseCase {
	return &EnsureDefaultCategoriesUseCase{
		categoryRepo: categoryRepo,
		defaults:     defaults,
	}
}

// Execute seeds the defaults when no categories exist yet.
func (uc *EnsureDefaultCategoriesUseCase) Execute(ctx context.Context) error {
	count, err := uc.categoryRepo.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count categories: %w", err)
	}
	if count > 0 {
		return nil
	}

	seeded := 0
	for _, name := range uc.defaults {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if err := uc.categoryRepo.Create(ctx, entity.NewCategory(name)); err != nil {
			return fmt.Errorf("failed to seed category %q: %w", name, err)
		}
		seeded++
	}

	slog.Info("Seeded default categories", "count", seeded)
	return nil
}
