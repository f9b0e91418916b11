// Package adapter defines interfaces for external dependencies (repositories, services).
package adapter

import (
	"context"

	"github.com/taxable-tracker/backend/internal/domain/entity"
)

// CategoryRepository defines the interface for category data operations.
type CategoryRepository interface {
	// Create persists a new category.
	Create(ctx context.Context, category *entity.Category) error

	// FindAll retrieves all categories ordered by name ascending.
	FindAll(ctx context.Context) ([]*entity.Category, error)

	// FindByName retrieves a category by its exact name, or nil when absent.
	FindByName(ctx context.Context, name string) (*entity.Category, error)

	// Count returns the number of categories.
	Count(ctx context.Context) (int64, error)
}
