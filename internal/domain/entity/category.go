// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// FuelCategoryName is the category fuel costs are folded into on reports
// and exports.
const FuelCategoryName = "Fuel"

// Category represents a transaction category.
// Names are unique; categories are never updated or deleted.
type Category struct {
	ID        uuid.UUID
	Name      string
	CreatedAt time.Time
}

// NewCategory creates a new Category entity.
// Name trimming and emptiness checks are the caller's responsibility
// (Application layer).
func NewCategory(name string) *Category {
	return &Category{
		ID:        uuid.New(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
}
