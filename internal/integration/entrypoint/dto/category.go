// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"github.com/taxable-tracker/backend/internal/domain/entity"
)

// CreateCategoryRequest represents the request body for category creation.
// Name is not marked required: a blank name is an application-level no-op,
// not a request error.
type CreateCategoryRequest struct {
	Name string `json:"name"`
}

// CategoryResponse represents a single category in API responses.
type CategoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CategoryListResponse represents the response for listing categories.
type CategoryListResponse struct {
	Categories []CategoryResponse `json:"categories"`
	Total      int                `json:"total"`
}

// ToCategoryResponse converts a Category entity to a CategoryResponse DTO.
func ToCategoryResponse(category *entity.Category) CategoryResponse {
	return CategoryResponse{
		ID:   category.ID.String(),
		Name: category.Name,
	}
}

// ToCategoryListResponse converts category entities to a list response.
func ToCategoryListResponse(categories []*entity.Category) CategoryListResponse {
	items := make([]CategoryResponse, len(categories))
	for i, c := range categories {
		items[i] = ToCategoryResponse(c)
	}
	return CategoryListResponse{
		Categories: items,
		Total:      len(items),
	}
}
