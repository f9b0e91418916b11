// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/taxable-tracker/backend/internal/application/adapter"
	"github.com/taxable-tracker/backend/internal/domain/entity"
	"github.com/taxable-tracker/backend/internal/integration/persistence/model"
)

// categoryRepository implements the adapter.CategoryRepository interface.
type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new category repository instance.
func NewCategoryRepository(db *gorm.DB) adapter.CategoryRepository {
	return &categoryRepository{
		db: db,
	}
}

// Create creates a new category in the database.
func (r *categoryRepository) Create(ctx context.Context, category *entity.Category) error {
	categoryModel := model.CategoryFromEntity(category)
	result := r.db.WithContext(ctx).Create(categoryModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindAll retrieves all categories ordered by name ascending.
func (r *categoryRepository) FindAll(ctx context.Context) ([]*entity.Category, error) {
	var categoryModels []model.CategoryModel
	result := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&categoryModels)
	if result.Error != nil {
		return nil, result.Error
	}

	categories := make([]*entity.Category, len(categoryModels))
	for i, cm := range categoryModels {
		categories[i] = cm.ToEntity()
	}
	return categories, nil
}

// FindByName retrieves a category by its exact name.
func (r *categoryRepository) FindByName(ctx context.Context, name string) (*entity.Category, error) {
	var categoryModel model.CategoryModel
	result := r.db.WithContext(ctx).
		Where("name = ?", name).
		First(&categoryModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return categoryModel.ToEntity(), nil
}

// Count returns the number of categories.
func (r *categoryRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&model.CategoryModel{}).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}
	return count, nil
}
