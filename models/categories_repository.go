package models

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	// ErrCategoryNotFound is returned when a category is not found.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrCategoryNameConflict is returned when the unique name index rejects a write.
	ErrCategoryNameConflict = errors.New("category name already exists")
)

type CategoryFilters struct {
	Name string
}

type CategoriesRepository struct {
	db *gorm.DB
}

func NewCategoriesRepository(db *gorm.DB) *CategoriesRepository {
	return &CategoriesRepository{
		db: db,
	}
}

func (r *CategoriesRepository) scoped(ctx context.Context, filters CategoryFilters, collation Collation) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&Category{})
	if filters.Name != "" {
		query = equalFold(query, "name", filters.Name, collation)
	}
	return query
}

func (r *CategoriesRepository) FindAll(ctx context.Context, filters CategoryFilters, fields []string, sort Sort) ([]Category, error) {
	categories := make([]Category, 0)
	query := applyProjection(r.scoped(ctx, filters, CollationExact), fields, sort)
	if err := query.Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("find categories: %w", err)
	}
	return categories, nil
}

func (r *CategoriesRepository) FindByID(ctx context.Context, id uint) (*Category, error) {
	var category Category
	if err := r.db.WithContext(ctx).First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("find category %d: %w", id, err)
	}
	return &category, nil
}

// FindOne returns the first category matching filters under the given collation.
func (r *CategoriesRepository) FindOne(ctx context.Context, filters CategoryFilters, collation Collation) (*Category, error) {
	var category Category
	if err := r.scoped(ctx, filters, collation).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("find category: %w", err)
	}
	return &category, nil
}

func (r *CategoriesRepository) Insert(ctx context.Context, category *Category) error {
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		if isUniqueConstraintErr(err) {
			return ErrCategoryNameConflict
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

// UpdateByID replaces the mutable fields of the category identified by id.
// On success category.ID is set to id.
func (r *CategoriesRepository) UpdateByID(ctx context.Context, id uint, category *Category) error {
	result := r.db.WithContext(ctx).
		Model(&Category{}).
		Where("id = ?", id).
		Update("name", category.Name)
	if result.Error != nil {
		if isUniqueConstraintErr(result.Error) {
			return ErrCategoryNameConflict
		}
		return fmt.Errorf("update category %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrCategoryNotFound
	}
	category.ID = id
	return nil
}

func (r *CategoriesRepository) DeleteByID(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&Category{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete category %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

func (r *CategoriesRepository) Count(ctx context.Context, filters CategoryFilters) (int64, error) {
	var total int64
	if err := r.scoped(ctx, filters, CollationExact).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("count categories: %w", err)
	}
	return total, nil
}
