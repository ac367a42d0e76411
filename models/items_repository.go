package models

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ErrItemNotFound is returned when an item is not found.
var ErrItemNotFound = errors.New("item not found")

// itemColumns are the columns replaced by UpdateByID.
var itemColumns = []string{"ProductName", "Description", "Price", "Quantity", "CategoryID"}

type ItemFilters struct {
	CategoryID uint
}

type ItemsRepository struct {
	db *gorm.DB
}

func NewItemsRepository(db *gorm.DB) *ItemsRepository {
	return &ItemsRepository{
		db: db,
	}
}

func (r *ItemsRepository) scoped(ctx context.Context, filters ItemFilters) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&Item{})
	if filters.CategoryID != 0 {
		query = query.Where("items.category_id = ?", filters.CategoryID)
	}
	return query
}

// FindAll returns the items matching filters with their category preloaded.
// When fields is not empty it must include category_id for the preload to resolve.
func (r *ItemsRepository) FindAll(ctx context.Context, filters ItemFilters, fields []string, sort Sort) ([]Item, error) {
	items := make([]Item, 0)
	query := applyProjection(r.scoped(ctx, filters), fields, sort).Preload("Category")
	if err := query.Find(&items).Error; err != nil {
		return nil, fmt.Errorf("find items: %w", err)
	}
	return items, nil
}

func (r *ItemsRepository) FindByID(ctx context.Context, id uint) (*Item, error) {
	var item Item
	if err := r.db.WithContext(ctx).
		Preload("Category").
		First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("find item %d: %w", id, err)
	}
	return &item, nil
}

func (r *ItemsRepository) Insert(ctx context.Context, item *Item) error {
	if err := r.db.WithContext(ctx).Omit("Category").Create(item).Error; err != nil {
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// UpdateByID replaces every mutable field of the item identified by id,
// zero values included. On success item.ID is set to id.
func (r *ItemsRepository) UpdateByID(ctx context.Context, id uint, item *Item) error {
	result := r.db.WithContext(ctx).
		Model(&Item{}).
		Where("id = ?", id).
		Select(itemColumns).
		Updates(item)
	if result.Error != nil {
		return fmt.Errorf("update item %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrItemNotFound
	}
	item.ID = id
	return nil
}

func (r *ItemsRepository) DeleteByID(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&Item{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete item %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (r *ItemsRepository) Count(ctx context.Context, filters ItemFilters) (int64, error) {
	var total int64
	if err := r.scoped(ctx, filters).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("count items: %w", err)
	}
	return total, nil
}
