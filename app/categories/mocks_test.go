package categories

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mytheresa/inventory-catalog/app/database"
	"github.com/mytheresa/inventory-catalog/app/views"
	"github.com/mytheresa/inventory-catalog/models"
)

// --- Mock Repositories ---

type MockCategoryRepo struct {
	Categories []models.Category
	FindErr    error
	InsertErr  error
	UpdateErr  error
	DeleteErr  error

	// RaceWinner is stored just before InsertErr is returned, as if another
	// request had inserted it first.
	RaceWinner *models.Category

	// Fields to capture call arguments
	lastFields []string
	lastSort   models.Sort
	Inserted   []models.Category
	Deleted    []uint
}

func (m *MockCategoryRepo) FindAll(ctx context.Context, filters models.CategoryFilters, fields []string, sort models.Sort) ([]models.Category, error) {
	m.lastFields = fields
	m.lastSort = sort
	if m.FindErr != nil {
		return nil, m.FindErr
	}
	return append([]models.Category{}, m.Categories...), nil
}

func (m *MockCategoryRepo) FindByID(ctx context.Context, id uint) (*models.Category, error) {
	if m.FindErr != nil {
		return nil, m.FindErr
	}
	for _, c := range m.Categories {
		if c.ID == id {
			category := c
			return &category, nil
		}
	}
	return nil, models.ErrCategoryNotFound
}

func (m *MockCategoryRepo) FindOne(ctx context.Context, filters models.CategoryFilters, collation models.Collation) (*models.Category, error) {
	if m.FindErr != nil {
		return nil, m.FindErr
	}
	for _, c := range m.Categories {
		match := c.Name == filters.Name
		if collation == models.CollationCaseInsensitive {
			match = strings.EqualFold(c.Name, filters.Name)
		}
		if match {
			category := c
			return &category, nil
		}
	}
	return nil, models.ErrCategoryNotFound
}

func (m *MockCategoryRepo) Insert(ctx context.Context, category *models.Category) error {
	if m.InsertErr != nil {
		if m.RaceWinner != nil {
			m.Categories = append(m.Categories, *m.RaceWinner)
		}
		return m.InsertErr
	}
	category.ID = uint(len(m.Categories) + 1)
	m.Categories = append(m.Categories, *category)
	m.Inserted = append(m.Inserted, *category)
	return nil
}

func (m *MockCategoryRepo) UpdateByID(ctx context.Context, id uint, category *models.Category) error {
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	for i, c := range m.Categories {
		if c.ID == id {
			m.Categories[i].Name = category.Name
			category.ID = id
			return nil
		}
	}
	return models.ErrCategoryNotFound
}

func (m *MockCategoryRepo) DeleteByID(ctx context.Context, id uint) error {
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	for i, c := range m.Categories {
		if c.ID == id {
			m.Categories = append(m.Categories[:i], m.Categories[i+1:]...)
			m.Deleted = append(m.Deleted, id)
			return nil
		}
	}
	return models.ErrCategoryNotFound
}

type MockItemRepo struct {
	Items []models.Item
	Err   error
}

func (m *MockItemRepo) FindAll(ctx context.Context, filters models.ItemFilters, fields []string, sort models.Sort) ([]models.Item, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	items := make([]models.Item, 0)
	for _, item := range m.Items {
		if filters.CategoryID == 0 || item.CategoryID == filters.CategoryID {
			items = append(items, item)
		}
	}
	return items, nil
}

// --- Fake Renderer ---

type fakeRenderer struct {
	layout string
	data   views.Data
	calls  int
}

func (f *fakeRenderer) Render(w io.Writer, layout string, data views.Data) error {
	f.layout = layout
	f.data = data
	f.calls++
	_, err := io.WriteString(w, data.View())
	return err
}

// --- Helpers ---

func newSQLiteService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()

	db, err := database.OpenSQLite(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	return NewService(models.NewCategoriesRepository(db), models.NewItemsRepository(db)), db
}
