package items

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mytheresa/inventory-catalog/app/database"
	"github.com/mytheresa/inventory-catalog/app/views"
	"github.com/mytheresa/inventory-catalog/models"
)

// --- Mock Repositories ---

type MockItemRepo struct {
	Items     []models.Item
	Err       error
	InsertErr error

	// Fields to capture call arguments
	lastFields []string
	lastSort   models.Sort
	Inserted   []models.Item
	Updated    map[uint]models.Item
	Deleted    []uint
}

func (m *MockItemRepo) FindAll(ctx context.Context, filters models.ItemFilters, fields []string, sort models.Sort) ([]models.Item, error) {
	m.lastFields = fields
	m.lastSort = sort
	if m.Err != nil {
		return nil, m.Err
	}
	return append([]models.Item{}, m.Items...), nil
}

func (m *MockItemRepo) FindByID(ctx context.Context, id uint) (*models.Item, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for _, i := range m.Items {
		if i.ID == id {
			item := i
			return &item, nil
		}
	}
	return nil, models.ErrItemNotFound
}

func (m *MockItemRepo) Insert(ctx context.Context, item *models.Item) error {
	if m.InsertErr != nil {
		return m.InsertErr
	}
	item.ID = uint(len(m.Items) + 1)
	m.Items = append(m.Items, *item)
	m.Inserted = append(m.Inserted, *item)
	return nil
}

func (m *MockItemRepo) UpdateByID(ctx context.Context, id uint, item *models.Item) error {
	if m.Err != nil {
		return m.Err
	}
	for i := range m.Items {
		if m.Items[i].ID == id {
			item.ID = id
			m.Items[i] = *item
			if m.Updated == nil {
				m.Updated = make(map[uint]models.Item)
			}
			m.Updated[id] = *item
			return nil
		}
	}
	return models.ErrItemNotFound
}

func (m *MockItemRepo) DeleteByID(ctx context.Context, id uint) error {
	if m.Err != nil {
		return m.Err
	}
	for i := range m.Items {
		if m.Items[i].ID == id {
			m.Items = append(m.Items[:i], m.Items[i+1:]...)
			m.Deleted = append(m.Deleted, id)
			return nil
		}
	}
	return models.ErrItemNotFound
}

type MockCategoryRepo struct {
	Categories []models.Category
	Err        error
}

func (m *MockCategoryRepo) FindAll(ctx context.Context, filters models.CategoryFilters, fields []string, sort models.Sort) ([]models.Category, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return append([]models.Category{}, m.Categories...), nil
}

func (m *MockCategoryRepo) FindByID(ctx context.Context, id uint) (*models.Category, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for _, c := range m.Categories {
		if c.ID == id {
			category := c
			return &category, nil
		}
	}
	return nil, models.ErrCategoryNotFound
}

func defaultCategories() *MockCategoryRepo {
	return &MockCategoryRepo{Categories: []models.Category{
		{ID: 1, Name: "Microsoft"},
		{ID: 2, Name: "Nintendo"},
		{ID: 3, Name: "Sony"},
	}}
}

// --- Fake Renderer ---

type fakeRenderer struct {
	data views.Data
}

func (f *fakeRenderer) Render(w io.Writer, layout string, data views.Data) error {
	f.data = data
	_, err := io.WriteString(w, data.View())
	return err
}

// --- Helpers ---

func newSQLiteStores(t *testing.T) (*models.ItemsRepository, *models.CategoriesRepository, *gorm.DB) {
	t.Helper()

	db, err := database.OpenSQLite(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	return models.NewItemsRepository(db), models.NewCategoriesRepository(db), db
}

func validDraft(category ...string) Draft {
	return Draft{
		ProductName: "Playstation 5",
		Description: "Next generation console",
		Price:       "400",
		Quantity:    "20",
		Category:    category,
	}
}
