package categories

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/mytheresa/inventory-catalog/app/validation"
	"github.com/mytheresa/inventory-catalog/models"
)

const (
	nameMaxLength       = 100
	createNameMinLength = 3
	updateNameMinLength = 2
)

// CategoryStore is the persistence contract the service needs for categories.
type CategoryStore interface {
	FindAll(ctx context.Context, filters models.CategoryFilters, fields []string, sort models.Sort) ([]models.Category, error)
	FindByID(ctx context.Context, id uint) (*models.Category, error)
	FindOne(ctx context.Context, filters models.CategoryFilters, collation models.Collation) (*models.Category, error)
	Insert(ctx context.Context, category *models.Category) error
	UpdateByID(ctx context.Context, id uint, category *models.Category) error
	DeleteByID(ctx context.Context, id uint) error
}

// ItemFinder looks up the items referencing a category.
type ItemFinder interface {
	FindAll(ctx context.Context, filters models.ItemFilters, fields []string, sort models.Sort) ([]models.Item, error)
}

// Draft is a submitted category form.
type Draft struct {
	Name string
}

// Outcome is the result of a create or update.
// When Errors is not empty nothing was written and Draft holds the sanitized input.
type Outcome struct {
	Category models.Category
	Draft    Draft
	Errors   validation.Errors
	// Existing is set when create matched a category that already had the name.
	Existing bool
}

func (o Outcome) Valid() bool {
	return len(o.Errors) == 0
}

// Detail is a category with the items that reference it.
type Detail struct {
	Category models.Category
	Items    []models.Item
}

type DeleteStatus int

const (
	Deleted DeleteStatus = iota + 1
	Blocked
)

// DeleteResult reports whether a category was removed or which items prevented it.
type DeleteResult struct {
	Status   DeleteStatus
	Category models.Category
	Items    []models.Item
}

func (r DeleteResult) Deleted() bool {
	return r.Status == Deleted
}

func (r DeleteResult) Blocked() bool {
	return r.Status == Blocked
}

type Service struct {
	categories CategoryStore
	items      ItemFinder
}

func NewService(categories CategoryStore, items ItemFinder) *Service {
	return &Service{
		categories: categories,
		items:      items,
	}
}

func nameSchema(minLength int) validation.Schema {
	return validation.Schema{
		{Name: "name", Rules: []validation.Rule{
			validation.Trim,
			validation.MinLength(minLength, fmt.Sprintf("Category name must contain at least %d characters", minLength)),
			validation.MaxLength(nameMaxLength, fmt.Sprintf("Category name must not exceed %d characters", nameMaxLength)),
			validation.Escape,
		}},
	}
}

var (
	createSchema = nameSchema(createNameMinLength)
	updateSchema = nameSchema(updateNameMinLength)
)

func (s *Service) List(ctx context.Context) ([]models.Category, error) {
	return s.categories.FindAll(ctx, models.CategoryFilters{}, []string{"id", "name"}, models.SortBy("name"))
}

func (s *Service) Get(ctx context.Context, id uint) (*models.Category, error) {
	return s.categories.FindByID(ctx, id)
}

// GetWithItems loads the category and its items concurrently.
// The two reads are independent, a write between them is not excluded.
func (s *Service) GetWithItems(ctx context.Context, id uint) (*Detail, error) {
	var (
		category *models.Category
		items    []models.Item
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		category, err = s.categories.FindByID(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		items, err = s.items.FindAll(gctx,
			models.ItemFilters{CategoryID: id},
			[]string{"id", "product_name", "description", "category_id"},
			models.SortBy("product_name"),
		)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Detail{Category: *category, Items: items}, nil
}

// Create validates draft and inserts a new category unless one with the same name,
// compared case-insensitively, already exists. In that case the existing category is
// returned with Existing set and nothing is written.
func (s *Service) Create(ctx context.Context, draft Draft) (Outcome, error) {
	values, errs := createSchema.Apply(validation.Input{"name": draft.Name})
	outcome := Outcome{Draft: Draft{Name: values["name"]}, Errors: errs}
	if !outcome.Valid() {
		return outcome, nil
	}

	existing, err := s.findByName(ctx, outcome.Draft.Name)
	if err != nil {
		return Outcome{}, err
	}
	if existing != nil {
		outcome.Category = *existing
		outcome.Existing = true
		return outcome, nil
	}

	category := models.Category{Name: outcome.Draft.Name}
	if err := s.categories.Insert(ctx, &category); err != nil {
		if !errors.Is(err, models.ErrCategoryNameConflict) {
			return Outcome{}, err
		}
		// Lost a race with an identical insert.
		existing, err := s.findByName(ctx, outcome.Draft.Name)
		if err != nil {
			return Outcome{}, err
		}
		if existing == nil {
			return Outcome{}, models.ErrCategoryNameConflict
		}
		outcome.Category = *existing
		outcome.Existing = true
		return outcome, nil
	}

	outcome.Category = category
	return outcome, nil
}

// Update validates draft and renames the category in place.
// Names are not compared case-insensitively here; only an exact duplicate rejected by
// the store is reported, as a name error.
func (s *Service) Update(ctx context.Context, id uint, draft Draft) (Outcome, error) {
	values, errs := updateSchema.Apply(validation.Input{"name": draft.Name})
	outcome := Outcome{Draft: Draft{Name: values["name"]}, Errors: errs}
	if !outcome.Valid() {
		return outcome, nil
	}

	category := models.Category{Name: outcome.Draft.Name}
	if err := s.categories.UpdateByID(ctx, id, &category); err != nil {
		if errors.Is(err, models.ErrCategoryNameConflict) {
			outcome.Errors = append(outcome.Errors, validation.FieldError{
				Field:   "name",
				Message: "A category with this name already exists",
			})
			return outcome, nil
		}
		return Outcome{}, err
	}

	outcome.Category = category
	return outcome, nil
}

// Delete removes the category when no item references it. Otherwise nothing is
// changed and the blocking items are returned.
func (s *Service) Delete(ctx context.Context, id uint) (DeleteResult, error) {
	detail, err := s.GetWithItems(ctx, id)
	if err != nil {
		return DeleteResult{}, err
	}

	if len(detail.Items) > 0 {
		return DeleteResult{Status: Blocked, Category: detail.Category, Items: detail.Items}, nil
	}

	if err := s.categories.DeleteByID(ctx, id); err != nil {
		return DeleteResult{}, err
	}
	return DeleteResult{Status: Deleted, Category: detail.Category}, nil
}

func (s *Service) findByName(ctx context.Context, name string) (*models.Category, error) {
	category, err := s.categories.FindOne(ctx, models.CategoryFilters{Name: name}, models.CollationCaseInsensitive)
	if errors.Is(err, models.ErrCategoryNotFound) {
		return nil, nil
	}
	return category, err
}
