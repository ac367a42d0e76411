package items

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/mytheresa/inventory-catalog/app/validation"
	"github.com/mytheresa/inventory-catalog/models"
)

const (
	productNameMinLength = 2
	productNameMaxLength = 100
	descriptionMaxLength = 300
	pricePlaces          = 2
)

// priceMax is the largest value the decimal(10,2) price column holds.
var priceMax = decimal.RequireFromString("99999999.99")

// ItemStore is the persistence contract the service needs for items.
type ItemStore interface {
	FindAll(ctx context.Context, filters models.ItemFilters, fields []string, sort models.Sort) ([]models.Item, error)
	FindByID(ctx context.Context, id uint) (*models.Item, error)
	Insert(ctx context.Context, item *models.Item) error
	UpdateByID(ctx context.Context, id uint, item *models.Item) error
	DeleteByID(ctx context.Context, id uint) error
}

// CategoryFinder resolves the category an item references.
type CategoryFinder interface {
	FindAll(ctx context.Context, filters models.CategoryFilters, fields []string, sort models.Sort) ([]models.Category, error)
	FindByID(ctx context.Context, id uint) (*models.Category, error)
}

// Draft is a submitted item form. Category holds every selected category id.
type Draft struct {
	ProductName string
	Description string
	Price       string
	Quantity    string
	Category    []string
}

// CategoryChoice is an option of the category select.
type CategoryChoice struct {
	Category models.Category
	Selected bool
}

// FormOutcome is the result of a create or update, and the data of the item forms.
// When Errors is not empty nothing was written; Draft holds the sanitized input and
// Categories the options to redisplay with the submitted one selected.
type FormOutcome struct {
	Item       models.Item
	Draft      Draft
	Errors     validation.Errors
	Categories []CategoryChoice
}

func (o FormOutcome) Valid() bool {
	return len(o.Errors) == 0
}

type Service struct {
	items      ItemStore
	categories CategoryFinder
}

func NewService(items ItemStore, categories CategoryFinder) *Service {
	return &Service{
		items:      items,
		categories: categories,
	}
}

var itemSchema = validation.Schema{
	{Name: "productName", Rules: []validation.Rule{
		validation.Trim,
		validation.MinLength(productNameMinLength, fmt.Sprintf("Product name must contain at least %d characters", productNameMinLength)),
		validation.MaxLength(productNameMaxLength, fmt.Sprintf("Product name must not exceed %d characters", productNameMaxLength)),
		validation.Escape,
	}},
	{Name: "description", Rules: []validation.Rule{
		validation.Trim,
		validation.Required("Description must not be empty"),
		validation.MaxLength(descriptionMaxLength, fmt.Sprintf("Description must not exceed %d characters", descriptionMaxLength)),
		validation.Escape,
	}},
	{Name: "price", Rules: []validation.Rule{
		validation.Trim,
		validation.Float(decimal.Zero, "Price must be a number greater than or equal to 0"),
		validation.Precision(priceMax, pricePlaces, fmt.Sprintf("Price must not exceed %s and have at most %d decimal places", priceMax.StringFixed(pricePlaces), pricePlaces)),
	}},
	{Name: "quantity", Rules: []validation.Rule{
		validation.Trim,
		validation.Int(0, "Quantity must be a whole number greater than or equal to 0"),
	}},
}

func (s *Service) List(ctx context.Context) ([]models.Item, error) {
	return s.items.FindAll(ctx, models.ItemFilters{}, []string{"id", "product_name", "category_id"}, models.SortBy("product_name"))
}

func (s *Service) Get(ctx context.Context, id uint) (*models.Item, error) {
	return s.items.FindByID(ctx, id)
}

// Form returns the data of the item form: empty for id 0, the stored item otherwise.
func (s *Service) Form(ctx context.Context, id uint) (FormOutcome, error) {
	var outcome FormOutcome
	if id != 0 {
		item, err := s.items.FindByID(ctx, id)
		if err != nil {
			return FormOutcome{}, err
		}
		outcome.Item = *item
		outcome.Draft = Draft{
			ProductName: item.ProductName,
			Description: item.Description,
			Price:       item.Price.String(),
			Quantity:    strconv.Itoa(item.Quantity),
			Category:    []string{strconv.FormatUint(uint64(item.CategoryID), 10)},
		}
	}

	choices, err := s.choices(ctx, outcome.Draft.Category)
	if err != nil {
		return FormOutcome{}, err
	}
	outcome.Categories = choices
	return outcome, nil
}

// Create validates draft and inserts the item.
func (s *Service) Create(ctx context.Context, draft Draft) (FormOutcome, error) {
	outcome, err := s.validate(ctx, draft)
	if err != nil || !outcome.Valid() {
		return outcome, err
	}

	if err := s.items.Insert(ctx, &outcome.Item); err != nil {
		return FormOutcome{}, err
	}
	return outcome, nil
}

// Update validates draft and replaces every mutable field of the item.
func (s *Service) Update(ctx context.Context, id uint, draft Draft) (FormOutcome, error) {
	outcome, err := s.validate(ctx, draft)
	if err != nil || !outcome.Valid() {
		return outcome, err
	}

	if err := s.items.UpdateByID(ctx, id, &outcome.Item); err != nil {
		return FormOutcome{}, err
	}
	return outcome, nil
}

// Delete removes the item. Deleting an unknown id succeeds.
func (s *Service) Delete(ctx context.Context, id uint) error {
	if err := s.items.DeleteByID(ctx, id); err != nil && !errors.Is(err, models.ErrItemNotFound) {
		return err
	}
	return nil
}

// validate sanitizes draft and resolves its category. The returned error is reserved
// for store failures; invalid input is reported in FormOutcome.Errors.
func (s *Service) validate(ctx context.Context, draft Draft) (FormOutcome, error) {
	values, errs := itemSchema.Apply(validation.Input{
		"productName": draft.ProductName,
		"description": draft.Description,
		"price":       draft.Price,
		"quantity":    draft.Quantity,
	})

	selection, categoryErrs := validation.Each("category", validation.List(draft.Category),
		validation.Trim,
		validation.Required("Category must be selected"),
		validation.Escape,
	)
	errs = append(errs, categoryErrs...)

	outcome := FormOutcome{
		Draft: Draft{
			ProductName: values["productName"],
			Description: values["description"],
			Price:       values["price"],
			Quantity:    values["quantity"],
			Category:    selection,
		},
	}

	category, categoryErr, err := s.resolveCategory(ctx, selection)
	if err != nil {
		return FormOutcome{}, err
	}
	if categoryErr != "" && !errs.Has("category") {
		errs = append(errs, validation.FieldError{Field: "category", Message: categoryErr})
	}

	if len(errs) > 0 {
		outcome.Errors = errs
		choices, err := s.choices(ctx, selection)
		if err != nil {
			return FormOutcome{}, err
		}
		outcome.Categories = choices
		return outcome, nil
	}

	quantity, _ := strconv.Atoi(values["quantity"])
	outcome.Item = models.Item{
		ProductName: values["productName"],
		Description: values["description"],
		Price:       decimal.RequireFromString(values["price"]),
		Quantity:    quantity,
		CategoryID:  category.ID,
		Category:    *category,
	}
	return outcome, nil
}

// resolveCategory collapses the selection to its first id and loads that category.
// A non-empty message reports a selection that does not reference a category.
func (s *Service) resolveCategory(ctx context.Context, selection []string) (*models.Category, string, error) {
	if len(selection) == 0 {
		return nil, "Category must be selected", nil
	}

	id, err := strconv.ParseUint(selection[0], 10, 0)
	if err != nil || id == 0 {
		return nil, "Selected category is not valid", nil
	}

	category, err := s.categories.FindByID(ctx, uint(id))
	if errors.Is(err, models.ErrCategoryNotFound) {
		return nil, "Selected category does not exist", nil
	}
	if err != nil {
		return nil, "", err
	}
	return category, "", nil
}

// choices lists every category, marking those in selected.
func (s *Service) choices(ctx context.Context, selected []string) ([]CategoryChoice, error) {
	categories, err := s.categories.FindAll(ctx, models.CategoryFilters{}, []string{"id", "name"}, models.SortBy("name"))
	if err != nil {
		return nil, err
	}

	marked := make(map[string]bool, len(selected))
	for _, id := range selected {
		marked[id] = true
	}

	choices := make([]CategoryChoice, len(categories))
	for i, c := range categories {
		choices[i] = CategoryChoice{
			Category: c,
			Selected: marked[strconv.FormatUint(uint64(c.ID), 10)],
		}
	}
	return choices, nil
}
