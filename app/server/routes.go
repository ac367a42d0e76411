package server

import (
	"log/slog"
	"net/http"

	"gorm.io/gorm"

	"github.com/mytheresa/inventory-catalog/app/catalog"
	"github.com/mytheresa/inventory-catalog/app/categories"
	"github.com/mytheresa/inventory-catalog/app/items"
	"github.com/mytheresa/inventory-catalog/app/views"
	"github.com/mytheresa/inventory-catalog/models"
)

type Handlers struct {
	Catalog    *catalog.CatalogHandler
	Categories *categories.CategoryHandler
	Items      *items.ItemHandler
}

// NewHandlers wires repositories, services and handlers on top of db.
func NewHandlers(db *gorm.DB, renderer views.Renderer, logger *slog.Logger) Handlers {
	categoriesRepo := models.NewCategoriesRepository(db)
	itemsRepo := models.NewItemsRepository(db)

	return Handlers{
		Catalog:    catalog.NewCatalogHandler(itemsRepo, categoriesRepo, renderer, logger),
		Categories: categories.NewCategoryHandler(categories.NewService(categoriesRepo, itemsRepo), renderer, logger),
		Items:      items.NewItemHandler(items.NewService(itemsRepo, categoriesRepo), renderer, logger),
	}
}

// NewRouter registers every catalog route and wraps them in the request middleware.
func NewRouter(h Handlers, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/inventory", http.StatusFound)
	})
	mux.HandleFunc("GET /inventory", h.Catalog.HandleIndex)

	mux.HandleFunc("GET /inventory/categories", h.Categories.HandleList)
	mux.HandleFunc("GET /inventory/category/create", h.Categories.HandleCreateForm)
	mux.HandleFunc("POST /inventory/category/create", h.Categories.HandleCreate)
	mux.HandleFunc("GET /inventory/category/{id}", h.Categories.HandleDetail)
	mux.HandleFunc("GET /inventory/category/{id}/update", h.Categories.HandleUpdateForm)
	mux.HandleFunc("POST /inventory/category/{id}/update", h.Categories.HandleUpdate)
	mux.HandleFunc("GET /inventory/category/{id}/delete", h.Categories.HandleDeleteForm)
	mux.HandleFunc("POST /inventory/category/{id}/delete", h.Categories.HandleDelete)

	mux.HandleFunc("GET /inventory/items", h.Items.HandleList)
	mux.HandleFunc("GET /inventory/item/create", h.Items.HandleCreateForm)
	mux.HandleFunc("POST /inventory/item/create", h.Items.HandleCreate)
	mux.HandleFunc("GET /inventory/item/{id}", h.Items.HandleDetail)
	mux.HandleFunc("GET /inventory/item/{id}/update", h.Items.HandleUpdateForm)
	mux.HandleFunc("POST /inventory/item/{id}/update", h.Items.HandleUpdate)
	mux.HandleFunc("GET /inventory/item/{id}/delete", h.Items.HandleDeleteForm)
	mux.HandleFunc("POST /inventory/item/{id}/delete", h.Items.HandleDelete)

	return RequestLogger(logger)(Recoverer(logger)(mux))
}
