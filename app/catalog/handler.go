package catalog

import (
	"context"
	"log/slog"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/mytheresa/inventory-catalog/app/views"
	"github.com/mytheresa/inventory-catalog/models"
)

type ItemCounter interface {
	Count(ctx context.Context, filters models.ItemFilters) (int64, error)
}

type CategoryCounter interface {
	Count(ctx context.Context, filters models.CategoryFilters) (int64, error)
}

// Summary holds the totals shown on the home page.
type Summary struct {
	Items      int64
	Categories int64
}

type CatalogHandler struct {
	items      ItemCounter
	categories CategoryCounter
	renderer   views.Renderer
	logger     *slog.Logger
}

func NewCatalogHandler(items ItemCounter, categories CategoryCounter, renderer views.Renderer, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		items:      items,
		categories: categories,
		renderer:   renderer,
		logger:     logger,
	}
}

// Summary counts items and categories concurrently.
func (h *CatalogHandler) Summary(ctx context.Context) (Summary, error) {
	var summary Summary

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		summary.Items, err = h.items.Count(gctx, models.ItemFilters{})
		return err
	})
	g.Go(func() error {
		var err error
		summary.Categories, err = h.categories.Count(gctx, models.CategoryFilters{})
		return err
	})
	if err := g.Wait(); err != nil {
		return Summary{}, err
	}
	return summary, nil
}

func (h *CatalogHandler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Summary(r.Context())
	if err != nil {
		views.ServerError(w, r, h.renderer, h.logger, err)
		return
	}

	views.Page(w, h.renderer, h.logger, http.StatusOK, views.NewData("Inventory management home", "index").
		With("item_count", summary.Items).
		With("category_count", summary.Categories))
}
