package categories

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/mytheresa/inventory-catalog/app/validation"
	"github.com/mytheresa/inventory-catalog/app/views"
	"github.com/mytheresa/inventory-catalog/models"
)

const notFoundMessage = "Category not found"

type CategoryHandler struct {
	service  *Service
	renderer views.Renderer
	logger   *slog.Logger
}

func NewCategoryHandler(s *Service, renderer views.Renderer, logger *slog.Logger) *CategoryHandler {
	return &CategoryHandler{
		service:  s,
		renderer: renderer,
		logger:   logger,
	}
}

func (h *CategoryHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.List(r.Context())
	if err != nil {
		views.ServerError(w, r, h.renderer, h.logger, err)
		return
	}

	views.Page(w, h.renderer, h.logger, http.StatusOK, views.NewData("Category List", "category_list").
		With("category_list", categories))
}

func (h *CategoryHandler) HandleDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := views.PathID(r)
	if !ok {
		views.NotFound(w, h.renderer, h.logger, notFoundMessage)
		return
	}

	detail, err := h.service.GetWithItems(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	views.Page(w, h.renderer, h.logger, http.StatusOK, views.NewData("Category Detail", "category_detail").
		With("category", detail.Category).
		With("category_items", detail.Items))
}

func (h *CategoryHandler) HandleCreateForm(w http.ResponseWriter, r *http.Request) {
	h.form(w, "Create Category", Draft{}, nil)
}

func (h *CategoryHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form body", http.StatusBadRequest)
		return
	}

	outcome, err := h.service.Create(r.Context(), Draft{Name: r.PostForm.Get("name")})
	if err != nil {
		views.ServerError(w, r, h.renderer, h.logger, err)
		return
	}
	if !outcome.Valid() {
		h.form(w, "Create Category", outcome.Draft, outcome.Errors)
		return
	}

	views.Redirect(w, r, outcome.Category.URL())
}

func (h *CategoryHandler) HandleUpdateForm(w http.ResponseWriter, r *http.Request) {
	id, ok := views.PathID(r)
	if !ok {
		views.NotFound(w, h.renderer, h.logger, notFoundMessage)
		return
	}

	category, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.form(w, "Update Category", Draft{Name: category.Name}, nil)
}

func (h *CategoryHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := views.PathID(r)
	if !ok {
		views.NotFound(w, h.renderer, h.logger, notFoundMessage)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form body", http.StatusBadRequest)
		return
	}

	outcome, err := h.service.Update(r.Context(), id, Draft{Name: r.PostForm.Get("name")})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if !outcome.Valid() {
		h.form(w, "Update Category", outcome.Draft, outcome.Errors)
		return
	}

	views.Redirect(w, r, outcome.Category.URL())
}

func (h *CategoryHandler) HandleDeleteForm(w http.ResponseWriter, r *http.Request) {
	id, ok := views.PathID(r)
	if !ok {
		views.NotFound(w, h.renderer, h.logger, notFoundMessage)
		return
	}

	detail, err := h.service.GetWithItems(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.deletePage(w, detail.Category, detail.Items)
}

func (h *CategoryHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := views.PathID(r)
	if !ok {
		views.NotFound(w, h.renderer, h.logger, notFoundMessage)
		return
	}

	result, err := h.service.Delete(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if result.Blocked() {
		h.deletePage(w, result.Category, result.Items)
		return
	}

	views.Redirect(w, r, "/inventory/categories")
}

func (h *CategoryHandler) form(w http.ResponseWriter, title string, draft Draft, errs validation.Errors) {
	views.Page(w, h.renderer, h.logger, http.StatusOK, views.NewData(title, "category_form").
		With("draft", draft).
		With("errors", errs))
}

func (h *CategoryHandler) deletePage(w http.ResponseWriter, category models.Category, items []models.Item) {
	views.Page(w, h.renderer, h.logger, http.StatusOK, views.NewData("Delete Category", "category_delete").
		With("category", category).
		With("category_items", items))
}

func (h *CategoryHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, models.ErrCategoryNotFound) {
		views.NotFound(w, h.renderer, h.logger, notFoundMessage)
		return
	}
	views.ServerError(w, r, h.renderer, h.logger, err)
}
