package items

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/mytheresa/inventory-catalog/app/validation"
	"github.com/mytheresa/inventory-catalog/app/views"
	"github.com/mytheresa/inventory-catalog/models"
)

const notFoundMessage = "Item not found"

type ItemHandler struct {
	service  *Service
	renderer views.Renderer
	logger   *slog.Logger
}

func NewItemHandler(s *Service, renderer views.Renderer, logger *slog.Logger) *ItemHandler {
	return &ItemHandler{
		service:  s,
		renderer: renderer,
		logger:   logger,
	}
}

func (h *ItemHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.List(r.Context())
	if err != nil {
		views.ServerError(w, r, h.renderer, h.logger, err)
		return
	}

	views.Page(w, h.renderer, h.logger, http.StatusOK, views.NewData("Item List", "item_list").
		With("item_list", items))
}

func (h *ItemHandler) HandleDetail(w http.ResponseWriter, r *http.Request) {
	item, ok := h.load(w, r)
	if !ok {
		return
	}

	views.Page(w, h.renderer, h.logger, http.StatusOK, views.NewData("Item Detail", "item_detail").
		With("item", *item))
}

func (h *ItemHandler) HandleCreateForm(w http.ResponseWriter, r *http.Request) {
	outcome, err := h.service.Form(r.Context(), 0)
	if err != nil {
		views.ServerError(w, r, h.renderer, h.logger, err)
		return
	}

	h.form(w, "Create Item", outcome)
}

func (h *ItemHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	draft, ok := parseDraft(w, r)
	if !ok {
		return
	}

	outcome, err := h.service.Create(r.Context(), draft)
	if err != nil {
		views.ServerError(w, r, h.renderer, h.logger, err)
		return
	}
	if !outcome.Valid() {
		h.form(w, "Create Item", outcome)
		return
	}

	views.Redirect(w, r, outcome.Item.URL())
}

func (h *ItemHandler) HandleUpdateForm(w http.ResponseWriter, r *http.Request) {
	id, ok := views.PathID(r)
	if !ok {
		views.NotFound(w, h.renderer, h.logger, notFoundMessage)
		return
	}

	outcome, err := h.service.Form(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.form(w, "Update Item", outcome)
}

func (h *ItemHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := views.PathID(r)
	if !ok {
		views.NotFound(w, h.renderer, h.logger, notFoundMessage)
		return
	}
	draft, ok := parseDraft(w, r)
	if !ok {
		return
	}

	outcome, err := h.service.Update(r.Context(), id, draft)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if !outcome.Valid() {
		h.form(w, "Update Item", outcome)
		return
	}

	views.Redirect(w, r, outcome.Item.URL())
}

func (h *ItemHandler) HandleDeleteForm(w http.ResponseWriter, r *http.Request) {
	item, ok := h.load(w, r)
	if !ok {
		return
	}

	views.Page(w, h.renderer, h.logger, http.StatusOK, views.NewData("Delete Item", "item_delete").
		With("item", *item))
}

func (h *ItemHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := views.PathID(r)
	if !ok {
		views.NotFound(w, h.renderer, h.logger, notFoundMessage)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		views.ServerError(w, r, h.renderer, h.logger, err)
		return
	}

	views.Redirect(w, r, "/inventory/items")
}

func (h *ItemHandler) load(w http.ResponseWriter, r *http.Request) (*models.Item, bool) {
	id, ok := views.PathID(r)
	if !ok {
		views.NotFound(w, h.renderer, h.logger, notFoundMessage)
		return nil, false
	}

	item, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return nil, false
	}
	return item, true
}

func (h *ItemHandler) form(w http.ResponseWriter, title string, outcome FormOutcome) {
	views.Page(w, h.renderer, h.logger, http.StatusOK, views.NewData(title, "item_form").
		With("item", outcome.Item).
		With("draft", outcome.Draft).
		With("categories", outcome.Categories).
		With("errors", outcome.Errors))
}

func (h *ItemHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, models.ErrItemNotFound) {
		views.NotFound(w, h.renderer, h.logger, notFoundMessage)
		return
	}
	views.ServerError(w, r, h.renderer, h.logger, err)
}

func parseDraft(w http.ResponseWriter, r *http.Request) (Draft, bool) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form body", http.StatusBadRequest)
		return Draft{}, false
	}

	return Draft{
		ProductName: r.PostForm.Get("productName"),
		Description: r.PostForm.Get("description"),
		Price:       r.PostForm.Get("price"),
		Quantity:    r.PostForm.Get("quantity"),
		Category:    validation.List(selection(r.PostForm)),
	}, true
}

// selection returns the submitted category field as nil, a string or a []string,
// depending on how many values the browser sent.
func selection(form url.Values) any {
	values, ok := form["category"]
	switch {
	case !ok:
		return nil
	case len(values) == 1:
		return values[0]
	default:
		return values
	}
}
