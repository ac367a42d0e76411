package views

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mytheresa/inventory-catalog/models"
)

func TestHTMLRendererRender(t *testing.T) {
	renderer, err := NewHTMLRenderer()
	require.NoError(t, err)

	t.Run("Layout wraps the selected view", func(t *testing.T) {
		var buf bytes.Buffer
		err := renderer.Render(&buf, Layout, NewData("Inventory management home", "index").
			With("item_count", int64(7)).
			With("category_count", int64(3)))
		require.NoError(t, err)

		body := buf.String()
		assert.Contains(t, body, "<title>Inventory management home</title>")
		assert.Contains(t, body, "<strong>Items:</strong> 7")
		assert.Contains(t, body, "<strong>Categories:</strong> 3")
	})

	t.Run("Escaped store values are not escaped twice", func(t *testing.T) {
		var buf bytes.Buffer
		err := renderer.Render(&buf, Layout, NewData("Item Detail", "item_detail").
			With("item", models.Item{
				ID:          4,
				ProductName: "Tom &amp; Jerry",
				Description: "PS5&#x27;s",
				Price:       decimal.RequireFromString("2.5"),
				Quantity:    1,
				Category:    models.Category{ID: 2, Name: "Sony"},
			}))
		require.NoError(t, err)

		body := buf.String()
		assert.Contains(t, body, "<h2>Tom &amp; Jerry</h2>")
		assert.Contains(t, body, "PS5&#x27;s")
		assert.Contains(t, body, "2.50")
		assert.Contains(t, body, `href="/inventory/category/2"`)
	})

	t.Run("Unknown view", func(t *testing.T) {
		var buf bytes.Buffer
		err := renderer.Render(&buf, Layout, NewData("Nope", "missing"))
		assert.Error(t, err)
		assert.Zero(t, buf.Len())
	})
}

func TestNewHTMLRendererFromFS(t *testing.T) {
	fsys := fstest.MapFS{
		"templates/layout.html": {Data: []byte(`{{define "layout"}}[{{.title}}]{{template "content" .}}{{end}}`)},
		"templates/hello.html":  {Data: []byte(`{{define "content"}}hello {{.who}}{{end}}`)},
	}

	renderer, err := newHTMLRenderer(fsys)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, renderer.Render(&buf, Layout, NewData("T", "hello").With("who", "<you>")))
	assert.Equal(t, "[T]hello &lt;you&gt;", buf.String())
}

func TestNotFound(t *testing.T) {
	renderer, err := NewHTMLRenderer()
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	NotFound(rec, renderer, slog.New(slog.NewTextHandler(io.Discard, nil)), "Category not found")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Category not found")
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
}

type failingRenderer struct{}

func (failingRenderer) Render(io.Writer, string, Data) error {
	return errors.New("template exploded")
}

func TestPageLogsRenderFailure(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	rec := httptest.NewRecorder()
	Page(rec, failingRenderer{}, logger, http.StatusOK, NewData("Item List", "item_list"))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, logs.String(), "render page")
	assert.Contains(t, logs.String(), "view=item_list")
	assert.Contains(t, logs.String(), "template exploded")
}

func TestServerErrorLogsRequestID(t *testing.T) {
	renderer, err := NewHTMLRenderer()
	require.NoError(t, err)

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	req := httptest.NewRequest(http.MethodGet, "/inventory/items", nil)
	req = req.WithContext(WithRequestID(req.Context(), "req-42"))
	rec := httptest.NewRecorder()

	ServerError(rec, req, renderer, logger, errors.New("connection refused"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, logs.String(), "request_id=req-42")
	assert.Contains(t, logs.String(), "connection refused")
}

func TestRequestID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, RequestID(req.Context()))

	ctx := WithRequestID(req.Context(), "abc")
	assert.Equal(t, "abc", RequestID(ctx))
}
