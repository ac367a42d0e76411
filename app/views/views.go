// Package views renders catalog pages.
//
// Every page is rendered through a layout; the payload's viewToInclude entry picks the
// content template placed inside it. String fields coming from the store are already
// entity-escaped by the validation layer and are emitted with the raw func.
package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"

	"github.com/mytheresa/inventory-catalog/app/validation"
)

const (
	Layout = "layout"

	KeyTitle = "title"
	KeyView  = "viewToInclude"
)

// Data is the payload handed to a template.
type Data map[string]any

// NewData returns a payload carrying the page title and the content view.
func NewData(title, view string) Data {
	return Data{KeyTitle: title, KeyView: view}
}

// With sets key to value and returns d for chaining.
func (d Data) With(key string, value any) Data {
	d[key] = value
	return d
}

func (d Data) Title() string {
	s, _ := d[KeyTitle].(string)
	return s
}

func (d Data) View() string {
	s, _ := d[KeyView].(string)
	return s
}

type Renderer interface {
	Render(w io.Writer, layout string, data Data) error
}

//go:embed templates/*.html
var templateFS embed.FS

// HTMLRenderer renders the embedded html/template views.
type HTMLRenderer struct {
	views map[string]*template.Template
}

var funcs = template.FuncMap{
	// raw marks a value escaped by the validation layer as safe HTML.
	"raw": func(s string) template.HTML {
		return template.HTML(s)
	},
	"unescape": validation.Unescape,
}

func NewHTMLRenderer() (*HTMLRenderer, error) {
	return newHTMLRenderer(templateFS)
}

func newHTMLRenderer(fsys fs.FS) (*HTMLRenderer, error) {
	layout, err := template.New(Layout).Funcs(funcs).ParseFS(fsys, "templates/"+Layout+".html")
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	files, err := fs.Glob(fsys, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}

	r := &HTMLRenderer{views: make(map[string]*template.Template, len(files))}
	for _, file := range files {
		name := strings.TrimSuffix(path.Base(file), ".html")
		if name == Layout {
			continue
		}

		view, err := layout.Clone()
		if err != nil {
			return nil, fmt.Errorf("clone layout for %s: %w", name, err)
		}
		if _, err := view.ParseFS(fsys, file); err != nil {
			return nil, fmt.Errorf("parse view %s: %w", name, err)
		}
		r.views[name] = view
	}
	return r, nil
}

// Render executes layout with the content view named by data's viewToInclude.
// Nothing is written to w when rendering fails.
func (r *HTMLRenderer) Render(w io.Writer, layout string, data Data) error {
	view, ok := r.views[data.View()]
	if !ok {
		return fmt.Errorf("render: unknown view %q", data.View())
	}

	var buf bytes.Buffer
	if err := view.ExecuteTemplate(&buf, layout, data); err != nil {
		return fmt.Errorf("render %s: %w", data.View(), err)
	}
	_, err := buf.WriteTo(w)
	return err
}
