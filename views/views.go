// Package views holds the embedded page templates and the gin renderer
// that serves them.
package views

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"strings"
	"time"

	"github.com/gin-gonic/gin/render"
)

//go:embed templates content static
var files embed.FS

// Layout is the outer template every page is executed through.
const Layout = "layout"

var funcs = template.FuncMap{
	"datetime": func(t time.Time) string {
		if t.IsZero() {
			return "-"
		}
		return t.Local().Format("2006-01-02 15:04")
	},
	"lower": strings.ToLower,
	"inc":   func(i int) int { return i + 1 },
}

// Renderer implements gin's HTMLRender with one template set per page.
type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer parses every page under templates/ together with the layout
// and partials.
func NewRenderer() (*Renderer, error) {
	entries, err := fs.ReadDir(files, "templates")
	if err != nil {
		return nil, fmt.Errorf("views: %w", err)
	}

	r := &Renderer{pages: make(map[string]*template.Template)}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || name == "layout.html" || path.Ext(name) != ".html" {
			continue
		}
		tmpl, err := template.New(name).Funcs(funcs).ParseFS(files,
			"templates/layout.html",
			"templates/partials/*.html",
			"templates/"+name,
		)
		if err != nil {
			return nil, fmt.Errorf("views: failed to parse %s: %w", name, err)
		}
		r.pages[strings.TrimSuffix(name, ".html")] = tmpl
	}
	return r, nil
}

// Instance returns the render for page name.
func (r *Renderer) Instance(name string, data any) render.Render {
	tmpl, ok := r.pages[name]
	if !ok {
		tmpl = template.Must(template.New(name).Parse(`<h1>Page not found</h1>`))
		return render.HTML{Template: tmpl, Data: data}
	}
	return render.HTML{Template: tmpl, Name: Layout, Data: data}
}

// Has reports whether a page template exists.
func (r *Renderer) Has(name string) bool {
	_, ok := r.pages[name]
	return ok
}

// Static returns the embedded stylesheet and script files.
func Static() fs.FS {
	sub, err := fs.Sub(files, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
