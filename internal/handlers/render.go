package handlers

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/kulewers/members-only/internal/middleware"
)

//go:embed templates/*.html
var templatesFS embed.FS

const layoutFile = "templates/layout.html"

var funcs = template.FuncMap{
	// sanitized marks text that was HTML-escaped before it was stored.
	"sanitized":  func(s string) template.HTML { return template.HTML(s) },
	"formatTime": func(t time.Time) string { return t.Local().Format("Jan 2, 2006 15:04") },
}

// Renderer executes the embedded page templates inside the shared layout.
type Renderer struct {
	pages map[string]*template.Template
	// Dev shows error details on the error page.
	Dev bool
}

// NewRenderer parses every page in templates/ together with the layout.
func NewRenderer(dev bool) (*Renderer, error) {
	layout, err := template.New("layout").Funcs(funcs).ParseFS(templatesFS, layoutFile)
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	files, err := fs.Glob(templatesFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	pages := make(map[string]*template.Template, len(files))
	for _, file := range files {
		if file == layoutFile {
			continue
		}
		t, err := template.Must(layout.Clone()).ParseFS(templatesFS, file)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", file, err)
		}
		pages[strings.TrimSuffix(path.Base(file), ".html")] = t
	}

	return &Renderer{pages: pages, Dev: dev}, nil
}

// Render writes page name with status. The current user is always exposed
// to the template as CurrentUser.
func (v *Renderer) Render(w http.ResponseWriter, r *http.Request, status int, name string, data map[string]any) {
	t, ok := v.pages[name]
	if !ok {
		v.Fail(w, r, fmt.Errorf("template %q not found", name))
		return
	}
	if data == nil {
		data = map[string]any{}
	}
	data["CurrentUser"] = middleware.CurrentUser(r.Context())

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		slog.Error("template execute", "template", name, "err", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}
