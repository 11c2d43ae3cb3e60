package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/wichananm65/user-dashboard/internal/user"
)

//go:embed templates/*.html
var templateFS embed.FS

const layoutFile = "templates/layout.html"

// Views renders the dashboard pages. It satisfies fiber.Views so handlers
// can call c.Render(page, data, "layout").
type Views struct {
	loc *time.Location

	mu    sync.RWMutex
	pages map[string]*template.Template
}

func NewViews(loc *time.Location) *Views {
	if loc == nil {
		loc = time.Local
	}
	return &Views{loc: loc}
}

func (v *Views) funcs() template.FuncMap {
	return template.FuncMap{
		"date": func(createdAt string) string {
			if date := user.FormatDate(createdAt, v.loc); date != "" {
				return date
			}
			return "-"
		},
		"dateTime": func(createdAt string) string {
			t, ok := user.ParseTime(createdAt)
			if !ok {
				return "-"
			}
			return t.In(v.loc).Format("Jan 2, 2006 15:04")
		},
		"dash": func(s string) string {
			if s == "" {
				return "-"
			}
			return s
		},
		"percent": func(n, max int) int {
			if max <= 0 {
				return 0
			}
			return n * 100 / max
		},
	}
}

// Load parses every page together with the layout.
func (v *Views) Load() error {
	entries, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return fmt.Errorf("list templates: %w", err)
	}

	pages := make(map[string]*template.Template, len(entries))
	for _, entry := range entries {
		if entry == layoutFile {
			continue
		}
		name := strings.TrimSuffix(path.Base(entry), ".html")
		tmpl, err := template.New(name).Funcs(v.funcs()).ParseFS(templateFS, layoutFile, entry)
		if err != nil {
			return fmt.Errorf("parse template %s: %w", name, err)
		}
		pages[name] = tmpl
	}

	v.mu.Lock()
	v.pages = pages
	v.mu.Unlock()
	return nil
}

// Render executes page name. With a layout argument the page is wrapped in
// the shared layout, otherwise only its content block is written.
func (v *Views) Render(w io.Writer, name string, binding interface{}, layout ...string) error {
	v.mu.RLock()
	tmpl, ok := v.pages[name]
	v.mu.RUnlock()
	if !ok {
		return fmt.Errorf("template %q not found", name)
	}

	block := "content"
	if len(layout) > 0 && layout[0] != "" {
		block = layout[0]
	}
	return tmpl.ExecuteTemplate(w, block, binding)
}
