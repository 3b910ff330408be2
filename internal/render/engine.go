// Package render executes theme templates against built page data.
package render

import (
	"errors"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"

	"github.com/inkwell-press/inkwell/internal/config"
	"github.com/inkwell-press/inkwell/internal/content"
	"github.com/inkwell-press/inkwell/internal/render/theme"
)

// Template kinds the engine knows how to render.
const (
	KindSingle   = "single"
	KindList     = "list"
	KindHome     = "home"
	KindTerms    = "terms"
	KindNotFound = "404"
)

// ErrUnknownKind indicates a render request for a template kind the engine
// did not load.
var ErrUnknownKind = errors.New("unknown template kind")

var kinds = []string{KindSingle, KindList, KindHome, KindTerms, KindNotFound}

// Data is the single payload handed to every template kind. Fields not
// relevant to a kind stay zero.
type Data struct {
	Site *config.SiteConfig

	Page  *content.Page
	Pages []*content.Page

	Terms        []*content.Term
	TaxonomyBase string // e.g. "/tags/"

	Title       string
	Description string
	Permalink   string
	Content     template.HTML // rendered _index.md body for list/home pages

	LiveReload bool
}

// Engine holds one parsed template set per kind. Each set is the base
// layout plus the kind's "main" block, with user layout files overriding
// the embedded defaults file-by-file.
type Engine struct {
	templates map[string]*template.Template
}

// NewEngine parses the built-in theme, overlaying files from layoutsDir
// when it exists.
func NewEngine(layoutsDir string, site *config.SiteConfig) (*Engine, error) {
	funcs := funcMap(site)

	templates := make(map[string]*template.Template, len(kinds))
	base, err := loadLayout(layoutsDir, "base.html")
	if err != nil {
		return nil, err
	}

	for _, kind := range kinds {
		src, err := loadLayout(layoutsDir, kind+".html")
		if err != nil {
			return nil, err
		}

		t, err := template.New("base.html").Funcs(funcs).Parse(string(base))
		if err != nil {
			return nil, fmt.Errorf("parse base layout: %w", err)
		}
		if _, err := t.Parse(string(src)); err != nil {
			return nil, fmt.Errorf("parse %s layout: %w", kind, err)
		}
		templates[kind] = t
	}

	return &Engine{templates: templates}, nil
}

// Render executes the template set for kind into w.
func (e *Engine) Render(w io.Writer, kind string, data *Data) error {
	t, ok := e.templates[kind]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}
	if err := t.ExecuteTemplate(w, "base.html", data); err != nil {
		return fmt.Errorf("execute %s template: %w", kind, err)
	}
	return nil
}

// loadLayout returns the user's override for name when present, otherwise
// the embedded default.
func loadLayout(layoutsDir, name string) ([]byte, error) {
	if layoutsDir != "" {
		userPath := filepath.Join(layoutsDir, name)
		if data, err := os.ReadFile(userPath); err == nil {
			return data, nil
		}
	}
	data, err := theme.Templates.ReadFile("templates/" + name)
	if err != nil {
		return nil, fmt.Errorf("load layout %s: %w", name, err)
	}
	return data, nil
}
