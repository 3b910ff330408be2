// Package scaffold creates new site trees and new content files from
// embedded templates.
package scaffold

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"github.com/inkwell-press/inkwell/internal/content"
	"github.com/inkwell-press/inkwell/internal/frontmatter"
	"github.com/inkwell-press/inkwell/internal/logfields"
)

// Templates contains the embedded site skeleton. Files use Go text/template
// syntax and carry a .tmpl suffix that is stripped on write.
//
//go:embed all:templates
var Templates embed.FS

// Sentinel errors for scaffolding.
var (
	ErrSiteExists = errors.New("site directory already exists")
	ErrPostExists = errors.New("content file already exists")
)

// SiteData holds the template variables passed to every skeleton template.
type SiteData struct {
	SiteName string
	Date     string
}

// InitSite writes a fresh site skeleton into dir. The directory must not
// already contain an inkwell.yaml unless force is set.
func InitSite(dir, siteName string, force bool) error {
	if siteName == "" {
		siteName = titleFromDir(dir)
	}
	if !force {
		if _, err := os.Stat(filepath.Join(dir, "inkwell.yaml")); err == nil {
			return fmt.Errorf("%w: %s", ErrSiteExists, dir)
		}
	}

	data := SiteData{
		SiteName: siteName,
		Date:     time.Now().Format("2006-01-02T15:04:05Z07:00"),
	}

	const root = "templates"
	err := fs.WalkDir(Templates, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		outPath := strings.TrimSuffix(filepath.Join(dir, relPath), ".tmpl")

		if d.IsDir() {
			return os.MkdirAll(outPath, 0o755)
		}

		raw, err := Templates.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		tmpl, err := template.New(filepath.Base(path)).Parse(string(raw))
		if err != nil {
			return fmt.Errorf("parse template %s: %w", path, err)
		}

		if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
			return err
		}
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("create %s: %w", outPath, err)
		}
		defer f.Close()

		if err := tmpl.Execute(f, data); err != nil {
			return fmt.Errorf("execute template %s: %w", path, err)
		}
		slog.Info("Created", logfields.Path(outPath))
		return nil
	})
	if err != nil {
		return err
	}

	slog.Info("Site initialized", logfields.Path(dir), slog.String("site", siteName))
	return nil
}

// NewPost creates a new draft content file under contentDir. target is
// either a bare title ("My First Post") or a relative path
// ("posts/my-first-post.md"); both produce a slugged filename.
func NewPost(contentDir, target string) (string, error) {
	title := target
	rel := target

	if strings.HasSuffix(target, ".md") {
		base := strings.TrimSuffix(filepath.Base(target), ".md")
		title = content.Titleize(strings.ReplaceAll(base, "-", " "))
	} else {
		slug := content.Slugify(filepath.Base(target))
		dir := filepath.Dir(target)
		if dir == "." {
			dir = "posts"
		}
		rel = filepath.Join(dir, slug+".md")
	}

	outPath := filepath.Join(contentDir, filepath.FromSlash(rel))
	if _, err := os.Stat(outPath); err == nil {
		return "", fmt.Errorf("%w: %s", ErrPostExists, rel)
	}

	style := frontmatter.Style{Format: frontmatter.FormatYAML, Newline: "\n"}
	raw, err := frontmatter.SerializeYAML(map[string]any{
		"title": title,
		"date":  time.Now().Format("2006-01-02T15:04:05Z07:00"),
		"draft": true,
	}, style)
	if err != nil {
		return "", fmt.Errorf("serialize front matter: %w", err)
	}
	doc := frontmatter.Join(raw, []byte{}, true, style)

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(outPath, doc, 0o644); err != nil {
		return "", fmt.Errorf("write post %s: %w", outPath, err)
	}

	slog.Info("Post created", logfields.Path(outPath))
	return outPath, nil
}

// titleFromDir derives a human site name from a directory path.
func titleFromDir(dir string) string {
	base := filepath.Base(dir)
	if base == "." || base == string(filepath.Separator) {
		if wd, err := os.Getwd(); err == nil {
			base = filepath.Base(wd)
		}
	}
	return content.Titleize(strings.ReplaceAll(base, "-", " "))
}
