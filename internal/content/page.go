package content

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"html/template"
	"os"
	"path"
	"strings"
	"time"

	"github.com/inkwell-press/inkwell/internal/frontmatter"
)

// Sentinel errors for content loading.
var (
	ErrBadFrontMatter = errors.New("invalid front matter")
	ErrBadDate        = errors.New("unparseable date")
)

// Metadata is the front matter of a page, per the YAML (`---`) or TOML
// (`+++`) block at the top of the file.
type Metadata struct {
	Title       string   `yaml:"title" toml:"title"`
	Date        string   `yaml:"date" toml:"date"`
	Lastmod     string   `yaml:"lastmod" toml:"lastmod"`
	Author      string   `yaml:"author" toml:"author"`
	Description string   `yaml:"description" toml:"description"`
	Slug        string   `yaml:"slug" toml:"slug"`
	Draft       bool     `yaml:"draft" toml:"draft"`
	Tags        []string `yaml:"tags" toml:"tags"`
	Categories  []string `yaml:"categories" toml:"categories"`
	Aliases     []string `yaml:"aliases" toml:"aliases"`
	Weight      int      `yaml:"weight" toml:"weight"`
}

// Page is a single content document: metadata plus Markdown body, and the
// derived fields the renderer needs.
type Page struct {
	Meta Metadata

	SourcePath string // absolute path to the source file
	RelPath    string // path relative to the content dir
	SourceHash string // hex sha256 of the raw source file
	Section    string // top-level directory under content/, "" for root pages
	Slug       string // final URL slug
	IsIndex    bool   // _index.md section page

	Body    []byte        // Markdown body, front matter removed
	HTML    template.HTML // rendered body, populated by the render stage
	Summary string        // plain-text summary for lists and feeds

	Date    time.Time
	Lastmod time.Time

	WordCount   int
	ReadingTime int // minutes, assuming ~200 words per minute

	Prev *Page
	Next *Page
}

// SummaryDivider marks an explicit summary cut point in a body.
var SummaryDivider = []byte("<!--more-->")

// dateLayouts are accepted front matter date formats, most specific first.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// LoadPage reads and parses a single content file.
//
// The returned page has Body populated but not HTML or Summary; those are
// produced by the build pipeline.
func LoadPage(sourcePath, relPath string) (*Page, error) {
	raw, err := os.ReadFile(sourcePath)
	if err != nil {
		return nil, fmt.Errorf("read page %s: %w", relPath, err)
	}

	var meta Metadata
	body, err := frontmatter.Decode(raw, &meta)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrBadFrontMatter, relPath, err)
	}

	sum := sha256.Sum256(raw)
	page := &Page{
		Meta:       meta,
		SourcePath: sourcePath,
		RelPath:    relPath,
		SourceHash: hex.EncodeToString(sum[:]),
		Section:    sectionOf(relPath),
		Body:       body,
		IsIndex:    isIndexFile(relPath),
	}

	if meta.Date != "" {
		date, err := ParseDate(meta.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %q", ErrBadDate, relPath, meta.Date)
		}
		page.Date = date
	} else if info, err := os.Stat(sourcePath); err == nil {
		page.Date = info.ModTime()
	}

	if meta.Lastmod != "" {
		lastmod, err := ParseDate(meta.Lastmod)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %q", ErrBadDate, relPath, meta.Lastmod)
		}
		page.Lastmod = lastmod
	} else {
		page.Lastmod = page.Date
	}

	page.Slug = meta.Slug
	if page.Slug == "" {
		page.Slug = Slugify(baseName(relPath))
	}

	page.WordCount = len(strings.Fields(string(body)))
	page.ReadingTime = (page.WordCount + 199) / 200

	return page, nil
}

// ParseDate parses a front matter date using the accepted layouts.
func ParseDate(value string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrBadDate, value)
}

// Permalink returns the page's path relative to the site root, with pretty
// URLs: /{section}/{slug}/ for regular pages, /{section}/ for index pages.
func (p *Page) Permalink() string {
	if p.IsIndex {
		if p.Section == "" {
			return "/"
		}
		return "/" + p.Section + "/"
	}
	if p.Section == "" {
		return "/" + p.Slug + "/"
	}
	return "/" + p.Section + "/" + p.Slug + "/"
}

// OutputPath returns the output file path relative to the output dir.
func (p *Page) OutputPath() string {
	return strings.TrimPrefix(path.Join(p.Permalink(), "index.html"), "/")
}

// Title returns the front matter title, falling back to a titleized slug.
func (p *Page) Title() string {
	if p.Meta.Title != "" {
		return p.Meta.Title
	}
	return Titleize(strings.ReplaceAll(p.Slug, "-", " "))
}

func sectionOf(relPath string) string {
	rel := strings.TrimPrefix(strings.ReplaceAll(relPath, "\\", "/"), "/")
	if idx := strings.Index(rel, "/"); idx >= 0 {
		return rel[:idx]
	}
	return ""
}

func isIndexFile(relPath string) bool {
	base := baseName(relPath)
	return base == "_index" || base == "index"
}

func baseName(relPath string) string {
	base := path.Base(strings.ReplaceAll(relPath, "\\", "/"))
	if idx := strings.LastIndex(base, "."); idx > 0 {
		base = base[:idx]
	}
	return base
}
