package lint

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/inkwell-press/inkwell/internal/content"
	"github.com/inkwell-press/inkwell/internal/frontmatter"
	"github.com/inkwell-press/inkwell/internal/markdown"
)

// FrontMatterRule checks that front matter parses, carries a title, and uses
// a recognized date format.
type FrontMatterRule struct{}

func (r *FrontMatterRule) Name() string { return "front-matter" }

func (r *FrontMatterRule) Check(relPath, absPath string) ([]Issue, error) {
	raw, err := os.ReadFile(absPath)
	if err != nil {
		return nil, err
	}

	var meta content.Metadata
	if _, err := frontmatter.Decode(raw, &meta); err != nil {
		return []Issue{{
			FilePath:    relPath,
			Severity:    SeverityError,
			Rule:        r.Name(),
			Message:     "front matter does not parse",
			Explanation: err.Error(),
			Fix:         "check the YAML (---) or TOML (+++) block at the top of the file",
		}}, nil
	}

	var issues []Issue

	if meta.Title == "" && !strings.HasPrefix(filepath.Base(relPath), "_index.") {
		issues = append(issues, Issue{
			FilePath: relPath,
			Severity: SeverityWarning,
			Rule:     "title",
			Message:  "missing title",
			Fix:      "add a title field to the front matter",
		})
	}

	for _, field := range []struct{ name, value string }{
		{"date", meta.Date},
		{"lastmod", meta.Lastmod},
	} {
		if field.value == "" {
			continue
		}
		if _, err := content.ParseDate(field.value); err != nil {
			issues = append(issues, Issue{
				FilePath:    relPath,
				Severity:    SeverityError,
				Rule:        "date",
				Message:     fmt.Sprintf("unparseable %s %q", field.name, field.value),
				Explanation: "accepted formats: RFC3339, 2006-01-02T15:04:05, 2006-01-02 15:04:05, 2006-01-02",
			})
		}
	}

	if meta.Draft && meta.Date != "" {
		if date, err := content.ParseDate(meta.Date); err == nil && date.Before(time.Now()) {
			issues = append(issues, Issue{
				FilePath:    relPath,
				Severity:    SeverityInfo,
				Rule:        "draft",
				Message:     "draft with a publish date in the past",
				Explanation: "the page will stay unpublished until draft: true is removed",
			})
		}
	}

	return issues, nil
}

// LinkRule checks that relative links and images point at files that exist.
// External URLs, anchors, and mailto links are not checked.
type LinkRule struct {
	// ContentDir anchors root-absolute link targets (/posts/...).
	ContentDir string
	// StaticDir is also consulted for root-absolute asset links.
	StaticDir string
}

func (r *LinkRule) Name() string { return "links" }

func (r *LinkRule) Check(relPath, absPath string) ([]Issue, error) {
	raw, err := os.ReadFile(absPath)
	if err != nil {
		return nil, err
	}

	var meta content.Metadata
	body, err := frontmatter.Decode(raw, &meta)
	if err != nil {
		// FrontMatterRule reports this.
		return nil, nil
	}

	var issues []Issue
	for _, link := range markdown.ExtractLinks(body) {
		dest := link.Destination
		if skipLinkTarget(dest) {
			continue
		}
		dest = stripFragment(dest)
		if dest == "" {
			continue
		}

		if r.resolves(dest, filepath.Dir(absPath)) {
			continue
		}
		issues = append(issues, Issue{
			FilePath: relPath,
			Severity: SeverityWarning,
			Rule:     r.Name(),
			Message:  fmt.Sprintf("broken link %q", link.Destination),
			Fix:      "update the link target or add the missing file",
		})
	}
	return issues, nil
}

// resolves reports whether a local link target exists on disk. Pretty URLs
// (directory targets) count when the directory or a matching Markdown source
// exists.
func (r *LinkRule) resolves(dest, fileDir string) bool {
	candidates := make([]string, 0, 4)
	if strings.HasPrefix(dest, "/") {
		trimmed := strings.TrimPrefix(dest, "/")
		candidates = append(candidates,
			filepath.Join(r.ContentDir, filepath.FromSlash(trimmed)),
			filepath.Join(r.StaticDir, filepath.FromSlash(trimmed)))
	} else {
		candidates = append(candidates, filepath.Join(fileDir, filepath.FromSlash(dest)))
	}

	for _, candidate := range candidates {
		candidate = filepath.Clean(strings.TrimSuffix(candidate, "/"))
		if _, err := os.Stat(candidate); err == nil {
			return true
		}
		// A pretty-URL target like ../other-post/ corresponds to other-post.md.
		if _, err := os.Stat(candidate + ".md"); err == nil {
			return true
		}
	}
	return false
}

func skipLinkTarget(dest string) bool {
	if dest == "" {
		return true
	}
	if strings.HasPrefix(dest, "#") {
		return true
	}
	if strings.Contains(dest, "://") || strings.HasPrefix(dest, "//") {
		return true
	}
	if strings.HasPrefix(dest, "mailto:") || strings.HasPrefix(dest, "tel:") {
		return true
	}
	return false
}

func stripFragment(dest string) string {
	if idx := strings.IndexAny(dest, "#?"); idx >= 0 {
		return dest[:idx]
	}
	return dest
}
