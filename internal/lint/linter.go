// Package lint checks content files before publishing: front matter syntax,
// required fields, date formats, duplicate permalinks, and broken local links.
package lint

import (
	"fmt"

	"github.com/inkwell-press/inkwell/internal/content"
)

// Linter runs all rules over a content tree.
type Linter struct {
	cfg        *Config
	contentDir string
	rules      []Rule
}

// NewLinter creates a linter for the given content directory.
func NewLinter(cfg *Config, contentDir, staticDir string) *Linter {
	if cfg == nil {
		cfg = &Config{Format: "text"}
	}
	return &Linter{
		cfg:        cfg,
		contentDir: contentDir,
		rules: []Rule{
			&FrontMatterRule{},
			&LinkRule{ContentDir: contentDir, StaticDir: staticDir},
		},
	}
}

// Lint discovers and checks all content files.
func (l *Linter) Lint() (*Result, error) {
	files, err := content.NewDiscovery(l.contentDir).Discover()
	if err != nil {
		return nil, err
	}

	result := &Result{Issues: []Issue{}}
	var pages []*content.Page

	for _, file := range files {
		if file.IsAsset {
			continue
		}
		result.FilesTotal++

		for _, rule := range l.rules {
			issues, err := rule.Check(file.RelPath, file.Path)
			if err != nil {
				return nil, fmt.Errorf("rule %s on %s: %w", rule.Name(), file.RelPath, err)
			}
			result.Issues = append(result.Issues, issues...)
		}

		// Pages that load cleanly also participate in the duplicate check.
		if page, err := content.LoadPage(file.Path, file.RelPath); err == nil {
			pages = append(pages, page)
		}
	}

	result.Issues = append(result.Issues, duplicatePermalinks(pages)...)

	if l.cfg.Quiet {
		kept := result.Issues[:0]
		for _, issue := range result.Issues {
			if issue.Severity == SeverityError {
				kept = append(kept, issue)
			}
		}
		result.Issues = kept
	}

	return result, nil
}

// duplicatePermalinks flags pages whose pretty URLs collide, which would make
// one page silently overwrite the other in the output tree.
func duplicatePermalinks(pages []*content.Page) []Issue {
	seen := map[string]string{}
	var issues []Issue
	for _, page := range pages {
		permalink := page.Permalink()
		if other, ok := seen[permalink]; ok {
			issues = append(issues, Issue{
				FilePath:    page.RelPath,
				Severity:    SeverityError,
				Rule:        "duplicate-slug",
				Message:     fmt.Sprintf("permalink %s collides with %s", permalink, other),
				Explanation: "both pages would render to the same output file; the later one wins",
				Fix:         "set a distinct slug in one of the files",
			})
			continue
		}
		seen[permalink] = page.RelPath
	}
	return issues
}
