package render

import (
	"html/template"
	"strings"
	"time"

	"github.com/inkwell-press/inkwell/internal/config"
	"github.com/inkwell-press/inkwell/internal/content"
)

func funcMap(site *config.SiteConfig) template.FuncMap {
	baseURL := ""
	if site != nil {
		baseURL = strings.TrimSuffix(site.BaseURL, "/")
	}

	return template.FuncMap{
		"absURL": func(path string) string {
			if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
				return path
			}
			if !strings.HasPrefix(path, "/") {
				path = "/" + path
			}
			return baseURL + path
		},
		"dateFormat": func(layout string, t time.Time) string {
			return t.Format(layout)
		},
		"dateMachine": func(t time.Time) string {
			return t.Format(time.RFC3339)
		},
		"slugify": content.Slugify,
		"safeHTML": func(s string) template.HTML {
			return template.HTML(s)
		},
		"now": time.Now,
		"truncate": func(n int, s string) string {
			return content.TruncateWords(s, n)
		},
	}
}
