package feeds

import (
	"encoding/xml"
	"io"
	"strings"

	"github.com/inkwell-press/inkwell/internal/config"
	"github.com/inkwell-press/inkwell/internal/content"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// WriteSitemap writes a sitemap covering the site root plus every page.
func WriteSitemap(w io.Writer, site *config.SiteConfig, pages []*content.Page) error {
	base := strings.TrimSuffix(site.BaseURL, "/")

	urls := []sitemapURL{
		{Loc: base + "/"},
	}
	for _, p := range pages {
		u := sitemapURL{Loc: base + p.Permalink()}
		if !p.Lastmod.IsZero() {
			u.LastMod = p.Lastmod.Format("2006-01-02")
		}
		urls = append(urls, u)
	}

	sitemap := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}

	if _, err := w.Write([]byte(xml.Header)); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	return enc.Encode(sitemap)
}
