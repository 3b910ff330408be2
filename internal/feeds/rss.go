// Package feeds generates the RSS feed and XML sitemap for a built site.
package feeds

import (
	"encoding/xml"
	"io"
	"strings"
	"time"

	"github.com/inkwell-press/inkwell/internal/config"
	"github.com/inkwell-press/inkwell/internal/content"
)

type rssXML struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title         string    `xml:"title"`
	Link          string    `xml:"link"`
	Description   string    `xml:"description"`
	Language      string    `xml:"language,omitempty"`
	LastBuildDate string    `xml:"lastBuildDate,omitempty"`
	Items         []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	Author      string `xml:"author,omitempty"`
	PubDate     string `xml:"pubDate"`
	GUID        string `xml:"guid"`
}

// WriteRSS writes an RSS 2.0 feed for the given pages, newest first as
// provided by the caller. limit <= 0 means all pages.
func WriteRSS(w io.Writer, site *config.SiteConfig, pages []*content.Page, limit int) error {
	if limit > 0 && len(pages) > limit {
		pages = pages[:limit]
	}

	base := strings.TrimSuffix(site.BaseURL, "/")
	items := make([]rssItem, 0, len(pages))
	for _, p := range pages {
		postURL := base + p.Permalink()
		item := rssItem{
			Title:       p.Title(),
			Link:        postURL,
			Description: p.Summary,
			Author:      p.Meta.Author,
			GUID:        postURL,
		}
		if !p.Date.IsZero() {
			item.PubDate = p.Date.Format(time.RFC1123Z)
		}
		items = append(items, item)
	}

	feed := rssXML{
		Version: "2.0",
		Channel: rssChannel{
			Title:       site.Title,
			Link:        base,
			Description: site.Description,
			Language:    site.Language,
			Items:       items,
		},
	}
	if len(pages) > 0 && !pages[0].Date.IsZero() {
		feed.Channel.LastBuildDate = pages[0].Date.Format(time.RFC1123Z)
	}

	if _, err := w.Write([]byte(xml.Header)); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	return enc.Encode(feed)
}
