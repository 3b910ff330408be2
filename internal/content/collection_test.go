package content

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func datedPage(title string, date time.Time) *Page {
	return &Page{Meta: Metadata{Title: title}, Date: date, Slug: Slugify(title)}
}

func TestFilter_DropsDraftsAndFuture(t *testing.T) {
	now := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	pages := []*Page{
		datedPage("old", now.AddDate(0, -1, 0)),
		{Meta: Metadata{Title: "draft", Draft: true}, Date: now.AddDate(0, -2, 0)},
		datedPage("future", now.AddDate(0, 1, 0)),
	}

	kept, drafts, future := Filter(pages, FilterOptions{Now: now})
	require.Len(t, kept, 1)
	require.Equal(t, "old", kept[0].Meta.Title)
	require.Equal(t, 1, drafts)
	require.Equal(t, 1, future)

	kept, _, _ = Filter(pages, FilterOptions{Now: now, Drafts: true, Future: true})
	require.Len(t, kept, 3)
}

func TestSortByDate_NewestFirst(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	pages := []*Page{
		datedPage("b", base),
		datedPage("newest", base.AddDate(0, 2, 0)),
		datedPage("a", base),
	}

	SortByDate(pages)
	require.Equal(t, "newest", pages[0].Meta.Title)
	// Equal dates break on title.
	require.Equal(t, "a", pages[1].Meta.Title)
	require.Equal(t, "b", pages[2].Meta.Title)
}

func TestLinkPrevNext(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	pages := []*Page{
		datedPage("newest", base.AddDate(0, 2, 0)),
		datedPage("middle", base.AddDate(0, 1, 0)),
		datedPage("oldest", base),
	}

	LinkPrevNext(pages)
	require.Nil(t, pages[0].Next)
	require.Equal(t, pages[1], pages[0].Prev)
	require.Equal(t, pages[0], pages[1].Next)
	require.Equal(t, pages[2], pages[1].Prev)
	require.Nil(t, pages[2].Prev)
}

func TestCollectTaxonomies(t *testing.T) {
	pages := []*Page{
		{Meta: Metadata{Title: "a", Tags: []string{"Go", "KVM"}, Categories: []string{"Systems"}}},
		{Meta: Metadata{Title: "b", Tags: []string{"go"}}},
	}

	taxonomies := CollectTaxonomies(pages, map[string]string{"tag": "tags", "category": "categories"})
	tags := taxonomies["tags"]
	require.NotNil(t, tags)
	require.Len(t, tags.Terms, 2)

	// "Go" and "go" share the slug and therefore the term.
	goTerm := tags.Terms["go"]
	require.NotNil(t, goTerm)
	require.Len(t, goTerm.Pages, 2)

	sorted := tags.SortedTerms()
	require.Equal(t, "go", sorted[0].Slug)
	require.Equal(t, "kvm", sorted[1].Slug)

	require.Len(t, taxonomies["categories"].Terms, 1)
}

func TestBySection(t *testing.T) {
	pages := []*Page{
		{Section: "posts", Meta: Metadata{Title: "a"}},
		{Section: "posts", Meta: Metadata{Title: "b"}},
		{Section: "", Meta: Metadata{Title: "about"}},
	}

	groups := BySection(pages)
	require.Len(t, groups["posts"], 2)
	require.Len(t, groups[""], 1)
}
