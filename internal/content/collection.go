package content

import (
	"sort"
	"time"
)

// FilterOptions controls which pages survive filtering.
type FilterOptions struct {
	Drafts bool      // include pages marked draft
	Future bool      // include pages dated after Now
	Now    time.Time // zero means time.Now()
}

// Filter drops drafts and future-dated pages unless enabled, returning the
// surviving pages plus counts of what was dropped.
func Filter(pages []*Page, opts FilterOptions) (kept []*Page, draftsSkipped, futureSkipped int) {
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	kept = make([]*Page, 0, len(pages))
	for _, page := range pages {
		if page.Meta.Draft && !opts.Drafts {
			draftsSkipped++
			continue
		}
		if !opts.Future && !page.Date.IsZero() && page.Date.After(now) {
			futureSkipped++
			continue
		}
		kept = append(kept, page)
	}
	return kept, draftsSkipped, futureSkipped
}

// SortByDate orders pages newest first; ties break on weight then title so
// output is deterministic.
func SortByDate(pages []*Page) {
	sort.SliceStable(pages, func(i, j int) bool {
		if !pages[i].Date.Equal(pages[j].Date) {
			return pages[i].Date.After(pages[j].Date)
		}
		if pages[i].Meta.Weight != pages[j].Meta.Weight {
			return pages[i].Meta.Weight < pages[j].Meta.Weight
		}
		return pages[i].Title() < pages[j].Title()
	})
}

// LinkPrevNext wires Prev/Next pointers through a date-sorted page list.
// Prev points at the older page, Next at the newer one.
func LinkPrevNext(pages []*Page) {
	for i, page := range pages {
		if i+1 < len(pages) {
			page.Prev = pages[i+1]
		}
		if i > 0 {
			page.Next = pages[i-1]
		}
	}
}

// BySection groups pages by their section.
func BySection(pages []*Page) map[string][]*Page {
	result := make(map[string][]*Page)
	for _, page := range pages {
		result[page.Section] = append(result[page.Section], page)
	}
	return result
}
