package content

import "sort"

// Term is one value of a taxonomy (a single tag or category) together with
// the pages carrying it.
type Term struct {
	Name  string
	Slug  string
	Pages []*Page
}

// Taxonomy is a named classification axis, e.g. "tags" or "categories".
type Taxonomy struct {
	Singular string
	Plural   string
	Terms    map[string]*Term // keyed by term slug
}

// CollectTaxonomies builds tag and category taxonomies from page front
// matter. The taxonomies map is singular -> plural, from site config.
func CollectTaxonomies(pages []*Page, taxonomies map[string]string) map[string]*Taxonomy {
	result := make(map[string]*Taxonomy, len(taxonomies))
	for singular, plural := range taxonomies {
		tax := &Taxonomy{Singular: singular, Plural: plural, Terms: map[string]*Term{}}
		for _, page := range pages {
			for _, name := range termsFor(page, singular) {
				slug := Slugify(name)
				if slug == "" {
					continue
				}
				term, ok := tax.Terms[slug]
				if !ok {
					term = &Term{Name: name, Slug: slug}
					tax.Terms[slug] = term
				}
				term.Pages = append(term.Pages, page)
			}
		}
		result[plural] = tax
	}
	return result
}

// SortedTerms returns the taxonomy's terms ordered by page count descending,
// then name, for stable terms-page rendering.
func (t *Taxonomy) SortedTerms() []*Term {
	terms := make([]*Term, 0, len(t.Terms))
	for _, term := range t.Terms {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(i, j int) bool {
		if len(terms[i].Pages) != len(terms[j].Pages) {
			return len(terms[i].Pages) > len(terms[j].Pages)
		}
		return terms[i].Name < terms[j].Name
	})
	return terms
}

func termsFor(page *Page, singular string) []string {
	switch singular {
	case "tag":
		return page.Meta.Tags
	case "category":
		return page.Meta.Categories
	default:
		return nil
	}
}
