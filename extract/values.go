package extract

import (
	"context"

	"github.com/PuerkitoBio/goquery"
)

// Values extracts the ordered list of institutional value statements.
// usedFallback is true when the supplied fallback list had to be returned.
func Values(ctx context.Context, primary *Page, r *Resolver, fallback []string) (values []string, usedFallback bool) {
	chain := []heuristic[[]string]{
		{"primary-container", func() ([]string, bool) {
			return valuesFromContainers(primary)
		}},
		{"primary-heading", func() ([]string, bool) {
			return valuesFromHeadings(primary)
		}},
		{"secondary-about", func() ([]string, bool) {
			page := r.Resolve(ctx, primary, aboutCandidates)
			if page == nil || !page.Plausible() {
				return nil, false
			}
			if vs, ok := valuesFromContainers(page); ok {
				return vs, true
			}
			return valuesFromHeadings(page)
		}},
	}

	vs, ok := runChain("values", chain)
	if !ok {
		return append([]string(nil), fallback...), true
	}
	return vs, false
}

// valuesFromContainers scans containers whose id or class matches the values
// vocabulary and takes the first list found inside.
func valuesFromContainers(p *Page) ([]string, bool) {
	var values []string
	p.Doc.FindMatcher(valuesContainerSel).EachWithBreak(func(_ int, container *goquery.Selection) bool {
		values = listItems(container.Find("ul, ol").First())
		return len(values) == 0
	})
	return values, len(values) > 0
}

// valuesFromHeadings finds a heading matching the values vocabulary and
// takes the next list in document order.
func valuesFromHeadings(p *Page) ([]string, bool) {
	var values []string
	p.Doc.FindMatcher(headingSel).EachWithBreak(func(_ int, h *goquery.Selection) bool {
		if !containsAny(h.Text(), valuesHeadingWords) {
			return true
		}
		values = listItems(listAfter(h))
		return len(values) == 0
	})
	return values, len(values) > 0
}

// listAfter returns the first list following the heading, looking first among
// the heading's own following siblings, then its parent's.
func listAfter(h *goquery.Selection) *goquery.Selection {
	if l := h.NextAllFiltered("ul, ol").First(); l.Length() > 0 {
		return l
	}
	return h.Parent().NextAllFiltered("ul, ol").First()
}

// listItems collects the list's item texts, trimming empty entries. The
// result preserves document order.
func listItems(list *goquery.Selection) []string {
	var items []string
	list.Find("li").Each(func(_ int, li *goquery.Selection) {
		if text := cleanText(li.Text()); text != "" {
			items = append(items, text)
		}
	})
	return items
}
