package extract

import (
	"context"

	"github.com/PuerkitoBio/goquery"
)

// statsPageCandidates are the secondary page names consulted for headline
// statistics, tried in this order.
var statsPageCandidates = []string{"about", "facts", "quick-facts", "at-a-glance"}

// Stats extracts the label→value mapping of headline statistics and merges
// it with the fallback mapping: every fallback label absent from extraction
// is filled with its fallback value, and extracted labels outside the
// fallback set are kept as additional stats. usedFallback is true when the
// chain missed entirely or any label was filled from the fallback.
func Stats(ctx context.Context, primary *Page, r *Resolver, fallback map[string]string) (stats map[string]string, usedFallback bool) {
	chain := []heuristic[map[string]string]{
		{"primary-sections", func() (map[string]string, bool) {
			return statsFromSections(primary)
		}},
		{"primary-tables", func() (map[string]string, bool) {
			return statsFromTables(primary)
		}},
		{"secondary-pages", func() (map[string]string, bool) {
			page := r.Resolve(ctx, primary, statsPageCandidates)
			if page == nil || !page.Plausible() {
				return nil, false
			}
			extracted := map[string]string{}
			if m, ok := statsFromSections(page); ok {
				mergeMissing(extracted, m)
			}
			if m, ok := statsFromTables(page); ok {
				mergeMissing(extracted, m)
			}
			return extracted, len(extracted) > 0
		}},
	}

	extracted, ok := runChain("stats", chain)
	if !ok {
		extracted = map[string]string{}
	}

	final := make(map[string]string, len(extracted)+len(fallback))
	for k, v := range extracted {
		final[k] = v
	}
	usedFallback = !ok
	for k, v := range fallback {
		if _, present := final[k]; !present {
			final[k] = v
			usedFallback = true
		}
	}
	return final, usedFallback
}

// statsFromSections scans stats-like sections and pairs a label sub-element
// with a value sub-element inside each item. First-found wins per label.
func statsFromSections(p *Page) (map[string]string, bool) {
	stats := map[string]string{}
	p.Doc.FindMatcher(statsSectionSel).Each(func(_ int, section *goquery.Selection) {
		section.FindMatcher(statsItemSel).Each(func(_ int, item *goquery.Selection) {
			label := cleanText(item.FindMatcher(statLabelSel).First().Text())
			// The label element itself can match the loose value selector
			// (e.g. a bare span), so it is excluded explicitly.
			value := cleanText(item.FindMatcher(statValueSel).NotMatcher(statLabelSel).First().Text())
			if label == "" || value == "" || label == value {
				return
			}
			if _, present := stats[label]; !present {
				stats[label] = value
			}
		})
	})
	return stats, len(stats) > 0
}

// statsFromTables scans facts/stats tables and treats each row's first two
// cells as label and value.
func statsFromTables(p *Page) (map[string]string, bool) {
	stats := map[string]string{}
	p.Doc.FindMatcher(statsTableSel).Each(func(_ int, table *goquery.Selection) {
		table.Find("tr").Each(func(_ int, row *goquery.Selection) {
			cells := row.Find("td, th")
			if cells.Length() < 2 {
				return
			}
			label := cleanText(cells.Eq(0).Text())
			value := cleanText(cells.Eq(1).Text())
			if label == "" || value == "" {
				return
			}
			if _, present := stats[label]; !present {
				stats[label] = value
			}
		})
	})
	return stats, len(stats) > 0
}

// mergeMissing copies src entries into dst for labels not already present.
func mergeMissing(dst, src map[string]string) {
	for k, v := range src {
		if _, present := dst[k]; !present {
			dst[k] = v
		}
	}
}
