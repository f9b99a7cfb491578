package extract

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// collegesPageCandidates are the secondary page names consulted for the
// academic structure, tried in this order.
var collegesPageCandidates = []string{"academics", "programs", "colleges", "departments"}

var (
	// orgUnitPattern recognises link text naming an organizational unit.
	orgUnitPattern = regexp.MustCompile(`(?i)\b(college|school)s?\b`)

	// programCountPattern recovers a program count from free text when no
	// nested sub-items exist, e.g. "12 programs" or "6 degrees".
	programCountPattern = regexp.MustCompile(`(?i)(\d+)\s*(?:programs|majors|degrees)`)

	// orgUnitPrefix strips the organizational prefix from a unit name so
	// "College of Business" and "Business" collapse to one key.
	orgUnitPrefix = regexp.MustCompile(`(?i)^(the\s+)?(college|school)\s+of\s+`)
)

// Colleges extracts the name→program-count mapping of organizational units.
// Duplicate names keep the highest count seen. If extraction yields no
// entries at all, the fallback mapping is returned wholesale, never merged
// key-by-key: any live data beats a merge with nothing.
func Colleges(ctx context.Context, primary *Page, r *Resolver, fallback map[string]int) (colleges map[string]int, usedFallback bool) {
	chain := []heuristic[map[string]int]{
		{"primary-nav", func() (map[string]int, bool) {
			return collegesFromNav(primary)
		}},
		{"secondary-pages", func() (map[string]int, bool) {
			page := r.Resolve(ctx, primary, collegesPageCandidates)
			if page == nil || !page.Plausible() {
				return nil, false
			}
			return collegesFromNav(page)
		}},
	}

	extracted, ok := runChain("colleges", chain)
	if !ok {
		copied := make(map[string]int, len(fallback))
		for k, v := range fallback {
			copied[k] = v
		}
		return copied, true
	}
	return extracted, false
}

// collegesFromNav scans navigation and menu regions for items naming an
// organizational unit. The program count is the number of nested sub-items;
// when none exist, a numeric pattern over the item's own text is tried.
// The same name seen more than once keeps its highest count.
func collegesFromNav(p *Page) (map[string]int, bool) {
	colleges := map[string]int{}
	p.Doc.FindMatcher(navRegionSel).Each(func(_ int, region *goquery.Selection) {
		region.Find("li").Each(func(_ int, item *goquery.Selection) {
			label := cleanText(item.ChildrenFiltered("a, span").First().Text())
			if label == "" || !orgUnitPattern.MatchString(label) {
				return
			}
			name := normalizeUnitName(label)
			if name == "" {
				return
			}

			count := item.Find("ul li").Length()
			if count == 0 {
				count = countFromText(cleanText(item.Text()))
			}

			if existing, present := colleges[name]; !present || count > existing {
				colleges[name] = count
			}
		})
	})
	return colleges, len(colleges) > 0
}

// genericUnitLabels are menu headers that match the org-unit pattern but
// name no unit themselves.
var genericUnitLabels = map[string]bool{
	"college": true, "colleges": true,
	"school": true, "schools": true,
	"colleges & schools": true,
}

// normalizeUnitName strips the organizational prefix and trailing punctuation
// from a unit label. Generic menu headers normalize to "".
func normalizeUnitName(label string) string {
	if genericUnitLabels[strings.ToLower(cleanText(label))] {
		return ""
	}
	name := orgUnitPrefix.ReplaceAllString(label, "")
	return strings.Trim(cleanText(name), " -:")
}

// countFromText recovers a program count from free text, returning 0 when no
// numeric pattern matches.
func countFromText(text string) int {
	m := programCountPattern.FindStringSubmatch(text)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}
