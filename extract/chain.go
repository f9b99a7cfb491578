package extract

import (
	"log/slog"
	"strings"

	"github.com/andybalholm/cascadia"
)

// heuristic is one extraction strategy in an ordered chain. run returns the
// extracted value and whether it produced a non-empty, plausible result.
type heuristic[T any] struct {
	name string
	run  func() (T, bool)
}

// runChain evaluates heuristics in order and returns the first hit. Later
// heuristics are never evaluated once one succeeds. A panic inside a
// heuristic (malformed structure, missing attributes) is absorbed and treated
// as "found nothing"; it never propagates past the chain.
func runChain[T any](field string, chain []heuristic[T]) (T, bool) {
	for _, h := range chain {
		if v, ok := tryHeuristic(field, h); ok {
			slog.Debug("extractor heuristic hit", "field", field, "heuristic", h.name)
			return v, true
		}
	}
	var zero T
	return zero, false
}

func tryHeuristic[T any](field string, h heuristic[T]) (v T, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			slog.Warn("extractor heuristic panicked, treating as miss",
				"field", field,
				"heuristic", h.name,
				"panic", r,
			)
			ok = false
		}
	}()
	return h.run()
}

// Site-shape vocabulary, compiled once. These selectors are deliberately
// specific to the target site's markup conventions; they are expected to be
// fragile against redesigns and are pinned by fixture tests.
var (
	missionContainerSel = cascadia.MustCompile(
		`[id*='mission'], [class*='mission'], [id*='purpose'], [class*='purpose']`)
	valuesContainerSel = cascadia.MustCompile(
		`[id*='values'], [class*='values']`)
	statsSectionSel = cascadia.MustCompile(
		`section[class*='stat'], div[class*='stat'], section[class*='fact'], div[class*='fact'],` +
			` [class*='numbers'], [class*='at-a-glance'], [class*='quick-facts'], [id*='facts']`)
	statsTableSel = cascadia.MustCompile(
		`table[class*='fact'], table[class*='stat']`)
	statsItemSel = cascadia.MustCompile(
		`li, [class*='stat-item'], [class*='fact-item'], [class*='metric']`)
	statLabelSel = cascadia.MustCompile(
		`dt, [class*='label'], h3, h4, strong`)
	statValueSel = cascadia.MustCompile(
		`dd, [class*='value'], [class*='number'], [class*='count'], span`)
	navRegionSel = cascadia.MustCompile(
		`nav, [class*='menu'], [class*='nav'], [id*='menu'], [id*='nav']`)
	headingSel = cascadia.MustCompile(`h1, h2, h3, h4`)
)

// headingVocab maps a field to the words a heading must contain for the
// header-proximity heuristics.
var (
	missionHeadingWords = []string{"mission", "purpose"}
	valuesHeadingWords  = []string{"core values", "our values", "values"}
)

// cleanText collapses runs of whitespace to single spaces and trims.
func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// containsAny reports whether the lowercased text contains any of the words.
func containsAny(text string, words []string) bool {
	lower := strings.ToLower(text)
	for _, w := range words {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}
