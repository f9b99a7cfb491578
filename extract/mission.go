package extract

import (
	"bytes"
	"context"
	"log/slog"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
)

// minMissionLen is the minimum character length for a paragraph to count as
// a mission statement. Shorter matches are navigational snippets or empty
// containers.
const minMissionLen = 80

// aboutCandidates are the secondary page names consulted for the narrative
// fields.
var aboutCandidates = []string{"about"}

// missionResult carries the extracted narrative plus the matched container's
// HTML for rich rendering. HTML is empty when only plain text was recovered.
type missionResult struct {
	Text string
	HTML string
}

// Mission extracts the institutional mission narrative. The returned strings
// are the plain statement and a Markdown rendering of the matched container;
// usedFallback is true when the supplied fallback had to be returned.
func Mission(ctx context.Context, primary *Page, r *Resolver, fallback string) (text, markdown string, usedFallback bool) {
	chain := []heuristic[missionResult]{
		{"primary-container", func() (missionResult, bool) {
			return missionFromContainers(primary)
		}},
		{"primary-heading", func() (missionResult, bool) {
			return missionFromHeadings(primary)
		}},
		{"secondary-about", func() (missionResult, bool) {
			page := r.Resolve(ctx, primary, aboutCandidates)
			if page == nil || !page.Plausible() {
				return missionResult{}, false
			}
			if res, ok := missionFromContainers(page); ok {
				return res, true
			}
			if res, ok := missionFromHeadings(page); ok {
				return res, true
			}
			return missionFromReadability(page)
		}},
	}

	res, ok := runChain("mission", chain)
	if !ok {
		return fallback, fallback, true
	}
	return res.Text, renderMissionMarkdown(res, primary.URL), false
}

// missionFromContainers scans containers whose id or class matches the
// mission vocabulary and accepts the first paragraph long enough to be a
// real statement.
func missionFromContainers(p *Page) (missionResult, bool) {
	var res missionResult
	p.Doc.FindMatcher(missionContainerSel).EachWithBreak(func(_ int, container *goquery.Selection) bool {
		text := cleanText(container.Find("p").First().Text())
		if len(text) < minMissionLen {
			return true
		}
		res.Text = text
		if h, err := goquery.OuterHtml(container); err == nil {
			res.HTML = h
		}
		return false
	})
	return res, res.Text != ""
}

// missionFromHeadings finds a heading matching the mission vocabulary and
// takes the next paragraph in document order.
func missionFromHeadings(p *Page) (missionResult, bool) {
	var res missionResult
	p.Doc.FindMatcher(headingSel).EachWithBreak(func(_ int, h *goquery.Selection) bool {
		if !containsAny(h.Text(), missionHeadingWords) {
			return true
		}
		text := cleanText(paragraphAfter(h).Text())
		if len(text) < minMissionLen {
			return true
		}
		res.Text = text
		if html, err := goquery.OuterHtml(paragraphAfter(h)); err == nil {
			res.HTML = html
		}
		return false
	})
	return res, res.Text != ""
}

// paragraphAfter returns the first paragraph following the heading, looking
// first among the heading's own following siblings, then its parent's.
func paragraphAfter(h *goquery.Selection) *goquery.Selection {
	if p := h.NextAllFiltered("p").First(); p.Length() > 0 {
		return p
	}
	return h.Parent().NextAllFiltered("p").First()
}

// missionFromReadability is the last-chance pass on the about page: the
// mission is usually that page's main content, so the Readability algorithm
// can recover it when no structural cue matched.
func missionFromReadability(p *Page) (missionResult, bool) {
	pageURL, err := url.Parse(p.URL)
	if err != nil {
		return missionResult{}, false
	}

	article, err := readability.FromReader(bytes.NewReader(p.Body), pageURL)
	if err != nil {
		slog.Warn("readability pass failed", "url", p.URL, "error", err)
		return missionResult{}, false
	}

	for _, line := range strings.Split(article.TextContent, "\n") {
		text := cleanText(line)
		if len(text) >= minMissionLen {
			return missionResult{Text: text}, true
		}
	}
	return missionResult{}, false
}
