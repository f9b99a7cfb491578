package extract

import (
	"context"
	"log/slog"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// FetchFunc retrieves a URL with up to maxRetries attempts. It matches the
// scraper Fetcher's signature; extractors never talk to the network except
// through it.
type FetchFunc func(ctx context.Context, targetURL string, maxRetries int) ([]byte, error)

// Resolver locates secondary pages by following navigational links discovered
// on the primary document. Fetch failures here are non-fatal to the overall
// scrape: the caller's heuristic simply contributes nothing.
type Resolver struct {
	base    *url.URL
	fetch   FetchFunc
	retries int

	// Per-invocation memo so four extractors consulting the same secondary
	// page cost one fetch. A Resolver lives for a single scrape pass and is
	// not shared across goroutines.
	pages  map[string]*Page
	failed map[string]bool
}

// NewResolver creates a Resolver rooted at baseURL.
func NewResolver(baseURL string, fetch FetchFunc, retries int) (*Resolver, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}
	return &Resolver{
		base:    base,
		fetch:   fetch,
		retries: retries,
		pages:   make(map[string]*Page),
		failed:  make(map[string]bool),
	}, nil
}

// Resolve tries each candidate page name in order: it looks for a link on the
// primary document whose href or visible text references the name, resolves
// it to an absolute URL, and fetches it. The first successfully fetched page
// is returned; remaining candidates are not attempted after a success.
// Returns nil when no candidate could be located and fetched.
func (r *Resolver) Resolve(ctx context.Context, primary *Page, candidates []string) *Page {
	for _, name := range candidates {
		target := r.findLink(primary, name)
		if target == "" || target == primary.URL {
			continue
		}
		if page, ok := r.pages[target]; ok {
			return page
		}
		if r.failed[target] {
			continue
		}

		body, err := r.fetch(ctx, target, r.retries)
		if err != nil {
			slog.Warn("secondary page fetch failed, heuristic path yields nothing",
				"candidate", name,
				"url", target,
				"error", err,
			)
			r.failed[target] = true
			continue
		}

		page, err := ParsePage(target, body)
		if err != nil {
			slog.Warn("secondary page unparseable", "url", target, "error", err)
			r.failed[target] = true
			continue
		}
		slog.Debug("secondary page resolved", "candidate", name, "url", target)
		r.pages[target] = page
		return page
	}
	return nil
}

// findLink returns the absolute URL of the first anchor whose href or text
// references name, or "".
func (r *Resolver) findLink(primary *Page, name string) string {
	lowerName := strings.ToLower(name)
	var found string

	primary.Doc.Find("a[href]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href, exists := s.Attr("href")
		if !exists || href == "" {
			return true
		}

		text := strings.ToLower(strings.TrimSpace(s.Text()))
		if !strings.Contains(strings.ToLower(href), lowerName) && !strings.Contains(text, lowerName) {
			return true
		}

		// Resolve relative hrefs against the site's base origin.
		resolved, err := r.base.Parse(href)
		if err != nil {
			return true
		}
		if resolved.Scheme != "http" && resolved.Scheme != "https" {
			return true
		}

		found = resolved.String()
		return false
	})

	return found
}
