package extract

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// minVisibleText is the minimum visible-text length (in characters) for a
// fetched page to be considered a real content page. Below this the page is
// likely an error shell or interstitial and extraction skips it.
const minVisibleText = 200

// Page is a fetched, parsed document. It is never mutated after construction,
// only traversed.
type Page struct {
	// URL the page was fetched from.
	URL string

	// Body is the raw bytes, kept for content-level passes (readability).
	Body []byte

	// Doc is the queryable parse tree.
	Doc *goquery.Document

	// Title is the <title> content, recorded for diagnostics.
	Title string

	// visibleLen is the length of the visible body text.
	visibleLen int
}

// ParsePage builds a Page from raw bytes. Parse failures return an error;
// callers treat that the same as a fetch failure for the page.
func ParsePage(url string, body []byte) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	return &Page{
		URL:        url,
		Body:       body,
		Doc:        doc,
		Title:      extractTitle(body),
		visibleLen: len(extractVisibleText(body)),
	}, nil
}

// Plausible reports whether the page carries enough visible text to be worth
// running heuristics against.
func (p *Page) Plausible() bool {
	return p.visibleLen >= minVisibleText
}

// extractTitle extracts the <title> content from raw HTML bytes.
func extractTitle(body []byte) string {
	tokenizer := html.NewTokenizer(bytes.NewReader(body))
	for {
		tt := tokenizer.Next()
		switch tt {
		case html.ErrorToken:
			return ""
		case html.StartTagToken:
			tn, _ := tokenizer.TagName()
			if string(tn) == "title" {
				if tokenizer.Next() == html.TextToken {
					return strings.TrimSpace(string(tokenizer.Text()))
				}
				return ""
			}
		}
	}
}

// extractVisibleText extracts the visible text from within <body>, stripping
// all tags and <script>/<style> content. Used for plausibility checks only.
func extractVisibleText(body []byte) string {
	tokenizer := html.NewTokenizer(bytes.NewReader(body))
	var buf strings.Builder
	inBody := false
	skipDepth := 0

	for {
		tt := tokenizer.Next()
		switch tt {
		case html.ErrorToken:
			return buf.String()
		case html.StartTagToken:
			tn, _ := tokenizer.TagName()
			tag := string(tn)
			if tag == "body" {
				inBody = true
			}
			if tag == "script" || tag == "style" || tag == "noscript" {
				skipDepth++
			}
		case html.EndTagToken:
			tn, _ := tokenizer.TagName()
			tag := string(tn)
			if tag == "script" || tag == "style" || tag == "noscript" {
				if skipDepth > 0 {
					skipDepth--
				}
			}
		case html.TextToken:
			if inBody && skipDepth == 0 {
				text := strings.TrimSpace(string(tokenizer.Text()))
				if text != "" {
					buf.WriteString(text)
					buf.WriteByte(' ')
				}
			}
		}
	}
}
