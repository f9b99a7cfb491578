package extract

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

// testBaseURL is the origin used by extractor tests.
const testBaseURL = "https://example.edu"

// missionText is a statement long enough to clear the minimum length.
const missionText = "To provide Christ-centered education that prepares people to honor God and serve others by developing their intellectual, spiritual, and professional lives."

// filler pads fixture pages past the visible-text plausibility threshold.
const filler = `<footer><p>Example University is accredited by the Higher Learning Commission
and has served students on its main campus since 1919. Campus visits, admissions
counseling and financial aid guidance are available throughout the year; contact
the admissions office to schedule a tour or request a viewbook by mail.</p></footer>`

func page(t *testing.T, url, body string) *Page {
	t.Helper()
	p, err := ParsePage(url, []byte("<html><head><title>Example University</title></head><body>"+body+filler+"</body></html>"))
	require.NoError(t, err)
	return p
}

// noFetch fails the test if any secondary fetch happens; used to prove the
// secondary-page path is not taken when a primary heuristic succeeds.
func noFetch(t *testing.T) FetchFunc {
	t.Helper()
	return func(_ context.Context, url string, _ int) ([]byte, error) {
		t.Fatalf("unexpected secondary fetch of %s", url)
		return nil, nil
	}
}

// serveFetch serves the given pages keyed by URL; anything else is a miss
// counted as a connection failure.
func serveFetch(pages map[string]string) FetchFunc {
	return func(_ context.Context, url string, _ int) ([]byte, error) {
		if body, ok := pages[url]; ok {
			return []byte(body), nil
		}
		return nil, context.DeadlineExceeded
	}
}

func resolver(t *testing.T, fetch FetchFunc) *Resolver {
	t.Helper()
	r, err := NewResolver(testBaseURL, fetch, 1)
	require.NoError(t, err)
	return r
}

func aboutPage(t *testing.T, body string) string {
	t.Helper()
	return "<html><head><title>About</title></head><body>" + body + filler + "</body></html>"
}
