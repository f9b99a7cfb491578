package extract

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolver_ResolvesRelativeHref(t *testing.T) {
	p := page(t, testBaseURL, `<a href="/about">About the University</a>`)

	var fetched string
	fetch := func(_ context.Context, url string, _ int) ([]byte, error) {
		fetched = url
		return []byte(aboutPage(t, `<h1>About</h1>`)), nil
	}

	got := resolver(t, fetch).Resolve(context.Background(), p, []string{"about"})

	require.NotNil(t, got)
	assert.Equal(t, testBaseURL+"/about", fetched)
	assert.Equal(t, testBaseURL+"/about", got.URL)
}

func TestResolver_MatchesLinkText(t *testing.T) {
	p := page(t, testBaseURL, `<a href="/campus-life">Student Life</a><a href="/u/123">Quick Facts</a>`)

	var fetched string
	fetch := func(_ context.Context, url string, _ int) ([]byte, error) {
		fetched = url
		return []byte(aboutPage(t, `<h1>Facts</h1>`)), nil
	}

	got := resolver(t, fetch).Resolve(context.Background(), p, []string{"facts"})

	require.NotNil(t, got)
	assert.Equal(t, testBaseURL+"/u/123", fetched, "visible text matches when the href does not")
}

func TestResolver_CandidateOrderWins(t *testing.T) {
	p := page(t, testBaseURL, `
		<a href="/at-a-glance">At a Glance</a>
		<a href="/about">About</a>`)

	var fetched []string
	fetch := func(_ context.Context, url string, _ int) ([]byte, error) {
		fetched = append(fetched, url)
		return []byte(aboutPage(t, `<h1>x</h1>`)), nil
	}

	got := resolver(t, fetch).Resolve(context.Background(), p, []string{"about", "facts", "at-a-glance"})

	require.NotNil(t, got)
	assert.Equal(t, []string{testBaseURL + "/about"}, fetched,
		"the first successfully fetched candidate stops the search")
}

func TestResolver_FetchFailureMovesToNextCandidate(t *testing.T) {
	p := page(t, testBaseURL, `
		<a href="/about">About</a>
		<a href="/quick-facts">Quick Facts</a>`)

	fetch := serveFetch(map[string]string{
		testBaseURL + "/quick-facts": aboutPage(t, `<h1>Facts</h1>`),
	})

	got := resolver(t, fetch).Resolve(context.Background(), p, []string{"about", "quick-facts"})

	require.NotNil(t, got)
	assert.Equal(t, testBaseURL+"/quick-facts", got.URL)
}

func TestResolver_NoMatchReturnsNil(t *testing.T) {
	p := page(t, testBaseURL, `<a href="/admissions">Admissions</a>`)

	got := resolver(t, noFetch(t)).Resolve(context.Background(), p, []string{"about"})

	assert.Nil(t, got)
}

func TestResolver_SkipsNonHTTPSchemes(t *testing.T) {
	p := page(t, testBaseURL, `<a href="mailto:about@example.edu">about</a>`)

	got := resolver(t, noFetch(t)).Resolve(context.Background(), p, []string{"about"})

	assert.Nil(t, got)
}

func TestResolver_MemoizesAcrossCalls(t *testing.T) {
	p := page(t, testBaseURL, `<a href="/about">About</a>`)

	var calls atomic.Int32
	fetch := func(_ context.Context, url string, _ int) ([]byte, error) {
		calls.Add(1)
		return []byte(aboutPage(t, `<h1>About</h1>`)), nil
	}

	r := resolver(t, fetch)
	first := r.Resolve(context.Background(), p, []string{"about"})
	second := r.Resolve(context.Background(), p, []string{"about"})

	require.NotNil(t, first)
	assert.Same(t, first, second)
	assert.Equal(t, int32(1), calls.Load(), "the same secondary page costs one fetch per scrape pass")
}
