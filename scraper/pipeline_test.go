package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unidash/unidash/models"
)

const missionPara = "Example University provides Christ-centered education that prepares people to honor " +
	"God and serve others by developing their professional skills, personal character, and spiritual depth."

// filler keeps test pages above the plausibility threshold for visible text.
const filler = `<footer>
	<p>Example University, 100 University Drive, Springfield. Contact the admissions
	office for campus visits, application deadlines, financial aid counseling and
	transfer credit evaluation. Accredited by the regional higher learning commission.</p>
</footer>`

const statsBlock = `<section class="stats"><ul>
	<li><span class="label">Total Enrollment</span><span class="value">3425</span></li>
	<li><span class="label">Student-Faculty Ratio</span><span class="value">13:1</span></li>
	<li><span class="label">Undergraduate Programs</span><span class="value">52</span></li>
	<li><span class="label">Graduate Programs</span><span class="value">21</span></li>
</ul></section>`

const sharedBlocks = `
	<nav class="main-nav"><ul>
		<li><a href="/colleges/business">College of Business</a>
			<ul><li>Accounting</li><li>Finance</li></ul>
		</li>
	</ul></nav>
	<div class="core-values"><ul><li>Faith</li><li>Scholarship</li></ul></div>` + statsBlock

func sitePage(inner string) string {
	return `<html><head><title>Example University</title></head><body>` + inner + filler + `</body></html>`
}

func newTestPipeline(baseURL string) *Pipeline {
	cfg := testScrapeConfig()
	cfg.BaseURL = baseURL
	cfg.SecondaryRetries = 1

	pl := NewPipeline(cfg)
	pl.fetcher.sleep = func(time.Duration) {}
	pl.fetcher.jitter = func() time.Duration { return 0 }
	return pl
}

func TestScrape_AllFieldsLive(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sitePage(`<section class="mission"><p>` + missionPara + `</p></section>` + sharedBlocks)))
	}))
	defer srv.Close()

	data := newTestPipeline(srv.URL).Scrape(context.Background())

	require.NotNil(t, data)
	assert.Equal(t, missionPara, data.Mission)
	assert.Equal(t, []string{"Faith", "Scholarship"}, data.CoreValues)
	assert.Equal(t, "3425", data.Stats["Total Enrollment"])
	assert.Equal(t, 2, data.Colleges["Business"])
	assert.False(t, data.UsedFallback)
	assert.Equal(t, models.SourceLive, data.Source)
	assert.WithinDuration(t, time.Now(), data.FetchedAt, 5*time.Second)
}

func TestScrape_TotalFetchFailureServesFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	data := newTestPipeline(url).Scrape(context.Background())

	fb := models.DefaultFallback()
	require.NotNil(t, data)
	assert.Equal(t, fb.Mission, data.Mission)
	assert.Equal(t, fb.Mission, data.MissionMarkdown)
	assert.Equal(t, fb.CoreValues, data.CoreValues)
	assert.Equal(t, fb.Stats, data.Stats)
	assert.Equal(t, fb.Colleges, data.Colleges)
	assert.True(t, data.UsedFallback)
	assert.Equal(t, models.SourceFallback, data.Source)
}

func TestScrape_ImplausiblePageServesFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><p>maintenance</p></body></html>`))
	}))
	defer srv.Close()

	data := newTestPipeline(srv.URL).Scrape(context.Background())

	assert.True(t, data.UsedFallback)
	assert.Equal(t, models.SourceFallback, data.Source)
	assert.Equal(t, models.DefaultFallback().Mission, data.Mission)
}

func TestScrape_PartialExtractionMergesFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sitePage(`<section class="mission"><p>` + missionPara + `</p></section>`)))
	}))
	defer srv.Close()

	data := newTestPipeline(srv.URL).Scrape(context.Background())

	fb := models.DefaultFallback()
	assert.Equal(t, missionPara, data.Mission, "the live field stays live")
	assert.Equal(t, fb.CoreValues, data.CoreValues)
	assert.Equal(t, fb.Stats, data.Stats)
	assert.Equal(t, fb.Colleges, data.Colleges)
	assert.True(t, data.UsedFallback)
	assert.Equal(t, models.SourcePartial, data.Source)
}

func TestScrape_MissionRecoveredFromAboutPage(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/about", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sitePage(`<section class="mission"><p>` + missionPara + `</p></section>`)))
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sitePage(`<a href="/about">About the University</a>` + sharedBlocks)))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	data := newTestPipeline(srv.URL).Scrape(context.Background())

	assert.Equal(t, missionPara, data.Mission)
	assert.False(t, data.UsedFallback, "a field recovered from a secondary page is still live data")
	assert.Equal(t, models.SourceLive, data.Source)
}

func TestScrape_StatsExtraLabelsSurviveMerge(t *testing.T) {
	extra := `<section class="stats"><ul>
		<li><span class="label">Campus Acres</span><span class="value">200</span></li>
	</ul></section>`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sitePage(extra)))
	}))
	defer srv.Close()

	data := newTestPipeline(srv.URL).Scrape(context.Background())

	fb := models.DefaultFallback()
	assert.Equal(t, "200", data.Stats["Campus Acres"])
	for label, want := range fb.Stats {
		assert.Equal(t, want, data.Stats[label], "fallback label %q must be filled", label)
	}
	assert.True(t, data.UsedFallback)
	assert.Equal(t, models.SourcePartial, data.Source)
}
