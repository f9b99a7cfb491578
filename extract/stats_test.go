package extract

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func fallbackStats() map[string]string {
	return map[string]string{
		"Total Enrollment":  "3200",
		"Graduate Programs": "18",
	}
}

func TestStats_FromSections(t *testing.T) {
	p := page(t, testBaseURL, `
		<section class="stats-grid"><ul>
			<li class="stat-item"><span class="label">Total Enrollment</span><span class="value">3425</span></li>
			<li class="stat-item"><span class="label">Campus Acres</span><span class="value">200</span></li>
		</ul></section>`)

	stats, usedFallback := Stats(context.Background(), p, resolver(t, noFetch(t)), fallbackStats())

	assert.Equal(t, "3425", stats["Total Enrollment"])
	assert.Equal(t, "200", stats["Campus Acres"], "labels outside the fallback set are kept")
	assert.Equal(t, "18", stats["Graduate Programs"], "missing fallback labels are filled in")
	assert.True(t, usedFallback, "filling any label from the fallback flags the result")
}

func TestStats_AllLabelsExtractedIsNotFallback(t *testing.T) {
	p := page(t, testBaseURL, `
		<div class="quick-facts"><ul>
			<li><strong>Total Enrollment</strong> <span class="number">3425</span></li>
			<li><strong>Graduate Programs</strong> <span class="number">21</span></li>
		</ul></div>`)

	stats, usedFallback := Stats(context.Background(), p, resolver(t, noFetch(t)), fallbackStats())

	assert.Equal(t, map[string]string{
		"Total Enrollment":  "3425",
		"Graduate Programs": "21",
	}, stats)
	assert.False(t, usedFallback)
}

func TestStats_FromTable(t *testing.T) {
	p := page(t, testBaseURL, `
		<table class="facts-table">
			<tr><th>Label</th></tr>
			<tr><td>Student-Faculty Ratio</td><td>13:1</td></tr>
			<tr><td>Total Enrollment</td><td>3390</td></tr>
		</table>`)

	stats, _ := Stats(context.Background(), p, resolver(t, noFetch(t)), fallbackStats())

	assert.Equal(t, "13:1", stats["Student-Faculty Ratio"])
	assert.Equal(t, "3390", stats["Total Enrollment"])
}

func TestStats_MergeLaw(t *testing.T) {
	// For every fallback label: extracted value when present, fallback value
	// otherwise. Extracted labels outside the fallback set survive.
	p := page(t, testBaseURL, `
		<section class="stats"><ul>
			<li><span class="stat-label">Total Enrollment</span><span class="stat-value">3425</span></li>
		</ul></section>`)

	fb := fallbackStats()
	stats, usedFallback := Stats(context.Background(), p, resolver(t, noFetch(t)), fb)

	for k := range fb {
		_, present := stats[k]
		assert.True(t, present, "fallback label %q must always be populated", k)
	}
	assert.Equal(t, "3425", stats["Total Enrollment"])
	assert.Equal(t, fb["Graduate Programs"], stats["Graduate Programs"])
	assert.True(t, usedFallback)
}

func TestStats_NoCuesReturnsFallbackMapping(t *testing.T) {
	p := page(t, testBaseURL, `<p>no statistics on this page</p>`)

	stats, usedFallback := Stats(context.Background(), p, resolver(t, serveFetch(nil)), fallbackStats())

	assert.Equal(t, fallbackStats(), stats)
	assert.True(t, usedFallback)
}

func TestStats_FromSecondaryFactsPage(t *testing.T) {
	p := page(t, testBaseURL, `<nav><ul><li><a href="/quick-facts">Quick Facts</a></li></ul></nav>`)

	fetch := serveFetch(map[string]string{
		testBaseURL + "/quick-facts": aboutPage(t, `
			<table class="stats"><tr><td>Undergraduate Programs</td><td>52</td></tr></table>`),
	})

	stats, usedFallback := Stats(context.Background(), p, resolver(t, fetch), fallbackStats())

	assert.Equal(t, "52", stats["Undergraduate Programs"])
	assert.Equal(t, "3200", stats["Total Enrollment"], "labels the secondary page lacks fall back")
	assert.True(t, usedFallback)
}

func TestStats_ResultDoesNotAliasFallback(t *testing.T) {
	p := page(t, testBaseURL, `<p>nothing</p>`)

	fb := fallbackStats()
	stats, _ := Stats(context.Background(), p, resolver(t, serveFetch(nil)), fb)

	stats["Total Enrollment"] = "mutated"
	assert.Equal(t, "3200", fb["Total Enrollment"])
}
