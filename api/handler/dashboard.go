package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/unidash/unidash/cache"
	"github.com/unidash/unidash/models"
	"github.com/unidash/unidash/scraper"
)

// Dashboard returns a handler for GET /api/v1/dashboard.
//
// Within the cache TTL the memoized result is served without any network
// I/O; on a miss or expiry the pipeline runs synchronously. The response is
// always a complete dataset: degraded scrapes surface through
// data.used_fallback, never as an error.
func Dashboard(pl *scraper.Pipeline, cc *cache.Cache, baseURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		totalStart := time.Now()

		// The computed result outlives this request via the cache, so the
		// scrape must not be aborted by a client disconnect: a cancellation
		// mid-fetch would cache the fallback dataset for the full TTL.
		scrapeCtx := context.WithoutCancel(c.Request.Context())

		var scrapeMs int64
		data, hit := cc.GetOrCompute(baseURL, func() *models.DashboardData {
			scrapeStart := time.Now()
			d := pl.Scrape(scrapeCtx)
			scrapeMs = time.Since(scrapeStart).Milliseconds()
			return d
		})

		status := "hit"
		if !hit {
			status = "miss"
		}

		c.JSON(http.StatusOK, models.DashboardResponse{
			Success:     true,
			Data:        data,
			CacheStatus: status,
			Timing: models.TimingInfo{
				TotalMs:  time.Since(totalStart).Milliseconds(),
				ScrapeMs: scrapeMs,
			},
		})
	}
}
