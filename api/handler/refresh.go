package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/unidash/unidash/cache"
	"github.com/unidash/unidash/config"
	"github.com/unidash/unidash/models"
	"github.com/unidash/unidash/scraper"
	"github.com/unidash/unidash/webhook"
)

// Refresh returns a handler for POST /api/v1/refresh.
//
// Invalidation is a whole-cache clear followed by a synchronous recompute;
// the fresh result is returned and cached. When the refresh had to use
// fallback data and a webhook is configured, a dashboard.degraded event is
// delivered asynchronously.
func Refresh(pl *scraper.Pipeline, cc *cache.Cache, baseURL string, hook config.WebhookConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		totalStart := time.Now()

		cc.Clear()

		// The recomputed result is cached past this request, so the scrape
		// must survive a client disconnect.
		scrapeCtx := context.WithoutCancel(c.Request.Context())

		var scrapeMs int64
		data, _ := cc.GetOrCompute(baseURL, func() *models.DashboardData {
			scrapeStart := time.Now()
			d := pl.Scrape(scrapeCtx)
			scrapeMs = time.Since(scrapeStart).Milliseconds()
			return d
		})

		if data.UsedFallback && hook.URL != "" {
			webhook.DeliverAsync(hook.URL, hook.Secret, &webhook.Event{
				Type:      webhook.EventDegraded,
				Timestamp: time.Now().Unix(),
				Data: map[string]interface{}{
					"url":        baseURL,
					"source":     data.Source,
					"fetched_at": data.FetchedAt,
				},
			})
		}

		c.JSON(http.StatusOK, models.DashboardResponse{
			Success:     true,
			Data:        data,
			CacheStatus: "bypass",
			Timing: models.TimingInfo{
				TotalMs:  time.Since(totalStart).Milliseconds(),
				ScrapeMs: scrapeMs,
			},
		})
	}
}
