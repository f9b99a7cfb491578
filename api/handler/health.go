package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/unidash/unidash/cache"
	"github.com/unidash/unidash/models"
)

// Health returns a handler for GET /api/v1/health.
//
// Status degrades when the most recent cached result had to use fallback
// data — the caller's only health-level signal of scraping trouble.
func Health(cc *cache.Cache, baseURL string, startTime time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := "healthy"
		if data, ok := cc.Peek(baseURL); ok && data.UsedFallback {
			status = "degraded"
		}

		c.JSON(http.StatusOK, models.HealthResponse{
			Status:     status,
			Uptime:     time.Since(startTime).Round(time.Second).String(),
			CacheStats: cc.Stats(),
			Version:    "0.1.0",
		})
	}
}
