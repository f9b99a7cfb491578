package api

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/unidash/unidash/api/handler"
	"github.com/unidash/unidash/api/middleware"
	"github.com/unidash/unidash/cache"
	"github.com/unidash/unidash/config"
	"github.com/unidash/unidash/scraper"
)

// NewRouter creates a configured Gin engine with all routes and middleware.
//
// Middleware chain:
//
//	Global:  Recovery → Logger
//	API:     Auth (if enabled) → RateLimit
//
// Health endpoint is intentionally outside auth so monitoring probes always work.
func NewRouter(pl *scraper.Pipeline, cc *cache.Cache, cfg *config.Config, startTime time.Time) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(middleware.Recovery())
	r.Use(gin.Logger())

	v1 := r.Group("/api/v1")

	// Health — no auth required.
	v1.GET("/health", handler.Health(cc, cfg.Scrape.BaseURL, startTime))

	// Protected group — auth + rate limit.
	protected := v1.Group("")
	if cfg.Auth.Enabled {
		protected.Use(middleware.Auth(cfg.Auth.APIKeys))
	}
	protected.Use(middleware.RateLimit(cfg.RateLimit))

	// Dashboard data, cache-backed.
	protected.GET("/dashboard", handler.Dashboard(pl, cc, cfg.Scrape.BaseURL))

	// Explicit cache invalidation + synchronous recompute.
	protected.POST("/refresh", handler.Refresh(pl, cc, cfg.Scrape.BaseURL, cfg.Webhook))

	return r
}
