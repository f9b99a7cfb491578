package models

import "time"

// Data source labels for DashboardData.Source.
const (
	SourceLive     = "live"     // every field came from the site
	SourcePartial  = "partial"  // at least one field fell back
	SourceFallback = "fallback" // the primary fetch failed entirely
)

// DashboardData is the structured result of one scrape of the university
// site. Every field is always populated, either with extracted content or
// with its fallback counterpart. It is immutable once assembled.
type DashboardData struct {
	// Mission is the institutional mission statement.
	Mission string `json:"mission"`

	// MissionMarkdown is a Markdown rendering of the mission container's
	// HTML, when one was located; otherwise it equals Mission.
	MissionMarkdown string `json:"mission_markdown"`

	// CoreValues is the ordered list of institutional value statements.
	CoreValues []string `json:"core_values"`

	// Stats maps headline statistic labels (e.g. "Total Enrollment")
	// to their display values.
	Stats map[string]string `json:"stats"`

	// Colleges maps college names to their program counts.
	Colleges map[string]int `json:"colleges"`

	// UsedFallback is true when at least one field equals, or was partially
	// filled from, its fallback counterpart.
	UsedFallback bool `json:"used_fallback"`

	// Source summarises where the data came from: "live", "partial" or
	// "fallback".
	Source string `json:"source"`

	// FetchedAt is when this result was computed.
	FetchedAt time.Time `json:"fetched_at"`
}

// DashboardResponse is the response for GET /api/v1/dashboard and
// POST /api/v1/refresh.
type DashboardResponse struct {
	// Success indicates whether a result was produced. Degraded results
	// (UsedFallback true) are still successful.
	Success bool `json:"success"`

	// Data is the dashboard dataset.
	Data *DashboardData `json:"data,omitempty"`

	// CacheStatus indicates whether the response was served from cache.
	// Values: "hit", "miss", or "bypass" for refresh.
	CacheStatus string `json:"cache_status,omitempty"`

	// Timing provides the end-to-end duration in milliseconds.
	Timing TimingInfo `json:"timing"`

	// Error is populated only when Success is false.
	Error *ErrorDetail `json:"error,omitempty"`
}

// TimingInfo breaks down the time spent serving a request.
type TimingInfo struct {
	// TotalMs is the end-to-end duration in milliseconds.
	TotalMs int64 `json:"total_ms"`

	// ScrapeMs is the time spent fetching and extracting, zero on a
	// cache hit.
	ScrapeMs int64 `json:"scrape_ms,omitempty"`
}

// HealthResponse is the response for GET /api/v1/health.
type HealthResponse struct {
	Status     string     `json:"status"` // "healthy" or "degraded"
	Uptime     string     `json:"uptime"`
	CacheStats CacheStats `json:"cache_stats"`
	Version    string     `json:"version"`
}

// CacheStats reports the state of the result cache.
type CacheStats struct {
	Entries   int    `json:"entries"`
	TTL       string `json:"ttl"`
	LastStore string `json:"last_store,omitempty"`
}
