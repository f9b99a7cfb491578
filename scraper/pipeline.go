package scraper

import (
	"context"
	"log/slog"
	"time"

	"github.com/unidash/unidash/config"
	"github.com/unidash/unidash/extract"
	"github.com/unidash/unidash/models"
)

// Pipeline is the single entry point of the acquisition pipeline: fetch the
// primary page, run the four field extractors against it, merge with the
// fallback dataset and assemble the result. It is synchronous; one invocation
// performs all of its network I/O on the calling goroutine.
type Pipeline struct {
	cfg      config.ScrapeConfig
	fetcher  *Fetcher
	fallback models.FallbackDataset
}

// NewPipeline creates a Pipeline from the scrape configuration.
func NewPipeline(cfg config.ScrapeConfig) *Pipeline {
	return &Pipeline{
		cfg:      cfg,
		fetcher:  NewFetcher(cfg),
		fallback: models.DefaultFallback(),
	}
}

// Scrape always returns a complete DashboardData: every field is populated
// either with extracted content or its fallback counterpart. Degradation is
// signalled via UsedFallback and Source, never by an error. A total fetch
// failure on the primary page skips extraction entirely and yields the pure
// fallback dataset.
func (p *Pipeline) Scrape(ctx context.Context) *models.DashboardData {
	start := time.Now()

	body, err := p.fetcher.Fetch(ctx, p.cfg.BaseURL, p.cfg.MaxRetries)
	if err != nil {
		slog.Error("primary page unavailable, serving fallback dataset",
			"url", p.cfg.BaseURL,
			"error", err,
		)
		return p.fallbackResult()
	}

	page, err := extract.ParsePage(p.cfg.BaseURL, body)
	if err != nil {
		slog.Error("primary page unparseable, serving fallback dataset",
			"url", p.cfg.BaseURL,
			"error", err,
		)
		return p.fallbackResult()
	}
	if !page.Plausible() {
		slog.Warn("primary page has no meaningful content, serving fallback dataset",
			"url", p.cfg.BaseURL,
			"title", page.Title,
		)
		return p.fallbackResult()
	}

	resolver, err := extract.NewResolver(p.cfg.BaseURL, p.fetcher.Fetch, p.cfg.SecondaryRetries)
	if err != nil {
		slog.Error("invalid base URL, serving fallback dataset", "url", p.cfg.BaseURL, "error", err)
		return p.fallbackResult()
	}

	// The four extractors run independently against the same primary
	// document; none may influence another's input or output.
	mission, missionMD, missionFB := extract.Mission(ctx, page, resolver, p.fallback.Mission)
	values, valuesFB := extract.Values(ctx, page, resolver, p.fallback.CoreValues)
	stats, statsFB := extract.Stats(ctx, page, resolver, p.fallback.Stats)
	colleges, collegesFB := extract.Colleges(ctx, page, resolver, p.fallback.Colleges)

	usedFallback := missionFB || valuesFB || statsFB || collegesFB
	source := models.SourceLive
	if usedFallback {
		source = models.SourcePartial
	}

	slog.Info("scrape completed",
		"url", p.cfg.BaseURL,
		"source", source,
		"usedFallback", usedFallback,
		"durationMs", time.Since(start).Milliseconds(),
	)

	return &models.DashboardData{
		Mission:         mission,
		MissionMarkdown: missionMD,
		CoreValues:      values,
		Stats:           stats,
		Colleges:        colleges,
		UsedFallback:    usedFallback,
		Source:          source,
		FetchedAt:       time.Now().UTC(),
	}
}

// fallbackResult is the pure fallback dataset, returned when the primary
// page could not be fetched or parsed at all.
func (p *Pipeline) fallbackResult() *models.DashboardData {
	fb := models.DefaultFallback()
	return &models.DashboardData{
		Mission:         fb.Mission,
		MissionMarkdown: fb.Mission,
		CoreValues:      fb.CoreValues,
		Stats:           fb.Stats,
		Colleges:        fb.Colleges,
		UsedFallback:    true,
		Source:          models.SourceFallback,
		FetchedAt:       time.Now().UTC(),
	}
}
