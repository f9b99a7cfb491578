package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Scrape    ScrapeConfig
	Cache     CacheConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
	Webhook   WebhookConfig
	Log       LogConfig
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Host string // default: "0.0.0.0"
	Port int    // default: 8080
	Mode string // "debug", "release", "test"; default: "release"
}

// ScrapeConfig controls the acquisition pipeline.
type ScrapeConfig struct {
	// BaseURL is the site the pipeline scrapes.
	BaseURL string // default: "https://www.jbu.edu"

	// MaxRetries is the number of fetch attempts for the primary page.
	MaxRetries int // default: 3

	// SecondaryRetries caps attempts for secondary-page fetches, whose
	// failure is non-fatal to the overall scrape.
	SecondaryRetries int // default: 2

	// AttemptTimeout bounds a single fetch attempt, not the whole call.
	AttemptTimeout time.Duration // default: 8s

	// BackoffBase is multiplied by the attempt number between retries.
	// A uniform 0-1s jitter is added on top.
	BackoffBase time.Duration // default: 1s

	// UserAgents is the identity pool; one is picked at random per attempt.
	UserAgents []string
}

// CacheConfig controls the scrape result cache.
type CacheConfig struct {
	// TTL is how long a computed result is served without re-fetching.
	TTL time.Duration // default: 1h
}

// AuthConfig controls API key authentication.
type AuthConfig struct {
	// Enabled toggles API key authentication.
	Enabled bool // default: false

	// APIKeys is the list of valid API keys.
	APIKeys []string
}

// RateLimitConfig controls per-key rate limiting.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate per API key.
	RequestsPerSecond float64 // default: 5

	// Burst is the maximum burst size per API key.
	Burst int // default: 10
}

// WebhookConfig controls degraded-data notifications.
type WebhookConfig struct {
	// URL receives a dashboard.degraded event when a refresh had to use
	// fallback data. Empty disables delivery.
	URL string

	// Secret, if non-empty, is used to HMAC-sign event payloads.
	Secret string
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string // default: "info"
	Format string // "json" or "text"; default: "json"
}

// defaultUserAgents is the identity pool used when UNIDASH_USER_AGENTS is
// unset. Rotating desktop browser identities defeats trivial UA blocking.
var defaultUserAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.6 Safari/605.1.15",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:133.0) Gecko/20100101 Firefox/133.0",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36",
}

// Load reads configuration from environment variables with sane defaults.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host: envOr("UNIDASH_HOST", "0.0.0.0"),
			Port: envIntOr("UNIDASH_PORT", 8080),
			Mode: envOr("UNIDASH_MODE", "release"),
		},
		Scrape: ScrapeConfig{
			BaseURL:          envOr("UNIDASH_BASE_URL", "https://www.jbu.edu"),
			MaxRetries:       envIntOr("UNIDASH_MAX_RETRIES", 3),
			SecondaryRetries: envIntOr("UNIDASH_SECONDARY_RETRIES", 2),
			AttemptTimeout:   envDurationOr("UNIDASH_ATTEMPT_TIMEOUT", 8*time.Second),
			BackoffBase:      envDurationOr("UNIDASH_BACKOFF_BASE", 1*time.Second),
			UserAgents:       envSliceOr("UNIDASH_USER_AGENTS", defaultUserAgents),
		},
		Cache: CacheConfig{
			TTL: envDurationOr("UNIDASH_CACHE_TTL", 1*time.Hour),
		},
		Auth: AuthConfig{
			Enabled: envBoolOr("UNIDASH_AUTH_ENABLED", false),
			APIKeys: envSliceOr("UNIDASH_API_KEYS", nil),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: envFloatOr("UNIDASH_RATE_RPS", 5.0),
			Burst:             envIntOr("UNIDASH_RATE_BURST", 10),
		},
		Webhook: WebhookConfig{
			URL:    os.Getenv("UNIDASH_WEBHOOK_URL"),
			Secret: os.Getenv("UNIDASH_WEBHOOK_SECRET"),
		},
		Log: LogConfig{
			Level:  envOr("UNIDASH_LOG_LEVEL", "info"),
			Format: envOr("UNIDASH_LOG_FORMAT", "json"),
		},
	}
}

// --- helper functions ---

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBoolOr(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envFloatOr(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envSliceOr(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		return result
	}
	return fallback
}
