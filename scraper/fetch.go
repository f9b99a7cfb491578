package scraper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"net"
	"net/http"
	"time"

	tls2 "github.com/refraction-networking/utls"

	"github.com/unidash/unidash/config"
	"github.com/unidash/unidash/models"
)

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 10 * 1024 * 1024 // 10 MB

// Fetcher performs retrying HTTP GETs with a rotating client identity and a
// Chrome TLS fingerprint (utls). Each attempt has its own timeout; between
// failed attempts it sleeps base×attempt plus up to one second of jitter.
type Fetcher struct {
	cfg config.ScrapeConfig

	// sleep and jitter are swappable so tests can run with zero delay.
	sleep  func(time.Duration)
	jitter func() time.Duration
}

// NewFetcher creates a Fetcher from the scrape configuration.
func NewFetcher(cfg config.ScrapeConfig) *Fetcher {
	return &Fetcher{
		cfg:    cfg,
		sleep:  time.Sleep,
		jitter: func() time.Duration { return time.Duration(rand.Float64() * float64(time.Second)) },
	}
}

// Fetch retrieves targetURL, making up to maxRetries attempts. It returns the
// body bytes of the first 2xx response, or a *models.FetchError carrying the
// last observed failure once attempts are exhausted. A non-2xx status counts
// as a failed attempt exactly like a transport error.
func (f *Fetcher) Fetch(ctx context.Context, targetURL string, maxRetries int) ([]byte, error) {
	if maxRetries < 1 {
		maxRetries = 1
	}

	var lastErr error
	attempts := 0
	for attempt := 1; attempt <= maxRetries; attempt++ {
		// Once the parent context is dead no attempt can succeed; remaining
		// attempts and backoff sleeps are skipped.
		if err := ctx.Err(); err != nil {
			if lastErr == nil {
				lastErr = err
			}
			break
		}
		attempts = attempt

		body, err := f.attempt(ctx, targetURL)
		if err == nil {
			slog.Info("fetch succeeded",
				"url", targetURL,
				"attempt", attempt,
				"bytes", len(body),
			)
			return body, nil
		}
		lastErr = err
		slog.Warn("fetch attempt failed",
			"url", targetURL,
			"attempt", attempt,
			"maxRetries", maxRetries,
			"error", err,
		)

		if attempt < maxRetries && ctx.Err() == nil {
			f.sleep(f.backoff(attempt))
		}
	}

	return nil, models.NewFetchError(classifyFetchErr(lastErr), targetURL, attempts, lastErr)
}

// backoff returns the sleep before the next attempt: linear in the attempt
// number, plus uniform jitter in [0,1s).
func (f *Fetcher) backoff(attempt int) time.Duration {
	return f.cfg.BackoffBase*time.Duration(attempt) + f.jitter()
}

// attempt performs one GET with its own timeout and a randomly chosen
// client identity.
func (f *Fetcher) attempt(ctx context.Context, targetURL string) ([]byte, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, f.cfg.AttemptTimeout)
	defer cancel()

	transport := &http.Transport{
		DialTLSContext: dialTLSChrome,
	}
	client := &http.Client{Transport: transport}
	defer client.CloseIdleConnections()

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch: build request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent())
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &statusError{status: resp.StatusCode, url: targetURL}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("fetch: read body: %w", err)
	}

	return body, nil
}

// userAgent picks a client identity uniformly at random from the pool.
func (f *Fetcher) userAgent() string {
	if len(f.cfg.UserAgents) == 0 {
		return "unidash/1.0"
	}
	return f.cfg.UserAgents[rand.Intn(len(f.cfg.UserAgents))]
}

// statusError marks a non-2xx response so classification can tell it apart
// from transport failures.
type statusError struct {
	status int
	url    string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("fetch: HTTP %d for %s", e.status, e.url)
}

// classifyFetchErr maps the last attempt's error to a FetchError code.
func classifyFetchErr(err error) string {
	var se *statusError
	if errors.As(err, &se) {
		return models.ErrCodeFetchStatus
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return models.ErrCodeFetchTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return models.ErrCodeFetchTimeout
	}

	return models.ErrCodeFetchConnection
}

// dialTLSChrome establishes a TLS connection using a Chrome fingerprint via
// utls. Only used for https targets; plain-http URLs take the default dialer.
func dialTLSChrome(ctx context.Context, network, addr string) (net.Conn, error) {
	dialer := &net.Dialer{}
	rawConn, err := dialer.DialContext(ctx, network, addr)
	if err != nil {
		return nil, err
	}

	host, _, _ := net.SplitHostPort(addr)
	tlsConn := tls2.UClient(rawConn, &tls2.Config{
		ServerName: host,
	}, tls2.HelloChrome_Auto)

	if err := tlsConn.HandshakeContext(ctx); err != nil {
		rawConn.Close()
		return nil, err
	}
	return tlsConn, nil
}
