// Package client provides the reusable scraping session: one open HTTP
// connection context paired with one rate limiter and a retrying request
// executor. Source-specific scrapers compose a Session instead of
// inheriting shared behavior from a base type.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"

	"github.com/pucklab/nhl-scraper/pkg/logging"
	"github.com/pucklab/nhl-scraper/pkg/ratelimit"
)

// Prometheus metrics for session requests.
var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nhl_scraper_requests_total",
		Help: "Total upstream requests by source, path and status",
	}, []string{"source", "path", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "nhl_scraper_request_duration_seconds",
		Help:    "Upstream request duration in seconds by source and path",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30},
	}, []string{"source", "path"})

	requestErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nhl_scraper_request_errors_total",
		Help: "Total request errors by source and class",
	}, []string{"source", "class"})
)

// Config holds the session configuration.
type Config struct {
	// SourceName tags logs and metrics for this upstream source.
	SourceName string

	// BaseURL is prepended to every request path.
	BaseURL string

	// UserAgent identifies the client to the upstream API.
	UserAgent string

	// RequestsPerSecond is the token-bucket refill rate shared by all
	// requests in this session.
	RequestsPerSecond float64

	// Retry is the backoff policy applied to each request.
	Retry RetryConfig

	// Timeout applies to each individual HTTP attempt.
	Timeout time.Duration
}

// DefaultConfig returns a session configuration with the polite defaults
// used against public sports APIs: one request per second, 30s timeout,
// three attempts with 2s..30s exponential backoff.
func DefaultConfig(sourceName, baseURL, userAgent string) Config {
	return Config{
		SourceName:        sourceName,
		BaseURL:           baseURL,
		UserAgent:         userAgent,
		RequestsPerSecond: ratelimit.DefaultRate,
		Retry:             DefaultRetryConfig(),
		Timeout:           30 * time.Second,
	}
}

// Session is an open scrape session. All requests issued through one
// Session share its rate limiter, which is the invariant that keeps the
// global request rate honest. Create a Session with New and release it with
// Close; requests after Close (or on a zero Session) fail with
// ErrNotInitialized.
type Session struct {
	httpClient *http.Client
	limiter    *ratelimit.Limiter
	config     Config
	logger     zerolog.Logger
}

// New opens a scrape session.
func New(cfg Config) (*Session, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	if cfg.UserAgent == "" {
		return nil, fmt.Errorf("user-agent is required")
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = ratelimit.DefaultRate
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.Retry.MaxAttempts <= 0 {
		cfg.Retry = DefaultRetryConfig()
	}

	logger := logging.NewLogger("client").With().Str("source", cfg.SourceName).Logger()

	return &Session{
		// Redirects are followed by net/http automatically.
		httpClient: &http.Client{Timeout: cfg.Timeout},
		limiter:    ratelimit.New(cfg.RequestsPerSecond, logger),
		config:     cfg,
		logger:     logger,
	}, nil
}

// Close releases the session's connection context. It is safe to call more
// than once. Any request issued afterwards fails with ErrNotInitialized.
func (s *Session) Close() error {
	if s == nil || s.httpClient == nil {
		return nil
	}
	s.httpClient.CloseIdleConnections()
	s.httpClient = nil
	return nil
}

// Limiter exposes the session's rate limiter.
func (s *Session) Limiter() *ratelimit.Limiter {
	return s.limiter
}

// GetJSON performs a rate-limited GET against path and returns the parsed
// JSON object body. Transient failures (network, 5xx) are retried per the
// session's retry policy; 4xx responses and programmer errors fail fast.
func (s *Session) GetJSON(ctx context.Context, path string, query url.Values) (map[string]any, error) {
	body, err := s.get(ctx, path, query)
	if err != nil {
		return nil, err
	}

	var parsed map[string]any
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode %s response: %w", path, err)
	}
	return parsed, nil
}

// get runs the rate-limited, retried request loop and returns the raw body.
// The limiter is re-acquired on every attempt so retries are paced like any
// other request.
func (s *Session) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	startTime := time.Now()
	defer func() {
		requestDuration.WithLabelValues(s.config.SourceName, path).Observe(time.Since(startTime).Seconds())
	}()

	var body []byte
	err := retryWithBackoff(ctx, s.config.Retry, s.logger, func(attempt int) error {
		data, attemptErr := s.attempt(ctx, path, query, attempt)
		if attemptErr != nil {
			return attemptErr
		}
		body = data
		return nil
	})
	if err != nil {
		return nil, err
	}
	return body, nil
}

// attempt issues a single HTTP call through the limiter.
func (s *Session) attempt(ctx context.Context, path string, query url.Values, attempt int) ([]byte, error) {
	if s == nil || s.httpClient == nil {
		return nil, ErrNotInitialized
	}

	if err := s.limiter.Acquire(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrContextCancelled, err)
	}

	s.logger.Debug().
		Str("method", http.MethodGet).
		Str("path", path).
		Int("attempt", attempt).
		Msg("request")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.config.BaseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if query != nil {
		req.URL.RawQuery = query.Encode()
	}
	req.Header.Set("User-Agent", s.config.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, reqErr := s.httpClient.Do(req)
	if reqErr != nil {
		requestErrorsTotal.WithLabelValues(s.config.SourceName, string(ErrorClassNetwork)).Inc()
		requestsTotal.WithLabelValues(s.config.SourceName, path, "network_error").Inc()
		return nil, &RequestError{
			ErrorClass: ErrorClassNetwork,
			Message:    "request failed",
			Err:        reqErr,
		}
	}
	defer resp.Body.Close()

	requestsTotal.WithLabelValues(s.config.SourceName, path, strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		errClass := classifyStatus(resp.StatusCode)
		requestErrorsTotal.WithLabelValues(s.config.SourceName, string(errClass)).Inc()

		s.logger.Warn().
			Str("path", path).
			Int("status", resp.StatusCode).
			Str("error_class", string(errClass)).
			Msg("request error")

		return nil, &RequestError{
			StatusCode: resp.StatusCode,
			ErrorClass: errClass,
			Message:    resp.Status,
		}
	}

	data, readErr := io.ReadAll(resp.Body)
	if readErr != nil {
		requestErrorsTotal.WithLabelValues(s.config.SourceName, string(ErrorClassNetwork)).Inc()
		return nil, &RequestError{
			ErrorClass: ErrorClassNetwork,
			Message:    "read response body",
			Err:        readErr,
		}
	}

	return data, nil
}
