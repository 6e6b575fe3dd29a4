package client

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
)

// Prometheus metrics for retry operations.
var (
	retriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nhl_scraper_retries_total",
		Help: "Total number of retry attempts by error class",
	}, []string{"error_class"})

	retryBackoffSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "nhl_scraper_retry_backoff_seconds",
		Help:    "Backoff duration for retries by error class",
		Buckets: []float64{0.5, 1, 2, 5, 10, 30, 60},
	}, []string{"error_class"})

	retryExhaustedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nhl_scraper_retry_exhausted_total",
		Help: "Total number of times retry attempts were exhausted by error class",
	}, []string{"error_class"})
)

// RetryConfig holds the configuration for retry logic.
type RetryConfig struct {
	// MaxAttempts is the total number of attempts (including the initial
	// request).
	MaxAttempts int

	// Base is the exponential base delay; the wait after failed attempt n
	// is Base * 2^(n-1), clamped to [MinBackoff, MaxBackoff].
	Base time.Duration

	// MinBackoff is the minimum wait between attempts.
	MinBackoff time.Duration

	// MaxBackoff is the maximum wait between attempts.
	MaxBackoff time.Duration
}

// DefaultRetryConfig returns the retry policy used against the NHL API:
// three attempts total with exponential backoff clamped to [2s, 30s].
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		Base:        1 * time.Second,
		MinBackoff:  2 * time.Second,
		MaxBackoff:  30 * time.Second,
	}
}

// backoffFor returns the wait after the given failed attempt (1-based).
// No jitter: the minimum and maximum bounds are part of the contract.
func (c RetryConfig) backoffFor(attempt int) time.Duration {
	backoff := c.Base << (attempt - 1)
	if backoff < c.MinBackoff {
		backoff = c.MinBackoff
	}
	if backoff > c.MaxBackoff {
		backoff = c.MaxBackoff
	}
	return backoff
}

// retryWithBackoff executes fn until it succeeds, fails terminally, or the
// attempt budget is spent. fn receives the 1-based attempt number. Errors
// are classified via classify; only transient classes are retried.
func retryWithBackoff(ctx context.Context, cfg RetryConfig, logger zerolog.Logger, fn func(attempt int) error) error {
	var lastErr error

	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		err := fn(attempt)
		if err == nil {
			if attempt > 1 {
				logger.Info().
					Int("attempt", attempt).
					Msg("Request succeeded after retry")
			}
			return nil
		}

		lastErr = err
		errClass := classify(err)

		if !shouldRetry(errClass) {
			return lastErr
		}

		if attempt >= cfg.MaxAttempts {
			break
		}

		backoff := cfg.backoffFor(attempt)
		retriesTotal.WithLabelValues(string(errClass)).Inc()
		retryBackoffSeconds.WithLabelValues(string(errClass)).Observe(backoff.Seconds())

		logger.Debug().
			Str("error_class", string(errClass)).
			Int("attempt", attempt).
			Dur("backoff", backoff).
			Msg("Retrying request after backoff")

		select {
		case <-ctx.Done():
			logger.Warn().
				Str("error_class", string(errClass)).
				Int("attempt", attempt).
				Msg("Context cancelled during retry backoff")
			return fmt.Errorf("%w: %v", ErrContextCancelled, ctx.Err())
		case <-time.After(backoff):
		}
	}

	errClass := classify(lastErr)
	retryExhaustedTotal.WithLabelValues(string(errClass)).Inc()
	logger.Warn().
		Str("error_class", string(errClass)).
		Int("max_attempts", cfg.MaxAttempts).
		Msg("Retry attempts exhausted")

	return fmt.Errorf("%w after %d attempts: %w", ErrRetryExhausted, cfg.MaxAttempts, lastErr)
}
