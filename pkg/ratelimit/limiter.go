// Package ratelimit implements the token-bucket limiter that paces every
// request issued through a scrape session. One Limiter instance is shared by
// all requests of a session; that sharing is what enforces the global
// requests-per-second ceiling regardless of how many goroutines issue calls.
package ratelimit

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
)

// Prometheus metrics for limiter behavior.
var (
	limiterWaitSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "nhl_scraper_limiter_wait_seconds",
		Help:    "Time spent waiting for rate limiter capacity",
		Buckets: []float64{0.01, 0.1, 0.5, 1, 2, 5, 10},
	})

	limiterWaitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "nhl_scraper_limiter_waits_total",
		Help: "Total number of acquisitions that had to wait for capacity",
	})
)

// capacity is the size of the token bucket. The bucket never holds more than
// one token, so bursts are capped at a single request no matter how long the
// limiter sat idle.
const capacity = 1.0

// DefaultRate is the refill rate in tokens per second used when none is
// configured.
const DefaultRate = 1.0

// Limiter is a token-bucket rate limiter with capacity 1.0.
type Limiter struct {
	mu         sync.Mutex
	rate       float64
	tokens     float64
	lastRefill time.Time
	logger     zerolog.Logger
}

// New creates a limiter refilling at rate tokens per second. A rate of zero
// or less falls back to DefaultRate. The bucket starts full, so the first
// acquisition never waits.
func New(rate float64, logger zerolog.Logger) *Limiter {
	if rate <= 0 {
		rate = DefaultRate
	}
	return &Limiter{
		rate:       rate,
		tokens:     capacity,
		lastRefill: time.Now(),
		logger:     logger,
	}
}

// Acquire blocks until one unit of capacity is available, then consumes it.
// The mutex is held across the wait so concurrent callers are admitted
// strictly one at a time and cannot double-spend a fractional token. The
// wait is abandoned when ctx is cancelled; in that case no token is
// consumed and the context error is returned.
func (l *Limiter) Acquire(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(l.lastRefill).Seconds()
	l.tokens = math.Min(capacity, l.tokens+elapsed*l.rate)
	l.lastRefill = now

	if l.tokens >= capacity {
		l.tokens -= capacity
		return nil
	}

	wait := time.Duration((capacity - l.tokens) / l.rate * float64(time.Second))
	l.logger.Debug().Dur("wait", wait).Msg("Waiting for rate limit capacity")
	limiterWaitsTotal.Inc()
	limiterWaitSeconds.Observe(wait.Seconds())

	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
	}

	// The bucket drains to exactly zero, never into debt.
	l.tokens = 0
	return nil
}

// Rate returns the configured refill rate in tokens per second.
func (l *Limiter) Rate() float64 {
	return l.rate
}

// Tokens reports the current token count without refilling.
func (l *Limiter) Tokens() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.tokens
}
