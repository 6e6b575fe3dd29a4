// Package metrics provides the centralized Prometheus metrics registry for
// the NHL scraper. All metrics are defined in their respective packages
// (client, ratelimit) to maintain modularity and avoid circular
// dependencies.
//
// This package provides documentation and reference for all available
// metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry is the default Prometheus registry used by the scraper.
// All metrics are automatically registered via promauto in their
// respective packages.
var Registry = prometheus.DefaultRegisterer

// Metrics Documentation
//
// Rate Limit Metrics (pkg/ratelimit):
//   - nhl_scraper_limiter_wait_seconds (Histogram): Time spent waiting for a token
//   - nhl_scraper_limiter_waits_total (Counter): Acquisitions that had to wait
//
// Request Metrics (pkg/client):
//   - nhl_scraper_requests_total{source, path, status} (Counter): Requests by source, path and HTTP status
//   - nhl_scraper_request_duration_seconds{source, path} (Histogram): Request duration including retries
//   - nhl_scraper_request_errors_total{source, class} (Counter): Errors by class (client, server, network)
//
// Retry Metrics (pkg/client):
//   - nhl_scraper_retries_total{error_class} (Counter): Retry attempts by error class
//   - nhl_scraper_retry_backoff_seconds{error_class} (Histogram): Backoff duration by error class
//   - nhl_scraper_retry_exhausted_total{error_class} (Counter): Requests that exhausted max retries
//
// Example Prometheus Queries:
//
//   # Request Error Rate
//   rate(nhl_scraper_request_errors_total[5m])
//
//   # P95 Request Latency
//   histogram_quantile(0.95, rate(nhl_scraper_request_duration_seconds_bucket[5m]))
//
//   # Share of acquisitions that block on the rate limiter
//   rate(nhl_scraper_limiter_waits_total[5m]) / rate(nhl_scraper_requests_total[5m])
