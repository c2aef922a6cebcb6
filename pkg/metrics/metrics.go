// Package metrics provides the centralized Prometheus registry reference for
// the Hacker News client. All metrics are defined in the packages that record
// them (pkg/hn, cmd/hn-proxy) to maintain modularity and avoid circular
// dependencies.
//
// This package provides documentation and reference for all available metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry is the default Prometheus registerer used by the client. All
// metrics are automatically registered via promauto in their respective
// packages.
var Registry = prometheus.DefaultRegisterer

// Metrics Documentation
//
// Request Metrics (pkg/hn):
//   - hn_requests_total{endpoint, status} (Counter): Total requests by endpoint and HTTP status
//   - hn_request_duration_seconds{endpoint} (Histogram): Request duration by endpoint
//   - hn_errors_total{class} (Counter): Resolution errors by class (not_found, transport, decode)
//
// The endpoint label holds the resource kind ("item", "user") or a feed name
// ("topstories", "maxitem", ...), never an individual key.
//
// Retry Metrics (pkg/hn):
//   - hn_retries_total{error_class} (Counter): Retry attempts by error class
//   - hn_retry_backoff_seconds{error_class} (Histogram): Backoff duration by error class
//   - hn_retry_exhausted_total{error_class} (Counter): Requests that exhausted max retries
//
// Proxy Metrics (cmd/hn-proxy):
//   - hnproxy_http_requests_total{route, status} (Counter): Proxy requests by route and status
//   - hnproxy_http_request_duration_seconds{route} (Histogram): Proxy request latency by route
//
// Example Prometheus Queries:
//
//   # Absence Rate on Strict Lookups
//   rate(hn_errors_total{class="not_found"}[5m])
//
//   # Upstream Error Rate
//   rate(hn_errors_total{class="transport"}[5m])
//
//   # P95 Upstream Latency
//   histogram_quantile(0.95, rate(hn_request_duration_seconds_bucket[5m]))
//
//   # Retry Pressure by Failure Class
//   sum by (error_class) (rate(hn_retries_total[5m]))
