package hn

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"golang.org/x/sync/semaphore"

	"github.com/sternhagen/hn-api-client/pkg/logging"
)

// Prometheus metrics for Hacker News API requests. The endpoint label is the
// resource kind ("item", "user") or feed name, never an individual key, so
// cardinality stays bounded.
var (
	hnRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hn_requests_total",
		Help: "Total number of Hacker News API requests by endpoint and status",
	}, []string{"endpoint", "status"})

	hnRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "hn_request_duration_seconds",
		Help:    "Duration of Hacker News API requests by endpoint",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	}, []string{"endpoint"})

	hnErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hn_errors_total",
		Help: "Total number of resolution errors by class",
	}, []string{"class"})
)

// DefaultBaseURL is the base URL of the official Hacker News API.
const DefaultBaseURL = "https://hacker-news.firebaseio.com/v0"

// Fetcher retrieves raw JSON documents from a Hacker News backend. All three
// methods return the response body unparsed. The API reports an absent item
// or user as the JSON document `null`, so callers must treat a null body as
// absence rather than as an error.
type Fetcher interface {
	// FetchItem retrieves the raw JSON document for the item with the given ID.
	FetchItem(ctx context.Context, id int) ([]byte, error)

	// FetchUser retrieves the raw JSON document for the user with the given name.
	FetchUser(ctx context.Context, name string) ([]byte, error)

	// FetchAggregate retrieves the raw JSON document for a site-wide endpoint
	// such as a story feed, the maximum item ID, or the update bundle.
	FetchAggregate(ctx context.Context, endpoint Endpoint) ([]byte, error)
}

// FetcherConfig holds the configuration for the HTTP fetcher.
type FetcherConfig struct {
	// BaseURL is the API base URL without a trailing slash.
	BaseURL string

	// UserAgent identifies the client in outgoing requests.
	UserAgent string

	// Timeout is the per-request HTTP timeout.
	Timeout time.Duration

	// MaxConcurrency caps the number of in-flight requests. 0 means no cap.
	MaxConcurrency int

	// MaxRetries is the maximum number of attempts per request (including
	// the initial one). 1 disables retries.
	MaxRetries int

	// InitialBackoff is the backoff before the first retry.
	InitialBackoff time.Duration
}

// DefaultFetcherConfig returns the default fetcher configuration pointing at
// the official API.
func DefaultFetcherConfig() FetcherConfig {
	return FetcherConfig{
		BaseURL:        DefaultBaseURL,
		UserAgent:      "hn-api-client/0.1.0",
		Timeout:        10 * time.Second,
		MaxConcurrency: 0,
		MaxRetries:     3,
		InitialBackoff: 1 * time.Second,
	}
}

// HTTPFetcher is the production Fetcher backed by net/http. It retries
// transient failures with exponential backoff and optionally caps the number
// of concurrent requests.
type HTTPFetcher struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	retryCfg   RetryConfig
	sem        *semaphore.Weighted
	logger     zerolog.Logger
}

// NewHTTPFetcher creates a new HTTP fetcher with the given configuration.
// Zero values fall back to DefaultFetcherConfig.
func NewHTTPFetcher(cfg FetcherConfig) (*HTTPFetcher, error) {
	defaults := DefaultFetcherConfig()

	if cfg.BaseURL == "" {
		cfg.BaseURL = defaults.BaseURL
	}
	parsed, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", cfg.BaseURL, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("invalid base URL %q: scheme must be http or https", cfg.BaseURL)
	}

	if cfg.UserAgent == "" {
		cfg.UserAgent = defaults.UserAgent
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaults.Timeout
	}
	if cfg.Timeout < 0 {
		return nil, fmt.Errorf("timeout must not be negative, got %v", cfg.Timeout)
	}
	if cfg.MaxConcurrency < 0 {
		return nil, fmt.Errorf("max concurrency must not be negative, got %d", cfg.MaxConcurrency)
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = defaults.MaxRetries
	}
	if cfg.MaxRetries < 1 {
		return nil, fmt.Errorf("max retries must be at least 1, got %d", cfg.MaxRetries)
	}
	if cfg.InitialBackoff == 0 {
		cfg.InitialBackoff = defaults.InitialBackoff
	}
	if cfg.InitialBackoff < 0 {
		return nil, fmt.Errorf("initial backoff must not be negative, got %v", cfg.InitialBackoff)
	}

	retryCfg := DefaultRetryConfig()
	retryCfg.MaxAttempts = cfg.MaxRetries
	retryCfg.InitialBackoff = cfg.InitialBackoff

	f := &HTTPFetcher{
		baseURL:   strings.TrimSuffix(cfg.BaseURL, "/"),
		userAgent: cfg.UserAgent,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		retryCfg: retryCfg,
		logger:   logging.NewLogger("hn-transport"),
	}
	if cfg.MaxConcurrency > 0 {
		f.sem = semaphore.NewWeighted(int64(cfg.MaxConcurrency))
	}
	return f, nil
}

// FetchItem retrieves the raw JSON document for the item with the given ID.
func (f *HTTPFetcher) FetchItem(ctx context.Context, id int) ([]byte, error) {
	return f.fetch(ctx, fmt.Sprintf("item/%d", id), ResourceItem)
}

// FetchUser retrieves the raw JSON document for the user with the given name.
func (f *HTTPFetcher) FetchUser(ctx context.Context, name string) ([]byte, error) {
	return f.fetch(ctx, "user/"+url.PathEscape(name), ResourceUser)
}

// FetchAggregate retrieves the raw JSON document for a site-wide endpoint.
func (f *HTTPFetcher) FetchAggregate(ctx context.Context, endpoint Endpoint) ([]byte, error) {
	return f.fetch(ctx, string(endpoint), string(endpoint))
}

// fetch performs a GET against {baseURL}/{path}.json with retries. The
// endpoint argument labels metrics and log lines.
func (f *HTTPFetcher) fetch(ctx context.Context, path, endpoint string) ([]byte, error) {
	if f.sem != nil {
		if err := f.sem.Acquire(ctx, 1); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrContextCancelled, err)
		}
		defer f.sem.Release(1)
	}

	requestURL := fmt.Sprintf("%s/%s.json", f.baseURL, path)

	var body []byte
	err := retryRequest(ctx, f.logger, f.retryCfg, func() (failureClass, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
		if err != nil {
			return failureClient, fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("User-Agent", f.userAgent)
		req.Header.Set("Accept", "application/json")

		start := time.Now()
		resp, err := f.httpClient.Do(req)
		if err != nil {
			hnRequestsTotal.WithLabelValues(endpoint, "error").Inc()
			return failureNetwork, fmt.Errorf("execute request: %w", err)
		}
		defer resp.Body.Close()

		hnRequestsTotal.WithLabelValues(endpoint, strconv.Itoa(resp.StatusCode)).Inc()
		hnRequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			f.logger.Debug().
				Str("endpoint", endpoint).
				Int("status", resp.StatusCode).
				Msg("Request failed with non-2xx status")
			return classifyStatus(resp.StatusCode), &StatusError{Endpoint: endpoint, StatusCode: resp.StatusCode}
		}

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return failureNetwork, fmt.Errorf("read response body: %w", err)
		}
		body = data
		return "", nil
	})
	if err != nil {
		return nil, err
	}
	return body, nil
}
