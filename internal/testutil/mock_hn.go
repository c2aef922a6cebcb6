// Package testutil provides testing utilities for the Hacker News client.
package testutil

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"
)

// MockResponse defines the behavior of a mock endpoint response.
type MockResponse struct {
	StatusCode int
	Body       string
	Delay      time.Duration
}

// MockHN is a configurable in-process Hacker News API server for testing.
// Unknown paths answer 200 with the body `null`, matching how the real
// backend reports keys it has never allocated.
type MockHN struct {
	server   *httptest.Server
	mu       sync.RWMutex
	handlers map[string]http.HandlerFunc
	requests []string

	LastRequestHeader http.Header
}

// NewMockHN creates a new mock server.
func NewMockHN() *MockHN {
	mock := &MockHN{
		handlers: make(map[string]http.HandlerFunc),
	}

	mock.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mock.mu.Lock()
		mock.requests = append(mock.requests, r.URL.Path)
		mock.LastRequestHeader = r.Header.Clone()
		mock.mu.Unlock()

		mock.mu.RLock()
		handler, exists := mock.handlers[r.URL.Path]
		mock.mu.RUnlock()

		if exists {
			handler(w, r)
			return
		}

		mock.defaultHandler(w, r)
	}))

	return mock
}

// BaseURL returns the mock server's API base URL, ready for FetcherConfig.
func (m *MockHN) BaseURL() string {
	return m.server.URL + "/v0"
}

// Close shuts down the mock server.
func (m *MockHN) Close() {
	m.server.Close()
}

// Reset clears request tracking and all registered handlers.
func (m *MockHN) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = nil
	m.handlers = make(map[string]http.HandlerFunc)
	m.LastRequestHeader = nil
}

// SetHandler sets a custom handler for a specific path.
func (m *MockHN) SetHandler(path string, handler http.HandlerFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[path] = handler
}

// SetResponse configures a canned response for a path.
func (m *MockHN) SetResponse(path string, resp MockResponse) {
	m.SetHandler(path, func(w http.ResponseWriter, r *http.Request) {
		if resp.Delay > 0 {
			time.Sleep(resp.Delay)
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(resp.StatusCode)
		if resp.Body != "" {
			w.Write([]byte(resp.Body))
		}
	})
}

// SetItem registers the JSON document served for an item ID.
func (m *MockHN) SetItem(id int, body string) {
	m.SetResponse(fmt.Sprintf("/v0/item/%d.json", id), MockResponse{StatusCode: http.StatusOK, Body: body})
}

// SetUser registers the JSON document served for a user name.
func (m *MockHN) SetUser(name, body string) {
	m.SetResponse(fmt.Sprintf("/v0/user/%s.json", name), MockResponse{StatusCode: http.StatusOK, Body: body})
}

// SetAggregate registers the JSON document served for a site-wide endpoint
// such as "topstories" or "maxitem".
func (m *MockHN) SetAggregate(endpoint, body string) {
	m.SetResponse(fmt.Sprintf("/v0/%s.json", endpoint), MockResponse{StatusCode: http.StatusOK, Body: body})
}

// RequestCount returns the total number of requests the server has seen.
func (m *MockHN) RequestCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.requests)
}

// RequestCountFor returns the number of requests whose path starts with the
// given prefix, e.g. "/v0/user/".
func (m *MockHN) RequestCountFor(prefix string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	count := 0
	for _, path := range m.requests {
		if strings.HasPrefix(path, prefix) {
			count++
		}
	}
	return count
}

// defaultHandler answers like the real backend does for unallocated keys.
func (m *MockHN) defaultHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("null"))
}

// NewNotFoundResponse creates the 200 `null` response the backend uses for
// absent items and users.
func NewNotFoundResponse() MockResponse {
	return MockResponse{
		StatusCode: http.StatusOK,
		Body:       "null",
	}
}

// NewServerErrorResponse creates a 500 Internal Server Error response.
func NewServerErrorResponse() MockResponse {
	return MockResponse{
		StatusCode: http.StatusInternalServerError,
		Body:       `{"error": "internal server error"}`,
	}
}

// NewRateLimitResponse creates a 429 Too Many Requests response.
func NewRateLimitResponse() MockResponse {
	return MockResponse{
		StatusCode: http.StatusTooManyRequests,
		Body:       `{"error": "rate limit exceeded"}`,
	}
}
