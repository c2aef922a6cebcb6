package main

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/sternhagen/hn-api-client/pkg/hn"
)

// Prometheus metrics for the proxy's own HTTP surface. The route label is the
// chi route pattern, never a concrete path.
var (
	proxyRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hnproxy_http_requests_total",
		Help: "Total number of proxy HTTP requests by route and status",
	}, []string{"route", "status"})

	proxyRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "hnproxy_http_request_duration_seconds",
		Help:    "Duration of proxy HTTP requests by route",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	}, []string{"route"})
)

// storyFeeds maps the public feed names to their client methods.
var storyFeeds = map[string]func(*hn.Client, context.Context) ([]int, error){
	"top":  (*hn.Client).TopStories,
	"new":  (*hn.Client).NewStories,
	"best": (*hn.Client).BestStories,
	"ask":  (*hn.Client).AskStories,
	"show": (*hn.Client).ShowStories,
	"job":  (*hn.Client).JobStories,
}

// defaultStoryLimit is how many feed entries are returned when no limit
// query parameter is given.
const defaultStoryLimit = 30

type server struct {
	client *hn.Client
	logger zerolog.Logger
}

func newServer(client *hn.Client, logger zerolog.Logger) *server {
	return &server{
		client: client,
		logger: logger,
	}
}

// routes builds the proxy's router.
func (s *server) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/health", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/v0", func(r chi.Router) {
		r.Get("/item/{id}", s.handleItem)
		r.Get("/user/{name}", s.handleUser)
		r.Get("/maxitem", s.handleMaxItem)
		r.Get("/updates", s.handleUpdates)
		r.Get("/stories/{feed}", s.handleStories)
	})

	return r
}

// requestLogger tags every request with a request id, records proxy metrics,
// and logs the outcome.
func (s *server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.New().String()
		w.Header().Set("X-Request-ID", requestID)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		duration := time.Since(start)
		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = "unmatched"
		}

		proxyRequestsTotal.WithLabelValues(route, strconv.Itoa(ww.Status())).Inc()
		proxyRequestDuration.WithLabelValues(route).Observe(duration.Seconds())

		s.logger.Debug().
			Str("request_id", requestID).
			Str("method", r.Method).
			Str("route", route).
			Int("status", ww.Status()).
			Dur("duration", duration).
			Msg("Request completed")
	})
}

func (s *server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *server) handleItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "item id must be an integer")
		return
	}

	item, err := s.client.LookupItem(r.Context(), id)
	if err != nil {
		s.writeUpstreamError(w, err)
		return
	}
	if item == nil {
		s.writeError(w, http.StatusNotFound, "item not found")
		return
	}
	s.writeJSON(w, http.StatusOK, item)
}

func (s *server) handleUser(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	user, err := s.client.LookupUser(r.Context(), name)
	if err != nil {
		s.writeUpstreamError(w, err)
		return
	}
	if user == nil {
		s.writeError(w, http.StatusNotFound, "user not found")
		return
	}
	s.writeJSON(w, http.StatusOK, user)
}

func (s *server) handleMaxItem(w http.ResponseWriter, r *http.Request) {
	id, err := s.client.MaxItemID(r.Context())
	if err != nil {
		s.writeUpstreamError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, id)
}

func (s *server) handleUpdates(w http.ResponseWriter, r *http.Request) {
	updates, err := s.client.Updates(r.Context())
	if err != nil {
		s.writeUpstreamError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, updates)
}

// storyEntry is one row of a resolved feed: the item in its ranking slot
// paired with its author's profile. Item is null when the story has vanished
// from the store; Author is null wherever no profile could be resolved for
// the slot.
type storyEntry struct {
	Item   *hn.Item `json:"item"`
	Author *hn.User `json:"author"`
}

// handleStories serves a story feed as an id list, or as item and author rows
// when resolve=true. Vanished items keep their null slot so positions match
// the feed ranking.
func (s *server) handleStories(w http.ResponseWriter, r *http.Request) {
	feed := chi.URLParam(r, "feed")
	fetch, ok := storyFeeds[feed]
	if !ok {
		s.writeError(w, http.StatusBadRequest, "unknown feed: "+feed)
		return
	}

	limit := defaultStoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			s.writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	resolve := false
	if raw := r.URL.Query().Get("resolve"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, "resolve must be a boolean")
			return
		}
		resolve = parsed
	}

	ids, err := fetch(s.client, r.Context())
	if err != nil {
		s.writeUpstreamError(w, err)
		return
	}
	if limit < len(ids) {
		ids = ids[:limit]
	}

	if !resolve {
		s.writeJSON(w, http.StatusOK, ids)
		return
	}

	items, err := s.client.LookupItems(r.Context(), ids)
	if err != nil {
		s.writeUpstreamError(w, err)
		return
	}
	authors, err := s.client.LookupAuthors(r.Context(), items)
	if err != nil {
		s.writeUpstreamError(w, err)
		return
	}

	entries := make([]storyEntry, len(items))
	for i := range items {
		entries[i] = storyEntry{Item: items[i], Author: authors[i]}
	}
	s.writeJSON(w, http.StatusOK, entries)
}

// writeUpstreamError maps resolution failures onto proxy status codes.
// Tolerant handlers only ever see transport and decode failures here.
func (s *server) writeUpstreamError(w http.ResponseWriter, err error) {
	if hn.IsNotFound(err) {
		s.writeError(w, http.StatusNotFound, "not found")
		return
	}
	s.logger.Error().Err(err).Msg("Upstream request failed")
	s.writeError(w, http.StatusBadGateway, "upstream request failed")
}

func (s *server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}

func (s *server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error().Err(err).Msg("Failed to write response")
	}
}
