// Package hn provides a read-only client for the Hacker News API.
//
// The API (https://github.com/HackerNews/API) exposes a single tree of items
// (stories, comments, jobs, polls, poll options), user profiles keyed by
// name, and a handful of site-wide aggregates such as the front-page feeds
// and the maximum allocated item ID. The backend reports an absent item or
// user as the JSON document `null`, and the client turns that into explicit
// absence semantics instead of surprising zero values.
//
// # Strict and Tolerant Resolution
//
// Every resolving operation comes in two flavors:
//
//   - Strict (Item, User, Items, Users, Authors): absence is an error
//     carrying ErrorClassNotFound. Success never contains absent entries.
//   - Tolerant (LookupItem, LookupUser, LookupItems, LookupUsers,
//     LookupAuthors): absence is a nil pointer, and errors are reserved for
//     transport and decode failures.
//
// # Basic Usage
//
//	client, err := hn.NewDefault()
//	if err != nil {
//		return err
//	}
//
//	// Strict: absence is an error.
//	item, err := client.Item(ctx, 8863)
//	if hn.IsNotFound(err) {
//		// No item under that ID.
//	}
//
//	// Tolerant: absence is a nil pointer.
//	maybe, err := client.LookupItem(ctx, 8863)
//	if err == nil && maybe == nil {
//		// No item under that ID.
//	}
//
// # Batch Resolution
//
// Batch operations resolve every key concurrently and always return results
// in input order: position i of the output corresponds to position i of the
// input. The first transport or decode failure cancels the remaining work
// and fails the whole batch; partial results are never returned.
//
//	ids, err := client.TopStories(ctx)
//	if err != nil {
//		return err
//	}
//	items, err := client.LookupItems(ctx, ids[:30])
//	if err != nil {
//		return err
//	}
//	authors, err := client.LookupAuthors(ctx, items)
//
// Items without an author (deleted items, some jobs and polls) cost no
// backend request during author resolution.
//
// # Custom Transports
//
// The Fetcher interface is the seam between resolution semantics and the
// wire. NewHTTPFetcher builds the production transport with retries and an
// optional concurrency cap; tests and alternative backends substitute their
// own implementation through Config.
//
//	fetcher, err := hn.NewHTTPFetcher(hn.FetcherConfig{
//		UserAgent:      "my-app/1.0",
//		MaxConcurrency: 32,
//	})
//	if err != nil {
//		return err
//	}
//	client, err := hn.New(hn.Config{Fetcher: fetcher})
//
// # Metrics
//
// The package exports Prometheus metrics:
//
//   - hn_requests_total{endpoint,status} - API requests by endpoint and HTTP status
//   - hn_request_duration_seconds{endpoint} - API request latency
//   - hn_errors_total{class} - Resolution errors by class
//   - hn_retries_total{error_class} - Retry attempts
//   - hn_retry_backoff_seconds{error_class} - Retry backoff durations
//   - hn_retry_exhausted_total{error_class} - Requests that ran out of attempts
//
// The endpoint label carries the resource kind ("item", "user") or feed name,
// never an individual key, so cardinality stays bounded.
package hn
