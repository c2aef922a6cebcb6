package hn

import (
	"errors"
	"fmt"
)

// Common errors returned by the transport layer.
var (
	// ErrRetryExhausted is returned when all retry attempts are exhausted.
	ErrRetryExhausted = errors.New("retry attempts exhausted")

	// ErrContextCancelled is returned when the context is cancelled during retry.
	ErrContextCancelled = errors.New("context cancelled")
)

// ErrorClass classifies failures surfaced by the client.
type ErrorClass string

const (
	// ErrorClassNotFound means the store confirmed absence where strict
	// semantics required presence.
	ErrorClassNotFound ErrorClass = "not_found"

	// ErrorClassTransport means the round trip itself failed: connect error,
	// timeout, or a non-success HTTP status.
	ErrorClassTransport ErrorClass = "transport"

	// ErrorClassDecode means the response body could not be parsed into the
	// expected resource shape.
	ErrorClassDecode ErrorClass = "decode"
)

// Resource kinds used in error context.
const (
	ResourceItem = "item"
	ResourceUser = "user"
)

// Error is the error type returned by every failing client operation. It
// carries the resource kind and key that failed so batch callers can tell
// which element aborted the aggregate.
type Error struct {
	Class    ErrorClass
	Resource string // "item", "user", or an aggregate endpoint name
	Key      string // formatted id or username, empty for aggregates
	Err      error  // underlying cause, nil for not-found
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Class == ErrorClassNotFound {
		return fmt.Sprintf("hn: %s %q not found", e.Resource, e.Key)
	}
	if e.Key != "" {
		return fmt.Sprintf("hn: %s %s %q: %v", e.Class, e.Resource, e.Key, e.Err)
	}
	return fmt.Sprintf("hn: %s %s: %v", e.Class, e.Resource, e.Err)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is a strict-resolution absence failure.
func IsNotFound(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Class == ErrorClassNotFound
}

// IsTransport reports whether err is a network-level failure.
func IsTransport(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Class == ErrorClassTransport
}

// IsDecode reports whether err is a malformed-body failure.
func IsDecode(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Class == ErrorClassDecode
}

func notFoundError(resource, key string) *Error {
	return &Error{Class: ErrorClassNotFound, Resource: resource, Key: key}
}

func transportError(resource, key string, err error) *Error {
	return &Error{Class: ErrorClassTransport, Resource: resource, Key: key, Err: err}
}

func decodeError(resource, key string, err error) *Error {
	return &Error{Class: ErrorClassDecode, Resource: resource, Key: key, Err: err}
}

// StatusError reports a non-success HTTP status from the store. The store
// answers missing items and users with 200 and a null body, so any
// non-success status is a transport-level failure, not absence.
type StatusError struct {
	Endpoint   string
	StatusCode int
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d", e.Endpoint, e.StatusCode)
}

// failureClass categorizes transport failures for retry decisions and
// metrics. It is internal to the transport; resolver callers only ever see
// ErrorClassTransport.
type failureClass string

const (
	// failureClient covers 4xx statuses. Retrying cannot help.
	failureClient failureClass = "client"

	// failureServer covers 5xx statuses.
	failureServer failureClass = "server"

	// failureRateLimit covers 429 responses.
	failureRateLimit failureClass = "rate_limit"

	// failureNetwork covers connect errors, timeouts, and body read failures.
	failureNetwork failureClass = "network"
)

// classifyStatus maps a non-success HTTP status to a failure class.
func classifyStatus(statusCode int) failureClass {
	switch {
	case statusCode == 429:
		return failureRateLimit
	case statusCode >= 400 && statusCode < 500:
		return failureClient
	case statusCode >= 500:
		return failureServer
	default:
		return failureNetwork
	}
}

// shouldRetry determines if a failure class is worth retrying.
func shouldRetry(class failureClass) bool {
	switch class {
	case failureClient:
		return false
	case failureServer, failureRateLimit, failureNetwork:
		return true
	default:
		return false
	}
}
