package hn

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

// fastRetryConfig keeps backoff delays negligible in tests.
func fastRetryConfig(maxAttempts int) RetryConfig {
	return RetryConfig{
		MaxAttempts:       maxAttempts,
		InitialBackoff:    1 * time.Millisecond,
		MaxBackoff:        10 * time.Millisecond,
		BackoffMultiplier: 2.0,
	}
}

func TestDefaultRetryConfig(t *testing.T) {
	cfg := DefaultRetryConfig()

	if cfg.MaxAttempts != 3 {
		t.Errorf("MaxAttempts = %d, want 3", cfg.MaxAttempts)
	}
	if cfg.InitialBackoff != 1*time.Second {
		t.Errorf("InitialBackoff = %v, want 1s", cfg.InitialBackoff)
	}
	if cfg.MaxBackoff != 30*time.Second {
		t.Errorf("MaxBackoff = %v, want 30s", cfg.MaxBackoff)
	}
	if cfg.BackoffMultiplier != 2.0 {
		t.Errorf("BackoffMultiplier = %v, want 2.0", cfg.BackoffMultiplier)
	}
}

func TestRetryRequest_SuccessFirstTry(t *testing.T) {
	attempts := 0
	err := retryRequest(context.Background(), zerolog.Nop(), fastRetryConfig(3), func() (failureClass, error) {
		attempts++
		return "", nil
	})

	if err != nil {
		t.Fatalf("retryRequest() failed: %v", err)
	}
	if attempts != 1 {
		t.Errorf("Expected 1 attempt, got %d", attempts)
	}
}

func TestRetryRequest_SuccessAfterRetry(t *testing.T) {
	// Fails with a server error once, then succeeds
	attempts := 0
	err := retryRequest(context.Background(), zerolog.Nop(), fastRetryConfig(3), func() (failureClass, error) {
		attempts++
		if attempts == 1 {
			return failureServer, errors.New("boom")
		}
		return "", nil
	})

	if err != nil {
		t.Fatalf("retryRequest() failed: %v", err)
	}
	if attempts != 2 {
		t.Errorf("Expected 2 attempts (1 retry), got %d", attempts)
	}
}

func TestRetryRequest_NoRetryOnClientFailure(t *testing.T) {
	attempts := 0
	cause := errors.New("bad request")
	err := retryRequest(context.Background(), zerolog.Nop(), fastRetryConfig(3), func() (failureClass, error) {
		attempts++
		return failureClient, cause
	})

	if !errors.Is(err, cause) {
		t.Errorf("Expected the original error, got %v", err)
	}
	if errors.Is(err, ErrRetryExhausted) {
		t.Error("Client failures must not be reported as retry exhaustion")
	}
	if attempts != 1 {
		t.Errorf("Expected 1 attempt (no retry for client failures), got %d", attempts)
	}
}

func TestRetryRequest_Exhausted(t *testing.T) {
	attempts := 0
	err := retryRequest(context.Background(), zerolog.Nop(), fastRetryConfig(3), func() (failureClass, error) {
		attempts++
		return failureServer, errors.New("boom")
	})

	if err == nil {
		t.Fatal("Expected error, got nil")
	}
	if !errors.Is(err, ErrRetryExhausted) {
		t.Errorf("Expected ErrRetryExhausted, got %v", err)
	}
	if !strings.Contains(err.Error(), "boom") {
		t.Errorf("Exhaustion error should carry the last cause, got %q", err.Error())
	}
	if attempts != 3 {
		t.Errorf("Expected 3 attempts, got %d", attempts)
	}
}

func TestRetryRequest_ContextCancelledDuringBackoff(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	cfg := RetryConfig{
		MaxAttempts:       3,
		InitialBackoff:    5 * time.Second,
		MaxBackoff:        30 * time.Second,
		BackoffMultiplier: 2.0,
	}

	start := time.Now()
	err := retryRequest(ctx, zerolog.Nop(), cfg, func() (failureClass, error) {
		return failureServer, errors.New("boom")
	})
	duration := time.Since(start)

	if !errors.Is(err, ErrContextCancelled) {
		t.Errorf("Expected ErrContextCancelled, got %v", err)
	}
	// Must give up during the first backoff, not wait it out
	if duration > 1*time.Second {
		t.Errorf("Expected prompt cancellation, took %v", duration)
	}
}
