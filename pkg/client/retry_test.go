package client

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

// fastRetry keeps retry tests quick while exercising the full loop.
func fastRetry() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		Base:        time.Millisecond,
		MinBackoff:  2 * time.Millisecond,
		MaxBackoff:  30 * time.Millisecond,
	}
}

func TestDefaultRetryConfig(t *testing.T) {
	config := DefaultRetryConfig()

	if config.MaxAttempts != 3 {
		t.Errorf("MaxAttempts = %d, want 3", config.MaxAttempts)
	}
	if config.Base != 1*time.Second {
		t.Errorf("Base = %v, want 1s", config.Base)
	}
	if config.MinBackoff != 2*time.Second {
		t.Errorf("MinBackoff = %v, want 2s", config.MinBackoff)
	}
	if config.MaxBackoff != 30*time.Second {
		t.Errorf("MaxBackoff = %v, want 30s", config.MaxBackoff)
	}
}

func TestRetryConfig_BackoffFor(t *testing.T) {
	config := DefaultRetryConfig()

	tests := []struct {
		name     string
		attempt  int
		expected time.Duration
	}{
		{name: "first wait clamped up to minimum", attempt: 1, expected: 2 * time.Second},
		{name: "second wait at minimum", attempt: 2, expected: 2 * time.Second},
		{name: "third wait doubles", attempt: 3, expected: 4 * time.Second},
		{name: "later waits keep doubling", attempt: 5, expected: 16 * time.Second},
		{name: "clamped to maximum", attempt: 8, expected: 30 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := config.backoffFor(tt.attempt); got != tt.expected {
				t.Errorf("backoffFor(%d) = %v, want %v", tt.attempt, got, tt.expected)
			}
		})
	}
}

func TestRetryWithBackoff_Success(t *testing.T) {
	callCount := 0
	err := retryWithBackoff(context.Background(), fastRetry(), zerolog.Nop(), func(int) error {
		callCount++
		return nil
	})

	if err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
	if callCount != 1 {
		t.Errorf("Expected 1 call, got %d", callCount)
	}
}

func TestRetryWithBackoff_SuccessAfterRetry(t *testing.T) {
	callCount := 0
	err := retryWithBackoff(context.Background(), fastRetry(), zerolog.Nop(), func(int) error {
		callCount++
		if callCount < 3 {
			return &RequestError{StatusCode: 503, ErrorClass: ErrorClassServer, Message: "503"}
		}
		return nil
	})

	if err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
	if callCount != 3 {
		t.Errorf("Expected 3 calls, got %d", callCount)
	}
}

func TestRetryWithBackoff_TerminalNotRetried(t *testing.T) {
	callCount := 0
	terminal := &RequestError{StatusCode: 404, ErrorClass: ErrorClassClient, Message: "404"}
	err := retryWithBackoff(context.Background(), fastRetry(), zerolog.Nop(), func(int) error {
		callCount++
		return terminal
	})

	if !errors.Is(err, error(terminal)) {
		t.Errorf("Expected terminal error returned as-is, got %v", err)
	}
	if callCount != 1 {
		t.Errorf("Expected 1 call, got %d", callCount)
	}
}

func TestRetryWithBackoff_Exhausted(t *testing.T) {
	callCount := 0
	err := retryWithBackoff(context.Background(), fastRetry(), zerolog.Nop(), func(int) error {
		callCount++
		return &RequestError{StatusCode: 500, ErrorClass: ErrorClassServer, Message: "500"}
	})

	if !errors.Is(err, ErrRetryExhausted) {
		t.Errorf("Expected ErrRetryExhausted, got %v", err)
	}
	var reqErr *RequestError
	if !errors.As(err, &reqErr) || reqErr.StatusCode != 500 {
		t.Errorf("Expected wrapped RequestError with status 500, got %v", err)
	}
	if callCount != 3 {
		t.Errorf("Expected 3 calls, got %d", callCount)
	}
}

func TestRetryWithBackoff_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	config := RetryConfig{
		MaxAttempts: 3,
		Base:        time.Second,
		MinBackoff:  2 * time.Second,
		MaxBackoff:  30 * time.Second,
	}

	callCount := 0
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	err := retryWithBackoff(ctx, config, zerolog.Nop(), func(int) error {
		callCount++
		return &RequestError{StatusCode: 500, ErrorClass: ErrorClassServer, Message: "500"}
	})

	if !errors.Is(err, ErrContextCancelled) {
		t.Errorf("Expected ErrContextCancelled, got %v", err)
	}
	if callCount != 1 {
		t.Errorf("Expected 1 call before cancellation, got %d", callCount)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("Cancelled retry took %v, want prompt return", elapsed)
	}
}

// TestRetryWithBackoff_BackoffBounds verifies the real policy timing: two
// failures before success must wait at least the 2s minimum twice.
func TestRetryWithBackoff_BackoffBounds(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping backoff timing test in short mode")
	}

	callCount := 0
	start := time.Now()
	err := retryWithBackoff(context.Background(), DefaultRetryConfig(), zerolog.Nop(), func(int) error {
		callCount++
		if callCount < 3 {
			return &RequestError{StatusCode: 500, ErrorClass: ErrorClassServer, Message: "500"}
		}
		return nil
	})
	elapsed := time.Since(start)

	if err != nil {
		t.Fatalf("Expected success after retries, got %v", err)
	}
	if callCount != 3 {
		t.Errorf("Expected 3 attempts, got %d", callCount)
	}
	if elapsed < 4*time.Second {
		t.Errorf("elapsed = %v, want >= 4s (two minimum backoffs)", elapsed)
	}
	if elapsed > 6*time.Second {
		t.Errorf("elapsed = %v, want well under the 30s maximum per wait", elapsed)
	}
}
