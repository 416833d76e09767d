package sarvam

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/clearlysid/sarvam-ai-sdk-provider/providers/ai"
)

var fastRetry = RetryConfig{MaxRetries: 3, InitialInterval: time.Millisecond, MaxInterval: 2 * time.Millisecond}

func TestWithRetry_RetriesRetryableErrors(t *testing.T) {
	attempts := 0
	result, err := withRetry(context.Background(), fastRetry, &callScope{}, func() (string, error) {
		attempts++
		if attempts < 3 {
			return "", &ai.APICallError{StatusCode: 503, Retryable: true}
		}
		return "ok", nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != "ok" || attempts != 3 {
		t.Errorf("result=%q attempts=%d", result, attempts)
	}
}

func TestWithRetry_StopsOnPermanentErrors(t *testing.T) {
	attempts := 0
	badRequest := &ai.APICallError{StatusCode: 400}
	_, err := withRetry(context.Background(), fastRetry, &callScope{}, func() (int, error) {
		attempts++
		return 0, badRequest
	})
	if !errors.Is(err, badRequest) {
		t.Fatalf("expected the original error, got %v", err)
	}
	if attempts != 1 {
		t.Errorf("expected 1 attempt, got %d", attempts)
	}
}

func TestWithRetry_GivesUpAfterMaxRetries(t *testing.T) {
	attempts := 0
	_, err := withRetry(context.Background(), RetryConfig{MaxRetries: 1, InitialInterval: time.Millisecond}, &callScope{}, func() (int, error) {
		attempts++
		return 0, &ai.APICallError{StatusCode: 429, Retryable: true}
	})
	if !ai.IsRetryable(err) {
		t.Fatalf("expected the last retryable error, got %v", err)
	}
	if attempts != 2 {
		t.Errorf("expected 2 attempts, got %d", attempts)
	}
}

func TestWithRetry_ZeroDisables(t *testing.T) {
	attempts := 0
	_, _ = withRetry(context.Background(), RetryConfig{}, &callScope{}, func() (int, error) {
		attempts++
		return 0, &ai.APICallError{StatusCode: 500, Retryable: true}
	})
	if attempts != 1 {
		t.Errorf("expected a single attempt, got %d", attempts)
	}
}
