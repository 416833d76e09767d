package sarvam

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/clearlysid/sarvam-ai-sdk-provider/providers/ai"
	"github.com/clearlysid/sarvam-ai-sdk-provider/providers/observability"
)

// RetryConfig controls retries of non-streaming calls. Only errors marked
// retryable (HTTP 408, 409, 429 and 5xx) are retried.
type RetryConfig struct {
	// MaxRetries is the number of retries after the first attempt; zero disables retrying
	MaxRetries      int
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// DefaultRetryConfig retries twice, starting at half a second.
var DefaultRetryConfig = RetryConfig{
	MaxRetries:      2,
	InitialInterval: 500 * time.Millisecond,
	MaxInterval:     8 * time.Second,
}

func (config RetryConfig) backOff(ctx context.Context) backoff.BackOff {
	exponential := backoff.NewExponentialBackOff()
	if config.InitialInterval > 0 {
		exponential.InitialInterval = config.InitialInterval
	}
	if config.MaxInterval > 0 {
		exponential.MaxInterval = config.MaxInterval
	}
	exponential.MaxElapsedTime = 0
	exponential.Reset()

	maxRetries := config.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}
	return backoff.WithContext(backoff.WithMaxRetries(exponential, uint64(maxRetries)), ctx)
}

// withRetry runs operation under the provider's retry policy. Errors that are
// not retryable stop immediately and are returned as-is.
func withRetry[T any](ctx context.Context, config RetryConfig, scope *callScope, operation func() (T, error)) (T, error) {
	attempt := 0
	wrapped := func() (T, error) {
		attempt++
		result, err := operation()
		if err != nil && !ai.IsRetryable(err) {
			return result, backoff.Permanent(err)
		}
		return result, err
	}

	notify := func(err error, wait time.Duration) {
		scope.event(observability.EventRequestRetry,
			observability.Int(observability.AttrRequestAttempt, attempt),
			observability.Duration("retry.wait", wait),
			observability.Error(err),
		)
	}

	return backoff.RetryNotifyWithData(wrapped, config.backOff(ctx), notify)
}
