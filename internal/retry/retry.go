// Package retry provides bounded retry with backoff for transient failures.
package retry

import (
	"context"
	"errors"
	"net"
	"time"
)

var (
	// ErrContextCancelled is returned when the context ends during a retry wait
	ErrContextCancelled = errors.New("context cancelled during retry")
)

// Config configures retry behavior
type Config struct {
	// MaxRetries is the number of retries after the initial attempt
	MaxRetries int
	// Delay is the wait between attempts
	Delay time.Duration
	// IsRetryable determines if an error should be retried
	IsRetryable func(error) bool
}

// DefaultConfig returns a default retry configuration
func DefaultConfig() Config {
	return Config{
		MaxRetries:  1,
		Delay:       200 * time.Millisecond,
		IsRetryable: DefaultIsRetryable,
	}
}

// DefaultIsRetryable treats network-level errors and timeouts as transient.
// Everything else is permanent and surfaces immediately.
func DefaultIsRetryable(err error) bool {
	if err == nil {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	return errors.Is(err, context.DeadlineExceeded)
}

// Do executes fn, retrying on retryable errors up to the configured bound.
// The last error is returned once the bound is exceeded or a permanent
// error is hit.
func Do(ctx context.Context, config Config, fn func() error) error {
	if config.IsRetryable == nil {
		config.IsRetryable = DefaultIsRetryable
	}

	var lastErr error
	for attempt := 0; attempt <= config.MaxRetries; attempt++ {
		if attempt > 0 && config.Delay > 0 {
			select {
			case <-time.After(config.Delay):
			case <-ctx.Done():
				return errors.Join(ErrContextCancelled, lastErr)
			}
		}

		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if !config.IsRetryable(lastErr) {
			return lastErr
		}
	}

	return lastErr
}
