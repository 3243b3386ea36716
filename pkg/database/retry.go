package database

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"
)

const (
	defaultRetryAttempts = 3
	defaultRetryBaseWait = 1 * time.Second
	retryJitterFraction  = 0.25
)

// retryBackoff returns 1s, 2s, 4s... for attempt 0, 1, 2... with ±25% jitter.
func retryBackoff(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	base := defaultRetryBaseWait << attempt
	jitter := time.Duration(float64(base) * retryJitterFraction * (2*rand.Float64() - 1)) // #nosec G404 -- jitter only
	return base + jitter
}

// isConnectionError reports whether err looks like a transient network
// failure rather than a protocol, auth or query error.
func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	for _, p := range []string{
		"connection refused",
		"connection reset",
		"broken pipe",
		"no such host",
		"i/o timeout",
		"dial tcp",
		"EOF",
		"connection timed out",
		"server selection error",
		"server closed the connection unexpectedly",
		"could not connect",
	} {
		if strings.Contains(msg, p) {
			return true
		}
	}
	return false
}

// retrier runs connect attempts. wait is swapped out in tests.
type retrier struct {
	attempts int
	backoff  func(attempt int) time.Duration
	logger   *slog.Logger
}

func newRetrier(logger *slog.Logger) retrier {
	return retrier{attempts: defaultRetryAttempts, backoff: retryBackoff, logger: logger}
}

// do calls fn until it succeeds, returns a non-connection error, the
// attempts run out, or ctx is done.
func (r retrier) do(ctx context.Context, system string, fn func(context.Context) error) error {
	var lastErr error
	for attempt := 0; attempt < r.attempts; attempt++ {
		lastErr = fn(ctx)
		if lastErr == nil {
			return nil
		}
		if !isConnectionError(lastErr) || attempt == r.attempts-1 {
			break
		}

		wait := r.backoff(attempt)
		if r.logger != nil {
			r.logger.Warn("database connection failed, retrying",
				slog.String("system", system),
				slog.Int("attempt", attempt+1),
				slog.Int("max_attempts", r.attempts),
				slog.Duration("backoff", wait),
				slog.String("error", lastErr.Error()),
			)
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("connect to %s: context canceled during retry: %w", system, ctx.Err())
		case <-time.After(wait):
		}
	}
	return fmt.Errorf("connect to %s: %w", system, lastErr)
}
