package snapshot

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"
)

type RetryConfig struct {
	MaxRetries   int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}

func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:   3,
		InitialDelay: time.Second,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
	}
}

// statusError. non-2xx upstream response. RetryAfter is set from a Retry-After header on 429/503.
type statusError struct {
	url        string
	statusCode int
	retryAfter time.Duration
}

func (e *statusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %d", e.url, e.statusCode)
}

func (e *statusError) retryable() bool {
	return e.statusCode == http.StatusTooManyRequests || e.statusCode >= 500
}

func newStatusError(url string, resp *http.Response) *statusError {
	se := &statusError{url: url, statusCode: resp.StatusCode}
	if ra := resp.Header.Get("Retry-After"); ra != "" {
		if secs, err := strconv.Atoi(ra); err == nil && secs > 0 {
			se.retryAfter = time.Duration(secs) * time.Second
		}
	}
	return se
}

// permanentError. a failure that repeating the same request cannot fix, e.g. an undecodable body.
type permanentError struct {
	err error
}

func (e *permanentError) Error() string {
	return e.err.Error()
}

func (e *permanentError) Unwrap() error {
	return e.err
}

// retryWithBackoff. runs fn until it succeeds, returns a non-retryable error, or MaxRetries is
// exhausted. The delay grows by Multiplier per attempt up to MaxDelay, a Retry-After hint overrides it.
func retryWithBackoff[T any](ctx context.Context, cfg RetryConfig, log *zap.Logger, fn func() (T, error)) (T, error) {
	var (
		result  T
		lastErr error
	)
	delay := cfg.InitialDelay

	for attempt := 0; attempt <= cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return result, fmt.Errorf("retry cancelled: %w", ctx.Err())
			case <-timer.C:
			}
		}

		res, err := fn()
		if err == nil {
			return res, nil
		}
		lastErr = err

		var (
			se *statusError
			pe *permanentError
		)
		if errors.As(err, &se) && !se.retryable() {
			return result, err
		}
		if errors.As(err, &pe) {
			return result, err
		}
		if ctx.Err() != nil {
			return result, err
		}
		if attempt == cfg.MaxRetries {
			break
		}

		delay = time.Duration(float64(cfg.InitialDelay) * math.Pow(cfg.Multiplier, float64(attempt)))
		if delay > cfg.MaxDelay {
			delay = cfg.MaxDelay
		}
		if se != nil && se.retryAfter > 0 {
			delay = se.retryAfter
		}
		log.Warn("snapshot fetch failed, retrying", zap.Int("attempt", attempt+1),
			zap.Duration("backoff", delay), zap.Error(err))
	}

	return result, fmt.Errorf("max retries (%d) exceeded: %w", cfg.MaxRetries, lastErr)
}
