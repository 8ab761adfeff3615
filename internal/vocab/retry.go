package vocab

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrBilling = errors.New("vocab: provider billing error")

type RetryConfig struct {
	MaxRetries  int
	InitBackoff time.Duration
	MaxBackoff  time.Duration
}

const (
	defaultProviderRetries = 2
	defaultInitBackoff     = time.Second
	defaultMaxBackoff      = 8 * time.Second
	backoffFactor          = 2.0
)

func (c RetryConfig) withDefaults() RetryConfig {
	if c.MaxRetries < 0 {
		c.MaxRetries = 0
	} else if c.MaxRetries == 0 {
		c.MaxRetries = defaultProviderRetries
	}
	if c.InitBackoff <= 0 {
		c.InitBackoff = defaultInitBackoff
	}
	if c.MaxBackoff <= 0 {
		c.MaxBackoff = defaultMaxBackoff
	}
	return c
}

// withRetry retries rate-limit and 5xx failures with exponential backoff.
// Billing errors and anything else fail immediately.
func withRetry[T any](ctx context.Context, rc RetryConfig, provider string, call func(context.Context) (T, error)) (T, error) {
	rc = rc.withDefaults()
	backoff := rc.InitBackoff
	var zero T
	for attempt := 0; ; attempt++ {
		out, err := call(ctx)
		if err == nil {
			return out, nil
		}
		if isBillingError(err) {
			return zero, fmt.Errorf("%w: %s: %v", ErrBilling, provider, err)
		}
		if !isRetryableError(err) {
			return zero, fmt.Errorf("%s request failed: %w", provider, err)
		}
		if attempt >= rc.MaxRetries {
			return zero, fmt.Errorf("%s request failed after %d retries: %w", provider, rc.MaxRetries, err)
		}
		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(backoff):
		}
		backoff = time.Duration(float64(backoff) * backoffFactor)
		if backoff > rc.MaxBackoff {
			backoff = rc.MaxBackoff
		}
	}
}

func isRateLimitError(err error) bool {
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "rate limit") ||
		strings.Contains(s, "too many requests") ||
		strings.Contains(s, "429") ||
		strings.Contains(s, "overloaded") ||
		strings.Contains(s, "capacity")
}

func isServerError(err error) bool {
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "500") ||
		strings.Contains(s, "502") ||
		strings.Contains(s, "503") ||
		strings.Contains(s, "504") ||
		strings.Contains(s, "internal server error") ||
		strings.Contains(s, "bad gateway") ||
		strings.Contains(s, "service unavailable") ||
		strings.Contains(s, "gateway timeout")
}

func isRetryableError(err error) bool {
	return err != nil && (isRateLimitError(err) || isServerError(err))
}

func isBillingError(err error) bool {
	if err == nil {
		return false
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "billing") ||
		strings.Contains(s, "payment") ||
		strings.Contains(s, "credits") ||
		strings.Contains(s, "quota exceeded") ||
		strings.Contains(s, "insufficient") ||
		strings.Contains(s, "402")
}
