package resolver

import (
	"context"
	"time"

	"github.com/zoobzio/clockz"

	"github.com/coreyclarkphd/flowscript/internal/value"
)

// RetryResolver wraps another Resolver with bounded retries and exponential
// backoff. A Clock is
// injected so tests can advance time deterministically instead of sleeping.
type RetryResolver struct {
	inner       Resolver
	maxAttempts int
	baseDelay   time.Duration
	clock       clockz.Clock
}

// NewRetryResolver wraps inner with up to maxAttempts tries, doubling
// baseDelay between each failed attempt.
func NewRetryResolver(inner Resolver, maxAttempts int, baseDelay time.Duration) *RetryResolver {
	return &RetryResolver{
		inner:       inner,
		maxAttempts: maxAttempts,
		baseDelay:   baseDelay,
		clock:       clockz.RealClock,
	}
}

// WithClock overrides the clock, for deterministic tests.
func (r *RetryResolver) WithClock(clock clockz.Clock) *RetryResolver {
	r.clock = clock
	return r
}

func (r *RetryResolver) Resolve(ctx context.Context, command string, input value.V) (value.V, error) {
	var lastErr error
	delay := r.baseDelay

	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		result, err := r.inner.Resolve(ctx, command, input)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if attempt == r.maxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return value.Null(), ctx.Err()
		case <-r.clock.After(delay):
		}
		delay *= 2
	}
	return value.Null(), lastErr
}
