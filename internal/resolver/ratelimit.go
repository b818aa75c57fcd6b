package resolver

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/zoobzio/clockz"

	"github.com/coreyclarkphd/flowscript/internal/value"
)

// RateLimitedResolver wraps another Resolver with a token-bucket limiter,
// a token-bucket formula: tokens refill
// at ratePerSecond up to burst, and a command is rejected once the bucket
// is empty.
type RateLimitedResolver struct {
	inner Resolver
	rate  float64
	burst int
	clock clockz.Clock

	mu         sync.Mutex
	tokens     float64
	lastRefill time.Time
}

// NewRateLimitedResolver wraps inner with a token bucket sustaining
// ratePerSecond commands with bursts up to burst.
func NewRateLimitedResolver(inner Resolver, ratePerSecond float64, burst int) *RateLimitedResolver {
	clock := clockz.RealClock
	return &RateLimitedResolver{
		inner:      inner,
		rate:       ratePerSecond,
		burst:      burst,
		clock:      clock,
		tokens:     float64(burst),
		lastRefill: clock.Now(),
	}
}

// WithClock overrides the clock, for deterministic tests.
func (r *RateLimitedResolver) WithClock(clock clockz.Clock) *RateLimitedResolver {
	r.clock = clock
	r.lastRefill = clock.Now()
	return r
}

func (r *RateLimitedResolver) takeToken() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.clock.Now()
	elapsed := now.Sub(r.lastRefill).Seconds()
	r.lastRefill = now
	r.tokens = math.Min(float64(r.burst), r.tokens+elapsed*r.rate)

	if r.tokens >= 1.0 {
		r.tokens -= 1.0
		return true
	}
	return false
}

func (r *RateLimitedResolver) Resolve(ctx context.Context, command string, input value.V) (value.V, error) {
	if !r.takeToken() {
		return value.Null(), fmt.Errorf("resolver: rate limit exceeded for command %q", command)
	}
	return r.inner.Resolve(ctx, command, input)
}
