package resolver

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/zoobzio/clockz"

	"github.com/coreyclarkphd/flowscript/internal/value"
)

type circuitState int

const (
	stateClosed circuitState = iota
	stateOpen
	stateHalfOpen
)

// CircuitBreakerResolver wraps another Resolver with a three-state
// (closed/open/half-open) breaker, stopping calls to a persistently
// failing command once a failure threshold is reached.
//
// Create it once and reuse it across calls; a fresh CircuitBreakerResolver
// per call resets the failure count and the circuit never opens.
type CircuitBreakerResolver struct {
	inner     Resolver
	threshold int
	resetAfter time.Duration
	clock     clockz.Clock

	mu          sync.Mutex
	state       circuitState
	failures    int
	openedAt    time.Time
}

// NewCircuitBreakerResolver wraps inner, opening the circuit after
// threshold consecutive failures and attempting recovery after resetAfter.
func NewCircuitBreakerResolver(inner Resolver, threshold int, resetAfter time.Duration) *CircuitBreakerResolver {
	return &CircuitBreakerResolver{
		inner:      inner,
		threshold:  threshold,
		resetAfter: resetAfter,
		clock:      clockz.RealClock,
	}
}

// WithClock overrides the clock, for deterministic tests.
func (c *CircuitBreakerResolver) WithClock(clock clockz.Clock) *CircuitBreakerResolver {
	c.clock = clock
	return c
}

func (c *CircuitBreakerResolver) Resolve(ctx context.Context, command string, input value.V) (value.V, error) {
	if !c.allow() {
		return value.Null(), fmt.Errorf("resolver: circuit open for command %q", command)
	}

	result, err := c.inner.Resolve(ctx, command, input)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.failures++
		if c.state == stateHalfOpen || c.failures >= c.threshold {
			c.state = stateOpen
			c.openedAt = c.clock.Now()
		}
		return value.Null(), err
	}

	c.failures = 0
	c.state = stateClosed
	return result, nil
}

func (c *CircuitBreakerResolver) allow() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.state {
	case stateClosed:
		return true
	case stateOpen:
		if c.clock.Now().Sub(c.openedAt) >= c.resetAfter {
			c.state = stateHalfOpen
			return true
		}
		return false
	default: // stateHalfOpen
		return true
	}
}
