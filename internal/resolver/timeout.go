package resolver

import (
	"context"
	"fmt"
	"time"

	"github.com/coreyclarkphd/flowscript/internal/value"
)

// TimeoutResolver enforces a time limit on a wrapped Resolver by racing it
// against a context deadline.
type TimeoutResolver struct {
	inner   Resolver
	timeout time.Duration
}

// NewTimeoutResolver wraps inner, failing the command if it does not
// complete within timeout.
func NewTimeoutResolver(inner Resolver, timeout time.Duration) *TimeoutResolver {
	return &TimeoutResolver{inner: inner, timeout: timeout}
}

func (t *TimeoutResolver) Resolve(ctx context.Context, command string, input value.V) (value.V, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	type outcome struct {
		result value.V
		err    error
	}
	done := make(chan outcome, 1)
	go func() {
		result, err := t.inner.Resolve(ctx, command, input)
		done <- outcome{result, err}
	}()

	select {
	case o := <-done:
		return o.result, o.err
	case <-ctx.Done():
		return value.Null(), fmt.Errorf("resolver: command %q timed out after %s", command, t.timeout)
	}
}
