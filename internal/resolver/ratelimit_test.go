package resolver

import (
	"context"
	"testing"
	"time"

	"github.com/zoobzio/clockz"

	"github.com/coreyclarkphd/flowscript/internal/value"
)

func TestRateLimitedResolverTokenBucket(t *testing.T) {
	inner := Func(func(_ context.Context, _ string, input value.V) (value.V, error) {
		return input, nil
	})

	clock := clockz.NewFakeClock()
	r := NewRateLimitedResolver(inner, 10, 5).WithClock(clock)

	for i := 0; i < 5; i++ {
		if _, err := r.Resolve(context.Background(), "cmd", value.Null()); err != nil {
			t.Fatalf("call %d: unexpected error: %v", i, err)
		}
	}

	if _, err := r.Resolve(context.Background(), "cmd", value.Null()); err == nil {
		t.Fatalf("expected the 6th call to be rate limited")
	}

	clock.Advance(300 * time.Millisecond)

	if _, err := r.Resolve(context.Background(), "cmd", value.Null()); err != nil {
		t.Fatalf("expected a refilled token to allow the call: %v", err)
	}
}
