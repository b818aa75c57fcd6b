package resolver

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/zoobzio/clockz"

	"github.com/coreyclarkphd/flowscript/internal/value"
)

func TestCircuitBreakerOpensAfterThreshold(t *testing.T) {
	failing := Func(func(_ context.Context, _ string, _ value.V) (value.V, error) {
		return value.Null(), errors.New("boom")
	})

	clock := clockz.NewFakeClock()
	cb := NewCircuitBreakerResolver(failing, 2, 100*time.Millisecond).WithClock(clock)

	if _, err := cb.Resolve(context.Background(), "cmd", value.Null()); err == nil {
		t.Fatalf("expected the first call to fail")
	}
	if _, err := cb.Resolve(context.Background(), "cmd", value.Null()); err == nil {
		t.Fatalf("expected the second call to fail and trip the breaker")
	}

	_, err := cb.Resolve(context.Background(), "cmd", value.Null())
	if err == nil || err.Error() != `resolver: circuit open for command "cmd"` {
		t.Errorf("expected a circuit-open error, got %v", err)
	}
}

func TestCircuitBreakerRecoversAfterResetAfter(t *testing.T) {
	shouldFail := true
	inner := Func(func(_ context.Context, _ string, input value.V) (value.V, error) {
		if shouldFail {
			return value.Null(), errors.New("boom")
		}
		return input, nil
	})

	clock := clockz.NewFakeClock()
	cb := NewCircuitBreakerResolver(inner, 1, 50*time.Millisecond).WithClock(clock)

	if _, err := cb.Resolve(context.Background(), "cmd", value.Null()); err == nil {
		t.Fatalf("expected the first call to fail and open the circuit")
	}
	if _, err := cb.Resolve(context.Background(), "cmd", value.Null()); err == nil {
		t.Fatalf("expected the circuit to still be open")
	}

	clock.Advance(50 * time.Millisecond)
	shouldFail = false

	if _, err := cb.Resolve(context.Background(), "cmd", value.Null()); err != nil {
		t.Fatalf("expected the half-open trial call to succeed: %v", err)
	}
	if _, err := cb.Resolve(context.Background(), "cmd", value.Null()); err != nil {
		t.Fatalf("expected the circuit to stay closed after a success: %v", err)
	}
}
