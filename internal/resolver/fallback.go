package resolver

import (
	"context"

	"github.com/coreyclarkphd/flowscript/internal/value"
)

// FallbackResolver tries each Resolver in order, falling back to the next
// on error.
type FallbackResolver struct {
	chain []Resolver
}

// NewFallbackResolver returns a FallbackResolver trying chain in order. At
// least one resolver must be given.
func NewFallbackResolver(chain ...Resolver) *FallbackResolver {
	return &FallbackResolver{chain: chain}
}

func (f *FallbackResolver) Resolve(ctx context.Context, command string, input value.V) (value.V, error) {
	var lastErr error
	for _, r := range f.chain {
		result, err := r.Resolve(ctx, command, input)
		if err == nil {
			return result, nil
		}
		lastErr = err
	}
	return value.Null(), lastErr
}
