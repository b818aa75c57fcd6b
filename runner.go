package flowscript

import (
	"context"

	"github.com/coreyclarkphd/flowscript/internal/engine"
	"github.com/coreyclarkphd/flowscript/internal/flowcache"
	"github.com/coreyclarkphd/flowscript/internal/parse"
	"github.com/coreyclarkphd/flowscript/internal/resolver"
	"github.com/coreyclarkphd/flowscript/internal/telemetry"
	"github.com/coreyclarkphd/flowscript/internal/transform"
	"github.com/coreyclarkphd/flowscript/internal/value"
)

// Runner executes Flowscript source repeatedly, skipping the parse stage
// for source text it has already parsed. The transform stage still runs on
// every call, so each execution gets a fresh NodeMap.
type Runner struct {
	cache    *flowcache.Cache
	resolver resolver.Resolver
}

// NewCachedRunner returns a Runner that resolves Task commands with res and
// caches compiled programs keyed by source digest.
func NewCachedRunner(res resolver.Resolver) *Runner {
	if res == nil {
		res = resolver.NoopResolver{}
	}
	return &Runner{cache: flowcache.New(), resolver: res}
}

// Execute runs source against input, reusing the cached parse result when
// source has been seen before and transforming it anew.
func (r *Runner) Execute(ctx context.Context, source string, input value.V) (value.V, error) {
	defs, ok := r.cache.Get(source)
	if !ok {
		parsed, ferr := parse.Parse(source)
		if ferr != nil {
			telemetry.LogParseFailed(ctx, ferr)
			return value.Null(), ferr
		}
		if err := r.cache.Put(source, parsed); err != nil {
			return value.Null(), err
		}
		defs = parsed
	}

	nodes, ferr := transform.Build(defs)
	if ferr != nil {
		telemetry.LogTransformFailed(ctx, "", ferr)
		return value.Null(), ferr
	}

	hub := telemetry.New()
	defer hub.Close()

	g := engine.New(nodes, r.resolver, hub)
	result, err := g.Run(ctx, input)
	if err != nil {
		telemetry.LogExecuteFailed(ctx, g.RunID(), err)
		return value.Null(), err
	}
	return result, nil
}

// Len reports how many distinct programs are currently cached.
func (r *Runner) Len() int { return r.cache.Len() }
