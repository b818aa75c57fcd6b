package flowscript

import (
	"context"

	"github.com/coreyclarkphd/flowscript/internal/engine"
	"github.com/coreyclarkphd/flowscript/internal/parse"
	"github.com/coreyclarkphd/flowscript/internal/resolver"
	"github.com/coreyclarkphd/flowscript/internal/telemetry"
	"github.com/coreyclarkphd/flowscript/internal/transform"
	"github.com/coreyclarkphd/flowscript/internal/value"
)

// Execute parses, transforms and runs source against input, using res to
// resolve Task commands. This is the "executeFlowscript" entry point
// described in spec.md §6. A nil res runs with resolver.NoopResolver.
func Execute(ctx context.Context, source string, input value.V, res resolver.Resolver) (value.V, error) {
	hub := telemetry.New()
	defer hub.Close()

	defs, ferr := parse.Parse(source)
	if ferr != nil {
		telemetry.LogParseFailed(ctx, ferr)
		return value.Null(), ferr
	}

	nodes, ferr := transform.Build(defs)
	if ferr != nil {
		telemetry.LogTransformFailed(ctx, "", ferr)
		return value.Null(), ferr
	}

	g := engine.New(nodes, res, hub)
	result, err := g.Run(ctx, input)
	if err != nil {
		telemetry.LogExecuteFailed(ctx, g.RunID(), err)
		return value.Null(), err
	}
	return result, nil
}
