// Package engine implements the Flowscript execution-time graph: a NodeMap
// of named, polymorphic Node instances that pass a value.V along their
// bound successor names (spec.md §3, §4.4).
package engine

import (
	"context"

	"github.com/google/uuid"

	"github.com/coreyclarkphd/flowscript/internal/ast"
	"github.com/coreyclarkphd/flowscript/internal/flowerr"
	"github.com/coreyclarkphd/flowscript/internal/resolver"
	"github.com/coreyclarkphd/flowscript/internal/telemetry"
	"github.com/coreyclarkphd/flowscript/internal/value"
)

// Node is one execution-time graph node. execute is unexported: every
// traversal step must go through Graph.step so it gets instrumented
// uniformly through a shared hub instead of each node rolling its own
// tracing.
type Node interface {
	Kind() ast.NodeKind
	execute(ctx context.Context, g *Graph, name string, input value.V) (value.V, error)
}

// NodeMap owns every node for one execution's lifetime (spec.md §3).
type NodeMap map[string]Node

// Graph pairs a NodeMap with the collaborators needed to run it: the task
// resolver and the telemetry hub. One Graph is built per flowscript.Execute
// call.
type Graph struct {
	nodes    NodeMap
	resolver resolver.Resolver
	hub      *telemetry.Hub
	runID    string
}

// New returns a Graph ready to run nodes, wiring res as the task resolver
// and hub as the telemetry sink. If hub is nil a fresh telemetry.New() hub
// is used.
func New(nodes NodeMap, res resolver.Resolver, hub *telemetry.Hub) *Graph {
	if res == nil {
		res = resolver.NoopResolver{}
	}
	if hub == nil {
		hub = telemetry.New()
	}
	return &Graph{nodes: nodes, resolver: res, hub: hub, runID: uuid.NewString()}
}

// RunID returns the identifier correlating this graph's trace spans, log
// events and hook emissions.
func (g *Graph) RunID() string { return g.runID }

// Run starts execution at the node named "input" (guaranteed present by
// the parser's backfill step, spec.md §3).
func (g *Graph) Run(ctx context.Context, input value.V) (value.V, error) {
	start, ok := g.nodes["input"]
	if !ok {
		return value.Null(), flowerr.Execution(nil, "no input node in graph")
	}
	return g.step(ctx, "input", start, input)
}

// step executes one node, wrapped with a trace span, a metric and a hook
// event (internal/telemetry.Hub.TraceNode).
func (g *Graph) step(ctx context.Context, name string, n Node, input value.V) (value.V, error) {
	ctx, finish := g.hub.TraceNode(ctx, g.runID, name, n.Kind())
	result, err := n.execute(ctx, g, name, input)
	finish(err)
	return result, err
}

// goTo looks up name in the NodeMap and executes it, the shared helper every
// concrete Node uses to delegate to a bound successor.
func (g *Graph) goTo(ctx context.Context, name string, input value.V) (value.V, error) {
	next, ok := g.nodes[name]
	if !ok {
		return value.Null(), flowerr.Execution(nil, "no node named %q in graph", name)
	}
	return g.step(ctx, name, next, input)
}
