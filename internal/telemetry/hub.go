package telemetry

import (
	"context"
	"fmt"
	"time"

	"github.com/coreyclarkphd/flowscript/internal/ast"
	"github.com/zoobzio/capitan"
	"github.com/zoobzio/hookz"
	"github.com/zoobzio/metricz"
	"github.com/zoobzio/tracez"
)

// NodeEvent is emitted via hookz every time a node finishes executing,
// successfully or not.
type NodeEvent struct {
	RunID    string
	Node     string
	Kind     ast.NodeKind
	Success  bool
	Err      error
	Duration time.Duration
}

// Hub bundles the metrics registry, tracer and hook bus shared by one
// flowscript.Execute invocation, plus the structured capitan logger.
type Hub struct {
	Metrics *metricz.Registry
	Tracer  *tracez.Tracer
	Hooks   *hookz.Hooks[NodeEvent]
}

// New returns a fresh Hub. One Hub is created per flowscript.Execute call,
// matching the NodeMap's own per-execution lifetime (spec.md §3).
func New() *Hub {
	return &Hub{
		Metrics: metricz.New(),
		Tracer:  tracez.New(),
		Hooks:   hookz.New[NodeEvent](),
	}
}

// Close releases the tracer and hook bus resources.
func (h *Hub) Close() {
	h.Tracer.Close()
	h.Hooks.Close()
}

// OnNode registers a handler invoked after every node execution.
func (h *Hub) OnNode(handler func(context.Context, NodeEvent) error) error {
	_, err := h.Hooks.Hook(hookz.Key("flowscript.node.executed"), handler)
	return err
}

// TraceNode wraps a node's execution with a span and returns a finish func
// that records metrics, sets span tags, and emits the NodeEvent hook.
func (h *Hub) TraceNode(ctx context.Context, runID, node string, kind ast.NodeKind) (context.Context, func(error)) {
	h.Metrics.Counter(NodesExecutedTotal).Inc()
	start := time.Now()
	ctx, span := h.Tracer.StartSpan(ctx, NodeExecuteSpan)
	span.SetTag(TagNode, node)
	span.SetTag(TagKind, string(kind))
	span.SetTag(TagRunID, runID)

	return ctx, func(err error) {
		elapsed := time.Since(start)
		h.Metrics.Gauge(NodeDurationMs).Set(float64(elapsed.Milliseconds()))
		if err != nil {
			span.SetTag(TagSuccess, "false")
			h.Metrics.Counter(NodesFailedTotal).Inc()
			capitan.Error(ctx, SignalNodeFailed,
				FieldRunID.Field(runID),
				FieldNode.Field(node),
				FieldKind.Field(string(kind)),
				FieldError.Field(err.Error()),
			)
		} else {
			span.SetTag(TagSuccess, "true")
		}
		span.Finish()

		_ = h.Hooks.Emit(ctx, hookz.Key("flowscript.node.executed"), NodeEvent{ //nolint:errcheck
			RunID:    runID,
			Node:     node,
			Kind:     kind,
			Success:  err == nil,
			Err:      err,
			Duration: elapsed,
		})
	}
}

// LogSwitchRouted records which branch a Switch/Match node took.
func (h *Hub) LogSwitchRouted(ctx context.Context, runID, node, field, route string) {
	capitan.Info(ctx, SignalSwitchRouted,
		FieldRunID.Field(runID),
		FieldNode.Field(node),
		FieldField.Field(field),
		FieldRoute.Field(route),
	)
}

// LogSwitchUnrouted records that no case matched and no default exists.
func (h *Hub) LogSwitchUnrouted(ctx context.Context, runID, node, field string) {
	capitan.Warn(ctx, SignalSwitchUnrouted,
		FieldRunID.Field(runID),
		FieldNode.Field(node),
		FieldField.Field(field),
	)
}

// LogCountIncreased records a CountNode traversal.
func (h *Hub) LogCountIncreased(ctx context.Context, runID, node string, count int) {
	capitan.Info(ctx, SignalCountIncreased,
		FieldRunID.Field(runID),
		FieldNode.Field(node),
		FieldCount.Field(count),
	)
}

// LogExecuteFailed records a fatal flowscript.Execute-level failure.
func LogExecuteFailed(ctx context.Context, runID string, err error) {
	capitan.Error(ctx, SignalExecuteFailed,
		FieldRunID.Field(runID),
		FieldError.Field(err.Error()),
	)
}

// LogParseFailed records a parser-level failure.
func LogParseFailed(ctx context.Context, err error) {
	capitan.Error(ctx, SignalParseFailed, FieldError.Field(err.Error()))
}

// LogTransformFailed records a transform-level failure.
func LogTransformFailed(ctx context.Context, node string, err error) {
	capitan.Error(ctx, SignalTransformFailed,
		FieldNode.Field(node),
		FieldError.Field(fmt.Sprint(err)),
	)
}
