// Package telemetry centralizes the metrics, tracing, hooks and structured
// event logging shared by the parser, transform and execution engine.
package telemetry

import (
	"github.com/zoobzio/capitan"
	"github.com/zoobzio/metricz"
	"github.com/zoobzio/tracez"
)

// Signal constants for Flowscript lifecycle events. Signals follow the
// pattern <stage>.<event>.
const (
	SignalParseFailed     capitan.Signal = "flowscript.parse.failed"
	SignalTransformFailed capitan.Signal = "flowscript.transform.failed"
	SignalExecuteStarted  capitan.Signal = "flowscript.execute.started"
	SignalExecuteFailed   capitan.Signal = "flowscript.execute.failed"
	SignalExecuteFinished capitan.Signal = "flowscript.execute.finished"
	SignalNodeFailed      capitan.Signal = "flowscript.node.failed"
	SignalSwitchRouted    capitan.Signal = "flowscript.switch.routed"
	SignalSwitchUnrouted  capitan.Signal = "flowscript.switch.unrouted"
	SignalMatchFallen     capitan.Signal = "flowscript.match.fallthrough"
	SignalCountIncreased  capitan.Signal = "flowscript.count.increased"
)

// Field keys, using capitan's primitive-typed keys to avoid custom struct
// serialization in the log sink.
var (
	FieldRunID    = capitan.NewStringKey("run_id")
	FieldNode     = capitan.NewStringKey("node")
	FieldKind     = capitan.NewStringKey("kind")
	FieldError    = capitan.NewStringKey("error")
	FieldField    = capitan.NewStringKey("field")
	FieldRoute    = capitan.NewStringKey("route")
	FieldCount    = capitan.NewIntKey("count")
	FieldDuration = capitan.NewFloat64Key("duration_ms")
)

// Metric keys, one family per lifecycle stage.
const (
	NodesExecutedTotal = metricz.Key("flowscript.nodes.executed.total")
	NodesFailedTotal   = metricz.Key("flowscript.nodes.failed.total")
	NodeDurationMs     = metricz.Key("flowscript.node.duration.ms")
	ParsesTotal        = metricz.Key("flowscript.parses.total")
	ParseFailuresTotal = metricz.Key("flowscript.parse.failures.total")
	ExecutionsTotal    = metricz.Key("flowscript.executions.total")
	ExecutionFailures  = metricz.Key("flowscript.executions.failures.total")
)

// Span keys.
const (
	ExecuteSpan    = tracez.Key("flowscript.execute")
	NodeExecuteSpan = tracez.Key("flowscript.node.execute")
	ParseSpan      = tracez.Key("flowscript.parse")
	TransformSpan  = tracez.Key("flowscript.transform")
)

// Span tags.
const (
	TagNode    = tracez.Tag("flowscript.node")
	TagKind    = tracez.Tag("flowscript.kind")
	TagSuccess = tracez.Tag("flowscript.success")
	TagRunID   = tracez.Tag("flowscript.run_id")
)
