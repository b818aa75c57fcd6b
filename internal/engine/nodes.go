package engine

import (
	"context"
	"strings"

	"github.com/coreyclarkphd/flowscript/internal/ast"
	"github.com/coreyclarkphd/flowscript/internal/expr"
	"github.com/coreyclarkphd/flowscript/internal/flowerr"
	"github.com/coreyclarkphd/flowscript/internal/value"
)

// InputNode is the graph's single entry point. It carries the value
// unchanged to its one Default successor.
type InputNode struct {
	Next string
}

func (*InputNode) Kind() ast.NodeKind { return ast.KindInput }

func (n *InputNode) execute(ctx context.Context, g *Graph, _ string, input value.V) (value.V, error) {
	return g.goTo(ctx, n.Next, input)
}

// TaskNode is an opaque work unit resolved by the external task resolver.
type TaskNode struct {
	Command string
	Next    string
	HasNext bool
}

func (*TaskNode) Kind() ast.NodeKind { return ast.KindTask }

func (n *TaskNode) execute(ctx context.Context, g *Graph, _ string, input value.V) (value.V, error) {
	result, err := g.resolver.Resolve(ctx, n.Command, input)
	if err != nil {
		return value.Null(), flowerr.Execution(err, "task %q failed", n.Command)
	}
	if !n.HasNext {
		return result, nil
	}
	return g.goTo(ctx, n.Next, result)
}

// IfNode evaluates Condition against the current value and branches.
type IfNode struct {
	Condition   string
	TrueBranch  string
	FalseBranch string
}

func (*IfNode) Kind() ast.NodeKind { return ast.KindIf }

func (n *IfNode) execute(ctx context.Context, g *Graph, _ string, input value.V) (value.V, error) {
	result, ferr := expr.Eval(n.Condition, input)
	if ferr != nil {
		return value.Null(), flowerr.Execution(ferr, "could not evaluate conditional %q", n.Condition)
	}
	if result {
		return g.goTo(ctx, n.TrueBranch, input)
	}
	return g.goTo(ctx, n.FalseBranch, input)
}

// CountNode increments a per-node counter on every traversal and stamps it
// into the current object under "__count". The counter is the only
// mutable per-node state in the engine (spec.md §3).
type CountNode struct {
	Next  string
	count int
}

func (*CountNode) Kind() ast.NodeKind { return ast.KindCount }

func (n *CountNode) execute(ctx context.Context, g *Graph, name string, input value.V) (value.V, error) {
	if !input.IsObject() {
		return value.Null(), flowerr.Execution(nil, "count node input is not an object")
	}
	n.count++
	g.hub.LogCountIncreased(ctx, g.runID, name, n.count)

	obj := input.Obj().Clone()
	obj.Set("__count", value.Number(float64(n.count)))
	return g.goTo(ctx, n.Next, value.Object(obj))
}

// MultiNode runs every node in RunBefore against the current value, then
// merges their object results (later-wins) on top of the current object
// before delegating to Next.
type MultiNode struct {
	RunBefore []string
	Next      string
}

func (*MultiNode) Kind() ast.NodeKind { return ast.KindMulti }

func (n *MultiNode) execute(ctx context.Context, g *Graph, _ string, input value.V) (value.V, error) {
	merged := value.AsObject(input).Clone()

	for _, branch := range n.RunBefore {
		result, err := g.goTo(ctx, branch, input.Clone())
		if err != nil {
			return value.Null(), err
		}
		if !result.IsObject() {
			return value.Null(), flowerr.Execution(nil, "multi branch %q did not return an object", branch)
		}
		merged.MergeFrom(result.Obj())
	}

	return g.goTo(ctx, n.Next, value.Object(merged))
}

// SwitchCase is one equality-routed branch.
type SwitchCase struct {
	Value value.V
	To    string
}

// SwitchNode routes to exactly one branch based on equality with
// input[Field]; non-matching branches are never executed.
type SwitchNode struct {
	Field      string
	Cases      []SwitchCase
	Default    string
	HasDefault bool
}

func (*SwitchNode) Kind() ast.NodeKind { return ast.KindSwitch }

func (n *SwitchNode) execute(ctx context.Context, g *Graph, name string, input value.V) (value.V, error) {
	field, ok := input.Get(n.Field)
	if !ok {
		return value.Null(), flowerr.Execution(nil, "could not read field %q for switch statement", n.Field)
	}

	for _, c := range n.Cases {
		if value.Equal(c.Value, field) {
			g.hub.LogSwitchRouted(ctx, g.runID, name, n.Field, c.To)
			return g.goTo(ctx, c.To, input)
		}
	}

	if n.HasDefault {
		return g.goTo(ctx, n.Default, input)
	}
	g.hub.LogSwitchUnrouted(ctx, g.runID, name, n.Field)
	return input, nil
}

// MatchNode is shaped like SwitchNode but falls through to Default (if
// present) with the matched branch's result, instead of returning it
// directly.
type MatchNode struct {
	Field      string
	Cases      []SwitchCase
	Default    string
	HasDefault bool
}

func (*MatchNode) Kind() ast.NodeKind { return ast.KindMatch }

func (n *MatchNode) execute(ctx context.Context, g *Graph, name string, input value.V) (value.V, error) {
	field, ok := input.Get(n.Field)
	if !ok {
		return value.Null(), flowerr.Execution(nil, "could not read field %q for match statement", n.Field)
	}

	result := input
	matched := false
	for _, c := range n.Cases {
		if value.Equal(c.Value, field) {
			branchResult, err := g.goTo(ctx, c.To, input.Clone())
			if err != nil {
				return value.Null(), err
			}
			result = branchResult
			matched = true
			g.hub.LogSwitchRouted(ctx, g.runID, name, n.Field, c.To)
			break
		}
	}

	if !matched && !n.HasDefault {
		g.hub.LogSwitchUnrouted(ctx, g.runID, name, n.Field)
	}

	if n.HasDefault {
		return g.goTo(ctx, n.Default, result)
	}
	return result, nil
}

// SetterNode injects a "key:value" pair, parsed via ast.ParseBranchValue,
// into the current object.
type SetterNode struct {
	Label   string
	Next    string
	HasNext bool
}

func (*SetterNode) Kind() ast.NodeKind { return ast.KindSetter }

func (n *SetterNode) execute(ctx context.Context, g *Graph, _ string, input value.V) (value.V, error) {
	obj := value.AsObject(input).Clone()

	key, rawValue, _ := strings.Cut(n.Label, ":")
	key = strings.TrimSpace(key)
	parsed := ast.ParseBranchValue(strings.TrimSpace(rawValue))
	obj.Set(key, parsed)

	out := value.Object(obj)
	if !n.HasNext {
		return out, nil
	}
	return g.goTo(ctx, n.Next, out)
}
