// Package transform builds an execution-time engine.NodeMap from a parsed
// ast.Defs, resolving each node's bound successor names from the ordered
// connection list (spec.md §4.3).
package transform

import (
	"github.com/coreyclarkphd/flowscript/internal/ast"
	"github.com/coreyclarkphd/flowscript/internal/engine"
	"github.com/coreyclarkphd/flowscript/internal/flowerr"
)

// Build walks defs.Variables and, for each entry, locates its outgoing
// connections to construct a typed engine.Node.
func Build(defs *ast.Defs) (engine.NodeMap, *flowerr.Error) {
	nodes := make(engine.NodeMap, len(defs.Variables))

	for name, def := range defs.Variables {
		node, err := buildNode(name, def, defs.Connections)
		if err != nil {
			return nil, err
		}
		nodes[name] = node
	}

	return nodes, nil
}

func buildNode(name string, def ast.NodeDef, conns []ast.ConnectionDef) (engine.Node, *flowerr.Error) {
	switch def.Kind {
	case ast.KindInput:
		next, ok := defaultSuccessor(name, conns)
		if !ok {
			return nil, flowerr.Transform("node %q has no connection", name)
		}
		return &engine.InputNode{Next: next}, nil

	case ast.KindTask:
		next, ok := defaultSuccessor(name, conns)
		return &engine.TaskNode{Command: def.Command, Next: next, HasNext: ok}, nil

	case ast.KindIf:
		trueTo, ok := branchSuccessor(name, conns, ast.IfTrue)
		if !ok {
			return nil, flowerr.Transform("if node %q has no true connection", name)
		}
		falseTo, ok := branchSuccessor(name, conns, ast.IfFalse)
		if !ok {
			return nil, flowerr.Transform("if node %q has no false connection", name)
		}
		return &engine.IfNode{Condition: def.Condition, TrueBranch: trueTo, FalseBranch: falseTo}, nil

	case ast.KindCount:
		next, ok := defaultSuccessor(name, conns)
		if !ok {
			return nil, flowerr.Transform("node %q has no connection", name)
		}
		return &engine.CountNode{Next: next}, nil

	case ast.KindMulti:
		before := multiSuccessors(name, conns)
		next, ok := defaultSuccessor(name, conns)
		if !ok {
			return nil, flowerr.Transform("node %q has no connection", name)
		}
		return &engine.MultiNode{RunBefore: before, Next: next}, nil

	case ast.KindSwitch:
		cases := branchCases(name, conns, ast.SwitchBranch)
		defaultTo, hasDefault := defaultSuccessor(name, conns)
		return &engine.SwitchNode{Field: def.Field, Cases: cases, Default: defaultTo, HasDefault: hasDefault}, nil

	case ast.KindMatch:
		cases := branchCases(name, conns, ast.MatchBranch)
		defaultTo, hasDefault := defaultSuccessor(name, conns)
		return &engine.MatchNode{Field: def.Field, Cases: cases, Default: defaultTo, HasDefault: hasDefault}, nil

	case ast.KindSetter:
		next, ok := defaultSuccessor(name, conns)
		return &engine.SetterNode{Label: def.Label, Next: next, HasNext: ok}, nil

	default:
		return nil, flowerr.Transform("unknown node kind %q for %q", def.Kind, name)
	}
}

// defaultSuccessor returns the single outgoing Default edge's target, if any.
func defaultSuccessor(name string, conns []ast.ConnectionDef) (string, bool) {
	for _, c := range conns {
		if c.From == name && c.Type == ast.Default {
			return c.To, true
		}
	}
	return "", false
}

// branchSuccessor returns the target of the single outgoing edge of the
// given type (used for IfTrue/IfFalse, which are structurally unique).
func branchSuccessor(name string, conns []ast.ConnectionDef, ctype ast.ConnType) (string, bool) {
	for _, c := range conns {
		if c.From == name && c.Type == ctype {
			return c.To, true
		}
	}
	return "", false
}

// multiSuccessors collects every outgoing MultiOut edge from name. Unlike
// the reference implementation, it does not also collect every MultiOut
// edge graph-wide regardless of origin (spec.md §9 Open Questions: this is
// the corrected, non-buggy behavior).
func multiSuccessors(name string, conns []ast.ConnectionDef) []string {
	var out []string
	for _, c := range conns {
		if c.From == name && c.Type == ast.MultiOut {
			out = append(out, c.To)
		}
	}
	return out
}

// branchCases collects every outgoing edge of ctype from name as a
// (parsed value, target) case, in declared order.
func branchCases(name string, conns []ast.ConnectionDef, ctype ast.ConnType) []engine.SwitchCase {
	var cases []engine.SwitchCase
	for _, c := range conns {
		if c.From == name && c.Type == ctype {
			cases = append(cases, engine.SwitchCase{Value: ast.ParseBranchValue(c.Label), To: c.To})
		}
	}
	return cases
}
