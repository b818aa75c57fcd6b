// Package ast holds the parse-time representation of a Flowscript program:
// a table of named node definitions plus an ordered list of connections
// between them.
package ast

import "github.com/coreyclarkphd/flowscript/internal/value"

// NodeKind tags which variant a NodeDef or resolved engine.Node is. It
// doubles as the diagnostic discriminator returned by graph introspection
// (flowscript.Describe).
type NodeKind string

const (
	KindInput   NodeKind = "input"
	KindTask    NodeKind = "task"
	KindIf      NodeKind = "if"
	KindCount   NodeKind = "count"
	KindMulti   NodeKind = "multi"
	KindSwitch  NodeKind = "switch"
	KindMatch   NodeKind = "match"
	KindSetter  NodeKind = "setter"
)

// NodeDef is the parse-time, tagged representation of one declared node.
// Exactly one of the kind-specific fields is meaningful, selected by Kind.
type NodeDef struct {
	Kind NodeKind

	// Task
	Command string

	// IfStatement
	Condition string

	// Switch / Match
	Field string

	// Setter
	Label string
}

// ConnType tags the role a connection plays.
type ConnType int

const (
	Default ConnType = iota
	IfTrue
	IfFalse
	SwitchBranch
	MatchBranch
	MultiOut
)

func (c ConnType) String() string {
	switch c {
	case Default:
		return "default"
	case IfTrue:
		return "if-true"
	case IfFalse:
		return "if-false"
	case SwitchBranch:
		return "switch-branch"
	case MatchBranch:
		return "match-branch"
	case MultiOut:
		return "multi-out"
	default:
		return "unknown"
	}
}

// ConnectionDef is a directed edge between two named nodes.
type ConnectionDef struct {
	From    string
	To      string
	Type    ConnType
	Label   string // raw branch-value text, meaningful for SwitchBranch/MatchBranch
}

// Defs is the full parse result: every declared (or synthesized) node, plus
// the ordered connection list.
type Defs struct {
	Variables   map[string]NodeDef
	Connections []ConnectionDef
}

// NewDefs returns an empty Defs with the "input" node pre-populated, as the
// parser guarantees for every successfully parsed program.
func NewDefs() *Defs {
	return &Defs{
		Variables: map[string]NodeDef{
			"input": {Kind: KindInput},
		},
	}
}

// EnsureTask records name as a Task node if it is not already declared,
// used to synthesize nodes referenced only by a connection endpoint.
func (d *Defs) EnsureTask(name string) {
	if _, ok := d.Variables[name]; ok {
		return
	}
	if d.Variables == nil {
		d.Variables = make(map[string]NodeDef)
	}
	d.Variables[name] = NodeDef{Kind: KindTask, Command: name}
}

// ParseBranchValue parses a Switch/Match branch-value string into a V: it
// attempts a JSON parse first, falling back to treating the raw text as a
// JSON string; an empty string becomes null. Also used by Setter to parse
// the right-hand side of "key:value".
func ParseBranchValue(text string) value.V {
	if text == "" {
		return value.Null()
	}
	if v, err := value.Parse(text); err == nil {
		return v
	}
	return value.String(text)
}
