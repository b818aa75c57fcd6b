package transform

import (
	"reflect"
	"testing"

	"github.com/coreyclarkphd/flowscript/internal/ast"
	"github.com/coreyclarkphd/flowscript/internal/engine"
	"github.com/coreyclarkphd/flowscript/internal/parse"
)

func mustParse(t *testing.T, src string) *ast.Defs {
	t.Helper()
	defs, ferr := parse.Parse(src)
	if ferr != nil {
		t.Fatalf("unexpected parse error: %v", ferr)
	}
	return defs
}

func TestBuildMissingDefaultEdgeErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"input with no outgoing edge", `input;`},
		{"count with no outgoing edge", `c [shape=component]; input -> c;`},
		{"multi with no outgoing default edge", `m [shape=point]; input -> m;`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defs := mustParse(t, tt.src)
			if _, err := Build(defs); err == nil {
				t.Fatalf("expected a transform error for %q", tt.src)
			}
		})
	}
}

func TestBuildIfRequiresBothBranches(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"missing false branch", `
cond [shape=rectangle, label="x == 1"];
input -> cond;
cond -> a [label="true"];
`},
		{"missing true branch", `
cond [shape=rectangle, label="x == 1"];
input -> cond;
cond -> b [label="false"];
`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defs := mustParse(t, tt.src)
			if _, err := Build(defs); err == nil {
				t.Fatalf("expected a transform error for %q", tt.src)
			}
		})
	}
}

func TestBuildMultiOnlyCollectsOwnOutgoingEdges(t *testing.T) {
	src := `
m [shape=point];
input -> m;
m -> left [style="dashed"];
m -> right [style="dashed"];
m -> done;
other [shape=point];
other -> left [style="dashed"];
other -> done;
`
	defs := mustParse(t, src)
	nodes, err := Build(defs)
	if err != nil {
		t.Fatalf("unexpected build error: %v", err)
	}

	m, ok := nodes["m"].(*engine.MultiNode)
	if !ok {
		t.Fatalf("expected m to build as *engine.MultiNode, got %T", nodes["m"])
	}
	if !reflect.DeepEqual(m.RunBefore, []string{"left", "right"}) {
		t.Errorf("m.RunBefore = %v, want [left right] (only m's own MultiOut edges)", m.RunBefore)
	}
	if m.Next != "done" {
		t.Errorf("m.Next = %q, want done", m.Next)
	}
}

func TestBuildSwitchCasesPreserveDeclaredOrder(t *testing.T) {
	src := `
sw [shape=diamond, label="status"];
input -> sw;
sw -> first [label="200"];
sw -> second [label="200"];
sw -> other [label="404"];
sw -> fallback;
`
	defs := mustParse(t, src)
	nodes, err := Build(defs)
	if err != nil {
		t.Fatalf("unexpected build error: %v", err)
	}

	sw, ok := nodes["sw"].(*engine.SwitchNode)
	if !ok {
		t.Fatalf("expected sw to build as *engine.SwitchNode, got %T", nodes["sw"])
	}
	if len(sw.Cases) != 3 {
		t.Fatalf("expected 3 cases, got %d", len(sw.Cases))
	}
	if sw.Cases[0].To != "first" || sw.Cases[1].To != "second" {
		t.Errorf("expected first-declared-wins order [first second ...], got %v", sw.Cases)
	}
	if !sw.HasDefault || sw.Default != "fallback" {
		t.Errorf("expected default fallback, got HasDefault=%v Default=%q", sw.HasDefault, sw.Default)
	}
}

func TestBuildSetterPreservesRawLabel(t *testing.T) {
	src := `
s [shape=cds, label="a: 1"];
input -> s;
`
	defs := mustParse(t, src)
	nodes, err := Build(defs)
	if err != nil {
		t.Fatalf("unexpected build error: %v", err)
	}
	s, ok := nodes["s"].(*engine.SetterNode)
	if !ok {
		t.Fatalf("expected s to build as *engine.SetterNode, got %T", nodes["s"])
	}
	if s.Label != "a: 1" {
		t.Errorf("SetterNode.Label = %q, want raw label preserved for execute-time parsing", s.Label)
	}
}

func TestBuildUnknownKindErrors(t *testing.T) {
	defs := ast.NewDefs()
	defs.Variables["bad"] = ast.NodeDef{Kind: ast.NodeKind("bogus")}
	defs.Connections = append(defs.Connections, ast.ConnectionDef{From: "input", To: "bad", Type: ast.Default})

	if _, err := Build(defs); err == nil {
		t.Fatalf("expected a transform error for an unknown node kind")
	}
}
