package engine

import (
	"context"
	"testing"

	"github.com/coreyclarkphd/flowscript/internal/ast"
	"github.com/coreyclarkphd/flowscript/internal/parse"
	"github.com/coreyclarkphd/flowscript/internal/resolver"
	"github.com/coreyclarkphd/flowscript/internal/telemetry"
	"github.com/coreyclarkphd/flowscript/internal/transform"
	"github.com/coreyclarkphd/flowscript/internal/value"
)

func run(t *testing.T, src string, input value.V, res resolver.Resolver) value.V {
	t.Helper()
	defs, ferr := parse.Parse(src)
	if ferr != nil {
		t.Fatalf("unexpected parse error: %v", ferr)
	}
	nodes, terr := transform.Build(defs)
	if terr != nil {
		t.Fatalf("unexpected transform error: %v", terr)
	}
	g := New(nodes, res, nil)
	out, err := g.Run(context.Background(), input)
	if err != nil {
		t.Fatalf("unexpected execution error: %v", err)
	}
	return out
}

// S1: if/else branching on x == 1.
func TestScenarioIfElseBranching(t *testing.T) {
	src := `
cond [shape=rectangle, label="x == 1"];
input -> cond;
cond -> yes [label="true"];
cond -> no [label="false"];
`
	echoResolver := resolver.Func(func(_ context.Context, command string, input value.V) (value.V, error) {
		obj := value.AsObject(input).Clone()
		obj.Set("branch", value.String(command))
		return value.Object(obj), nil
	})

	out := run(t, src, value.MustParse(`{"x":1}`), echoResolver)
	branch, ok := out.Get("branch")
	if !ok || branch.Str() != "yes" {
		t.Errorf("x==1 should route to yes, got %v", out)
	}

	out = run(t, src, value.MustParse(`{"x":2}`), echoResolver)
	branch, ok = out.Get("branch")
	if !ok || branch.Str() != "no" {
		t.Errorf("x==2 should route to no, got %v", out)
	}
}

// S2: switch exclusivity, default fallback, and extra fields preserved.
func TestScenarioSwitchExclusivity(t *testing.T) {
	src := `
sw [shape=diamond, label="status"];
input -> sw;
sw -> ok [label="200"];
sw -> notfound [label="404"];
sw -> fallback;
`
	label := func(name string) resolver.Func {
		return func(_ context.Context, _ string, input value.V) (value.V, error) {
			obj := value.AsObject(input).Clone()
			obj.Set("handled_by", value.String(name))
			return value.Object(obj), nil
		}
	}
	reg := resolver.NewRegistry()
	reg.Register("ok", label("ok"))
	reg.Register("notfound", label("notfound"))
	reg.Register("fallback", label("fallback"))

	out := run(t, src, value.MustParse(`{"status":200,"extra":"kept"}`), reg)
	handledBy, _ := out.Get("handled_by")
	extra, _ := out.Get("extra")
	if handledBy.Str() != "ok" {
		t.Errorf("status 200 should route to ok, got %v", out)
	}
	if extra.Str() != "kept" {
		t.Errorf("extra input fields must survive a switch, got %v", out)
	}

	out = run(t, src, value.MustParse(`{"status":500}`), reg)
	handledBy, _ = out.Get("handled_by")
	if handledBy.Str() != "fallback" {
		t.Errorf("unmatched status should fall to default, got %v", out)
	}
}

// S3: match falls through Default with the branch's result; non-matching
// input still reaches Default carrying the original input.
func TestScenarioMatchFallsThrough(t *testing.T) {
	src := `
m [shape=Mdiamond, label="status"];
input -> m;
m -> handled [label="200", style="dashed"];
m -> after;
`
	reg := resolver.NewRegistry()
	reg.Register("handled", resolver.Func(func(_ context.Context, _ string, input value.V) (value.V, error) {
		obj := value.AsObject(input).Clone()
		obj.Set("matched", value.Bool(true))
		return value.Object(obj), nil
	}))
	reg.Register("after", resolver.Func(func(_ context.Context, _ string, input value.V) (value.V, error) {
		obj := value.AsObject(input).Clone()
		obj.Set("reached_after", value.Bool(true))
		return value.Object(obj), nil
	}))

	out := run(t, src, value.MustParse(`{"status":200}`), reg)
	matched, _ := out.Get("matched")
	reachedAfter, _ := out.Get("reached_after")
	if !matched.Bool() || !reachedAfter.Bool() {
		t.Errorf("matched branch's result should feed into the default node, got %v", out)
	}

	out = run(t, src, value.MustParse(`{"status":999}`), reg)
	_, hadMatched := out.Get("matched")
	reachedAfter, _ = out.Get("reached_after")
	if hadMatched {
		t.Errorf("non-matching input must not run the branch node, got %v", out)
	}
	if !reachedAfter.Bool() {
		t.Errorf("non-matching input should still reach default with the original input, got %v", out)
	}
}

// S4: setter chain producing {"a":1,"b":"two"}.
func TestScenarioSetterChain(t *testing.T) {
	src := `
a [shape=cds, label="a:1"];
b [shape=cds, label="b:\"two\""];
input -> a;
a -> b;
`
	out := run(t, src, value.MustParse(`{}`), resolver.NoopResolver{})
	want := value.MustParse(`{"a":1,"b":"two"}`)
	if !value.Equal(out, want) {
		t.Errorf("setter chain = %v, want %v", out, want)
	}
}

// S5: count monotonicity across a cycle.
func TestScenarioCountMonotonicityAcrossCycle(t *testing.T) {
	src := `
cond [shape=rectangle, label="__count == 3"];
c [shape=component];
input -> c;
c -> cond;
cond -> done [label="true"];
cond -> c [label="false"];
`
	out := run(t, src, value.MustParse(`{}`), resolver.NoopResolver{})
	count, ok := out.Get("__count")
	if !ok || count.Float64() != 3 {
		t.Errorf("expected __count to reach 3 on the third traversal, got %v", out)
	}
}

// S6 (engine-level complement): a synthesized Task node executes cleanly
// through the resolver without a declared shape.
func TestScenarioSynthesizedTaskExecutesViaResolver(t *testing.T) {
	defs, ferr := parse.Parse(`input -> zzz;`)
	if ferr != nil {
		t.Fatalf("unexpected parse error: %v", ferr)
	}
	if defs.Variables["zzz"].Kind != ast.KindTask {
		t.Fatalf("expected zzz to synthesize as Task")
	}

	called := false
	res := resolver.Func(func(_ context.Context, command string, input value.V) (value.V, error) {
		called = true
		if command != "zzz" {
			t.Errorf("resolver invoked with command %q, want zzz", command)
		}
		return input, nil
	})

	nodes, terr := transform.Build(defs)
	if terr != nil {
		t.Fatalf("unexpected transform error: %v", terr)
	}
	g := New(nodes, res, nil)
	if _, err := g.Run(context.Background(), value.MustParse(`{}`)); err != nil {
		t.Fatalf("unexpected execution error: %v", err)
	}
	if !called {
		t.Errorf("expected the synthesized task node to invoke the resolver")
	}
}

func TestCountNodeErrorsOnNonObjectInput(t *testing.T) {
	hub := telemetry.New()
	defer hub.Close()

	c := &CountNode{Next: "done"}
	g := &Graph{nodes: NodeMap{}, resolver: resolver.NoopResolver{}, hub: hub}
	_, err := c.execute(context.Background(), g, "c", value.Number(5))
	if err == nil {
		t.Fatalf("expected an error for non-object input to a count node")
	}
}
