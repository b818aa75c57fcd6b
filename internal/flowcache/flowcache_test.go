package flowcache

import (
	"testing"

	"github.com/coreyclarkphd/flowscript/internal/ast"
	"github.com/coreyclarkphd/flowscript/internal/parse"
)

func TestCacheMissThenHitRoundTrips(t *testing.T) {
	src := `cond [shape=rectangle, label="x == 1"]; input -> cond; cond -> a [label="true"]; cond -> b [label="false"];`

	c := New()
	if _, ok := c.Get(src); ok {
		t.Fatalf("expected a cache miss before Put")
	}

	defs, ferr := parse.Parse(src)
	if ferr != nil {
		t.Fatalf("unexpected parse error: %v", ferr)
	}
	if err := c.Put(src, defs); err != nil {
		t.Fatalf("unexpected put error: %v", err)
	}

	got, ok := c.Get(src)
	if !ok {
		t.Fatalf("expected a cache hit after Put")
	}
	if len(got.Variables) != len(defs.Variables) {
		t.Errorf("round-tripped Defs has %d variables, want %d", len(got.Variables), len(defs.Variables))
	}
	if got.Variables["cond"].Kind != ast.KindIf {
		t.Errorf("round-tripped cond node kind = %v, want If", got.Variables["cond"].Kind)
	}
	if len(got.Connections) != len(defs.Connections) {
		t.Errorf("round-tripped Defs has %d connections, want %d", len(got.Connections), len(defs.Connections))
	}
}

func TestCacheKeyIsDeterministic(t *testing.T) {
	if Key("a") != Key("a") {
		t.Errorf("Key must be deterministic for identical input")
	}
	if Key("a") == Key("b") {
		t.Errorf("Key must differ for different input")
	}
}

func TestCacheLenTracksEntries(t *testing.T) {
	c := New()
	if c.Len() != 0 {
		t.Fatalf("expected an empty cache, got Len()=%d", c.Len())
	}

	defs, ferr := parse.Parse(`input -> a;`)
	if ferr != nil {
		t.Fatalf("unexpected parse error: %v", ferr)
	}
	if err := c.Put("input -> a;", defs); err != nil {
		t.Fatalf("unexpected put error: %v", err)
	}
	if c.Len() != 1 {
		t.Errorf("expected Len()=1 after one Put, got %d", c.Len())
	}
}
