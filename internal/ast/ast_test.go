package ast

import (
	"testing"

	"github.com/coreyclarkphd/flowscript/internal/value"
)

func TestParseBranchValueIdempotence(t *testing.T) {
	tests := []struct {
		name string
		text string
		want value.V
	}{
		{"empty string is null", "", value.Null()},
		{"null literal", "null", value.Null()},
		{"boolean literal", "true", value.Bool(true)},
		{"number literal", "42", value.Number(42)},
		{"quoted json string", `"hello"`, value.String("hello")},
		{"bare non-json text becomes a string", "hello world", value.String("hello world")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseBranchValue(tt.text)
			if !value.Equal(got, tt.want) {
				t.Errorf("ParseBranchValue(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestEnsureTaskDoesNotOverwriteDeclared(t *testing.T) {
	d := NewDefs()
	d.Variables["x"] = NodeDef{Kind: KindCount}

	d.EnsureTask("x")

	if d.Variables["x"].Kind != KindCount {
		t.Errorf("EnsureTask must not overwrite an already-declared node")
	}
}

func TestEnsureTaskSynthesizesMissing(t *testing.T) {
	d := NewDefs()
	d.EnsureTask("zzz")

	def, ok := d.Variables["zzz"]
	if !ok {
		t.Fatalf("expected zzz to be synthesized")
	}
	if def.Kind != KindTask || def.Command != "zzz" {
		t.Errorf("synthesized node = %+v, want Task with command zzz", def)
	}
}
