package flowscript

import (
	"sort"

	"github.com/coreyclarkphd/flowscript/internal/ast"
	"github.com/coreyclarkphd/flowscript/internal/parse"
	"github.com/coreyclarkphd/flowscript/internal/transform"
)

// NodeSummary describes one resolved node's kind and declared successors,
// without executing the graph.
type NodeSummary struct {
	Name    string   `json:"name"`
	Kind    string   `json:"kind"`
	Targets []string `json:"targets,omitempty"`
}

// Graph is a non-executing summary of a compiled Flowscript program:
// every node reports its kind and successors so tooling can render or
// lint a graph.
type Graph struct {
	Nodes []NodeSummary `json:"nodes"`
}

// Describe parses and transforms source, returning a Graph summary. It
// performs no type-checking and has no effect on Execute's behavior.
func Describe(source string) (Graph, error) {
	defs, ferr := parse.Parse(source)
	if ferr != nil {
		return Graph{}, ferr
	}
	if _, ferr := transform.Build(defs); ferr != nil {
		return Graph{}, ferr
	}

	names := make([]string, 0, len(defs.Variables))
	for name := range defs.Variables {
		names = append(names, name)
	}
	sort.Strings(names)

	summaries := make([]NodeSummary, 0, len(names))
	for _, name := range names {
		def := defs.Variables[name]
		summaries = append(summaries, NodeSummary{
			Name:    name,
			Kind:    string(def.Kind),
			Targets: successorNames(name, defs.Connections),
		})
	}
	return Graph{Nodes: summaries}, nil
}

func successorNames(name string, conns []ast.ConnectionDef) []string {
	var out []string
	for _, c := range conns {
		if c.From == name {
			out = append(out, c.To)
		}
	}
	return out
}
