// Package flowscript implements a small DSL and single-threaded runtime for
// data-flow graphs over a JSON-like value.
//
// # Overview
//
// A Flowscript program is a Graphviz-like text description of named nodes
// and the connections between them. Node shape, label and connection style
// determine each node's behavior: plain nodes are opaque work units
// resolved by an external task resolver, rectangles are conditionals,
// diamonds and Mdiamonds route on field equality, points fan out to
// siblings and merge their results, and cds nodes inject a field into the
// current value. Execution starts at the implicit "input" node and walks
// the graph one node at a time, passing a value along.
//
// # Core Concepts
//
// The runtime is built around four components:
//
//   - internal/expr: the small comparison sub-language used by If nodes
//   - internal/lexer, internal/parse: turn source text into an ast.Defs
//   - internal/transform: turn an ast.Defs into an engine.NodeMap
//   - internal/engine: executes a NodeMap against an input value
//
// The only external dependency the core takes on is a resolver.Resolver,
// which resolves a Task node's command against the current value.
//
// # Usage Example
//
//	result, err := flowscript.Execute(context.Background(), source, input, resolver.NoopResolver{})
//	if err != nil {
//	    var ferr *flowerr.Error
//	    if errors.As(err, &ferr) {
//	        log.Printf("%s at %d:%d: %s", ferr.Kind, ferr.Line, ferr.Column, ferr.Message)
//	    }
//	}
//
// # Diagnostics
//
// Describe parses and transforms a program without executing it, returning
// a summary of every node's kind and bound successors, for tooling that
// wants to render or lint a graph. NewCachedRunner wraps Execute with a
// flowcache.Cache so repeated runs of the same source skip parsing.
package flowscript
