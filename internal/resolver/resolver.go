// Package resolver defines the task resolver contract: Flowscript's one
// outward dependency (spec.md §6). A Resolver turns a TaskNode's command
// and current value into a result value, synchronously, the way an
// external collaborator (a shell command, a chat completion, a file
// transform) would.
package resolver

import (
	"context"
	"fmt"

	"github.com/coreyclarkphd/flowscript/internal/value"
)

// Resolver resolves one Task command against the current value.
type Resolver interface {
	Resolve(ctx context.Context, command string, input value.V) (value.V, error)
}

// Func adapts a plain function to a Resolver.
type Func func(ctx context.Context, command string, input value.V) (value.V, error)

func (f Func) Resolve(ctx context.Context, command string, input value.V) (value.V, error) {
	return f(ctx, command, input)
}

// NoopResolver returns the input unchanged for every command. It is the
// default used by tests and by flowscript.Execute when no registry is
// configured.
type NoopResolver struct{}

func (NoopResolver) Resolve(_ context.Context, _ string, input value.V) (value.V, error) {
	return input, nil
}

// Registry dispatches by command name to one Resolver per command,
// mirroring the pluggable task resolver spec.md §4.4 describes.
type Registry struct {
	byCommand map[string]Resolver
	fallback  Resolver
}

// NewRegistry returns an empty Registry. Without a fallback, Resolve on an
// unregistered command is a runtime error (spec.md §4.4: "a missing
// resolver is a runtime error").
func NewRegistry() *Registry {
	return &Registry{byCommand: make(map[string]Resolver)}
}

// Register binds command to r, replacing any existing binding.
func (reg *Registry) Register(command string, r Resolver) {
	reg.byCommand[command] = r
}

// Fallback sets the Resolver used for commands with no explicit binding.
func (reg *Registry) Fallback(r Resolver) {
	reg.fallback = r
}

func (reg *Registry) Resolve(ctx context.Context, command string, input value.V) (value.V, error) {
	if r, ok := reg.byCommand[command]; ok {
		return r.Resolve(ctx, command, input)
	}
	if reg.fallback != nil {
		return reg.fallback.Resolve(ctx, command, input)
	}
	return value.Null(), fmt.Errorf("resolver: no resolver registered for command %q", command)
}
