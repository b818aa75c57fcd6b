package resolver

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/coreyclarkphd/flowscript/internal/value"
)

// ShellResolver runs command as a shell command line, writing the current
// value as JSON on stdin and decoding stdout as the result. It models the
// shape of an external compiler invocation without reimplementing one: the
// core only cares that the collaborator is synchronous, takes JSON, and
// returns JSON (spec.md §6).
type ShellResolver struct {
	// Shell is the interpreter used to run the command line, e.g. "/bin/sh".
	Shell string
	// ShellFlag is passed before the command line, e.g. "-c".
	ShellFlag string
}

// NewShellResolver returns a ShellResolver using "/bin/sh -c".
func NewShellResolver() *ShellResolver {
	return &ShellResolver{Shell: "/bin/sh", ShellFlag: "-c"}
}

func (s *ShellResolver) Resolve(ctx context.Context, command string, input value.V) (value.V, error) {
	payload, err := input.MarshalJSON()
	if err != nil {
		return value.Null(), fmt.Errorf("resolver: encode input for %q: %w", command, err)
	}

	cmd := exec.CommandContext(ctx, s.Shell, s.ShellFlag, command)
	cmd.Stdin = bytes.NewReader(payload)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return value.Null(), fmt.Errorf("resolver: command %q failed: %w (stderr: %s)", command, err, strings.TrimSpace(stderr.String()))
	}

	out := strings.TrimSpace(stdout.String())
	if out == "" {
		return value.Null(), nil
	}
	result, err := value.Parse(out)
	if err != nil {
		return value.Null(), fmt.Errorf("resolver: decode output of %q: %w", command, err)
	}
	return result, nil
}
