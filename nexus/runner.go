package nexus

import (
	"context"
	"fmt"
	"os/exec"
)

// DefaultBinary is the nexus CLI executable name.
const DefaultBinary = "nexus"

// Runner executes one nexus CLI invocation and returns its stdout.
// Implementations decide where the binary actually runs: the local machine,
// a remote host, or a fake in tests.
type Runner interface {
	Run(ctx context.Context, args ...string) ([]byte, error)
}

// LocalRunner invokes the nexus binary on the local machine.
type LocalRunner struct {
	// Binary is the executable to run. Empty means DefaultBinary.
	Binary string
}

func (r *LocalRunner) binary() string {
	if r.Binary == "" {
		return DefaultBinary
	}
	return r.Binary
}

// Run executes the binary with the given arguments and returns its stdout.
func (r *LocalRunner) Run(ctx context.Context, args ...string) ([]byte, error) {
	out, err := exec.CommandContext(ctx, r.binary(), args...).Output()
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", r.binary(), err)
	}
	return out, nil
}

// Installed reports whether the binary resolves on PATH.
func (r *LocalRunner) Installed() bool {
	_, err := exec.LookPath(r.binary())
	return err == nil
}

// Ensure LocalRunner implements Runner.
var _ Runner = (*LocalRunner)(nil)
