package collector

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"tempwatch/internal/config"
)

// maxStderrLen bounds the stderr excerpt kept in process errors.
const maxStderrLen = 256

// Runner executes an external utility and returns its standard output.
// A launch failure or non-zero exit status is an error.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// RunnerFunc adapts a function to the Runner interface.
type RunnerFunc func(ctx context.Context, name string, args ...string) ([]byte, error)

// Run calls f.
func (f RunnerFunc) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return f(ctx, name, args...)
}

// ExecRunner runs utilities with os/exec. Cancelling ctx kills the child.
type ExecRunner struct{}

// Run implements Runner.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if len(msg) > maxStderrLen {
			msg = msg[:maxStderrLen] + "..."
		}
		if msg != "" {
			return nil, fmt.Errorf("%w: %s", err, msg)
		}
		return nil, err
	}
	return stdout.Bytes(), nil
}

// runCommand runs cc through r, applying cc.Timeout when set.
func runCommand(ctx context.Context, r Runner, cc config.CommandConfig) ([]byte, error) {
	if cc.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cc.Timeout)
		defer cancel()
	}
	return r.Run(ctx, cc.Path, cc.Args...)
}

// commandLine renders cc for error messages.
func commandLine(cc config.CommandConfig) string {
	return strings.Join(append([]string{cc.Path}, cc.Args...), " ")
}
