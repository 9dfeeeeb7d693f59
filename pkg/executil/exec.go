// Package executil provides process execution utilities.
package executil

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// Executor runs external commands.
type Executor interface {
	// RunPipe executes cmd in dir with stdin attached and returns its stdout.
	// Stderr is folded into the returned error when the command fails.
	RunPipe(ctx context.Context, dir string, stdin io.Reader, cmd string, args ...string) ([]byte, error)
}

// RealExecutor calls actual processes.
type RealExecutor struct{}

// RunPipe executes cmd in dir with stdin attached and returns its stdout.
func (e *RealExecutor) RunPipe(ctx context.Context, dir string, stdin io.Reader, cmd string, args ...string) ([]byte, error) {
	var stdout, stderr bytes.Buffer

	c := exec.CommandContext(ctx, cmd, args...)
	c.Dir = dir
	c.Stdin = stdin
	c.Stdout = &stdout
	c.Stderr = &stderr
	setProcAttr(c)

	if err := c.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return stdout.Bytes(), fmt.Errorf("exec %s: %w", cmd, err)
		}
		return stdout.Bytes(), fmt.Errorf("exec %s: %w: %s", cmd, err, msg)
	}

	return stdout.Bytes(), nil
}
