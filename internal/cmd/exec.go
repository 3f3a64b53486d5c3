package cmd

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/raphi011/mergeto/internal/log"
)

// Error is returned when a command exits unsuccessfully.
// Its message is the command's stderr when there was any.
type Error struct {
	Stderr string
	Err    error
}

func (e *Error) Error() string {
	if e.Stderr != "" {
		return e.Stderr
	}
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ExitCode returns the process exit code, or -1 if the process never ran.
func (e *Error) ExitCode() int {
	var exitErr *exec.ExitError
	if errors.As(e.Err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}

// Stdio connects a command to the caller's streams. Nil fields are not connected.
type Stdio struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// RunContext executes a command, discarding stdout.
func RunContext(ctx context.Context, dir, name string, args ...string) error {
	return run(ctx, dir, Stdio{}, nil, name, args...)
}

// OutputContext executes a command and returns its stdout.
func OutputContext(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	var stdout bytes.Buffer
	if err := run(ctx, dir, Stdio{}, &stdout, name, args...); err != nil {
		return nil, err
	}
	return stdout.Bytes(), nil
}

// StreamContext executes a command with its output connected to stdio.
// A file (e.g. the terminal) is handed to the child as is, so it can show
// progress; other writers are teed and a failure carries the stderr text.
func StreamContext(ctx context.Context, dir string, stdio Stdio, name string, args ...string) error {
	return run(ctx, dir, stdio, stdio.Out, name, args...)
}

func run(ctx context.Context, dir string, stdio Stdio, stdout io.Writer, name string, args ...string) error {
	done := log.FromContext(ctx).Command(dir, name, args...)
	start := time.Now()
	defer func() { done(time.Since(start)) }()

	c := exec.CommandContext(ctx, name, args...)
	c.Dir = dir
	c.Stdin = stdio.In
	c.Stdout = stdout

	var stderr bytes.Buffer
	switch w := stdio.Err.(type) {
	case nil:
		c.Stderr = &stderr
	case *os.File:
		c.Stderr = w
	default:
		c.Stderr = io.MultiWriter(w, &stderr)
	}

	if err := c.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return &Error{Stderr: strings.TrimSpace(stderr.String()), Err: err}
	}
	return nil
}
