package git

import (
	"errors"
	"fmt"
	"strings"

	"github.com/raphi011/mergeto/internal/cmd"
)

var (
	// ErrGitNotFound indicates git is not installed or not in PATH
	ErrGitNotFound = errors.New("git not found: please install git (https://git-scm.com)")

	// ErrNotRepository indicates the directory is not inside a git work tree
	ErrNotRepository = errors.New("not a git repository")

	// ErrDetachedHead indicates HEAD does not point at a branch
	ErrDetachedHead = errors.New("HEAD is detached: check out a branch first")
)

// CommandError is returned when a git invocation exits non-zero.
type CommandError struct {
	Args     []string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("git %s failed", strings.Join(e.Args, " "))
	if e.Stderr != "" {
		return msg + ": " + e.Stderr
	}
	if e.ExitCode >= 0 {
		return fmt.Sprintf("%s with exit code %d", msg, e.ExitCode)
	}
	return fmt.Sprintf("%s: %v", msg, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// wrapCommandError converts a process failure into a *CommandError.
// Context cancellation is passed through untouched.
func wrapCommandError(args []string, err error) error {
	if err == nil {
		return nil
	}
	var cmdErr *cmd.Error
	if !errors.As(err, &cmdErr) {
		return err
	}
	return &CommandError{
		Args:     args,
		ExitCode: cmdErr.ExitCode(),
		Stderr:   cmdErr.Stderr,
		Err:      cmdErr.Err,
	}
}

// exitCode returns the exit code of a *CommandError, or -1.
func exitCode(err error) int {
	var cmdErr *CommandError
	if errors.As(err, &cmdErr) {
		return cmdErr.ExitCode
	}
	return -1
}
