package git

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/raphi011/mergeto/internal/cmd"
)

// Runner executes git commands. Run is used for commands that change the
// repository and may stream progress; Output is used for read-only queries.
type Runner interface {
	Run(ctx context.Context, args ...string) error
	Output(ctx context.Context, args ...string) (string, error)
}

// ExecRunner runs the git binary in Dir. Run connects git to Stdio, so
// progress, merge summaries and editor/credential prompts reach the user.
type ExecRunner struct {
	Dir   string
	Stdio cmd.Stdio
}

// NewExecRunner creates a runner for the repository at dir ("" = cwd).
func NewExecRunner(dir string, stdio cmd.Stdio) *ExecRunner {
	return &ExecRunner{Dir: dir, Stdio: stdio}
}

// Run executes a git command with stdio connected.
func (r *ExecRunner) Run(ctx context.Context, args ...string) error {
	return wrapCommandError(args, cmd.StreamContext(ctx, r.Dir, r.Stdio, "git", args...))
}

// Output executes a git command and returns its trimmed stdout.
func (r *ExecRunner) Output(ctx context.Context, args ...string) (string, error) {
	out, err := cmd.OutputContext(ctx, r.Dir, "git", args...)
	if err != nil {
		return "", wrapCommandError(args, err)
	}
	return strings.TrimSpace(string(out)), nil
}

// DryRunRunner prints mutating commands instead of running them.
// Queries still go to Inner, so branch resolution reflects the real repository.
type DryRunRunner struct {
	Inner Runner
	Out   io.Writer
}

// Run prints the command.
func (r *DryRunRunner) Run(_ context.Context, args ...string) error {
	fmt.Fprintf(r.Out, "[dry-run] %s\n", FormatCommand(args))
	return nil
}

// Output delegates to the wrapped runner.
func (r *DryRunRunner) Output(ctx context.Context, args ...string) (string, error) {
	return r.Inner.Output(ctx, args...)
}

// FormatCommand renders git args as a copy-pasteable command line.
func FormatCommand(args []string) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, "git")
	for _, a := range args {
		if a == "" || strings.ContainsAny(a, " \t\n\"'$`\\") {
			a = strconv.Quote(a)
		}
		parts = append(parts, a)
	}
	return strings.Join(parts, " ")
}
