// Package gittest provides a recording git.Runner for tests.
package gittest

import (
	"context"
	"strings"
	"sync"

	"github.com/raphi011/mergeto/internal/git"
)

// Runner records every command and answers queries from an in-memory
// repository model: the current branch and the set of local branches.
// Mutating commands succeed unless a failure was registered with Fail.
type Runner struct {
	mu       sync.Mutex
	current  string
	branches map[string]bool
	outputs  map[string]string
	failures map[string]error
	runs     [][]string
	queries  [][]string
}

// New creates a Runner on branch current with the given local branches.
// The current branch is always considered to exist.
func New(current string, branches ...string) *Runner {
	r := &Runner{
		current:  current,
		branches: map[string]bool{},
		outputs:  map[string]string{},
		failures: map[string]error{},
	}
	if current != "" {
		r.branches[current] = true
	}
	for _, b := range branches {
		r.branches[b] = true
	}
	return r
}

// SetOutput makes the query args return out.
func (r *Runner) SetOutput(out string, args ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outputs[key(args)] = out
}

// Fail makes the command args fail with a *git.CommandError.
func (r *Runner) Fail(exitCode int, stderr string, args ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failures[key(args)] = &git.CommandError{Args: args, ExitCode: exitCode, Stderr: stderr}
}

// Run records a mutating command.
func (r *Runner) Run(ctx context.Context, args ...string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runs = append(r.runs, append([]string(nil), args...))
	if err, ok := r.failures[key(args)]; ok {
		return err
	}
	r.apply(args)
	return nil
}

// Output records and answers a query.
func (r *Runner) Output(ctx context.Context, args ...string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queries = append(r.queries, append([]string(nil), args...))
	k := key(args)
	if err, ok := r.failures[k]; ok {
		return "", err
	}
	if out, ok := r.outputs[k]; ok {
		return out, nil
	}

	switch {
	case k == "branch --show-current":
		return r.current, nil
	case len(args) == 4 && args[0] == "show-ref":
		name := strings.TrimPrefix(args[3], "refs/heads/")
		if r.branches[name] {
			return "", nil
		}
		return "", &git.CommandError{Args: args, ExitCode: 1}
	}
	return "", nil
}

// apply keeps the model in sync with checkouts.
func (r *Runner) apply(args []string) {
	if len(args) == 0 || args[0] != "checkout" {
		return
	}
	switch {
	case len(args) >= 3 && args[1] == "-b":
		r.branches[args[2]] = true
		r.current = args[2]
	case len(args) == 2:
		r.current = args[1]
	}
}

// Commands returns the mutating commands in order, each joined with spaces.
func (r *Runner) Commands() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.runs))
	for i, args := range r.runs {
		out[i] = key(args)
	}
	return out
}

// Runs returns the raw args of the mutating commands.
func (r *Runner) Runs() [][]string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([][]string(nil), r.runs...)
}

// Queries returns the read-only commands in order, each joined with spaces.
func (r *Runner) Queries() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.queries))
	for i, args := range r.queries {
		out[i] = key(args)
	}
	return out
}

// Current returns the branch the model is on.
func (r *Runner) Current() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

func key(args []string) string {
	return strings.Join(args, " ")
}
