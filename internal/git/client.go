package git

import (
	"context"
	"fmt"
)

// Client provides the git operations mergeto needs on top of a Runner.
type Client struct {
	runner Runner
}

// NewClient creates a Client.
func NewClient(r Runner) *Client {
	return &Client{runner: r}
}

// CurrentBranch returns the checked-out branch name.
// Returns ErrDetachedHead when HEAD is not on a branch.
func (c *Client) CurrentBranch(ctx context.Context) (string, error) {
	branch, err := c.runner.Output(ctx, "branch", "--show-current")
	if err != nil {
		return "", fmt.Errorf("failed to get current branch: %w", err)
	}
	if branch == "" {
		return "", ErrDetachedHead
	}
	return branch, nil
}

// BranchExists reports whether refs/heads/<name> exists.
// A missing ref is not an error; any other git failure is.
func (c *Client) BranchExists(ctx context.Context, name string) (bool, error) {
	_, err := c.runner.Output(ctx, "show-ref", "--verify", "--quiet", "refs/heads/"+name)
	if err == nil {
		return true, nil
	}
	if exitCode(err) == 1 {
		return false, nil
	}
	return false, fmt.Errorf("failed to check branch %s: %w", name, err)
}

// IsDirty returns true if the work tree has uncommitted changes or untracked files.
func (c *Client) IsDirty(ctx context.Context) (bool, error) {
	status, err := c.runner.Output(ctx, "status", "--porcelain")
	if err != nil {
		return false, fmt.Errorf("failed to get status: %w", err)
	}
	return status != "", nil
}

// Checkout switches to branch.
func (c *Client) Checkout(ctx context.Context, branch string) error {
	if err := c.runner.Run(ctx, "checkout", branch); err != nil {
		return fmt.Errorf("failed to checkout %s: %w", branch, err)
	}
	return nil
}

// CreateBranch creates branch from start and checks it out.
func (c *Client) CreateBranch(ctx context.Context, branch, start string) error {
	if err := c.runner.Run(ctx, "checkout", "-b", branch, start); err != nil {
		return fmt.Errorf("failed to create %s from %s: %w", branch, start, err)
	}
	return nil
}

// Pull pulls branch from remote into the current branch.
func (c *Client) Pull(ctx context.Context, remote, branch string) error {
	if err := c.runner.Run(ctx, "pull", remote, branch); err != nil {
		return fmt.Errorf("failed to pull %s/%s: %w", remote, branch, err)
	}
	return nil
}

// MergeArgs describes a git merge invocation.
type MergeArgs struct {
	Source  string
	Squash  bool
	Message string // passed as -m when non-empty
}

// Merge merges Source into the current branch.
func (c *Client) Merge(ctx context.Context, m MergeArgs) error {
	args := []string{"merge"}
	if m.Squash {
		args = append(args, "--squash")
	}
	if m.Message != "" {
		args = append(args, "-m", m.Message)
	}
	args = append(args, m.Source)

	if err := c.runner.Run(ctx, args...); err != nil {
		return fmt.Errorf("failed to merge %s: %w", m.Source, err)
	}
	return nil
}

// Commit commits the staged changes with message.
func (c *Client) Commit(ctx context.Context, message string) error {
	if err := c.runner.Run(ctx, "commit", "-m", message); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

// Push pushes branch to remote.
func (c *Client) Push(ctx context.Context, remote, branch string) error {
	if err := c.runner.Run(ctx, "push", remote, branch); err != nil {
		return fmt.Errorf("failed to push %s to %s: %w", branch, remote, err)
	}
	return nil
}
