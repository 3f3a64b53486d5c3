package merge

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/raphi011/mergeto/internal/git"
	"github.com/raphi011/mergeto/internal/log"
	"github.com/raphi011/mergeto/internal/output"
	"github.com/raphi011/mergeto/internal/styles"
)

// Defaults used when no configuration overrides them.
const (
	DefaultRemote     = "origin"
	DefaultTestBranch = "test"
)

// DefaultMainBranches are tried in order by ResolveMainBranch.
var DefaultMainBranches = []string{"master", "main"}

var (
	// ErrNoMainBranch indicates none of the main branch candidates exists locally
	ErrNoMainBranch = errors.New("no main branch found")

	// ErrDirtyWorktree indicates uncommitted changes when a clean tree is required
	ErrDirtyWorktree = errors.New("working tree has uncommitted changes: commit or stash them first")
)

// Options controls a single merge.
type Options struct {
	Squash  bool
	Message string // merge or squash commit message; empty uses a default
	Push    bool

	// Source overrides the branch to merge; empty means the current branch.
	Source string
	// RequireClean refuses to start with uncommitted changes.
	RequireClean bool
	// CreateMissing creates the target from the main branch if it does not exist.
	CreateMissing bool
	// AllowMissingUpstream turns a failed pull of the target into a warning.
	AllowMissingUpstream bool
}

// Result describes what a merge did.
type Result struct {
	Source  string `json:"source"`
	Target  string `json:"target"`
	Created bool   `json:"created,omitempty"`
	Merged  bool   `json:"merged"`
	Pushed  bool   `json:"pushed"`
}

// Orchestrator runs the merge sequence against a repository.
type Orchestrator struct {
	git          *git.Client
	remote       string
	mainBranches []string
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithRemote sets the remote to pull from and push to.
func WithRemote(remote string) Option {
	return func(o *Orchestrator) {
		if remote != "" {
			o.remote = remote
		}
	}
}

// WithMainBranches sets the main branch candidates, in order of preference.
func WithMainBranches(names ...string) Option {
	return func(o *Orchestrator) {
		if len(names) > 0 {
			o.mainBranches = names
		}
	}
}

// New creates an Orchestrator running git through r.
func New(r git.Runner, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		git:          git.NewClient(r),
		remote:       DefaultRemote,
		mainBranches: DefaultMainBranches,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Remote returns the remote used for pull and push.
func (o *Orchestrator) Remote() string {
	return o.remote
}

// DefaultMessage is the commit message for a squash merge without -m.
func DefaultMessage(source, target string) string {
	return fmt.Sprintf("Merge branch '%s' into '%s'", source, target)
}

// ResolveMainBranch returns the first main branch candidate that exists locally.
func (o *Orchestrator) ResolveMainBranch(ctx context.Context) (string, error) {
	for _, name := range o.mainBranches {
		ok, err := o.git.BranchExists(ctx, name)
		if err != nil {
			return "", err
		}
		if ok {
			log.FromContext(ctx).Debug("resolved main branch", "branch", name)
			return name, nil
		}
	}
	return "", fmt.Errorf("%w (tried %s)", ErrNoMainBranch, strings.Join(o.mainBranches, ", "))
}

// CurrentBranch returns the checked-out branch.
func (o *Orchestrator) CurrentBranch(ctx context.Context) (string, error) {
	return o.git.CurrentBranch(ctx)
}

// MergeToBranch merges the source branch into target.
//
// When source and target are the same branch nothing is merged, but the
// target is still pushed if opts.Push is set.
func (o *Orchestrator) MergeToBranch(ctx context.Context, target string, opts Options) (Result, error) {
	l := log.FromContext(ctx)
	out := output.FromContext(ctx)

	source := opts.Source
	if source == "" {
		var err error
		if source, err = o.git.CurrentBranch(ctx); err != nil {
			return Result{}, err
		}
	}
	res := Result{Source: source, Target: target}
	l.Debug("merge", "source", source, "target", target, "squash", opts.Squash, "push", opts.Push)

	if source == target {
		out.Skip("Already on target branch %s, nothing to merge", styles.Branch(target))
		if opts.Push {
			if err := o.PushToRemote(ctx, target); err != nil {
				return res, err
			}
			res.Pushed = true
		}
		return res, nil
	}

	if opts.RequireClean {
		dirty, err := o.git.IsDirty(ctx)
		if err != nil {
			return res, err
		}
		if dirty {
			return res, ErrDirtyWorktree
		}
	}

	if opts.CreateMissing {
		created, err := o.ensureBranch(ctx, target)
		if err != nil {
			return res, err
		}
		res.Created = created
	}

	if !res.Created {
		if err := o.git.Checkout(ctx, target); err != nil {
			return res, err
		}
	}

	if err := o.git.Pull(ctx, o.remote, target); err != nil {
		if !opts.AllowMissingUpstream {
			return res, err
		}
		l.Warn("%v (continuing without upstream)", err)
	}

	if err := o.merge(ctx, source, target, opts); err != nil {
		return res, err
	}
	res.Merged = true
	out.Success("Merged '%s' into '%s'", styles.Branch(source), styles.Branch(target))

	if opts.Push {
		if err := o.PushToRemote(ctx, target); err != nil {
			return res, err
		}
		res.Pushed = true
	}
	return res, nil
}

// merge runs git merge and, for squash merges, the follow-up commit.
func (o *Orchestrator) merge(ctx context.Context, source, target string, opts Options) error {
	if !opts.Squash {
		return o.git.Merge(ctx, git.MergeArgs{Source: source, Message: opts.Message})
	}

	if err := o.git.Merge(ctx, git.MergeArgs{Source: source, Squash: true}); err != nil {
		return err
	}
	msg := opts.Message
	if msg == "" {
		msg = DefaultMessage(source, target)
	}
	return o.git.Commit(ctx, msg)
}

// ensureBranch creates target from the main branch if it does not exist.
// Reports whether it was created (and is now checked out).
func (o *Orchestrator) ensureBranch(ctx context.Context, target string) (bool, error) {
	exists, err := o.git.BranchExists(ctx, target)
	if err != nil || exists {
		return false, err
	}

	base, err := o.ResolveMainBranch(ctx)
	if err != nil {
		return false, fmt.Errorf("cannot create %s: %w", target, err)
	}
	output.FromContext(ctx).Step("Creating branch %s from %s", styles.Branch(target), styles.Branch(base))
	if err := o.git.CreateBranch(ctx, target, base); err != nil {
		return false, err
	}
	return true, nil
}

// PushToRemote pushes branch to the configured remote.
func (o *Orchestrator) PushToRemote(ctx context.Context, branch string) error {
	out := output.FromContext(ctx)
	out.Step("Pushing %s to %s...", styles.Branch(branch), o.remote)
	if err := o.git.Push(ctx, o.remote, branch); err != nil {
		return err
	}
	out.Success("Pushed %s to %s", styles.Branch(branch), o.remote)
	return nil
}
