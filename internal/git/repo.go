package git

import (
	"errors"
	"fmt"
	"path/filepath"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// Repo is an in-process, read-only view of a repository, used where
// spawning git would be wasteful: locating the work tree root and
// checking refs before any command runs.
type Repo struct {
	repo *gogit.Repository
	root string
}

// OpenRepo opens the repository enclosing dir.
// Returns ErrNotRepository if dir is not inside a work tree.
func OpenRepo(dir string) (*Repo, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}

	repo, err := gogit.PlainOpenWithOptions(abs, &gogit.PlainOpenOptions{
		DetectDotGit:          true,
		EnableDotGitCommonDir: true,
	})
	if err != nil {
		if errors.Is(err, gogit.ErrRepositoryNotExists) {
			return nil, fmt.Errorf("%w: %s", ErrNotRepository, abs)
		}
		return nil, fmt.Errorf("failed to open repository: %w", err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		// bare repositories have nothing to merge into
		return nil, fmt.Errorf("%w: %s has no work tree", ErrNotRepository, abs)
	}

	return &Repo{repo: repo, root: wt.Filesystem.Root()}, nil
}

// Root returns the work tree root directory.
func (r *Repo) Root() string {
	return r.root
}

// Name returns the work tree folder name.
func (r *Repo) Name() string {
	return filepath.Base(r.root)
}

// HasBranch reports whether the local branch exists.
func (r *Repo) HasBranch(name string) (bool, error) {
	_, err := r.repo.Reference(plumbing.NewBranchReferenceName(name), false)
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read ref for %s: %w", name, err)
	}
	return true, nil
}

// HeadBranch returns the branch HEAD points to.
// Returns ErrDetachedHead if HEAD is not a branch.
func (r *Repo) HeadBranch() (string, error) {
	ref, err := r.repo.Reference(plumbing.HEAD, false)
	if err != nil {
		return "", fmt.Errorf("failed to read HEAD: %w", err)
	}
	if ref.Type() != plumbing.SymbolicReference || !ref.Target().IsBranch() {
		return "", ErrDetachedHead
	}
	return ref.Target().Short(), nil
}
