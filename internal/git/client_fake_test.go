package git_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/raphi011/mergeto/internal/git"
	"github.com/raphi011/mergeto/internal/git/gittest"
)

func TestClient_BranchExists(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	r := gittest.New("dev", "main")
	c := git.NewClient(r)

	if ok, err := c.BranchExists(ctx, "main"); err != nil || !ok {
		t.Errorf("BranchExists(main) = %v, %v; want true, nil", ok, err)
	}
	if ok, err := c.BranchExists(ctx, "master"); err != nil || ok {
		t.Errorf("BranchExists(master) = %v, %v; want false, nil", ok, err)
	}

	r.Fail(128, "fatal: not a git repository", "show-ref", "--verify", "--quiet", "refs/heads/test")
	if _, err := c.BranchExists(ctx, "test"); err == nil {
		t.Error("BranchExists(test) error = nil, want error for exit 128")
	}
}

func TestClient_CurrentBranch(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	got, err := git.NewClient(gittest.New("feature/y")).CurrentBranch(ctx)
	if err != nil || got != "feature/y" {
		t.Errorf("CurrentBranch() = %q, %v", got, err)
	}

	_, err = git.NewClient(gittest.New("")).CurrentBranch(ctx)
	if !errors.Is(err, git.ErrDetachedHead) {
		t.Errorf("CurrentBranch() error = %v, want ErrDetachedHead", err)
	}
}

func TestClient_Merge(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args git.MergeArgs
		want []string
	}{
		{"plain", git.MergeArgs{Source: "dev"}, []string{"merge", "dev"}},
		{"squash", git.MergeArgs{Source: "dev", Squash: true}, []string{"merge", "--squash", "dev"}},
		{"message", git.MergeArgs{Source: "dev", Message: "feat: x"}, []string{"merge", "-m", "feat: x", "dev"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := gittest.New("main", "dev")
			if err := git.NewClient(r).Merge(context.Background(), tt.args); err != nil {
				t.Fatal(err)
			}
			if got := r.Runs(); len(got) != 1 || !reflect.DeepEqual(got[0], tt.want) {
				t.Errorf("runs = %q, want [%q]", got, tt.want)
			}
		})
	}
}

func TestClient_WrapsFailures(t *testing.T) {
	t.Parallel()
	r := gittest.New("main")
	r.Fail(1, "rejected", "push", "origin", "main")

	err := git.NewClient(r).Push(context.Background(), "origin", "main")
	var cmdErr *git.CommandError
	if !errors.As(err, &cmdErr) {
		t.Fatalf("Push() error = %v, want *CommandError in chain", err)
	}
	if want := "failed to push main to origin: git push origin main failed: rejected"; err.Error() != want {
		t.Errorf("Push() error = %q, want %q", err.Error(), want)
	}
}
