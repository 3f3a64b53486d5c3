package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/raphi011/mergeto/internal/config"
	"github.com/raphi011/mergeto/internal/hooks"
	"github.com/raphi011/mergeto/internal/merge"
	"github.com/raphi011/mergeto/internal/output"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := newRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestHelpAndVersion(t *testing.T) {
	stdout, _, err := execute(t, "-h")
	if err != nil {
		t.Fatalf("-h returned %v, want nil", err)
	}
	if !strings.Contains(stdout, "mergeto [flags]") || !strings.Contains(stdout, "--squash") {
		t.Errorf("help output = %q", stdout)
	}

	stdout, _, err = execute(t, "--version")
	if err != nil {
		t.Fatalf("--version returned %v", err)
	}
	if !strings.HasPrefix(stdout, "mergeto dev") {
		t.Errorf("version output = %q", stdout)
	}
}

func TestVerboseQuietExclusive(t *testing.T) {
	_, _, err := execute(t, "-v", "-q")
	if err == nil || !strings.Contains(err.Error(), "mutually exclusive") {
		t.Errorf("error = %v, want mutually exclusive", err)
	}
}

// A bytes.Buffer is not a terminal, so the mark comes out without escapes.
func TestPrintError(t *testing.T) {
	var buf bytes.Buffer
	printError(&buf, errors.New("no main branch found"))
	if got, want := buf.String(), "✗ Error: no main branch found\n"; got != want {
		t.Errorf("printError wrote %q, want %q", got, want)
	}
}

func TestRunHooks(t *testing.T) {
	cfg := config.HooksConfig{Hooks: map[string]config.Hook{
		"record": {Command: "echo {trigger} {remote} >> hooks.txt; echo {trigger} >&2", On: []string{"all"}},
	}}

	tests := []struct {
		name    string
		res     merge.Result
		f       flags
		want    string
		wantErr string
	}{
		{"merge only", merge.Result{Merged: true}, flags{}, "merge upstream\n", "merge\n"},
		{"merge and push", merge.Result{Merged: true, Pushed: true}, flags{}, "merge upstream\npush upstream\n", "merge\npush\n"},
		{"push only", merge.Result{Pushed: true}, flags{}, "push upstream\n", "push\n"},
		{"explicit hook runs once", merge.Result{Merged: true, Pushed: true}, flags{hook: "record"}, "push upstream\n", "push\n"},
		{"no hook", merge.Result{Merged: true}, flags{noHook: true}, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			var stdout, hookErr bytes.Buffer
			ctx := output.WithPrinter(context.Background(), &stdout)
			base := hooks.Context{Remote: "upstream", Path: dir, Stderr: &hookErr}

			runHooks(ctx, cfg, base, tt.res, tt.f)

			data, err := os.ReadFile(filepath.Join(dir, "hooks.txt"))
			if err != nil && !errors.Is(err, os.ErrNotExist) {
				t.Fatal(err)
			}
			if got := string(data); got != tt.want {
				t.Errorf("hooks.txt = %q, want %q", got, tt.want)
			}
			if got := hookErr.String(); got != tt.wantErr {
				t.Errorf("hook stderr = %q, want %q", got, tt.wantErr)
			}
			if ran := strings.Contains(stdout.String(), "Running hook 'record'"); ran != (tt.want != "") {
				t.Errorf("stdout = %q", stdout.String())
			}
		})
	}
}
