package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/raphi011/mergeto/internal/cmd"
	"github.com/raphi011/mergeto/internal/config"
	"github.com/raphi011/mergeto/internal/git"
	"github.com/raphi011/mergeto/internal/hooks"
	"github.com/raphi011/mergeto/internal/log"
	"github.com/raphi011/mergeto/internal/merge"
	"github.com/raphi011/mergeto/internal/output"
)

func runMerge(ctx context.Context, stdout, stderr io.Writer, f flags) error {
	l := log.New(stderr, f.verbose, f.quiet)
	ctx = log.WithLogger(ctx, l)
	ctx = output.WithPrinter(ctx, stdout)

	workDir := f.dir
	if workDir == "" {
		var err error
		if workDir, err = os.Getwd(); err != nil {
			return fmt.Errorf("failed to get working directory: %w", err)
		}
	}

	repo, err := git.OpenRepo(workDir)
	if err != nil {
		return err
	}
	cfg := loadConfig(l, repo.Root())

	var env map[string]string
	if len(f.args) > 0 {
		if env, err = hooks.ParseEnvWithStdin(f.args); err != nil {
			return err
		}
	}
	if f.hook != "" {
		// fail before merging rather than after
		if _, err := hooks.SelectHooks(cfg.Hooks, f.hook, false, hooks.CommandMerge); err != nil {
			return err
		}
	}

	var runner git.Runner = git.NewExecRunner(workDir, cmd.Stdio{In: os.Stdin, Out: stdout, Err: stderr})
	if f.dryRun {
		runner = &git.DryRunRunner{Inner: runner, Out: stdout}
	}
	orch := merge.New(runner,
		merge.WithRemote(cfg.Remote),
		merge.WithMainBranches(cfg.MainBranches...),
	)

	target := cfg.TestBranch
	if !f.test {
		if target, err = orch.ResolveMainBranch(ctx); err != nil {
			return err
		}
	}

	l.Debug("merging", "repo", repo.Root(), "target", target, "dryRun", f.dryRun)

	res, err := orch.MergeToBranch(ctx, target, merge.Options{
		Squash:               f.squash,
		Message:              f.message,
		Push:                 f.push,
		RequireClean:         cfg.RequireClean,
		CreateMissing:        f.test && cfg.CreateTestBranch,
		AllowMissingUpstream: f.test && cfg.CreateTestBranch,
	})
	if err != nil {
		return err
	}

	hctx := hooks.NewContext(repo, res, orch.Remote(), hooks.CommandMerge, env)
	hctx.DryRun = f.dryRun
	hctx.Stderr = stderr
	runHooks(ctx, cfg.Hooks, hctx, res, f)
	return nil
}

// loadConfig returns the global config overlaid with the repository's
// .mergeto.toml. Invalid files are warnings; defaults are used instead.
func loadConfig(l *log.Logger, repoRoot string) config.Config {
	cfg, err := config.Load()
	if err != nil {
		l.Warn("%v", err)
	}

	local, err := config.LoadLocal(repoRoot)
	if err != nil {
		l.Warn("%v", err)
		return cfg
	}
	merged, err := config.MergeLocal(cfg, local)
	if err != nil {
		l.Warn("%v", err)
	}
	return merged
}

// runHooks runs hooks for what the merge did. Failures are warnings.
func runHooks(ctx context.Context, cfg config.HooksConfig, base hooks.Context, res merge.Result, f flags) {
	if f.noHook {
		return
	}

	run := func(trigger hooks.CommandType) {
		matches, err := hooks.SelectHooks(cfg, f.hook, false, trigger)
		if err != nil {
			log.FromContext(ctx).Warn("%v", err)
			return
		}
		hctx := base
		hctx.Trigger = string(trigger)
		hooks.RunAllNonFatal(ctx, matches, hctx)
	}

	// an explicit --hook runs once, after the last operation
	if f.hook != "" {
		trigger := hooks.CommandMerge
		if res.Pushed {
			trigger = hooks.CommandPush
		}
		run(trigger)
		return
	}

	if res.Merged {
		run(hooks.CommandMerge)
	}
	if res.Pushed {
		run(hooks.CommandPush)
	}
}
