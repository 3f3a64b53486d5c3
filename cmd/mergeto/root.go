package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/colorprofile"
	"github.com/spf13/cobra"

	"github.com/raphi011/mergeto/internal/git"
	"github.com/raphi011/mergeto/internal/styles"
)

// flags holds the parsed command line.
type flags struct {
	test    bool
	squash  bool
	push    bool
	message string

	dir     string
	dryRun  bool
	verbose bool
	quiet   bool
	hook    string
	noHook  bool
	args    []string
}

func newRootCmd() *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:   "mergeto [flags]",
		Short: "Merge the current branch into main or test",
		Long: `mergeto merges the current branch into the main branch (master, or main
if there is no master) or, with --test, into the test branch.

The target is checked out and pulled from origin before the merge.
With --squash the changes are committed as a single commit, using
--message or "Merge branch '<source>' into '<target>'".

Config: ~/.config/mergeto/config.toml (or $MERGETO_CONFIG), overridden
per repository by .mergeto.toml.`,
		Example: `  mergeto                         # Merge into master/main
  mergeto --test                  # Merge into the test branch
  mergeto --squash -m "feat: x"   # Squash merge with a message
  mergeto --push                  # Merge and push the target
  mergeto -n --squash             # Print the git commands only`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		FParseErrWhitelist: cobra.FParseErrWhitelist{
			UnknownFlags: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if f.verbose && f.quiet {
				return fmt.Errorf("--verbose and --quiet are mutually exclusive")
			}
			if f.hook != "" && f.noHook {
				return fmt.Errorf("--hook and --no-hook are mutually exclusive")
			}
			return git.CheckGit()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMerge(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), f)
		},
	}

	fl := cmd.Flags()
	fl.BoolVar(&f.test, "test", false, "Merge into the test branch instead of main")
	fl.BoolVar(&f.squash, "squash", false, "Squash merge into a single commit")
	fl.BoolVar(&f.push, "push", false, "Push the target branch after merging")
	fl.StringVarP(&f.message, "message", "m", "", "Commit message")
	fl.StringVarP(&f.dir, "directory", "C", "", "Run as if started in `path`")
	fl.BoolVarP(&f.dryRun, "dry-run", "n", false, "Print git commands and hooks instead of running them")
	fl.BoolVarP(&f.verbose, "verbose", "v", false, "Show git commands being executed")
	fl.BoolVarP(&f.quiet, "quiet", "q", false, "Suppress warnings and diagnostics")
	fl.StringVar(&f.hook, "hook", "", "Run only the named hook afterwards")
	fl.BoolVar(&f.noHook, "no-hook", false, "Skip all hooks")
	fl.StringSliceVarP(&f.args, "arg", "a", nil, "Set hook variable KEY=VALUE (KEY=- reads stdin)")

	cmd.Version = versionString()
	cmd.SetVersionTemplate("{{.Version}}\n")

	return cmd
}

// Execute runs mergeto and exits non-zero on failure.
func Execute() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		printError(os.Stderr, err)
		cancel()
		os.Exit(1)
	}
}

// printError reports err on w, styled when w is a terminal.
func printError(w io.Writer, err error) {
	fmt.Fprintf(colorprofile.NewWriter(w, os.Environ()), "%s Error: %v\n", styles.ErrorMark(), err)
}
