package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/raphi011/mergeto/internal/config"
	"github.com/raphi011/mergeto/internal/git"
	"github.com/raphi011/mergeto/internal/log"
	"github.com/raphi011/mergeto/internal/mcpserver"
)

// Version information - set by goreleaser
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		cancel()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		dir     string
		logFile string
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "mergeto-mcp",
		Short: "Serve mergeto's merge tools over MCP (stdio)",
		Long: `mergeto-mcp is an MCP server exposing two tools, merge_to_main and
merge_to_test, to MCP clients such as editors and agents.

It speaks MCP on stdin/stdout; diagnostics go to stderr, or to log_file
from the config (or --log-file) when set.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return git.CheckGit()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, cfgErr := config.Load()

			if logFile == "" {
				logFile = cfg.LogFile
			}
			var w io.Writer = cmd.ErrOrStderr()
			if logFile != "" {
				fw, err := log.NewFileWriter(logFile)
				if err != nil {
					return err
				}
				defer fw.Close()
				w = fw
			}
			logger := log.New(w, verbose, false)
			if cfgErr != nil {
				logger.Warn("%v", cfgErr)
			}

			if dir == "" {
				var err error
				if dir, err = os.Getwd(); err != nil {
					return fmt.Errorf("failed to get working directory: %w", err)
				}
			}

			logger.Debug("starting", "version", version, "dir", dir)
			svc := mcpserver.NewService(dir, cfg, logger)
			return mcpserver.RunStdio(cmd.Context(), svc, version)
		},
	}

	cmd.Flags().StringVarP(&dir, "directory", "C", "", "Default repository for tool calls without repo_path")
	cmd.Flags().StringVar(&logFile, "log-file", "", "Write diagnostics to `path` (rotated)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log git commands and tool calls")

	cmd.Version = fmt.Sprintf("mergeto-mcp %s (%s, %s, %s)", version, commit[:min(7, len(commit))], date, runtime.Version())
	cmd.SetVersionTemplate("{{.Version}}\n")

	return cmd
}
