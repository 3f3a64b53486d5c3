// Package cmd runs external commands with context cancellation, verbose
// logging and stderr-carrying errors.
//
// # Usage
//
//	// Quiet check, stderr only ends up in the error:
//	err := cmd.RunContext(ctx, "", "git", "show-ref", "--verify", "--quiet", "refs/heads/main")
//
//	// Captured stdout:
//	out, err := cmd.OutputContext(ctx, "", "git", "branch", "--show-current")
//
//	// Streamed to the terminal, stderr still recorded for the error:
//	err := cmd.StreamContext(ctx, "", cmd.Stdio{Out: os.Stdout, Err: os.Stderr}, "git", "pull", "origin", "main")
//
// # Design Notes
//
// mergeto shells out to the git CLI rather than reimplementing merges, so that
// the user's configuration (SSH keys, credential helpers, merge drivers,
// hooks) applies exactly as it would for a manual run.
package cmd
