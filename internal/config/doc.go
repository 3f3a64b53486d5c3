// Package config loads mergeto configuration.
//
// The global file is ~/.config/mergeto/config.toml (or $MERGETO_CONFIG).
// A .mergeto.toml at the repository root overrides it for that repository.
//
//	remote = "origin"
//	test_branch = "test"
//	main_branches = ["master", "main"]  # tried in order
//	require_clean = false
//	create_test_branch = false
//	log_file = "~/.local/state/mergeto/mcp.log"  # mergeto-mcp only
//
//	[hooks.ci]
//	command = "make test"
//	description = "Run the test suite on the merged branch"
//	on = ["merge"]  # "merge", "push" or "all"; omit to run only via --hook
//
// Local hooks replace global hooks of the same name; enabled = false
// removes a global hook for that repository.
package config
