// Package git provides the git operations used by mergeto.
//
// Mutating operations go through the git CLI via a [Runner], so the user's
// git configuration (credentials, hooks, merge drivers) applies unchanged:
//
//   - [ExecRunner]: runs git with the terminal (or any writers) attached
//   - [DryRunRunner]: prints mutating commands instead of running them
//   - [Client]: typed operations ([Client.Checkout], [Client.Pull],
//     [Client.Merge], [Client.Commit], [Client.Push], [Client.BranchExists])
//
// Failures are reported as [*CommandError], carrying the args, exit code
// and git's stderr.
//
// [OpenRepo] reads the repository in-process with go-git for cheap
// lookups that do not need the CLI: the work tree root and local refs.
package git
