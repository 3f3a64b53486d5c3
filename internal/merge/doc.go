// Package merge merges the current branch into a target branch.
//
// The sequence is fixed: switch to the target, pull it from the remote,
// merge the source (optionally squashed, then committed), and optionally
// push. Every step delegates to git through a [git.Runner]; the first
// failing step aborts the run and nothing is rolled back, so a failed push
// leaves the merge committed locally.
//
// The main branch is found by probing candidates in order ("master", then
// "main") and taking the first local branch that exists.
package merge
