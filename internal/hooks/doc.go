// Package hooks runs config-defined shell commands after a merge or push.
//
// # Hook Selection
//
//   - Automatic: hooks whose "on" list contains the operation ("merge",
//     "push" or "all") run after it succeeds
//   - Manual: --hook=name runs one hook regardless of "on"; --no-hook skips all
//
// Example config:
//
//	[hooks.ci]
//	command = "make test"
//	on = ["merge"]
//
//	[hooks.announce]
//	command = "notify-send 'merged {source} into {target}'"
//	# no "on" - only runs via --hook=announce
//
// # Placeholder Substitution
//
// Static placeholders, shell-quoted:
//
//   - {source}: Branch that was merged
//   - {target}: Branch merged into
//   - {remote}: Remote name
//   - {repo}: Repository folder name
//   - {path}: Work tree root
//   - {trigger}: Operation that triggered the hook (merge, push)
//
// Custom variables via --arg key=value:
//
//   - {key}: Value from --arg key=value
//   - {key:raw}: Value without quoting
//   - {key:-default}: Value with fallback if not provided
//
// Use --arg key=- to read piped stdin into a variable:
//
//	git log -1 --format=%B | mergeto --push --arg notes=-
//
// Hooks run in the work tree root. Failures are reported as warnings by
// [RunAllNonFatal] and never abort the merge.
package hooks
