package hooks

import (
	"context"
	"fmt"
	"io"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/raphi011/mergeto/internal/cmd"
	"github.com/raphi011/mergeto/internal/config"
	"github.com/raphi011/mergeto/internal/log"
	"github.com/raphi011/mergeto/internal/output"
)

// shellQuote escapes a string for safe use in shell commands.
// It wraps the value in single quotes and escapes any embedded single quotes,
// e.g. "it's" becomes 'it'\''s'.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "'\\''") + "'"
}

// CommandType identifies which operation is triggering the hook
type CommandType string

const (
	CommandMerge CommandType = "merge"
	CommandPush  CommandType = "push"
)

// Context holds the values for placeholder substitution
type Context struct {
	Source  string            // branch that was merged
	Target  string            // branch merged into
	Remote  string            // remote pushed to
	Repo    string            // repository folder name
	Path    string            // work tree root, also the hook's working directory
	Trigger string            // operation that triggered the hook (merge, push)
	Env     map[string]string // custom variables from --arg key=value flags
	DryRun  bool              // if true, print command instead of executing
	Stderr  io.Writer         // hook stderr; nil means os.Stderr
}

// HookMatch represents a hook that matched the current operation
type HookMatch struct {
	Hook *config.Hook
	Name string
}

// SelectHooks determines which hooks to run based on config and CLI flags.
// If hookName is specified, only that hook runs, regardless of its "on" list.
// Otherwise, all hooks with matching "on" conditions run, ordered by name.
// Returns nil slice if no hooks should run, error if specified hook doesn't exist.
func SelectHooks(cfg config.HooksConfig, hookName string, noHook bool, cmdType CommandType) ([]HookMatch, error) {
	if noHook {
		return nil, nil
	}

	if hookName != "" {
		hook, exists := cfg.Hooks[hookName]
		if !exists {
			return nil, fmt.Errorf("unknown hook %q", hookName)
		}
		return []HookMatch{{Hook: &hook, Name: hookName}}, nil
	}

	return findMatchingHooks(cfg, cmdType), nil
}

// findMatchingHooks returns all hooks that have the command type in their "on" list.
// Hooks without "on" are skipped (they only run via explicit --hook=name).
func findMatchingHooks(cfg config.HooksConfig, cmdType CommandType) []HookMatch {
	var matches []HookMatch

	for name, hook := range cfg.Hooks {
		if len(hook.On) > 0 && hookMatchesCommand(hook, cmdType) {
			hookCopy := hook
			matches = append(matches, HookMatch{Hook: &hookCopy, Name: name})
		}
	}

	sort.Slice(matches, func(i, j int) bool { return matches[i].Name < matches[j].Name })
	return matches
}

// hookMatchesCommand returns true if cmdType is in the hook's "on" list.
// Special value "all" matches all command types.
func hookMatchesCommand(hook config.Hook, cmdType CommandType) bool {
	for _, on := range hook.On {
		if on == "all" || on == string(cmdType) {
			return true
		}
	}
	return false
}

// RunAllNonFatal runs all matched hooks in hctx.Path, logging failures as
// warnings instead of returning errors.
func RunAllNonFatal(ctx context.Context, matches []HookMatch, hctx Context) {
	if len(matches) == 0 {
		log.FromContext(ctx).Debug("no hooks matched", "trigger", hctx.Trigger)
		return
	}

	for _, match := range matches {
		if err := runHook(ctx, match.Name, match.Hook, hctx); err != nil {
			log.FromContext(ctx).Warn("hook %q failed: %v", match.Name, err)
		}
	}
}

// runHook executes a single hook with variable substitution.
func runHook(ctx context.Context, name string, hook *config.Hook, hctx Context) error {
	out := output.FromContext(ctx)
	command := SubstitutePlaceholders(hook.Command, hctx)

	if hctx.DryRun {
		out.Printf("[dry-run] hook %s: %s\n", name, command)
		return nil
	}

	out.Step("Running hook '%s'...", name)

	stderr := hctx.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}
	stdio := cmd.Stdio{In: os.Stdin, Out: out.Writer(), Err: stderr}
	if err := cmd.StreamContext(ctx, hctx.Path, stdio, "sh", "-c", command); err != nil {
		return err
	}

	if hook.Description != "" {
		out.Success("%s", hook.Description)
	}
	return nil
}

// ParseEnvWithStdin parses a slice of "key=value" strings into a map.
// If any value is "-", reads stdin content and assigns it to all such keys.
// Returns an error if stdin is requested but not piped or empty.
func ParseEnvWithStdin(envSlice []string) (map[string]string, error) {
	return parseEnv(envSlice, func() (string, error) { return readStdinIfPiped(os.Stdin) })
}

func parseEnv(envSlice []string, readStdin func() (string, error)) (map[string]string, error) {
	result := make(map[string]string)
	var stdinKeys []string

	for _, e := range envSlice {
		key, value, ok := strings.Cut(e, "=")
		if !ok {
			return nil, fmt.Errorf("invalid arg format %q: expected KEY=VALUE", e)
		}
		if key == "" {
			return nil, fmt.Errorf("invalid arg format %q: key cannot be empty", e)
		}
		if value == "-" {
			stdinKeys = append(stdinKeys, key)
		} else {
			result[key] = value
		}
	}

	// stdin is read once and shared by every KEY=- entry
	if len(stdinKeys) > 0 {
		content, err := readStdin()
		if err != nil {
			return nil, err
		}
		if content == "" {
			return nil, fmt.Errorf("stdin not piped: KEY=- requires piped input")
		}
		for _, key := range stdinKeys {
			result[key] = content
		}
	}

	return result, nil
}

// readStdinIfPiped reads all content from f if it's piped (not a TTY).
// Returns empty string and nil if f is a TTY (interactive).
func readStdinIfPiped(f *os.File) (string, error) {
	if isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()) {
		return "", nil
	}
	data, err := io.ReadAll(f)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}

// envPlaceholderRegex matches {key}, {key:raw}, or {key:-default}.
//   - {key}           - value is shell-quoted
//   - {key:raw}       - value is used as-is (no quoting)
//   - {key:-default}  - value is shell-quoted, uses default if key not set
var envPlaceholderRegex = regexp.MustCompile(`\{([a-zA-Z_][a-zA-Z0-9_]*)(?:(:raw)|:-([^}]*))?\}`)

// SubstitutePlaceholders replaces {placeholder} with shell-quoted values from Context.
//
// Static placeholders: {source}, {target}, {remote}, {repo}, {path}, {trigger}
// Env placeholders (from Context.Env): {key}, {key:raw}, {key:-default}
func SubstitutePlaceholders(command string, hctx Context) string {
	replacements := map[string]string{
		"{source}":  shellQuote(hctx.Source),
		"{target}":  shellQuote(hctx.Target),
		"{remote}":  shellQuote(hctx.Remote),
		"{repo}":    shellQuote(hctx.Repo),
		"{path}":    shellQuote(hctx.Path),
		"{trigger}": shellQuote(hctx.Trigger),
	}

	result := command
	for placeholder, value := range replacements {
		result = strings.ReplaceAll(result, placeholder, value)
	}

	return envPlaceholderRegex.ReplaceAllStringFunc(result, func(match string) string {
		submatch := envPlaceholderRegex.FindStringSubmatch(match)
		if submatch == nil {
			return match
		}
		key := submatch[1]
		isRaw := submatch[2] == ":raw"
		defaultVal := submatch[3]

		if val, ok := hctx.Env[key]; ok {
			if isRaw {
				return val
			}
			return shellQuote(val)
		}
		if isRaw {
			return defaultVal
		}
		return shellQuote(defaultVal)
	})
}
