package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// EnvConfigPath overrides the config file location.
const EnvConfigPath = "MERGETO_CONFIG"

// Hook defines a command run after a merge or push
type Hook struct {
	Command     string   `toml:"command"`
	Description string   `toml:"description"`
	On          []string `toml:"on"`      // triggers this hook runs on (empty = only via --hook)
	Enabled     *bool    `toml:"enabled"` // nil = enabled; false in a local config removes a global hook
}

// IsEnabled returns true unless the hook was explicitly disabled.
func (h Hook) IsEnabled() bool {
	return h.Enabled == nil || *h.Enabled
}

// HooksConfig holds hook-related configuration
type HooksConfig struct {
	Hooks map[string]Hook `toml:"-"` // parsed from [hooks.NAME] sections
}

// Config holds the mergeto configuration
type Config struct {
	Remote           string      `toml:"remote"`
	TestBranch       string      `toml:"test_branch"`
	MainBranches     []string    `toml:"main_branches"`
	RequireClean     bool        `toml:"require_clean"`
	CreateTestBranch bool        `toml:"create_test_branch"`
	LogFile          string      `toml:"log_file"` // mergeto-mcp diagnostics; empty = stderr
	Hooks            HooksConfig `toml:"-"`        // custom parsing needed
}

// Default returns the default configuration
func Default() Config {
	return Config{
		Remote:       "origin",
		TestBranch:   "test",
		MainBranches: []string{"master", "main"},
		Hooks:        HooksConfig{Hooks: map[string]Hook{}},
	}
}

// rawConfig is used for initial TOML parsing before processing hooks
type rawConfig struct {
	Remote           string         `toml:"remote"`
	TestBranch       string         `toml:"test_branch"`
	MainBranches     []string       `toml:"main_branches"`
	RequireClean     bool           `toml:"require_clean"`
	CreateTestBranch bool           `toml:"create_test_branch"`
	LogFile          string         `toml:"log_file"`
	Hooks            map[string]any `toml:"hooks"`
}

// Path returns the config file location: $MERGETO_CONFIG or
// ~/.config/mergeto/config.toml.
func Path() (string, error) {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "mergeto", "config.toml"), nil
}

// Load reads the config from Path().
// Returns Default() if the file doesn't exist (no error).
// Returns Default() and an error if the file exists but is invalid.
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile reads the config at path. A missing file yields Default().
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("failed to read config file: %w", err)
	}

	var raw rawConfig
	if err := toml.Unmarshal(data, &raw); err != nil {
		return Default(), fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	cfg := Default()
	if raw.Remote != "" {
		cfg.Remote = raw.Remote
	}
	if raw.TestBranch != "" {
		cfg.TestBranch = raw.TestBranch
	}
	if len(raw.MainBranches) > 0 {
		cfg.MainBranches = raw.MainBranches
	}
	cfg.RequireClean = raw.RequireClean
	cfg.CreateTestBranch = raw.CreateTestBranch
	cfg.Hooks = parseHooksConfig(raw.Hooks)

	if raw.LogFile != "" {
		if err := ValidatePath(raw.LogFile, "log_file"); err != nil {
			return Default(), err
		}
		if cfg.LogFile, err = expandPath(raw.LogFile); err != nil {
			return Default(), fmt.Errorf("expand log_file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return Default(), fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks branch and remote names and hook definitions.
func (c *Config) Validate() error {
	if err := ValidateName(c.Remote, "remote"); err != nil {
		return err
	}
	if err := ValidateName(c.TestBranch, "test_branch"); err != nil {
		return err
	}
	for i, b := range c.MainBranches {
		if err := ValidateName(b, fmt.Sprintf("main_branches[%d]", i)); err != nil {
			return err
		}
	}
	for name, h := range c.Hooks.Hooks {
		if h.IsEnabled() && strings.TrimSpace(h.Command) == "" {
			return fmt.Errorf("hook %q has no command", name)
		}
		for _, on := range h.On {
			if !validTriggers[on] {
				return fmt.Errorf("hook %q: invalid trigger %q: must be \"merge\", \"push\" or \"all\"", name, on)
			}
		}
	}
	return nil
}

var validTriggers = map[string]bool{"merge": true, "push": true, "all": true}

// ValidateName rejects empty names and names git would split or misread.
func ValidateName(name, field string) error {
	if name == "" {
		return fmt.Errorf("%s must not be empty", field)
	}
	if strings.ContainsAny(name, " \t\n~^:?*[\\") || strings.HasPrefix(name, "-") {
		return fmt.Errorf("invalid %s %q", field, name)
	}
	return nil
}

// ValidatePath checks that the path is absolute or starts with ~
func ValidatePath(path, fieldName string) error {
	if path == "" {
		return nil
	}
	if path[0] == '~' {
		return nil
	}
	if !filepath.IsAbs(path) {
		return fmt.Errorf("%s must be absolute or start with ~, got: %q", fieldName, path)
	}
	return nil
}

// expandPath expands ~ to the user's home directory
func expandPath(path string) (string, error) {
	if path == "~" {
		return os.UserHomeDir()
	}
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expand ~: %w", err)
		}
		return filepath.Join(home, path[2:]), nil
	}
	return path, nil
}

// parseHooksConfig extracts HooksConfig from the raw [hooks.NAME] tables
func parseHooksConfig(raw map[string]any) HooksConfig {
	hc := HooksConfig{Hooks: make(map[string]Hook)}

	for key, value := range raw {
		hookMap, ok := value.(map[string]any)
		if !ok {
			continue
		}
		hook := Hook{}
		if cmd, ok := hookMap["command"].(string); ok {
			hook.Command = cmd
		}
		if desc, ok := hookMap["description"].(string); ok {
			hook.Description = desc
		}
		if on, ok := hookMap["on"].([]any); ok {
			for _, v := range on {
				if s, ok := v.(string); ok {
					hook.On = append(hook.On, s)
				}
			}
		}
		if enabled, ok := hookMap["enabled"].(bool); ok {
			hook.Enabled = &enabled
		}
		hc.Hooks[key] = hook
	}

	return hc
}
