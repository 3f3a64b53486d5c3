package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// LocalConfigFileName is the per-repo config file at the work tree root.
const LocalConfigFileName = ".mergeto.toml"

// LocalConfig holds per-repo overrides. Pointer fields and empty values
// mean "not set" (inherit from global).
type LocalConfig struct {
	Remote           string      `toml:"remote"`
	TestBranch       string      `toml:"test_branch"`
	MainBranches     []string    `toml:"main_branches"`
	RequireClean     *bool       `toml:"require_clean"`
	CreateTestBranch *bool       `toml:"create_test_branch"`
	Hooks            HooksConfig `toml:"-"` // merged by name into global
}

type rawLocalConfig struct {
	Remote           string         `toml:"remote"`
	TestBranch       string         `toml:"test_branch"`
	MainBranches     []string       `toml:"main_branches"`
	RequireClean     *bool          `toml:"require_clean"`
	CreateTestBranch *bool          `toml:"create_test_branch"`
	Hooks            map[string]any `toml:"hooks"`
}

// LoadLocal reads .mergeto.toml from repoRoot.
// Returns nil (no error) if the file doesn't exist.
func LoadLocal(repoRoot string) (*LocalConfig, error) {
	path := filepath.Join(repoRoot, LocalConfigFileName)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read local config %s: %w", path, err)
	}

	var raw rawLocalConfig
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse local config %s: %w", path, err)
	}

	return &LocalConfig{
		Remote:           raw.Remote,
		TestBranch:       raw.TestBranch,
		MainBranches:     raw.MainBranches,
		RequireClean:     raw.RequireClean,
		CreateTestBranch: raw.CreateTestBranch,
		Hooks:            parseHooksConfig(raw.Hooks),
	}, nil
}
