package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	t.Parallel()

	cfg := Default()
	if cfg.Remote != "origin" {
		t.Errorf("Remote = %q, want origin", cfg.Remote)
	}
	if cfg.TestBranch != "test" {
		t.Errorf("TestBranch = %q, want test", cfg.TestBranch)
	}
	if want := []string{"master", "main"}; !reflect.DeepEqual(cfg.MainBranches, want) {
		t.Errorf("MainBranches = %v, want %v", cfg.MainBranches, want)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default().Validate() = %v", err)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	t.Parallel()

	cfg, err := LoadFile(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadFile = %v, want nil", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Errorf("LoadFile = %+v, want defaults", cfg)
	}
}

func TestLoadFile_AllFields(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
remote = "upstream"
test_branch = "staging"
main_branches = ["trunk"]
require_clean = true
create_test_branch = true
log_file = "/var/log/mergeto.log"

[hooks.ci]
command = "make test"
description = "Run tests"
on = ["merge"]
`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile = %v", err)
	}
	if cfg.Remote != "upstream" || cfg.TestBranch != "staging" {
		t.Errorf("Remote/TestBranch = %q/%q", cfg.Remote, cfg.TestBranch)
	}
	if !reflect.DeepEqual(cfg.MainBranches, []string{"trunk"}) {
		t.Errorf("MainBranches = %v", cfg.MainBranches)
	}
	if !cfg.RequireClean || !cfg.CreateTestBranch {
		t.Errorf("RequireClean/CreateTestBranch = %v/%v, want true/true", cfg.RequireClean, cfg.CreateTestBranch)
	}
	if cfg.LogFile != "/var/log/mergeto.log" {
		t.Errorf("LogFile = %q", cfg.LogFile)
	}
	hook, ok := cfg.Hooks.Hooks["ci"]
	if !ok {
		t.Fatal("hook ci not parsed")
	}
	if hook.Command != "make test" || !reflect.DeepEqual(hook.On, []string{"merge"}) {
		t.Errorf("hook = %+v", hook)
	}
}

func TestLoadFile_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"invalid toml", "remote = ", "failed to parse"},
		{"relative log file", `log_file = "logs/mcp.log"`, "log_file must be absolute"},
		{"remote with space", `remote = "my origin"`, "invalid remote"},
		{"branch starting with dash", `main_branches = ["-main"]`, "invalid main_branches[0]"},
		{"hook without command", "[hooks.ci]\ndescription = \"x\"", `hook "ci" has no command`},
		{"bad trigger", "[hooks.ci]\ncommand = \"true\"\non = [\"open\"]", `invalid trigger "open"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg, err := LoadFile(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("LoadFile = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want to contain %q", err.Error(), tt.wantErr)
			}
			if !reflect.DeepEqual(cfg, Default()) {
				t.Errorf("config on error = %+v, want defaults", cfg)
			}
		})
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	path := writeConfig(t, `test_branch = "qa"`)
	t.Setenv(EnvConfigPath, path)

	got, err := Path()
	if err != nil || got != path {
		t.Fatalf("Path() = %q, %v; want %q", got, err, path)
	}
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load = %v", err)
	}
	if cfg.TestBranch != "qa" {
		t.Errorf("TestBranch = %q, want qa", cfg.TestBranch)
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	tests := []struct {
		in, want string
	}{
		{"~", home},
		{"~/logs/mcp.log", filepath.Join(home, "logs/mcp.log")},
		{"/abs/path", "/abs/path"},
	}
	for _, tt := range tests {
		got, err := expandPath(tt.in)
		if err != nil {
			t.Fatalf("expandPath(%q) = %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("expandPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseHooksConfig(t *testing.T) {
	t.Parallel()

	disabled := false
	tests := []struct {
		name     string
		raw      map[string]any
		expected HooksConfig
	}{
		{
			name: "full hooks config",
			raw: map[string]any{
				"ci": map[string]any{
					"command":     "make test",
					"description": "Run tests",
					"on":          []any{"merge", "push"},
				},
				"notify": map[string]any{
					"command": "notify-send {target}",
				},
			},
			expected: HooksConfig{Hooks: map[string]Hook{
				"ci":     {Command: "make test", Description: "Run tests", On: []string{"merge", "push"}},
				"notify": {Command: "notify-send {target}"},
			}},
		},
		{
			name: "enabled false",
			raw: map[string]any{
				"ci": map[string]any{"enabled": false},
			},
			expected: HooksConfig{Hooks: map[string]Hook{
				"ci": {Enabled: &disabled},
			}},
		},
		{
			name:     "non-table entries ignored",
			raw:      map[string]any{"stray": "value"},
			expected: HooksConfig{Hooks: map[string]Hook{}},
		},
		{
			name:     "nil",
			raw:      nil,
			expected: HooksConfig{Hooks: map[string]Hook{}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := parseHooksConfig(tt.raw)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("parseHooksConfig() = %+v, want %+v", got, tt.expected)
			}
		})
	}
}

func TestHookIsEnabled(t *testing.T) {
	t.Parallel()

	yes, no := true, false
	tests := []struct {
		name    string
		enabled *bool
		want    bool
	}{
		{"nil", nil, true},
		{"true", &yes, true},
		{"false", &no, false},
	}
	for _, tt := range tests {
		if got := (Hook{Enabled: tt.enabled}).IsEnabled(); got != tt.want {
			t.Errorf("%s: IsEnabled() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestValidateName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		wantErr string
	}{
		{"test", ""},
		{"release/1.2", ""},
		{"", "test_branch must not be empty"},
		{"-q", `invalid test_branch "-q"`},
		{"--force", `invalid test_branch "--force"`},
		{"a b", `invalid test_branch "a b"`},
		{"main~1", `invalid test_branch "main~1"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateName(tt.name, "test_branch")
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("ValidateName(%q) = %v, want nil", tt.name, err)
				}
				return
			}
			if err == nil || err.Error() != tt.wantErr {
				t.Errorf("ValidateName(%q) = %v, want %q", tt.name, err, tt.wantErr)
			}
		})
	}
}
