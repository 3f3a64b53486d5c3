package config

import (
	"fmt"
	"maps"
)

// MergeLocal overlays a per-repo config onto the global one and validates
// the result. The global config is not mutated. A nil local returns global.
func MergeLocal(global Config, local *LocalConfig) (Config, error) {
	if local == nil {
		return global, nil
	}

	merged := global
	if local.Remote != "" {
		merged.Remote = local.Remote
	}
	if local.TestBranch != "" {
		merged.TestBranch = local.TestBranch
	}
	if len(local.MainBranches) > 0 {
		merged.MainBranches = local.MainBranches
	}
	if local.RequireClean != nil {
		merged.RequireClean = *local.RequireClean
	}
	if local.CreateTestBranch != nil {
		merged.CreateTestBranch = *local.CreateTestBranch
	}
	merged.Hooks = mergeHooks(global.Hooks, local.Hooks)

	if err := merged.Validate(); err != nil {
		return global, fmt.Errorf("%s: %w", LocalConfigFileName, err)
	}
	return merged, nil
}

// mergeHooks merges local hooks into global hooks by name.
// A local hook with enabled = false removes the global one.
func mergeHooks(global, local HooksConfig) HooksConfig {
	merged := HooksConfig{Hooks: make(map[string]Hook, len(global.Hooks))}
	maps.Copy(merged.Hooks, global.Hooks)

	for name, hook := range local.Hooks {
		if !hook.IsEnabled() {
			delete(merged.Hooks, name)
			continue
		}
		merged.Hooks[name] = hook
	}
	return merged
}
