package hooks

import (
	"github.com/raphi011/mergeto/internal/git"
	"github.com/raphi011/mergeto/internal/merge"
)

// NewContext builds a Context for a finished merge in repo.
func NewContext(repo *git.Repo, res merge.Result, remote string, trigger CommandType, env map[string]string) Context {
	return Context{
		Source:  res.Source,
		Target:  res.Target,
		Remote:  remote,
		Repo:    repo.Name(),
		Path:    repo.Root(),
		Trigger: string(trigger),
		Env:     env,
	}
}
