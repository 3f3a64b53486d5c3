package mcpserver

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/raphi011/mergeto/internal/cmd"
	"github.com/raphi011/mergeto/internal/config"
	"github.com/raphi011/mergeto/internal/git"
	"github.com/raphi011/mergeto/internal/log"
	"github.com/raphi011/mergeto/internal/merge"
	"github.com/raphi011/mergeto/internal/output"
)

// Service holds the state shared by the MCP tool handlers.
// Tool calls are serialized: they check out branches in a shared work tree.
type Service struct {
	mu     sync.Mutex
	dir    string
	cfg    config.Config
	logger *log.Logger
}

// NewService creates a Service operating on the repository at dir unless a
// call names another one. Diagnostics go to logger.
func NewService(dir string, cfg config.Config, logger *log.Logger) *Service {
	return &Service{dir: dir, cfg: cfg, logger: logger}
}

// request is one merge, after tool-specific defaults are applied.
type request struct {
	tool     string
	repoPath string
	target   string // empty = resolve the main branch
	field    string // input name reported when target is invalid
	opts     merge.Options
}

// MergeToMain merges a branch into the main branch.
func (s *Service) MergeToMain(ctx context.Context, _ *mcp.CallToolRequest, in MergeToMainInput) (*mcp.CallToolResult, MergeOutput, error) {
	out, err := s.run(ctx, request{
		tool:     "merge_to_main",
		repoPath: in.RepoPath,
		opts: merge.Options{
			Source:       in.SourceBranch,
			Message:      in.CommitMessage,
			Squash:       in.Squash,
			Push:         in.Push,
			RequireClean: true,
		},
	})
	return nil, out, err
}

// MergeToTest merges a branch into the test branch, creating it from the
// main branch when it does not exist yet.
func (s *Service) MergeToTest(ctx context.Context, _ *mcp.CallToolRequest, in MergeToTestInput) (*mcp.CallToolResult, MergeOutput, error) {
	out, err := s.run(ctx, request{
		tool:     "merge_to_test",
		repoPath: in.RepoPath,
		target:   in.TestBranch,
		field:    "test_branch",
		opts: merge.Options{
			Source:               in.SourceBranch,
			Message:              in.CommitMessage,
			Squash:               in.Squash,
			Push:                 in.Push,
			RequireClean:         true,
			CreateMissing:        true,
			AllowMissingUpstream: true,
		},
	})
	return nil, out, err
}

func (s *Service) run(ctx context.Context, req request) (MergeOutput, error) {
	// the target reaches git as an argument, so it gets the same checks as config
	if req.target != "" {
		if err := config.ValidateName(req.target, req.field); err != nil {
			return MergeOutput{}, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	dir := req.repoPath
	if dir == "" {
		dir = s.dir
	}
	repo, err := git.OpenRepo(dir)
	if err != nil {
		return MergeOutput{}, err
	}

	cfg := s.cfg
	local, err := config.LoadLocal(repo.Root())
	if err != nil {
		s.logger.Warn("%v", err)
	} else if cfg, err = config.MergeLocal(s.cfg, local); err != nil {
		s.logger.Warn("%v", err)
	}

	if req.opts.Source == "" {
		if req.opts.Source, err = repo.HeadBranch(); err != nil {
			return MergeOutput{}, err
		}
	} else {
		ok, err := repo.HasBranch(req.opts.Source)
		if err != nil {
			return MergeOutput{}, err
		}
		if !ok {
			return MergeOutput{}, fmt.Errorf("source branch %q does not exist", req.opts.Source)
		}
	}

	// stdout is the MCP transport, so git output is captured and returned
	var captured bytes.Buffer
	runner := git.NewExecRunner(repo.Root(), cmd.Stdio{Out: &captured, Err: &captured})
	ctx = log.WithLogger(ctx, s.logger)
	ctx = output.WithPrinter(ctx, &captured)

	orch := merge.New(runner,
		merge.WithRemote(cfg.Remote),
		merge.WithMainBranches(cfg.MainBranches...),
	)

	target := req.target
	if req.tool == "merge_to_test" && target == "" {
		target = cfg.TestBranch
	}
	if target == "" {
		if target, err = orch.ResolveMainBranch(ctx); err != nil {
			return MergeOutput{}, err
		}
	}

	s.logger.Debug("tool call", "tool", req.tool, "repo", repo.Root(), "source", req.opts.Source, "target", target)

	res, err := orch.MergeToBranch(ctx, target, req.opts)
	if err != nil {
		s.logger.Printf("%s: %v\n", req.tool, err)
		return MergeOutput{}, fmt.Errorf("merge failed: %w", err)
	}

	return MergeOutput{
		Source:  res.Source,
		Target:  res.Target,
		Created: res.Created,
		Merged:  res.Merged,
		Pushed:  res.Pushed,
		Message: summary(res),
		Log:     strings.TrimSpace(captured.String()),
	}, nil
}

func summary(res merge.Result) string {
	if !res.Merged {
		msg := fmt.Sprintf("Already on '%s', nothing to merge", res.Target)
		if res.Pushed {
			msg += "; pushed"
		}
		return msg
	}
	msg := fmt.Sprintf("Merged '%s' into '%s'", res.Source, res.Target)
	if res.Created {
		msg += fmt.Sprintf(" (created '%s')", res.Target)
	}
	if res.Pushed {
		msg += " and pushed"
	}
	return msg
}
