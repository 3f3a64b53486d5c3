// Package mcpserver exposes the merge operations as MCP tools over stdio.
package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// NewServer creates an MCP server with the merge tools registered.
func NewServer(svc *Service, version string) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "mergeto",
		Version: version,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "merge_to_main",
		Description: "Merge a branch (default: the current branch) into the main branch (master or main). Checks out the main branch, pulls it from the remote, merges, and optionally pushes. Requires a clean working tree.",
	}, svc.MergeToMain)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "merge_to_test",
		Description: "Merge a branch (default: the current branch) into the test branch. Creates the test branch from the main branch if it does not exist and continues when it has no upstream yet. Requires a clean working tree.",
	}, svc.MergeToTest)

	return server
}

// RunStdio serves the merge tools on stdin/stdout until ctx is cancelled
// or the client disconnects.
func RunStdio(ctx context.Context, svc *Service, version string) error {
	return NewServer(svc, version).Run(ctx, &mcp.StdioTransport{})
}
