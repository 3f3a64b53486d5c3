package mcpserver

// MergeToMainInput is the input for the merge_to_main MCP tool.
type MergeToMainInput struct {
	SourceBranch  string `json:"source_branch,omitempty" jsonschema:"branch to merge (default: the current branch)"`
	CommitMessage string `json:"commit_message,omitempty" jsonschema:"merge or squash commit message"`
	Squash        bool   `json:"squash,omitempty" jsonschema:"squash the source branch into a single commit"`
	Push          bool   `json:"push,omitempty" jsonschema:"push the main branch to the remote after merging"`
	RepoPath      string `json:"repo_path,omitempty" jsonschema:"path inside the repository (default: the server's working directory)"`
}

// MergeToTestInput is the input for the merge_to_test MCP tool.
type MergeToTestInput struct {
	SourceBranch  string `json:"source_branch,omitempty" jsonschema:"branch to merge (default: the current branch)"`
	TestBranch    string `json:"test_branch,omitempty" jsonschema:"test branch name (default: test)"`
	CommitMessage string `json:"commit_message,omitempty" jsonschema:"merge or squash commit message"`
	Squash        bool   `json:"squash,omitempty" jsonschema:"squash the source branch into a single commit"`
	Push          bool   `json:"push,omitempty" jsonschema:"push the test branch to the remote after merging"`
	RepoPath      string `json:"repo_path,omitempty" jsonschema:"path inside the repository (default: the server's working directory)"`
}

// MergeOutput is the result of both merge tools.
type MergeOutput struct {
	Source  string `json:"source"`
	Target  string `json:"target"`
	Created bool   `json:"created"`
	Merged  bool   `json:"merged"`
	Pushed  bool   `json:"pushed"`
	Message string `json:"message"`
	Log     string `json:"log,omitempty" jsonschema:"captured git and progress output"`
}
