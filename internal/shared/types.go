package shared

import (
	"context"

	"github.com/temirov/pagepush/internal/execshell"
)

const (
	// OriginRemoteNameConstant identifies the upstream remote that deployments publish to.
	OriginRemoteNameConstant = "origin"

	// DefaultRepositoryRootConstant is the repository root used when none is configured.
	DefaultRepositoryRootConstant = "."

	// DefaultPublishBranchNameConstant is the branch deployments publish to by default.
	DefaultPublishBranchNameConstant = "gh-pages"

	// DefaultOutputDirectoryNameConstant is the build output directory published by default.
	DefaultOutputDirectoryNameConstant = "dist"

	// DefaultEntryFileNameConstant is the entry file rewritten ahead of publishing by default.
	DefaultEntryFileNameConstant = "index.html"
)

// ConfirmationResult captures the outcome of a user confirmation prompt.
type ConfirmationResult struct {
	Confirmed  bool
	ApplyToAll bool
}

// ConfirmationPrompter collects user confirmations prior to mutating actions.
type ConfirmationPrompter interface {
	Confirm(prompt string) (ConfirmationResult, error)
}

// GitExecutor exposes the subset of shell execution used by deployment services.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// GitRepositoryManager exposes repository-level git operations.
type GitRepositoryManager interface {
	CheckCleanWorktree(executionContext context.Context, repositoryPath string) (bool, error)
}
