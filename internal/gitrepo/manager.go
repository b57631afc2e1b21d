package gitrepo

import (
	"context"
	"errors"
	"strings"

	"github.com/temirov/pagepush/internal/execshell"
	"github.com/temirov/pagepush/internal/shared"
)

const (
	requiredValueMessageConstant            = "value required"
	executorNotConfiguredMessageConstant    = "git executor not configured"
	repositoryPathRequiredMessageConstant   = "repository path required"
	gitStatusSubcommandConstant             = "status"
	gitStatusPorcelainFlagConstant          = "--porcelain"
)

// ErrExecutorNotConfigured indicates the manager was constructed without a git executor.
var ErrExecutorNotConfigured = errors.New(executorNotConfiguredMessageConstant)

// ErrRepositoryPathRequired indicates an operation received an empty repository path.
var ErrRepositoryPathRequired = errors.New(repositoryPathRequiredMessageConstant)

// RepositoryManager performs repository-level git operations through a shell executor.
type RepositoryManager struct {
	gitExecutor shared.GitExecutor
}

// NewRepositoryManager constructs a RepositoryManager after validating the executor.
func NewRepositoryManager(gitExecutor shared.GitExecutor) (*RepositoryManager, error) {
	if gitExecutor == nil {
		return nil, ErrExecutorNotConfigured
	}
	return &RepositoryManager{gitExecutor: gitExecutor}, nil
}

// CheckCleanWorktree reports whether the repository at the provided path has no pending changes.
func (manager *RepositoryManager) CheckCleanWorktree(executionContext context.Context, repositoryPath string) (bool, error) {
	trimmedRepositoryPath := strings.TrimSpace(repositoryPath)
	if len(trimmedRepositoryPath) == 0 {
		return false, ErrRepositoryPathRequired
	}

	executionResult, executionError := manager.gitExecutor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitStatusSubcommandConstant, gitStatusPorcelainFlagConstant},
		WorkingDirectory: trimmedRepositoryPath,
	})
	if executionError != nil {
		return false, executionError
	}

	return len(strings.TrimSpace(executionResult.StandardOutput)) == 0, nil
}
