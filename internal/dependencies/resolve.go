// Package dependencies resolves optional collaborator implementations for commands.
package dependencies

import (
	"go.uber.org/zap"

	"github.com/temirov/pagepush/internal/execshell"
	"github.com/temirov/pagepush/internal/gitrepo"
	"github.com/temirov/pagepush/internal/shared"
)

// ResolveGitExecutor returns the provided executor or constructs a shell-backed default.
//
// The optional event observer receives command lifecycle notifications from a
// newly constructed executor; it is ignored when an existing executor is supplied.
func ResolveGitExecutor(existing shared.GitExecutor, logger *zap.Logger, humanReadableLogging bool, eventObserver execshell.CommandEventObserver) (shared.GitExecutor, error) {
	if existing != nil {
		return existing, nil
	}

	commandRunner := execshell.NewOSCommandRunner()
	shellExecutor, creationError := execshell.NewShellExecutor(logger, commandRunner, humanReadableLogging)
	if creationError != nil {
		return nil, creationError
	}
	if eventObserver != nil {
		shellExecutor.RegisterCommandEventObserver(eventObserver)
	}
	return shellExecutor, nil
}

// ResolveGitRepositoryManager returns the provided repository manager or constructs one from the executor.
func ResolveGitRepositoryManager(existing shared.GitRepositoryManager, executor shared.GitExecutor) (shared.GitRepositoryManager, error) {
	if existing != nil {
		return existing, nil
	}
	return gitrepo.NewRepositoryManager(executor)
}
