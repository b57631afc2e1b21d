package gitrepo_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/pagepush/internal/execshell"
	"github.com/temirov/pagepush/internal/gitrepo"
)

type stubGitExecutor struct {
	recordedDetails []execshell.CommandDetails
	executionResult execshell.ExecutionResult
	executionError  error
}

func (executor *stubGitExecutor) ExecuteGit(_ context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	executor.recordedDetails = append(executor.recordedDetails, details)
	if executor.executionError != nil {
		return execshell.ExecutionResult{}, executor.executionError
	}
	return executor.executionResult, nil
}

func TestNewRepositoryManagerRequiresExecutor(t *testing.T) {
	t.Parallel()

	manager, creationError := gitrepo.NewRepositoryManager(nil)

	require.Nil(t, manager)
	require.ErrorIs(t, creationError, gitrepo.ErrExecutorNotConfigured)
}

func TestCheckCleanWorktree(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name           string
		repositoryPath string
		statusOutput   string
		executionError error
		expectedClean  bool
		expectedError  error
	}{
		{
			name:           "clean_worktree",
			repositoryPath: "/workspace/site",
			statusOutput:   "",
			expectedClean:  true,
		},
		{
			name:           "whitespace_only_status_is_clean",
			repositoryPath: "/workspace/site",
			statusOutput:   "\n",
			expectedClean:  true,
		},
		{
			name:           "dirty_worktree",
			repositoryPath: "/workspace/site",
			statusOutput:   " M index.html\n?? bundle.js\n",
			expectedClean:  false,
		},
		{
			name:           "empty_repository_path",
			repositoryPath: "   ",
			expectedError:  gitrepo.ErrRepositoryPathRequired,
		},
		{
			name:           "executor_failure_propagates",
			repositoryPath: "/workspace/site",
			executionError: errors.New("git unavailable"),
			expectedError:  errors.New("git unavailable"),
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			gitExecutor := &stubGitExecutor{
				executionResult: execshell.ExecutionResult{StandardOutput: testCase.statusOutput},
				executionError:  testCase.executionError,
			}
			manager, creationError := gitrepo.NewRepositoryManager(gitExecutor)
			require.NoError(t, creationError)

			isClean, checkError := manager.CheckCleanWorktree(context.Background(), testCase.repositoryPath)
			if testCase.expectedError != nil {
				require.Error(t, checkError)
				require.EqualError(t, checkError, testCase.expectedError.Error())
				require.False(t, isClean)
				return
			}
			require.NoError(t, checkError)
			require.Equal(t, testCase.expectedClean, isClean)
		})
	}
}

func TestCheckCleanWorktreeIssuesPorcelainStatus(t *testing.T) {
	t.Parallel()

	gitExecutor := &stubGitExecutor{}
	manager, creationError := gitrepo.NewRepositoryManager(gitExecutor)
	require.NoError(t, creationError)

	_, checkError := manager.CheckCleanWorktree(context.Background(), "/workspace/site")

	require.NoError(t, checkError)
	require.Len(t, gitExecutor.recordedDetails, 1)
	require.Equal(t, []string{"status", "--porcelain"}, gitExecutor.recordedDetails[0].Arguments)
	require.Equal(t, "/workspace/site", gitExecutor.recordedDetails[0].WorkingDirectory)
}
