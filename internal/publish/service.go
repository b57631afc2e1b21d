package publish

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/pagepush/internal/execshell"
	"github.com/temirov/pagepush/internal/shared"
)

const (
	remoteURLRequiredMessageConstant            = "remote url must be provided"
	directoryPathRequiredMessageConstant        = "publish directory must be provided"
	branchNameRequiredMessageConstant           = "branch name must be provided"
	gitExecutorMissingMessageConstant           = "git executor not configured"
	stepFailureTemplateConstant                 = "publish step %s failed: %v"
	metadataRemovalErrorTemplateConstant        = "unable to remove git metadata %s: %w"
	commitMessageTemplateConstant               = "Update %s"
	gitMetadataDirectoryNameConstant            = ".git"
	gitInitSubcommandConstant                   = "init"
	gitRemoteSubcommandConstant                 = "remote"
	gitRemoteAddVerbConstant                    = "add"
	gitStageSubcommandConstant                  = "add"
	gitStageAllPathSpecConstant                 = "."
	gitCommitSubcommandConstant                 = "commit"
	gitCommitStagedMessageFlagConstant          = "-am"
	gitBranchSubcommandConstant                 = "branch"
	gitPushSubcommandConstant                   = "push"
	gitPushUpstreamForceFlagConstant            = "-uf"
	gitTerminalPromptEnvironmentNameConstant    = "GIT_TERMINAL_PROMPT"
	gitTerminalPromptEnvironmentDisableConstant = "0"
	dryRunStepLogMessageConstant                = "Dry run: skipping publish step"
	dryRunMetadataLogMessageConstant            = "Dry run: git metadata left in place"
	metadataRemovedLogMessageConstant           = "Removed git metadata"
	publishCompletedLogMessageConstant          = "Publish completed"
	stepFieldNameConstant                       = "step"
	argumentsFieldNameConstant                  = "arguments"
	directoryFieldNameConstant                  = "directory"
	branchFieldNameConstant                     = "branch"
	metadataPathFieldNameConstant               = "metadata_path"
)

// StepName identifies one stage of the publish sequence.
type StepName string

// Publish sequence steps in execution order.
const (
	StepInitialize     StepName = "init"
	StepRegisterRemote StepName = "remote add"
	StepStage          StepName = "add"
	StepCommit         StepName = "commit"
	StepCreateBranch   StepName = "branch"
	StepPush           StepName = "push"
)

// ErrRemoteURLRequired indicates the remote URL option was empty.
var ErrRemoteURLRequired = errors.New(remoteURLRequiredMessageConstant)

// ErrDirectoryPathRequired indicates the publish directory option was empty.
var ErrDirectoryPathRequired = errors.New(directoryPathRequiredMessageConstant)

// ErrBranchNameRequired indicates the branch name option was empty.
var ErrBranchNameRequired = errors.New(branchNameRequiredMessageConstant)

// ErrGitExecutorNotConfigured indicates the git executor dependency was missing.
var ErrGitExecutorNotConfigured = errors.New(gitExecutorMissingMessageConstant)

// StepError reports the first publish step whose git invocation did not succeed.
type StepError struct {
	Step  StepName
	Cause error
}

// Error describes the failed step and its underlying cause.
func (stepError StepError) Error() string {
	return fmt.Sprintf(stepFailureTemplateConstant, stepError.Step, stepError.Cause)
}

// Unwrap exposes the underlying cause for errors.Is and errors.As inspection.
func (stepError StepError) Unwrap() error {
	return stepError.Cause
}

// Dependencies enumerates external collaborators required for publish operations.
type Dependencies struct {
	GitExecutor shared.GitExecutor
	Logger      *zap.Logger
}

// Options configures a branch publish operation.
type Options struct {
	RemoteURL     string
	DirectoryPath string
	BranchName    string
	DryRun        bool
}

// Result captures the observable outcomes of a publish.
type Result struct {
	RemoteURL     string
	DirectoryPath string
	BranchName    string
	CommitMessage string
	ExecutedSteps []StepName
}

type publishStep struct {
	name      StepName
	arguments []string
}

// Service publishes build output directories through ordered git invocations.
type Service struct {
	executor shared.GitExecutor
	logger   *zap.Logger
}

// NewService constructs a Service from the provided dependencies.
func NewService(dependencies Dependencies) (*Service, error) {
	if dependencies.GitExecutor == nil {
		return nil, ErrGitExecutorNotConfigured
	}
	logger := dependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{executor: dependencies.GitExecutor, logger: logger}, nil
}

// Publish runs the ordered git sequence against the directory and removes its
// git metadata afterwards. The directory is re-initialized from scratch, so the
// operation is destructive to the remote branch and intended for ephemeral
// build output only. Each step requires the success of every prior step; no
// rollback occurs on failure.
func (service *Service) Publish(executionContext context.Context, options Options) (Result, error) {
	trimmedRemoteURL := strings.TrimSpace(options.RemoteURL)
	if len(trimmedRemoteURL) == 0 {
		return Result{}, ErrRemoteURLRequired
	}

	trimmedDirectoryPath := strings.TrimSpace(options.DirectoryPath)
	if len(trimmedDirectoryPath) == 0 {
		return Result{}, ErrDirectoryPathRequired
	}

	trimmedBranchName := strings.TrimSpace(options.BranchName)
	if len(trimmedBranchName) == 0 {
		return Result{}, ErrBranchNameRequired
	}

	commitMessage := fmt.Sprintf(commitMessageTemplateConstant, trimmedBranchName)
	stepSequence := buildStepSequence(trimmedRemoteURL, trimmedBranchName, commitMessage)

	executedSteps := make([]StepName, 0, len(stepSequence))
	for _, step := range stepSequence {
		if options.DryRun {
			service.logger.Info(dryRunStepLogMessageConstant,
				zap.String(stepFieldNameConstant, string(step.name)),
				zap.Strings(argumentsFieldNameConstant, step.arguments),
				zap.String(directoryFieldNameConstant, trimmedDirectoryPath),
			)
			continue
		}

		if stepExecutionError := service.executeGit(executionContext, execshell.CommandDetails{
			Arguments:        step.arguments,
			WorkingDirectory: trimmedDirectoryPath,
		}); stepExecutionError != nil {
			return Result{}, StepError{Step: step.name, Cause: stepExecutionError}
		}
		executedSteps = append(executedSteps, step.name)
	}

	metadataPath := filepath.Join(trimmedDirectoryPath, gitMetadataDirectoryNameConstant)

	result := Result{
		RemoteURL:     trimmedRemoteURL,
		DirectoryPath: trimmedDirectoryPath,
		BranchName:    trimmedBranchName,
		CommitMessage: commitMessage,
		ExecutedSteps: executedSteps,
	}

	if options.DryRun {
		service.logger.Info(dryRunMetadataLogMessageConstant,
			zap.String(metadataPathFieldNameConstant, metadataPath),
		)
		return result, nil
	}

	if removalError := os.RemoveAll(metadataPath); removalError != nil {
		return Result{}, fmt.Errorf(metadataRemovalErrorTemplateConstant, metadataPath, removalError)
	}

	service.logger.Debug(metadataRemovedLogMessageConstant,
		zap.String(metadataPathFieldNameConstant, metadataPath),
	)
	service.logger.Info(publishCompletedLogMessageConstant,
		zap.String(directoryFieldNameConstant, trimmedDirectoryPath),
		zap.String(branchFieldNameConstant, trimmedBranchName),
	)

	return result, nil
}

// buildStepSequence assembles the ordered git invocations for one publish run.
func buildStepSequence(remoteURL string, branchName string, commitMessage string) []publishStep {
	return []publishStep{
		{name: StepInitialize, arguments: []string{gitInitSubcommandConstant}},
		{name: StepRegisterRemote, arguments: []string{gitRemoteSubcommandConstant, gitRemoteAddVerbConstant, shared.OriginRemoteNameConstant, remoteURL}},
		{name: StepStage, arguments: []string{gitStageSubcommandConstant, gitStageAllPathSpecConstant}},
		{name: StepCommit, arguments: []string{gitCommitSubcommandConstant, gitCommitStagedMessageFlagConstant, commitMessage}},
		{name: StepCreateBranch, arguments: []string{gitBranchSubcommandConstant, branchName}},
		{name: StepPush, arguments: []string{gitPushSubcommandConstant, gitPushUpstreamForceFlagConstant, shared.OriginRemoteNameConstant, branchName}},
	}
}

func (service *Service) executeGit(executionContext context.Context, details execshell.CommandDetails) error {
	if details.EnvironmentVariables == nil {
		details.EnvironmentVariables = map[string]string{}
	}
	details.EnvironmentVariables[gitTerminalPromptEnvironmentNameConstant] = gitTerminalPromptEnvironmentDisableConstant
	_, executionError := service.executor.ExecuteGit(executionContext, details)
	return executionError
}
