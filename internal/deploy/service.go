package deploy

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/pagepush/internal/gitrepo"
	"github.com/temirov/pagepush/internal/publish"
	"github.com/temirov/pagepush/internal/rewrite"
	"github.com/temirov/pagepush/internal/shared"
	pathutils "github.com/temirov/pagepush/internal/utils/path"
)

const (
	repositoryRootRequiredMessageConstant    = "repository root must be provided"
	branchNameRequiredMessageConstant        = "branch name must be provided"
	outputDirectoryRequiredMessageConstant   = "output directory must be provided"
	entryFileNameRequiredMessageConstant     = "entry file name must be provided"
	outputIsRepositoryRootMessageConstant    = "output directory resolves to the repository root"
	worktreeNotCleanMessageConstant          = "repository worktree has uncommitted changes"
	rewriterMissingMessageConstant           = "asset rewriter not configured"
	publisherMissingMessageConstant          = "branch publisher not configured"
	repositoryManagerMissingMessageConstant  = "repository manager not configured"
	worktreeStatusErrorTemplateConstant      = "unable to verify worktree status for %s: %w"
	pipelineStartedLogMessageConstant        = "Deploy pipeline starting"
	rewriteStageSkippedLogMessageConstant    = "Rewrite stage skipped"
	pipelineCompletedLogMessageConstant      = "Deploy completed"
	repositoryRootFieldNameConstant          = "repository_root"
	remoteURLFieldNameConstant               = "remote_url"
	repositoryNameFieldNameConstant          = "repository_name"
	branchFieldNameConstant                  = "branch"
	outputDirectoryFieldNameConstant         = "output_directory"
)

// ErrRepositoryRootRequired indicates the repository root option was empty.
var ErrRepositoryRootRequired = errors.New(repositoryRootRequiredMessageConstant)

// ErrBranchNameRequired indicates the branch name option was empty.
var ErrBranchNameRequired = errors.New(branchNameRequiredMessageConstant)

// ErrOutputDirectoryRequired indicates the output directory option was empty.
var ErrOutputDirectoryRequired = errors.New(outputDirectoryRequiredMessageConstant)

// ErrEntryFileNameRequired indicates the entry file option was empty while the rewrite stage was enabled.
var ErrEntryFileNameRequired = errors.New(entryFileNameRequiredMessageConstant)

// ErrOutputIsRepositoryRoot indicates the resolved output directory and repository root coincide.
var ErrOutputIsRepositoryRoot = errors.New(outputIsRepositoryRootMessageConstant)

// ErrWorktreeNotClean indicates the clean-worktree requirement was not met.
var ErrWorktreeNotClean = errors.New(worktreeNotCleanMessageConstant)

// ErrRewriterNotConfigured indicates the asset rewriter dependency was missing.
var ErrRewriterNotConfigured = errors.New(rewriterMissingMessageConstant)

// ErrPublisherNotConfigured indicates the branch publisher dependency was missing.
var ErrPublisherNotConfigured = errors.New(publisherMissingMessageConstant)

// ErrRepositoryManagerNotConfigured indicates the clean-worktree check was requested without a repository manager.
var ErrRepositoryManagerNotConfigured = errors.New(repositoryManagerMissingMessageConstant)

// AssetRewriter rewrites entry file asset references ahead of publishing.
type AssetRewriter interface {
	Rewrite(executionContext context.Context, configuration rewrite.Configuration) (rewrite.Outcome, error)
}

// BranchPublisher force-pushes a directory's contents to a branch.
type BranchPublisher interface {
	Publish(executionContext context.Context, options publish.Options) (publish.Result, error)
}

// Dependencies enumerates collaborators required by the deploy pipeline.
type Dependencies struct {
	RepositoryManager shared.GitRepositoryManager
	Rewriter          AssetRewriter
	Publisher         BranchPublisher
	Logger            *zap.Logger
}

// Options configures one deploy pipeline run.
type Options struct {
	RepositoryRoot      string
	BranchName          string
	OutputDirectoryPath string
	EntryFileName       string
	RemoteURL           string
	SkipRewrite         bool
	RequireClean        bool
	DryRun              bool
}

// Result captures the observable outcomes of a deploy.
type Result struct {
	RemoteURL      string
	RepositoryName string
	RewriteSkipped bool
	RewriteOutcome rewrite.Outcome
	PublishResult  publish.Result
}

// Service runs the resolve, rewrite, and publish stages sequentially.
type Service struct {
	repositoryManager shared.GitRepositoryManager
	rewriter          AssetRewriter
	publisher         BranchPublisher
	logger            *zap.Logger
}

// NewService constructs a Service from the provided dependencies. The
// repository manager may be nil when the clean-worktree check is never
// requested.
func NewService(dependencies Dependencies) (*Service, error) {
	if dependencies.Rewriter == nil {
		return nil, ErrRewriterNotConfigured
	}
	if dependencies.Publisher == nil {
		return nil, ErrPublisherNotConfigured
	}
	logger := dependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repositoryManager: dependencies.RepositoryManager,
		rewriter:          dependencies.Rewriter,
		publisher:         dependencies.Publisher,
		logger:            logger,
	}, nil
}

// Deploy validates the options, enforces the safety guard and optional
// clean-worktree requirement, resolves the remote URL when no override is
// provided, and runs the rewrite and publish stages. The first stage failure
// aborts the pipeline; filesystem state remains as the last successful stage
// left it.
func (service *Service) Deploy(executionContext context.Context, options Options) (Result, error) {
	trimmedRepositoryRoot := strings.TrimSpace(options.RepositoryRoot)
	if len(trimmedRepositoryRoot) == 0 {
		return Result{}, ErrRepositoryRootRequired
	}

	trimmedBranchName := strings.TrimSpace(options.BranchName)
	if len(trimmedBranchName) == 0 {
		return Result{}, ErrBranchNameRequired
	}

	trimmedOutputPath := strings.TrimSpace(options.OutputDirectoryPath)
	if len(trimmedOutputPath) == 0 {
		return Result{}, ErrOutputDirectoryRequired
	}

	trimmedEntryFileName := strings.TrimSpace(options.EntryFileName)
	if !options.SkipRewrite && len(trimmedEntryFileName) == 0 {
		return Result{}, ErrEntryFileNameRequired
	}

	if pathutils.PathsEqual(trimmedOutputPath, trimmedRepositoryRoot) {
		return Result{}, ErrOutputIsRepositoryRoot
	}

	if options.RequireClean {
		if service.repositoryManager == nil {
			return Result{}, ErrRepositoryManagerNotConfigured
		}
		worktreeClean, worktreeCheckError := service.repositoryManager.CheckCleanWorktree(executionContext, trimmedRepositoryRoot)
		if worktreeCheckError != nil {
			return Result{}, fmt.Errorf(worktreeStatusErrorTemplateConstant, trimmedRepositoryRoot, worktreeCheckError)
		}
		if !worktreeClean {
			return Result{}, ErrWorktreeNotClean
		}
	}

	remoteURL := strings.TrimSpace(options.RemoteURL)
	if len(remoteURL) == 0 {
		resolvedURL, resolveError := gitrepo.ResolveOriginURL(trimmedRepositoryRoot)
		if resolveError != nil {
			return Result{}, resolveError
		}
		remoteURL = resolvedURL
	}
	repositoryName := gitrepo.DeriveRepositoryName(remoteURL)

	service.logger.Info(pipelineStartedLogMessageConstant,
		zap.String(repositoryRootFieldNameConstant, trimmedRepositoryRoot),
		zap.String(remoteURLFieldNameConstant, remoteURL),
		zap.String(repositoryNameFieldNameConstant, repositoryName),
		zap.String(branchFieldNameConstant, trimmedBranchName),
		zap.String(outputDirectoryFieldNameConstant, trimmedOutputPath),
	)

	result := Result{
		RemoteURL:      remoteURL,
		RepositoryName: repositoryName,
		RewriteSkipped: options.SkipRewrite,
	}

	if options.SkipRewrite {
		service.logger.Info(rewriteStageSkippedLogMessageConstant,
			zap.String(outputDirectoryFieldNameConstant, trimmedOutputPath),
		)
	} else {
		rewriteOutcome, rewriteError := service.rewriter.Rewrite(executionContext, rewrite.Configuration{
			OutputDirectoryPath: trimmedOutputPath,
			EntryFileName:       trimmedEntryFileName,
			RepositoryName:      repositoryName,
			DryRun:              options.DryRun,
		})
		if rewriteError != nil {
			return Result{}, rewriteError
		}
		result.RewriteOutcome = rewriteOutcome
	}

	publishResult, publishError := service.publisher.Publish(executionContext, publish.Options{
		RemoteURL:     remoteURL,
		DirectoryPath: trimmedOutputPath,
		BranchName:    trimmedBranchName,
		DryRun:        options.DryRun,
	})
	if publishError != nil {
		return Result{}, publishError
	}
	result.PublishResult = publishResult

	service.logger.Info(pipelineCompletedLogMessageConstant,
		zap.String(remoteURLFieldNameConstant, remoteURL),
		zap.String(branchFieldNameConstant, trimmedBranchName),
		zap.String(outputDirectoryFieldNameConstant, trimmedOutputPath),
	)

	return result, nil
}
