package deploy

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/pagepush/internal/dependencies"
	"github.com/temirov/pagepush/internal/execshell"
	"github.com/temirov/pagepush/internal/gitrepo"
	"github.com/temirov/pagepush/internal/publish"
	"github.com/temirov/pagepush/internal/rewrite"
	"github.com/temirov/pagepush/internal/shared"
	"github.com/temirov/pagepush/internal/ui"
	flagutils "github.com/temirov/pagepush/internal/utils/flags"
	pathutils "github.com/temirov/pagepush/internal/utils/path"
	rootutils "github.com/temirov/pagepush/internal/utils/roots"
)

const (
	commandUseConstant                 = "deploy"
	commandShortDescriptionConstant    = "Rewrite the entry file and force-push the output directory to a branch"
	commandLongDescriptionConstant     = "deploy resolves the origin remote, prefixes entry file asset references with the repository name, and force-pushes the output directory to the publish branch. The rewrite stage can be skipped for non-web bundles."
	branchFlagNameConstant             = "branch"
	branchFlagUsageConstant            = "Branch the output directory is published to"
	outputFlagNameConstant             = "output"
	outputFlagUsageConstant            = "Build output directory, resolved against the repository root unless absolute"
	entryFileFlagNameConstant          = "entry-file"
	entryFileFlagUsageConstant         = "Entry file inside the output directory whose references are rewritten"
	skipRewriteFlagNameConstant        = "skip-rewrite"
	skipRewriteFlagUsageConstant       = "Skip the entry file rewrite stage"
	confirmationPromptTemplateConstant = "Deploy '%s' to branch '%s' on '%s'? [a/N/y] "
	declinedMessageTemplateConstant    = "DEPLOY-SKIP: user declined for %s\n"
)

// LoggerProvider yields a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// PrompterFactory creates confirmation prompters scoped to a Cobra command.
type PrompterFactory func(*cobra.Command) shared.ConfirmationPrompter

// CommandBuilder assembles the deploy command.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	GitExecutor                  shared.GitExecutor
	GitRepositoryManager         shared.GitRepositoryManager
	PrompterFactory              PrompterFactory
	HumanReadableLoggingProvider func() bool
	CommandEventsObserver        execshell.CommandEventObserver
	ConfigurationProvider        func() CommandConfiguration
}

// Build constructs the deploy command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE:  builder.run,
	}

	command.Flags().String(branchFlagNameConstant, "", branchFlagUsageConstant)
	command.Flags().String(outputFlagNameConstant, "", outputFlagUsageConstant)
	command.Flags().String(entryFileFlagNameConstant, "", entryFileFlagUsageConstant)
	command.Flags().Bool(skipRewriteFlagNameConstant, false, skipRewriteFlagUsageConstant)
	flagutils.EnsureRemoteURLFlag(command, "", flagutils.RemoteURLFlagUsage)
	flagutils.BindExecutionFlags(command, flagutils.ExecutionDefaults{}, executionFlagDefinitions())

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, _ []string) error {
	configuration := builder.resolveConfiguration()

	executionFlags, executionFlagsAvailable := flagutils.ResolveExecutionFlags(command)
	dryRun := configuration.DryRun
	if executionFlagsAvailable && executionFlags.DryRunSet {
		dryRun = executionFlags.DryRun
	}
	assumeYes := configuration.AssumeYes
	if executionFlagsAvailable && executionFlags.AssumeYesSet {
		assumeYes = executionFlags.AssumeYes
	}
	requireClean := configuration.RequireClean
	if executionFlagsAvailable && executionFlags.RequireCleanSet {
		requireClean = executionFlags.RequireClean
	}

	repositoryRoot := rootutils.Resolve(command, configuration.RepositoryRoot)

	branchName := configuration.BranchName
	if flagValue, flagChanged, _ := flagutils.ResolveStringFlag(command, branchFlagNameConstant); flagChanged {
		branchName = strings.TrimSpace(flagValue)
	}
	if len(branchName) == 0 {
		branchName = shared.DefaultPublishBranchNameConstant
	}

	outputDirectory := configuration.OutputDirectory
	if flagValue, flagChanged, _ := flagutils.ResolveStringFlag(command, outputFlagNameConstant); flagChanged {
		outputDirectory = strings.TrimSpace(flagValue)
	}
	if len(outputDirectory) == 0 {
		outputDirectory = shared.DefaultOutputDirectoryNameConstant
	}
	outputPath := pathutils.ResolveWithinRoot(repositoryRoot, outputDirectory)

	entryFileName := configuration.EntryFileName
	if flagValue, flagChanged, _ := flagutils.ResolveStringFlag(command, entryFileFlagNameConstant); flagChanged {
		entryFileName = strings.TrimSpace(flagValue)
	}
	if len(entryFileName) == 0 {
		entryFileName = shared.DefaultEntryFileNameConstant
	}

	skipRewrite := configuration.SkipRewrite
	if flagValue, flagChanged, _ := flagutils.ResolveBoolFlag(command, skipRewriteFlagNameConstant); flagChanged {
		skipRewrite = flagValue
	}

	remoteURL := configuration.RemoteURL
	if flagValue, flagChanged, _ := flagutils.ResolveStringFlag(command, flagutils.RemoteURLFlagName); flagChanged {
		remoteURL = strings.TrimSpace(flagValue)
	}
	if len(remoteURL) == 0 {
		resolvedURL, resolveError := gitrepo.ResolveOriginURL(repositoryRoot)
		if resolveError != nil {
			return resolveError
		}
		remoteURL = resolvedURL
	}

	logger := builder.resolveLogger()
	humanReadableLogging := false
	if builder.HumanReadableLoggingProvider != nil {
		humanReadableLogging = builder.HumanReadableLoggingProvider()
	}
	gitExecutor, executorError := dependencies.ResolveGitExecutor(builder.GitExecutor, logger, humanReadableLogging, builder.CommandEventsObserver)
	if executorError != nil {
		return executorError
	}

	repositoryManager := builder.GitRepositoryManager
	if repositoryManager == nil {
		constructedManager, managerError := gitrepo.NewRepositoryManager(gitExecutor)
		if managerError != nil {
			return managerError
		}
		repositoryManager = constructedManager
	}

	publisher, publisherCreationError := publish.NewService(publish.Dependencies{GitExecutor: gitExecutor, Logger: logger})
	if publisherCreationError != nil {
		return publisherCreationError
	}

	service, serviceCreationError := NewService(Dependencies{
		RepositoryManager: repositoryManager,
		Rewriter:          rewrite.NewAssetRewriter(logger),
		Publisher:         publisher,
		Logger:            logger,
	})
	if serviceCreationError != nil {
		return serviceCreationError
	}

	if !dryRun && !assumeYes {
		prompter := builder.resolvePrompter(command)
		confirmationResult, promptError := prompter.Confirm(
			fmt.Sprintf(confirmationPromptTemplateConstant, outputPath, branchName, remoteURL),
		)
		if promptError != nil {
			return promptError
		}
		if !confirmationResult.Confirmed {
			fmt.Fprintf(command.OutOrStdout(), declinedMessageTemplateConstant, outputPath)
			return nil
		}
	}

	_, deployError := service.Deploy(command.Context(), Options{
		RepositoryRoot:      repositoryRoot,
		BranchName:          branchName,
		OutputDirectoryPath: outputPath,
		EntryFileName:       entryFileName,
		RemoteURL:           remoteURL,
		SkipRewrite:         skipRewrite,
		RequireClean:        requireClean,
		DryRun:              dryRun,
	})
	return deployError
}

func executionFlagDefinitions() flagutils.ExecutionFlagDefinitions {
	return flagutils.ExecutionFlagDefinitions{
		DryRun: flagutils.ExecutionFlagDefinition{
			Name:    flagutils.DryRunFlagName,
			Usage:   flagutils.DryRunFlagUsage,
			Enabled: true,
		},
		AssumeYes: flagutils.ExecutionFlagDefinition{
			Name:      flagutils.AssumeYesFlagName,
			Usage:     flagutils.AssumeYesFlagUsage,
			Shorthand: flagutils.AssumeYesFlagShorthand,
			Enabled:   true,
		},
		RequireClean: flagutils.ExecutionFlagDefinition{
			Name:    flagutils.RequireCleanFlagName,
			Usage:   flagutils.RequireCleanFlagUsage,
			Enabled: true,
		},
	}
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return builder.ConfigurationProvider().Sanitize()
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func (builder *CommandBuilder) resolvePrompter(command *cobra.Command) shared.ConfirmationPrompter {
	if builder.PrompterFactory != nil {
		if prompter := builder.PrompterFactory(command); prompter != nil {
			return prompter
		}
	}
	return ui.NewIOConfirmationPrompter(command.InOrStdin(), command.OutOrStdout())
}
