package publish

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/pagepush/internal/dependencies"
	"github.com/temirov/pagepush/internal/execshell"
	"github.com/temirov/pagepush/internal/gitrepo"
	"github.com/temirov/pagepush/internal/shared"
	"github.com/temirov/pagepush/internal/ui"
	flagutils "github.com/temirov/pagepush/internal/utils/flags"
	pathutils "github.com/temirov/pagepush/internal/utils/path"
	rootutils "github.com/temirov/pagepush/internal/utils/roots"
)

const (
	commandUseConstant                 = "publish"
	commandShortDescriptionConstant    = "Force-push the build output directory to a branch"
	commandLongDescriptionConstant     = "publish re-initializes the output directory as a fresh repository, commits its contents, and force-pushes them to the configured branch of the origin remote. The directory's git metadata is removed after a successful push."
	branchFlagNameConstant             = "branch"
	branchFlagUsageConstant            = "Branch the output directory is published to"
	outputFlagNameConstant             = "output"
	outputFlagUsageConstant            = "Build output directory, resolved against the repository root unless absolute"
	confirmationPromptTemplateConstant = "Force-push '%s' to branch '%s' on '%s'? [a/N/y] "
	declinedMessageTemplateConstant    = "PUBLISH-SKIP: user declined for %s\n"
)

// LoggerProvider yields a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// PrompterFactory creates confirmation prompters scoped to a Cobra command.
type PrompterFactory func(*cobra.Command) shared.ConfirmationPrompter

// CommandBuilder assembles the publish command.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	GitExecutor                  shared.GitExecutor
	PrompterFactory              PrompterFactory
	HumanReadableLoggingProvider func() bool
	CommandEventsObserver        execshell.CommandEventObserver
	ConfigurationProvider        func() CommandConfiguration
}

// Build constructs the publish command.
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

	service, serviceCreationError := NewService(Dependencies{GitExecutor: gitExecutor, Logger: logger})
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

	_, publishError := service.Publish(command.Context(), Options{
		RemoteURL:     remoteURL,
		DirectoryPath: outputPath,
		BranchName:    branchName,
		DryRun:        dryRun,
	})
	return publishError
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
