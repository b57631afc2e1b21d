package rewrite

import (
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/pagepush/internal/gitrepo"
	"github.com/temirov/pagepush/internal/shared"
	flagutils "github.com/temirov/pagepush/internal/utils/flags"
	pathutils "github.com/temirov/pagepush/internal/utils/path"
	rootutils "github.com/temirov/pagepush/internal/utils/roots"
)

const (
	commandUseConstant              = "rewrite"
	commandShortDescriptionConstant = "Prefix entry file asset references with the repository name"
	commandLongDescriptionConstant  = "rewrite lists the build output directory, then prefixes every asset reference in the entry file with '<repository-name>/' so published assets resolve under the repository subpath. The repository name derives from the origin remote URL unless --remote-url overrides it."
	outputFlagNameConstant          = "output"
	outputFlagUsageConstant         = "Build output directory, resolved against the repository root unless absolute"
	entryFileFlagNameConstant       = "entry-file"
	entryFileFlagUsageConstant      = "Entry file inside the output directory whose references are rewritten"
)

// LoggerProvider yields a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the rewrite command.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider func() CommandConfiguration
}

// Build constructs the rewrite command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE:  builder.run,
	}

	command.Flags().String(outputFlagNameConstant, "", outputFlagUsageConstant)
	command.Flags().String(entryFileFlagNameConstant, "", entryFileFlagUsageConstant)
	flagutils.EnsureRemoteURLFlag(command, "", flagutils.RemoteURLFlagUsage)
	flagutils.BindExecutionFlags(command, flagutils.ExecutionDefaults{}, flagutils.ExecutionFlagDefinitions{
		DryRun: flagutils.ExecutionFlagDefinition{
			Name:    flagutils.DryRunFlagName,
			Usage:   flagutils.DryRunFlagUsage,
			Enabled: true,
		},
	})

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, _ []string) error {
	configuration := builder.resolveConfiguration()

	executionFlags, executionFlagsAvailable := flagutils.ResolveExecutionFlags(command)
	dryRun := configuration.DryRun
	if executionFlagsAvailable && executionFlags.DryRunSet {
		dryRun = executionFlags.DryRun
	}

	repositoryRoot := rootutils.Resolve(command, configuration.RepositoryRoot)

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

	rewriter := NewAssetRewriter(builder.resolveLogger())
	_, rewriteError := rewriter.Rewrite(command.Context(), Configuration{
		OutputDirectoryPath: outputPath,
		EntryFileName:       entryFileName,
		RepositoryName:      gitrepo.DeriveRepositoryName(remoteURL),
		DryRun:              dryRun,
	})
	return rewriteError
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
