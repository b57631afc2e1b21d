package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/temirov/pagepush/internal/deploy"
	"github.com/temirov/pagepush/internal/gitrepo"
	"github.com/temirov/pagepush/internal/publish"
	"github.com/temirov/pagepush/internal/rewrite"
	"github.com/temirov/pagepush/internal/shared"
	"github.com/temirov/pagepush/internal/ui"
	"github.com/temirov/pagepush/internal/utils"
	flagutils "github.com/temirov/pagepush/internal/utils/flags"
)

const (
	applicationNameConstant                        = "pagepush"
	applicationShortDescriptionConstant            = "Publish build output directories to a static-site branch"
	applicationLongDescriptionConstant             = "pagepush resolves the origin remote of a repository, rewrites entry file asset references, and force-pushes build output to a publish branch such as gh-pages."
	configFileFlagNameConstant                     = "config"
	configFileFlagUsageConstant                    = "Optional path to a configuration file (YAML or JSON)."
	logLevelFlagNameConstant                       = "log-level"
	logLevelFlagUsageConstant                      = "Override the configured log level."
	logFormatFlagNameConstant                      = "log-format"
	logFormatFlagUsageConstant                     = "Override the configured log format."
	commonConfigurationKeyConstant                 = "common"
	commonLogLevelConfigKeyConstant                = commonConfigurationKeyConstant + ".log_level"
	commonLogFormatConfigKeyConstant               = commonConfigurationKeyConstant + ".log_format"
	environmentPrefixConstant                      = "PAGEPUSH"
	configurationNameConstant                      = "config"
	configurationTypeConstant                      = "yaml"
	configurationSearchPathEnvironmentNameConstant = "PAGEPUSH_CONFIG_SEARCH_PATH"
	configurationInitializedMessageConstant        = "configuration initialized"
	configurationLogLevelFieldConstant             = "log_level"
	configurationLogFormatFieldConstant            = "log_format"
	configurationFileFieldConstant                 = "config_file"
	configurationLoadErrorTemplateConstant         = "unable to load configuration: %w"
	loggerCreationErrorTemplateConstant            = "unable to create logger: %w"
	loggerSyncErrorTemplateConstant                = "unable to flush logger: %w"
	rootCommandInfoMessageConstant                 = "pagepush CLI executed"
	rootCommandDebugMessageConstant                = "pagepush CLI diagnostics"
	logFieldCommandNameConstant                    = "command_name"
	logFieldArgumentCountConstant                  = "argument_count"
	logFieldArgumentsConstant                      = "arguments"
	loggerNotInitializedMessageConstant            = "logger not initialized"
	defaultConfigurationSearchPathConstant         = "."
	versionArgumentConstant                        = "--version"
	versionOutputTemplateConstant                  = "%s version: %s\n"
	moduleDevelVersionConstant                     = "(devel)"
	developmentVersionConstant                     = "development"
	initFlagNameConstant                           = "init"
	initFlagUsageConstant                          = "Write the default configuration file (--init for the working directory, --init=user for the home directory)."
	forceFlagNameConstant                          = "force"
	forceFlagUsageConstant                         = "Overwrite an existing configuration file when combined with --init."
	configurationWrittenTemplateConstant           = "Configuration written to %s\n"
	toolsConfigurationKeyConstant                  = "tools"
	deployConfigurationKeyConstant                 = toolsConfigurationKeyConstant + ".deploy"
	rewriteConfigurationKeyConstant                = toolsConfigurationKeyConstant + ".rewrite"
	publishConfigurationKeyConstant                = toolsConfigurationKeyConstant + ".publish"
)

// ApplicationConfiguration describes the persisted configuration for the CLI entrypoint.
type ApplicationConfiguration struct {
	Common ApplicationCommonConfiguration `mapstructure:"common"`
	Tools  ApplicationToolsConfiguration  `mapstructure:"tools"`
}

// ApplicationCommonConfiguration stores logging configuration shared across commands.
type ApplicationCommonConfiguration struct {
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

// ApplicationToolsConfiguration holds configuration for CLI subcommands grouped by tool.
type ApplicationToolsConfiguration struct {
	Deploy  deploy.CommandConfiguration  `mapstructure:"deploy"`
	Rewrite rewrite.CommandConfiguration `mapstructure:"rewrite"`
	Publish publish.CommandConfiguration `mapstructure:"publish"`
}

// Application wires the Cobra root command, configuration loader, and structured logger.
type Application struct {
	rootCommand             *cobra.Command
	configurationLoader     *utils.ConfigurationLoader
	loggerFactory           *utils.LoggerFactory
	logger                  *zap.Logger
	configuration           ApplicationConfiguration
	configurationMetadata   utils.LoadedConfiguration
	configurationFilePath   string
	logLevelFlagValue       string
	logFormatFlagValue      string
	initScopeFlagValue      string
	forceOverwriteFlagValue bool
	commandContextAccessor  utils.CommandContextAccessor
	versionResolver         func(context.Context) string
	exitFunction            func(int)
}

// NewApplication assembles a fully wired CLI application instance.
func NewApplication() *Application {
	configurationLoader := utils.NewConfigurationLoader(
		configurationNameConstant,
		configurationTypeConstant,
		environmentPrefixConstant,
		configurationSearchPaths(),
	)
	embeddedConfigurationContent, embeddedConfigurationType := EmbeddedDefaultConfiguration()
	configurationLoader.SetEmbeddedConfiguration(embeddedConfigurationContent, embeddedConfigurationType)

	application := &Application{
		configurationLoader:    configurationLoader,
		loggerFactory:          utils.NewLoggerFactory(),
		logger:                 zap.NewNop(),
		commandContextAccessor: utils.NewCommandContextAccessor(),
		versionResolver:        resolveApplicationVersion,
		exitFunction:           os.Exit,
	}

	cobraCommand := &cobra.Command{
		Use:           applicationNameConstant,
		Short:         applicationShortDescriptionConstant,
		Long:          applicationLongDescriptionConstant,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(command *cobra.Command, arguments []string) error {
			return application.initializeConfiguration(command)
		},
		RunE: func(command *cobra.Command, arguments []string) error {
			return application.runRootCommand(command, arguments)
		},
	}

	cobraCommand.SetContext(context.Background())
	cobraCommand.PersistentFlags().StringVar(&application.configurationFilePath, configFileFlagNameConstant, "", configFileFlagUsageConstant)
	cobraCommand.PersistentFlags().StringVar(&application.logLevelFlagValue, logLevelFlagNameConstant, "", logLevelFlagUsage())
	cobraCommand.PersistentFlags().StringVar(&application.logFormatFlagValue, logFormatFlagNameConstant, "", logFormatFlagUsage())
	flagutils.BindRootFlags(cobraCommand, flagutils.RootFlagValues{}, flagutils.RootFlagDefinition{Enabled: true, Persistent: true})

	cobraCommand.Flags().StringVar(&application.initScopeFlagValue, initFlagNameConstant, "", initFlagUsageConstant)
	if initFlag := cobraCommand.Flags().Lookup(initFlagNameConstant); initFlag != nil {
		initFlag.NoOptDefVal = string(ConfigurationScopeLocal)
	}
	cobraCommand.Flags().BoolVar(&application.forceOverwriteFlagValue, forceFlagNameConstant, false, forceFlagUsageConstant)

	deployBuilder := deploy.CommandBuilder{
		LoggerProvider: func() *zap.Logger {
			return application.logger
		},
		HumanReadableLoggingProvider: application.humanReadableLoggingEnabled,
		PrompterFactory:              application.newConfirmationPrompter,
		ConfigurationProvider: func() deploy.CommandConfiguration {
			return application.configuration.Tools.Deploy
		},
	}
	deployCommand, deployBuildError := deployBuilder.Build()
	if deployBuildError == nil {
		cobraCommand.AddCommand(deployCommand)
	}

	originBuilder := gitrepo.CommandBuilder{}
	originCommand, originBuildError := originBuilder.Build()
	if originBuildError == nil {
		cobraCommand.AddCommand(originCommand)
	}

	rewriteBuilder := rewrite.CommandBuilder{
		LoggerProvider: func() *zap.Logger {
			return application.logger
		},
		ConfigurationProvider: func() rewrite.CommandConfiguration {
			return application.configuration.Tools.Rewrite
		},
	}
	rewriteCommand, rewriteBuildError := rewriteBuilder.Build()
	if rewriteBuildError == nil {
		cobraCommand.AddCommand(rewriteCommand)
	}

	publishBuilder := publish.CommandBuilder{
		LoggerProvider: func() *zap.Logger {
			return application.logger
		},
		HumanReadableLoggingProvider: application.humanReadableLoggingEnabled,
		PrompterFactory:              application.newConfirmationPrompter,
		ConfigurationProvider: func() publish.CommandConfiguration {
			return application.configuration.Tools.Publish
		},
	}
	publishCommand, publishBuildError := publishBuilder.Build()
	if publishBuildError == nil {
		cobraCommand.AddCommand(publishCommand)
	}

	application.rootCommand = cobraCommand

	return application
}

// Execute runs the configured Cobra command hierarchy and ensures logger flushing.
func (application *Application) Execute() error {
	if containsVersionArgument(os.Args[1:]) {
		resolvedVersion := application.versionResolver(application.rootCommand.Context())
		fmt.Fprintf(os.Stdout, versionOutputTemplateConstant, applicationNameConstant, resolvedVersion)
		application.exitFunction(0)
		return nil
	}

	application.rootCommand.SetArgs(flagutils.NormalizeToggleArguments(os.Args[1:]))

	executionError := application.rootCommand.Execute()
	if syncError := application.flushLogger(); syncError != nil {
		return fmt.Errorf(loggerSyncErrorTemplateConstant, syncError)
	}
	return executionError
}

// Execute builds a fresh application instance and executes the root command hierarchy.
func Execute() error {
	return NewApplication().Execute()
}

func configurationSearchPaths() []string {
	searchPaths := []string{defaultConfigurationSearchPathConstant}
	additionalSearchPath := strings.TrimSpace(os.Getenv(configurationSearchPathEnvironmentNameConstant))
	if len(additionalSearchPath) > 0 {
		searchPaths = append([]string{additionalSearchPath}, searchPaths...)
	}
	return searchPaths
}

func logLevelFlagUsage() string {
	return flagutils.FormatChoiceUsage(string(utils.LogLevelInfo), []string{
		string(utils.LogLevelDebug),
		string(utils.LogLevelInfo),
		string(utils.LogLevelWarn),
		string(utils.LogLevelError),
	}, logLevelFlagUsageConstant)
}

func logFormatFlagUsage() string {
	return flagutils.FormatChoiceUsage(string(utils.LogFormatStructured), []string{
		string(utils.LogFormatStructured),
		string(utils.LogFormatConsole),
	}, logFormatFlagUsageConstant)
}

func containsVersionArgument(arguments []string) bool {
	for _, argumentValue := range arguments {
		if argumentValue == versionArgumentConstant {
			return true
		}
	}
	return false
}

func resolveApplicationVersion(context.Context) string {
	buildInformation, buildInformationAvailable := debug.ReadBuildInfo()
	if !buildInformationAvailable {
		return developmentVersionConstant
	}

	moduleVersion := strings.TrimSpace(buildInformation.Main.Version)
	if len(moduleVersion) == 0 || moduleVersion == moduleDevelVersionConstant {
		return developmentVersionConstant
	}

	return moduleVersion
}

func (application *Application) initializeConfiguration(command *cobra.Command) error {
	defaultValues := map[string]any{
		commonLogLevelConfigKeyConstant:  string(utils.LogLevelInfo),
		commonLogFormatConfigKeyConstant: string(utils.LogFormatStructured),
	}
	for configurationKey, configurationValue := range deploy.DefaultConfigurationValues(deployConfigurationKeyConstant) {
		defaultValues[configurationKey] = configurationValue
	}
	for configurationKey, configurationValue := range rewrite.DefaultConfigurationValues(rewriteConfigurationKeyConstant) {
		defaultValues[configurationKey] = configurationValue
	}
	for configurationKey, configurationValue := range publish.DefaultConfigurationValues(publishConfigurationKeyConstant) {
		defaultValues[configurationKey] = configurationValue
	}

	loadedConfiguration, loadError := application.configurationLoader.LoadConfiguration(application.configurationFilePath, defaultValues, &application.configuration)
	if loadError != nil {
		return fmt.Errorf(configurationLoadErrorTemplateConstant, loadError)
	}

	application.configurationMetadata = loadedConfiguration

	if application.persistentFlagChanged(command, logLevelFlagNameConstant) {
		application.configuration.Common.LogLevel = application.logLevelFlagValue
	}

	if application.persistentFlagChanged(command, logFormatFlagNameConstant) {
		application.configuration.Common.LogFormat = application.logFormatFlagValue
	}

	logger, loggerCreationError := application.loggerFactory.CreateLogger(
		utils.LogLevel(application.configuration.Common.LogLevel),
		utils.LogFormat(application.configuration.Common.LogFormat),
	)
	if loggerCreationError != nil {
		return fmt.Errorf(loggerCreationErrorTemplateConstant, loggerCreationError)
	}

	application.logger = logger

	application.logger.Info(
		configurationInitializedMessageConstant,
		zap.String(configurationLogLevelFieldConstant, application.configuration.Common.LogLevel),
		zap.String(configurationLogFormatFieldConstant, application.configuration.Common.LogFormat),
		zap.String(configurationFileFieldConstant, application.configurationMetadata.ConfigFileUsed),
	)

	if command != nil {
		updatedContext := application.commandContextAccessor.WithConfigurationFilePath(
			command.Context(),
			application.configurationMetadata.ConfigFileUsed,
		)
		command.SetContext(updatedContext)
		if rootCommand := command.Root(); rootCommand != nil {
			rootCommand.SetContext(updatedContext)
		}
	}

	return nil
}

func (application *Application) humanReadableLoggingEnabled() bool {
	logFormatValue := strings.TrimSpace(application.configuration.Common.LogFormat)
	return strings.EqualFold(logFormatValue, string(utils.LogFormatConsole))
}

func (application *Application) newConfirmationPrompter(command *cobra.Command) shared.ConfirmationPrompter {
	return ui.NewIOConfirmationPrompter(command.InOrStdin(), utils.NewFlushingWriter(command.OutOrStdout()))
}

func (application *Application) runRootCommand(command *cobra.Command, arguments []string) error {
	if application.logger == nil {
		return errors.New(loggerNotInitializedMessageConstant)
	}

	application.logger.Info(
		rootCommandInfoMessageConstant,
		zap.String(logFieldCommandNameConstant, command.Name()),
		zap.Int(logFieldArgumentCountConstant, len(arguments)),
	)

	application.logger.Debug(
		rootCommandDebugMessageConstant,
		zap.Strings(logFieldArgumentsConstant, arguments),
	)

	if command.Flags().Changed(initFlagNameConstant) {
		return application.initializeDefaultConfigurationFile(command)
	}

	if len(arguments) == 0 {
		return command.Help()
	}

	return nil
}

func (application *Application) initializeDefaultConfigurationFile(command *cobra.Command) error {
	initializer := NewConfigurationInitializer()
	writtenPath, initializationError := initializer.Initialize(
		ConfigurationScope(application.initScopeFlagValue),
		application.forceOverwriteFlagValue,
	)
	if initializationError != nil {
		return initializationError
	}

	fmt.Fprintf(command.OutOrStdout(), configurationWrittenTemplateConstant, writtenPath)
	return nil
}

func (application *Application) flushLogger() error {
	if application.logger == nil {
		return nil
	}

	syncError := application.logger.Sync()
	switch {
	case syncError == nil:
		return nil
	case errors.Is(syncError, syscall.ENOTSUP):
		return nil
	case errors.Is(syncError, syscall.EINVAL):
		return nil
	default:
		return syncError
	}
}

func (application *Application) persistentFlagChanged(command *cobra.Command, flagName string) bool {
	if command == nil {
		return false
	}

	flagSetsToInspect := []*pflag.FlagSet{
		command.PersistentFlags(),
		command.InheritedFlags(),
	}

	rootCommand := command.Root()
	if rootCommand != nil {
		flagSetsToInspect = append(flagSetsToInspect, rootCommand.PersistentFlags())
	}

	for _, flagSet := range flagSetsToInspect {
		if flagSet == nil {
			continue
		}

		if flagSet.Changed(flagName) {
			return true
		}
	}

	return false
}
