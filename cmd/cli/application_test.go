package cli_test

import (
	"bytes"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/temirov/pagepush/cmd/cli"
)

const (
	embeddedDefaultRootPathConstant        = "."
	embeddedDefaultBranchNameConstant      = "gh-pages"
	embeddedDefaultOutputDirectoryConstant = "dist"
	embeddedDefaultEntryFileNameConstant   = "index.html"
	embeddedDefaultLogLevelConstant        = "info"
	embeddedDefaultLogFormatConstant       = "structured"
)

func decodeEmbeddedApplicationConfiguration(testingInstance testing.TB) cli.ApplicationConfiguration {
	testingInstance.Helper()

	configurationData, configurationType := cli.EmbeddedDefaultConfiguration()
	viperInstance := viper.New()
	viperInstance.SetConfigType(configurationType)

	readError := viperInstance.ReadConfig(bytes.NewReader(configurationData))
	require.NoError(testingInstance, readError)

	var configuration cli.ApplicationConfiguration
	unmarshalError := viperInstance.Unmarshal(&configuration)
	require.NoError(testingInstance, unmarshalError)

	return configuration
}

func TestEmbeddedDefaultsProvideToolConfigurations(testInstance *testing.T) {
	configuration := decodeEmbeddedApplicationConfiguration(testInstance)

	testCases := []struct {
		name      string
		assertion func(testing.TB)
	}{
		{
			name: "CommonLoggingDefaults",
			assertion: func(assertionTarget testing.TB) {
				assertionTarget.Helper()

				assertions := require.New(assertionTarget)
				assertions.Equal(embeddedDefaultLogLevelConstant, configuration.Common.LogLevel)
				assertions.Equal(embeddedDefaultLogFormatConstant, configuration.Common.LogFormat)
			},
		},
		{
			name: "DeployDefaults",
			assertion: func(assertionTarget testing.TB) {
				assertionTarget.Helper()

				sanitized := configuration.Tools.Deploy.Sanitize()
				assertions := require.New(assertionTarget)
				assertions.Equal(embeddedDefaultRootPathConstant, sanitized.RepositoryRoot)
				assertions.Equal(embeddedDefaultBranchNameConstant, sanitized.BranchName)
				assertions.Equal(embeddedDefaultOutputDirectoryConstant, sanitized.OutputDirectory)
				assertions.Equal(embeddedDefaultEntryFileNameConstant, sanitized.EntryFileName)
				assertions.Empty(sanitized.RemoteURL)
				assertions.False(sanitized.SkipRewrite)
				assertions.False(sanitized.RequireClean)
				assertions.False(sanitized.DryRun)
				assertions.False(sanitized.AssumeYes)
			},
		},
		{
			name: "RewriteDefaults",
			assertion: func(assertionTarget testing.TB) {
				assertionTarget.Helper()

				sanitized := configuration.Tools.Rewrite.Sanitize()
				assertions := require.New(assertionTarget)
				assertions.Equal(embeddedDefaultRootPathConstant, sanitized.RepositoryRoot)
				assertions.Equal(embeddedDefaultOutputDirectoryConstant, sanitized.OutputDirectory)
				assertions.Equal(embeddedDefaultEntryFileNameConstant, sanitized.EntryFileName)
				assertions.Empty(sanitized.RemoteURL)
				assertions.False(sanitized.DryRun)
			},
		},
		{
			name: "PublishDefaults",
			assertion: func(assertionTarget testing.TB) {
				assertionTarget.Helper()

				sanitized := configuration.Tools.Publish.Sanitize()
				assertions := require.New(assertionTarget)
				assertions.Equal(embeddedDefaultRootPathConstant, sanitized.RepositoryRoot)
				assertions.Equal(embeddedDefaultBranchNameConstant, sanitized.BranchName)
				assertions.Equal(embeddedDefaultOutputDirectoryConstant, sanitized.OutputDirectory)
				assertions.Empty(sanitized.RemoteURL)
				assertions.False(sanitized.DryRun)
				assertions.False(sanitized.AssumeYes)
			},
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		testInstance.Run(testCase.name, func(t *testing.T) {
			testCase.assertion(t)
		})
	}
}

func TestEmbeddedDefaultConfigurationReturnsIsolatedCopies(testInstance *testing.T) {
	firstCopy, _ := cli.EmbeddedDefaultConfiguration()
	require.NotEmpty(testInstance, firstCopy)

	firstCopy[0] = '#'

	secondCopy, _ := cli.EmbeddedDefaultConfiguration()
	require.NotEqual(testInstance, firstCopy[0], secondCopy[0])
}
