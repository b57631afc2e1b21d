package tests

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	rewriteIntegrationCommandNameConstant          = "rewrite"
	rewriteIntegrationRootFlagConstant             = "--root"
	rewriteIntegrationDryRunFlagConstant           = "--dry-run"
	rewriteIntegrationRemoteURLFlagConstant        = "--remote-url"
	rewriteIntegrationLogLevelFlagConstant         = "--log-level"
	rewriteIntegrationErrorLevelConstant           = "error"
	rewriteIntegrationDocsRemoteConstant           = "https://github.com/example/docs.git"
	rewriteIntegrationDocsEntryContentConstant     = "<!doctype html>\n<script src=\"docs/bundle.js\"></script>\n"
	rewriteIntegrationRewriteCaseNameConstant      = "rewrites_entry_file"
	rewriteIntegrationDryRunCaseNameConstant       = "dry_run_preserves_entry_file"
	rewriteIntegrationRemoteFlagCaseNameConstant   = "remote_flag_overrides_origin"
)

func TestRewriteCommandIntegration(testInstance *testing.T) {
	currentWorkingDirectory, workingDirectoryError := os.Getwd()
	require.NoError(testInstance, workingDirectoryError)
	repositoryRootDirectory := filepath.Dir(currentWorkingDirectory)

	binaryPath := buildIntegrationBinary(testInstance, repositoryRootDirectory)

	testCases := []struct {
		name                 string
		extraArguments       []string
		expectedEntryContent string
	}{
		{
			name:                 rewriteIntegrationRewriteCaseNameConstant,
			extraArguments:       nil,
			expectedEntryContent: siteEntryRewrittenContentConstant,
		},
		{
			name:                 rewriteIntegrationDryRunCaseNameConstant,
			extraArguments:       []string{rewriteIntegrationDryRunFlagConstant},
			expectedEntryContent: siteEntryOriginalContentConstant,
		},
		{
			name:                 rewriteIntegrationRemoteFlagCaseNameConstant,
			extraArguments:       []string{rewriteIntegrationRemoteURLFlagConstant, rewriteIntegrationDocsRemoteConstant},
			expectedEntryContent: rewriteIntegrationDocsEntryContentConstant,
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(integrationSubtestNameTemplateConstant, testCaseIndex, testCase.name), func(t *testing.T) {
			siteRoot, _ := createSiteWorkspace(t)

			arguments := []string{
				rewriteIntegrationLogLevelFlagConstant,
				rewriteIntegrationErrorLevelConstant,
				rewriteIntegrationCommandNameConstant,
				rewriteIntegrationRootFlagConstant,
				siteRoot,
			}
			arguments = append(arguments, testCase.extraArguments...)

			outputText, runError := runBinaryIntegrationCommand(t, binaryPath, siteRoot, map[string]string{}, integrationCommandTimeout, arguments)
			require.NoError(t, runError, outputText)
			require.Empty(t, filterStructuredOutput(outputText))

			require.Equal(t, testCase.expectedEntryContent, readSiteEntryFile(t, siteRoot))
		})
	}
}
