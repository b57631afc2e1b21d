package tests

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	deployIntegrationCommandNameConstant      = "deploy"
	deployIntegrationRootFlagConstant         = "--root"
	deployIntegrationYesFlagConstant          = "--yes"
	deployIntegrationDryRunFlagConstant       = "--dry-run"
	deployIntegrationSkipRewriteFlagConstant  = "--skip-rewrite"
	deployIntegrationRequireCleanFlagConstant = "--require-clean"
	deployIntegrationLogLevelFlagConstant     = "--log-level"
	deployIntegrationErrorLevelConstant       = "error"
	deployIntegrationBranchNameConstant       = "gh-pages"
	deployIntegrationCommitSubjectConstant    = "Update gh-pages"
	deployIntegrationDirtyWorktreeSnippet     = "repository worktree has uncommitted changes"
	deployIntegrationGitMetadataNameConstant  = ".git"
	deployIntegrationEndToEndCaseNameConstant = "deploys_end_to_end"
	deployIntegrationSkipCaseNameConstant     = "skip_rewrite_preserves_entry"
	deployIntegrationDirtyCaseNameConstant    = "require_clean_rejects_dirty_worktree"
	deployIntegrationDryRunCaseNameConstant   = "dry_run_deploys_nothing"
)

func TestDeployCommandIntegration(testInstance *testing.T) {
	currentWorkingDirectory, workingDirectoryError := os.Getwd()
	require.NoError(testInstance, workingDirectoryError)
	repositoryRootDirectory := filepath.Dir(currentWorkingDirectory)

	binaryPath := buildIntegrationBinary(testInstance, repositoryRootDirectory)

	testInstance.Run(fmt.Sprintf(integrationSubtestNameTemplateConstant, 0, deployIntegrationEndToEndCaseNameConstant), func(t *testing.T) {
		siteRoot, bareRepositoryPath := createSiteWorkspace(t)

		arguments := []string{
			deployIntegrationLogLevelFlagConstant,
			deployIntegrationErrorLevelConstant,
			deployIntegrationCommandNameConstant,
			deployIntegrationRootFlagConstant,
			siteRoot,
			deployIntegrationYesFlagConstant,
		}
		outputText, runError := runBinaryIntegrationCommand(t, binaryPath, siteRoot, map[string]string{}, integrationCommandTimeout, arguments)
		require.NoError(t, runError, outputText)

		require.Equal(t, siteEntryRewrittenContentConstant, readSiteEntryFile(t, siteRoot))

		require.True(t, bareBranchExists(bareRepositoryPath, deployIntegrationBranchNameConstant))
		require.Equal(t, deployIntegrationCommitSubjectConstant, readBareBranchSubject(t, bareRepositoryPath, deployIntegrationBranchNameConstant))
		require.Equal(t, siteEntryRewrittenContentConstant, readBareBranchFile(t, bareRepositoryPath, deployIntegrationBranchNameConstant, siteEntryFileNameConstant))
		require.Equal(t, siteAssetContentConstant, readBareBranchFile(t, bareRepositoryPath, deployIntegrationBranchNameConstant, siteAssetFileNameConstant))

		metadataPath := filepath.Join(siteRoot, siteOutputDirectoryNameConstant, deployIntegrationGitMetadataNameConstant)
		_, metadataStatError := os.Stat(metadataPath)
		require.True(t, os.IsNotExist(metadataStatError))
	})

	testInstance.Run(fmt.Sprintf(integrationSubtestNameTemplateConstant, 1, deployIntegrationSkipCaseNameConstant), func(t *testing.T) {
		siteRoot, bareRepositoryPath := createSiteWorkspace(t)

		arguments := []string{
			deployIntegrationLogLevelFlagConstant,
			deployIntegrationErrorLevelConstant,
			deployIntegrationCommandNameConstant,
			deployIntegrationRootFlagConstant,
			siteRoot,
			deployIntegrationYesFlagConstant,
			deployIntegrationSkipRewriteFlagConstant,
		}
		outputText, runError := runBinaryIntegrationCommand(t, binaryPath, siteRoot, map[string]string{}, integrationCommandTimeout, arguments)
		require.NoError(t, runError, outputText)

		require.Equal(t, siteEntryOriginalContentConstant, readSiteEntryFile(t, siteRoot))

		require.True(t, bareBranchExists(bareRepositoryPath, deployIntegrationBranchNameConstant))
		require.Equal(t, siteEntryOriginalContentConstant, readBareBranchFile(t, bareRepositoryPath, deployIntegrationBranchNameConstant, siteEntryFileNameConstant))
	})

	testInstance.Run(fmt.Sprintf(integrationSubtestNameTemplateConstant, 2, deployIntegrationDirtyCaseNameConstant), func(t *testing.T) {
		siteRoot, bareRepositoryPath := createSiteWorkspace(t)

		arguments := []string{
			deployIntegrationLogLevelFlagConstant,
			deployIntegrationErrorLevelConstant,
			deployIntegrationCommandNameConstant,
			deployIntegrationRootFlagConstant,
			siteRoot,
			deployIntegrationYesFlagConstant,
			deployIntegrationRequireCleanFlagConstant,
		}
		outputText := runFailingBinaryIntegrationCommand(t, binaryPath, siteRoot, map[string]string{}, integrationCommandTimeout, arguments)
		require.Contains(t, outputText, deployIntegrationDirtyWorktreeSnippet)

		require.False(t, bareBranchExists(bareRepositoryPath, deployIntegrationBranchNameConstant))
		require.Equal(t, siteEntryOriginalContentConstant, readSiteEntryFile(t, siteRoot))
	})

	testInstance.Run(fmt.Sprintf(integrationSubtestNameTemplateConstant, 3, deployIntegrationDryRunCaseNameConstant), func(t *testing.T) {
		siteRoot, bareRepositoryPath := createSiteWorkspace(t)

		arguments := []string{
			deployIntegrationLogLevelFlagConstant,
			deployIntegrationErrorLevelConstant,
			deployIntegrationCommandNameConstant,
			deployIntegrationRootFlagConstant,
			siteRoot,
			deployIntegrationDryRunFlagConstant,
		}
		outputText, runError := runBinaryIntegrationCommand(t, binaryPath, siteRoot, map[string]string{}, integrationCommandTimeout, arguments)
		require.NoError(t, runError, outputText)

		require.Equal(t, siteEntryOriginalContentConstant, readSiteEntryFile(t, siteRoot))
		require.False(t, bareBranchExists(bareRepositoryPath, deployIntegrationBranchNameConstant))

		metadataPath := filepath.Join(siteRoot, siteOutputDirectoryNameConstant, deployIntegrationGitMetadataNameConstant)
		_, metadataStatError := os.Stat(metadataPath)
		require.True(t, os.IsNotExist(metadataStatError))
	})
}
