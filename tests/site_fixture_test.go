package tests

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	siteGitExecutableConstant         = "git"
	siteGitInitialBranchFlagConstant  = "--initial-branch=main"
	siteBareRepositoryNameConstant    = "site.git"
	siteRepositoryDirectoryConstant   = "site"
	siteOriginRemoteNameConstant      = "origin"
	siteOutputDirectoryNameConstant   = "dist"
	siteEntryFileNameConstant         = "index.html"
	siteAssetFileNameConstant         = "bundle.js"
	siteAssetContentConstant          = "console.log(\"ready\");\n"
	siteEntryOriginalContentConstant  = "<!doctype html>\n<script src=\"bundle.js\"></script>\n"
	siteEntryRewrittenContentConstant = "<!doctype html>\n<script src=\"site/bundle.js\"></script>\n"
)

func runGitCommand(testInstance *testing.T, workingDirectory string, arguments ...string) string {
	testInstance.Helper()

	gitCommand := exec.Command(siteGitExecutableConstant, arguments...)
	gitCommand.Dir = workingDirectory
	gitCommand.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")

	outputBytes, runError := gitCommand.CombinedOutput()
	require.NoError(testInstance, runError, string(outputBytes))
	return string(outputBytes)
}

// createSiteWorkspace prepares a repository with a dist build directory and a
// bare origin remote, returning the repository root and the bare remote path.
func createSiteWorkspace(testInstance *testing.T) (string, string) {
	testInstance.Helper()

	baseDirectory := testInstance.TempDir()

	bareRepositoryPath := filepath.Join(baseDirectory, siteBareRepositoryNameConstant)
	runGitCommand(testInstance, baseDirectory, "init", "--bare", siteGitInitialBranchFlagConstant, bareRepositoryPath)

	repositoryRoot := filepath.Join(baseDirectory, siteRepositoryDirectoryConstant)
	runGitCommand(testInstance, baseDirectory, "init", siteGitInitialBranchFlagConstant, repositoryRoot)
	runGitCommand(testInstance, repositoryRoot, "remote", "add", siteOriginRemoteNameConstant, bareRepositoryPath)

	outputDirectory := filepath.Join(repositoryRoot, siteOutputDirectoryNameConstant)
	require.NoError(testInstance, os.MkdirAll(outputDirectory, 0o755))
	require.NoError(testInstance, os.WriteFile(filepath.Join(outputDirectory, siteAssetFileNameConstant), []byte(siteAssetContentConstant), 0o644))
	require.NoError(testInstance, os.WriteFile(filepath.Join(outputDirectory, siteEntryFileNameConstant), []byte(siteEntryOriginalContentConstant), 0o644))

	return repositoryRoot, bareRepositoryPath
}

func readSiteEntryFile(testInstance *testing.T, repositoryRoot string) string {
	testInstance.Helper()

	entryContent, readError := os.ReadFile(filepath.Join(repositoryRoot, siteOutputDirectoryNameConstant, siteEntryFileNameConstant))
	require.NoError(testInstance, readError)
	return string(entryContent)
}

func bareBranchExists(bareRepositoryPath string, branchName string) bool {
	verifyCommand := exec.Command(siteGitExecutableConstant, "rev-parse", "--verify", branchName)
	verifyCommand.Dir = bareRepositoryPath
	verifyCommand.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")
	return verifyCommand.Run() == nil
}

func readBareBranchSubject(testInstance *testing.T, bareRepositoryPath string, branchName string) string {
	testInstance.Helper()

	subjectOutput := runGitCommand(testInstance, bareRepositoryPath, "log", "-1", "--pretty=%s", branchName)
	return strings.TrimSpace(subjectOutput)
}

func listBareBranchFiles(testInstance *testing.T, bareRepositoryPath string, branchName string) []string {
	testInstance.Helper()

	treeOutput := runGitCommand(testInstance, bareRepositoryPath, "ls-tree", "--name-only", branchName)

	var fileNames []string
	for _, line := range strings.Split(treeOutput, "\n") {
		trimmedLine := strings.TrimSpace(line)
		if len(trimmedLine) > 0 {
			fileNames = append(fileNames, trimmedLine)
		}
	}
	return fileNames
}

func readBareBranchFile(testInstance *testing.T, bareRepositoryPath string, branchName string, fileName string) string {
	testInstance.Helper()

	return runGitCommand(testInstance, bareRepositoryPath, "show", branchName+":"+fileName)
}
