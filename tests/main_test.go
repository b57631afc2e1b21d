package tests

import (
	"os"
	"path/filepath"
	"testing"
)

func TestMain(m *testing.M) {
	temporaryDirectory, temporaryDirectoryError := os.MkdirTemp("", "pagepush-git-home-*")
	if temporaryDirectoryError == nil {
		globalConfigurationPath := filepath.Join(temporaryDirectory, "gitconfig")
		configurationContent := "[user]\n\tname = Integration Tester\n\temail = integration@example.com\n[init]\n\tdefaultBranch = main\n"
		if writeError := os.WriteFile(globalConfigurationPath, []byte(configurationContent), 0o600); writeError == nil {
			_ = os.Setenv("GIT_CONFIG_GLOBAL", globalConfigurationPath)
			_ = os.Setenv("GIT_CONFIG_NOSYSTEM", "1")
		}
	}
	_ = os.Setenv("GIT_TERMINAL_PROMPT", "0")

	exitCode := m.Run()

	if temporaryDirectoryError == nil {
		_ = os.RemoveAll(temporaryDirectory)
	}
	os.Exit(exitCode)
}
