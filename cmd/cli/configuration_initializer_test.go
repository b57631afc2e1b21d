package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConfigurationInitializerWritesUserScopeConfiguration(t *testing.T) {
	homeDirectory := t.TempDir()
	t.Setenv("HOME", homeDirectory)

	initializer := NewConfigurationInitializer()
	writtenPath, initializationError := initializer.Initialize(ConfigurationScopeUser, false)
	require.NoError(t, initializationError)

	expectedPath := filepath.Join(homeDirectory, userConfigurationDirectoryNameConstant, configurationFileNameConstant)
	require.Equal(t, expectedPath, writtenPath)

	writtenContent, readError := os.ReadFile(writtenPath)
	require.NoError(t, readError)

	embeddedContent, _ := EmbeddedDefaultConfiguration()
	require.Equal(t, embeddedContent, writtenContent)
}

func TestConfigurationInitializerDefaultsToLocalScope(t *testing.T) {
	workingDirectory := t.TempDir()
	originalWorkingDirectory, workingDirectoryError := os.Getwd()
	require.NoError(t, workingDirectoryError)
	require.NoError(t, os.Chdir(workingDirectory))
	t.Setenv("PWD", workingDirectory)
	t.Cleanup(func() {
		require.NoError(t, os.Chdir(originalWorkingDirectory))
	})

	initializer := NewConfigurationInitializer()
	writtenPath, initializationError := initializer.Initialize("", false)
	require.NoError(t, initializationError)
	require.Equal(t, configurationFileNameConstant, filepath.Base(writtenPath))

	writtenContent, readError := os.ReadFile(filepath.Join(workingDirectory, configurationFileNameConstant))
	require.NoError(t, readError)
	require.NotEmpty(t, writtenContent)
}

func TestConfigurationInitializerProtectsExistingConfiguration(t *testing.T) {
	homeDirectory := t.TempDir()
	t.Setenv("HOME", homeDirectory)

	initializer := NewConfigurationInitializer()
	writtenPath, firstError := initializer.Initialize(ConfigurationScopeUser, false)
	require.NoError(t, firstError)

	customContent := []byte("common:\n  log_level: debug\n")
	require.NoError(t, os.WriteFile(writtenPath, customContent, 0o600))

	_, secondError := initializer.Initialize(ConfigurationScopeUser, false)
	require.Error(t, secondError)
	require.Contains(t, secondError.Error(), "already exists")

	preservedContent, readError := os.ReadFile(writtenPath)
	require.NoError(t, readError)
	require.Equal(t, customContent, preservedContent)
}

func TestConfigurationInitializerForceOverwritesConfiguration(t *testing.T) {
	homeDirectory := t.TempDir()
	t.Setenv("HOME", homeDirectory)

	initializer := NewConfigurationInitializer()
	writtenPath, firstError := initializer.Initialize(ConfigurationScopeUser, false)
	require.NoError(t, firstError)

	require.NoError(t, os.WriteFile(writtenPath, []byte("stale"), 0o600))

	overwrittenPath, secondError := initializer.Initialize(ConfigurationScopeUser, true)
	require.NoError(t, secondError)
	require.Equal(t, writtenPath, overwrittenPath)

	restoredContent, readError := os.ReadFile(writtenPath)
	require.NoError(t, readError)

	embeddedContent, _ := EmbeddedDefaultConfiguration()
	require.Equal(t, embeddedContent, restoredContent)
}

func TestConfigurationInitializerRejectsUnknownScope(t *testing.T) {
	initializer := NewConfigurationInitializer()
	_, initializationError := initializer.Initialize(ConfigurationScope("global"), false)
	require.Error(t, initializationError)
	require.Contains(t, initializationError.Error(), "unsupported configuration scope")
}
