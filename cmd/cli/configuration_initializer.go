package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

const (
	userConfigurationDirectoryNameConstant          = ".pagepush"
	configurationFileNameConstant                   = configurationNameConstant + "." + configurationTypeConstant
	configurationDirectoryPermissionConstant        = fs.FileMode(0o755)
	configurationFilePermissionConstant             = fs.FileMode(0o644)
	configurationFileExistsTemplateConstant         = "configuration file %s already exists; pass --force to overwrite"
	configurationFileInspectionTemplateConstant     = "unable to inspect configuration file %s: %w"
	configurationDirectoryCreationTemplateConstant  = "unable to create configuration directory %s: %w"
	configurationFileWriteTemplateConstant          = "unable to write configuration file %s: %w"
	workingDirectoryResolutionTemplateConstant      = "unable to determine working directory: %w"
	homeDirectoryResolutionTemplateConstant         = "unable to determine home directory: %w"
	unsupportedConfigurationScopeTemplateConstant   = "unsupported configuration scope %q"
)

// ConfigurationScope selects the destination directory for an initialized configuration file.
type ConfigurationScope string

// Supported configuration scopes.
const (
	ConfigurationScopeLocal ConfigurationScope = "local"
	ConfigurationScopeUser  ConfigurationScope = "user"
)

// ConfigurationInitializer writes the embedded default configuration to disk.
type ConfigurationInitializer struct{}

// NewConfigurationInitializer constructs a configuration initializer.
func NewConfigurationInitializer() *ConfigurationInitializer {
	return &ConfigurationInitializer{}
}

// Initialize writes the embedded default configuration to the path selected by
// the scope and returns the written path. Existing files are preserved unless
// forceOverwrite is set.
func (initializer *ConfigurationInitializer) Initialize(scope ConfigurationScope, forceOverwrite bool) (string, error) {
	targetPath, resolveError := initializer.resolveTargetPath(scope)
	if resolveError != nil {
		return "", resolveError
	}

	if !forceOverwrite {
		_, statError := os.Stat(targetPath)
		switch {
		case statError == nil:
			return "", fmt.Errorf(configurationFileExistsTemplateConstant, targetPath)
		case !errors.Is(statError, os.ErrNotExist):
			return "", fmt.Errorf(configurationFileInspectionTemplateConstant, targetPath, statError)
		}
	}

	targetDirectory := filepath.Dir(targetPath)
	if directoryError := os.MkdirAll(targetDirectory, configurationDirectoryPermissionConstant); directoryError != nil {
		return "", fmt.Errorf(configurationDirectoryCreationTemplateConstant, targetDirectory, directoryError)
	}

	configurationContent, _ := EmbeddedDefaultConfiguration()
	if writeError := os.WriteFile(targetPath, configurationContent, configurationFilePermissionConstant); writeError != nil {
		return "", fmt.Errorf(configurationFileWriteTemplateConstant, targetPath, writeError)
	}

	return targetPath, nil
}

func (initializer *ConfigurationInitializer) resolveTargetPath(scope ConfigurationScope) (string, error) {
	normalizedScope := ConfigurationScope(strings.ToLower(strings.TrimSpace(string(scope))))
	switch normalizedScope {
	case "", ConfigurationScopeLocal:
		workingDirectory, workingDirectoryError := os.Getwd()
		if workingDirectoryError != nil {
			return "", fmt.Errorf(workingDirectoryResolutionTemplateConstant, workingDirectoryError)
		}
		return filepath.Join(workingDirectory, configurationFileNameConstant), nil
	case ConfigurationScopeUser:
		homeDirectory, homeDirectoryError := os.UserHomeDir()
		if homeDirectoryError != nil {
			return "", fmt.Errorf(homeDirectoryResolutionTemplateConstant, homeDirectoryError)
		}
		return filepath.Join(homeDirectory, userConfigurationDirectoryNameConstant, configurationFileNameConstant), nil
	default:
		return "", fmt.Errorf(unsupportedConfigurationScopeTemplateConstant, scope)
	}
}
