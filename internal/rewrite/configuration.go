package rewrite

import (
	"strings"

	"github.com/temirov/pagepush/internal/shared"
)

const (
	configurationRootKeyConstant      = "root"
	configurationOutputKeyConstant    = "output"
	configurationEntryFileKeyConstant = "entry_file"
	configurationRemoteURLKeyConstant = "remote_url"
	configurationDryRunKeyConstant    = "dry_run"
	configurationKeySeparatorConstant = "."
)

// CommandConfiguration captures persisted configuration for the rewrite command.
type CommandConfiguration struct {
	RepositoryRoot  string `mapstructure:"root"`
	OutputDirectory string `mapstructure:"output"`
	EntryFileName   string `mapstructure:"entry_file"`
	RemoteURL       string `mapstructure:"remote_url"`
	DryRun          bool   `mapstructure:"dry_run"`
}

// DefaultCommandConfiguration returns baseline configuration values for the rewrite command.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		RepositoryRoot:  shared.DefaultRepositoryRootConstant,
		OutputDirectory: shared.DefaultOutputDirectoryNameConstant,
		EntryFileName:   shared.DefaultEntryFileNameConstant,
		RemoteURL:       "",
		DryRun:          false,
	}
}

// DefaultConfigurationValues produces Viper defaults for the rewrite command.
func DefaultConfigurationValues(rootKey string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		rootKey + configurationKeySeparatorConstant + configurationRootKeyConstant:      defaults.RepositoryRoot,
		rootKey + configurationKeySeparatorConstant + configurationOutputKeyConstant:    defaults.OutputDirectory,
		rootKey + configurationKeySeparatorConstant + configurationEntryFileKeyConstant: defaults.EntryFileName,
		rootKey + configurationKeySeparatorConstant + configurationRemoteURLKeyConstant: defaults.RemoteURL,
		rootKey + configurationKeySeparatorConstant + configurationDryRunKeyConstant:    defaults.DryRun,
	}
}

// Sanitize trims configured values without applying implicit defaults.
func (configuration CommandConfiguration) Sanitize() CommandConfiguration {
	sanitized := configuration
	sanitized.RepositoryRoot = strings.TrimSpace(configuration.RepositoryRoot)
	sanitized.OutputDirectory = strings.TrimSpace(configuration.OutputDirectory)
	sanitized.EntryFileName = strings.TrimSpace(configuration.EntryFileName)
	sanitized.RemoteURL = strings.TrimSpace(configuration.RemoteURL)
	return sanitized
}
