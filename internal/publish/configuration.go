package publish

import (
	"strings"

	"github.com/temirov/pagepush/internal/shared"
)

const (
	configurationRootKeyConstant      = "root"
	configurationBranchKeyConstant    = "branch"
	configurationOutputKeyConstant    = "output"
	configurationRemoteURLKeyConstant = "remote_url"
	configurationDryRunKeyConstant    = "dry_run"
	configurationAssumeYesKeyConstant = "assume_yes"
	configurationKeySeparatorConstant = "."
)

// CommandConfiguration captures persisted configuration for the publish command.
type CommandConfiguration struct {
	RepositoryRoot  string `mapstructure:"root"`
	BranchName      string `mapstructure:"branch"`
	OutputDirectory string `mapstructure:"output"`
	RemoteURL       string `mapstructure:"remote_url"`
	DryRun          bool   `mapstructure:"dry_run"`
	AssumeYes       bool   `mapstructure:"assume_yes"`
}

// DefaultCommandConfiguration returns baseline configuration values for the publish command.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		RepositoryRoot:  shared.DefaultRepositoryRootConstant,
		BranchName:      shared.DefaultPublishBranchNameConstant,
		OutputDirectory: shared.DefaultOutputDirectoryNameConstant,
		RemoteURL:       "",
		DryRun:          false,
		AssumeYes:       false,
	}
}

// DefaultConfigurationValues produces Viper defaults for the publish command.
func DefaultConfigurationValues(rootKey string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		rootKey + configurationKeySeparatorConstant + configurationRootKeyConstant:      defaults.RepositoryRoot,
		rootKey + configurationKeySeparatorConstant + configurationBranchKeyConstant:    defaults.BranchName,
		rootKey + configurationKeySeparatorConstant + configurationOutputKeyConstant:    defaults.OutputDirectory,
		rootKey + configurationKeySeparatorConstant + configurationRemoteURLKeyConstant: defaults.RemoteURL,
		rootKey + configurationKeySeparatorConstant + configurationDryRunKeyConstant:    defaults.DryRun,
		rootKey + configurationKeySeparatorConstant + configurationAssumeYesKeyConstant: defaults.AssumeYes,
	}
}

// Sanitize trims configured values without applying implicit defaults.
func (configuration CommandConfiguration) Sanitize() CommandConfiguration {
	sanitized := configuration
	sanitized.RepositoryRoot = strings.TrimSpace(configuration.RepositoryRoot)
	sanitized.BranchName = strings.TrimSpace(configuration.BranchName)
	sanitized.OutputDirectory = strings.TrimSpace(configuration.OutputDirectory)
	sanitized.RemoteURL = strings.TrimSpace(configuration.RemoteURL)
	return sanitized
}
