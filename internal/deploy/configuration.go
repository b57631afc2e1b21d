package deploy

import (
	"strings"

	"github.com/temirov/pagepush/internal/shared"
)

const (
	configurationRootKeyConstant         = "root"
	configurationBranchKeyConstant       = "branch"
	configurationOutputKeyConstant       = "output"
	configurationEntryFileKeyConstant    = "entry_file"
	configurationRemoteURLKeyConstant    = "remote_url"
	configurationSkipRewriteKeyConstant  = "skip_rewrite"
	configurationRequireCleanKeyConstant = "require_clean"
	configurationDryRunKeyConstant       = "dry_run"
	configurationAssumeYesKeyConstant    = "assume_yes"
	configurationKeySeparatorConstant    = "."
)

// CommandConfiguration captures persisted configuration for the deploy command.
type CommandConfiguration struct {
	RepositoryRoot  string `mapstructure:"root"`
	BranchName      string `mapstructure:"branch"`
	OutputDirectory string `mapstructure:"output"`
	EntryFileName   string `mapstructure:"entry_file"`
	RemoteURL       string `mapstructure:"remote_url"`
	SkipRewrite     bool   `mapstructure:"skip_rewrite"`
	RequireClean    bool   `mapstructure:"require_clean"`
	DryRun          bool   `mapstructure:"dry_run"`
	AssumeYes       bool   `mapstructure:"assume_yes"`
}

// DefaultCommandConfiguration returns baseline configuration values for the deploy command.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		RepositoryRoot:  shared.DefaultRepositoryRootConstant,
		BranchName:      shared.DefaultPublishBranchNameConstant,
		OutputDirectory: shared.DefaultOutputDirectoryNameConstant,
		EntryFileName:   shared.DefaultEntryFileNameConstant,
		RemoteURL:       "",
		SkipRewrite:     false,
		RequireClean:    false,
		DryRun:          false,
		AssumeYes:       false,
	}
}

// DefaultConfigurationValues produces Viper defaults for the deploy command.
func DefaultConfigurationValues(rootKey string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		rootKey + configurationKeySeparatorConstant + configurationRootKeyConstant:         defaults.RepositoryRoot,
		rootKey + configurationKeySeparatorConstant + configurationBranchKeyConstant:       defaults.BranchName,
		rootKey + configurationKeySeparatorConstant + configurationOutputKeyConstant:       defaults.OutputDirectory,
		rootKey + configurationKeySeparatorConstant + configurationEntryFileKeyConstant:    defaults.EntryFileName,
		rootKey + configurationKeySeparatorConstant + configurationRemoteURLKeyConstant:    defaults.RemoteURL,
		rootKey + configurationKeySeparatorConstant + configurationSkipRewriteKeyConstant:  defaults.SkipRewrite,
		rootKey + configurationKeySeparatorConstant + configurationRequireCleanKeyConstant: defaults.RequireClean,
		rootKey + configurationKeySeparatorConstant + configurationDryRunKeyConstant:       defaults.DryRun,
		rootKey + configurationKeySeparatorConstant + configurationAssumeYesKeyConstant:    defaults.AssumeYes,
	}
}

// Sanitize trims configured values without applying implicit defaults.
func (configuration CommandConfiguration) Sanitize() CommandConfiguration {
	sanitized := configuration
	sanitized.RepositoryRoot = strings.TrimSpace(configuration.RepositoryRoot)
	sanitized.BranchName = strings.TrimSpace(configuration.BranchName)
	sanitized.OutputDirectory = strings.TrimSpace(configuration.OutputDirectory)
	sanitized.EntryFileName = strings.TrimSpace(configuration.EntryFileName)
	sanitized.RemoteURL = strings.TrimSpace(configuration.RemoteURL)
	return sanitized
}
