package flags

import "github.com/spf13/cobra"

const (
	// DefaultRootFlagName exposes the shared repository root flag name.
	DefaultRootFlagName = "root"
	// DefaultRootFlagUsage describes the shared repository root flag purpose.
	DefaultRootFlagUsage = "Repository root containing the build output"
	// DryRunFlagName exposes the shared dry-run flag name.
	DryRunFlagName = "dry-run"
	// DryRunFlagUsage describes the shared dry-run flag purpose.
	DryRunFlagUsage = "Preview operations without making changes"
	// AssumeYesFlagName exposes the shared assume-yes flag name.
	AssumeYesFlagName = "yes"
	// AssumeYesFlagShorthand provides the shorthand for the assume-yes flag.
	AssumeYesFlagShorthand = "y"
	// AssumeYesFlagUsage describes the shared assume-yes flag purpose.
	AssumeYesFlagUsage = "Automatically confirm prompts"
	// RemoteURLFlagName exposes the shared remote URL override flag name.
	RemoteURLFlagName = "remote-url"
	// RemoteURLFlagUsage describes the shared remote URL override flag purpose.
	RemoteURLFlagUsage = "Remote URL to publish to instead of the resolved origin"
	// RequireCleanFlagName exposes the shared clean-worktree flag name.
	RequireCleanFlagName = "require-clean"
	// RequireCleanFlagUsage describes the shared clean-worktree flag purpose.
	RequireCleanFlagUsage = "Require a clean repository worktree before deploying"
)

// BranchFlagDefinition captures configuration for branch context flags.
type BranchFlagDefinition struct {
	Name    string
	Usage   string
	Enabled bool
}

// BranchFlagValues stores branch context flag values.
type BranchFlagValues struct {
	Name string
}

// BindBranchFlags attaches branch context flags to the provided command.
func BindBranchFlags(command *cobra.Command, defaults BranchFlagValues, definition BranchFlagDefinition) *BranchFlagValues {
	values := defaults
	if command == nil {
		return &values
	}
	if !definition.Enabled || len(definition.Name) == 0 {
		return &values
	}

	command.PersistentFlags().StringVar(&values.Name, definition.Name, defaults.Name, definition.Usage)
	return &values
}

// RootFlagDefinition captures configuration for the repository root flag.
type RootFlagDefinition struct {
	Name       string
	Usage      string
	Enabled    bool
	Persistent bool
}

// RootFlagValues stores the repository root flag value.
type RootFlagValues struct {
	Root string
}

// BindRootFlags attaches the standard repository root flag to the provided command.
func BindRootFlags(command *cobra.Command, defaults RootFlagValues, definition RootFlagDefinition) *RootFlagValues {
	values := defaults
	if command == nil {
		return &values
	}
	if !definition.Enabled {
		return &values
	}
	flagName := definition.Name
	if len(flagName) == 0 {
		flagName = DefaultRootFlagName
	}
	flagUsage := definition.Usage
	if len(flagUsage) == 0 {
		flagUsage = DefaultRootFlagUsage
	}

	targetSet := command.PersistentFlags()
	if !definition.Persistent {
		targetSet = command.Flags()
	}

	if targetSet.Lookup(flagName) == nil {
		targetSet.StringVar(&values.Root, flagName, values.Root, flagUsage)
	}

	if definition.Persistent {
		if command.Flags().Lookup(flagName) == nil {
			if persistentFlag := targetSet.Lookup(flagName); persistentFlag != nil {
				command.Flags().AddFlag(persistentFlag)
			}
		}
	}
	return &values
}

// EnsureRemoteURLFlag guarantees the shared remote URL flag is available on the command.
func EnsureRemoteURLFlag(command *cobra.Command, defaultValue string, usage string) {
	if command == nil {
		return
	}

	persistentSet := command.PersistentFlags()
	if persistentSet.Lookup(RemoteURLFlagName) == nil {
		persistentSet.String(RemoteURLFlagName, defaultValue, usage)
	}

	if command.Flags().Lookup(RemoteURLFlagName) == nil {
		if remoteURLFlag := persistentSet.Lookup(RemoteURLFlagName); remoteURLFlag != nil {
			command.Flags().AddFlag(remoteURLFlag)
		}
	}
}
