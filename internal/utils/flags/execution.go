// Package flags provides helpers for binding standardized execution flags to Cobra commands.
package flags

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// ExecutionDefaults describes default flag values shared across commands.
type ExecutionDefaults struct {
	DryRun       bool
	AssumeYes    bool
	RequireClean bool
}

// ExecutionFlagDefinition captures a single flag's configuration.
type ExecutionFlagDefinition struct {
	Name      string
	Usage     string
	Shorthand string
	Enabled   bool
}

// ExecutionFlagDefinitions groups execution flag definitions.
type ExecutionFlagDefinitions struct {
	DryRun       ExecutionFlagDefinition
	AssumeYes    ExecutionFlagDefinition
	RequireClean ExecutionFlagDefinition
}

// BindExecutionFlags attaches standardized execution flags to the provided command using persistent scope.
func BindExecutionFlags(command *cobra.Command, defaults ExecutionDefaults, definitions ExecutionFlagDefinitions) {
	if command == nil {
		return
	}

	persistentFlagSet := command.PersistentFlags()

	bindBoolFlag(persistentFlagSet, definitions.DryRun, defaults.DryRun)
	bindBoolFlag(persistentFlagSet, definitions.AssumeYes, defaults.AssumeYes)
	bindBoolFlag(persistentFlagSet, definitions.RequireClean, defaults.RequireClean)
}

func bindBoolFlag(flagSet *pflag.FlagSet, definition ExecutionFlagDefinition, defaultValue bool) {
	if !definition.Enabled {
		return
	}

	AddToggleFlag(flagSet, nil, definition.Name, definition.Shorthand, defaultValue, definition.Usage)
}

// ExecutionFlagValues reports resolved execution flag values alongside whether each was explicitly set.
type ExecutionFlagValues struct {
	DryRun          bool
	DryRunSet       bool
	AssumeYes       bool
	AssumeYesSet    bool
	RequireClean    bool
	RequireCleanSet bool
}

// ResolveExecutionFlags reads execution flag values from the command's local,
// persistent, and inherited flag sets. The second return value reports whether
// any execution flag was registered on the command.
func ResolveExecutionFlags(command *cobra.Command) (ExecutionFlagValues, bool) {
	values := ExecutionFlagValues{}
	if command == nil {
		return values, false
	}

	anyAvailable := false
	if value, changed, available := ResolveBoolFlag(command, DryRunFlagName); available {
		values.DryRun = value
		values.DryRunSet = changed
		anyAvailable = true
	}
	if value, changed, available := ResolveBoolFlag(command, AssumeYesFlagName); available {
		values.AssumeYes = value
		values.AssumeYesSet = changed
		anyAvailable = true
	}
	if value, changed, available := ResolveBoolFlag(command, RequireCleanFlagName); available {
		values.RequireClean = value
		values.RequireCleanSet = changed
		anyAvailable = true
	}

	return values, anyAvailable
}

// ResolveBoolFlag reads a boolean flag from the command's flag sets, reporting
// the value, whether the flag was explicitly changed, and whether it exists.
func ResolveBoolFlag(command *cobra.Command, flagName string) (bool, bool, bool) {
	resolvedFlag := lookupFlag(command, flagName)
	if resolvedFlag == nil {
		return false, false, false
	}
	return resolvedFlag.Value.String() == toggleTrueCanonicalValue, resolvedFlag.Changed, true
}

// ResolveStringFlag reads a string flag from the command's flag sets, reporting
// the value, whether the flag was explicitly changed, and whether it exists.
func ResolveStringFlag(command *cobra.Command, flagName string) (string, bool, bool) {
	resolvedFlag := lookupFlag(command, flagName)
	if resolvedFlag == nil {
		return "", false, false
	}
	return resolvedFlag.Value.String(), resolvedFlag.Changed, true
}

func lookupFlag(command *cobra.Command, flagName string) *pflag.Flag {
	if command == nil {
		return nil
	}

	flagSetsToInspect := []*pflag.FlagSet{
		command.Flags(),
		command.PersistentFlags(),
		command.InheritedFlags(),
	}
	for _, flagSet := range flagSetsToInspect {
		if flagSet == nil {
			continue
		}
		if resolvedFlag := flagSet.Lookup(flagName); resolvedFlag != nil {
			return resolvedFlag
		}
	}
	return nil
}
