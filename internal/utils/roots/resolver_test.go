package rootutils_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	flagutils "github.com/temirov/pagepush/internal/utils/flags"
	rootutils "github.com/temirov/pagepush/internal/utils/roots"
)

func newRootFlagCommand() *cobra.Command {
	command := &cobra.Command{Use: "test"}
	flagutils.BindRootFlags(command, flagutils.RootFlagValues{}, flagutils.RootFlagDefinition{Enabled: true})
	return command
}

func TestResolvePrefersChangedFlag(t *testing.T) {
	flaggedRoot := t.TempDir()
	configuredRoot := t.TempDir()

	command := newRootFlagCommand()
	require.NoError(t, command.Flags().Set(flagutils.DefaultRootFlagName, flaggedRoot))

	resolvedRoot := rootutils.Resolve(command, configuredRoot)
	require.Equal(t, flaggedRoot, resolvedRoot)
}

func TestResolveFallsBackToConfiguredRoot(t *testing.T) {
	configuredRoot := t.TempDir()

	command := newRootFlagCommand()

	resolvedRoot := rootutils.Resolve(command, configuredRoot)
	require.Equal(t, configuredRoot, resolvedRoot)
}

func TestResolveDefaultsToWorkingDirectory(t *testing.T) {
	workingDirectory, workingDirectoryError := os.Getwd()
	require.NoError(t, workingDirectoryError)

	resolvedRoot := rootutils.Resolve(newRootFlagCommand(), "")
	require.Equal(t, filepath.Clean(workingDirectory), resolvedRoot)
}

func TestResolveCanonicalizesRelativeRoots(t *testing.T) {
	workingDirectory, workingDirectoryError := os.Getwd()
	require.NoError(t, workingDirectoryError)

	resolvedRoot := rootutils.Resolve(nil, "./build/..")
	require.Equal(t, filepath.Clean(workingDirectory), resolvedRoot)
}
