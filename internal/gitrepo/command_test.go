package gitrepo_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/pagepush/internal/gitrepo"
	flagutils "github.com/temirov/pagepush/internal/utils/flags"
)

const originCommandTestRemoteURL = "https://github.com/example/site.git"

func newOriginCommandForRoot(t *testing.T, repositoryRoot string) (*bytes.Buffer, func() error) {
	t.Helper()

	builder := gitrepo.CommandBuilder{}
	command, buildError := builder.Build()
	require.NoError(t, buildError)

	flagutils.BindRootFlags(command, flagutils.RootFlagValues{}, flagutils.RootFlagDefinition{Enabled: true})
	require.NoError(t, command.Flags().Set(flagutils.DefaultRootFlagName, repositoryRoot))

	outputBuffer := &bytes.Buffer{}
	command.SetOut(outputBuffer)

	return outputBuffer, func() error { return command.RunE(command, []string{}) }
}

func TestOriginCommandPrintsResolvedURL(t *testing.T) {
	repositoryRoot := t.TempDir()
	metadataDirectory := filepath.Join(repositoryRoot, ".git")
	require.NoError(t, os.MkdirAll(metadataDirectory, 0o755))
	configurationContent := "[core]\n\tbare = false\n[remote \"origin\"]\n\turl = " + originCommandTestRemoteURL + "\n\tfetch = +refs/heads/*:refs/remotes/origin/*\n"
	require.NoError(t, os.WriteFile(filepath.Join(metadataDirectory, "config"), []byte(configurationContent), 0o644))

	outputBuffer, run := newOriginCommandForRoot(t, repositoryRoot)

	require.NoError(t, run())
	require.Equal(t, originCommandTestRemoteURL+"\n", outputBuffer.String())
}

func TestOriginCommandFailsWithoutConfiguration(t *testing.T) {
	repositoryRoot := t.TempDir()

	outputBuffer, run := newOriginCommandForRoot(t, repositoryRoot)

	require.Error(t, run())
	require.Empty(t, outputBuffer.String())
}

func TestOriginCommandSurfacesMissingOriginSection(t *testing.T) {
	repositoryRoot := t.TempDir()
	metadataDirectory := filepath.Join(repositoryRoot, ".git")
	require.NoError(t, os.MkdirAll(metadataDirectory, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(metadataDirectory, "config"), []byte("[core]\n\tbare = false\n"), 0o644))

	outputBuffer, run := newOriginCommandForRoot(t, repositoryRoot)

	runError := run()
	require.ErrorIs(t, runError, gitrepo.ErrOriginSectionNotFound)
	require.Empty(t, outputBuffer.String())
}
