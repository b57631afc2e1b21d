package rewrite_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/temirov/pagepush/internal/rewrite"
)

const rewriteTestRemoteURL = "https://github.com/example/site.git"

func prepareRepository(t *testing.T, remoteURL string) (string, string) {
	t.Helper()
	repositoryRoot := t.TempDir()

	if len(remoteURL) > 0 {
		metadataDirectory := filepath.Join(repositoryRoot, ".git")
		require.NoError(t, os.MkdirAll(metadataDirectory, 0o755))
		configurationContent := "[remote \"origin\"]\n\turl = " + remoteURL + "\n"
		require.NoError(t, os.WriteFile(filepath.Join(metadataDirectory, "config"), []byte(configurationContent), 0o644))
	}

	outputDirectory := filepath.Join(repositoryRoot, "dist")
	require.NoError(t, os.MkdirAll(outputDirectory, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(outputDirectory, "bundle.js"), []byte("console.log(1);\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(outputDirectory, "index.html"), []byte("<script src=\"bundle.js\"></script>\n"), 0o644))

	return repositoryRoot, outputDirectory
}

func buildRewriteCommand(t *testing.T, builder rewrite.CommandBuilder) *cobra.Command {
	t.Helper()
	command, buildError := builder.Build()
	require.NoError(t, buildError)
	command.SetContext(context.Background())
	return command
}

func TestBuildReturnsCommand(t *testing.T) {
	builder := rewrite.CommandBuilder{}
	command, buildError := builder.Build()
	require.NoError(t, buildError)
	require.IsType(t, &cobra.Command{}, command)
	require.Equal(t, "rewrite", command.Use)
}

func TestCommandRewritesEntryFileUsingResolvedOrigin(t *testing.T) {
	repositoryRoot, outputDirectory := prepareRepository(t, rewriteTestRemoteURL)

	builder := rewrite.CommandBuilder{
		LoggerProvider: func() *zap.Logger { return zap.NewNop() },
		ConfigurationProvider: func() rewrite.CommandConfiguration {
			return rewrite.CommandConfiguration{RepositoryRoot: repositoryRoot}
		},
	}
	command := buildRewriteCommand(t, builder)

	require.NoError(t, command.RunE(command, []string{}))

	rewrittenContent, readError := os.ReadFile(filepath.Join(outputDirectory, "index.html"))
	require.NoError(t, readError)
	require.Equal(t, "<script src=\"site/bundle.js\"></script>\n", string(rewrittenContent))
}

func TestCommandRemoteURLFlagOverridesResolution(t *testing.T) {
	repositoryRoot, outputDirectory := prepareRepository(t, "")

	builder := rewrite.CommandBuilder{
		LoggerProvider: func() *zap.Logger { return zap.NewNop() },
		ConfigurationProvider: func() rewrite.CommandConfiguration {
			return rewrite.CommandConfiguration{RepositoryRoot: repositoryRoot}
		},
	}
	command := buildRewriteCommand(t, builder)
	require.NoError(t, command.Flags().Set("remote-url", "git@github.com:example/docs.git"))

	require.NoError(t, command.RunE(command, []string{}))

	rewrittenContent, readError := os.ReadFile(filepath.Join(outputDirectory, "index.html"))
	require.NoError(t, readError)
	require.Equal(t, "<script src=\"docs/bundle.js\"></script>\n", string(rewrittenContent))
}

func TestCommandFailsWithoutResolvableRemote(t *testing.T) {
	repositoryRoot, _ := prepareRepository(t, "")

	builder := rewrite.CommandBuilder{
		LoggerProvider: func() *zap.Logger { return zap.NewNop() },
		ConfigurationProvider: func() rewrite.CommandConfiguration {
			return rewrite.CommandConfiguration{RepositoryRoot: repositoryRoot}
		},
	}
	command := buildRewriteCommand(t, builder)

	require.Error(t, command.RunE(command, []string{}))
}

func TestCommandDryRunLeavesEntryFileUntouched(t *testing.T) {
	repositoryRoot, outputDirectory := prepareRepository(t, rewriteTestRemoteURL)

	builder := rewrite.CommandBuilder{
		LoggerProvider: func() *zap.Logger { return zap.NewNop() },
		ConfigurationProvider: func() rewrite.CommandConfiguration {
			return rewrite.CommandConfiguration{RepositoryRoot: repositoryRoot}
		},
	}
	command := buildRewriteCommand(t, builder)
	require.NoError(t, command.PersistentFlags().Set("dry-run", "true"))

	require.NoError(t, command.RunE(command, []string{}))

	unchangedContent, readError := os.ReadFile(filepath.Join(outputDirectory, "index.html"))
	require.NoError(t, readError)
	require.Equal(t, "<script src=\"bundle.js\"></script>\n", string(unchangedContent))
}

func TestCommandEntryFileFlagSelectsAlternateFile(t *testing.T) {
	repositoryRoot, outputDirectory := prepareRepository(t, rewriteTestRemoteURL)
	require.NoError(t, os.WriteFile(filepath.Join(outputDirectory, "landing.html"), []byte("<link href=\"bundle.js\">\n"), 0o644))

	builder := rewrite.CommandBuilder{
		LoggerProvider: func() *zap.Logger { return zap.NewNop() },
		ConfigurationProvider: func() rewrite.CommandConfiguration {
			return rewrite.CommandConfiguration{RepositoryRoot: repositoryRoot}
		},
	}
	command := buildRewriteCommand(t, builder)
	require.NoError(t, command.Flags().Set("entry-file", "landing.html"))

	require.NoError(t, command.RunE(command, []string{}))

	rewrittenContent, readError := os.ReadFile(filepath.Join(outputDirectory, "landing.html"))
	require.NoError(t, readError)
	require.Equal(t, "<link href=\"site/bundle.js\">\n", string(rewrittenContent))

	defaultEntryContent, defaultReadError := os.ReadFile(filepath.Join(outputDirectory, "index.html"))
	require.NoError(t, defaultReadError)
	require.Equal(t, "<script src=\"bundle.js\"></script>\n", string(defaultEntryContent))
}
