// Package rootutils resolves the repository root shared by deployment commands.
package rootutils

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/temirov/pagepush/internal/shared"
	flagutils "github.com/temirov/pagepush/internal/utils/flags"
	pathutils "github.com/temirov/pagepush/internal/utils/path"
)

var repositoryRootPathResolver = pathutils.NewTargetPathResolver()

// Resolve determines the repository root from the --root flag, falling back to
// the configured value and finally the current directory. The result is
// trimmed, home-expanded, and canonicalized to an absolute path.
func Resolve(command *cobra.Command, configuredRoot string) string {
	repositoryRoot := strings.TrimSpace(configuredRoot)

	flagValue, flagChanged, flagAvailable := flagutils.ResolveStringFlag(command, flagutils.DefaultRootFlagName)
	if flagAvailable && flagChanged {
		repositoryRoot = strings.TrimSpace(flagValue)
	}

	if len(repositoryRoot) == 0 {
		repositoryRoot = shared.DefaultRepositoryRootConstant
	}

	return repositoryRootPathResolver.Resolve(repositoryRoot)
}
