package gitrepo

import (
	"fmt"

	"github.com/spf13/cobra"

	rootutils "github.com/temirov/pagepush/internal/utils/roots"
)

const (
	originCommandUseConstant              = "origin"
	originCommandShortDescriptionConstant = "Print the origin remote URL of the repository"
	originCommandLongDescriptionConstant  = "origin scans the repository's .git/config for the origin remote and prints its URL. The URL is the only output; resolution failures exit non-zero."
)

// CommandBuilder assembles the origin command.
type CommandBuilder struct{}

// Build constructs the origin command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   originCommandUseConstant,
		Short: originCommandShortDescriptionConstant,
		Long:  originCommandLongDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE:  builder.run,
	}
	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, _ []string) error {
	repositoryRoot := rootutils.Resolve(command, "")

	originURL, resolveError := ResolveOriginURL(repositoryRoot)
	if resolveError != nil {
		return resolveError
	}

	fmt.Fprintln(command.OutOrStdout(), originURL)
	return nil
}
