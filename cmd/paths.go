package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"scout.dev/pkg/scout/internal/domain"
)

var reversedFlag bool

// pathsCmd represents the paths command.
var pathsCmd = newPathsCmd()

func newPathsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "paths",
		Short: "Show the resolver state and search order",
		Long: `Show the configured root path, the explicit search paths with their
indices, and the joined search-path string.`,
		Args: cobra.ExactArgs(0),
		RunE: func(_ *cobra.Command, _ []string) error {
			return workflow.Paths(context.Background(), domain.PathsArgs{
				ResolverArgs: resolverArgs(),
				Reversed:     reversedFlag,
			})
		},
	}

	cmd.Flags().BoolVar(&reversedFlag, reversedFlagName, false, "list paths in search order (most specific first)")

	return cmd
}

func init() {
	rootCmd.AddCommand(pathsCmd)
}
