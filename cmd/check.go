package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

// checkCmd represents the check command.
var checkCmd = newCheckCmd()

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [references...]",
		Short: "Verify that every reference can be located",
		Long:  checkLongDescription,
		RunE: func(_ *cobra.Command, args []string) error {
			return workflow.Check(context.Background(), resolveArgs(args))
		},
	}

	return cmd
}

func init() {
	checkCmd.PersistentFlags().StringVar(&manifestFlag, manifestFlagName, "", "asset manifest listing references to check")

	rootCmd.AddCommand(checkCmd)
}
