package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"scout.dev/pkg/scout/internal/domain"
	m "scout.dev/pkg/scout/internal/model"
)

var saveReportFlag bool
var workersFlag int

// resolveCmd represents the resolve command.
var resolveCmd = newResolveCmd()

func newResolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve [references...]",
		Short: "Qualify asset references into absolute locations",
		Long:  resolveLongDescription,
		RunE: func(_ *cobra.Command, args []string) error {
			return workflow.Resolve(context.Background(), resolveArgs(args))
		},
	}

	cmd.Flags().BoolVar(&saveReportFlag, saveFlagName, false, "save the report to the output directory")
	cmd.Flags().IntVarP(&workersFlag, workersFlagName, "w", viper.GetInt(workersConfigKey), "number of parallel workers for qualification")
	bindFlagToConfig(cmd.Flags().Lookup(workersFlagName), workersConfigKey)

	return cmd
}

// resolveArgs builds the batch arguments shared by resolve and check.
func resolveArgs(args []string) domain.ResolveArgs {
	reports := m.Path("")
	if saveReportFlag {
		reports = m.Path(viper.GetString(outputFlagName))
	}

	return domain.ResolveArgs{
		ResolverArgs: resolverArgs(),
		Refs:         parseRefs(args),
		Manifest:     m.Path(manifestFlag),
		Workers:      viper.GetInt(workersConfigKey),
		Reports:      reports,
	}
}

func init() {
	resolveCmd.PersistentFlags().StringVarP(&manifestFlag, manifestFlagName, "m", "", "asset manifest listing references to resolve")

	rootCmd.AddCommand(resolveCmd)
}
