// Package cmd provides the root command and CLI setup for scout.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"scout.dev/pkg/scout/internal/adapter"
	"scout.dev/pkg/scout/internal/controller"
	"scout.dev/pkg/scout/internal/domain"
	m "scout.dev/pkg/scout/internal/model"
)

var manifestLoader adapter.ManifestLoader
var reportStore adapter.ReportStore
var ui controller.UI
var workflow domain.Workflow

// rootPathFlag anchors relative search paths and references.
var rootPathFlag string

// searchPathsFlag holds explicit search paths, later entries shadowing
// earlier ones.
var searchPathsFlag []string

// envVarFlag names the environment variable seeding the resolver.
var envVarFlag string

// separatorFlag selects the path-list separator ("" = platform, "osl" = ':').
var separatorFlag string

var outputDirFlag string
var manifestFlag string
var interactiveFlag bool
var verboseFlag bool
var logFileFlag string

func init() {
	configureRootFlags(rootCmd)

	// Initialize shared dependencies.
	manifestLoader = adapter.NewLocalManifestLoader()
	reportStore = adapter.NewLocalReportStore()
	ui = controller.NewUI(rootCmd, false)
	workflow = domain.NewWorkflow(manifestLoader, reportStore, ui)
}

const searchOrderHelp = `Search order (most specific first):
  - explicit paths, last added first (--path, manifest paths)
  - environment-variable paths (--env-var, absolute entries only)
  - the project root (--root)
  - the current working directory`

const rootLongDescription = `Scout resolves logical asset references (textures, shaders, includes)
against layered search paths: explicit directories, directories taken
from an environment variable, and an optional project root.

` + searchOrderHelp

const resolveLongDescription = `Qualify each reference into a usable absolute location and report which
search path produced it. Unresolved references are reported, not errors.

` + searchOrderHelp

const checkLongDescription = `Check that every reference can be located. Exits non-zero when any
reference is missing.

` + searchOrderHelp

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scout",
		Short: "Layered search-path resolution for render assets",
		Long:  rootLongDescription,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			configureLogger(logFileFlag, verboseFlag)

			// The UI choice depends on flags, so rewire it after parsing.
			ui = controller.NewUI(cmd.Root(), viper.GetBool(interactiveFlagName))
			workflow = domain.NewWorkflow(manifestLoader, reportStore, ui)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVarP(
			&outputDirFlag, outputFlagName, "o",
			viper.GetString(outputFlagName),
			"output directory for resolution reports",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(outputFlagName), outputFlagName)

	cmd.PersistentFlags().StringVarP(&rootPathFlag, rootFlagName, "r", viper.GetString(rootConfigKey), "root directory anchoring relative paths")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(rootFlagName), rootConfigKey)

	cmd.PersistentFlags().StringArrayVarP(&searchPathsFlag, pathFlagName, "I", viper.GetStringSlice(pathsConfigKey), "explicit search path (can be repeated; last wins)")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(pathFlagName), pathsConfigKey)

	cmd.PersistentFlags().StringVar(&envVarFlag, envVarFlagName, viper.GetString(envVarConfigKey), "environment variable seeding the search paths")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(envVarFlagName), envVarConfigKey)

	cmd.PersistentFlags().StringVar(&separatorFlag, separatorFlagName, viper.GetString(separatorConfigKey), "path-list separator: platform default, 'osl', or a literal character")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(separatorFlagName), separatorConfigKey)

	cmd.PersistentFlags().BoolVar(&interactiveFlag, interactiveFlagName, false, "browse results in an interactive TUI")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(interactiveFlagName), interactiveFlagName)
	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", false, "log at debug level")
	cmd.PersistentFlags().StringVar(&logFileFlag, "log-file", "", "log file path (default from config)")
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func parseRefs(args []string) []m.Reference {
	refs := make([]m.Reference, 0, len(args))
	for _, arg := range args {
		refs = append(refs, m.Reference(arg))
	}

	return refs
}

// resolverArgs assembles the resolver configuration shared by the
// resolve, check and paths commands from the current viper state.
func resolverArgs() domain.ResolverArgs {
	paths := viper.GetStringSlice(pathsConfigKey)

	modelPaths := make([]m.Path, 0, len(paths))
	for _, p := range paths {
		modelPaths = append(modelPaths, m.Path(p))
	}

	return domain.ResolverArgs{
		Root:      m.Path(viper.GetString(rootConfigKey)),
		Paths:     modelPaths,
		EnvVar:    viper.GetString(envVarConfigKey),
		Separator: parseSeparator(viper.GetString(separatorConfigKey)),
	}
}
