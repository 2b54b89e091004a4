package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fabtools/pnpgen/pkg/telemetry"
)

var (
	// Global flags
	configPath   string
	measuredPath string
	profilePath  string
	verbose      bool
	jsonLogs     bool
)

// Execute runs the root command
func Execute(ctx context.Context, version, commit, buildDate string) error {
	rootCmd := newRootCommand(version, commit, buildDate)
	return rootCmd.ExecuteContext(ctx)
}

func newRootCommand(version, commit, buildDate string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "pnpgen",
		Short: "pnpgen - placement report to pick-and-place instructions",
		Long: `pnpgen converts a board placement report into ordered machine
instructions for a pick-and-place or solder-dispensing apparatus.

Workflow:
  - 'list' the components found in a placement report
  - 'template' a feeder configuration, fill in the measured geometry,
    or 'calibrate' to produce a work list for the measurement assistant
  - 'place' or 'dispense' to emit the instruction stream (G-code, or
    PostScript for visual verification)`,
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildDate),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Thread the run logger through the context so library code
			// can pick it up without global state.
			logCfg := telemetry.DefaultLoggingConfig()
			if verbose {
				logCfg.Level = "debug"
			}
			if jsonLogs {
				logCfg.Format = "json"
			}
			logger := telemetry.NewLogger(logCfg)
			cmd.SetContext(logger.WithContext(cmd.Context()))
		},
	}

	// Persistent flags available to all commands
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "rich-format feeder configuration file")
	rootCmd.PersistentFlags().StringVarP(&measuredPath, "measured-config", "C", "", "measured-format configuration from the calibration assistant")
	rootCmd.PersistentFlags().StringVar(&profilePath, "profile", "", "machine profile YAML file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonLogs, "json", false, "log in JSON format")

	// Add subcommands
	rootCmd.AddCommand(newListCommand())
	rootCmd.AddCommand(newTemplateCommand())
	rootCmd.AddCommand(newCalibrateCommand())
	rootCmd.AddCommand(newValidateCommand())
	rootCmd.AddCommand(newPlaceCommand())
	rootCmd.AddCommand(newDispenseCommand())

	return rootCmd
}
