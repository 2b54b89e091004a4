package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/fabtools/pnpgen/pkg/engine"
	"github.com/fabtools/pnpgen/pkg/telemetry"
)

func newPlaceCommand() *cobra.Command {
	var postscript bool

	cmd := &cobra.Command{
		Use:   "place <rpt-file>",
		Short: "Emit the pick-and-place instruction stream",
		Long: `Emit pick-and-place instructions for every part in the placement report.

With a configuration, parts are ordered ascending by feeder pickup height
(shorter components first, so the head cannot knock over taller
neighbours) and each pick advances the feeder. Without one, parts are
processed in board order with no feeder tracking.`,
		Example: `  # G-code with a hand-edited feeder configuration
  pnpgen place -c feeders.conf board.rpt > place.gcode

  # PostScript preview using a measured configuration
  pnpgen place -C measured.txt --postscript board.rpt > place.ps`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			log := telemetry.FromContext(ctx)

			b, err := loadBoard(ctx, args[0])
			if err != nil {
				return err
			}
			cfg, err := loadConfig(ctx, b)
			if err != nil {
				return err
			}
			if cfg == nil {
				log.Warn("No configuration given; placing in board order without feeder tracking")
			}

			mach, err := newMachine(os.Stdout, postscript)
			if err != nil {
				return err
			}

			metadata, runID := runMetadata()
			ctx = log.WithRunID(runID).WithContext(ctx)

			if err := mach.Init(cfg, metadata, b.Dimension()); err != nil {
				return err
			}
			engine.NewSequencer(cfg, mach).PlaceAll(ctx, b)
			return mach.Finish()
		},
	}

	cmd.Flags().BoolVarP(&postscript, "postscript", "P", false, "emit PostScript instead of G-code")

	return cmd
}
