package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fabtools/pnpgen/pkg/board"
	"github.com/fabtools/pnpgen/pkg/config"
	"github.com/fabtools/pnpgen/pkg/engine"
	"github.com/fabtools/pnpgen/pkg/report"
	"github.com/fabtools/pnpgen/pkg/telemetry"
)

func newCalibrateCommand() *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "calibrate <rpt-file>",
		Short: "Write the calibration work list for the measurement assistant",
		Long: `Write the list of points the operator probes with the machine needle:
the bed next to the board, the first and Nth component of every tape,
and two board reference parts. The assistant records one measured line
per probed point; the result is a measured-format configuration.

With --watch, additionally keep re-reading the file given with
--measured-config after every save and report how many component
identities are mapped so far. Stop with Ctrl-C once the list is green.`,
		Example: `  pnpgen calibrate board.rpt > worklist.txt

  # Live progress while the operator works through the list
  pnpgen calibrate --watch -C measured.txt board.rpt`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			b, err := loadBoard(ctx, args[0])
			if err != nil {
				return err
			}
			if err := report.WriteCalibrationInstructions(os.Stdout, b); err != nil {
				return err
			}
			if !watch {
				return nil
			}
			if measuredPath == "" {
				return fmt.Errorf("--watch needs --measured-config to know which file to follow")
			}
			return watchCalibration(ctx, b)
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "follow the measured configuration and report progress")

	return cmd
}

// watchCalibration follows the measured configuration until interrupted,
// logging coverage after every save.
func watchCalibration(ctx context.Context, b *board.Board) error {
	log := telemetry.FromContext(ctx).NewComponentLogger("calibrate")
	counts, _ := report.ComponentCounts(b.Parts())

	err := config.WatchMeasured(ctx, measuredPath, b, func(cfg *engine.PlacementConfig, err error) {
		if err != nil {
			log.WithError(err).Warnf("Configuration does not parse cleanly yet")
			return
		}
		mapped := 0
		for id := range counts {
			if cfg.TapeFor(id) != nil {
				mapped++
			}
		}
		l := log.WithField("mapped", fmt.Sprintf("%d/%d", mapped, len(counts)))
		switch {
		case !cfg.BedLevelSet():
			l.Infof("Waiting for the bed level probe")
		case mapped < len(counts):
			l.Infof("Calibration in progress")
		default:
			l.Infof("All component identities measured; ready for place/dispense")
		}
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
