package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fabtools/pnpgen/pkg/engine"
	"github.com/fabtools/pnpgen/pkg/machine"
	"github.com/fabtools/pnpgen/pkg/optimize"
	"github.com/fabtools/pnpgen/pkg/telemetry"
)

func newDispenseCommand() *cobra.Command {
	var (
		postscript bool
		dispenseMS string
	)

	cmd := &cobra.Command{
		Use:   "dispense <rpt-file>",
		Short: "Emit the solder-paste dispensing instruction stream",
		Long: `Emit one dispense instruction per pad across the whole board, visiting
pads in an order chosen to reduce total head travel. Pressure stays on
per pad for init-ms plus area-ms milliseconds per mm² of pad area.`,
		Example: `  # G-code with default pressure timing
  pnpgen dispense board.rpt > paste.gcode

  # Longer initial pressure, PostScript preview
  pnpgen dispense --dispense-ms 80,30 --postscript board.rpt > paste.ps`,
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

			mach, err := newDispenseMachine(postscript, dispenseMS)
			if err != nil {
				return err
			}

			metadata, runID := runMetadata()
			ctx = log.WithRunID(runID).WithContext(ctx)

			if err := mach.Init(cfg, metadata, b.Dimension()); err != nil {
				return err
			}
			seq := engine.NewSequencer(cfg, mach)
			if err := seq.DispenseAll(ctx, b, optimize.NewNearestNeighbor()); err != nil {
				return err
			}
			return mach.Finish()
		},
	}

	cmd.Flags().BoolVarP(&postscript, "postscript", "P", false, "emit PostScript instead of G-code")
	cmd.Flags().StringVarP(&dispenseMS, "dispense-ms", "D", "", "dispense pressure timing as init-ms,area-ms (e.g. 50,25)")

	return cmd
}

// newDispenseMachine builds the backend, applying a --dispense-ms
// override on top of the profile.
func newDispenseMachine(postscript bool, dispenseMS string) (engine.Machine, error) {
	if postscript {
		return machine.NewPostScript(os.Stdout), nil
	}

	profile := machine.DefaultProfile()
	if profilePath != "" {
		var err error
		if profile, err = machine.LoadProfile(profilePath); err != nil {
			return nil, err
		}
	}
	if dispenseMS != "" {
		var initMS, areaMS float64
		if _, err := fmt.Sscanf(dispenseMS, "%f,%f", &initMS, &areaMS); err != nil {
			return nil, fmt.Errorf("invalid --dispense-ms %q (want init-ms,area-ms): %w", dispenseMS, err)
		}
		profile.Dispense.InitMS = initMS
		profile.Dispense.AreaMS = areaMS
	}
	return machine.NewGCode(os.Stdout, profile), nil
}
