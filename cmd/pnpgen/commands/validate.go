package commands

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/fabtools/pnpgen/pkg/report"
	"github.com/fabtools/pnpgen/pkg/telemetry"
)

func newValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <rpt-file>",
		Short: "Check a configuration against a placement report",
		Long: `Parse the configuration given with --config or --measured-config, check
it against the placement report, and summarize the mapped tapes. Exits
non-zero on parse errors or when the configuration leaves component
identities without a tape.`,
		Example: `  pnpgen validate -c feeders.conf board.rpt
  pnpgen validate -C measured.txt board.rpt`,
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
				return fmt.Errorf("nothing to validate: give --config or --measured-config")
			}

			counts, _ := report.ComponentCounts(b.Parts())
			missing := make([]string, 0)
			for id := range counts {
				if cfg.TapeFor(id) == nil {
					missing = append(missing, id)
				}
			}
			sort.Strings(missing)

			for _, id := range cfg.Identities() {
				t := cfg.TapeFor(id)
				x, y, _ := t.Position()
				dx, dy := t.Spacing()
				fmt.Fprintf(os.Stdout, "%-30s pickup=(%.1f, %.1f, %.1f) spacing=(%.2f, %.2f) count=%d\n",
					id, x, y, t.Height(), dx, dy, t.Remaining())
			}
			if cfg.BedLevelSet() {
				fmt.Fprintf(os.Stdout, "bed level: %.2fmm, board top: %.2fmm\n",
					cfg.BedLevel, cfg.Board.Top)
			}

			for _, id := range missing {
				log.WithIdentity(id).Warnf("No tape configured for %d parts", counts[id])
			}
			if len(missing) > 0 {
				return fmt.Errorf("%d of %d component identities have no tape", len(missing), len(counts))
			}
			log.Infof("Configuration maps all %d component identities", len(counts))
			return nil
		},
	}
}
