package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/fabtools/pnpgen/pkg/report"
)

func newTemplateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "template <rpt-file>",
		Short: "Write an editable feeder configuration template",
		Long: `Write a rich-format configuration template for the board to stdout: one
Tape block per component identity with the count pre-filled and
origin/spacing placeholders stacked along the tape tray. Edit in the
measured geometry and feed the result back with --config.`,
		Example: `  pnpgen template board.rpt > feeders.conf`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := loadBoard(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return report.WriteConfigTemplate(os.Stdout, b)
		},
	}
}
