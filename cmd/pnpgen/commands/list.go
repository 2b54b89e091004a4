package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/fabtools/pnpgen/pkg/report"
)

func newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list <rpt-file>",
		Short: "List component identities and their counts",
		Long: `List every component identity (footprint@value) found in the placement
report together with how many parts use it. Useful to see how many tapes
a board needs before writing a configuration.`,
		Example: `  pnpgen list board.rpt`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := loadBoard(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return report.WriteComponentList(os.Stdout, b)
		},
	}
}
