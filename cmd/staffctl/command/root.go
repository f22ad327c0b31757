// Package command holds the staffctl command tree.
package command

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// NewCmd creates the staffctl root command.
func NewCmd() *cobra.Command {
	var verbose bool
	cl := &commandline{log: zap.NewNop()}

	cmd := &cobra.Command{
		Use:   "staffctl",
		Short: "Operator tools for the Staffboard employee dataset",
		Long: `Operator tools for the Staffboard employee dataset.

Generate synthetic datasets, preview a grid page in the terminal and
export the CSV the dashboard would produce.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if verbose {
				cl.log, err = zap.NewDevelopment()
			} else {
				cl.log, err = zap.NewProduction()
			}
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = cl.log.Sync()
		},
	}
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose (development) logging")

	cmd.AddCommand(cl.seedCmd(), cl.tableCmd(), cl.exportCmd())
	return cmd
}

type commandline struct {
	log *zap.Logger
}
