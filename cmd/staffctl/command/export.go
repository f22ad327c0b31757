package command

import (
	"fmt"
	"strings"

	"github.com/dalemusser/staffboard/internal/app/system/grid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func (cl *commandline) exportCmd() *cobra.Command {
	var (
		o     gridOptions
		out   string
		ids   string
		noBOM bool
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the CSV the dashboard would export",
		Example: `  staffctl export --out employees.csv
  staffctl export -q sales --sort hireDate:asc --out sales.csv
  staffctl export --ids 3,7,12 --out picked.csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, g, req, err := o.build()
			if err != nil {
				return err
			}

			opts := grid.ExportOptions{SkipBOM: noBOM}
			if ids != "" {
				opts.OnlySelected = true
				opts.Selected = strings.Split(ids, ",")
				for i := range opts.Selected {
					opts.Selected[i] = strings.TrimSpace(opts.Selected[i])
				}
			}

			w, closeFn, err := openOut(out, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			n, err := g.ExportCSV(w, req, opts)
			if cerr := closeFn(); err == nil {
				err = cerr
			}
			if err != nil {
				return fmt.Errorf("export: %w", err)
			}
			cl.log.Info("csv exported", zap.String("out", out), zap.Int("rows", n))
			return nil
		},
	}
	o.bind(cmd)
	cmd.Flags().StringVarP(&out, "out", "o", "-", `output file ("-" for stdout)`)
	cmd.Flags().StringVar(&ids, "ids", "", "comma-separated employee ids; exports only these rows")
	cmd.Flags().BoolVar(&noBOM, "no-bom", false, "omit the UTF-8 byte order mark")
	return cmd
}
