package command

import (
	"fmt"

	"github.com/dalemusser/staffboard/internal/app/system/format"
	"github.com/dalemusser/staffboard/internal/app/system/paging"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func (cl *commandline) tableCmd() *cobra.Command {
	var (
		o    gridOptions
		page int
		size int
	)
	cmd := &cobra.Command{
		Use:   "table",
		Short: "Print one page of the employee grid",
		Example: `  staffctl table
  staffctl table -q engineering --sort salary:desc --size 10
  staffctl table --dataset employees.yaml -f isActive=false -f age=">40"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, g, req, err := o.build()
			if err != nil {
				return err
			}
			req.Page, req.PageSize = page, size
			view := g.Query(req)

			cols := g.Columns()
			header := make([]string, len(cols))
			for i, c := range cols {
				header[i] = c.Header()
			}

			out := cmd.OutOrStdout()
			table := tablewriter.NewWriter(out)
			table.SetHeader(header)
			for _, row := range view.Rows {
				cells := make([]string, len(cols))
				for i, c := range cols {
					cells[i] = c.DisplayOf(row)
				}
				table.Append(cells)
			}
			table.SetAutoFormatHeaders(false)
			table.Render()

			pg := view.Page
			fmt.Fprintf(out, "%s to %s of %s", format.Int(pg.Range.Start), format.Int(pg.Range.End), format.Int(pg.FilteredRows))
			if pg.FilteredRows != pg.TotalRows {
				fmt.Fprintf(out, " (filtered from %s)", format.Int(pg.TotalRows))
			}
			fmt.Fprintf(out, " · page %d of %d\n", pg.Number, pg.Pages)

			cl.log.Debug("table rendered", zap.String("source", ds.Source()),
				zap.Int("rows", len(view.Rows)), zap.Int("page", pg.Number))
			return nil
		},
	}
	o.bind(cmd)
	cmd.Flags().IntVar(&page, "page", 1, "page number (clamped to the last page)")
	cmd.Flags().IntVar(&size, "size", paging.DefaultPageSize, "rows per page")
	return cmd
}
