package command

import (
	"fmt"
	"strings"

	dashboardfeature "github.com/dalemusser/staffboard/internal/app/features/dashboard"
	"github.com/dalemusser/staffboard/internal/app/store/employees"
	"github.com/dalemusser/staffboard/internal/app/system/grid"
	"github.com/dalemusser/staffboard/internal/app/system/search"
	"github.com/dalemusser/staffboard/internal/domain/models"
	"github.com/spf13/cobra"
)

// gridOptions are the dashboard parameters shared by table and export.
type gridOptions struct {
	dataset string
	q       string
	filters []string
	sort    string
}

func (o *gridOptions) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.dataset, "dataset", "", "JSON or YAML dataset file (default: bundled records)")
	cmd.Flags().StringVarP(&o.q, "q", "q", "", "quick filter text")
	cmd.Flags().StringArrayVarP(&o.filters, "filter", "f", nil, `column filter "field=expr", repeatable (e.g. salary=>80000)`)
	cmd.Flags().StringVar(&o.sort, "sort", "", `sort model, e.g. "department:asc,salary:desc"`)
}

// build loads the dataset and returns the employee grid plus a request for
// the options. Unknown filter fields are an error here; the dashboard
// ignores them, but a typo on the command line should not pass silently.
func (o *gridOptions) build() (*employees.Dataset, *grid.Grid[models.Employee], grid.Request, error) {
	var (
		ds  *employees.Dataset
		err error
	)
	if o.dataset == "" {
		ds, err = employees.LoadBundled()
	} else {
		ds, err = employees.LoadFile(o.dataset)
	}
	if err != nil {
		return nil, nil, grid.Request{}, err
	}

	g, err := grid.New(dashboardfeature.Columns(), ds.All(), models.Employee.Key)
	if err != nil {
		return nil, nil, grid.Request{}, err
	}

	raw := map[string]string{}
	for _, f := range o.filters {
		field, expr, ok := strings.Cut(f, "=")
		field = strings.TrimSpace(field)
		if !ok || field == "" {
			return nil, nil, grid.Request{}, fmt.Errorf("filter %q: want field=expr", f)
		}
		if _, known := g.Column(field); !known {
			return nil, nil, grid.Request{}, fmt.Errorf("filter %q: unknown column %q", f, field)
		}
		raw[field] = strings.TrimSpace(expr)
	}

	return ds, g, grid.Request{
		QuickFilter: search.Normalize(o.q),
		Filters:     g.ParseFilters(raw),
		Sort:        g.CleanSort(grid.ParseSort(o.sort)),
	}, nil
}
