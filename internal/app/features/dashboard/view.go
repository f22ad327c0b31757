// internal/app/features/dashboard/view.go
package dashboard

import (
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/dalemusser/staffboard/internal/app/system/grid"
	"github.com/dalemusser/staffboard/internal/app/system/viewdata"
	"github.com/dalemusser/staffboard/internal/app/system/viewstate"
	"github.com/dalemusser/staffboard/internal/domain/models"
	"github.com/gorilla/csrf"
)

// buildMain queries the grid for st and assembles the view model. The
// selection shown is vs.Selected as the grid knows it.
func (h *Handler) buildMain(r *http.Request, st gridState, vs viewstate.State) mainVM {
	view := h.Grid.Query(h.request(st))
	st.Page = view.Page.Number

	selected := make(map[string]bool, len(vs.Selected))
	for _, id := range vs.Selected {
		selected[id] = true
	}
	all := h.Grid.AllSelected(vs.Selected)

	vm := mainVM{
		CSRFToken:     csrf.Token(r),
		CSRFFieldName: viewdata.CSRFFieldName,
		Query:         st.Q,
		FilterCount:   len(st.Filters),
		ReturnURL:     st.url(basePath),
		ExportURL:     st.withPage(1).url(basePath + "/export.csv"),
		Selection: selectionVM{
			Count:       len(vs.Selected),
			AllSelected: all,
			HeaderOp:    string(grid.SelectAll),
		},
	}
	if all {
		vm.Selection.HeaderOp = string(grid.SelectNone)
	}
	exp := st.withPage(1).values()
	exp.Set("only_selected", "1")
	vm.ExportSelectedURL = basePath + "/export.csv?" + exp.Encode()

	cols := h.Grid.Columns()
	vm.Grid = gridVM{
		Sort:    st.Sort.String(),
		Columns: h.columnVMs(cols, st),
		Rows:    make([]rowVM, 0, len(view.Rows)),
		Empty:   len(view.Rows) == 0,
		Page: pageVM{
			Number:   view.Page.Number,
			Pages:    view.Page.Pages,
			Size:     view.Page.Size,
			Start:    view.Page.Range.Start,
			End:      view.Page.Range.End,
			Filtered: view.Page.FilteredRows,
			Total:    view.Page.TotalRows,
			HasPrev:  view.Page.HasPrev,
			HasNext:  view.Page.HasNext,
			FirstURL: st.withPage(1).url(basePath),
			PrevURL:  st.withPage(view.Page.Number - 1).url(basePath),
			NextURL:  st.withPage(view.Page.Number + 1).url(basePath),
			LastURL:  st.withPage(view.Page.Pages).url(basePath),
		},
	}
	for _, n := range h.Opts.PageSizes {
		vm.Grid.PageSizes = append(vm.Grid.PageSizes, pageSizeVM{Value: n, Selected: n == st.Size})
	}
	for i, row := range view.Rows {
		id := view.IDs[i]
		vm.Grid.Rows = append(vm.Grid.Rows, rowVM{
			ID:       id,
			Selected: selected[id],
			Cells:    cellVMs(cols, row),
		})
	}
	return vm
}

func (h *Handler) columnVMs(cols []grid.Column[models.Employee], st gridState) []columnVM {
	out := make([]columnVM, 0, len(cols))
	for _, c := range cols {
		dir := st.Sort.Direction(c.Field)
		cv := columnVM{
			Field:       c.Field,
			Header:      c.Header(),
			Pinned:      c.Pinned,
			Style:       widthStyle(c.MinWidth, c.MaxWidth),
			Checkbox:    c.Checkbox,
			Sortable:    c.Sortable,
			SortDir:     string(dir),
			FilterKind:  c.Filter.String(),
			FilterName:  filterPrefix + c.Field,
			FilterID:    "filter-" + c.Field,
			FilterValue: st.Filters[c.Field],
		}
		if c.Sortable {
			cv.SortURL = st.withSort(st.Sort.Cycle(c.Field)).url(basePath)
		}
		switch dir {
		case grid.Asc:
			cv.SortArrow, cv.AriaSort = "▲", "ascending"
		case grid.Desc:
			cv.SortArrow, cv.AriaSort = "▼", "descending"
		default:
			cv.AriaSort = "none"
		}
		switch c.Filter {
		case grid.NumberFilter:
			cv.FilterHint = "e.g. >50000 or 1..5"
		case grid.TextFilter:
			cv.FilterHint = "Filter…"
		}
		out = append(out, cv)
	}
	return out
}

func cellVMs(cols []grid.Column[models.Employee], row models.Employee) []cellVM {
	cells := make([]cellVM, len(cols))
	for i, c := range cols {
		cells[i] = cellVM{
			HTML:     c.HTMLOf(row),
			Title:    c.TooltipOf(row),
			Pinned:   c.Pinned,
			Style:    widthStyle(c.MinWidth, c.MaxWidth),
			Checkbox: c.Checkbox,
		}
	}
	return cells
}

func widthStyle(minW, maxW int) template.CSS {
	var parts []string
	if minW > 0 {
		parts = append(parts, fmt.Sprintf("min-width: %dpx", minW))
	}
	if maxW > 0 {
		parts = append(parts, fmt.Sprintf("max-width: %dpx", maxW))
	}
	return template.CSS(strings.Join(parts, "; "))
}
