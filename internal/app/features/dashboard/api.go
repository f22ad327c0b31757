// internal/app/features/dashboard/api.go
package dashboard

import (
	"net/http"

	"github.com/dalemusser/staffboard/internal/domain/models"
)

type pageJSON struct {
	Number       int `json:"number"`
	Size         int `json:"size"`
	Pages        int `json:"pages"`
	TotalRows    int `json:"totalRows"`
	FilteredRows int `json:"filteredRows"`
	Start        int `json:"start"`
	End          int `json:"end"`
}

type rowsResponse struct {
	Rows     []models.Employee `json:"rows"`
	IDs      []string          `json:"ids"`
	Page     pageJSON          `json:"page"`
	Query    string            `json:"q,omitempty"`
	Filters  map[string]string `json:"filters,omitempty"`
	Sort     string            `json:"sort,omitempty"`
	Selected int               `json:"selected"`
}

// ServeRowsJSON returns the same grid view the dashboard would render for
// the query string.
// GET /api/employees
func (h *Handler) ServeRowsJSON(w http.ResponseWriter, r *http.Request) {
	vs := h.loadState(r)
	st := h.parseState(r.URL.Query(), vs.PageSize)
	h.Metrics.GridQueries.WithLabelValues("api").Inc()

	view := h.Grid.Query(h.request(st))
	writeJSON(w, http.StatusOK, rowsResponse{
		Rows: view.Rows,
		IDs:  view.IDs,
		Page: pageJSON{
			Number:       view.Page.Number,
			Size:         view.Page.Size,
			Pages:        view.Page.Pages,
			TotalRows:    view.Page.TotalRows,
			FilteredRows: view.Page.FilteredRows,
			Start:        view.Page.Range.Start,
			End:          view.Page.Range.End,
		},
		Query:    st.Q,
		Filters:  st.Filters,
		Sort:     st.Sort.String(),
		Selected: len(vs.Selected),
	})
}

type columnJSON struct {
	Field    string `json:"field"`
	Header   string `json:"header"`
	Kind     string `json:"kind"`
	Filter   string `json:"filter,omitempty"`
	Sortable bool   `json:"sortable"`
	Pinned   string `json:"pinned,omitempty"`
	MinWidth int    `json:"minWidth,omitempty"`
	MaxWidth int    `json:"maxWidth,omitempty"`
	Checkbox bool   `json:"checkbox,omitempty"`
}

// ServeColumnsJSON returns the column schema.
// GET /api/columns
func (h *Handler) ServeColumnsJSON(w http.ResponseWriter, r *http.Request) {
	cols := h.Grid.Columns()
	out := make([]columnJSON, len(cols))
	for i, c := range cols {
		out[i] = columnJSON{
			Field:    c.Field,
			Header:   c.Header(),
			Kind:     c.Kind.String(),
			Filter:   c.Filter.String(),
			Sortable: c.Sortable,
			Pinned:   c.Pinned,
			MinWidth: c.MinWidth,
			MaxWidth: c.MaxWidth,
			Checkbox: c.Checkbox,
		}
	}
	writeJSON(w, http.StatusOK, out)
}
