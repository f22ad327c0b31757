// internal/app/features/dashboard/export.go
package dashboard

import (
	"net/http"

	"github.com/dalemusser/staffboard/internal/app/system/grid"
	"github.com/dalemusser/waffle/pantry/query"
	"go.uber.org/zap"
)

// ServeExportCSV downloads the rows the dashboard currently shows: every row
// passing the quick filter and the column filters, in sort order, across all
// pages. With only_selected=1 the visitor's selected rows are exported
// instead, still in sort order.
//
// The file name comes from ?filename= or the configured default.
// GET /dashboard/export.csv
func (h *Handler) ServeExportCSV(w http.ResponseWriter, r *http.Request) {
	vs := h.loadState(r)
	st := h.parseState(r.URL.Query(), vs.PageSize)

	onlySelected := query.Get(r, "only_selected") == "1"
	scope := "visible"
	if onlySelected {
		scope = "selected"
	}

	filename := grid.Filename(query.Get(r, "filename"), h.Opts.ExportFilename)
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Header().Set("Cache-Control", "no-store")

	n, err := h.Grid.ExportCSV(w, h.request(st), grid.ExportOptions{
		OnlySelected: onlySelected,
		Selected:     vs.Selected,
	})
	if err != nil {
		// Headers are gone by now; all we can do is log.
		h.Log.Error("dashboard: csv export failed", zap.Error(err),
			zap.String("scope", scope), zap.Int("rows_written", n))
		h.Metrics.Exports.WithLabelValues(scope, "error").Inc()
		return
	}

	h.Metrics.Exports.WithLabelValues(scope, "ok").Inc()
	h.Metrics.ExportRows.Observe(float64(n))
	h.Log.Info("dashboard: csv exported",
		zap.String("scope", scope),
		zap.Int("rows", n),
		zap.String("filename", filename),
		zap.Int("filters", len(st.Filters)))
}
