// internal/app/features/dashboard/page.go
package dashboard

import (
	"net/http"

	"github.com/dalemusser/staffboard/internal/app/system/grid"
	"github.com/dalemusser/staffboard/internal/app/system/viewdata"
	"github.com/dalemusser/staffboard/internal/app/system/viewstate"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

// ServeDashboard renders the full page.
// GET /dashboard
func (h *Handler) ServeDashboard(w http.ResponseWriter, r *http.Request) {
	st, vs := h.resolve(w, r)
	h.Metrics.GridQueries.WithLabelValues("page").Inc()

	templates.Render(w, r, "dashboard_page", pageData{
		BaseVM: viewdata.NewBaseVM(r, pageTitle, "/"),
		Main:   h.buildMain(r, st, vs),
	})
}

// ServeGrid renders #dashboard-main only. It backs search-as-you-type,
// floating filters and the page-size picker; the browser URL is kept in
// step through HX-Push-Url.
// GET /dashboard/grid
func (h *Handler) ServeGrid(w http.ResponseWriter, r *http.Request) {
	st, vs := h.resolve(w, r)
	h.Metrics.GridQueries.WithLabelValues("partial").Inc()

	vm := h.buildMain(r, st, vs)
	if isHTMX(r) {
		w.Header().Set("HX-Push-Url", vm.ReturnURL)
	}
	templates.RenderSnippet(w, "dashboard_main", vm)
}

// resolve reads the grid state from the query string and the visitor state
// from the session. A page size given in the request is remembered.
func (h *Handler) resolve(w http.ResponseWriter, r *http.Request) (gridState, viewstate.State) {
	vs := h.loadState(r)
	st := h.parseState(r.URL.Query(), vs.PageSize)

	if st.SizeGiven && st.Size != vs.PageSize {
		vs.PageSize = st.Size
		_ = h.saveState(w, r, vs)
	}
	return st, vs
}

// loadState returns the session state with the selection expanded to the
// selected row ids and stale ids dropped.
func (h *Handler) loadState(r *http.Request) viewstate.State {
	vs := h.State.Load(r)
	switch {
	case vs.Inverted:
		vs.Selected = h.Grid.Complement(vs.Selected)
		vs.Inverted = false
	case len(vs.Selected) > 0:
		vs.Selected = h.Grid.Select(vs.Selected, grid.SelectAdd, nil)
	}
	return vs
}

// saveState stores vs. A selection covering more than half the rows is
// stored as the rows left out.
func (h *Handler) saveState(w http.ResponseWriter, r *http.Request, vs viewstate.State) error {
	stored := vs
	if n := h.Grid.Len(); n > 0 && 2*len(vs.Selected) > n {
		stored.Selected = h.Grid.Complement(vs.Selected)
		stored.Inverted = true
	}
	if err := h.State.Save(w, r, stored); err != nil {
		h.Log.Warn("dashboard: save view state", zap.Error(err),
			zap.Int("selected", len(vs.Selected)),
			zap.Bool("inverted", stored.Inverted))
		return err
	}
	return nil
}

func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}
