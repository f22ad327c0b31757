// internal/app/features/dashboard/selection.go
package dashboard

import (
	"encoding/json"
	"net/http"

	"github.com/dalemusser/staffboard/internal/app/system/grid"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

const selectionNotSaved = "That selection is too large to remember. Select all and then deselect, or pick fewer rows."

// HandleSelection applies a selection change sent by the grid checkboxes.
//
// Form fields: op (add, remove, toggle, all, none), id (repeatable) and
// return, the dashboard URL the change was made on. HTMX callers get
// #dashboard-main re-rendered for that URL; others are redirected to it.
// POST /dashboard/selection
func (h *Handler) HandleSelection(w http.ResponseWriter, r *http.Request) {
	if err := h.parseForm(w, r); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	op, ok := grid.ParseSelectOp(r.PostForm.Get("op"))
	if !ok {
		http.Error(w, "unknown selection op", http.StatusBadRequest)
		return
	}

	vs := h.loadState(r)
	prev := vs.Selected
	vs.Selected = h.Grid.Select(prev, op, r.PostForm["id"])
	ret := safeReturn(r.PostForm.Get("return"))

	if err := h.saveState(w, r, vs); err != nil {
		// Keep showing what is actually stored.
		vs.Selected = prev
		if !isHTMX(r) {
			http.Error(w, selectionNotSaved, http.StatusRequestEntityTooLarge)
			return
		}
		vm := h.buildMain(r, h.parseState(ret.Query(), vs.PageSize), vs)
		vm.Notice = selectionNotSaved
		templates.RenderSnippet(w, "dashboard_main", vm)
		return
	}
	h.Metrics.SelectionChanges.WithLabelValues(string(op)).Inc()

	h.Log.Debug("dashboard: selection changed",
		zap.String("op", string(op)),
		zap.Int("before", len(prev)),
		zap.Int("after", len(vs.Selected)))

	if !isHTMX(r) {
		http.Redirect(w, r, ret.String(), http.StatusSeeOther)
		return
	}
	st := h.parseState(ret.Query(), vs.PageSize)
	templates.RenderSnippet(w, "dashboard_main", h.buildMain(r, st, vs))
}

// selectionResponse is the JSON body of GET /dashboard/selection.
type selectionResponse struct {
	Count int      `json:"count"`
	IDs   []string `json:"ids"`
}

// ServeSelection reports the visitor's selection.
// GET /dashboard/selection
func (h *Handler) ServeSelection(w http.ResponseWriter, r *http.Request) {
	vs := h.loadState(r)
	ids := vs.Selected
	if ids == nil {
		ids = []string{}
	}
	writeJSON(w, http.StatusOK, selectionResponse{Count: len(ids), IDs: ids})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
