// internal/app/features/dashboard/clear.go
package dashboard

import (
	"net/http"
)

// HandleClearFilters drops the quick filter and every column filter and
// sends the visitor back to the dashboard. Sort order and page size stay.
// POST /dashboard/clear
func (h *Handler) HandleClearFilters(w http.ResponseWriter, r *http.Request) {
	if err := h.parseForm(w, r); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	// The posted form carries the current sort and size; a return URL, when
	// given, wins.
	src := r.PostForm
	if ret := r.PostForm.Get("return"); ret != "" {
		src = safeReturn(ret).Query()
	}
	vs := h.loadState(r)
	st := h.parseState(src, vs.PageSize).cleared()
	dest := st.url(basePath)

	if isHTMX(r) {
		w.Header().Set("HX-Redirect", dest)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, dest, http.StatusSeeOther)
}
