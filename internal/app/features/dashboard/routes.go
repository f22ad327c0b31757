// internal/app/features/dashboard/routes.go
package dashboard

import (
	"github.com/dalemusser/staffboard/internal/app/system/ratelimit"
	"github.com/go-chi/chi/v5"
)

// Routes wires the dashboard under whatever mount point the top-level
// router chooses (normally "/dashboard").
//
// POST routes are expected to sit behind CSRF protection installed by the
// caller.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ServeDashboard)
	r.Get("/grid", h.ServeGrid)
	r.With(ratelimit.Middleware(h.exportLimiter, h.Log)).Get("/export.csv", h.ServeExportCSV)
	r.Get("/selection", h.ServeSelection)

	r.Post("/clear", h.HandleClearFilters)
	r.Post("/selection", h.HandleSelection)
	r.Post("/batch", h.HandleBatchAction)

	return r
}

// APIRoutes serves the read-only JSON endpoints, normally under "/api".
func APIRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/employees", h.ServeRowsJSON)
	r.Get("/columns", h.ServeColumnsJSON)
	return r
}
