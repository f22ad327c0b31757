// internal/app/features/dashboard/handler.go
package dashboard

import (
	"fmt"
	"net/http"
	"slices"
	"time"

	"github.com/dalemusser/staffboard/internal/app/store/employees"
	"github.com/dalemusser/staffboard/internal/app/system/grid"
	"github.com/dalemusser/staffboard/internal/app/system/limits"
	"github.com/dalemusser/staffboard/internal/app/system/metrics"
	"github.com/dalemusser/staffboard/internal/app/system/paging"
	"github.com/dalemusser/staffboard/internal/app/system/ratelimit"
	"github.com/dalemusser/staffboard/internal/app/system/viewstate"
	"github.com/dalemusser/staffboard/internal/domain/models"
	"go.uber.org/zap"
)

const (
	basePath  = "/dashboard"
	pageTitle = "Employee Dashboard"
)

// Options tunes the dashboard.
type Options struct {
	PageSize       int
	PageSizes      []int
	ExportFilename string

	// ExportLimit caps CSV downloads per client IP per ExportWindow.
	// Zero disables the limit.
	ExportLimit  int
	ExportWindow time.Duration
}

// Handler serves the employee dashboard. The grid is built once from the
// dataset and shared by every request; per-visitor state lives in the view
// state cookie.
type Handler struct {
	Grid    *grid.Grid[models.Employee]
	State   *viewstate.Manager
	Metrics *metrics.Metrics
	Opts    Options
	Log     *zap.Logger

	exportLimiter *ratelimit.Limiter
}

// NewHandler builds the grid over ds and returns a Handler.
func NewHandler(ds *employees.Dataset, state *viewstate.Manager, m *metrics.Metrics, opts Options, logger *zap.Logger) (*Handler, error) {
	g, err := grid.New(Columns(), ds.All(), rowID)
	if err != nil {
		return nil, fmt.Errorf("build employee grid: %w", err)
	}

	if len(opts.PageSizes) == 0 {
		opts.PageSizes = paging.DefaultSizes
	}
	opts.PageSizes = slices.Clone(opts.PageSizes)
	slices.Sort(opts.PageSizes)
	if !slices.Contains(opts.PageSizes, opts.PageSize) {
		opts.PageSize = paging.DefaultPageSize
		if !slices.Contains(opts.PageSizes, opts.PageSize) {
			opts.PageSize = opts.PageSizes[0]
		}
	}
	if opts.ExportFilename == "" {
		opts.ExportFilename = "employees.csv"
	}
	if opts.ExportWindow <= 0 {
		opts.ExportWindow = limits.DefaultExportWindow
	}
	if m == nil {
		m = metrics.Noop()
	}

	h := &Handler{
		Grid:    g,
		State:   state,
		Metrics: m,
		Opts:    opts,
		Log:     logger,
	}
	if opts.ExportLimit > 0 {
		h.exportLimiter = ratelimit.New(opts.ExportLimit, opts.ExportWindow)
	}
	return h, nil
}

// Close stops background work owned by the handler.
func (h *Handler) Close() {
	if h.exportLimiter != nil {
		h.exportLimiter.Stop()
	}
}

// parseForm parses a dashboard form post, bounded by limits.MaxFormSize.
func (h *Handler) parseForm(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, limits.MaxFormSize)
	return r.ParseForm()
}
