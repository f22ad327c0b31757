// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	dashboardfeature "github.com/dalemusser/staffboard/internal/app/features/dashboard"
	errorsfeature "github.com/dalemusser/staffboard/internal/app/features/errors"
	healthfeature "github.com/dalemusser/staffboard/internal/app/features/health"
	"github.com/dalemusser/staffboard/internal/app/system/limits"
	"github.com/dalemusser/staffboard/internal/app/system/metrics"
	"github.com/dalemusser/staffboard/internal/app/system/viewstate"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/csrf"
	"github.com/gorilla/securecookie"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. Staffboard boots the template engine,
// registers the Prometheus collectors and mounts the dashboard, its JSON
// API, health and metrics.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Initialize and boot the template engine once at startup.
	// Dev mode enables template reloading for faster iteration.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)
	m.DatasetRecords.WithLabelValues(deps.Dataset.Source()).Set(float64(deps.Dataset.Len()))

	return newRouter(appCfg, deps, coreCfg.Env == "prod", m, logger)
}

// newRouter mounts every feature. secure marks cookies Secure and keeps
// gorilla/csrf's TLS origin checks on.
func newRouter(appCfg AppConfig, deps DBDeps, secure bool, m *metrics.Metrics, logger *zap.Logger) (http.Handler, error) {
	state := viewstate.New(viewstate.Config{
		Key:    appCfg.SessionKey,
		Name:   appCfg.SessionName,
		Domain: appCfg.SessionDomain,
		Secure: secure,
	}, logger)

	dashboardHandler, err := dashboardfeature.NewHandler(deps.Dataset, state, m, dashboardfeature.Options{
		PageSize:       appCfg.PageSize,
		PageSizes:      appCfg.PageSizeOptions,
		ExportFilename: appCfg.ExportFilename,
		ExportLimit:    appCfg.ExportRateLimit,
		ExportWindow:   limits.DefaultExportWindow,
	}, logger)
	if err != nil {
		logger.Error("dashboard init failed", zap.Error(err))
		return nil, err
	}

	errorsHandler := errorsfeature.NewHandler(logger)

	csrfKey := []byte(appCfg.CSRFKey)
	if len(csrfKey) == 0 {
		csrfKey = securecookie.GenerateRandomKey(32)
		logger.Warn("csrf_key not set; using a per-process key")
	}
	protect := csrf.Protect(csrfKey,
		csrf.Secure(secure),
		csrf.Path("/"),
		csrf.SameSite(csrf.SameSiteLaxMode),
		csrf.ErrorHandler(http.HandlerFunc(errorsHandler.Forbidden)),
	)

	r := chi.NewRouter()
	if appCfg.TrustProxy {
		// Rewrites RemoteAddr, which the export rate limit keys on.
		r.Use(middleware.RealIP)
	}
	r.Use(m.Middleware)
	r.NotFound(errorsHandler.NotFound)
	r.MethodNotAllowed(errorsHandler.MethodNotAllowed)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.Dataset, deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	r.Handle("/metrics", m.Handler())

	// Static assets with pre-compressed file support (gzip/brotli)
	r.Handle("/static/*", fileserver.Handler("/static", "public"))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/dashboard", http.StatusFound)
	})

	// Read-only JSON API; no forms, so no CSRF.
	r.Mount("/api", dashboardfeature.APIRoutes(dashboardHandler))

	r.Group(func(r chi.Router) {
		if !secure {
			// Plain HTTP in dev: skip the TLS-only Referer check.
			r.Use(plaintext)
		}
		r.Use(protect)
		r.Mount("/dashboard", dashboardfeature.Routes(dashboardHandler))
	})

	return r, nil
}

func plaintext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, csrf.PlaintextHTTPRequest(r))
	})
}
