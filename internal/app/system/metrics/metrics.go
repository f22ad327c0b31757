// Package metrics holds the Prometheus collectors for the dashboard.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "staffboard"

// Metrics is the set of collectors registered at startup.
type Metrics struct {
	RequestsTotal    *prometheus.CounterVec
	RequestsDuration *prometheus.HistogramVec

	GridQueries      *prometheus.CounterVec
	Exports          *prometheus.CounterVec
	ExportRows       prometheus.Histogram
	SelectionChanges *prometheus.CounterVec
	BatchActions     prometheus.Counter
	DatasetRecords   *prometheus.GaugeVec

	gatherer prometheus.Gatherer
}

// New creates the collectors and registers them with reg.
func New(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total HTTP requests processed",
			},
			[]string{"method", "route", "status"},
		),
		RequestsDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency distributions.",
				Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
			},
			[]string{"method", "route"},
		),
		GridQueries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "grid",
				Name:      "queries_total",
				Help:      "Grid renders by surface (page, partial, api).",
			},
			[]string{"surface"},
		),
		Exports: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "grid",
				Name:      "exports_total",
				Help:      "CSV exports by scope (visible, selected) and result.",
			},
			[]string{"scope", "result"},
		),
		ExportRows: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "grid",
				Name:      "export_rows",
				Help:      "Data rows written per CSV export.",
				Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
			},
		),
		SelectionChanges: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "grid",
				Name:      "selection_changes_total",
				Help:      "Selection changes by op.",
			},
			[]string{"op"},
		),
		BatchActions: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "grid",
				Name:      "batch_actions_total",
				Help:      "Batch actions requested on a selection.",
			},
		),
		DatasetRecords: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "dataset",
				Name:      "records",
				Help:      "Records loaded at startup, by source.",
			},
			[]string{"source"},
		),
		gatherer: reg,
	}
	reg.MustRegister(m.RequestsTotal, m.RequestsDuration, m.GridQueries, m.Exports,
		m.ExportRows, m.SelectionChanges, m.BatchActions, m.DatasetRecords)
	return m
}

// Noop returns metrics backed by a private registry, for tests and tools.
func Noop() *Metrics {
	return New(prometheus.NewRegistry())
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// Middleware records request counts and latency by chi route pattern.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.RequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		m.RequestsDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}
