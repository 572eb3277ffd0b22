package ui

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"presence-analyzer/internal/cache"
	"presence-analyzer/ports"
)

// CacheInspector exposes the service caches to operators
type CacheInspector interface {
	CacheStatus() map[string][]cache.KeyStatus
	Invalidate()
}

// NewAdminRouter builds the operator endpoints served on the admin port:
// health, Prometheus metrics, pprof and cache state.
func NewAdminRouter(inspector CacheInspector, gatherer prometheus.Gatherer, logger ports.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, logger)
	})
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	r.Mount("/debug", middleware.Profiler())

	r.Route("/cache", func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, inspector.CacheStatus(), logger)
		})
		r.Post("/invalidate", func(w http.ResponseWriter, r *http.Request) {
			inspector.Invalidate()
			logger.Info("[Admin] caches invalidated (request_id=%s)", middleware.GetReqID(r.Context()))
			w.WriteHeader(http.StatusNoContent)
		})
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, v interface{}, logger ports.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("[Admin] failed to encode response: %v", err)
	}
}
