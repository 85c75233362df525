package observability

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewStatusRouter assembles the operational endpoints served while the gate
// runs: liveness, readiness, and metrics. Orchestrators point their startup
// probes here.
func NewStatusRouter(m *Metrics, checker ReadinessChecker) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(cors.AllowAll().Handler)
	r.Use(MetricsMiddleware(m))
	r.Get("/healthz", LivenessHandler())
	r.Get("/readyz", ReadinessHandler(checker))
	r.Handle("/metrics", promhttp.Handler())
	return r
}
