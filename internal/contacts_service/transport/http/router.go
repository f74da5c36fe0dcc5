package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chi_middleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter assembles the middleware stack and every route of the service.
// A non-positive requestTimeout disables the per-request deadline.
func NewRouter(contacts *ContactsHandler, system *SystemHandler, requestTimeout time.Duration) http.Handler {
	r := chi.NewRouter()

	r.Use(chi_middleware.RequestID)
	r.Use(chi_middleware.RealIP)
	r.Use(chi_middleware.Recoverer)
	if requestTimeout > 0 {
		r.Use(chi_middleware.Timeout(requestTimeout))
	}
	r.Use(PrometheusMetricsMiddleware)

	r.Get("/", system.Landing)
	r.Get("/health", system.Health)
	r.Get("/info", system.Info)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/contacts", contacts.RegisterRoutes)

	return r
}
