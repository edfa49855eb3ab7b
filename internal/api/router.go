// Package api exposes the profile evaluators and compositional transforms as
// JSON endpoints.
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/katalvlaran/geochem/internal/config"
)

// MaxBodyBytes caps every API request body.
const MaxBodyBytes = 1 << 20

func NewRouter(pc config.ProfileConfig, m *Metrics, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(RequestLogger(logger))
	r.Use(m.Middleware)
	r.Use(chiMiddleware.RequestSize(MaxBodyBytes))

	profiles := NewProfileHandler(pc, m, logger)
	comps := NewCompHandler()

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/ree", profiles.Elements)

		r.Post("/lambdas/profile", profiles.Lambdas)
		r.Post("/lambdas/components", profiles.LambdaComponents)
		r.Post("/lambdas/fit", profiles.Fit)
		r.Post("/tetrads/profile", profiles.Tetrads)

		r.Post("/comp/clr", comps.CLR)
		r.Post("/comp/ilr", comps.ILR)
		r.Post("/comp/mean", comps.Mean)
	})

	return r
}

func NewMetricsRouter(g prometheus.Gatherer) http.Handler {
	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
	return r
}
