package handlers

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Routes builds the router: system endpoints are public, the prediction API
// sits behind API-key auth and per-tier rate limiting.
func (h *Handler) Routes(allowedOrigins []string) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-API-Key"},
		MaxAge:         300,
	}))

	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(h.APIKeyMiddleware)
		r.Use(h.RateLimitMiddleware)

		r.Post("/predictions", h.CreatePrediction)
		r.Post("/predictions/multi", h.CreateMultiPrediction)
		r.Get("/predictions/recent", h.RecentPredictions)
		r.Get("/sports", h.ListSports)
	})

	return r
}
