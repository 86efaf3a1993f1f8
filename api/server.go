/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route
  definitions. This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for the dashboard frontend

SECURITY NOTE:
  No authentication middleware. The server carries synthetic data only.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/dimensions", h.GetDimensions)

		r.Route("/dataset", func(r chi.Router) {
			r.Get("/", h.GetDatasetInfo)
			r.Post("/reset", h.ResetDataset)
		})

		r.Route("/metrics", func(r chi.Router) {
			r.Get("/overview", h.GetOverview)
			r.Get("/brands", h.GetBrandMetrics)
			r.Get("/stores", h.GetStoreMetrics)
			r.Get("/methods", h.GetMethodMetrics)
			r.Get("/trends/daily", h.GetDailyTrends)
			r.Get("/wow", h.GetWoW)
			r.Get("/data-quality", h.GetDataQuality)
		})
	})

	return r
}
