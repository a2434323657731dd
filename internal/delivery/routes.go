package delivery

import (
	"time"

	"github.com/Vovarama1992/go-utils/httputil"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
)

func NewRouter(h *HealthHandler) chi.Router {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	RegisterRoutes(r, h)
	return r
}

func RegisterRoutes(r chi.Router, h *HealthHandler) {
	r.Group(func(pr chi.Router) {
		pr.Use(
			httputil.RecoverMiddleware,
			httprate.LimitByIP(120, time.Minute),
		)

		// --- liveness ---
		pr.Get("/", h.Status)
		pr.Get("/health", h.Status)
		pr.Get("/ping", h.Ping)
	})
}
