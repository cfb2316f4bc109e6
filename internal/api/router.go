/**
 * @description
 * HTTP router for the insights-service using the go-chi/chi router.
 */
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new Chi router and registers the insights routes.
// All non-health routes are server-to-server and therefore sit behind
// the internal API key middleware when a key is configured.
func NewRouter(h *Handler, internalAPIKey string) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Internal-API-Key"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Insights service is healthy"))
	})

	r.Group(func(r chi.Router) {
		r.Use(InternalAuthMiddleware(internalAPIKey))

		r.Post("/assessments", h.handleRunAssessment)
		r.Get("/assessments/{userID}/latest", h.handleGetLatestAssessment)
		r.Post("/offers/match", h.handleMatchOffers)
	})

	return r
}
