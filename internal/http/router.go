package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/vnme1/subscription-tracker/internal/http/analysis"
	"github.com/vnme1/subscription-tracker/internal/http/changes"
)

func New(
	analysesV1 *analysis.Handler,
	changesV1 *changes.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/analyses", analysesV1.Routes)

		r.Route("/changes", changesV1.Routes)

		r.Route("/subscriptions", changesV1.SubscriptionRoutes)
	})

	return router
}
