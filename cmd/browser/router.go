package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/phrazzld/scry-browser/internal/api"
	apiMiddleware "github.com/phrazzld/scry-browser/internal/api/middleware"
)

// setupRouter creates the router with the browser page, the JSON API and
// the state stream.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))

	browserHandler := api.NewBrowserHandler(app.browser, app.logger)
	viewHandler := api.NewViewHandler(app.browser, "Flash cards", app.logger)

	r.Get("/", viewHandler.Page)
	r.Post("/select", viewHandler.Select)

	r.Route("/api", func(r chi.Router) {
		if origins := app.config.Server.AllowedOrigins; len(origins) > 0 {
			r.Use(cors.Handler(cors.Options{
				AllowedOrigins: origins,
				AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
				AllowedHeaders: []string{"Accept", "Content-Type"},
				MaxAge:         300,
			}))
		}
		r.Get("/state", browserHandler.GetState)
		r.Get("/state/stream", app.stream.Stream)
		r.Post("/cards", browserHandler.RequestAllCards)
		r.Post("/cards/category/{category}", browserHandler.RequestCategoryCards)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
