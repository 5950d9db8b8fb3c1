package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/aesirglt/AdaTech/internal/api"
	apiMiddleware "github.com/aesirglt/AdaTech/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware(app.logger))

	authHandler := api.NewAuthHandler(app.authenticator, app.logger)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)
	cardHandler := api.NewCardHandler(app.cardService, app.logger)

	r.Post("/auth/login", authHandler.Login)

	r.Route("/cards", func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)

		r.Post("/", cardHandler.CreateCard)
		r.Get("/", cardHandler.ListCards)

		r.Route("/{"+api.CardIDParam+"}", func(r chi.Router) {
			r.Use(apiMiddleware.CardAudit(api.CardIDParam))

			r.Get("/", cardHandler.GetCard)
			r.Put("/", cardHandler.UpdateCard)
			r.Patch("/", cardHandler.PatchCard)
			r.Delete("/", cardHandler.DeleteCard)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
