package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/phrazzld/tasklist-api/internal/api"
	apiMiddleware "github.com/phrazzld/tasklist-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware. Authorization is not a router concern here: every store
// operation checks the caller's token itself, so all routes are public and
// the token travels as a query parameter.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.Trace)

	healthHandler := api.NewHealthHandler(app.store)
	userHandler := api.NewUserHandler(app.store)
	taskHandler := api.NewTaskHandler(app.store)

	r.Get("/", healthHandler.Live)

	r.Route("/users", func(r chi.Router) {
		r.Get("/", userHandler.List)
		r.Post("/", userHandler.Create)
		// Static segment must be registered alongside /{id}; chi matches
		// it before the parameter route.
		r.Post("/get_token", userHandler.GetToken)
		r.Get("/{id}", userHandler.Get)
		r.Put("/{id}", userHandler.Update)
		r.Delete("/{id}", userHandler.Delete)
	})

	r.Route("/tasks", func(r chi.Router) {
		r.Get("/", taskHandler.List)
		r.Post("/", taskHandler.Create)
		r.Get("/{id}", taskHandler.Get)
		r.Put("/{id}", taskHandler.Update)
		r.Delete("/{id}", taskHandler.Delete)
	})

	r.Delete("/buster_call", userHandler.Purge)

	return r
}
