package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/handlers"
	"github.com/phrazzld/todo-api/internal/api"
	apiMiddleware "github.com/phrazzld/todo-api/internal/api/middleware"
)

// requestTimeout bounds the context of every request, including pool checkout.
const requestTimeout = 30 * time.Second

// setupRouter creates the router with middleware and the todo route table.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(apiMiddleware.Telemetry(app.telemetry.Tracer, app.metrics))
	r.Use(apiMiddleware.Trace(app.logger))

	todoHandler := api.NewTodoHandler(app.provider, app.storeFactory, app.logger)

	r.Route("/todos", func(r chi.Router) {
		r.Get("/all", todoHandler.ListAll)
		r.Get("/by_id/{id}", todoHandler.GetByID)
		r.Get("/by_status/{status}", todoHandler.ListByStatus)
		r.Post("/new", todoHandler.Create)
		r.Put("/update/{id}", todoHandler.Update)
		r.Delete("/delete/{id}", todoHandler.Delete)
	})

	r.Get("/health", todoHandler.Health)

	return handlers.CORS(
		handlers.AllowedOrigins(app.config.CORS.AllowedOrigins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)(r)
}
