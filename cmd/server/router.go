package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	apiMiddleware "github.com/promanage/promanage-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware. Returns the configured router.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	// Register routes
	r.Route("/api", func(r chi.Router) {
		r.Route("/user", func(r chi.Router) {
			// Public endpoints
			r.Post("/register", app.userHandler.Register)
			r.Post("/login", app.userHandler.Login)

			// Protected endpoints
			r.Group(func(r chi.Router) {
				r.Use(app.authMiddleware.Authenticate)
				r.Get("/verify", app.userHandler.Verify)
				r.Get("/dashboard", app.userHandler.Dashboard)
				r.Get("/setting", app.userHandler.GetSetting)
				r.Post("/update", app.userHandler.UpdateProfile)
				r.Get("/search", app.userHandler.SearchByEmail)
				r.Get("/name", app.userHandler.GetName)
			})
		})

		r.Route("/task", func(r chi.Router) {
			r.Use(app.authMiddleware.Authenticate)
			r.Post("/create", app.taskHandler.Create)
			r.Get("/all", app.taskHandler.List)
			r.Get("/analytics", app.taskHandler.Analytics)
			r.Patch("/{id}/status", app.taskHandler.UpdateStatus)
			r.Delete("/{id}/delete", app.taskHandler.Delete)
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
