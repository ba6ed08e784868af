package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/Maksim-Burtsev/test-webapp/internal/api/user"
)

// Config contains the handlers needed for the router setup.
type Config struct {
	UserHandler *user.UserHandler
}

// SetupRouter initializes and configures the main application router.
// Server-wide middleware (request ID, structured logger, recoverer, timeout)
// is applied before mounting this router in main.go.
func SetupRouter(cfg *Config) chi.Router {
	r := chi.NewRouter()

	// Canonicalizes POST /users/ to /users.
	r.Use(middleware.StripSlashes)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("pong"))
	})

	r.Post("/users", cfg.UserHandler.CreateUser)

	return r
}
