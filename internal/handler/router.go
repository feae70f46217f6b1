package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/taskdeck/taskdeck-go/internal/middleware"
)

// RouterConfig holds what NewRouter wires together.
type RouterConfig struct {
	Auth         *AuthHandler
	Tasks        *TaskHandler
	Authenticate func(http.Handler) http.Handler
	CORSOrigins  []string
}

// NewRouter builds the HTTP routes. Everything except registration, login and
// the health check sits behind cfg.Authenticate.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger)
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", cfg.Auth.HandleRegister)
		r.Post("/auth/login", cfg.Auth.HandleLogin)

		r.Group(func(r chi.Router) {
			r.Use(cfg.Authenticate)

			r.Get("/auth/profile", cfg.Auth.HandleProfile)
			r.Put("/auth/profile", cfg.Auth.HandleUpdateProfile)

			r.Get("/tasks", cfg.Tasks.HandleListTasks)
			r.Post("/tasks", cfg.Tasks.HandleCreateTask)
			r.Get("/tasks/{task_id}", cfg.Tasks.HandleGetTask)
			r.Put("/tasks/{task_id}", cfg.Tasks.HandleUpdateTask)
			r.Delete("/tasks/{task_id}", cfg.Tasks.HandleDeleteTask)
		})
	})

	return r
}
