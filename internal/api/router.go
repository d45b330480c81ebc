package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/isdelr/linkstart-be/internal/api/handlers"
	"github.com/isdelr/linkstart-be/internal/api/respond"
	"github.com/isdelr/linkstart-be/internal/auth"
	"github.com/isdelr/linkstart-be/internal/services"
	"github.com/rs/zerolog/log"
)

// Dependencies groups what the router wires into its handlers.
type Dependencies struct {
	AllowedOrigins []string
	Tokens         auth.TokenValidator
	Users          services.UserServiceProvider
	Services       services.ServiceManagerProvider
	Prober         handlers.Prober
}

// NewRouter creates and configures a new Chi router.
func NewRouter(deps Dependencies) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RealIP)
	r.Use(requestLogger(log.Logger)...)
	r.Use(recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respond.Detail(w, http.StatusNotFound, "Not Found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respond.Detail(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	})

	// Initialize handlers
	userHandler := handlers.NewUserHandler(deps.Users)
	serviceHandler := handlers.NewServiceHandler(deps.Services)
	pingHandler := handlers.NewPingHandler(deps.Prober)
	requireAuth := auth.Middleware(deps.Tokens)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", userHandler.Register)
		r.Post("/login", userHandler.Login)
		r.Post("/refresh", userHandler.Refresh)
		r.With(requireAuth).Get("/me", userHandler.GetMe)
	})

	r.Route("/services", func(r chi.Router) {
		r.Use(requireAuth)
		r.Get("/", serviceHandler.GetAll)
		r.Post("/", serviceHandler.Create)
		r.Get("/count", serviceHandler.Count)
		r.Delete("/{id}", serviceHandler.Delete)
	})

	r.Get("/ping/{address}", pingHandler.Ping)

	return r
}
