// Package server assembles the HTTP router: middleware chain, route groups,
// and the health endpoint.
package server

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	authnhandler "account-service/internal/authn/handler"
	"account-service/internal/security"
	"account-service/internal/server/middleware"
	"account-service/internal/server/respond"
	userhandler "account-service/internal/user/handler"
)

// Pinger reports backing-store reachability for the health endpoint
// (e.g. *pgxpool.Pool). If nil, the health check skips the ping.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps holds the handler dependencies for the router.
type Deps struct {
	Authn  *authnhandler.Handler
	Users  *userhandler.Handler
	Tokens *security.TokenProvider
	Pinger Pinger
	Log    *zap.Logger
}

// NewRouter builds the router.
//
// Route → handler mapping:
//   - POST /api/v1/users/authentication/request → internal/authn/handler
//   - POST /api/v1/users/authentication/check   → internal/authn/handler
//   - POST /api/v1/login                        → internal/authn/handler
//   - POST /api/v1/users                        → internal/user/handler
//   - POST /api/v1/users/reset-password         → internal/user/handler
//   - GET  /api/v1/users/my                     → internal/user/handler (authenticated)
//
// Every route passes through the token authenticator; only /api/v1/users/my
// additionally requires a principal.
func NewRouter(deps Deps) *chi.Mux {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Use(middleware.Authenticator(deps.Tokens, deps.Log))

	r.Get("/health", healthHandler(deps.Pinger, deps.Log))

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/login", deps.Authn.Login)
		r.Route("/users", func(r chi.Router) {
			r.Post("/", deps.Users.CreateUser)
			r.Post("/reset-password", deps.Users.ResetPassword)
			r.Post("/authentication/request", deps.Authn.RequestChallenge)
			r.Post("/authentication/check", deps.Authn.CheckChallenge)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAuthenticated(deps.Log))
				r.Get("/my", deps.Users.My)
			})
		})
	})

	return r
}

func healthHandler(pinger Pinger, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if pinger != nil {
			if err := pinger.Ping(r.Context()); err != nil {
				log.Warn("health check ping failed", zap.Error(err))
				respond.Fail(w, err, log)
				return
			}
		}
		respond.OK(w, map[string]string{"status": "ok"})
	}
}
