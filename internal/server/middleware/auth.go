package middleware

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"account-service/internal/apperr"
	"account-service/internal/security"
	"account-service/internal/server/respond"
)

const bearerPrefix = "bearer "

// Authenticator verifies the Authorization header and, on success, installs
// the principal in the request context. The header must start with the exact
// lowercase "bearer " prefix; requests without it pass through anonymously
// and are rejected later by RequireAuthenticated where a principal is
// required. A present but invalid token short-circuits with 403 and
// COMMON_INVALID_TOKEN, never reaching the handler.
func Authenticator(tokens *security.TokenProvider, log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, bearerPrefix) {
				next.ServeHTTP(w, r)
				return
			}

			info, err := tokens.Verify(header[len(bearerPrefix):])
			if err != nil {
				log.Warn("token verification failed",
					zap.String("path", r.URL.Path), zap.Error(err))
				respond.Fail(w, apperr.ErrInvalidToken, log)
				return
			}

			p := security.Principal{Username: info.Subject, Roles: info.Roles}
			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), p)))
		})
	}
}

// RequireAuthenticated rejects requests that carry no principal with 403 and
// COMMON_INVALID_TOKEN. Place it after Authenticator on protected routes.
func RequireAuthenticated(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := GetPrincipal(r.Context()); !ok {
				respond.Fail(w, apperr.ErrInvalidToken, log)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
