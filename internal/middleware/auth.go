package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"orrery-server/internal/auth"
	"orrery-server/internal/shared/errors"
	"orrery-server/internal/shared/response"
)

type contextKey string

const ClaimsContextKey contextKey = "claims"

// TokenMiddleware validates the bearer token of the request and stores its
// claims in the request context
func TokenMiddleware(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := slog.With(
				"middleware", "token",
				"method", r.Method,
				"path", r.URL.Path,
				"remote_addr", r.RemoteAddr,
			)
			logger.Debug("Processing token authentication")

			header := r.Header.Get("Authorization")
			token, found := strings.CutPrefix(header, "Bearer ")
			if !found || token == "" {
				response.Error(w, r, logger, errors.Unauthorized("authentication required"))
				return
			}

			claims, err := auth.ValidateControlToken(secret, token)
			if err != nil {
				response.ErrorWithMessage(w, r, logger, errors.Unauthorized(err.Error()), "invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), ClaimsContextKey, claims)
			logger.Debug("Token authentication successful", "subject", claims.Subject)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetClaimsFromContext returns the claims stored by TokenMiddleware
func GetClaimsFromContext(r *http.Request) *auth.Claims {
	if claims, ok := r.Context().Value(ClaimsContextKey).(*auth.Claims); ok {
		return claims
	}
	return nil
}
