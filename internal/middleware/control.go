package middleware

import (
	"log/slog"
	"net/http"

	"orrery-server/internal/auth"
	"orrery-server/internal/shared/errors"
	"orrery-server/internal/shared/response"
)

func ControlMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := slog.With(
			"middleware", "control",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
		)

		claims := GetClaimsFromContext(r)
		if claims == nil {
			response.Error(w, r, logger, errors.Unauthorized("authentication required"))
			return
		}

		if claims.Role != auth.RoleControl {
			logger.Warn("Token without control role attempted to change settings",
				"subject", claims.Subject,
				"role", claims.Role)
			response.Error(w, r, logger, errors.Forbidden("control access required"))
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireControl allows only requests carrying a valid control token
func RequireControl(secret string, next http.Handler) http.Handler {
	return TokenMiddleware(secret)(ControlMiddleware(next))
}
