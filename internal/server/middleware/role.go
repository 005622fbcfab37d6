package middleware

import (
	"log/slog"
	"net/http"

	"github.com/akozhevnikov/coffeeshop/internal/server/handlers"
)

// RequireRole создает middleware проверки роли. Применяется после
// AuthMiddleware: роль берется из claims в контексте. На несовпадении
// отвечает 403, downstream handler не вызывается. Состояние не мутирует.
func RequireRole(logger *slog.Logger, role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			current, ok := handlers.GetRole(r.Context())
			if !ok {
				logger.Warn("role check without authenticated user")
				abort(logger, w, "missing token", http.StatusUnauthorized)
				return
			}

			if current != role {
				logger.Warn("role mismatch",
					"required", role,
					"actual", current)
				abort(logger, w, "insufficient permissions", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
