package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/akozhevnikov/coffeeshop/internal/auth"
	"github.com/akozhevnikov/coffeeshop/internal/server/handlers"
	"github.com/akozhevnikov/coffeeshop/pkg/api"
)

// abort отвечает JSON-ошибкой и не передает запрос дальше
func abort(logger *slog.Logger, w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	resp := api.ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.Error("failed to encode error response", slog.Any("error", err))
	}
}

// AuthMiddleware создает middleware аутентификации: извлекает bearer-токен
// из заголовка Authorization, проверяет его через TokenService и кладет
// claims в контекст запроса. На любой ошибке отвечает 401, downstream
// handler не вызывается.
func AuthMiddleware(logger *slog.Logger, tokens *auth.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.Warn("missing Authorization header")
				abort(logger, w, "missing token", http.StatusUnauthorized)
				return
			}

			// Ожидаем формат: "Bearer <token>"
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				logger.Warn("invalid Authorization header format")
				abort(logger, w, "invalid token format", http.StatusUnauthorized)
				return
			}

			claims, err := tokens.Verify(parts[1])
			if err != nil {
				logger.Warn("invalid access token", slog.Any("error", err))
				message := "invalid token"
				if errors.Is(err, auth.ErrTokenExpired) {
					message = "token expired"
				}
				abort(logger, w, message, http.StatusUnauthorized)
				return
			}

			// Добавляем claims из токена в контекст
			ctx := context.WithValue(r.Context(), handlers.UserIDKey, claims.UserID)
			ctx = context.WithValue(ctx, handlers.UsernameKey, claims.Username)
			ctx = context.WithValue(ctx, handlers.RoleKey, claims.Role)

			logger.Debug("user authenticated",
				"user_id", claims.UserID,
				"username", claims.Username,
				"role", claims.Role)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
