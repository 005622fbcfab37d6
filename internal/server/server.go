package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/akozhevnikov/coffeeshop/internal/auth"
	"github.com/akozhevnikov/coffeeshop/internal/models"
	"github.com/akozhevnikov/coffeeshop/internal/server/handlers"
	"github.com/akozhevnikov/coffeeshop/internal/server/middleware"
)

// shutdownTimeout время на graceful shutdown открытых соединений
const shutdownTimeout = 30 * time.Second

// Handlers собирает все HTTP handlers приложения
type Handlers struct {
	Auth   *handlers.AuthHandler
	Users  *handlers.UsersHandler
	Orders *handlers.OrdersHandler
	Health *handlers.HealthHandler
}

// Server оборачивает http.Server с собранным роутером
type Server struct {
	logger     *slog.Logger
	httpServer *http.Server
}

// New собирает роутер и создает Server.
// Публичные маршруты идут без аутентификации, защищенные — через
// AuthMiddleware, admin-маршруты — дополнительно через RequireRole.
func New(logger *slog.Logger, address string, tokens *auth.TokenService, h Handlers) *Server {
	mux := http.NewServeMux()

	authOnly := middleware.AuthMiddleware(logger, tokens)
	adminOnly := func(next http.Handler) http.Handler {
		return authOnly(middleware.RequireRole(logger, models.RoleAdmin)(next))
	}

	// Публичные маршруты
	mux.HandleFunc("POST /api/auth/register", h.Auth.Register)
	mux.HandleFunc("POST /api/auth/register-admin", h.Auth.RegisterAdmin)
	mux.HandleFunc("POST /api/auth/login", h.Auth.Login)
	mux.HandleFunc("POST /api/auth/forgot-password", h.Auth.ForgotPassword)
	mux.HandleFunc("POST /api/auth/reset-password", h.Auth.ResetPassword)
	mux.HandleFunc("GET /api/health", h.Health.Health)

	// Маршруты под bearer-токеном
	mux.Handle("GET /api/auth/me", authOnly(http.HandlerFunc(h.Auth.Me)))
	mux.Handle("GET /api/users/profile", authOnly(http.HandlerFunc(h.Users.Profile)))
	mux.Handle("PUT /api/users/profile", authOnly(http.HandlerFunc(h.Users.UpdateProfile)))
	mux.Handle("PUT /api/users/password", authOnly(http.HandlerFunc(h.Users.UpdatePassword)))
	mux.Handle("POST /api/orders", authOnly(http.HandlerFunc(h.Orders.Create)))
	mux.Handle("GET /api/orders", authOnly(http.HandlerFunc(h.Orders.List)))

	// Admin-маршруты
	mux.Handle("GET /api/users", adminOnly(http.HandlerFunc(h.Users.List)))
	mux.Handle("DELETE /api/users/{id}", adminOnly(http.HandlerFunc(h.Users.Delete)))
	mux.Handle("GET /api/users/{id}/orders", adminOnly(http.HandlerFunc(h.Users.Orders)))

	handler := middleware.LoggingMiddleware(logger)(
		middleware.RecoveryMiddleware(logger)(mux),
	)

	return &Server{
		logger: logger,
		httpServer: &http.Server{
			Addr:         address,
			Handler:      handler,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// Run запускает HTTP сервер и блокируется до отмены контекста,
// затем делает graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		s.logger.Info("server started", slog.String("address", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	s.logger.Info("server stopped gracefully")

	return nil
}
