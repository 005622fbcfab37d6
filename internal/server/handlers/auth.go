package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/akozhevnikov/coffeeshop/internal/service"
	"github.com/akozhevnikov/coffeeshop/pkg/api"
)

// AuthHandler обрабатывает запросы регистрации и аутентификации
type AuthHandler struct {
	logger *slog.Logger
	auth   *service.AuthService
}

// NewAuthHandler создает новый handler для авторизации
func NewAuthHandler(logger *slog.Logger, auth *service.AuthService) *AuthHandler {
	return &AuthHandler{
		logger: logger,
		auth:   auth,
	}
}

// Register обрабатывает POST /api/auth/register
// Регистрация обычного пользователя, в ответе bearer-токен
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode register request", slog.Any("error", err))
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	token, user, err := h.auth.RegisterUser(ctx, req.Username, req.Email, req.Password)
	if err != nil {
		sendServiceError(h.logger, w, err)
		return
	}

	h.logger.InfoContext(ctx, "register succeeded", slog.String("user_id", user.ID))

	sendJSON(h.logger, w, api.TokenResponse{Token: token}, http.StatusCreated)
}

// RegisterAdmin обрабатывает POST /api/auth/register-admin
// Регистрация admin-аккаунта. Токен не возвращается: администратор
// логинится отдельно.
func (h *AuthHandler) RegisterAdmin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.RegisterAdminRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode register-admin request", slog.Any("error", err))
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	user, err := h.auth.RegisterAdmin(ctx, req.Username, req.Email, req.Password, req.Phone)
	if err != nil {
		sendServiceError(h.logger, w, err)
		return
	}

	h.logger.InfoContext(ctx, "admin register succeeded", slog.String("user_id", user.ID))

	sendJSON(h.logger, w, api.MessageResponse{Message: "Admin registered"}, http.StatusCreated)
}

// Login обрабатывает POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode login request", slog.Any("error", err))
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	token, err := h.auth.Login(ctx, req.Email, req.Password)
	if err != nil {
		sendServiceError(h.logger, w, err)
		return
	}

	sendJSON(h.logger, w, api.TokenResponse{Token: token}, http.StatusOK)
}

// Me обрабатывает GET /api/auth/me
// Возвращает identity текущего пользователя по claims из токена
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		sendError(h.logger, w, "unauthorized", http.StatusUnauthorized)
		return
	}

	user, err := h.auth.CurrentIdentity(ctx, userID)
	if err != nil {
		sendServiceError(h.logger, w, err)
		return
	}

	sendJSON(h.logger, w, user, http.StatusOK)
}

// ForgotPassword обрабатывает POST /api/auth/forgot-password
// Всегда отвечает 200: существование email наружу не раскрывается
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.ForgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode forgot-password request", slog.Any("error", err))
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.auth.RequestPasswordReset(ctx, req.Email); err != nil {
		sendServiceError(h.logger, w, err)
		return
	}

	sendJSON(h.logger, w,
		api.MessageResponse{Message: "If the email is registered, a reset link has been sent"},
		http.StatusOK)
}

// ResetPassword обрабатывает POST /api/auth/reset-password
// Устанавливает новый пароль по reset-токену из письма
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode reset-password request", slog.Any("error", err))
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.auth.ResetPassword(ctx, req.Token, req.NewPassword); err != nil {
		sendServiceError(h.logger, w, err)
		return
	}

	sendJSON(h.logger, w, api.MessageResponse{Message: "Password updated"}, http.StatusOK)
}
