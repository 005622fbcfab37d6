package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/akozhevnikov/coffeeshop/internal/service"
	"github.com/akozhevnikov/coffeeshop/pkg/api"
)

// UsersHandler обрабатывает запросы профиля и admin-операции
// над пользователями
type UsersHandler struct {
	logger *slog.Logger
	users  *service.UserService
}

// NewUsersHandler создает новый handler для пользователей
func NewUsersHandler(logger *slog.Logger, users *service.UserService) *UsersHandler {
	return &UsersHandler{
		logger: logger,
		users:  users,
	}
}

// Profile обрабатывает GET /api/users/profile
func (h *UsersHandler) Profile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		sendError(h.logger, w, "unauthorized", http.StatusUnauthorized)
		return
	}

	user, err := h.users.Profile(ctx, userID)
	if err != nil {
		sendServiceError(h.logger, w, err)
		return
	}

	sendJSON(h.logger, w, user, http.StatusOK)
}

// UpdateProfile обрабатывает PUT /api/users/profile
// Обновляет username и/или email
func (h *UsersHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		sendError(h.logger, w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req api.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode profile update", slog.Any("error", err))
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	user, err := h.users.UpdateProfile(ctx, userID, req.Username, req.Email)
	if err != nil {
		sendServiceError(h.logger, w, err)
		return
	}

	sendJSON(h.logger, w, user, http.StatusOK)
}

// UpdatePassword обрабатывает PUT /api/users/password
func (h *UsersHandler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		sendError(h.logger, w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req api.UpdatePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode password update", slog.Any("error", err))
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.users.ChangePassword(ctx, userID, req.OldPassword, req.NewPassword); err != nil {
		sendServiceError(h.logger, w, err)
		return
	}

	sendJSON(h.logger, w, api.MessageResponse{Message: "Password updated"}, http.StatusOK)
}

// List обрабатывает GET /api/users (admin only)
// Возвращает всех пользователей кроме вызывающего
func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		sendError(h.logger, w, "unauthorized", http.StatusUnauthorized)
		return
	}

	users, err := h.users.ListUsers(ctx, userID)
	if err != nil {
		sendServiceError(h.logger, w, err)
		return
	}

	sendJSON(h.logger, w, users, http.StatusOK)
}

// Delete обрабатывает DELETE /api/users/{id} (admin only)
func (h *UsersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	targetID := r.PathValue("id")
	if targetID == "" {
		sendError(h.logger, w, "user id is required", http.StatusBadRequest)
		return
	}

	if err := h.users.DeleteUser(ctx, targetID); err != nil {
		sendServiceError(h.logger, w, err)
		return
	}

	h.logger.InfoContext(ctx, "user deleted by admin", slog.String("target_id", targetID))

	sendJSON(h.logger, w, api.MessageResponse{Message: "User deleted"}, http.StatusOK)
}

// Orders обрабатывает GET /api/users/{id}/orders (admin only)
func (h *UsersHandler) Orders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	targetID := r.PathValue("id")
	if targetID == "" {
		sendError(h.logger, w, "user id is required", http.StatusBadRequest)
		return
	}

	orders, err := h.users.UserOrders(ctx, targetID)
	if err != nil {
		sendServiceError(h.logger, w, err)
		return
	}

	sendJSON(h.logger, w, orders, http.StatusOK)
}
