package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/akozhevnikov/coffeeshop/internal/service"
	"github.com/akozhevnikov/coffeeshop/pkg/api"
)

// sendJSON отправляет JSON ответ
func sendJSON(logger *slog.Logger, w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode JSON response", slog.Any("error", err))
	}
}

// sendError отправляет JSON ответ с ошибкой
func sendError(logger *slog.Logger, w http.ResponseWriter, message string, statusCode int) {
	resp := api.ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	}
	sendJSON(logger, w, resp, statusCode)
}

// sendServiceError мапит типизированные ошибки сервисного слоя на HTTP
// статусы. Неизвестные ошибки логируются и превращаются в 500 без деталей.
func sendServiceError(logger *slog.Logger, w http.ResponseWriter, err error) {
	var validationErr *service.ValidationError
	if errors.As(err, &validationErr) {
		sendError(logger, w, validationErr.Message, http.StatusBadRequest)
		return
	}

	var conflictErr *service.ConflictError
	if errors.As(err, &conflictErr) {
		sendError(logger, w, conflictErr.Message, http.StatusConflict)
		return
	}

	switch {
	case errors.Is(err, service.ErrNotFound):
		sendError(logger, w, "not found", http.StatusNotFound)
	case errors.Is(err, service.ErrInvalidCredentials):
		sendError(logger, w, "invalid credentials", http.StatusUnauthorized)
	default:
		logger.Error("internal error", slog.Any("error", err))
		sendError(logger, w, "internal server error", http.StatusInternalServerError)
	}
}
