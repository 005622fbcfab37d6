package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/akozhevnikov/coffeeshop/internal/models"
	"github.com/akozhevnikov/coffeeshop/internal/service"
	"github.com/akozhevnikov/coffeeshop/pkg/api"
)

// OrdersHandler обрабатывает заказы текущего пользователя
type OrdersHandler struct {
	logger *slog.Logger
	orders *service.OrderService
}

// NewOrdersHandler создает новый handler для заказов
func NewOrdersHandler(logger *slog.Logger, orders *service.OrderService) *OrdersHandler {
	return &OrdersHandler{
		logger: logger,
		orders: orders,
	}
}

// Create обрабатывает POST /api/orders
// Создает заказ из снапшотов позиций; подтверждение уходит по почте
// асинхронно
func (h *OrdersHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		sendError(h.logger, w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req api.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode order request", slog.Any("error", err))
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	items := make([]models.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, models.OrderItem{
			NameSnapshot:  item.NameSnapshot,
			PriceSnapshot: item.PriceSnapshot,
			Quantity:      item.Quantity,
		})
	}

	order, err := h.orders.CreateOrder(ctx, userID, items)
	if err != nil {
		sendServiceError(h.logger, w, err)
		return
	}

	sendJSON(h.logger, w, order, http.StatusCreated)
}

// List обрабатывает GET /api/orders
// Возвращает заказы текущего пользователя
func (h *OrdersHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		sendError(h.logger, w, "unauthorized", http.StatusUnauthorized)
		return
	}

	orders, err := h.orders.ListOrders(ctx, userID)
	if err != nil {
		sendServiceError(h.logger, w, err)
		return
	}

	sendJSON(h.logger, w, orders, http.StatusOK)
}
