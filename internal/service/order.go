package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/akozhevnikov/coffeeshop/internal/models"
	"github.com/akozhevnikov/coffeeshop/internal/server/storage"
)

// OrderService создает заказы и отдает заказы пользователя.
// Каталог и корзина живут вне этого сервиса: заказ приходит уже
// со снапшотами названий и цен.
type OrderService struct {
	logger   *slog.Logger
	users    storage.UserStorage
	orders   storage.OrderStorage
	notifier Notifier
}

// NewOrderService создает новый OrderService
func NewOrderService(logger *slog.Logger, users storage.UserStorage, orders storage.OrderStorage, notifier Notifier) *OrderService {
	return &OrderService{
		logger:   logger,
		users:    users,
		orders:   orders,
		notifier: notifier,
	}
}

// CreateOrder создает заказ и асинхронно отправляет письмо-подтверждение.
// Итог заказа считается из снапшотов позиций.
func (s *OrderService) CreateOrder(ctx context.Context, userID string, items []models.OrderItem) (*models.Order, error) {
	if len(items) == 0 {
		return nil, invalidInput("order must contain at least one item")
	}

	var total float64
	for _, item := range items {
		if item.NameSnapshot == "" {
			return nil, invalidInput("item name is required")
		}
		if item.Quantity <= 0 {
			return nil, invalidInput("item quantity must be positive")
		}
		if item.PriceSnapshot < 0 {
			return nil, invalidInput("item price must not be negative")
		}
		total += item.PriceSnapshot * float64(item.Quantity)
	}

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	order := &models.Order{
		ID:         uuid.New().String(),
		UserID:     userID,
		Items:      items,
		TotalPrice: total,
		Status:     models.OrderStatusPending,
		CreatedAt:  time.Now(),
	}

	if err := s.orders.CreateOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.logger.InfoContext(ctx, "order created",
		slog.String("order_id", order.ID),
		slog.String("user_id", userID))

	s.notifier.SendOrderConfirmationEmail(user.Email, user.Username, order)

	return order, nil
}

// ListOrders возвращает заказы вызывающего пользователя
func (s *OrderService) ListOrders(ctx context.Context, userID string) ([]*models.Order, error) {
	orders, err := s.orders.GetUserOrders(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get orders: %w", err)
	}
	return orders, nil
}
