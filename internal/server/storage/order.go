package storage

import (
	"context"

	"github.com/akozhevnikov/coffeeshop/internal/models"
)

// OrderStorage defines interface for order persistence.
// Order domain logic lives elsewhere; this system only creates orders
// and lists them per user.
type OrderStorage interface {
	// CreateOrder stores a new order with its item snapshots.
	CreateOrder(ctx context.Context, order *models.Order) error

	// GetUserOrders returns all orders of a user, newest first.
	// Returns empty slice if the user has no orders.
	GetUserOrders(ctx context.Context, userID string) ([]*models.Order, error)
}
