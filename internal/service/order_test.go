package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akozhevnikov/coffeeshop/internal/models"
)

func newTestOrderService() (*OrderService, *mockUserStorage, *mockOrderStorage, *mockNotifier) {
	users := newMockUserStorage()
	orders := &mockOrderStorage{}
	notifier := &mockNotifier{}
	svc := NewOrderService(testLogger(), users, orders, notifier)
	return svc, users, orders, notifier
}

func TestOrderService_CreateOrder(t *testing.T) {
	ctx := context.Background()
	svc, users, orders, notifier := newTestOrderService()
	seedUser(t, users, "alice", "a@x.com", "secret1")

	items := []models.OrderItem{
		{NameSnapshot: "Latte", PriceSnapshot: 4.5, Quantity: 2},
		{NameSnapshot: "Croissant", PriceSnapshot: 3.0, Quantity: 1},
	}

	order, err := svc.CreateOrder(ctx, "id-alice", items)
	require.NoError(t, err)

	assert.NotEmpty(t, order.ID)
	assert.Equal(t, "id-alice", order.UserID)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.InDelta(t, 12.0, order.TotalPrice, 0.001)
	assert.False(t, order.CreatedAt.IsZero())

	require.Len(t, orders.orders, 1)

	// письмо-подтверждение ушло владельцу заказа
	sent := notifier.byKind("order")
	require.Len(t, sent, 1)
	assert.Equal(t, "a@x.com", sent[0].email)
	assert.Equal(t, "alice", sent[0].username)
	require.NotNil(t, sent[0].order)
	assert.Equal(t, order.ID, sent[0].order.ID)
}

func TestOrderService_CreateOrder_InvalidItems(t *testing.T) {
	ctx := context.Background()
	svc, users, orders, notifier := newTestOrderService()
	seedUser(t, users, "alice", "a@x.com", "secret1")

	tests := []struct {
		name  string
		items []models.OrderItem
	}{
		{name: "empty order", items: nil},
		{
			name:  "missing item name",
			items: []models.OrderItem{{NameSnapshot: "", PriceSnapshot: 4.5, Quantity: 1}},
		},
		{
			name:  "zero quantity",
			items: []models.OrderItem{{NameSnapshot: "Latte", PriceSnapshot: 4.5, Quantity: 0}},
		},
		{
			name:  "negative price",
			items: []models.OrderItem{{NameSnapshot: "Latte", PriceSnapshot: -1, Quantity: 1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateOrder(ctx, "id-alice", tt.items)
			var validationErr *ValidationError
			assert.ErrorAs(t, err, &validationErr)
		})
	}

	assert.Empty(t, orders.orders)
	assert.Empty(t, notifier.byKind("order"))
}

func TestOrderService_CreateOrder_UnknownUser(t *testing.T) {
	ctx := context.Background()
	svc, _, orders, _ := newTestOrderService()

	items := []models.OrderItem{{NameSnapshot: "Latte", PriceSnapshot: 4.5, Quantity: 1}}

	_, err := svc.CreateOrder(ctx, "missing", items)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, orders.orders)
}

func TestOrderService_ListOrders(t *testing.T) {
	ctx := context.Background()
	svc, _, orders, _ := newTestOrderService()

	orders.orders = []*models.Order{
		{ID: "order1", UserID: "id-alice"},
		{ID: "order2", UserID: "id-alice"},
		{ID: "order3", UserID: "id-bob"},
	}

	result, err := svc.ListOrders(ctx, "id-alice")
	require.NoError(t, err)
	assert.Len(t, result, 2)

	empty, err := svc.ListOrders(ctx, "id-carol")
	require.NoError(t, err)
	assert.Empty(t, empty)
}
