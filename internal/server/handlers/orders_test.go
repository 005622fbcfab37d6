package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akozhevnikov/coffeeshop/internal/models"
	"github.com/akozhevnikov/coffeeshop/pkg/api"
)

func TestOrdersHandler_Create(t *testing.T) {
	env := newTestEnv()
	env.seedUser("user1", "alice", "a@x.com", "secret1", models.RoleUser)
	handler := NewOrdersHandler(setupTestLogger(), env.orderSvc)

	body := postJSON(t, "/api/orders", api.CreateOrderRequest{
		Items: []api.OrderItemRequest{
			{NameSnapshot: "Latte", PriceSnapshot: 4.5, Quantity: 2},
			{NameSnapshot: "Croissant", PriceSnapshot: 3.0, Quantity: 1},
		},
	})
	req := body.WithContext(context.WithValue(body.Context(), UserIDKey, "user1"))

	w := httptest.NewRecorder()
	handler.Create(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var order models.Order
	err := json.NewDecoder(w.Body).Decode(&order)
	require.NoError(t, err)
	assert.NotEmpty(t, order.ID)
	assert.Equal(t, "user1", order.UserID)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.InDelta(t, 12.0, order.TotalPrice, 0.001)

	require.Len(t, env.orders.orders, 1)
}

func TestOrdersHandler_Create_EmptyOrder(t *testing.T) {
	env := newTestEnv()
	env.seedUser("user1", "alice", "a@x.com", "secret1", models.RoleUser)
	handler := NewOrdersHandler(setupTestLogger(), env.orderSvc)

	body := postJSON(t, "/api/orders", api.CreateOrderRequest{})
	req := body.WithContext(context.WithValue(body.Context(), UserIDKey, "user1"))

	w := httptest.NewRecorder()
	handler.Create(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, env.orders.orders)
}

func TestOrdersHandler_Create_NoContext(t *testing.T) {
	env := newTestEnv()
	handler := NewOrdersHandler(setupTestLogger(), env.orderSvc)

	req := postJSON(t, "/api/orders", api.CreateOrderRequest{})
	w := httptest.NewRecorder()
	handler.Create(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestOrdersHandler_List(t *testing.T) {
	env := newTestEnv()
	env.seedUser("user1", "alice", "a@x.com", "secret1", models.RoleUser)
	env.orders.orders = []*models.Order{
		{ID: "order1", UserID: "user1"},
		{ID: "order2", UserID: "user2"},
	}
	handler := NewOrdersHandler(setupTestLogger(), env.orderSvc)

	req := authenticatedRequest(http.MethodGet, "/api/orders", "user1")
	w := httptest.NewRecorder()
	handler.List(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var orders []models.Order
	err := json.NewDecoder(w.Body).Decode(&orders)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "order1", orders[0].ID)
}

func TestOrdersHandler_List_Empty(t *testing.T) {
	env := newTestEnv()
	handler := NewOrdersHandler(setupTestLogger(), env.orderSvc)

	req := authenticatedRequest(http.MethodGet, "/api/orders", "user1")
	w := httptest.NewRecorder()
	handler.List(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	// пустой список, не null
	assert.JSONEq(t, "[]", w.Body.String())
}
