package models

import "time"

// Статусы заказа
const (
	OrderStatusPending = "pending"
)

// OrderItem представляет позицию заказа со снапшотом цены и названия
// на момент оформления (каталог может измениться позже)
type OrderItem struct {
	NameSnapshot  string  `json:"name_snapshot"`
	PriceSnapshot float64 `json:"price_snapshot"`
	Quantity      int     `json:"quantity"`
}

// Order представляет заказ пользователя
type Order struct {
	ID         string      `json:"id"`      // UUID заказа
	UserID     string      `json:"user_id"` // владелец заказа
	Items      []OrderItem `json:"items"`
	TotalPrice float64     `json:"total_price"`
	Status     string      `json:"status"` // pending по умолчанию
	CreatedAt  time.Time   `json:"created_at"`
}
