package api

// OrderItemRequest представляет позицию создаваемого заказа.
// Название и цена — снапшоты каталога на момент оформления.
type OrderItemRequest struct {
	NameSnapshot  string  `json:"name_snapshot"`
	PriceSnapshot float64 `json:"price_snapshot"`
	Quantity      int     `json:"quantity"`
}

// CreateOrderRequest представляет запрос на создание заказа
type CreateOrderRequest struct {
	Items []OrderItemRequest `json:"items"`
}
