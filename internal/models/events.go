package models

// OrderCreatedEvent is published when a new order is created
type OrderCreatedEvent struct {
	OrderID      string   `json:"order_id"`
	CustomerName string   `json:"customer_name,omitempty"`
	Total        float64  `json:"total"`
	ProductIDs   []string `json:"product_ids"`
}

// NewOrderCreatedEvent builds the event payload for an order.
func NewOrderCreatedEvent(order *Order) OrderCreatedEvent {
	return OrderCreatedEvent{
		OrderID:      order.ID.Hex(),
		CustomerName: order.CustomerName,
		Total:        order.Total,
		ProductIDs:   HexIDs(order.ProductIDs),
	}
}
