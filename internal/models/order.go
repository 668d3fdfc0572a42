package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusConfirmed = "confirmed"
	StatusShipped   = "shipped"
	StatusDelivered = "delivered"
	StatusCancelled = "cancelled"
)

var validStatuses = map[string]bool{
	StatusPending:   true,
	StatusCompleted: true,
	StatusConfirmed: true,
	StatusShipped:   true,
	StatusDelivered: true,
	StatusCancelled: true,
}

// ValidStatus reports whether s is a known order status.
func ValidStatus(s string) bool {
	return validStatuses[s]
}

type Order struct {
	ID           primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	Date         time.Time            `json:"date" bson:"date"`
	ProductIDs   []primitive.ObjectID `json:"product_ids" bson:"product_ids"`
	Total        float64              `json:"total" bson:"total"`
	Status       string               `json:"status,omitempty" bson:"status,omitempty"`
	CustomerName string               `json:"customer_name,omitempty" bson:"customer_name,omitempty"`
	CreatedAt    time.Time            `json:"created_at" bson:"created_at"`
	ProcessedAt  *time.Time           `json:"processed_at,omitempty" bson:"processed_at,omitempty"`
}

// Processed reports whether the processing workflow has already run for the order.
func (o *Order) Processed() bool {
	return o.ProcessedAt != nil
}

// OrderRequest is the body for creating or replacing an order. The total is
// never accepted from clients; it is recomputed from current product prices.
type OrderRequest struct {
	Date         time.Time `json:"date" binding:"required"`
	ProductIDs   []string  `json:"product_ids"`
	Status       string    `json:"status"`
	CustomerName string    `json:"customer_name"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
