package publisher

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/prudhivi99/Distributed-Systems/ecommerce-go/internal/models"
	"github.com/prudhivi99/Distributed-Systems/ecommerce-go/internal/processor"
)

const (
	OrderCreatedQueue  = "order.created"
	NotificationsQueue = "notifications"
)

// Broker is the part of messaging.RabbitMQ the publisher needs.
type Broker interface {
	DeclareQueue(name string) error
	Publish(ctx context.Context, queue string, message []byte) error
}

// NotificationBatch carries the notifications composed for one order.
type NotificationBatch struct {
	OrderID       string                   `json:"order_id"`
	Notifications []processor.Notification `json:"notifications"`
}

type OrderPublisher struct {
	mq Broker
}

func NewOrderPublisher(mq Broker) (*OrderPublisher, error) {
	for _, queue := range []string{OrderCreatedQueue, NotificationsQueue} {
		if err := mq.DeclareQueue(queue); err != nil {
			return nil, err
		}
	}

	return &OrderPublisher{mq: mq}, nil
}

// PublishOrderCreated publishes an order.created event
func (p *OrderPublisher) PublishOrderCreated(ctx context.Context, order *models.Order) error {
	return p.publish(ctx, OrderCreatedQueue, models.NewOrderCreatedEvent(order))
}

// PublishNotifications hands composed notifications to the dispatcher queue
func (p *OrderPublisher) PublishNotifications(ctx context.Context, orderID string, notifications []processor.Notification) error {
	if len(notifications) == 0 {
		return nil
	}
	return p.publish(ctx, NotificationsQueue, NotificationBatch{OrderID: orderID, Notifications: notifications})
}

func (p *OrderPublisher) publish(ctx context.Context, queue string, event interface{}) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	return p.mq.Publish(ctx, queue, data)
}
