package consumer

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/prudhivi99/Distributed-Systems/ecommerce-go/internal/models"
	"github.com/prudhivi99/Distributed-Systems/ecommerce-go/internal/processor"
)

type OrderProcessor interface {
	ProcessOrder(ctx context.Context, orderID string) *processor.Result
}

type NotificationPublisher interface {
	PublishNotifications(ctx context.Context, orderID string, notifications []processor.Notification) error
}

// OrderConsumer runs the processing workflow for every order.created event.
// Deliveries are never requeued: a failed workflow is not retried.
type OrderConsumer struct {
	processor OrderProcessor
	notifier  NotificationPublisher
}

func NewOrderConsumer(p OrderProcessor, notifier NotificationPublisher) *OrderConsumer {
	return &OrderConsumer{processor: p, notifier: notifier}
}

// Run handles deliveries until the channel closes or ctx is cancelled.
func (c *OrderConsumer) Run(ctx context.Context, messages <-chan amqp.Delivery) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-messages:
			if !ok {
				log.Println("⚠️ Delivery channel closed")
				return
			}
			c.handle(ctx, msg)
		}
	}
}

func (c *OrderConsumer) handle(ctx context.Context, msg amqp.Delivery) {
	log.Printf("📥 Received order.created event")

	var event models.OrderCreatedEvent
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		log.Printf("❌ Failed to parse event: %v", err)
		msg.Nack(false, false) // Don't requeue bad messages
		return
	}

	result := c.processor.ProcessOrder(ctx, event.OrderID)
	if result.StatusCode != http.StatusOK {
		log.Printf("❌ Order %s not processed (status %d): %v", event.OrderID, result.StatusCode, result.Err)
		msg.Nack(false, false)
		return
	}

	if result.Err != nil {
		log.Printf("⚠️ Order %s partially processed: %v", event.OrderID, result.Err)
	}

	if c.notifier != nil {
		if err := c.notifier.PublishNotifications(ctx, event.OrderID, result.Notifications); err != nil {
			log.Printf("⚠️ Failed to publish notifications for order %s: %v", event.OrderID, err)
		}
	}

	msg.Ack(false)
	log.Printf("✅ Order %s handled", event.OrderID)
}
