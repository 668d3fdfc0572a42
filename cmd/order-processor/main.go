package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/prudhivi99/Distributed-Systems/ecommerce-go/internal/config"
	"github.com/prudhivi99/Distributed-Systems/ecommerce-go/internal/consumer"
	"github.com/prudhivi99/Distributed-Systems/ecommerce-go/internal/db"
	"github.com/prudhivi99/Distributed-Systems/ecommerce-go/internal/messaging"
	"github.com/prudhivi99/Distributed-Systems/ecommerce-go/internal/processor"
	"github.com/prudhivi99/Distributed-Systems/ecommerce-go/internal/publisher"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.RabbitMQURL == "" {
		log.Fatal("RABBITMQ_URL is required")
	}

	mongoDB, err := db.NewMongoDB(cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer mongoDB.Close()

	rabbitMQ, err := messaging.NewRabbitMQ(cfg.RabbitMQURL)
	if err != nil {
		log.Fatalf("Failed to connect to RabbitMQ: %v", err)
	}
	defer rabbitMQ.Close()

	// Declares order.created and notifications
	pub, err := publisher.NewOrderPublisher(rabbitMQ)
	if err != nil {
		log.Fatalf("Failed to create publisher: %v", err)
	}

	messages, err := rabbitMQ.Consume(publisher.OrderCreatedQueue, "order-processor")
	if err != nil {
		log.Fatalf("Failed to consume messages: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	orderProcessor := processor.New(db.NewOrderRepository(mongoDB.DB))
	orderConsumer := consumer.NewOrderConsumer(orderProcessor, pub)

	log.Println("🚀 Order processor started")
	orderConsumer.Run(ctx, messages)
	log.Println("Shutting down...")
}
