package main

import (
	"log"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/prudhivi99/Distributed-Systems/ecommerce-go/internal/config"
	"github.com/prudhivi99/Distributed-Systems/ecommerce-go/internal/db"
	"github.com/prudhivi99/Distributed-Systems/ecommerce-go/internal/processor"
)

// The connection is opened once per container and reused across
// invocations.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	mongoDB, err := db.NewMongoDB(cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	orderProcessor := processor.New(db.NewOrderRepository(mongoDB.DB))
	lambda.Start(orderProcessor.Handle)
}
