package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/prudhivi99/Distributed-Systems/ecommerce-go/internal/config"
	"github.com/prudhivi99/Distributed-Systems/ecommerce-go/internal/db"
)

func main() {
	var numCategories, numProducts, numOrders int
	var clear bool
	var seed int64
	flag.IntVar(&numCategories, "categories", 10, "number of categories to create")
	flag.IntVar(&numProducts, "products", 50, "number of products to create")
	flag.IntVar(&numOrders, "orders", 100, "number of orders to create")
	flag.BoolVar(&clear, "clear", false, "delete existing data before seeding")
	flag.Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	mongoDB, err := db.NewMongoDB(cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer mongoDB.Close()

	ctx := context.Background()
	if clear {
		for _, name := range []string{db.CategoriesCollection, db.ProductsCollection, db.OrdersCollection} {
			if _, err := mongoDB.DB.Collection(name).DeleteMany(ctx, bson.M{}); err != nil {
				log.Fatalf("Failed to clear %s: %v", name, err)
			}
		}
		log.Println("🗑️ Cleared existing data")
	}

	g := newGenerator(seed, time.Now())
	categories := g.categories(numCategories)
	products := g.products(numProducts, categories)
	orders := g.orders(numOrders, products)

	if err := insertAll(ctx, mongoDB.DB.Collection(db.CategoriesCollection), categories); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
	if err := insertAll(ctx, mongoDB.DB.Collection(db.ProductsCollection), products); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
	if err := insertAll(ctx, mongoDB.DB.Collection(db.OrdersCollection), orders); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Printf("💾 Seeded %d categories, %d products, %d orders", len(categories), len(products), len(orders))
}

func insertAll[T any](ctx context.Context, coll *mongo.Collection, items []T) error {
	if len(items) == 0 {
		return nil
	}
	docs := make([]interface{}, len(items))
	for i := range items {
		docs[i] = items[i]
	}
	if _, err := coll.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("failed to insert into %s: %w", coll.Name(), err)
	}
	return nil
}
