package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/prudhivi99/Distributed-Systems/ecommerce-go/internal/models"
)

type OrderRepository struct {
	coll *mongo.Collection
}

func NewOrderRepository(database *mongo.Database) *OrderRepository {
	return &OrderRepository{coll: database.Collection(OrdersCollection)}
}

// unprocessed matches an order the processing workflow has not stamped yet.
func unprocessed(id primitive.ObjectID) bson.M {
	return bson.M{"_id": id, "processed_at": bson.M{"$exists": false}}
}

// Create inserts a new order
func (r *OrderRepository) Create(ctx context.Context, order *models.Order) error {
	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	if order.ProductIDs == nil {
		order.ProductIDs = []primitive.ObjectID{}
	}
	order.CreatedAt = time.Now().UTC()

	if _, err := r.coll.InsertOne(ctx, order); err != nil {
		return storeError("insert order", err)
	}

	return nil
}

// GetAll returns all orders, newest first
func (r *OrderRepository) GetAll(ctx context.Context) ([]models.Order, error) {
	opts := options.Find().SetLimit(listLimit).SetSort(bson.D{{Key: "_id", Value: -1}})

	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, storeError("query orders", err)
	}

	orders := make([]models.Order, 0)
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, storeError("decode orders", err)
	}

	return orders, nil
}

// GetByID returns a single order, or nil when it does not exist
func (r *OrderRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	var order models.Order
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, storeError("get order", err)
	}

	return &order, nil
}

// FindSince returns every order dated at or after since
func (r *OrderRepository) FindSince(ctx context.Context, since time.Time) ([]models.Order, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"date": bson.M{"$gte": since}})
	if err != nil {
		return nil, storeError("query recent orders", err)
	}

	orders := make([]models.Order, 0)
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, storeError("decode recent orders", err)
	}

	return orders, nil
}

// Update replaces date, products and total of an order that has not been
// processed yet. Status and customer are only changed when set.
func (r *OrderRepository) Update(ctx context.Context, order *models.Order) error {
	if order.ProductIDs == nil {
		order.ProductIDs = []primitive.ObjectID{}
	}

	set := bson.M{
		"date":        order.Date,
		"product_ids": order.ProductIDs,
		"total":       order.Total,
	}
	if order.Status != "" {
		set["status"] = order.Status
	}
	if order.CustomerName != "" {
		set["customer_name"] = order.CustomerName
	}

	result, err := r.coll.UpdateOne(ctx, unprocessed(order.ID), bson.M{"$set": set})
	if err != nil {
		return storeError("update order", err)
	}

	if result.MatchedCount == 0 {
		return r.missOrProcessed(ctx, order.ID)
	}

	return nil
}

// missOrProcessed tells apart a missing order from a processed one after an
// update guarded by unprocessed matched nothing.
func (r *OrderRepository) missOrProcessed(ctx context.Context, id primitive.ObjectID) error {
	existing, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return fmt.Errorf("order %s: %w", id.Hex(), models.ErrNotFound)
	}
	return fmt.Errorf("order %s: %w", id.Hex(), models.ErrOrderProcessed)
}

// UpdateStatus updates order status
func (r *OrderRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	result, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return storeError("update order status", err)
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("order %s: %w", id.Hex(), models.ErrNotFound)
	}

	return nil
}

// MarkProcessed stamps processed_at once; later calls leave the first stamp.
func (r *OrderRepository) MarkProcessed(ctx context.Context, id primitive.ObjectID, at time.Time) error {
	_, err := r.coll.UpdateOne(ctx, unprocessed(id), bson.M{"$set": bson.M{"processed_at": at}})
	if err != nil {
		return storeError("mark order processed", err)
	}
	return nil
}

// Delete removes an order
func (r *OrderRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return storeError("delete order", err)
	}

	if result.DeletedCount == 0 {
		return fmt.Errorf("order %s: %w", id.Hex(), models.ErrNotFound)
	}

	return nil
}

// Aggregate runs pipeline over the orders collection and decodes every
// resulting document into results, which must be a pointer to a slice.
func (r *OrderRepository) Aggregate(ctx context.Context, pipeline mongo.Pipeline, results interface{}) error {
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return storeError("run aggregation", err)
	}

	if err := cursor.All(ctx, results); err != nil {
		return storeError("decode aggregation", err)
	}

	return nil
}
