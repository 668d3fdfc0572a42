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

// listLimit caps list endpoints; there is no pagination.
const listLimit = 1000

type ProductRepository struct {
	coll *mongo.Collection
}

func NewProductRepository(database *mongo.Database) *ProductRepository {
	return &ProductRepository{coll: database.Collection(ProductsCollection)}
}

// GetAll returns all products
func (r *ProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	opts := options.Find().SetLimit(listLimit).SetSort(bson.D{{Key: "_id", Value: 1}})

	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, storeError("query products", err)
	}

	products := make([]models.Product, 0)
	if err := cursor.All(ctx, &products); err != nil {
		return nil, storeError("decode products", err)
	}

	return products, nil
}

// GetByID returns a single product, or nil when it does not exist
func (r *ProductRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	var p models.Product
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil // Not found
		}
		return nil, storeError("get product", err)
	}

	return &p, nil
}

// FindIDs returns the ids of products matching every non-empty filter.
func (r *ProductRepository) FindIDs(ctx context.Context, productIDs, categoryIDs []primitive.ObjectID) ([]primitive.ObjectID, error) {
	filter := bson.M{}
	if len(productIDs) > 0 {
		filter["_id"] = bson.M{"$in": productIDs}
	}
	if len(categoryIDs) > 0 {
		filter["category_ids"] = bson.M{"$in": categoryIDs}
	}

	opts := options.Find().SetProjection(bson.M{"_id": 1})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, storeError("query product ids", err)
	}

	var docs []struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, storeError("decode product ids", err)
	}

	ids := make([]primitive.ObjectID, len(docs))
	for i, d := range docs {
		ids[i] = d.ID
	}
	return ids, nil
}

// Create inserts a new product, assigning its id and creation time
func (r *ProductRepository) Create(ctx context.Context, p *models.Product) error {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	if p.CategoryIDs == nil {
		p.CategoryIDs = []primitive.ObjectID{}
	}
	p.CreatedAt = time.Now().UTC()

	if _, err := r.coll.InsertOne(ctx, p); err != nil {
		return storeError("create product", err)
	}

	return nil
}

// Update replaces the editable fields of a product
func (r *ProductRepository) Update(ctx context.Context, p *models.Product) error {
	if p.CategoryIDs == nil {
		p.CategoryIDs = []primitive.ObjectID{}
	}

	update := bson.M{"$set": bson.M{
		"name":         p.Name,
		"description":  p.Description,
		"price":        p.Price,
		"category_ids": p.CategoryIDs,
		"image_url":    p.ImageURL,
	}}

	result, err := r.coll.UpdateOne(ctx, bson.M{"_id": p.ID}, update)
	if err != nil {
		return storeError("update product", err)
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("product %s: %w", p.ID.Hex(), models.ErrNotFound)
	}

	return nil
}

// Delete removes a product
func (r *ProductRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return storeError("delete product", err)
	}

	if result.DeletedCount == 0 {
		return fmt.Errorf("product %s: %w", id.Hex(), models.ErrNotFound)
	}

	return nil
}

// PullCategory removes a category id from every product that references it
// and returns how many products matched.
func (r *ProductRepository) PullCategory(ctx context.Context, categoryID primitive.ObjectID) (int64, error) {
	result, err := r.coll.UpdateMany(ctx,
		bson.M{"category_ids": categoryID},
		bson.M{"$pull": bson.M{"category_ids": categoryID}},
	)
	if err != nil {
		return 0, storeError("remove category from products", err)
	}

	return result.MatchedCount, nil
}
