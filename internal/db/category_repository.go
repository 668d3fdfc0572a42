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

type CategoryRepository struct {
	coll *mongo.Collection
}

func NewCategoryRepository(database *mongo.Database) *CategoryRepository {
	return &CategoryRepository{coll: database.Collection(CategoriesCollection)}
}

func (r *CategoryRepository) GetAll(ctx context.Context) ([]models.Category, error) {
	opts := options.Find().SetLimit(listLimit).SetSort(bson.D{{Key: "_id", Value: 1}})

	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, storeError("query categories", err)
	}

	categories := make([]models.Category, 0)
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, storeError("decode categories", err)
	}

	return categories, nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Category, error) {
	var c models.Category
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, storeError("get category", err)
	}

	return &c, nil
}

func (r *CategoryRepository) Create(ctx context.Context, c *models.Category) error {
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	c.CreatedAt = time.Now().UTC()

	if _, err := r.coll.InsertOne(ctx, c); err != nil {
		return storeError("create category", err)
	}

	return nil
}

func (r *CategoryRepository) Update(ctx context.Context, c *models.Category) error {
	result, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": c.ID},
		bson.M{"$set": bson.M{"name": c.Name}},
	)
	if err != nil {
		return storeError("update category", err)
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("category %s: %w", c.ID.Hex(), models.ErrNotFound)
	}

	return nil
}

func (r *CategoryRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return storeError("delete category", err)
	}

	if result.DeletedCount == 0 {
		return fmt.Errorf("category %s: %w", id.Hex(), models.ErrNotFound)
	}

	return nil
}
