package db

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/prudhivi99/Distributed-Systems/ecommerce-go/internal/models"
)

func ns(coll string) string {
	return "test." + coll
}

func commandError() bson.D {
	return mtest.CreateCommandErrorResponse(mtest.CommandError{
		Code:    1,
		Message: "node is recovering",
		Name:    "InternalError",
	})
}

func TestProductRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("get by id", func(mt *mtest.T) {
		repo := NewProductRepository(mt.DB)
		id := primitive.NewObjectID()
		cat := primitive.NewObjectID()

		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(ProductsCollection), mtest.FirstBatch, bson.D{
			{Key: "_id", Value: id},
			{Key: "name", Value: "Notebook"},
			{Key: "description", Value: "14 inch"},
			{Key: "price", Value: 3500.5},
			{Key: "category_ids", Value: bson.A{cat}},
		}))

		p, err := repo.GetByID(ctx, id)
		require.NoError(mt, err)
		require.NotNil(mt, p)
		assert.Equal(mt, id, p.ID)
		assert.Equal(mt, "Notebook", p.Name)
		assert.Equal(mt, 3500.5, p.Price)
		assert.Equal(mt, []primitive.ObjectID{cat}, p.CategoryIDs)
		assert.Nil(mt, p.ImageURL)
	})

	mt.Run("get by id not found", func(mt *mtest.T) {
		repo := NewProductRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(ProductsCollection), mtest.FirstBatch))

		p, err := repo.GetByID(ctx, primitive.NewObjectID())
		require.NoError(mt, err)
		assert.Nil(mt, p)
	})

	mt.Run("get by id store failure", func(mt *mtest.T) {
		repo := NewProductRepository(mt.DB)
		mt.AddMockResponses(commandError())

		_, err := repo.GetByID(ctx, primitive.NewObjectID())
		assert.ErrorIs(mt, err, models.ErrStoreFailure)
	})

	mt.Run("get all", func(mt *mtest.T) {
		repo := NewProductRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(ProductsCollection), mtest.FirstBatch,
			bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "name", Value: "Mouse"}, {Key: "price", Value: 50.0}},
			bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "name", Value: "Teclado"}, {Key: "price", Value: 120.0}},
		))

		products, err := repo.GetAll(ctx)
		require.NoError(mt, err)
		require.Len(mt, products, 2)
		assert.Equal(mt, "Teclado", products[1].Name)
	})

	mt.Run("get all empty is not nil", func(mt *mtest.T) {
		repo := NewProductRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(ProductsCollection), mtest.FirstBatch))

		products, err := repo.GetAll(ctx)
		require.NoError(mt, err)
		assert.NotNil(mt, products)
		assert.Empty(mt, products)
	})

	mt.Run("create assigns id", func(mt *mtest.T) {
		repo := NewProductRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		p := &models.Product{Name: "Mouse", Price: 50}
		require.NoError(mt, repo.Create(ctx, p))
		assert.False(mt, p.ID.IsZero())
		assert.False(mt, p.CreatedAt.IsZero())
		assert.NotNil(mt, p.CategoryIDs)
	})

	mt.Run("update missing", func(mt *mtest.T) {
		repo := NewProductRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}))

		err := repo.Update(ctx, &models.Product{ID: primitive.NewObjectID(), Name: "x", Price: 1})
		assert.ErrorIs(mt, err, models.ErrNotFound)
	})

	mt.Run("update unchanged document still succeeds", func(mt *mtest.T) {
		repo := NewProductRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 0}))

		err := repo.Update(ctx, &models.Product{ID: primitive.NewObjectID(), Name: "x", Price: 1})
		assert.NoError(mt, err)
	})

	mt.Run("delete", func(mt *mtest.T) {
		repo := NewProductRepository(mt.DB)
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}),
		)

		assert.NoError(mt, repo.Delete(ctx, primitive.NewObjectID()))
		assert.ErrorIs(mt, repo.Delete(ctx, primitive.NewObjectID()), models.ErrNotFound)
	})

	mt.Run("pull category", func(mt *mtest.T) {
		repo := NewProductRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 3}, bson.E{Key: "nModified", Value: 3}))

		matched, err := repo.PullCategory(ctx, primitive.NewObjectID())
		require.NoError(mt, err)
		assert.Equal(mt, int64(3), matched)
	})

	mt.Run("find ids", func(mt *mtest.T) {
		repo := NewProductRepository(mt.DB)
		a, b := primitive.NewObjectID(), primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(ProductsCollection), mtest.FirstBatch,
			bson.D{{Key: "_id", Value: a}},
			bson.D{{Key: "_id", Value: b}},
		))

		ids, err := repo.FindIDs(ctx, nil, []primitive.ObjectID{primitive.NewObjectID()})
		require.NoError(mt, err)
		assert.Equal(mt, []primitive.ObjectID{a, b}, ids)
	})
}

func TestCategoryRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("create and get", func(mt *mtest.T) {
		repo := NewCategoryRepository(mt.DB)
		c := &models.Category{Name: "Eletrônicos"}

		mt.AddMockResponses(mtest.CreateSuccessResponse())
		require.NoError(mt, repo.Create(ctx, c))

		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(CategoriesCollection), mtest.FirstBatch, bson.D{
			{Key: "_id", Value: c.ID},
			{Key: "name", Value: c.Name},
		}))
		got, err := repo.GetByID(ctx, c.ID)
		require.NoError(mt, err)
		assert.Equal(mt, "Eletrônicos", got.Name)
	})

	mt.Run("update missing", func(mt *mtest.T) {
		repo := NewCategoryRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		err := repo.Update(ctx, &models.Category{ID: primitive.NewObjectID(), Name: "Casa"})
		assert.ErrorIs(mt, err, models.ErrNotFound)
	})

	mt.Run("delete missing", func(mt *mtest.T) {
		repo := NewCategoryRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		assert.ErrorIs(mt, repo.Delete(ctx, primitive.NewObjectID()), models.ErrNotFound)
	})
}

func TestOrderRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("update processed order", func(mt *mtest.T) {
		repo := NewOrderRepository(mt.DB)
		id := primitive.NewObjectID()
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}),
			mtest.CreateCursorResponse(0, ns(OrdersCollection), mtest.FirstBatch, bson.D{
				{Key: "_id", Value: id},
				{Key: "total", Value: 100.0},
				{Key: "processed_at", Value: time.Now()},
			}),
		)

		err := repo.Update(ctx, &models.Order{ID: id, Date: time.Now(), Total: 10})
		assert.ErrorIs(mt, err, models.ErrOrderProcessed)
	})

	mt.Run("update missing order", func(mt *mtest.T) {
		repo := NewOrderRepository(mt.DB)
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}),
			mtest.CreateCursorResponse(0, ns(OrdersCollection), mtest.FirstBatch),
		)

		err := repo.Update(ctx, &models.Order{ID: primitive.NewObjectID(), Date: time.Now()})
		assert.ErrorIs(mt, err, models.ErrNotFound)
	})

	mt.Run("update status missing", func(mt *mtest.T) {
		repo := NewOrderRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		err := repo.UpdateStatus(ctx, primitive.NewObjectID(), models.StatusShipped)
		assert.ErrorIs(mt, err, models.ErrNotFound)
	})

	mt.Run("find since", func(mt *mtest.T) {
		repo := NewOrderRepository(mt.DB)
		p := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(OrdersCollection), mtest.FirstBatch,
			bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "total", Value: 100.0}, {Key: "product_ids", Value: bson.A{p}}},
			bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "total", Value: 200.0}, {Key: "product_ids", Value: bson.A{p}}},
		))

		orders, err := repo.FindSince(ctx, time.Now().AddDate(0, 0, -30))
		require.NoError(mt, err)
		require.Len(mt, orders, 2)
		assert.Equal(mt, 200.0, orders[1].Total)
	})

	mt.Run("aggregate", func(mt *mtest.T) {
		repo := NewOrderRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(OrdersCollection), mtest.FirstBatch,
			bson.D{{Key: "total_orders", Value: int32(2)}, {Key: "total_revenue", Value: 300.0}},
		))

		var rows []struct {
			TotalOrders  int64   `bson:"total_orders"`
			TotalRevenue float64 `bson:"total_revenue"`
		}
		err := repo.Aggregate(ctx, mongo.Pipeline{{{Key: "$match", Value: bson.M{}}}}, &rows)
		require.NoError(mt, err)
		require.Len(mt, rows, 1)
		assert.Equal(mt, int64(2), rows[0].TotalOrders)
		assert.Equal(mt, 300.0, rows[0].TotalRevenue)
	})

	mt.Run("aggregate failure", func(mt *mtest.T) {
		repo := NewOrderRepository(mt.DB)
		mt.AddMockResponses(commandError())

		var rows []bson.M
		err := repo.Aggregate(ctx, mongo.Pipeline{}, &rows)
		assert.ErrorIs(mt, err, models.ErrStoreFailure)
		assert.Contains(mt, err.Error(), "node is recovering")
	})
}
