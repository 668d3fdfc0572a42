// Package service holds the domain rules that sit between the HTTP handlers
// and the repositories: order totals, reference checks and cascades.
package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/prudhivi99/Distributed-Systems/ecommerce-go/internal/models"
)

// Point lookups return (nil, nil) when the document does not exist.

type ProductStore interface {
	GetAll(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	Create(ctx context.Context, p *models.Product) error
	Update(ctx context.Context, p *models.Product) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	PullCategory(ctx context.Context, categoryID primitive.ObjectID) (int64, error)
}

type CategoryStore interface {
	GetAll(ctx context.Context) ([]models.Category, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Category, error)
	Create(ctx context.Context, c *models.Category) error
	Update(ctx context.Context, c *models.Category) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type OrderStore interface {
	GetAll(ctx context.Context) ([]models.Order, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	Create(ctx context.Context, o *models.Order) error
	Update(ctx context.Context, o *models.Order) error
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type productLookup interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
}

type categoryLookup interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Category, error)
}

// EventPublisher announces newly created orders.
type EventPublisher interface {
	PublishOrderCreated(ctx context.Context, order *models.Order) error
}
