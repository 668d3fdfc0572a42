package service

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/prudhivi99/Distributed-Systems/ecommerce-go/internal/models"
)

// TotalCalculator prices an order from the current catalog.
type TotalCalculator struct {
	products productLookup
}

func NewTotalCalculator(products productLookup) *TotalCalculator {
	return &TotalCalculator{products: products}
}

// Calculate sums the price of every referenced product, duplicates included.
// The first id that does not resolve aborts the whole calculation.
func (c *TotalCalculator) Calculate(ctx context.Context, ids []primitive.ObjectID) (float64, error) {
	var total float64
	for _, id := range ids {
		product, err := c.products.GetByID(ctx, id)
		if err != nil {
			return 0, err
		}
		if product == nil {
			return 0, fmt.Errorf("%w: product with id %s does not exist", models.ErrInvalidReference, id.Hex())
		}
		total += product.Price
	}
	return total, nil
}
