package service

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/prudhivi99/Distributed-Systems/ecommerce-go/internal/models"
)

// ReferenceValidator checks that category ids sent by clients point at
// existing categories.
type ReferenceValidator struct {
	categories categoryLookup
}

func NewReferenceValidator(categories categoryLookup) *ReferenceValidator {
	return &ReferenceValidator{categories: categories}
}

// ValidateCategories parses and resolves each id in order, failing on the
// first malformed or unknown one.
func (v *ReferenceValidator) ValidateCategories(ctx context.Context, ids []string) ([]primitive.ObjectID, error) {
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, raw := range ids {
		id, err := models.ParseID(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid category id format: %s", models.ErrMalformedID, raw)
		}
		category, err := v.categories.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, fmt.Errorf("%w: category with id %s does not exist", models.ErrInvalidReference, raw)
		}
		out = append(out, id)
	}
	return out, nil
}
