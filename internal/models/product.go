package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Product struct {
	ID          primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	Name        string               `json:"name" bson:"name"`
	Description string               `json:"description" bson:"description"`
	Price       float64              `json:"price" bson:"price"`
	CategoryIDs []primitive.ObjectID `json:"category_ids" bson:"category_ids"`
	ImageURL    *string              `json:"image_url" bson:"image_url"`
	CreatedAt   time.Time            `json:"created_at" bson:"created_at"`
}

// ProductRequest is the body for creating or replacing a product.
type ProductRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description" binding:"required"`
	Price       float64  `json:"price" binding:"required,gt=0"`
	CategoryIDs []string `json:"category_ids"`
	ImageURL    *string  `json:"image_url"`
}

// ProductImageForm is the multipart form accepted by the with-image upload.
// CategoryIDs carries a JSON array of ids, e.g. `["65f0..."]`.
type ProductImageForm struct {
	Name        string  `form:"name" binding:"required"`
	Description string  `form:"description" binding:"required"`
	Price       float64 `form:"price" binding:"required,gt=0"`
	CategoryIDs string  `form:"category_ids"`
}
