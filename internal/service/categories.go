package service

import (
	"context"
	"fmt"
	"log"

	"github.com/prudhivi99/Distributed-Systems/ecommerce-go/internal/models"
)

type CategoryService struct {
	categories CategoryStore
	products   ProductStore
}

func NewCategoryService(categories CategoryStore, products ProductStore) *CategoryService {
	return &CategoryService{categories: categories, products: products}
}

func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	return s.categories.GetAll(ctx)
}

func (s *CategoryService) Get(ctx context.Context, id string) (*models.Category, error) {
	oid, err := models.ParseID(id)
	if err != nil {
		return nil, err
	}

	category, err := s.categories.GetByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, fmt.Errorf("category %s: %w", id, models.ErrNotFound)
	}
	return category, nil
}

func (s *CategoryService) Create(ctx context.Context, req models.CategoryRequest) (*models.Category, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: name is required", models.ErrValidation)
	}

	category := &models.Category{Name: req.Name}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, err
	}

	log.Printf("✅ Category %s created (%s)", category.ID.Hex(), category.Name)
	return category, nil
}

func (s *CategoryService) Update(ctx context.Context, id string, req models.CategoryRequest) (*models.Category, error) {
	oid, err := models.ParseID(id)
	if err != nil {
		return nil, err
	}
	if req.Name == "" {
		return nil, fmt.Errorf("%w: name is required", models.ErrValidation)
	}

	if err := s.categories.Update(ctx, &models.Category{ID: oid, Name: req.Name}); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// Delete removes a category and prunes it from every product first. The two
// writes are not atomic: if the delete fails after the pull, products have
// already lost the reference.
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	category, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	pruned, err := s.products.PullCategory(ctx, category.ID)
	if err != nil {
		return err
	}

	if err := s.categories.Delete(ctx, category.ID); err != nil {
		return err
	}

	log.Printf("🗑️ Category %s deleted, removed from %d products", id, pruned)
	return nil
}
