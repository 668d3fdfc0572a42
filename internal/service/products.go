package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"

	"github.com/prudhivi99/Distributed-Systems/ecommerce-go/internal/models"
)

// ImageUploader stores a product image and returns its public URL.
type ImageUploader interface {
	Upload(ctx context.Context, name, contentType string, body io.Reader, size int64) (string, error)
}

// Image is an uploaded file as received from a multipart form.
type Image struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

type ProductService struct {
	products   ProductStore
	references *ReferenceValidator
	images     ImageUploader
}

// NewProductService wires the product rules. images may be nil, in which
// case uploads fail with ErrUnavailable.
func NewProductService(products ProductStore, categories categoryLookup, images ImageUploader) *ProductService {
	return &ProductService{
		products:   products,
		references: NewReferenceValidator(categories),
		images:     images,
	}
}

func (s *ProductService) List(ctx context.Context) ([]models.Product, error) {
	return s.products.GetAll(ctx)
}

func (s *ProductService) Get(ctx context.Context, id string) (*models.Product, error) {
	oid, err := models.ParseID(id)
	if err != nil {
		return nil, err
	}

	product, err := s.products.GetByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("product %s: %w", id, models.ErrNotFound)
	}
	return product, nil
}

func (s *ProductService) Create(ctx context.Context, req models.ProductRequest) (*models.Product, error) {
	if err := validatePrice(req.Price); err != nil {
		return nil, err
	}

	categoryIDs, err := s.references.ValidateCategories(ctx, req.CategoryIDs)
	if err != nil {
		return nil, err
	}

	product := &models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		CategoryIDs: categoryIDs,
		ImageURL:    req.ImageURL,
	}
	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}

	log.Printf("✅ Product %s created (%s)", product.ID.Hex(), product.Name)
	return product, nil
}

// CreateWithImage validates the form, uploads the image and only then
// creates the product pointing at it.
func (s *ProductService) CreateWithImage(ctx context.Context, form models.ProductImageForm, image Image) (*models.Product, error) {
	if s.images == nil {
		return nil, fmt.Errorf("%w: image storage", models.ErrUnavailable)
	}
	if err := validatePrice(form.Price); err != nil {
		return nil, err
	}

	rawIDs, err := parseCategoryList(form.CategoryIDs)
	if err != nil {
		return nil, err
	}
	categoryIDs, err := s.references.ValidateCategories(ctx, rawIDs)
	if err != nil {
		return nil, err
	}

	url, err := s.images.Upload(ctx, image.Filename, image.ContentType, image.Body, image.Size)
	if err != nil {
		return nil, fmt.Errorf("failed to upload image: %w", err)
	}

	product := &models.Product{
		Name:        form.Name,
		Description: form.Description,
		Price:       form.Price,
		CategoryIDs: categoryIDs,
		ImageURL:    &url,
	}
	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}

	log.Printf("✅ Product %s created with image %s", product.ID.Hex(), url)
	return product, nil
}

// Update replaces a product's fields. A request without image_url keeps the
// current image.
func (s *ProductService) Update(ctx context.Context, id string, req models.ProductRequest) (*models.Product, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := validatePrice(req.Price); err != nil {
		return nil, err
	}

	categoryIDs, err := s.references.ValidateCategories(ctx, req.CategoryIDs)
	if err != nil {
		return nil, err
	}

	existing.Name = req.Name
	existing.Description = req.Description
	existing.Price = req.Price
	existing.CategoryIDs = categoryIDs
	if req.ImageURL != nil {
		existing.ImageURL = req.ImageURL
	}

	if err := s.products.Update(ctx, existing); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *ProductService) Delete(ctx context.Context, id string) error {
	oid, err := models.ParseID(id)
	if err != nil {
		return err
	}
	return s.products.Delete(ctx, oid)
}

func validatePrice(price float64) error {
	if price <= 0 {
		return fmt.Errorf("%w: price must be greater than zero", models.ErrValidation)
	}
	return nil
}

// parseCategoryList decodes the JSON array form field; blank means none.
func parseCategoryList(raw string) ([]string, error) {
	if raw == "" {
		return []string{}, nil
	}
	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return nil, fmt.Errorf("%w: category_ids must be a JSON array of ids", models.ErrValidation)
	}
	return ids, nil
}
