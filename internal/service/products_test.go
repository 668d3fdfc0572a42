package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/prudhivi99/Distributed-Systems/ecommerce-go/internal/models"
	"github.com/prudhivi99/Distributed-Systems/ecommerce-go/internal/storetest"
)

type fakeUploader struct {
	name, contentType string
	body              string
	err               error
}

func (f *fakeUploader) Upload(ctx context.Context, name, contentType string, body io.Reader, size int64) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	data, _ := io.ReadAll(body)
	f.name, f.contentType, f.body = name, contentType, string(data)
	return "http://localhost:4566/product-images/products/" + name, nil
}

func TestProductCreate_ValidatesCategories(t *testing.T) {
	cat := models.Category{ID: primitive.NewObjectID(), Name: "Books"}
	products := storetest.NewProducts()
	svc := NewProductService(products, storetest.NewCategories(cat), nil)

	p, err := svc.Create(context.Background(), models.ProductRequest{
		Name: "Go in Action", Description: "book", Price: 39.9, CategoryIDs: []string{cat.ID.Hex()},
	})
	require.NoError(t, err)
	assert.False(t, p.ID.IsZero())
	assert.Equal(t, []primitive.ObjectID{cat.ID}, p.CategoryIDs)

	stored, err := svc.Get(context.Background(), p.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "Go in Action", stored.Name)
}

func TestProductCreate_UnknownCategoryStoresNothing(t *testing.T) {
	products := storetest.NewProducts()
	svc := NewProductService(products, storetest.NewCategories(), nil)

	_, err := svc.Create(context.Background(), models.ProductRequest{
		Name: "X", Description: "x", Price: 1, CategoryIDs: []string{primitive.NewObjectID().Hex()},
	})
	assert.True(t, errors.Is(err, models.ErrInvalidReference))

	all, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestProductCreate_RejectsNonPositivePrice(t *testing.T) {
	svc := NewProductService(storetest.NewProducts(), storetest.NewCategories(), nil)

	_, err := svc.Create(context.Background(), models.ProductRequest{Name: "X", Description: "x", Price: 0})
	assert.True(t, errors.Is(err, models.ErrValidation))
}

func TestProductGet_NotFoundAndMalformed(t *testing.T) {
	svc := NewProductService(storetest.NewProducts(), storetest.NewCategories(), nil)

	_, err := svc.Get(context.Background(), primitive.NewObjectID().Hex())
	assert.True(t, errors.Is(err, models.ErrNotFound))

	_, err = svc.Get(context.Background(), "123")
	assert.True(t, errors.Is(err, models.ErrMalformedID))
}

func TestProductUpdate_KeepsImageWhenOmitted(t *testing.T) {
	url := "http://img/1.png"
	existing := models.Product{ID: primitive.NewObjectID(), Name: "Old", Description: "d", Price: 5, ImageURL: &url}
	svc := NewProductService(storetest.NewProducts(existing), storetest.NewCategories(), nil)

	p, err := svc.Update(context.Background(), existing.ID.Hex(), models.ProductRequest{
		Name: "New", Description: "d2", Price: 7,
	})
	require.NoError(t, err)
	assert.Equal(t, "New", p.Name)
	assert.Equal(t, 7.0, p.Price)
	require.NotNil(t, p.ImageURL)
	assert.Equal(t, url, *p.ImageURL)
}

func TestProductUpdate_Missing(t *testing.T) {
	svc := NewProductService(storetest.NewProducts(), storetest.NewCategories(), nil)

	_, err := svc.Update(context.Background(), primitive.NewObjectID().Hex(), models.ProductRequest{Name: "a", Description: "b", Price: 1})
	assert.True(t, errors.Is(err, models.ErrNotFound))
}

func TestProductDelete(t *testing.T) {
	p := models.Product{ID: primitive.NewObjectID(), Name: "A", Price: 1}
	svc := NewProductService(storetest.NewProducts(p), storetest.NewCategories(), nil)

	require.NoError(t, svc.Delete(context.Background(), p.ID.Hex()))
	err := svc.Delete(context.Background(), p.ID.Hex())
	assert.True(t, errors.Is(err, models.ErrNotFound))
}

func TestCreateWithImage(t *testing.T) {
	cat := models.Category{ID: primitive.NewObjectID(), Name: "Books"}
	up := &fakeUploader{}
	svc := NewProductService(storetest.NewProducts(), storetest.NewCategories(cat), up)

	form := models.ProductImageForm{
		Name: "Poster", Description: "A2", Price: 12, CategoryIDs: `["` + cat.ID.Hex() + `"]`,
	}
	img := Image{Filename: "poster.png", ContentType: "image/png", Size: 4, Body: strings.NewReader("data")}

	p, err := svc.CreateWithImage(context.Background(), form, img)
	require.NoError(t, err)
	require.NotNil(t, p.ImageURL)
	assert.Equal(t, "http://localhost:4566/product-images/products/poster.png", *p.ImageURL)
	assert.Equal(t, []primitive.ObjectID{cat.ID}, p.CategoryIDs)
	assert.Equal(t, "image/png", up.contentType)
	assert.Equal(t, "data", up.body)
}

func TestCreateWithImage_BadCategoryListSkipsUpload(t *testing.T) {
	up := &fakeUploader{}
	svc := NewProductService(storetest.NewProducts(), storetest.NewCategories(), up)
	img := Image{Filename: "a.png", Body: strings.NewReader("x")}

	_, err := svc.CreateWithImage(context.Background(), models.ProductImageForm{Name: "a", Description: "b", Price: 1, CategoryIDs: "not json"}, img)
	assert.True(t, errors.Is(err, models.ErrValidation))

	_, err = svc.CreateWithImage(context.Background(), models.ProductImageForm{Name: "a", Description: "b", Price: 1, CategoryIDs: `["` + primitive.NewObjectID().Hex() + `"]`}, img)
	assert.True(t, errors.Is(err, models.ErrInvalidReference))

	assert.Empty(t, up.name)
}

func TestCreateWithImage_UploadFailureStoresNothing(t *testing.T) {
	products := storetest.NewProducts()
	svc := NewProductService(products, storetest.NewCategories(), &fakeUploader{err: errors.New("bucket gone")})

	_, err := svc.CreateWithImage(context.Background(), models.ProductImageForm{Name: "a", Description: "b", Price: 1}, Image{Filename: "a.png", Body: strings.NewReader("x")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bucket gone")

	all, _ := products.GetAll(context.Background())
	assert.Empty(t, all)
}

func TestCreateWithImage_NoStorage(t *testing.T) {
	svc := NewProductService(storetest.NewProducts(), storetest.NewCategories(), nil)

	_, err := svc.CreateWithImage(context.Background(), models.ProductImageForm{Name: "a", Description: "b", Price: 1}, Image{})
	assert.True(t, errors.Is(err, models.ErrUnavailable))
}
