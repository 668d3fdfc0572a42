package db

import (
	"context"
	"errors"
	"log"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/prudhivi99/Distributed-Systems/ecommerce-go/internal/cache"
	"github.com/prudhivi99/Distributed-Systems/ecommerce-go/internal/models"
)

// productStore is the subset of ProductRepository the cache decorates.
type productStore interface {
	GetAll(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	Create(ctx context.Context, p *models.Product) error
	Update(ctx context.Context, p *models.Product) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	PullCategory(ctx context.Context, categoryID primitive.ObjectID) (int64, error)
}

// CacheObserver is told about every cache lookup.
type CacheObserver interface {
	ObserveCache(key string, hit bool)
}

type CachedProductRepository struct {
	repo     productStore
	cache    *cache.RedisCache
	observer CacheObserver
}

func NewCachedProductRepository(repo productStore, cache *cache.RedisCache) *CachedProductRepository {
	return &CachedProductRepository{
		repo:  repo,
		cache: cache,
	}
}

// WithObserver reports hits and misses to o.
func (r *CachedProductRepository) WithObserver(o CacheObserver) *CachedProductRepository {
	r.observer = o
	return r
}

func (r *CachedProductRepository) observe(key string, hit bool) {
	if r.observer != nil {
		r.observer.ObserveCache(key, hit)
	}
}

// Cache key helpers
func productKey(id primitive.ObjectID) string {
	return "product:" + id.Hex()
}

const (
	allProductsKey     = "products:all"
	productKeysPattern = "product:*"
)

// GetAll returns all products (with caching)
func (r *CachedProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	// Try cache first
	var products []models.Product
	err := r.cache.Get(ctx, allProductsKey, &products)
	if err == nil {
		log.Println("📦 Cache HIT: all products")
		r.observe("products", true)
		return products, nil
	}
	if !errors.Is(err, redis.Nil) {
		log.Printf("⚠️ Cache error: %v", err)
	}

	// Cache miss - get from database
	log.Println("💾 Cache MISS: all products - fetching from DB")
	r.observe("products", false)
	products, err = r.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	// Store in cache
	if err := r.cache.Set(ctx, allProductsKey, products); err != nil {
		log.Printf("⚠️ Failed to cache products: %v", err)
	}

	return products, nil
}

// GetByID returns a single product (with caching). Misses for unknown ids
// are not cached.
func (r *CachedProductRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	cacheKey := productKey(id)

	// Try cache first
	var product models.Product
	err := r.cache.Get(ctx, cacheKey, &product)
	if err == nil {
		log.Printf("📦 Cache HIT: product %s", id.Hex())
		r.observe("product", true)
		return &product, nil
	}
	if !errors.Is(err, redis.Nil) {
		log.Printf("⚠️ Cache error: %v", err)
	}

	// Cache miss - get from database
	log.Printf("💾 Cache MISS: product %s - fetching from DB", id.Hex())
	r.observe("product", false)
	p, err := r.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if p == nil {
		return nil, nil
	}

	// Store in cache
	if err := r.cache.Set(ctx, cacheKey, p); err != nil {
		log.Printf("⚠️ Failed to cache product: %v", err)
	}

	return p, nil
}

// Create inserts a new product and invalidates the list cache
func (r *CachedProductRepository) Create(ctx context.Context, p *models.Product) error {
	if err := r.repo.Create(ctx, p); err != nil {
		return err
	}

	r.invalidate(ctx, allProductsKey)
	return nil
}

// Update changes a product and invalidates its entry and the list cache
func (r *CachedProductRepository) Update(ctx context.Context, p *models.Product) error {
	if err := r.repo.Update(ctx, p); err != nil {
		return err
	}

	r.invalidate(ctx, productKey(p.ID), allProductsKey)
	return nil
}

// Delete removes a product and invalidates caches
func (r *CachedProductRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	if err := r.repo.Delete(ctx, id); err != nil {
		return err
	}

	r.invalidate(ctx, productKey(id), allProductsKey)
	return nil
}

// PullCategory touches an unknown set of products, so every product entry
// is dropped.
func (r *CachedProductRepository) PullCategory(ctx context.Context, categoryID primitive.ObjectID) (int64, error) {
	matched, err := r.repo.PullCategory(ctx, categoryID)
	if err != nil {
		return 0, err
	}

	if matched > 0 {
		if err := r.cache.DeleteByPattern(ctx, productKeysPattern); err != nil {
			log.Printf("⚠️ Failed to invalidate cache: %v", err)
		}
		log.Printf("🗑️ Cache invalidated: %d products after category removal", matched)
	}
	r.invalidate(ctx, allProductsKey)

	return matched, nil
}

func (r *CachedProductRepository) invalidate(ctx context.Context, keys ...string) {
	if err := r.cache.Delete(ctx, keys...); err != nil {
		log.Printf("⚠️ Failed to invalidate cache: %v", err)
		return
	}
	log.Printf("🗑️ Cache invalidated: %v", keys)
}
