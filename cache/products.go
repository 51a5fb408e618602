package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"go-qkart/models"

	"github.com/redis/go-redis/v9"
)

const (
	productListKey   = "products:all"
	productKeyPrefix = "product:"
)

// ProductCache keeps catalog reads in Redis. A nil *ProductCache is a valid
// cache that always misses, which is what the server uses without REDIS_ADDR.
type ProductCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewProductCache(client *redis.Client, ttl time.Duration) *ProductCache {
	if client == nil {
		return nil
	}
	return &ProductCache{client: client, ttl: ttl}
}

// GetAll returns the cached product list
func (c *ProductCache) GetAll(ctx context.Context) ([]models.Product, bool) {
	var products []models.Product
	if !c.get(ctx, productListKey, &products) {
		return nil, false
	}
	return products, true
}

// SetAll caches the product list
func (c *ProductCache) SetAll(ctx context.Context, products []models.Product) {
	c.set(ctx, productListKey, products)
}

// Get returns the cached product with the given hex id
func (c *ProductCache) Get(ctx context.Context, id string) (*models.Product, bool) {
	var product models.Product
	if !c.get(ctx, productKeyPrefix+id, &product) {
		return nil, false
	}
	return &product, true
}

// Set caches a single product
func (c *ProductCache) Set(ctx context.Context, product *models.Product) {
	c.set(ctx, productKeyPrefix+product.ID.Hex(), product)
}

func (c *ProductCache) get(ctx context.Context, key string, dst interface{}) bool {
	if c == nil {
		return false
	}

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("product cache get %s: %v", key, err)
		}
		return false
	}

	if err := json.Unmarshal(data, dst); err != nil {
		log.Printf("product cache decode %s: %v", key, err)
		return false
	}
	return true
}

func (c *ProductCache) set(ctx context.Context, key string, value interface{}) {
	if c == nil {
		return
	}

	data, err := json.Marshal(value)
	if err != nil {
		log.Printf("product cache encode %s: %v", key, err)
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		log.Printf("product cache set %s: %v", key, err)
	}
}
