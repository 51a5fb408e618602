package services

import (
	"context"

	"go-qkart/models"
	"go-qkart/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const MsgProductNotFound = "Product not found"

// ProductCache is a read-through cache for catalog reads
type ProductCache interface {
	GetAll(ctx context.Context) ([]models.Product, bool)
	SetAll(ctx context.Context, products []models.Product)
	Get(ctx context.Context, id string) (*models.Product, bool)
	Set(ctx context.Context, product *models.Product)
}

// ProductService serves the catalog
type ProductService struct {
	products ProductStore
	cache    ProductCache
}

// NewProductService creates a ProductService. cache may be nil.
func NewProductService(products ProductStore, cache ProductCache) *ProductService {
	return &ProductService{products: products, cache: cache}
}

// GetProducts lists the whole catalog
func (s *ProductService) GetProducts(ctx context.Context) ([]models.Product, error) {
	if s.cache != nil {
		if products, ok := s.cache.GetAll(ctx); ok {
			return products, nil
		}
	}

	products, err := s.products.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.SetAll(ctx, products)
	}
	return products, nil
}

// GetProductByID returns one product or a 404
func (s *ProductService) GetProductByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	if s.cache != nil {
		if product, ok := s.cache.Get(ctx, id.Hex()); ok {
			return product, nil
		}
	}

	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, utils.NotFound(MsgProductNotFound)
	}
	if s.cache != nil {
		s.cache.Set(ctx, product)
	}
	return product, nil
}
