package controllers

import (
	"context"
	"net/http"
	"time"

	"go-qkart/models"
	"go-qkart/utils"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProductService is what ProductController needs from the catalog
type ProductService interface {
	GetProducts(ctx context.Context) ([]models.Product, error)
	GetProductByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
}

// ProductController handles product-related requests
type ProductController struct {
	Service ProductService
	Timeout time.Duration
}

// NewProductController creates a new ProductController
func NewProductController(service ProductService, timeout time.Duration) *ProductController {
	return &ProductController{Service: service, Timeout: timeout}
}

// GetProducts retrieves all products
func (pc *ProductController) GetProducts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), pc.Timeout)
	defer cancel()

	products, err := pc.Service.GetProducts(ctx)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, products)
}

// GetProductByID retrieves a single product by ID
func (pc *ProductController) GetProductByID(w http.ResponseWriter, r *http.Request) {
	raw := mux.Vars(r)["productId"]
	if err := utils.ValidateVar("productId", raw, "required,objectid"); err != nil {
		utils.WriteError(w, err)
		return
	}
	productID, _ := primitive.ObjectIDFromHex(raw)

	ctx, cancel := context.WithTimeout(r.Context(), pc.Timeout)
	defer cancel()

	product, err := pc.Service.GetProductByID(ctx, productID)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, product)
}
