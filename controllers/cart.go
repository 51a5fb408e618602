package controllers

import (
	"context"
	"net/http"
	"time"

	"go-qkart/models"
	"go-qkart/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartService is what CartController needs from the cart domain
type CartService interface {
	GetCartByUser(ctx context.Context, user *models.User) (*models.Cart, error)
	AddProductToCart(ctx context.Context, user *models.User, productID primitive.ObjectID, quantity int) (*models.Cart, error)
	UpdateProductInCart(ctx context.Context, user *models.User, productID primitive.ObjectID, quantity int) (*models.Cart, error)
	DeleteProductFromCart(ctx context.Context, user *models.User, productID primitive.ObjectID) error
	Checkout(ctx context.Context, user *models.User) error
}

// CartController handles cart-related requests
type CartController struct {
	Service CartService
	Timeout time.Duration
}

// NewCartController creates a new CartController
func NewCartController(service CartService, timeout time.Duration) *CartController {
	return &CartController{Service: service, Timeout: timeout}
}

type addToCartRequest struct {
	ProductID string `json:"productId" validate:"required,objectid"`
	Quantity  *int   `json:"quantity" validate:"required,min=1"`
}

type updateCartRequest struct {
	ProductID string `json:"productId" validate:"required,objectid"`
	Quantity  *int   `json:"quantity" validate:"required,min=0"`
}

// GetCart returns the authenticated user's cart
func (cc *CartController) GetCart(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), cc.Timeout)
	defer cancel()

	cart, err := cc.Service.GetCartByUser(ctx, user)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, cart)
}

// AddToCart adds a new product to the user's cart
func (cc *CartController) AddToCart(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	var req addToCartRequest
	if err := decodeBody(r, &req); err != nil {
		utils.WriteError(w, err)
		return
	}
	productID, _ := primitive.ObjectIDFromHex(req.ProductID)

	ctx, cancel := context.WithTimeout(r.Context(), cc.Timeout)
	defer cancel()

	cart, err := cc.Service.AddProductToCart(ctx, user, productID, *req.Quantity)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, cart)
}

// UpdateCart changes the quantity of a product in the cart. Quantity 0
// removes the product.
func (cc *CartController) UpdateCart(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	var req updateCartRequest
	if err := decodeBody(r, &req); err != nil {
		utils.WriteError(w, err)
		return
	}
	productID, _ := primitive.ObjectIDFromHex(req.ProductID)

	ctx, cancel := context.WithTimeout(r.Context(), cc.Timeout)
	defer cancel()

	if *req.Quantity == 0 {
		if err := cc.Service.DeleteProductFromCart(ctx, user, productID); err != nil {
			utils.WriteError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
		return
	}

	cart, err := cc.Service.UpdateProductInCart(ctx, user, productID, *req.Quantity)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, cart)
}

// Checkout pays for the cart from the user's wallet
func (cc *CartController) Checkout(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), cc.Timeout)
	defer cancel()

	if err := cc.Service.Checkout(ctx, user); err != nil {
		utils.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
