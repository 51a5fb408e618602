package repository

import (
	"context"
	"errors"
	"fmt"

	"go-qkart/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// CartRepository persists carts, one per user email. Writes replace the
// whole item list, so two concurrent edits of the same cart can overwrite
// each other.
type CartRepository struct {
	Collection           *mongo.Collection
	defaultPaymentOption string
}

func NewCartRepository(db *mongo.Database, defaultPaymentOption string) *CartRepository {
	return &CartRepository{
		Collection:           db.Collection(CartsCollection),
		defaultPaymentOption: defaultPaymentOption,
	}
}

// FindByEmail returns the cart of email or nil when there is none
func (r *CartRepository) FindByEmail(ctx context.Context, email string) (*models.Cart, error) {
	var cart models.Cart
	err := r.Collection.FindOne(ctx, bson.M{"email": email}).Decode(&cart)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find cart: %w", err)
	}
	if cart.CartItems == nil {
		cart.CartItems = []models.CartItem{}
	}
	return &cart, nil
}

// CreateForUser inserts an empty cart for email. If another request created
// it first, that cart is returned instead.
func (r *CartRepository) CreateForUser(ctx context.Context, email string) (*models.Cart, error) {
	cart := &models.Cart{
		ID:            primitive.NewObjectID(),
		Email:         email,
		CartItems:     []models.CartItem{},
		PaymentOption: r.defaultPaymentOption,
	}

	if _, err := r.Collection.InsertOne(ctx, cart); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return r.FindByEmail(ctx, email)
		}
		return nil, fmt.Errorf("failed to create cart: %w", err)
	}
	return cart, nil
}

// Save writes the items and payment option of cart
func (r *CartRepository) Save(ctx context.Context, cart *models.Cart) error {
	items := cart.CartItems
	if items == nil {
		items = []models.CartItem{}
	}

	result, err := r.Collection.UpdateOne(ctx,
		bson.M{"_id": cart.ID},
		bson.M{"$set": bson.M{"cartItems": items, "paymentOption": cart.PaymentOption}},
	)
	if err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("cart %s not found", cart.ID.Hex())
	}
	return nil
}
