package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartItem represents an item in the cart
type CartItem struct {
	Product  Product `bson:"product" json:"product"`
	Quantity int     `bson:"quantity" json:"quantity"`
}

// Cart represents a user's shopping cart, one per email
type Cart struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Email         string             `bson:"email" json:"email"`
	CartItems     []CartItem         `bson:"cartItems" json:"cartItems"`
	PaymentOption string             `bson:"paymentOption" json:"paymentOption"`
}

// IndexOf returns the position of the item holding productID, or -1
func (c *Cart) IndexOf(productID primitive.ObjectID) int {
	for i, item := range c.CartItems {
		if item.Product.ID == productID {
			return i
		}
	}
	return -1
}

// IsEmpty reports whether the cart has no items
func (c *Cart) IsEmpty() bool {
	return len(c.CartItems) == 0
}
