package services

import (
	"context"

	"go-qkart/models"
	"go-qkart/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartStore is the persistence the cart service needs
type CartStore interface {
	FindByEmail(ctx context.Context, email string) (*models.Cart, error)
	CreateForUser(ctx context.Context, email string) (*models.Cart, error)
	Save(ctx context.Context, cart *models.Cart) error
}

// ProductStore reads the catalog
type ProductStore interface {
	FindAll(ctx context.Context) ([]models.Product, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
}

// UserStore reads and writes user accounts
type UserStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindAddressByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	UpdateAddress(ctx context.Context, id primitive.ObjectID, address string) error
	UpdateWalletMoney(ctx context.Context, id primitive.ObjectID, walletMoney int64) error
}

// Transactor runs fn so that the writes it makes succeed or fail together
// when the store supports it
type Transactor interface {
	Run(ctx context.Context, fn func(ctx context.Context) error) error
}

// ReceiptSender delivers checkout receipts
type ReceiptSender interface {
	SendCheckoutReceipt(r utils.Receipt) error
}
