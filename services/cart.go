package services

import (
	"context"
	"log"
	"sync"

	"go-qkart/models"
	"go-qkart/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error messages returned by the cart service
const (
	MsgNoCart           = "User does not have a cart"
	MsgCartCreateFailed = "User cart creation failed"
	MsgProductMissing   = "Product doesn't exist in database"
	MsgProductInCart    = "Product already in cart. Use the cart sidebar to update or remove product from cart"
	MsgNoCartToModify   = "User does not have a cart. Use POST to create cart and add a product"
	MsgProductNotInCart = "Product not in cart"
	MsgCartEmpty        = "Cart is empty"
	MsgAddressNotSet    = "Address not set"
	MsgLowBalance       = "Insufficient balance"
)

// CartService holds the shopping cart rules. Every operation acts on the
// cart of the user passed in, never on one named by the client.
type CartService struct {
	carts          CartStore
	products       ProductStore
	users          UserStore
	atomic         Transactor
	mailer         ReceiptSender
	defaultAddress string

	receipts sync.WaitGroup
}

// NewCartService creates a CartService. mailer may be nil.
func NewCartService(carts CartStore, products ProductStore, users UserStore, atomic Transactor, mailer ReceiptSender, defaultAddress string) *CartService {
	return &CartService{
		carts:          carts,
		products:       products,
		users:          users,
		atomic:         atomic,
		mailer:         mailer,
		defaultAddress: defaultAddress,
	}
}

// GetCartByUser returns the user's cart
func (s *CartService) GetCartByUser(ctx context.Context, user *models.User) (*models.Cart, error) {
	cart, err := s.carts.FindByEmail(ctx, user.Email)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, utils.NotFound(MsgNoCart)
	}
	return cart, nil
}

// AddProductToCart puts a snapshot of the product into the user's cart,
// creating the cart on first use
func (s *CartService) AddProductToCart(ctx context.Context, user *models.User, productID primitive.ObjectID, quantity int) (*models.Cart, error) {
	cart, err := s.carts.FindByEmail(ctx, user.Email)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		cart, err = s.carts.CreateForUser(ctx, user.Email)
		if err != nil {
			log.Printf("cart creation for %s failed: %v", user.Email, err)
			return nil, utils.Internal(MsgCartCreateFailed)
		}
		if cart == nil {
			return nil, utils.Internal(MsgCartCreateFailed)
		}
	}

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, utils.BadRequest(MsgProductMissing)
	}

	if cart.IndexOf(productID) != -1 {
		return nil, utils.BadRequest(MsgProductInCart)
	}

	cart.CartItems = append(cart.CartItems, models.CartItem{Product: *product, Quantity: quantity})
	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// UpdateProductInCart replaces the quantity of a product already in the cart
func (s *CartService) UpdateProductInCart(ctx context.Context, user *models.User, productID primitive.ObjectID, quantity int) (*models.Cart, error) {
	cart, idx, err := s.findItem(ctx, user, productID)
	if err != nil {
		return nil, err
	}

	cart.CartItems[idx].Quantity = quantity
	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// DeleteProductFromCart removes the product's item from the cart
func (s *CartService) DeleteProductFromCart(ctx context.Context, user *models.User, productID primitive.ObjectID) error {
	cart, idx, err := s.findItem(ctx, user, productID)
	if err != nil {
		return err
	}

	cart.CartItems = append(cart.CartItems[:idx], cart.CartItems[idx+1:]...)
	return s.carts.Save(ctx, cart)
}

func (s *CartService) findItem(ctx context.Context, user *models.User, productID primitive.ObjectID) (*models.Cart, int, error) {
	cart, err := s.carts.FindByEmail(ctx, user.Email)
	if err != nil {
		return nil, -1, err
	}
	if cart == nil {
		return nil, -1, utils.BadRequest(MsgNoCartToModify)
	}

	idx := cart.IndexOf(productID)
	if idx == -1 {
		return nil, -1, utils.BadRequest(MsgProductNotInCart)
	}
	return cart, idx, nil
}

// Checkout pays for the cart from the user's wallet and empties the cart.
// On success user.WalletMoney holds the new balance.
func (s *CartService) Checkout(ctx context.Context, user *models.User) error {
	cart, err := s.carts.FindByEmail(ctx, user.Email)
	if err != nil {
		return err
	}
	if cart == nil {
		return utils.NotFound(MsgNoCart)
	}
	if cart.IsEmpty() {
		return utils.BadRequest(MsgCartEmpty)
	}
	if !user.HasSetNonDefaultAddress(s.defaultAddress) {
		return utils.BadRequest(MsgAddressNotSet)
	}

	total := utils.CartTotal(cart.CartItems)
	if !utils.CanAfford(user.WalletMoney, total) {
		return utils.BadRequest(MsgLowBalance)
	}

	balance := utils.Debit(user.WalletMoney, total)
	purchased := cart.CartItems

	err = s.atomic.Run(ctx, func(ctx context.Context) error {
		if err := s.users.UpdateWalletMoney(ctx, user.ID, balance); err != nil {
			return err
		}
		cart.CartItems = []models.CartItem{}
		return s.carts.Save(ctx, cart)
	})
	if err != nil {
		return err
	}
	user.WalletMoney = balance

	s.sendReceipt(utils.Receipt{
		Name:          user.Name,
		Email:         user.Email,
		Items:         purchased,
		Total:         total,
		WalletBalance: balance,
	})
	return nil
}

// Wait blocks until every receipt started by Checkout has been sent or failed
func (s *CartService) Wait() {
	s.receipts.Wait()
}

func (s *CartService) sendReceipt(r utils.Receipt) {
	if s.mailer == nil {
		return
	}
	s.receipts.Add(1)
	go func() {
		defer s.receipts.Done()
		if err := s.mailer.SendCheckoutReceipt(r); err != nil {
			log.Printf("checkout receipt for %s not sent: %v", r.Email, err)
		}
	}()
}
