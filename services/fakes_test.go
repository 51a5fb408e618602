package services

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"go-qkart/models"
	"go-qkart/repository"
	"go-qkart/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeCartStore keeps copies so callers cannot mutate stored carts in place
type fakeCartStore struct {
	carts     map[string]*models.Cart
	createErr error
	createNil bool
	saveErr   error
	saves     int
}

func newFakeCartStore() *fakeCartStore {
	return &fakeCartStore{carts: map[string]*models.Cart{}}
}

func copyCart(c *models.Cart) *models.Cart {
	cp := *c
	cp.CartItems = append([]models.CartItem{}, c.CartItems...)
	return &cp
}

func (f *fakeCartStore) FindByEmail(ctx context.Context, email string) (*models.Cart, error) {
	cart, ok := f.carts[email]
	if !ok {
		return nil, nil
	}
	return copyCart(cart), nil
}

func (f *fakeCartStore) CreateForUser(ctx context.Context, email string) (*models.Cart, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createNil {
		return nil, nil
	}
	cart := &models.Cart{
		ID:            primitive.NewObjectID(),
		Email:         email,
		CartItems:     []models.CartItem{},
		PaymentOption: "PAYMENT_OPTION_DEFAULT",
	}
	f.carts[email] = copyCart(cart)
	return cart, nil
}

func (f *fakeCartStore) Save(ctx context.Context, cart *models.Cart) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saves++
	f.carts[cart.Email] = copyCart(cart)
	return nil
}

type fakeProductStore struct {
	products map[primitive.ObjectID]models.Product
	finds    int
}

func newFakeProductStore(products ...models.Product) *fakeProductStore {
	f := &fakeProductStore{products: map[primitive.ObjectID]models.Product{}}
	for _, p := range products {
		f.products[p.ID] = p
	}
	return f
}

func (f *fakeProductStore) FindAll(ctx context.Context) ([]models.Product, error) {
	f.finds++
	out := []models.Product{}
	for _, p := range f.products {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeProductStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	f.finds++
	p, ok := f.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

type fakeUserStore struct {
	users     map[primitive.ObjectID]*models.User
	walletErr error
}

func newFakeUserStore(users ...*models.User) *fakeUserStore {
	f := &fakeUserStore{users: map[primitive.ObjectID]*models.User{}}
	for _, u := range users {
		cp := *u
		f.users[u.ID] = &cp
	}
	return f
}

func (f *fakeUserStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserStore) FindAddressByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	return &models.User{ID: u.ID, Email: u.Email, Address: u.Address}, nil
}

func (f *fakeUserStore) Create(ctx context.Context, user *models.User) error {
	for _, u := range f.users {
		if u.Email == user.Email {
			return repository.ErrDuplicateKey
		}
	}
	user.ID = primitive.NewObjectID()
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserStore) UpdateAddress(ctx context.Context, id primitive.ObjectID, address string) error {
	u, ok := f.users[id]
	if !ok {
		return errors.New("user not found")
	}
	u.Address = address
	return nil
}

func (f *fakeUserStore) UpdateWalletMoney(ctx context.Context, id primitive.ObjectID, walletMoney int64) error {
	if f.walletErr != nil {
		return f.walletErr
	}
	u, ok := f.users[id]
	if !ok {
		return errors.New("user not found")
	}
	u.WalletMoney = walletMoney
	return nil
}

type fakeTransactor struct {
	runs int
}

func (f *fakeTransactor) Run(ctx context.Context, fn func(ctx context.Context) error) error {
	f.runs++
	return fn(ctx)
}

type fakeMailer struct {
	sent chan utils.Receipt
}

func newFakeMailer() *fakeMailer {
	return &fakeMailer{sent: make(chan utils.Receipt, 1)}
}

func (f *fakeMailer) SendCheckoutReceipt(r utils.Receipt) error {
	f.sent <- r
	return nil
}

func assertAPIError(t *testing.T, err error, status int, message string) {
	t.Helper()
	var apiErr *utils.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, status, apiErr.StatusCode)
	assert.Equal(t, message, apiErr.Message)
}

func assertBadRequest(t *testing.T, err error, message string) {
	t.Helper()
	assertAPIError(t, err, http.StatusBadRequest, message)
}
