package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go-qkart/models"
	"go-qkart/repository"
	"go-qkart/utils"

	"golang.org/x/crypto/bcrypt"
)

const (
	MsgEmailTaken       = "Email already taken"
	MsgWrongCredentials = "Incorrect email or password"
)

// AuthService registers users and checks their credentials
type AuthService struct {
	users          UserStore
	tokens         *utils.TokenManager
	defaultWallet  int64
	defaultAddress string
}

func NewAuthService(users UserStore, tokens *utils.TokenManager, defaultWallet int64, defaultAddress string) *AuthService {
	return &AuthService{
		users:          users,
		tokens:         tokens,
		defaultWallet:  defaultWallet,
		defaultAddress: defaultAddress,
	}
}

// NormalizeEmail trims and lower-cases an email address
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a user with the default wallet and address. A taken email
// is reported with status 200, which existing clients rely on.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	email = NormalizeEmail(email)

	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, utils.NewAPIError(http.StatusOK, MsgEmailTaken)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:        strings.TrimSpace(name),
		Email:       email,
		Password:    string(hashed),
		WalletMoney: s.defaultWallet,
		Address:     s.defaultAddress,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, utils.NewAPIError(http.StatusOK, MsgEmailTaken)
		}
		return nil, err
	}
	return user, nil
}

// Login returns the user owning email when password matches
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.users.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, utils.Unauthorized(MsgWrongCredentials)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, utils.Unauthorized(MsgWrongCredentials)
	}
	return user, nil
}

// GenerateAuthTokens issues an access token for user
func (s *AuthService) GenerateAuthTokens(user *models.User) (*utils.AuthTokens, error) {
	return s.tokens.GenerateAuthTokens(user.ID.Hex())
}
