package services

import (
	"context"

	"go-qkart/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserService looks up users and maintains their address
type UserService struct {
	users UserStore
}

func NewUserService(users UserStore) *UserService {
	return &UserService{users: users}
}

// GetUserByID returns the user or nil when there is none
func (s *UserService) GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return s.users.FindByID(ctx, id)
}

func (s *UserService) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.users.FindByEmail(ctx, NormalizeEmail(email))
}

// GetUserAddressByID returns a user with only email and address loaded
func (s *UserService) GetUserAddressByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return s.users.FindAddressByID(ctx, id)
}

// SetAddress stores a new address for user and returns it
func (s *UserService) SetAddress(ctx context.Context, user *models.User, address string) (string, error) {
	if err := s.users.UpdateAddress(ctx, user.ID, address); err != nil {
		return "", err
	}
	user.Address = address
	return address, nil
}
