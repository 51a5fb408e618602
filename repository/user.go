package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-qkart/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UserRepository reads and writes the users collection
type UserRepository struct {
	Collection *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{Collection: db.Collection(UsersCollection)}
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M, opts ...*options.FindOneOptions) (*models.User, error) {
	var user models.User
	err := r.Collection.FindOne(ctx, filter, opts...).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &user, nil
}

// FindByID returns the user or nil when there is none
func (r *UserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

// FindByEmail returns the user or nil when there is none
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

// FindAddressByID loads only the email and address of a user
func (r *UserRepository) FindAddressByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	projection := options.FindOne().SetProjection(bson.M{"email": 1, "address": 1})
	return r.findOne(ctx, bson.M{"_id": id}, projection)
}

// Create inserts user, assigning its id and timestamps
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	now := time.Now().UTC()
	user.ID = primitive.NewObjectID()
	user.CreatedAt = now
	user.UpdatedAt = now

	if _, err := r.Collection.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateKey
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

// UpdateAddress sets the delivery address of a user
func (r *UserRepository) UpdateAddress(ctx context.Context, id primitive.ObjectID, address string) error {
	return r.set(ctx, id, bson.M{"address": address})
}

// UpdateWalletMoney overwrites the wallet balance of a user
func (r *UserRepository) UpdateWalletMoney(ctx context.Context, id primitive.ObjectID, walletMoney int64) error {
	return r.set(ctx, id, bson.M{"walletMoney": walletMoney})
}

func (r *UserRepository) set(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	fields["updatedAt"] = time.Now().UTC()
	result, err := r.Collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("user %s not found", id.Hex())
	}
	return nil
}
