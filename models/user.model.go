package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a registered shopper
type User struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name        string             `bson:"name" json:"name"`
	Email       string             `bson:"email" json:"email"`
	Password    string             `bson:"password,omitempty" json:"-"`
	WalletMoney int64              `bson:"walletMoney" json:"walletMoney"`
	Address     string             `bson:"address" json:"address"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// HasSetNonDefaultAddress reports whether the user replaced the sentinel address
func (u *User) HasSetNonDefaultAddress(defaultAddress string) bool {
	return u.Address != defaultAddress
}
