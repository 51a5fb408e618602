package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is a catalog entry. Carts embed a copy of it taken when the item is added.
type Product struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name     string             `bson:"name" json:"name"`
	Category string             `bson:"category" json:"category"`
	Cost     float64            `bson:"cost" json:"cost"`
	Rating   int                `bson:"rating" json:"rating"`
	Image    string             `bson:"image" json:"image"`
}
