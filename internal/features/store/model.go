package store

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Store is a user's storefront: the set of items they have put up for
// lending. Every user owns exactly one store, created at registration.
type Store struct {
	ID         primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	StoreOwner primitive.ObjectID   `bson:"store_owner" json:"storeOwner"`
	Items      []primitive.ObjectID `bson:"items" json:"items"`
	CreatedAt  time.Time            `bson:"created_at" json:"created_at"`
	UpdatedAt  time.Time            `bson:"updated_at" json:"updated_at"`
}
