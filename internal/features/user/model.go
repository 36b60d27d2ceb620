package user

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is an account document. The password field holds a bcrypt hash and
// is never serialized to clients.
type User struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Username  string             `json:"username" bson:"username"`
	Password  string             `json:"-" bson:"password"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}
