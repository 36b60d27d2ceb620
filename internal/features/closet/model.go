package closet

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ClothingItem is a listed garment. Owner is fixed at creation and can
// never change; Borrower is a single slot that is either empty or holds
// exactly one user.
type ClothingItem struct {
	ID          primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	Owner       primitive.ObjectID  `json:"owner" bson:"owner"`
	Borrower    *primitive.ObjectID `json:"borrower,omitempty" bson:"borrower,omitempty"`
	Name        string              `json:"name" bson:"name"`
	Description string              `json:"description" bson:"description"`
	ImageURL    string              `json:"imageUrl" bson:"image_url"`
	CreatedAt   time.Time           `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at" bson:"updated_at"`
}
