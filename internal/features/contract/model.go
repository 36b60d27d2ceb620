package contract

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Contract is a proposed borrowing agreement. Owner, Borrower and Item are
// fixed at proposal; the remaining terms stay editable until Finalized
// flips to true, after which the document is permanently locked.
type Contract struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Owner      primitive.ObjectID `json:"owner" bson:"owner"`
	Borrower   primitive.ObjectID `json:"borrower" bson:"borrower"`
	Item       primitive.ObjectID `json:"item" bson:"item"`
	BorrowDate time.Time          `json:"borrowDate" bson:"borrow_date"`
	ReturnDate time.Time          `json:"returnDate" bson:"return_date"`
	Notes      string             `json:"notes" bson:"notes"`
	Finalized  bool               `json:"finalized" bson:"finalized"`
	CreatedAt  time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at" bson:"updated_at"`
}
