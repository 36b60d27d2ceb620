package group

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Group represents a borrowing circle. Names do not have to be unique.
type Group struct {
	ID        primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	Name      string               `json:"name" bson:"name"`
	Members   []primitive.ObjectID `json:"members" bson:"members"`
	CreatedAt time.Time            `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time            `json:"updated_at" bson:"updated_at"`
}

type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusAccepted RequestStatus = "accepted"
	RequestStatusRejected RequestStatus = "rejected"
)

// GroupRequest is a membership request. Invitation is true when an existing
// member invited User, false when User asked to join. A decision does not
// mutate the pending document in place: the pending record is popped and a
// terminal record inserted, so decisions accumulate as history.
type GroupRequest struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	User       primitive.ObjectID `json:"user" bson:"user"`
	GroupID    primitive.ObjectID `json:"group_id" bson:"group_id"`
	Invitation bool               `json:"invitation" bson:"invitation"`
	Status     RequestStatus      `json:"status" bson:"status"`
	CreatedAt  time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at" bson:"updated_at"`
}
