package friend

import (
	"context"
	"time"

	"closetshare/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// FriendRepository owns the friends and friendRequests collections.
// PopPending mirrors the group request workflow: FindOneAndDelete is the
// single atomic step that decides which caller consumes a pending request.
type FriendRepository interface {
	CreateFriendship(ctx context.Context, friendship *Friendship) error
	FindFriendship(ctx context.Context, a, b primitive.ObjectID) (*Friendship, error)
	FindFriendsOf(ctx context.Context, userID primitive.ObjectID) ([]Friendship, error)
	DeleteFriendship(ctx context.Context, a, b primitive.ObjectID) error

	CreateRequest(ctx context.Context, request *FriendRequest) error
	FindPendingBetween(ctx context.Context, a, b primitive.ObjectID) (*FriendRequest, error)
	PopPending(ctx context.Context, from, to primitive.ObjectID) (*FriendRequest, error)
	FindRequestsFor(ctx context.Context, userID primitive.ObjectID) ([]FriendRequest, error)
}

type FriendRepositoryImpl struct {
	friends  *mongo.Collection
	requests *mongo.Collection
}

func NewFriendRepository(db *database.MongodbDB) FriendRepository {
	return &FriendRepositoryImpl{
		friends:  db.DB.Collection("friends"),
		requests: db.DB.Collection("friendRequests"),
	}
}

// pairFilter matches the unordered pair (a, b).
func pairFilter(a, b primitive.ObjectID) bson.M {
	return bson.M{"$or": []bson.M{
		{"user1": a, "user2": b},
		{"user1": b, "user2": a},
	}}
}

func (r *FriendRepositoryImpl) CreateFriendship(ctx context.Context, friendship *Friendship) error {
	friendship.CreatedAt = time.Now()
	friendship.UpdatedAt = time.Now()

	result, err := r.friends.InsertOne(ctx, friendship)
	if err != nil {
		return err
	}
	friendship.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *FriendRepositoryImpl) FindFriendship(ctx context.Context, a, b primitive.ObjectID) (*Friendship, error) {
	var friendship Friendship
	err := r.friends.FindOne(ctx, pairFilter(a, b)).Decode(&friendship)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &friendship, nil
}

func (r *FriendRepositoryImpl) FindFriendsOf(ctx context.Context, userID primitive.ObjectID) ([]Friendship, error) {
	cursor, err := r.friends.Find(ctx, bson.M{"$or": []bson.M{
		{"user1": userID},
		{"user2": userID},
	}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	friendships := []Friendship{}
	if err := cursor.All(ctx, &friendships); err != nil {
		return nil, err
	}
	return friendships, nil
}

func (r *FriendRepositoryImpl) DeleteFriendship(ctx context.Context, a, b primitive.ObjectID) error {
	_, err := r.friends.DeleteOne(ctx, pairFilter(a, b))
	return err
}

func (r *FriendRepositoryImpl) CreateRequest(ctx context.Context, request *FriendRequest) error {
	request.CreatedAt = time.Now()
	request.UpdatedAt = time.Now()

	result, err := r.requests.InsertOne(ctx, request)
	if err != nil {
		return err
	}
	request.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

// FindPendingBetween matches a pending request in either direction.
func (r *FriendRepositoryImpl) FindPendingBetween(ctx context.Context, a, b primitive.ObjectID) (*FriendRequest, error) {
	filter := bson.M{
		"status": RequestPending,
		"$or": []bson.M{
			{"from": a, "to": b},
			{"from": b, "to": a},
		},
	}
	var request FriendRequest
	err := r.requests.FindOne(ctx, filter).Decode(&request)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &request, nil
}

func (r *FriendRepositoryImpl) PopPending(ctx context.Context, from, to primitive.ObjectID) (*FriendRequest, error) {
	filter := bson.M{"from": from, "to": to, "status": RequestPending}
	var request FriendRequest
	err := r.requests.FindOneAndDelete(ctx, filter).Decode(&request)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &request, nil
}

func (r *FriendRepositoryImpl) FindRequestsFor(ctx context.Context, userID primitive.ObjectID) ([]FriendRequest, error) {
	cursor, err := r.requests.Find(ctx, bson.M{"$or": []bson.M{
		{"from": userID},
		{"to": userID},
	}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	requests := []FriendRequest{}
	if err := cursor.All(ctx, &requests); err != nil {
		return nil, err
	}
	return requests, nil
}
