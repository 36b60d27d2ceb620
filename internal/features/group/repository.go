package group

import (
	"context"
	"time"

	"closetshare/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// GroupRepository owns the groups and groupRequests collections. PopPending
// is backed by FindOneAndDelete, the one operation the request workflow
// relies on for atomicity: two concurrent accept/reject calls cannot both
// pop the same pending request.
type GroupRepository interface {
	Create(ctx context.Context, group *Group) error
	FindAll(ctx context.Context) ([]Group, error)
	FindByName(ctx context.Context, name string) ([]Group, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*Group, error)
	FindByMember(ctx context.Context, userID primitive.ObjectID) ([]Group, error)
	UpdateName(ctx context.Context, id primitive.ObjectID, name string) error
	AddMember(ctx context.Context, groupID, userID primitive.ObjectID) error
	RemoveMember(ctx context.Context, groupID, userID primitive.ObjectID) error
	Delete(ctx context.Context, id primitive.ObjectID) error

	CreateRequest(ctx context.Context, request *GroupRequest) error
	FindPending(ctx context.Context, userID, groupID primitive.ObjectID) (*GroupRequest, error)
	PopPending(ctx context.Context, userID, groupID primitive.ObjectID) (*GroupRequest, error)
	FindRequestsByUser(ctx context.Context, userID primitive.ObjectID) ([]GroupRequest, error)
	FindRequestsByGroup(ctx context.Context, groupID primitive.ObjectID) ([]GroupRequest, error)
	DeleteRequestsByGroup(ctx context.Context, groupID primitive.ObjectID) error
}

type GroupRepositoryImpl struct {
	groups   *mongo.Collection
	requests *mongo.Collection
}

func NewGroupRepository(db *database.MongodbDB) GroupRepository {
	return &GroupRepositoryImpl{
		groups:   db.DB.Collection("groups"),
		requests: db.DB.Collection("groupRequests"),
	}
}

func (r *GroupRepositoryImpl) Create(ctx context.Context, group *Group) error {
	group.CreatedAt = time.Now()
	group.UpdatedAt = time.Now()

	if group.Members == nil {
		group.Members = []primitive.ObjectID{}
	}

	result, err := r.groups.InsertOne(ctx, group)
	if err != nil {
		return err
	}

	group.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *GroupRepositoryImpl) FindAll(ctx context.Context) ([]Group, error) {
	return r.findGroups(ctx, bson.M{})
}

func (r *GroupRepositoryImpl) FindByName(ctx context.Context, name string) ([]Group, error) {
	return r.findGroups(ctx, bson.M{"name": name})
}

func (r *GroupRepositoryImpl) FindByMember(ctx context.Context, userID primitive.ObjectID) ([]Group, error) {
	return r.findGroups(ctx, bson.M{"members": userID})
}

func (r *GroupRepositoryImpl) findGroups(ctx context.Context, filter bson.M) ([]Group, error) {
	cursor, err := r.groups.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var groups []Group
	if err := cursor.All(ctx, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

func (r *GroupRepositoryImpl) FindByID(ctx context.Context, id primitive.ObjectID) (*Group, error) {
	var group Group
	err := r.groups.FindOne(ctx, bson.M{"_id": id}).Decode(&group)
	if err != nil {
		return nil, err
	}
	return &group, nil
}

func (r *GroupRepositoryImpl) UpdateName(ctx context.Context, id primitive.ObjectID, name string) error {
	update := bson.M{
		"$set": bson.M{"name": name, "updated_at": time.Now()},
	}
	_, err := r.groups.UpdateOne(ctx, bson.M{"_id": id}, update)
	return err
}

func (r *GroupRepositoryImpl) AddMember(ctx context.Context, groupID, userID primitive.ObjectID) error {
	update := bson.M{
		"$addToSet": bson.M{"members": userID},
		"$set":      bson.M{"updated_at": time.Now()},
	}
	_, err := r.groups.UpdateOne(ctx, bson.M{"_id": groupID}, update)
	return err
}

func (r *GroupRepositoryImpl) RemoveMember(ctx context.Context, groupID, userID primitive.ObjectID) error {
	update := bson.M{
		"$pull": bson.M{"members": userID},
		"$set":  bson.M{"updated_at": time.Now()},
	}
	_, err := r.groups.UpdateOne(ctx, bson.M{"_id": groupID}, update)
	return err
}

func (r *GroupRepositoryImpl) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.groups.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *GroupRepositoryImpl) CreateRequest(ctx context.Context, request *GroupRequest) error {
	request.CreatedAt = time.Now()
	request.UpdatedAt = time.Now()

	result, err := r.requests.InsertOne(ctx, request)
	if err != nil {
		return err
	}

	request.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *GroupRepositoryImpl) FindPending(ctx context.Context, userID, groupID primitive.ObjectID) (*GroupRequest, error) {
	var request GroupRequest
	filter := bson.M{"user": userID, "group_id": groupID, "status": RequestStatusPending}
	err := r.requests.FindOne(ctx, filter).Decode(&request)
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *GroupRepositoryImpl) PopPending(ctx context.Context, userID, groupID primitive.ObjectID) (*GroupRequest, error) {
	var request GroupRequest
	filter := bson.M{"user": userID, "group_id": groupID, "status": RequestStatusPending}
	err := r.requests.FindOneAndDelete(ctx, filter).Decode(&request)
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *GroupRepositoryImpl) FindRequestsByUser(ctx context.Context, userID primitive.ObjectID) ([]GroupRequest, error) {
	return r.findRequests(ctx, bson.M{"user": userID})
}

func (r *GroupRepositoryImpl) FindRequestsByGroup(ctx context.Context, groupID primitive.ObjectID) ([]GroupRequest, error) {
	return r.findRequests(ctx, bson.M{"group_id": groupID})
}

func (r *GroupRepositoryImpl) findRequests(ctx context.Context, filter bson.M) ([]GroupRequest, error) {
	cursor, err := r.requests.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var requests []GroupRequest
	if err := cursor.All(ctx, &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *GroupRepositoryImpl) DeleteRequestsByGroup(ctx context.Context, groupID primitive.ObjectID) error {
	_, err := r.requests.DeleteMany(ctx, bson.M{"group_id": groupID})
	return err
}
