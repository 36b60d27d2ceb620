package store

import (
	"context"
	"time"

	"closetshare/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type StoreRepository interface {
	Create(ctx context.Context, store *Store) error
	FindByOwner(ctx context.Context, owner primitive.ObjectID) (*Store, error)
	AddItem(ctx context.Context, owner, itemID primitive.ObjectID) error
	RemoveItem(ctx context.Context, owner, itemID primitive.ObjectID) error
	Delete(ctx context.Context, owner primitive.ObjectID) error
}

type StoreRepositoryImpl struct {
	collection *mongo.Collection
}

func NewStoreRepository(db *database.MongodbDB) StoreRepository {
	return &StoreRepositoryImpl{
		collection: db.DB.Collection("stores"),
	}
}

func (r *StoreRepositoryImpl) Create(ctx context.Context, store *Store) error {
	store.CreatedAt = time.Now()
	store.UpdatedAt = time.Now()

	if store.Items == nil {
		store.Items = []primitive.ObjectID{}
	}

	result, err := r.collection.InsertOne(ctx, store)
	if err != nil {
		return err
	}
	store.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *StoreRepositoryImpl) FindByOwner(ctx context.Context, owner primitive.ObjectID) (*Store, error) {
	var store Store
	err := r.collection.FindOne(ctx, bson.M{"store_owner": owner}).Decode(&store)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &store, nil
}

// AddItem and RemoveItem filter by store_owner, so only the owner's own
// store can ever be touched.
func (r *StoreRepositoryImpl) AddItem(ctx context.Context, owner, itemID primitive.ObjectID) error {
	update := bson.M{
		"$addToSet": bson.M{"items": itemID},
		"$set":      bson.M{"updated_at": time.Now()},
	}
	_, err := r.collection.UpdateOne(ctx, bson.M{"store_owner": owner}, update)
	return err
}

func (r *StoreRepositoryImpl) RemoveItem(ctx context.Context, owner, itemID primitive.ObjectID) error {
	update := bson.M{
		"$pull": bson.M{"items": itemID},
		"$set":  bson.M{"updated_at": time.Now()},
	}
	_, err := r.collection.UpdateOne(ctx, bson.M{"store_owner": owner}, update)
	return err
}

func (r *StoreRepositoryImpl) Delete(ctx context.Context, owner primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"store_owner": owner})
	return err
}
