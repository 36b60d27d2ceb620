package closet

import (
	"context"
	"time"

	"closetshare/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ClothingItemRepository interface {
	Create(ctx context.Context, item *ClothingItem) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*ClothingItem, error)
	FindByOwner(ctx context.Context, owner primitive.ObjectID) ([]ClothingItem, error)
	FindAll(ctx context.Context) ([]ClothingItem, error)
	FindByBorrower(ctx context.Context, borrower primitive.ObjectID) ([]ClothingItem, error)
	FindBorrowable(ctx context.Context, excludeOwner primitive.ObjectID) ([]ClothingItem, error)
	Update(ctx context.Context, id primitive.ObjectID, fields bson.M) error
	SetBorrower(ctx context.Context, id, borrower primitive.ObjectID) error
	ClearBorrower(ctx context.Context, id primitive.ObjectID) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type ClothingItemRepositoryImpl struct {
	collection *mongo.Collection
}

func NewClothingItemRepository(db *database.MongodbDB) ClothingItemRepository {
	return &ClothingItemRepositoryImpl{
		collection: db.DB.Collection("clothingItems"),
	}
}

// byRecency matches the listing order the storefront expects.
var byRecency = options.Find().SetSort(bson.D{{Key: "updated_at", Value: -1}})

func (r *ClothingItemRepositoryImpl) Create(ctx context.Context, item *ClothingItem) error {
	item.CreatedAt = time.Now()
	item.UpdatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, item)
	if err != nil {
		return err
	}

	item.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *ClothingItemRepositoryImpl) FindByID(ctx context.Context, id primitive.ObjectID) (*ClothingItem, error) {
	var item ClothingItem
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&item)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *ClothingItemRepositoryImpl) FindByOwner(ctx context.Context, owner primitive.ObjectID) ([]ClothingItem, error) {
	return r.findItems(ctx, bson.M{"owner": owner})
}

func (r *ClothingItemRepositoryImpl) FindAll(ctx context.Context) ([]ClothingItem, error) {
	return r.findItems(ctx, bson.M{})
}

func (r *ClothingItemRepositoryImpl) FindByBorrower(ctx context.Context, borrower primitive.ObjectID) ([]ClothingItem, error) {
	return r.findItems(ctx, bson.M{"borrower": borrower})
}

func (r *ClothingItemRepositoryImpl) FindBorrowable(ctx context.Context, excludeOwner primitive.ObjectID) ([]ClothingItem, error) {
	filter := bson.M{
		"borrower": bson.M{"$exists": false},
		"owner":    bson.M{"$ne": excludeOwner},
	}
	return r.findItems(ctx, filter)
}

func (r *ClothingItemRepositoryImpl) findItems(ctx context.Context, filter bson.M) ([]ClothingItem, error) {
	cursor, err := r.collection.Find(ctx, filter, byRecency)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var items []ClothingItem
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *ClothingItemRepositoryImpl) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	fields["updated_at"] = time.Now()
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	return err
}

func (r *ClothingItemRepositoryImpl) SetBorrower(ctx context.Context, id, borrower primitive.ObjectID) error {
	update := bson.M{
		"$set": bson.M{"borrower": borrower, "updated_at": time.Now()},
	}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	return err
}

func (r *ClothingItemRepositoryImpl) ClearBorrower(ctx context.Context, id primitive.ObjectID) error {
	update := bson.M{
		"$unset": bson.M{"borrower": ""},
		"$set":   bson.M{"updated_at": time.Now()},
	}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	return err
}

func (r *ClothingItemRepositoryImpl) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
