package contract

import (
	"context"
	"time"

	"closetshare/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ContractRepository interface {
	Create(ctx context.Context, contract *Contract) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*Contract, error)
	FindByOwner(ctx context.Context, owner primitive.ObjectID) ([]Contract, error)
	FindByBorrower(ctx context.Context, borrower primitive.ObjectID) ([]Contract, error)
	FindByUser(ctx context.Context, user primitive.ObjectID) ([]Contract, error)
	FindByItem(ctx context.Context, item primitive.ObjectID) (*Contract, error)
	FindAll(ctx context.Context) ([]Contract, error)
	FindOverdue(ctx context.Context, now time.Time) ([]Contract, error)
	Update(ctx context.Context, id primitive.ObjectID, fields bson.M) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type ContractRepositoryImpl struct {
	collection *mongo.Collection
}

func NewContractRepository(db *database.MongodbDB) ContractRepository {
	return &ContractRepositoryImpl{
		collection: db.DB.Collection("contracts"),
	}
}

var byRecency = options.Find().SetSort(bson.D{{Key: "updated_at", Value: -1}})

func (r *ContractRepositoryImpl) Create(ctx context.Context, contract *Contract) error {
	contract.CreatedAt = time.Now()
	contract.UpdatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, contract)
	if err != nil {
		return err
	}

	contract.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *ContractRepositoryImpl) FindByID(ctx context.Context, id primitive.ObjectID) (*Contract, error) {
	var contract Contract
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&contract)
	if err != nil {
		return nil, err
	}
	return &contract, nil
}

func (r *ContractRepositoryImpl) FindByOwner(ctx context.Context, owner primitive.ObjectID) ([]Contract, error) {
	return r.findContracts(ctx, bson.M{"owner": owner})
}

func (r *ContractRepositoryImpl) FindByBorrower(ctx context.Context, borrower primitive.ObjectID) ([]Contract, error) {
	return r.findContracts(ctx, bson.M{"borrower": borrower})
}

// FindByUser returns the union of contracts the user participates in as
// owner or borrower.
func (r *ContractRepositoryImpl) FindByUser(ctx context.Context, user primitive.ObjectID) ([]Contract, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"owner": user},
		bson.M{"borrower": user},
	}}
	return r.findContracts(ctx, filter)
}

func (r *ContractRepositoryImpl) FindByItem(ctx context.Context, item primitive.ObjectID) (*Contract, error) {
	var contract Contract
	err := r.collection.FindOne(ctx, bson.M{"item": item}).Decode(&contract)
	if err != nil {
		return nil, err
	}
	return &contract, nil
}

func (r *ContractRepositoryImpl) FindAll(ctx context.Context) ([]Contract, error) {
	return r.findContracts(ctx, bson.M{})
}

func (r *ContractRepositoryImpl) FindOverdue(ctx context.Context, now time.Time) ([]Contract, error) {
	filter := bson.M{
		"finalized":   true,
		"return_date": bson.M{"$lt": now},
	}
	return r.findContracts(ctx, filter)
}

func (r *ContractRepositoryImpl) findContracts(ctx context.Context, filter bson.M) ([]Contract, error) {
	cursor, err := r.collection.Find(ctx, filter, byRecency)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var contracts []Contract
	if err := cursor.All(ctx, &contracts); err != nil {
		return nil, err
	}
	return contracts, nil
}

func (r *ContractRepositoryImpl) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	fields["updated_at"] = time.Now()
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	return err
}

func (r *ContractRepositoryImpl) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
