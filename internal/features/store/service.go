package store

import (
	"context"

	"closetshare/internal/common/apperr"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type StoreService interface {
	CreateStore(ctx context.Context, owner primitive.ObjectID) (*Store, error)
	GetStoreByOwner(ctx context.Context, owner primitive.ObjectID) (*Store, error)
	AddItem(ctx context.Context, owner, itemID primitive.ObjectID) error
	RemoveItem(ctx context.Context, owner, itemID primitive.ObjectID) error
	RemoveStore(ctx context.Context, owner primitive.ObjectID) error
}

type StoreServiceImpl struct {
	repo   StoreRepository
	logger *zap.Logger
}

func NewStoreService(repo StoreRepository, logger *zap.Logger) StoreService {
	return &StoreServiceImpl{repo: repo, logger: logger}
}

func (s *StoreServiceImpl) CreateStore(ctx context.Context, owner primitive.ObjectID) (*Store, error) {
	existing, err := s.repo.FindByOwner(ctx, owner)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.NotAllowed("User %s already has a store!", owner.Hex())
	}

	store := &Store{StoreOwner: owner}
	if err := s.repo.Create(ctx, store); err != nil {
		return nil, err
	}

	s.logger.Info("store created",
		zap.String("storeId", store.ID.Hex()),
		zap.String("userId", owner.Hex()))
	return store, nil
}

func (s *StoreServiceImpl) GetStoreByOwner(ctx context.Context, owner primitive.ObjectID) (*Store, error) {
	store, err := s.repo.FindByOwner(ctx, owner)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, apperr.NotFound("Store for user %s does not exist!", owner.Hex())
	}
	return store, nil
}

// AddItem records the item in the owner's store. The store is addressed by
// its owner, so a user can only ever modify their own storefront.
func (s *StoreServiceImpl) AddItem(ctx context.Context, owner, itemID primitive.ObjectID) error {
	if _, err := s.GetStoreByOwner(ctx, owner); err != nil {
		return err
	}
	return s.repo.AddItem(ctx, owner, itemID)
}

func (s *StoreServiceImpl) RemoveItem(ctx context.Context, owner, itemID primitive.ObjectID) error {
	if _, err := s.GetStoreByOwner(ctx, owner); err != nil {
		return err
	}
	return s.repo.RemoveItem(ctx, owner, itemID)
}

func (s *StoreServiceImpl) RemoveStore(ctx context.Context, owner primitive.ObjectID) error {
	return s.repo.Delete(ctx, owner)
}
