package store

import (
	"context"
	"testing"

	"closetshare/internal/common/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type memStoreRepo struct {
	stores map[primitive.ObjectID]*Store
}

func newMemStoreRepo() *memStoreRepo {
	return &memStoreRepo{stores: map[primitive.ObjectID]*Store{}}
}

func (m *memStoreRepo) Create(ctx context.Context, store *Store) error {
	store.ID = primitive.NewObjectID()
	if store.Items == nil {
		store.Items = []primitive.ObjectID{}
	}
	m.stores[store.StoreOwner] = store
	return nil
}

func (m *memStoreRepo) FindByOwner(ctx context.Context, owner primitive.ObjectID) (*Store, error) {
	return m.stores[owner], nil
}

func (m *memStoreRepo) AddItem(ctx context.Context, owner, itemID primitive.ObjectID) error {
	store, ok := m.stores[owner]
	if !ok {
		return nil
	}
	for _, item := range store.Items {
		if item == itemID {
			return nil
		}
	}
	store.Items = append(store.Items, itemID)
	return nil
}

func (m *memStoreRepo) RemoveItem(ctx context.Context, owner, itemID primitive.ObjectID) error {
	store, ok := m.stores[owner]
	if !ok {
		return nil
	}
	items := store.Items[:0]
	for _, item := range store.Items {
		if item != itemID {
			items = append(items, item)
		}
	}
	store.Items = items
	return nil
}

func (m *memStoreRepo) Delete(ctx context.Context, owner primitive.ObjectID) error {
	delete(m.stores, owner)
	return nil
}

func newTestStoreService(repo StoreRepository) *StoreServiceImpl {
	return &StoreServiceImpl{repo: repo, logger: zap.NewNop()}
}

func TestCreateStoreOncePerUser(t *testing.T) {
	service := newTestStoreService(newMemStoreRepo())
	ctx := context.Background()
	owner := primitive.NewObjectID()

	store, err := service.CreateStore(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, owner, store.StoreOwner)
	assert.Empty(t, store.Items)

	_, err = service.CreateStore(ctx, owner)
	assert.True(t, apperr.IsKind(err, apperr.KindNotAllowed))
}

func TestStoreItemMembership(t *testing.T) {
	repo := newMemStoreRepo()
	service := newTestStoreService(repo)
	ctx := context.Background()

	owner := primitive.NewObjectID()
	stranger := primitive.NewObjectID()
	item := primitive.NewObjectID()

	_, err := service.CreateStore(ctx, owner)
	require.NoError(t, err)

	require.NoError(t, service.AddItem(ctx, owner, item))
	// Adding twice keeps the set semantics.
	require.NoError(t, service.AddItem(ctx, owner, item))
	assert.Equal(t, []primitive.ObjectID{item}, repo.stores[owner].Items)

	// A user without a store cannot stage items anywhere.
	err = service.AddItem(ctx, stranger, item)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))

	require.NoError(t, service.RemoveItem(ctx, owner, item))
	assert.Empty(t, repo.stores[owner].Items)
}

func TestGetStoreByOwnerMissing(t *testing.T) {
	service := newTestStoreService(newMemStoreRepo())

	_, err := service.GetStoreByOwner(context.Background(), primitive.NewObjectID())
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}
