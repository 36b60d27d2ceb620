package closet

import (
	"context"
	"testing"

	"closetshare/internal/common/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type memClosetRepo struct {
	items map[primitive.ObjectID]*ClothingItem
}

func newMemClosetRepo() *memClosetRepo {
	return &memClosetRepo{items: map[primitive.ObjectID]*ClothingItem{}}
}

func (m *memClosetRepo) Create(ctx context.Context, item *ClothingItem) error {
	item.ID = primitive.NewObjectID()
	m.items[item.ID] = item
	return nil
}

func (m *memClosetRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*ClothingItem, error) {
	item, ok := m.items[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return item, nil
}

func (m *memClosetRepo) FindByOwner(ctx context.Context, owner primitive.ObjectID) ([]ClothingItem, error) {
	items := []ClothingItem{}
	for _, item := range m.items {
		if item.Owner == owner {
			items = append(items, *item)
		}
	}
	return items, nil
}

func (m *memClosetRepo) FindAll(ctx context.Context) ([]ClothingItem, error) {
	items := []ClothingItem{}
	for _, item := range m.items {
		items = append(items, *item)
	}
	return items, nil
}

func (m *memClosetRepo) FindByBorrower(ctx context.Context, borrower primitive.ObjectID) ([]ClothingItem, error) {
	items := []ClothingItem{}
	for _, item := range m.items {
		if item.Borrower != nil && *item.Borrower == borrower {
			items = append(items, *item)
		}
	}
	return items, nil
}

func (m *memClosetRepo) FindBorrowable(ctx context.Context, excludeOwner primitive.ObjectID) ([]ClothingItem, error) {
	items := []ClothingItem{}
	for _, item := range m.items {
		if item.Borrower == nil && item.Owner != excludeOwner {
			items = append(items, *item)
		}
	}
	return items, nil
}

func (m *memClosetRepo) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	item, ok := m.items[id]
	if !ok {
		return nil
	}
	if name, ok := fields["name"].(string); ok {
		item.Name = name
	}
	if description, ok := fields["description"].(string); ok {
		item.Description = description
	}
	if imageURL, ok := fields["image_url"].(string); ok {
		item.ImageURL = imageURL
	}
	if borrower, ok := fields["borrower"].(primitive.ObjectID); ok {
		item.Borrower = &borrower
	}
	return nil
}

func (m *memClosetRepo) SetBorrower(ctx context.Context, id, borrower primitive.ObjectID) error {
	if item, ok := m.items[id]; ok {
		item.Borrower = &borrower
	}
	return nil
}

func (m *memClosetRepo) ClearBorrower(ctx context.Context, id primitive.ObjectID) error {
	if item, ok := m.items[id]; ok {
		item.Borrower = nil
	}
	return nil
}

func (m *memClosetRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	delete(m.items, id)
	return nil
}

func newTestClosetService(repo ClothingItemRepository) *ClothingItemServiceImpl {
	return &ClothingItemServiceImpl{repo: repo, logger: zap.NewNop()}
}

func TestBorrowSingleSlot(t *testing.T) {
	repo := newMemClosetRepo()
	service := newTestClosetService(repo)
	ctx := context.Background()

	owner := primitive.NewObjectID()
	first := primitive.NewObjectID()
	second := primitive.NewObjectID()

	item, err := service.Create(ctx, owner, "denim jacket", "lightly worn", "")
	require.NoError(t, err)

	require.NoError(t, service.Borrow(ctx, item.ID, first))

	err = service.Borrow(ctx, item.ID, first)
	require.True(t, apperr.IsKind(err, apperr.KindNotAllowed))
	assert.EqualError(t, err, "You are already borrowing this item!")

	err = service.Borrow(ctx, item.ID, second)
	require.True(t, apperr.IsKind(err, apperr.KindNotAllowed))
	assert.EqualError(t, err, "Another user is already borrowing this item!")

	require.NoError(t, service.Return(ctx, item.ID))
	assert.NoError(t, service.Borrow(ctx, item.ID, second))
}

func TestBorrowMissingItem(t *testing.T) {
	service := newTestClosetService(newMemClosetRepo())

	err := service.Borrow(context.Background(), primitive.NewObjectID(), primitive.NewObjectID())
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestReturnIsIdempotent(t *testing.T) {
	repo := newMemClosetRepo()
	service := newTestClosetService(repo)
	ctx := context.Background()

	item, err := service.Create(ctx, primitive.NewObjectID(), "scarf", "", "")
	require.NoError(t, err)

	// Returning an item nobody borrows succeeds quietly.
	assert.NoError(t, service.Return(ctx, item.ID))
	assert.NoError(t, service.Return(ctx, item.ID))
}

func TestUpdateRejectsUnknownFields(t *testing.T) {
	repo := newMemClosetRepo()
	service := newTestClosetService(repo)
	ctx := context.Background()

	owner := primitive.NewObjectID()
	item, err := service.Create(ctx, owner, "coat", "", "")
	require.NoError(t, err)

	tests := []struct {
		name    string
		patch   map[string]any
		wantErr bool
	}{
		{"allowed fields", map[string]any{"name": "winter coat", "imageUrl": "http://img"}, false},
		{"owner is immutable", map[string]any{"owner": primitive.NewObjectID().Hex()}, true},
		{"unknown field", map[string]any{"finalized": true}, true},
		{"empty patch", map[string]any{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := service.Update(ctx, item.ID, tt.patch)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}

	assert.Equal(t, "winter coat", repo.items[item.ID].Name)
	assert.Equal(t, "http://img", repo.items[item.ID].ImageURL)
	assert.Equal(t, owner, repo.items[item.ID].Owner)
}

func TestOwnershipGuards(t *testing.T) {
	repo := newMemClosetRepo()
	service := newTestClosetService(repo)
	ctx := context.Background()

	owner := primitive.NewObjectID()
	borrower := primitive.NewObjectID()
	stranger := primitive.NewObjectID()

	item, err := service.Create(ctx, owner, "hat", "", "")
	require.NoError(t, err)
	require.NoError(t, service.Borrow(ctx, item.ID, borrower))

	assert.NoError(t, service.IsOwner(ctx, owner, item.ID))
	assert.True(t, apperr.IsKind(service.IsOwner(ctx, stranger, item.ID), apperr.KindNotAllowed))

	assert.NoError(t, service.IsBorrower(ctx, borrower, item.ID))
	assert.True(t, apperr.IsKind(service.IsBorrower(ctx, stranger, item.ID), apperr.KindNotAllowed))
}

func TestBorrowableExcludesOwnAndTaken(t *testing.T) {
	repo := newMemClosetRepo()
	service := newTestClosetService(repo)
	ctx := context.Background()

	me := primitive.NewObjectID()
	other := primitive.NewObjectID()

	mine, err := service.Create(ctx, me, "my shirt", "", "")
	require.NoError(t, err)
	free, err := service.Create(ctx, other, "their shirt", "", "")
	require.NoError(t, err)
	taken, err := service.Create(ctx, other, "their pants", "", "")
	require.NoError(t, err)
	require.NoError(t, service.Borrow(ctx, taken.ID, me))

	items, err := service.GetBorrowableItems(ctx, me)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, free.ID, items[0].ID)
	assert.NotEqual(t, mine.ID, items[0].ID)
}
