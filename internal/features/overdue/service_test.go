package overdue

import (
	"context"
	"testing"
	"time"

	"closetshare/internal/features/closet"
	"closetshare/internal/features/contract"
	"closetshare/internal/features/notification"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type stubContractRepo struct {
	contract.ContractRepository
	overdue []contract.Contract
}

func (s *stubContractRepo) FindOverdue(ctx context.Context, now time.Time) ([]contract.Contract, error) {
	return s.overdue, nil
}

type stubClosetRepo struct {
	closet.ClothingItemRepository
	items map[primitive.ObjectID]*closet.ClothingItem
}

func (s *stubClosetRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*closet.ClothingItem, error) {
	item, ok := s.items[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return item, nil
}

type recordingNotifier struct {
	notified []primitive.ObjectID
}

func (r *recordingNotifier) Notify(ctx context.Context, userID primitive.ObjectID, title, message string, notifType notification.NotificationType, link string) error {
	r.notified = append(r.notified, userID)
	return nil
}

func (r *recordingNotifier) GetUserNotifications(ctx context.Context, userID primitive.ObjectID, page, limit int64) ([]notification.Notification, int64, error) {
	return nil, 0, nil
}

func (r *recordingNotifier) GetUnreadCount(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	return 0, nil
}

func (r *recordingNotifier) MarkAsRead(ctx context.Context, id string, userID primitive.ObjectID) error {
	return nil
}

func (r *recordingNotifier) MarkAllAsRead(ctx context.Context, userID primitive.ObjectID) error {
	return nil
}

func overdueContract(owner, borrower, item primitive.ObjectID) contract.Contract {
	return contract.Contract{
		ID:         primitive.NewObjectID(),
		Owner:      owner,
		Borrower:   borrower,
		Item:       item,
		BorrowDate: time.Now().Add(-14 * 24 * time.Hour),
		ReturnDate: time.Now().Add(-24 * time.Hour),
		Finalized:  true,
	}
}

func TestSweepNotifiesBothParties(t *testing.T) {
	owner := primitive.NewObjectID()
	borrower := primitive.NewObjectID()
	itemID := primitive.NewObjectID()

	contracts := &stubContractRepo{overdue: []contract.Contract{overdueContract(owner, borrower, itemID)}}
	items := &stubClosetRepo{items: map[primitive.ObjectID]*closet.ClothingItem{
		itemID: {ID: itemID, Owner: owner, Borrower: &borrower, Name: "raincoat"},
	}}
	notifier := &recordingNotifier{}

	service := &OverdueServiceImpl{
		contractRepo:        contracts,
		closetRepo:          items,
		notificationService: notifier,
		logger:              zap.NewNop(),
	}

	count, err := service.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.ElementsMatch(t, []primitive.ObjectID{owner, borrower}, notifier.notified)
}

func TestSweepSkipsReturnedItems(t *testing.T) {
	owner := primitive.NewObjectID()
	borrower := primitive.NewObjectID()
	returnedID := primitive.NewObjectID()
	reborrowedID := primitive.NewObjectID()
	deletedID := primitive.NewObjectID()
	someoneElse := primitive.NewObjectID()

	contracts := &stubContractRepo{overdue: []contract.Contract{
		overdueContract(owner, borrower, returnedID),
		overdueContract(owner, borrower, reborrowedID),
		overdueContract(owner, borrower, deletedID),
	}}
	items := &stubClosetRepo{items: map[primitive.ObjectID]*closet.ClothingItem{
		returnedID:   {ID: returnedID, Owner: owner, Borrower: nil},
		reborrowedID: {ID: reborrowedID, Owner: owner, Borrower: &someoneElse},
	}}
	notifier := &recordingNotifier{}

	service := &OverdueServiceImpl{
		contractRepo:        contracts,
		closetRepo:          items,
		notificationService: notifier,
		logger:              zap.NewNop(),
	}

	count, err := service.Sweep(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Empty(t, notifier.notified)
}
