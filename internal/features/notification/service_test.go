package notification

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type memNotificationRepo struct {
	notifications []*Notification
}

func (m *memNotificationRepo) Create(ctx context.Context, notification *Notification) error {
	notification.ID = primitive.NewObjectID()
	notification.CreatedAt = time.Now()
	m.notifications = append(m.notifications, notification)
	return nil
}

func (m *memNotificationRepo) FindByUser(ctx context.Context, userID primitive.ObjectID, page, limit int64) ([]Notification, int64, error) {
	matched := []Notification{}
	for _, n := range m.notifications {
		if n.UserID == userID {
			matched = append(matched, *n)
		}
	}
	total := int64(len(matched))

	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

func (m *memNotificationRepo) UnreadCount(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	var count int64
	for _, n := range m.notifications {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (m *memNotificationRepo) MarkAsRead(ctx context.Context, id primitive.ObjectID, userID primitive.ObjectID) error {
	for _, n := range m.notifications {
		if n.ID == id && n.UserID == userID {
			n.IsRead = true
		}
	}
	return nil
}

func (m *memNotificationRepo) MarkAllAsRead(ctx context.Context, userID primitive.ObjectID) error {
	for _, n := range m.notifications {
		if n.UserID == userID {
			n.IsRead = true
		}
	}
	return nil
}

func (m *memNotificationRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	return nil
}

func newTestNotificationService(repo NotificationRepository) NotificationService {
	logger := zap.NewNop()
	return NewNotificationService(repo, NewHub(logger), logger)
}

func TestNotifyAndCount(t *testing.T) {
	repo := &memNotificationRepo{}
	service := newTestNotificationService(repo)
	ctx := context.Background()

	alice := primitive.NewObjectID()
	bob := primitive.NewObjectID()

	require.NoError(t, service.Notify(ctx, alice, "Group invitation", "join us", NotificationTypeRequest, ""))
	require.NoError(t, service.Notify(ctx, alice, "Overdue contract", "return it", NotificationTypeOverdue, ""))
	require.NoError(t, service.Notify(ctx, bob, "Group invitation", "join us", NotificationTypeRequest, ""))

	count, err := service.GetUnreadCount(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	notifications, total, err := service.GetUserNotifications(ctx, alice, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, notifications, 2)
}

func TestMarkAsReadIsScopedToUser(t *testing.T) {
	repo := &memNotificationRepo{}
	service := newTestNotificationService(repo)
	ctx := context.Background()

	alice := primitive.NewObjectID()
	bob := primitive.NewObjectID()

	require.NoError(t, service.Notify(ctx, alice, "t", "m", NotificationTypeInfo, ""))
	target := repo.notifications[0]

	// Another user cannot mark it read.
	require.NoError(t, service.MarkAsRead(ctx, target.ID.Hex(), bob))
	assert.False(t, target.IsRead)

	require.NoError(t, service.MarkAsRead(ctx, target.ID.Hex(), alice))
	assert.True(t, target.IsRead)

	count, err := service.GetUnreadCount(ctx, alice)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestMarkAllAsRead(t *testing.T) {
	repo := &memNotificationRepo{}
	service := newTestNotificationService(repo)
	ctx := context.Background()

	alice := primitive.NewObjectID()
	require.NoError(t, service.Notify(ctx, alice, "a", "m", NotificationTypeInfo, ""))
	require.NoError(t, service.Notify(ctx, alice, "b", "m", NotificationTypeInfo, ""))
	require.NoError(t, service.MarkAllAsRead(ctx, alice))

	count, err := service.GetUnreadCount(ctx, alice)
	require.NoError(t, err)
	assert.Zero(t, count)
}
