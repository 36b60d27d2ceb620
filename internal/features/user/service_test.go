package user

import (
	"context"
	"testing"

	"closetshare/internal/common/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type memUserRepo struct {
	users map[primitive.ObjectID]*User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[primitive.ObjectID]*User{}}
}

func (m *memUserRepo) Create(ctx context.Context, user *User) error {
	user.ID = primitive.NewObjectID()
	m.users[user.ID] = user
	return nil
}

func (m *memUserRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return user, nil
}

func (m *memUserRepo) FindByUsername(ctx context.Context, username string) (*User, error) {
	for _, user := range m.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (m *memUserRepo) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]User, error) {
	users := []User{}
	for _, id := range ids {
		if user, ok := m.users[id]; ok {
			users = append(users, *user)
		}
	}
	return users, nil
}

func (m *memUserRepo) FindAll(ctx context.Context) ([]User, error) {
	users := []User{}
	for _, user := range m.users {
		users = append(users, *user)
	}
	return users, nil
}

func (m *memUserRepo) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	user, ok := m.users[id]
	if !ok {
		return nil
	}
	if username, ok := fields["username"].(string); ok {
		user.Username = username
	}
	if password, ok := fields["password"].(string); ok {
		user.Password = password
	}
	return nil
}

func (m *memUserRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	delete(m.users, id)
	return nil
}

func (m *memUserRepo) EnsureIndexes(ctx context.Context) error {
	return nil
}

func TestRegister(t *testing.T) {
	repo := newMemUserRepo()
	service := &UserServiceImpl{repo: repo}
	ctx := context.Background()

	user, err := service.Register(ctx, "kim", "hunter2")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2", user.Password, "password must be stored hashed")

	_, err = service.Register(ctx, "kim", "other")
	assert.True(t, apperr.IsKind(err, apperr.KindNotAllowed))

	_, err = service.Register(ctx, "", "pw")
	assert.True(t, apperr.IsKind(err, apperr.KindBadValues))
	_, err = service.Register(ctx, "nopw", "")
	assert.True(t, apperr.IsKind(err, apperr.KindBadValues))
}

func TestAuthenticate(t *testing.T) {
	repo := newMemUserRepo()
	service := &UserServiceImpl{repo: repo}
	ctx := context.Background()

	registered, err := service.Register(ctx, "sam", "secret")
	require.NoError(t, err)

	user, err := service.Authenticate(ctx, "sam", "secret")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)

	// Wrong password and unknown user report the same error.
	_, badPassword := service.Authenticate(ctx, "sam", "wrong")
	_, badUser := service.Authenticate(ctx, "nobody", "secret")
	assert.EqualError(t, badPassword, "Username or password is incorrect.")
	assert.EqualError(t, badUser, "Username or password is incorrect.")
}

func TestUpdateUserUsernameTaken(t *testing.T) {
	repo := newMemUserRepo()
	service := &UserServiceImpl{repo: repo}
	ctx := context.Background()

	_, err := service.Register(ctx, "alex", "pw")
	require.NoError(t, err)
	second, err := service.Register(ctx, "jo", "pw")
	require.NoError(t, err)

	err = service.UpdateUser(ctx, second.ID, "alex", "")
	assert.True(t, apperr.IsKind(err, apperr.KindNotAllowed))

	// Renaming to your own current name is not a conflict.
	assert.NoError(t, service.UpdateUser(ctx, second.ID, "jo", ""))

	err = service.UpdateUser(ctx, second.ID, "", "")
	assert.True(t, apperr.IsKind(err, apperr.KindBadValues))
}

func TestIDsToUsernames(t *testing.T) {
	repo := newMemUserRepo()
	service := &UserServiceImpl{repo: repo}
	ctx := context.Background()

	a, err := service.Register(ctx, "ana", "pw")
	require.NoError(t, err)
	b, err := service.Register(ctx, "ben", "pw")
	require.NoError(t, err)
	gone := primitive.NewObjectID()

	names, err := service.IDsToUsernames(ctx, []primitive.ObjectID{b.ID, gone, a.ID, b.ID})
	require.NoError(t, err)
	assert.Equal(t, []string{"ben", DeletedUsername, "ana", "ben"}, names)

	names, err = service.IDsToUsernames(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, names)
}
