package group

import (
	"context"
	"testing"

	"closetshare/internal/common/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type memGroupRepo struct {
	groups   map[primitive.ObjectID]*Group
	requests []*GroupRequest
}

func newMemGroupRepo() *memGroupRepo {
	return &memGroupRepo{groups: map[primitive.ObjectID]*Group{}}
}

func (m *memGroupRepo) Create(ctx context.Context, group *Group) error {
	group.ID = primitive.NewObjectID()
	m.groups[group.ID] = group
	return nil
}

func (m *memGroupRepo) FindAll(ctx context.Context) ([]Group, error) {
	groups := []Group{}
	for _, g := range m.groups {
		groups = append(groups, *g)
	}
	return groups, nil
}

func (m *memGroupRepo) FindByName(ctx context.Context, name string) ([]Group, error) {
	groups := []Group{}
	for _, g := range m.groups {
		if g.Name == name {
			groups = append(groups, *g)
		}
	}
	return groups, nil
}

func (m *memGroupRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*Group, error) {
	g, ok := m.groups[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return g, nil
}

func (m *memGroupRepo) FindByMember(ctx context.Context, userID primitive.ObjectID) ([]Group, error) {
	groups := []Group{}
	for _, g := range m.groups {
		for _, member := range g.Members {
			if member == userID {
				groups = append(groups, *g)
				break
			}
		}
	}
	return groups, nil
}

func (m *memGroupRepo) UpdateName(ctx context.Context, id primitive.ObjectID, name string) error {
	if g, ok := m.groups[id]; ok {
		g.Name = name
	}
	return nil
}

func (m *memGroupRepo) AddMember(ctx context.Context, groupID, userID primitive.ObjectID) error {
	g, ok := m.groups[groupID]
	if !ok {
		return nil
	}
	for _, member := range g.Members {
		if member == userID {
			return nil
		}
	}
	g.Members = append(g.Members, userID)
	return nil
}

func (m *memGroupRepo) RemoveMember(ctx context.Context, groupID, userID primitive.ObjectID) error {
	g, ok := m.groups[groupID]
	if !ok {
		return nil
	}
	members := g.Members[:0]
	for _, member := range g.Members {
		if member != userID {
			members = append(members, member)
		}
	}
	g.Members = members
	return nil
}

func (m *memGroupRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	delete(m.groups, id)
	return nil
}

func (m *memGroupRepo) CreateRequest(ctx context.Context, request *GroupRequest) error {
	request.ID = primitive.NewObjectID()
	m.requests = append(m.requests, request)
	return nil
}

func (m *memGroupRepo) FindPending(ctx context.Context, userID, groupID primitive.ObjectID) (*GroupRequest, error) {
	for _, r := range m.requests {
		if r.User == userID && r.GroupID == groupID && r.Status == RequestStatusPending {
			return r, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (m *memGroupRepo) PopPending(ctx context.Context, userID, groupID primitive.ObjectID) (*GroupRequest, error) {
	for i, r := range m.requests {
		if r.User == userID && r.GroupID == groupID && r.Status == RequestStatusPending {
			m.requests = append(m.requests[:i], m.requests[i+1:]...)
			return r, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (m *memGroupRepo) FindRequestsByUser(ctx context.Context, userID primitive.ObjectID) ([]GroupRequest, error) {
	requests := []GroupRequest{}
	for _, r := range m.requests {
		if r.User == userID {
			requests = append(requests, *r)
		}
	}
	return requests, nil
}

func (m *memGroupRepo) FindRequestsByGroup(ctx context.Context, groupID primitive.ObjectID) ([]GroupRequest, error) {
	requests := []GroupRequest{}
	for _, r := range m.requests {
		if r.GroupID == groupID {
			requests = append(requests, *r)
		}
	}
	return requests, nil
}

func (m *memGroupRepo) DeleteRequestsByGroup(ctx context.Context, groupID primitive.ObjectID) error {
	kept := m.requests[:0]
	for _, r := range m.requests {
		if r.GroupID != groupID {
			kept = append(kept, r)
		}
	}
	m.requests = kept
	return nil
}

func newTestGroupService(repo GroupRepository) *GroupServiceImpl {
	return &GroupServiceImpl{repo: repo, logger: zap.NewNop()}
}

func TestCreateGroup(t *testing.T) {
	repo := newMemGroupRepo()
	service := newTestGroupService(repo)
	ctx := context.Background()

	creator := primitive.NewObjectID()
	other := primitive.NewObjectID()

	group, err := service.CreateGroup(ctx, creator, "chess club", []primitive.ObjectID{other, creator, other})
	require.NoError(t, err)

	assert.Equal(t, []primitive.ObjectID{creator, other}, group.Members)

	_, err = service.CreateGroup(ctx, creator, "", nil)
	assert.True(t, apperr.IsKind(err, apperr.KindBadValues))
}

func TestSendRequest(t *testing.T) {
	repo := newMemGroupRepo()
	service := newTestGroupService(repo)
	ctx := context.Background()

	member := primitive.NewObjectID()
	outsider := primitive.NewObjectID()
	invitee := primitive.NewObjectID()

	group, err := service.CreateGroup(ctx, member, "book club", nil)
	require.NoError(t, err)

	// Inviting requires the inviter to already be a member.
	err = service.SendRequest(ctx, outsider, invitee, group.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindNotAllowed))

	require.NoError(t, service.SendRequest(ctx, member, invitee, group.ID))
	pending, err := repo.FindPending(ctx, invitee, group.ID)
	require.NoError(t, err)
	assert.True(t, pending.Invitation)

	// One pending request per (user, group).
	err = service.SendRequest(ctx, member, invitee, group.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindNotAllowed))

	// Asking to join your own group is not an invitation.
	require.NoError(t, service.SendRequest(ctx, outsider, outsider, group.ID))
	pending, err = repo.FindPending(ctx, outsider, group.ID)
	require.NoError(t, err)
	assert.False(t, pending.Invitation)
}

func TestDecisionAuthorization(t *testing.T) {
	ctx := context.Background()

	member := primitive.NewObjectID()
	invitee := primitive.NewObjectID()
	joiner := primitive.NewObjectID()
	outsider := primitive.NewObjectID()

	setup := func(t *testing.T) (*GroupServiceImpl, primitive.ObjectID) {
		repo := newMemGroupRepo()
		service := newTestGroupService(repo)
		group, err := service.CreateGroup(ctx, member, "hiking", nil)
		require.NoError(t, err)
		require.NoError(t, service.SendRequest(ctx, member, invitee, group.ID))
		require.NoError(t, service.SendRequest(ctx, joiner, joiner, group.ID))
		return service, group.ID
	}

	tests := []struct {
		name     string
		modifier primitive.ObjectID
		subject  primitive.ObjectID
		allowed  bool
	}{
		{"invitee decides own invitation", invitee, invitee, true},
		{"member cannot decide invitation", member, invitee, false},
		{"member decides join request", member, joiner, true},
		{"joiner cannot decide own join request", joiner, joiner, false},
		{"outsider cannot decide join request", outsider, joiner, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, groupID := setup(t)
			err := service.AcceptRequest(ctx, tt.modifier, tt.subject, groupID)
			if tt.allowed {
				assert.NoError(t, err)
			} else {
				assert.True(t, apperr.IsKind(err, apperr.KindNotAllowed))
			}
		})
	}
}

func TestAcceptRequestAddsMember(t *testing.T) {
	repo := newMemGroupRepo()
	service := newTestGroupService(repo)
	ctx := context.Background()

	member := primitive.NewObjectID()
	invitee := primitive.NewObjectID()

	group, err := service.CreateGroup(ctx, member, "running", nil)
	require.NoError(t, err)
	require.NoError(t, service.SendRequest(ctx, member, invitee, group.ID))
	require.NoError(t, service.AcceptRequest(ctx, invitee, invitee, group.ID))

	assert.Contains(t, repo.groups[group.ID].Members, invitee)

	// The pending record is replaced by a terminal one.
	_, err = repo.FindPending(ctx, invitee, group.ID)
	assert.ErrorIs(t, err, mongo.ErrNoDocuments)

	requests, err := repo.FindRequestsByUser(ctx, invitee)
	require.NoError(t, err)
	require.Len(t, requests, 1)
	assert.Equal(t, RequestStatusAccepted, requests[0].Status)

	// A new cycle is allowed after the terminal state.
	require.NoError(t, service.RemoveMember(ctx, member, group.ID, invitee))
	assert.NoError(t, service.SendRequest(ctx, member, invitee, group.ID))
}

func TestRejectRequestKeepsMembership(t *testing.T) {
	repo := newMemGroupRepo()
	service := newTestGroupService(repo)
	ctx := context.Background()

	member := primitive.NewObjectID()
	invitee := primitive.NewObjectID()

	group, err := service.CreateGroup(ctx, member, "cooking", nil)
	require.NoError(t, err)
	require.NoError(t, service.SendRequest(ctx, member, invitee, group.ID))
	require.NoError(t, service.RejectRequest(ctx, invitee, invitee, group.ID))

	assert.NotContains(t, repo.groups[group.ID].Members, invitee)

	requests, err := repo.FindRequestsByUser(ctx, invitee)
	require.NoError(t, err)
	require.Len(t, requests, 1)
	assert.Equal(t, RequestStatusRejected, requests[0].Status)
}

func TestDeleteGroupCascadesRequests(t *testing.T) {
	repo := newMemGroupRepo()
	service := newTestGroupService(repo)
	ctx := context.Background()

	member := primitive.NewObjectID()
	invitee := primitive.NewObjectID()

	group, err := service.CreateGroup(ctx, member, "sewing", nil)
	require.NoError(t, err)
	require.NoError(t, service.SendRequest(ctx, member, invitee, group.ID))
	require.NoError(t, service.DeleteGroup(ctx, member, group.ID))

	requests, err := repo.FindRequestsByGroup(ctx, group.ID)
	require.NoError(t, err)
	assert.Empty(t, requests)
}

func TestGetGroupsByName(t *testing.T) {
	repo := newMemGroupRepo()
	service := newTestGroupService(repo)
	ctx := context.Background()

	creator := primitive.NewObjectID()
	_, err := service.CreateGroup(ctx, creator, "gardening", nil)
	require.NoError(t, err)

	groups, err := service.GetGroups(ctx, "gardening")
	require.NoError(t, err)
	assert.Len(t, groups, 1)

	_, err = service.GetGroups(ctx, "no such group")
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}
