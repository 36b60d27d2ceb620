package group

import (
	"context"
	"errors"

	"closetshare/internal/common/apperr"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type GroupService interface {
	CreateGroup(ctx context.Context, creator primitive.ObjectID, name string, otherMembers []primitive.ObjectID) (*Group, error)
	AddMember(ctx context.Context, modifier, groupID, memberID primitive.ObjectID) error
	RemoveMember(ctx context.Context, modifier, groupID, memberID primitive.ObjectID) error
	UpdateName(ctx context.Context, modifier, groupID primitive.ObjectID, name string) error
	DeleteGroup(ctx context.Context, modifier, groupID primitive.ObjectID) error
	GetGroups(ctx context.Context, name string) ([]Group, error)
	GetGroupByID(ctx context.Context, groupID primitive.ObjectID) (*Group, error)
	GetGroupsByMember(ctx context.Context, memberID primitive.ObjectID) ([]Group, error)
	GetRequestsByUser(ctx context.Context, userID primitive.ObjectID) ([]GroupRequest, error)
	GetRequestsByGroup(ctx context.Context, groupID primitive.ObjectID) ([]GroupRequest, error)
	SendRequest(ctx context.Context, creator, userID, groupID primitive.ObjectID) error
	AcceptRequest(ctx context.Context, modifier, userID, groupID primitive.ObjectID) error
	RejectRequest(ctx context.Context, modifier, userID, groupID primitive.ObjectID) error
	RemoveRequest(ctx context.Context, userID, groupID primitive.ObjectID) error
}

type GroupServiceImpl struct {
	repo   GroupRepository
	logger *zap.Logger
}

func NewGroupService(repo GroupRepository, logger *zap.Logger) GroupService {
	return &GroupServiceImpl{repo: repo, logger: logger}
}

// CreateGroup creates a group whose member set is otherMembers plus the
// creator. The creator is always an initial member.
func (s *GroupServiceImpl) CreateGroup(ctx context.Context, creator primitive.ObjectID, name string, otherMembers []primitive.ObjectID) (*Group, error) {
	if name == "" {
		return nil, apperr.BadValues("Group name cannot be empty!")
	}

	members := []primitive.ObjectID{creator}
	for _, m := range otherMembers {
		if !containsID(members, m) {
			members = append(members, m)
		}
	}

	group := &Group{Name: name, Members: members}
	if err := s.repo.Create(ctx, group); err != nil {
		return nil, err
	}

	s.logger.Info("group created", zap.String("group", group.ID.Hex()))
	return group, nil
}

func (s *GroupServiceImpl) AddMember(ctx context.Context, modifier, groupID, memberID primitive.ObjectID) error {
	if err := s.canModifyGroup(ctx, modifier, groupID); err != nil {
		return err
	}
	return s.repo.AddMember(ctx, groupID, memberID)
}

// RemoveMember filters memberID out of the member set. Removing someone who
// is not a member is a no-op success.
func (s *GroupServiceImpl) RemoveMember(ctx context.Context, modifier, groupID, memberID primitive.ObjectID) error {
	if err := s.canModifyGroup(ctx, modifier, groupID); err != nil {
		return err
	}
	return s.repo.RemoveMember(ctx, groupID, memberID)
}

func (s *GroupServiceImpl) UpdateName(ctx context.Context, modifier, groupID primitive.ObjectID, name string) error {
	if name == "" {
		return apperr.BadValues("Group name cannot be empty!")
	}
	if err := s.canModifyGroup(ctx, modifier, groupID); err != nil {
		return err
	}
	return s.repo.UpdateName(ctx, groupID, name)
}

// DeleteGroup removes the group and cascades to its outstanding requests so
// no request can reference a group that no longer exists.
func (s *GroupServiceImpl) DeleteGroup(ctx context.Context, modifier, groupID primitive.ObjectID) error {
	if err := s.canModifyGroup(ctx, modifier, groupID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, groupID); err != nil {
		return err
	}
	return s.repo.DeleteRequestsByGroup(ctx, groupID)
}

// GetGroups returns all groups, or the groups named name when it is
// non-empty. A named lookup that matches nothing is a NotFound.
func (s *GroupServiceImpl) GetGroups(ctx context.Context, name string) ([]Group, error) {
	if name == "" {
		return s.repo.FindAll(ctx)
	}

	groups, err := s.repo.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if len(groups) == 0 {
		return nil, apperr.NotFound("The group with name %s does not exist!", name)
	}
	return groups, nil
}

func (s *GroupServiceImpl) GetGroupByID(ctx context.Context, groupID primitive.ObjectID) (*Group, error) {
	group, err := s.repo.FindByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("The group with id %s does not exist!", groupID.Hex())
		}
		return nil, err
	}
	return group, nil
}

func (s *GroupServiceImpl) GetGroupsByMember(ctx context.Context, memberID primitive.ObjectID) ([]Group, error) {
	return s.repo.FindByMember(ctx, memberID)
}

func (s *GroupServiceImpl) GetRequestsByUser(ctx context.Context, userID primitive.ObjectID) ([]GroupRequest, error) {
	return s.repo.FindRequestsByUser(ctx, userID)
}

func (s *GroupServiceImpl) GetRequestsByGroup(ctx context.Context, groupID primitive.ObjectID) ([]GroupRequest, error) {
	return s.repo.FindRequestsByGroup(ctx, groupID)
}

// SendRequest creates a pending membership request. When creator and user
// differ the request is an invitation and the creator must already be a
// member; when they match the user is asking to join. At most one pending
// request may exist per (user, group) pair.
func (s *GroupServiceImpl) SendRequest(ctx context.Context, creator, userID, groupID primitive.ObjectID) error {
	invitation := creator != userID

	group, err := s.repo.FindByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return apperr.NotFound("The group with id %s does not exist!", groupID.Hex())
		}
		return err
	}
	if invitation && !containsID(group.Members, creator) {
		return apperr.NotAllowed("User %s is not allowed to perform this action on group %s", creator.Hex(), groupID.Hex())
	}

	if _, err := s.repo.FindPending(ctx, userID, groupID); err == nil {
		return apperr.NotAllowed("Request for %s to join group %s already exists!", userID.Hex(), groupID.Hex())
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return err
	}

	return s.repo.CreateRequest(ctx, &GroupRequest{
		User:       userID,
		GroupID:    groupID,
		Invitation: invitation,
		Status:     RequestStatusPending,
	})
}

// AcceptRequest pops the pending request, records the accepted decision and
// adds the user to the group.
func (s *GroupServiceImpl) AcceptRequest(ctx context.Context, modifier, userID, groupID primitive.ObjectID) error {
	if err := s.canModifyRequest(ctx, modifier, userID, groupID); err != nil {
		return err
	}

	pending, err := s.popPending(ctx, userID, groupID)
	if err != nil {
		return err
	}

	if err := s.repo.CreateRequest(ctx, &GroupRequest{
		User:       userID,
		GroupID:    groupID,
		Invitation: pending.Invitation,
		Status:     RequestStatusAccepted,
	}); err != nil {
		return err
	}

	return s.repo.AddMember(ctx, groupID, userID)
}

// RejectRequest pops the pending request and records the rejected decision.
// The group's member set is unchanged.
func (s *GroupServiceImpl) RejectRequest(ctx context.Context, modifier, userID, groupID primitive.ObjectID) error {
	if err := s.canModifyRequest(ctx, modifier, userID, groupID); err != nil {
		return err
	}

	pending, err := s.popPending(ctx, userID, groupID)
	if err != nil {
		return err
	}

	return s.repo.CreateRequest(ctx, &GroupRequest{
		User:       userID,
		GroupID:    groupID,
		Invitation: pending.Invitation,
		Status:     RequestStatusRejected,
	})
}

// RemoveRequest withdraws the pending request without recording a decision.
// No authorization is checked here: callers gate access.
func (s *GroupServiceImpl) RemoveRequest(ctx context.Context, userID, groupID primitive.ObjectID) error {
	_, err := s.popPending(ctx, userID, groupID)
	return err
}

// canModifyRequest enforces the decision authorization matrix: the subject
// of an invitation decides it themself; a join request is decided by an
// existing member other than the subject.
func (s *GroupServiceImpl) canModifyRequest(ctx context.Context, modifier, userID, groupID primitive.ObjectID) error {
	request, err := s.repo.FindPending(ctx, userID, groupID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return apperr.NotFound("Request for %s to join group %s does not exist!", userID.Hex(), groupID.Hex())
		}
		return err
	}

	if request.Invitation {
		if modifier != userID {
			return apperr.NotAllowed("User %s is not allowed to perform this action on group %s", modifier.Hex(), groupID.Hex())
		}
		return nil
	}

	if modifier == userID {
		return apperr.NotAllowed("User %s is not allowed to perform this action on group %s", modifier.Hex(), groupID.Hex())
	}
	return s.canModifyGroup(ctx, modifier, groupID)
}

func (s *GroupServiceImpl) popPending(ctx context.Context, userID, groupID primitive.ObjectID) (*GroupRequest, error) {
	request, err := s.repo.PopPending(ctx, userID, groupID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("Request for %s to join group %s does not exist!", userID.Hex(), groupID.Hex())
		}
		return nil, err
	}
	return request, nil
}

func (s *GroupServiceImpl) canModifyGroup(ctx context.Context, modifier, groupID primitive.ObjectID) error {
	group, err := s.repo.FindByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return apperr.NotFound("The group with id %s does not exist!", groupID.Hex())
		}
		return err
	}
	if !containsID(group.Members, modifier) {
		return apperr.NotAllowed("User %s is not allowed to perform this action on group %s", modifier.Hex(), groupID.Hex())
	}
	return nil
}

func containsID(ids []primitive.ObjectID, id primitive.ObjectID) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
