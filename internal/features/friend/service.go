package friend

import (
	"context"

	"closetshare/internal/common/apperr"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// FriendService implements the friendship workflow. Requests follow the
// same lifecycle as group requests: a pending record is popped atomically
// and replaced with a terminal one, and accepting additionally creates the
// friendship itself.
type FriendService interface {
	SendRequest(ctx context.Context, from, to primitive.ObjectID) (*FriendRequest, error)
	AcceptRequest(ctx context.Context, to, from primitive.ObjectID) error
	RejectRequest(ctx context.Context, to, from primitive.ObjectID) error
	RemoveRequest(ctx context.Context, from, to primitive.ObjectID) error
	GetRequests(ctx context.Context, userID primitive.ObjectID) ([]FriendRequest, error)
	GetFriends(ctx context.Context, userID primitive.ObjectID) ([]primitive.ObjectID, error)
	RemoveFriend(ctx context.Context, userID, friendID primitive.ObjectID) error
}

type FriendServiceImpl struct {
	repo   FriendRepository
	logger *zap.Logger
}

func NewFriendService(repo FriendRepository, logger *zap.Logger) FriendService {
	return &FriendServiceImpl{repo: repo, logger: logger}
}

func (s *FriendServiceImpl) SendRequest(ctx context.Context, from, to primitive.ObjectID) (*FriendRequest, error) {
	if from == to {
		return nil, apperr.NotAllowed("Cannot send a friend request to yourself!")
	}

	friendship, err := s.repo.FindFriendship(ctx, from, to)
	if err != nil {
		return nil, err
	}
	if friendship != nil {
		return nil, apperr.NotAllowed("Users %s and %s are already friends!", from.Hex(), to.Hex())
	}

	pending, err := s.repo.FindPendingBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}
	if pending != nil {
		return nil, apperr.NotAllowed("Friend request between %s and %s already exists!", from.Hex(), to.Hex())
	}

	request := &FriendRequest{From: from, To: to, Status: RequestPending}
	if err := s.repo.CreateRequest(ctx, request); err != nil {
		return nil, err
	}

	s.logger.Info("friend request sent",
		zap.String("from", from.Hex()),
		zap.String("to", to.Hex()))
	return request, nil
}

// AcceptRequest is performed by the addressee. The pending request is
// consumed, recorded as accepted and the friendship created.
func (s *FriendServiceImpl) AcceptRequest(ctx context.Context, to, from primitive.ObjectID) error {
	popped, err := s.repo.PopPending(ctx, from, to)
	if err != nil {
		return err
	}
	if popped == nil {
		return apperr.NotFound("Friend request from %s to %s does not exist!", from.Hex(), to.Hex())
	}

	accepted := &FriendRequest{From: from, To: to, Status: RequestAccepted}
	if err := s.repo.CreateRequest(ctx, accepted); err != nil {
		return err
	}

	return s.repo.CreateFriendship(ctx, &Friendship{User1: from, User2: to})
}

func (s *FriendServiceImpl) RejectRequest(ctx context.Context, to, from primitive.ObjectID) error {
	popped, err := s.repo.PopPending(ctx, from, to)
	if err != nil {
		return err
	}
	if popped == nil {
		return apperr.NotFound("Friend request from %s to %s does not exist!", from.Hex(), to.Hex())
	}

	rejected := &FriendRequest{From: from, To: to, Status: RequestRejected}
	return s.repo.CreateRequest(ctx, rejected)
}

// RemoveRequest lets the sender withdraw a pending request.
func (s *FriendServiceImpl) RemoveRequest(ctx context.Context, from, to primitive.ObjectID) error {
	popped, err := s.repo.PopPending(ctx, from, to)
	if err != nil {
		return err
	}
	if popped == nil {
		return apperr.NotFound("Friend request from %s to %s does not exist!", from.Hex(), to.Hex())
	}
	return nil
}

func (s *FriendServiceImpl) GetRequests(ctx context.Context, userID primitive.ObjectID) ([]FriendRequest, error) {
	return s.repo.FindRequestsFor(ctx, userID)
}

// GetFriends resolves friendships to the other party's id.
func (s *FriendServiceImpl) GetFriends(ctx context.Context, userID primitive.ObjectID) ([]primitive.ObjectID, error) {
	friendships, err := s.repo.FindFriendsOf(ctx, userID)
	if err != nil {
		return nil, err
	}

	friends := make([]primitive.ObjectID, 0, len(friendships))
	for _, f := range friendships {
		if f.User1 == userID {
			friends = append(friends, f.User2)
		} else {
			friends = append(friends, f.User1)
		}
	}
	return friends, nil
}

func (s *FriendServiceImpl) RemoveFriend(ctx context.Context, userID, friendID primitive.ObjectID) error {
	friendship, err := s.repo.FindFriendship(ctx, userID, friendID)
	if err != nil {
		return err
	}
	if friendship == nil {
		return apperr.NotFound("Users %s and %s are not friends!", userID.Hex(), friendID.Hex())
	}
	return s.repo.DeleteFriendship(ctx, userID, friendID)
}
