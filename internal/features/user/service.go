package user

import (
	"context"
	"errors"

	"closetshare/internal/common/apperr"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// DeletedUsername is substituted when a referenced user no longer exists.
const DeletedUsername = "DELETED_USER"

type UserService interface {
	Register(ctx context.Context, username, password string) (*User, error)
	Authenticate(ctx context.Context, username, password string) (*User, error)
	GetUserByID(ctx context.Context, id primitive.ObjectID) (*User, error)
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	GetUsers(ctx context.Context) ([]User, error)
	UpdateUser(ctx context.Context, id primitive.ObjectID, username, password string) error
	DeleteUser(ctx context.Context, id primitive.ObjectID) error
	IDsToUsernames(ctx context.Context, ids []primitive.ObjectID) ([]string, error)
}

type UserServiceImpl struct {
	repo UserRepository
}

func NewUserService(repo UserRepository) UserService {
	return &UserServiceImpl{repo: repo}
}

func (s *UserServiceImpl) Register(ctx context.Context, username, password string) (*User, error) {
	if username == "" || password == "" {
		return nil, apperr.BadValues("Username and password must be non-empty!")
	}

	if _, err := s.repo.FindByUsername(ctx, username); err == nil {
		return nil, apperr.NotAllowed("User with username %s already exists!", username)
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &User{Username: username, Password: string(hash)}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserServiceImpl) Authenticate(ctx context.Context, username, password string) (*User, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotAllowed("Username or password is incorrect.")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, apperr.NotAllowed("Username or password is incorrect.")
	}
	return user, nil
}

func (s *UserServiceImpl) GetUserByID(ctx context.Context, id primitive.ObjectID) (*User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("User not found!")
		}
		return nil, err
	}
	return user, nil
}

func (s *UserServiceImpl) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("User %s not found!", username)
		}
		return nil, err
	}
	return user, nil
}

func (s *UserServiceImpl) GetUsers(ctx context.Context) ([]User, error) {
	return s.repo.FindAll(ctx)
}

func (s *UserServiceImpl) UpdateUser(ctx context.Context, id primitive.ObjectID, username, password string) error {
	fields := bson.M{}
	if username != "" {
		existing, err := s.repo.FindByUsername(ctx, username)
		if err == nil && existing.ID != id {
			return apperr.NotAllowed("User with username %s already exists!", username)
		} else if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
			return err
		}
		fields["username"] = username
	}
	if password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		fields["password"] = string(hash)
	}
	if len(fields) == 0 {
		return apperr.BadValues("Nothing to update!")
	}
	return s.repo.Update(ctx, id, fields)
}

func (s *UserServiceImpl) DeleteUser(ctx context.Context, id primitive.ObjectID) error {
	return s.repo.Delete(ctx, id)
}

// IDsToUsernames resolves ids to usernames in one query, preserving input
// order. Missing users resolve to DeletedUsername.
func (s *UserServiceImpl) IDsToUsernames(ctx context.Context, ids []primitive.ObjectID) ([]string, error) {
	if len(ids) == 0 {
		return []string{}, nil
	}

	users, err := s.repo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[primitive.ObjectID]string, len(users))
	for _, u := range users {
		byID[u.ID] = u.Username
	}

	names := make([]string, len(ids))
	for i, id := range ids {
		if name, ok := byID[id]; ok {
			names[i] = name
		} else {
			names[i] = DeletedUsername
		}
	}
	return names, nil
}
