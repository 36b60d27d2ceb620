package auth

import (
	"context"

	"closetshare/internal/features/store"
	"closetshare/internal/features/user"
	"closetshare/pkg/utils"
)

type AuthService interface {
	Register(ctx context.Context, username, password string) (*user.User, error)
	Login(ctx context.Context, username, password string) (string, error)
}

type AuthServiceImpl struct {
	UserService  user.UserService
	StoreService store.StoreService
}

func NewAuthService(userService user.UserService, storeService store.StoreService) AuthService {
	return &AuthServiceImpl{
		UserService:  userService,
		StoreService: storeService,
	}
}

// Register creates the account and its storefront in one flow. Every user
// owns exactly one store from the moment they sign up.
func (s *AuthServiceImpl) Register(ctx context.Context, username, password string) (*user.User, error) {
	newUser, err := s.UserService.Register(ctx, username, password)
	if err != nil {
		return nil, err
	}

	if _, err := s.StoreService.CreateStore(ctx, newUser.ID); err != nil {
		return nil, err
	}

	return newUser, nil
}

func (s *AuthServiceImpl) Login(ctx context.Context, username, password string) (string, error) {
	usr, err := s.UserService.Authenticate(ctx, username, password)
	if err != nil {
		return "", err
	}

	return utils.GenerateToken(usr.ID, usr.Username)
}
