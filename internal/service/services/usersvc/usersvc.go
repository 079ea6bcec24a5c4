package usersvc

import (
	"context"

	"github.com/chocobean/storefront/internal/dal/interfaces/iuserrepo"
	"github.com/chocobean/storefront/internal/service/models/user"
)

// UserService covers user lookup, deletion, profile upsert and the admin
// user-status update.
type UserService struct {
	users iuserrepo.Repository
}

// option is a function that configures the UserService.
type option func(*UserService)

// MustNewUserService creates a new UserService.
func MustNewUserService(opts ...option) *UserService {
	s := &UserService{}
	for _, opt := range opts {
		opt(s)
	}
	if s.users == nil {
		panic("usersvc: missing user repository")
	}

	return s
}

//goland:noinspection GoExportedFuncWithUnexportedType
func WithUserRepository(users iuserrepo.Repository) option {
	return func(s *UserService) {
		s.users = users
	}
}

// Get retrieves one user by id.
func (s *UserService) Get(ctx context.Context, id int64) (*user.User, error) {
	return s.users.GetById(ctx, id)
}

// GetAll retrieves every user, for the admin dashboard.
func (s *UserService) GetAll(ctx context.Context) ([]user.User, error) {
	return s.users.GetAll(ctx)
}

// Delete removes a user account. Orders, profile and sent messages follow
// via cascade; messages addressed to the account block the delete.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	ok, err := s.users.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return user.ErrUserNotFound
	}

	return nil
}

// UpdateStatus overwrites the free-text status of a user.
func (s *UserService) UpdateStatus(ctx context.Context, id int64, status string) (*user.User, error) {
	ok, err := s.users.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, user.ErrUserNotFound
	}

	return s.users.GetById(ctx, id)
}

// GetProfile retrieves the profile of a user; nil when none was saved yet.
func (s *UserService) GetProfile(ctx context.Context, userID int64) (*user.Profile, error) {
	return s.users.GetProfile(ctx, userID)
}

// UpsertProfile creates or replaces the profile of a user.
func (s *UserService) UpsertProfile(ctx context.Context, userID int64, p user.Profile) (user.Profile, error) {
	if _, err := s.users.GetById(ctx, userID); err != nil {
		return user.Profile{}, err
	}

	p.UserID = userID

	return s.users.UpsertProfile(ctx, p)
}
