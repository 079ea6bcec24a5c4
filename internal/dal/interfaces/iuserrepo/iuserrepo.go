package iuserrepo

import (
	"context"

	"github.com/chocobean/storefront/internal/service/models/user"
)

// Repository is the persistence boundary for users and their profiles.
type Repository interface {
	Insert(ctx context.Context, u user.User) (user.User, error)
	GetById(ctx context.Context, id int64) (*user.User, error)
	GetByEmail(ctx context.Context, email string) (*user.User, error)
	GetAll(ctx context.Context) ([]user.User, error)
	UpdateStatus(ctx context.Context, id int64, status string) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)

	GetProfile(ctx context.Context, userId int64) (*user.Profile, error)
	UpsertProfile(ctx context.Context, p user.Profile) (user.Profile, error)
}
