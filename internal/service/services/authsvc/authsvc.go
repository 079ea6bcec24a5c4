package authsvc

import (
	"context"
	"errors"
	"time"

	"github.com/chocobean/storefront/internal/auth"
	"github.com/chocobean/storefront/internal/dal/interfaces/iuserrepo"
	"github.com/chocobean/storefront/internal/service/models/user"
)

// AuthResult is a signed token plus the account it belongs to.
type AuthResult struct {
	Token     string
	ExpiresAt time.Time
	User      user.User
}

// AuthService handles signup and login. Identity verification on requests is
// the transport middleware's job; this service only issues tokens.
type AuthService struct {
	users iuserrepo.Repository
	jwt   *auth.JWTManager
}

// option is a function that configures the AuthService.
type option func(*AuthService)

// MustNewAuthService creates a new AuthService.
func MustNewAuthService(opts ...option) *AuthService {
	s := &AuthService{}
	for _, opt := range opts {
		opt(s)
	}
	if s.users == nil || s.jwt == nil {
		panic("authsvc: missing user repository or jwt manager")
	}

	return s
}

//goland:noinspection GoExportedFuncWithUnexportedType
func WithUserRepository(users iuserrepo.Repository) option {
	return func(s *AuthService) {
		s.users = users
	}
}

//goland:noinspection GoExportedFuncWithUnexportedType
func WithJWTManager(jwt *auth.JWTManager) option {
	return func(s *AuthService) {
		s.jwt = jwt
	}
}

// Register creates a new non-admin account and returns a fresh token.
func (s *AuthService) Register(ctx context.Context, userName, email, password string) (AuthResult, error) {
	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, user.ErrUserNotFound) {
		return AuthResult{}, err
	}
	if existing != nil {
		return AuthResult{}, user.ErrEmailTaken
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return AuthResult{}, err
	}

	u, err := s.users.Insert(ctx, user.User{
		UserName:     userName,
		Email:        email,
		PasswordHash: hash,
		IsAdmin:      false,
		Status:       user.DefaultStatus,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return AuthResult{}, err
	}

	return s.issue(u)
}

// Login verifies credentials and returns a fresh token. Unknown email and
// wrong password produce the same error.
func (s *AuthService) Login(ctx context.Context, email, password string) (AuthResult, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, user.ErrUserNotFound) {
		return AuthResult{}, user.ErrInvalidCredentials
	}
	if err != nil {
		return AuthResult{}, err
	}

	if !auth.CheckPassword(password, u.PasswordHash) {
		return AuthResult{}, user.ErrInvalidCredentials
	}

	return s.issue(*u)
}

func (s *AuthService) issue(u user.User) (AuthResult, error) {
	token, expiresAt, err := s.jwt.Generate(u.ID, u.Email, u.IsAdmin)
	if err != nil {
		return AuthResult{}, err
	}

	return AuthResult{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      u,
	}, nil
}
