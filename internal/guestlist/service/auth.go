package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/verdant-events/guestlist/internal/guestlist/domain"
	"github.com/verdant-events/guestlist/internal/guestlist/store"
	"github.com/verdant-events/guestlist/pkg/cryptox"
	"github.com/verdant-events/guestlist/pkg/jwtx"
)

// ErrInvalidCredentials covers both an unknown username and a wrong
// password; callers cannot distinguish the two.
var ErrInvalidCredentials = errors.New("service: invalid username or password")

type AuthService struct {
	Store    store.Store
	Tokens   *jwtx.HS256
	TokenTTL time.Duration
}

// Authenticate validates admin credentials and returns the admin identity.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (domain.Admin, error) {
	admin, err := s.Store.Admins().GetAdminByUsername(ctx, username)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Admin{}, ErrInvalidCredentials
	}
	if err != nil {
		return domain.Admin{}, err
	}

	if err := cryptox.VerifyPassword(password, admin.PasswordHash); err != nil {
		return domain.Admin{}, ErrInvalidCredentials
	}
	return admin, nil
}

// IssueToken produces a bearer token for an authenticated admin.
func (s *AuthService) IssueToken(admin domain.Admin) (token string, expiresIn time.Duration, err error) {
	ttl := s.TokenTTL
	if ttl <= 0 {
		ttl = jwtx.DefaultTokenTTL
	}
	token, err = s.Tokens.Sign(admin.Username, ttl)
	return token, ttl, err
}

// CreateAdmin registers a new administrator with a hashed password.
func (s *AuthService) CreateAdmin(ctx context.Context, username, password string) (domain.Admin, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return domain.Admin{}, ErrInvalidCredentials
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return domain.Admin{}, err
	}
	return s.Store.Admins().CreateAdmin(ctx, domain.Admin{
		Username:     username,
		PasswordHash: hash,
	})
}
