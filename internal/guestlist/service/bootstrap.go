package service

import (
	"context"
	"errors"

	"github.com/verdant-events/guestlist/internal/guestlist/domain"
	"github.com/verdant-events/guestlist/internal/guestlist/store"
	"github.com/verdant-events/guestlist/pkg/cryptox"
	"github.com/verdant-events/guestlist/pkg/slogx"
)

// ErrBootstrapUsername is returned when no bootstrap admin username is
// configured on an empty admin table.
var ErrBootstrapUsername = errors.New("service: bootstrap admin username is required")

// BootstrapService creates the first administrator on an empty database.
// There is deliberately no built-in default password: when none is
// configured a random one is generated and reported once so an operator can
// rotate it.
type BootstrapService struct {
	Store    store.Store
	Username string
	Password string
}

// EnsureAdmin creates the bootstrap admin if the admins table is empty.
// Returns whether an admin was created and, when the password had to be
// generated, the plaintext password for one-time operator pickup.
func (s *BootstrapService) EnsureAdmin(ctx context.Context) (created bool, generated string, err error) {
	log := slogx.FromContext(ctx)

	empty, err := s.Store.Admins().IsEmpty(ctx)
	if err != nil {
		return false, "", err
	}
	if !empty {
		return false, "", nil
	}

	if s.Username == "" {
		return false, "", ErrBootstrapUsername
	}

	password := s.Password
	if password == "" {
		password, err = cryptox.GeneratePassword()
		if err != nil {
			return false, "", err
		}
		generated = password
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return false, "", err
	}

	// Check-then-create runs in one transaction so two racing processes
	// cannot both seed an admin.
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		empty, err := tx.Admins().IsEmpty(ctx)
		if err != nil {
			return err
		}
		if !empty {
			return nil
		}

		_, err = tx.Admins().CreateAdmin(ctx, domain.Admin{
			Username:     s.Username,
			PasswordHash: hash,
		})
		if err != nil {
			return err
		}
		created = true
		return nil
	})
	if err != nil {
		return false, "", err
	}

	if created {
		log.Info("bootstrap admin created", "username", s.Username)
	}
	if !created {
		generated = ""
	}
	return created, generated, nil
}
