package store

import (
	"context"
	"errors"

	"github.com/verdant-events/guestlist/internal/guestlist/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite for now)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable.
type Store interface {
	Guests() Guests
	Admins() Admins

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes a function within a transaction. If fn returns an
	// error, the transaction is rolled back; otherwise it is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Guests interface {
	// CreateGuest inserts a new guest with the given name, phone number and
	// unique code; the id is assigned by the store.
	CreateGuest(ctx context.Context, g domain.Guest) (domain.Guest, error)

	// GetGuestByID returns a guest by its numeric id.
	GetGuestByID(ctx context.Context, id int64) (domain.Guest, error)

	// GetGuestByCode returns a guest by its unique code. Callers must pass
	// a normalized code (domain.NormalizeCode).
	GetGuestByCode(ctx context.Context, code string) (domain.Guest, error)

	// GetGuestByDeviceID returns the guest linked to a device identifier,
	// matching either device slot.
	GetGuestByDeviceID(ctx context.Context, deviceID string) (domain.Guest, error)

	// ListGuests returns a page of guests ordered by id.
	ListGuests(ctx context.Context, offset, limit int) ([]domain.Guest, error)

	// AllGuests returns every guest. Used for broadcasts.
	AllGuests(ctx context.Context) ([]domain.Guest, error)

	// UpdateGuestRSVP sets the rsvp status and overwrites only the detail
	// fields present in the update.
	UpdateGuestRSVP(ctx context.Context, code string, upd domain.RSVPUpdate) (domain.Guest, error)

	// ClaimDeviceSlot atomically assigns deviceID to the given slot if, and
	// only if, the slot is still open and the device does not already hold
	// another slot. Returns false when the conditional write matched no row.
	ClaimDeviceSlot(ctx context.Context, code string, slot int, deviceID string) (bool, error)

	// DeleteGuest removes a guest. Returns false when no row matched.
	DeleteGuest(ctx context.Context, code string) (bool, error)

	// SetInviteSent toggles the informational invite_sent flag.
	SetInviteSent(ctx context.Context, code string, sent bool) (domain.Guest, error)

	// CountGuests returns the total number of guests.
	CountGuests(ctx context.Context) (int64, error)
}

type Admins interface {
	// GetAdminByUsername is used during password auth.
	GetAdminByUsername(ctx context.Context, username string) (domain.Admin, error)

	// CreateAdmin inserts a new administrator; the id is assigned by the store.
	CreateAdmin(ctx context.Context, a domain.Admin) (domain.Admin, error)

	// IsEmpty returns true if there are no admins (first-run bootstrap check).
	IsEmpty(ctx context.Context) (bool, error)
}
