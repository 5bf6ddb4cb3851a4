package domain

import (
	"strings"
	"time"
)

// RSVPStatus is a guest's attendance response.
type RSVPStatus string

const (
	RSVPPending   RSVPStatus = "pending"
	RSVPAttending RSVPStatus = "attending"
	RSVPDeclined  RSVPStatus = "declined"
)

// Valid reports whether the status is one of the known values.
func (s RSVPStatus) Valid() bool {
	switch s {
	case RSVPPending, RSVPAttending, RSVPDeclined:
		return true
	}
	return false
}

// DeviceSlots is the number of distinct devices that may claim a single
// invitation code. Conceived as "this household's two phones".
const DeviceSlots = 2

type Guest struct {
	ID          int64
	Name        string
	PhoneNumber string

	// UniqueCode is the 6-character public invitation code. Unique across
	// all guests and immutable after creation.
	UniqueCode string

	RSVPStatus RSVPStatus

	Email               *string
	DietaryRestrictions *string
	Notes               *string
	IsFamily            bool
	PlusOneCount        int

	// DeviceIDs holds the device identifiers that claimed this code, in
	// claim order. An empty string means the slot is still open.
	DeviceIDs [DeviceSlots]string

	InviteSent bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasDevice reports whether the given device identifier already holds one
// of the guest's slots.
func (g Guest) HasDevice(deviceID string) bool {
	for _, id := range g.DeviceIDs {
		if id != "" && id == deviceID {
			return true
		}
	}
	return false
}

// RSVPUpdate is a presence-tagged partial update applied on RSVP submission.
// A nil field is left untouched; a non-nil field overwrites, so clearing a
// value to empty is expressible.
type RSVPUpdate struct {
	Status RSVPStatus

	Notes               *string
	Email               *string
	DietaryRestrictions *string
	IsFamily            *bool
	PlusOneCount        *int
}

// NormalizeCode canonicalises an invitation code for lookup: codes are
// case-insensitive and whitespace-tolerant on input.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
