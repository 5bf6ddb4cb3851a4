package service

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"strings"

	"github.com/verdant-events/guestlist/internal/guestlist/domain"
	"github.com/verdant-events/guestlist/internal/guestlist/store"
	"github.com/verdant-events/guestlist/pkg/slogx"
)

// ErrInvalidGuest is returned when a guest is created without the required
// name or phone number.
var ErrInvalidGuest = errors.New("service: guest name and phone number are required")

const defaultListLimit = 100

type GuestService struct {
	Store store.Store
}

// CreateGuest inserts a new guest with a freshly generated unique code.
// Codes are regenerated on collision, bounded by maxCodeAttempts.
func (s *GuestService) CreateGuest(ctx context.Context, name, phone string) (domain.Guest, error) {
	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)
	if name == "" || phone == "" {
		return domain.Guest{}, ErrInvalidGuest
	}

	for range maxCodeAttempts {
		code, err := randomCode()
		if err != nil {
			return domain.Guest{}, err
		}

		g, err := s.Store.Guests().CreateGuest(ctx, domain.Guest{
			Name:        name,
			PhoneNumber: phone,
			UniqueCode:  code,
		})
		if errors.Is(err, store.ErrAlreadyExists) {
			// Collision with an existing code, draw again. The unique
			// index arbitrates concurrent creations.
			continue
		}
		if err != nil {
			return domain.Guest{}, err
		}
		return g, nil
	}
	return domain.Guest{}, ErrCodeSpaceExhausted
}

// GetGuestByCode looks a guest up by invitation code, tolerating surrounding
// whitespace and lower-case input.
func (s *GuestService) GetGuestByCode(ctx context.Context, code string) (domain.Guest, error) {
	return s.Store.Guests().GetGuestByCode(ctx, domain.NormalizeCode(code))
}

// ListGuests returns a page of guests. A non-positive limit falls back to
// the default page size.
func (s *GuestService) ListGuests(ctx context.Context, skip, limit int) ([]domain.Guest, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = defaultListLimit
	}
	return s.Store.Guests().ListGuests(ctx, skip, limit)
}

// DeleteGuest removes a guest by code. Returns false when the code is unknown.
func (s *GuestService) DeleteGuest(ctx context.Context, code string) (bool, error) {
	return s.Store.Guests().DeleteGuest(ctx, domain.NormalizeCode(code))
}

// SetInviteSent toggles the informational invite_sent flag.
func (s *GuestService) SetInviteSent(ctx context.Context, code string, sent bool) (domain.Guest, error) {
	return s.Store.Guests().SetInviteSent(ctx, domain.NormalizeCode(code), sent)
}

// ImportCSV bulk-creates guests from a CSV stream with header columns
// "name" and "phone_number". Rows missing either value are skipped.
// Returns the number of guests created.
func (s *GuestService) ImportCSV(ctx context.Context, r io.Reader) (int, error) {
	log := slogx.FromContext(ctx)

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // tolerate ragged rows; missing cells mean skip
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return 0, nil
		}
		return 0, err
	}

	nameCol, phoneCol := -1, -1
	for i, col := range header {
		switch strings.TrimSpace(strings.ToLower(col)) {
		case "name":
			nameCol = i
		case "phone_number":
			phoneCol = i
		}
	}
	if nameCol < 0 || phoneCol < 0 {
		// No usable columns means every row is skipped, not an error.
		return 0, nil
	}

	added := 0
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return added, err
		}

		name, phone := cell(row, nameCol), cell(row, phoneCol)
		if name == "" || phone == "" {
			continue
		}

		if _, err := s.CreateGuest(ctx, name, phone); err != nil {
			log.Warn("csv import: failed to create guest", "name", name, "err", err)
			continue
		}
		added++
	}
	return added, nil
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
