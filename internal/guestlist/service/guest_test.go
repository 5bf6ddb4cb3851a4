package service

import (
	"context"
	"strings"
	"testing"

	"github.com/verdant-events/guestlist/internal/guestlist/domain"
	"github.com/verdant-events/guestlist/internal/guestlist/store"
	"github.com/stretchr/testify/require"
)

func TestRandomCode(t *testing.T) {
	t.Parallel()

	seen := make(map[string]struct{})
	for range 200 {
		code, err := randomCode()
		require.NoError(t, err)
		require.True(t, validCode(code), "generated code %q violates code format", code)
		seen[code] = struct{}{}
	}

	// 200 draws from a ~2.2e9 space should never collide.
	require.Len(t, seen, 200)
}

func TestValidCode(t *testing.T) {
	t.Parallel()

	require.True(t, validCode("AB12CD"))
	require.True(t, validCode("ZZZZZZ"))
	require.True(t, validCode("000000"))

	require.False(t, validCode("AB12C"), "too short")
	require.False(t, validCode("AB12CDE"), "too long")
	require.False(t, validCode("ab12cd"), "lowercase")
	require.False(t, validCode("AB-2CD"), "punctuation")
	require.False(t, validCode(""))
}

func TestCreateGuest(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &GuestService{Store: st}

	t.Run("creates guest with fresh code and pending status", func(t *testing.T) {
		g, err := svc.CreateGuest(ctx, "Alice", "+15551234567")
		require.NoError(t, err)
		require.NotZero(t, g.ID)
		require.Equal(t, "Alice", g.Name)
		require.Equal(t, "+15551234567", g.PhoneNumber)
		require.True(t, validCode(g.UniqueCode))
		require.Equal(t, domain.RSVPPending, g.RSVPStatus)
		require.False(t, g.InviteSent)
		require.Zero(t, g.PlusOneCount)
		require.Empty(t, g.DeviceIDs[0])
		require.Empty(t, g.DeviceIDs[1])
	})

	t.Run("trims surrounding whitespace", func(t *testing.T) {
		g, err := svc.CreateGuest(ctx, "  Bob ", " +15550000001 ")
		require.NoError(t, err)
		require.Equal(t, "Bob", g.Name)
		require.Equal(t, "+15550000001", g.PhoneNumber)
	})

	t.Run("rejects missing name or phone", func(t *testing.T) {
		_, err := svc.CreateGuest(ctx, "", "+15551234567")
		require.ErrorIs(t, err, ErrInvalidGuest)

		_, err = svc.CreateGuest(ctx, "Alice", "")
		require.ErrorIs(t, err, ErrInvalidGuest)

		_, err = svc.CreateGuest(ctx, "   ", "   ")
		require.ErrorIs(t, err, ErrInvalidGuest)
	})

	t.Run("codes are unique across guests", func(t *testing.T) {
		codes := make(map[string]struct{})
		for range 50 {
			g, err := svc.CreateGuest(ctx, "Guest", "+15559999999")
			require.NoError(t, err)
			_, dup := codes[g.UniqueCode]
			require.False(t, dup, "duplicate code %q", g.UniqueCode)
			codes[g.UniqueCode] = struct{}{}
		}
	})
}

func TestGetGuestByCode(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &GuestService{Store: st}

	code := createTestGuest(t, svc, "Alice", "+15551234567")

	t.Run("exact code", func(t *testing.T) {
		g, err := svc.GetGuestByCode(ctx, code)
		require.NoError(t, err)
		require.Equal(t, "Alice", g.Name)
	})

	t.Run("lowercase and whitespace tolerated", func(t *testing.T) {
		g, err := svc.GetGuestByCode(ctx, "  "+strings.ToLower(code)+"\n")
		require.NoError(t, err)
		require.Equal(t, code, g.UniqueCode)
	})

	t.Run("unknown code", func(t *testing.T) {
		_, err := svc.GetGuestByCode(ctx, "NOPE99")
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestListGuests(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &GuestService{Store: st}

	for range 5 {
		createTestGuest(t, svc, "Guest", "+15551230000")
	}

	t.Run("pagination", func(t *testing.T) {
		page, err := svc.ListGuests(ctx, 0, 3)
		require.NoError(t, err)
		require.Len(t, page, 3)

		rest, err := svc.ListGuests(ctx, 3, 3)
		require.NoError(t, err)
		require.Len(t, rest, 2)
	})

	t.Run("non-positive limit falls back to default", func(t *testing.T) {
		all, err := svc.ListGuests(ctx, 0, 0)
		require.NoError(t, err)
		require.Len(t, all, 5)
	})

	t.Run("negative skip treated as zero", func(t *testing.T) {
		all, err := svc.ListGuests(ctx, -10, 10)
		require.NoError(t, err)
		require.Len(t, all, 5)
	})
}

func TestDeleteGuest(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &GuestService{Store: st}

	code := createTestGuest(t, svc, "Alice", "+15551234567")

	t.Run("deletes existing guest", func(t *testing.T) {
		deleted, err := svc.DeleteGuest(ctx, strings.ToLower(code))
		require.NoError(t, err)
		require.True(t, deleted)

		_, err = svc.GetGuestByCode(ctx, code)
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("unknown code reports not deleted", func(t *testing.T) {
		deleted, err := svc.DeleteGuest(ctx, "NOPE99")
		require.NoError(t, err)
		require.False(t, deleted)
	})
}

func TestSetInviteSent(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &GuestService{Store: st}

	code := createTestGuest(t, svc, "Alice", "+15551234567")

	g, err := svc.SetInviteSent(ctx, code, true)
	require.NoError(t, err)
	require.True(t, g.InviteSent)

	g, err = svc.SetInviteSent(ctx, code, false)
	require.NoError(t, err)
	require.False(t, g.InviteSent)

	_, err = svc.SetInviteSent(ctx, "NOPE99", true)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestImportCSV(t *testing.T) {
	ctx := context.Background()

	t.Run("imports well formed rows", func(t *testing.T) {
		st := newTestStore(t)
		svc := &GuestService{Store: st}

		csv := "name,phone_number\nAlice,+15551230001\nBob,+15551230002\n"
		added, err := svc.ImportCSV(ctx, strings.NewReader(csv))
		require.NoError(t, err)
		require.Equal(t, 2, added)

		guests, err := svc.ListGuests(ctx, 0, 10)
		require.NoError(t, err)
		require.Len(t, guests, 2)
		for _, g := range guests {
			require.True(t, validCode(g.UniqueCode))
			require.Equal(t, domain.RSVPPending, g.RSVPStatus)
		}
	})

	t.Run("skips rows missing name or phone", func(t *testing.T) {
		st := newTestStore(t)
		svc := &GuestService{Store: st}

		csv := "name,phone_number\nBob,+15550001111\nNoPhone,\n,+15550002222\n"
		added, err := svc.ImportCSV(ctx, strings.NewReader(csv))
		require.NoError(t, err)
		require.Equal(t, 1, added)

		guests, err := svc.ListGuests(ctx, 0, 10)
		require.NoError(t, err)
		require.Len(t, guests, 1)
		require.Equal(t, "Bob", guests[0].Name)
	})

	t.Run("extra columns and any order", func(t *testing.T) {
		st := newTestStore(t)
		svc := &GuestService{Store: st}

		csv := "email,phone_number,name\nx@y.z,+15550003333,Carol\n"
		added, err := svc.ImportCSV(ctx, strings.NewReader(csv))
		require.NoError(t, err)
		require.Equal(t, 1, added)
	})

	t.Run("missing required headers imports nothing", func(t *testing.T) {
		st := newTestStore(t)
		svc := &GuestService{Store: st}

		added, err := svc.ImportCSV(ctx, strings.NewReader("first,last\nA,B\n"))
		require.NoError(t, err)
		require.Zero(t, added)
	})

	t.Run("empty input", func(t *testing.T) {
		st := newTestStore(t)
		svc := &GuestService{Store: st}

		added, err := svc.ImportCSV(ctx, strings.NewReader(""))
		require.NoError(t, err)
		require.Zero(t, added)
	})

	t.Run("ragged rows are tolerated", func(t *testing.T) {
		st := newTestStore(t)
		svc := &GuestService{Store: st}

		csv := "name,phone_number\nShortRow\nDave,+15550004444\n"
		added, err := svc.ImportCSV(ctx, strings.NewReader(csv))
		require.NoError(t, err)
		require.Equal(t, 1, added)
	})
}
