package service

import (
	"context"
	"strings"
	"testing"

	"github.com/verdant-events/guestlist/internal/guestlist/store"
	"github.com/stretchr/testify/require"
)

func TestClaimDevice(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	guests := &GuestService{Store: st}
	svc := &ClaimService{Store: st}

	code := createTestGuest(t, guests, "Alice", "+15551234567")

	t.Run("first device takes the first slot", func(t *testing.T) {
		g, err := svc.ClaimDevice(ctx, code, "phone-a")
		require.NoError(t, err)
		require.Equal(t, "phone-a", g.DeviceIDs[0])
		require.Empty(t, g.DeviceIDs[1])
	})

	t.Run("claiming again with the same device is idempotent", func(t *testing.T) {
		g, err := svc.ClaimDevice(ctx, code, "phone-a")
		require.NoError(t, err)
		require.Equal(t, "phone-a", g.DeviceIDs[0])
		require.Empty(t, g.DeviceIDs[1], "repeat claim must not consume the second slot")
	})

	t.Run("second device takes the second slot", func(t *testing.T) {
		g, err := svc.ClaimDevice(ctx, code, "phone-b")
		require.NoError(t, err)
		require.Equal(t, "phone-a", g.DeviceIDs[0])
		require.Equal(t, "phone-b", g.DeviceIDs[1])
	})

	t.Run("either holder may still re-validate", func(t *testing.T) {
		for _, device := range []string{"phone-a", "phone-b"} {
			g, err := svc.ClaimDevice(ctx, code, device)
			require.NoError(t, err)
			require.True(t, g.HasDevice(device))
		}
	})

	t.Run("third device is rejected", func(t *testing.T) {
		_, err := svc.ClaimDevice(ctx, code, "phone-c")
		require.ErrorIs(t, err, ErrClaimRejected)
	})

	t.Run("code is normalised before lookup", func(t *testing.T) {
		g, err := svc.ClaimDevice(ctx, " "+strings.ToLower(code), "phone-a")
		require.NoError(t, err)
		require.Equal(t, code, g.UniqueCode)
	})

	t.Run("unknown code", func(t *testing.T) {
		_, err := svc.ClaimDevice(ctx, "NOPE99", "phone-a")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("empty device id", func(t *testing.T) {
		_, err := svc.ClaimDevice(ctx, code, "")
		require.ErrorIs(t, err, ErrInvalidDevice)
	})
}

func TestClaimDeviceSlotRace(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	guests := &GuestService{Store: st}
	svc := &ClaimService{Store: st}

	code := createTestGuest(t, guests, "Alice", "+15551234567")

	// Simulate losing the race for slot 0: another device lands in it
	// between this service's read and write. The conditional update fails
	// and the retry settles the late device into slot 1.
	taken, err := st.Guests().ClaimDeviceSlot(ctx, code, 0, "phone-fast")
	require.NoError(t, err)
	require.True(t, taken)

	g, err := svc.ClaimDevice(ctx, code, "phone-slow")
	require.NoError(t, err)
	require.Equal(t, "phone-fast", g.DeviceIDs[0])
	require.Equal(t, "phone-slow", g.DeviceIDs[1])
}

func TestValidateDevice(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	guests := &GuestService{Store: st}
	svc := &ClaimService{Store: st}

	code := createTestGuest(t, guests, "Alice", "+15551234567")
	_, err := svc.ClaimDevice(ctx, code, "phone-a")
	require.NoError(t, err)
	_, err = svc.ClaimDevice(ctx, code, "phone-b")
	require.NoError(t, err)

	t.Run("matches either slot", func(t *testing.T) {
		for _, device := range []string{"phone-a", "phone-b"} {
			g, err := svc.ValidateDevice(ctx, device)
			require.NoError(t, err)
			require.Equal(t, code, g.UniqueCode)
		}
	})

	t.Run("unknown device", func(t *testing.T) {
		_, err := svc.ValidateDevice(ctx, "phone-x")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("empty device id", func(t *testing.T) {
		_, err := svc.ValidateDevice(ctx, "")
		require.ErrorIs(t, err, ErrInvalidDevice)
	})
}
