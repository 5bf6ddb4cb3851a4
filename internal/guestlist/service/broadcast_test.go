package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeMessenger records recipients and fails for phone numbers in failFor.
type fakeMessenger struct {
	sentTo  []string
	failFor map[string]bool
}

func (m *fakeMessenger) SendText(_ context.Context, phone, _ string) error {
	if m.failFor[phone] {
		return errors.New("send failed")
	}
	m.sentTo = append(m.sentTo, phone)
	return nil
}

func TestBroadcast(t *testing.T) {
	ctx := context.Background()

	t.Run("sends to every guest", func(t *testing.T) {
		st := newTestStore(t)
		guests := &GuestService{Store: st}
		createTestGuest(t, guests, "Alice", "+15551230001")
		createTestGuest(t, guests, "Bob", "+15551230002")
		createTestGuest(t, guests, "Carol", "+15551230003")

		messenger := &fakeMessenger{}
		svc := &BroadcastService{Store: st, Messenger: messenger}

		sent, total, err := svc.Broadcast(ctx, "see you saturday")
		require.NoError(t, err)
		require.Equal(t, 3, sent)
		require.Equal(t, 3, total)
		require.ElementsMatch(t,
			[]string{"+15551230001", "+15551230002", "+15551230003"},
			messenger.sentTo,
		)
	})

	t.Run("individual failures reduce sent but not total", func(t *testing.T) {
		st := newTestStore(t)
		guests := &GuestService{Store: st}
		createTestGuest(t, guests, "Alice", "+15551230001")
		createTestGuest(t, guests, "Bob", "+15551230002")

		messenger := &fakeMessenger{failFor: map[string]bool{"+15551230002": true}}
		svc := &BroadcastService{Store: st, Messenger: messenger}

		sent, total, err := svc.Broadcast(ctx, "update")
		require.NoError(t, err)
		require.Equal(t, 1, sent)
		require.Equal(t, 2, total)
	})

	t.Run("empty guest list", func(t *testing.T) {
		st := newTestStore(t)
		svc := &BroadcastService{Store: st, Messenger: &fakeMessenger{}}

		sent, total, err := svc.Broadcast(ctx, "anyone there")
		require.NoError(t, err)
		require.Zero(t, sent)
		require.Zero(t, total)
	})
}
