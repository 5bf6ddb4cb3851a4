package service

import (
	"context"

	"github.com/verdant-events/guestlist/internal/guestlist/store"
	"github.com/verdant-events/guestlist/pkg/slogx"
)

// Messenger sends one text message to one phone number. Implemented by the
// WhatsApp client and by test doubles.
type Messenger interface {
	SendText(ctx context.Context, phone, text string) error
}

type BroadcastService struct {
	Store     store.Store
	Messenger Messenger
}

// Broadcast sends the message to every guest, one independent attempt per
// recipient: no retries, no batching. Failures are logged and counted but
// never escalate.
func (s *BroadcastService) Broadcast(ctx context.Context, message string) (sent, total int, err error) {
	log := slogx.FromContext(ctx)

	guests, err := s.Store.Guests().AllGuests(ctx)
	if err != nil {
		return 0, 0, err
	}

	for _, g := range guests {
		if err := s.Messenger.SendText(ctx, g.PhoneNumber, message); err != nil {
			log.Warn("broadcast send failed",
				"guest_id", g.ID,
				"phone", g.PhoneNumber,
				"err", err,
			)
			continue
		}
		sent++
	}
	return sent, len(guests), nil
}
