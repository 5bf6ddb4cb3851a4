package service

import (
	"context"
	"errors"

	"github.com/verdant-events/guestlist/internal/guestlist/domain"
	"github.com/verdant-events/guestlist/internal/guestlist/store"
)

var (
	// ErrAlreadySubmitted means the guest has already answered and the new
	// submission carries a different status.
	ErrAlreadySubmitted = errors.New("service: rsvp already submitted")

	// ErrInvalidSubmission covers an unknown status value or a negative
	// plus-one count.
	ErrInvalidSubmission = errors.New("service: invalid rsvp submission")
)

type RSVPService struct {
	Store store.Store
}

// SubmitRSVP records a guest's attendance response. Submissions are accepted
// unconditionally while the guest is still pending. Afterwards, resubmitting
// the same status is accepted as an idempotent update of the detail fields,
// but changing the answer is rejected.
func (s *RSVPService) SubmitRSVP(
	ctx context.Context,
	code string,
	upd domain.RSVPUpdate,
) (domain.Guest, error) {
	if !upd.Status.Valid() {
		return domain.Guest{}, ErrInvalidSubmission
	}
	if upd.PlusOneCount != nil && *upd.PlusOneCount < 0 {
		return domain.Guest{}, ErrInvalidSubmission
	}
	code = domain.NormalizeCode(code)

	g, err := s.Store.Guests().GetGuestByCode(ctx, code)
	if err != nil {
		return domain.Guest{}, err
	}

	if g.RSVPStatus != domain.RSVPPending && upd.Status != g.RSVPStatus {
		return domain.Guest{}, ErrAlreadySubmitted
	}

	updated, err := s.Store.Guests().UpdateGuestRSVP(ctx, code, upd)
	if errors.Is(err, store.ErrNotFound) {
		// Deleted between read and write; surface as not found.
		return domain.Guest{}, err
	}
	return updated, err
}
