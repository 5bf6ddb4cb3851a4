package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/verdant-events/guestlist/internal/guestlist/domain"
	"github.com/verdant-events/guestlist/internal/guestlist/service"
	"github.com/verdant-events/guestlist/internal/guestlist/store"
	"github.com/verdant-events/guestlist/pkg/httpx"
	"github.com/verdant-events/guestlist/pkg/slogx"
)

// RSVPHandler serves the public code-based endpoints: guest lookup and RSVP
// submission.
type RSVPHandler struct {
	GuestService *service.GuestService
	RSVPService  *service.RSVPService
}

func (h *RSVPHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)
	code := r.PathValue("code")

	guest, err := h.GuestService.GetGuestByCode(ctx, code)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httpx.WriteError(w, http.StatusNotFound, "not_found", "invalid invitation code")
			return
		}
		log.Error("guest lookup failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "could not look up guest")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toGuestResponse(guest))
}

type rsvpRequest struct {
	RSVPStatus          string  `json:"rsvp_status"`
	Notes               *string `json:"notes"`
	Email               *string `json:"email"`
	DietaryRestrictions *string `json:"dietary_restrictions"`
	IsFamily            *bool   `json:"is_family"`
	PlusOneCount        *int    `json:"plus_one_count"`
}

func (h *RSVPHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)
	code := r.PathValue("code")

	var body rsvpRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	guest, err := h.RSVPService.SubmitRSVP(ctx, code, domain.RSVPUpdate{
		Status:              domain.RSVPStatus(body.RSVPStatus),
		Notes:               body.Notes,
		Email:               body.Email,
		DietaryRestrictions: body.DietaryRestrictions,
		IsFamily:            body.IsFamily,
		PlusOneCount:        body.PlusOneCount,
	})
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			httpx.WriteError(w, http.StatusNotFound, "not_found", "invalid invitation code")
		case errors.Is(err, service.ErrAlreadySubmitted):
			httpx.WriteError(w, http.StatusBadRequest, "already_submitted", "RSVP already submitted")
		case errors.Is(err, service.ErrInvalidSubmission):
			httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "invalid rsvp_status or plus_one_count")
		default:
			log.Error("rsvp submit failed", "err", err)
			httpx.WriteError(w, http.StatusInternalServerError, "server_error", "could not submit RSVP")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toGuestResponse(guest))
}
