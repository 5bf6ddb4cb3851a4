package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/verdant-events/guestlist/internal/guestlist/service"
	"github.com/verdant-events/guestlist/internal/guestlist/store"
	"github.com/verdant-events/guestlist/pkg/httpx"
	"github.com/verdant-events/guestlist/pkg/slogx"
)

// GuestsHandler serves the admin-only guest management endpoints.
type GuestsHandler struct {
	GuestService *service.GuestService
}

func (h *GuestsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var body struct {
		Name        string `json:"name"`
		PhoneNumber string `json:"phone_number"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	guest, err := h.GuestService.CreateGuest(ctx, body.Name, body.PhoneNumber)
	if err != nil {
		if errors.Is(err, service.ErrInvalidGuest) {
			httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "name and phone_number are required")
			return
		}
		log.Error("guest create failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "could not create guest")
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toGuestResponse(guest))
}

func (h *GuestsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	skip := queryInt(r, "skip", 0)
	limit := queryInt(r, "limit", 0)

	guests, err := h.GuestService.ListGuests(ctx, skip, limit)
	if err != nil {
		log.Error("guest list failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "could not list guests")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toGuestResponses(guests))
}

func (h *GuestsHandler) HandleMarkSent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)
	code := r.PathValue("code")

	// Body is optional; a missing or empty body means sent=true.
	sent := true
	var body struct {
		Sent *bool `json:"sent"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err == nil && body.Sent != nil {
		sent = *body.Sent
	}

	guest, err := h.GuestService.SetInviteSent(ctx, code, sent)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httpx.WriteError(w, http.StatusNotFound, "not_found", "invalid invitation code")
			return
		}
		log.Error("mark-sent failed", "code", code, "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "could not update guest")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toGuestResponse(guest))
}

func (h *GuestsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)
	code := r.PathValue("code")

	deleted, err := h.GuestService.DeleteGuest(ctx, code)
	if err != nil {
		log.Error("guest delete failed", "code", code, "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "could not delete guest")
		return
	}
	if !deleted {
		httpx.WriteError(w, http.StatusNotFound, "not_found", "invalid invitation code")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func queryInt(r *http.Request, name string, fallback int) int {
	val := r.URL.Query().Get(name)
	if val == "" {
		return fallback
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return n
}
