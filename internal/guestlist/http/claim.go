package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/verdant-events/guestlist/internal/guestlist/service"
	"github.com/verdant-events/guestlist/internal/guestlist/store"
	"github.com/verdant-events/guestlist/pkg/httpx"
	"github.com/verdant-events/guestlist/pkg/slogx"
)

// ClaimHandler serves the device-claim protocol: binding a client device to
// one of a guest's slots and looking a guest up by device.
type ClaimHandler struct {
	ClaimService *service.ClaimService
}

func (h *ClaimHandler) HandleClaim(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)
	code := r.PathValue("code")

	var body struct {
		DeviceID string `json:"device_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	guest, err := h.ClaimService.ClaimDevice(ctx, code, body.DeviceID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDevice):
			httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "device_id is required")
		case errors.Is(err, store.ErrNotFound):
			httpx.WriteError(w, http.StatusNotFound, "not_found", "invalid invitation code")
		case errors.Is(err, service.ErrClaimRejected):
			httpx.WriteError(w, http.StatusForbidden, "forbidden", "code already claimed by other devices")
		default:
			log.Error("device claim failed", "err", err)
			httpx.WriteError(w, http.StatusInternalServerError, "server_error", "could not claim code")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toGuestResponse(guest))
}

func (h *ClaimHandler) HandleValidateDevice(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)
	deviceID := r.PathValue("device_id")

	guest, err := h.ClaimService.ValidateDevice(ctx, deviceID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDevice), errors.Is(err, store.ErrNotFound):
			httpx.WriteError(w, http.StatusNotFound, "not_found", "no guest linked to this device")
		default:
			log.Error("device validation failed", "err", err)
			httpx.WriteError(w, http.StatusInternalServerError, "server_error", "could not validate device")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toGuestResponse(guest))
}
