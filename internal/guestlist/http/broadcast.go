package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/verdant-events/guestlist/internal/guestlist/service"
	"github.com/verdant-events/guestlist/pkg/httpx"
	"github.com/verdant-events/guestlist/pkg/slogx"
)

// BroadcastHandler serves POST /guests/broadcast: one send attempt per
// guest, reported as an aggregate count.
type BroadcastHandler struct {
	BroadcastService *service.BroadcastService
}

func (h *BroadcastHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if strings.TrimSpace(body.Message) == "" {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "message is required")
		return
	}

	sent, total, err := h.BroadcastService.Broadcast(ctx, body.Message)
	if err != nil {
		log.Error("broadcast failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "could not broadcast message")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]int{
		"sent":  sent,
		"total": total,
	})
}
