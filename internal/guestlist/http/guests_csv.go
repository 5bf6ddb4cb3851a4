package http

import (
	"fmt"
	"net/http"

	"github.com/verdant-events/guestlist/internal/guestlist/service"
	"github.com/verdant-events/guestlist/pkg/httpx"
	"github.com/verdant-events/guestlist/pkg/slogx"
)

// maxCSVUploadBytes bounds guest-list uploads; even large events fit well
// below this.
const maxCSVUploadBytes = 8 << 20

// CSVUploadHandler serves POST /guests/upload-csv: bulk guest creation from
// a CSV file with header columns "name" and "phone_number".
type CSVUploadHandler struct {
	GuestService *service.GuestService
}

func (h *CSVUploadHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	if err := r.ParseMultipartForm(maxCSVUploadBytes); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "expected multipart form upload")
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "missing file field")
		return
	}
	defer file.Close()

	added, err := h.GuestService.ImportCSV(ctx, file)
	if err != nil {
		log.Error("csv import failed", "err", err)
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "could not parse CSV file")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"added":   added,
		"message": fmt.Sprintf("Successfully added %d guests", added),
	})
}
