package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/verdant-events/guestlist/internal/guestlist/service"
	"github.com/verdant-events/guestlist/pkg/httpx"
	"github.com/verdant-events/guestlist/pkg/slogx"
)

// TokenHandler serves POST /token: exchanges admin credentials for a bearer
// token. Accepts both form-encoded and JSON bodies.
type TokenHandler struct {
	AuthService *service.AuthService
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

func (h *TokenHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	username, password, err := credentialsFromRequest(r)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "could not parse credentials")
		return
	}
	if username == "" || password == "" {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "username and password are required")
		return
	}

	admin, err := h.AuthService.Authenticate(ctx, username, password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			w.Header().Set("WWW-Authenticate", "Bearer")
			httpx.WriteError(w, http.StatusUnauthorized, "invalid_credentials", "incorrect username or password")
			return
		}
		log.Error("authentication failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "authentication failed")
		return
	}

	token, ttl, err := h.AuthService.IssueToken(admin)
	if err != nil {
		log.Error("token issue failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "could not issue token")
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, tokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int(ttl.Seconds()),
	})
}

func credentialsFromRequest(r *http.Request) (username, password string, err error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var body struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			return "", "", err
		}
		return strings.TrimSpace(body.Username), body.Password, nil
	}

	if err := r.ParseForm(); err != nil {
		return "", "", err
	}
	return strings.TrimSpace(r.FormValue("username")), r.FormValue("password"), nil
}
