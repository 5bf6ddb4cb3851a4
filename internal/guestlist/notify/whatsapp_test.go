package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDigitsOnly(t *testing.T) {
	t.Parallel()

	require.Equal(t, "15551234567", digitsOnly("+1 (555) 123-4567"))
	require.Equal(t, "15551234567", digitsOnly("15551234567"))
	require.Equal(t, "", digitsOnly("no digits here"))
	require.Equal(t, "", digitsOnly(""))
}

func TestSendTextDisabled(t *testing.T) {
	t.Parallel()

	c := NewWhatsAppClient("", "")
	require.False(t, c.Enabled())
	require.ErrorIs(t, c.SendText(context.Background(), "+15551234567", "hi"), ErrDisabled)
}

func TestSendText(t *testing.T) {
	var captured struct {
		path    string
		auth    string
		payload textPayload
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.path = r.URL.Path
		captured.auth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured.payload))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewWhatsAppClient("12345", "token-abc")
	c.baseURL = srv.URL

	require.NoError(t, c.SendText(context.Background(), "+1 555-123-4567", "see you there"))

	require.Equal(t, "/v17.0/12345/messages", captured.path)
	require.Equal(t, "Bearer token-abc", captured.auth)
	require.Equal(t, "whatsapp", captured.payload.MessagingProduct)
	require.Equal(t, "individual", captured.payload.RecipientType)
	require.Equal(t, "15551234567", captured.payload.To)
	require.Equal(t, "text", captured.payload.Type)
	require.Equal(t, "see you there", captured.payload.Text.Body)
}

func TestSendTextErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"invalid token"}}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewWhatsAppClient("12345", "bad-token")
	c.baseURL = srv.URL

	err := c.SendText(context.Background(), "+15551234567", "hello")
	require.Error(t, err)
	require.Contains(t, err.Error(), "status 401")
}

func TestSendTextRejectsEmptyNumber(t *testing.T) {
	t.Parallel()

	c := NewWhatsAppClient("12345", "token")
	err := c.SendText(context.Background(), "ext. only", "hi")
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrDisabled)
}
