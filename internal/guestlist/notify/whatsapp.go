// Package notify sends outbound text messages to guests via the WhatsApp
// Cloud API. Sends are best-effort: a failed send is reported to the caller
// but must never affect guest state.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const graphAPIVersion = "v17.0"

// ErrDisabled is returned when no messaging credentials are configured.
// Callers treat it like any other failed send.
var ErrDisabled = errors.New("notify: whatsapp credentials not configured")

// WhatsAppClient talks to the WhatsApp Cloud API messages endpoint.
type WhatsAppClient struct {
	phoneID     string
	accessToken string
	baseURL     string
	httpc       *http.Client
}

func NewWhatsAppClient(phoneID, accessToken string) *WhatsAppClient {
	return &WhatsAppClient{
		phoneID:     phoneID,
		accessToken: accessToken,
		baseURL:     "https://graph.facebook.com",
		// Bounded timeout so a dead endpoint cannot hang a broadcast.
		httpc: &http.Client{Timeout: 10 * time.Second},
	}
}

// Enabled reports whether credentials are configured.
func (c *WhatsAppClient) Enabled() bool {
	return c.phoneID != "" && c.accessToken != ""
}

type textPayload struct {
	MessagingProduct string `json:"messaging_product"`
	RecipientType    string `json:"recipient_type"`
	To               string `json:"to"`
	Type             string `json:"type"`
	Text             struct {
		PreviewURL bool   `json:"preview_url"`
		Body       string `json:"body"`
	} `json:"text"`
}

// SendText sends a single text message to the given phone number. The number
// is normalized to digits only before sending.
func (c *WhatsAppClient) SendText(ctx context.Context, to, text string) error {
	if !c.Enabled() {
		return ErrDisabled
	}

	clean := digitsOnly(to)
	if clean == "" {
		return fmt.Errorf("notify: no digits in phone number %q", to)
	}

	payload := textPayload{
		MessagingProduct: "whatsapp",
		RecipientType:    "individual",
		To:               clean,
		Type:             "text",
	}
	payload.Text.Body = text

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/%s/%s/messages", c.baseURL, graphAPIVersion, c.phoneID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("notify: send to %s: %w", clean, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("notify: send to %s: status %d: %s", clean, resp.StatusCode, snippet)
	}
	return nil
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
