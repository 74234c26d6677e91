package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const defaultTimeout = 15 * time.Second

// SMSClient sends messages through an HTTP SMS gateway. Each request carries
// a unique reference id so redelivery can be traced on the gateway side.
type SMSClient struct {
	APIKey     string
	BaseURL    string
	Sender     string
	HTTPClient *http.Client
}

// NewSMSClient returns a client for the given gateway. baseURL and sender
// are optional; an empty baseURL falls back to the gateway default.
func NewSMSClient(apiKey, baseURL, sender string) *SMSClient {
	if baseURL == "" {
		baseURL = "https://app.smslocal.in/api/smsapi"
	}
	return &SMSClient{
		APIKey:     apiKey,
		BaseURL:    baseURL,
		Sender:     sender,
		HTTPClient: &http.Client{Timeout: defaultTimeout},
	}
}

// Send posts the message to the gateway. target should be digits only
// (country code + number). The message content is not logged here.
func (c *SMSClient) Send(ctx context.Context, target, message string) error {
	if c.APIKey == "" {
		return fmt.Errorf("sms: API key not configured")
	}
	body := map[string]interface{}{
		"reference_id": uuid.New().String(),
		"numbers":      target,
		"message":      message,
	}
	if c.Sender != "" {
		body["sender"] = c.Sender
	}
	raw, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", c.APIKey)
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("sms: request failed status=%d body=%s", resp.StatusCode, string(b))
	}
	return nil
}
