package notification

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"mountify/config"
)

// EmailClient sends transactional email through the provider's REST API.
type EmailClient struct {
	APIKey  string
	Sender  string
	BaseURL string
	client  *http.Client
}

type emailPayload struct {
	Sender      map[string]string   `json:"sender"`
	To          []map[string]string `json:"to"`
	Subject     string              `json:"subject"`
	HTMLContent string              `json:"htmlContent"`
}

// NewEmailClient builds a client from configuration. Returns nil if the
// provider is not configured; callers treat a nil client as "email off".
func NewEmailClient() *EmailClient {
	if config.AppConfig.EmailAPIKey == "" || config.AppConfig.EmailSender == "" {
		return nil
	}
	return &EmailClient{
		APIKey:  config.AppConfig.EmailAPIKey,
		Sender:  config.AppConfig.EmailSender,
		BaseURL: config.AppConfig.EmailBaseURL,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

// Send delivers one email. The returned error is suitable for the email log.
func (c *EmailClient) Send(to, subject, htmlContent string) error {
	if to == "" || !strings.Contains(to, "@") {
		return fmt.Errorf("invalid recipient email: %s", to)
	}

	body, err := json.Marshal(emailPayload{
		Sender:      map[string]string{"email": c.Sender},
		To:          []map[string]string{{"email": to}},
		Subject:     subject,
		HTMLContent: htmlContent,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal email payload: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.BaseURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build email request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", c.APIKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("email request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("email provider returned %d: %s", resp.StatusCode, string(respBody))
	}
	return nil
}
