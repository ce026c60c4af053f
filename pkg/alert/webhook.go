package alert

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"support-desk-go/internal/config"
)

// WebhookSink posts a MessageCard-style alert to the support team's webhook.
type WebhookSink struct {
	cfg    config.AlertConfig
	client *http.Client
}

// NewWebhookSink creates a webhook sink from the alert configuration.
func NewWebhookSink(cfg config.AlertConfig) *WebhookSink {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &WebhookSink{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
	}
}

// Notify posts the alert card. A missing webhook URL is an error for this
// sink only; the turn still completes.
func (s *WebhookSink) Notify(ctx context.Context, customerID, message, severity string) error {
	if s.cfg.WebhookURL == "" {
		return errors.New("alert webhook URL not configured")
	}

	payload := map[string]interface{}{
		"@type":      "MessageCard",
		"@context":   "http://schema.org/extensions",
		"themeColor": "FF0000",
		"summary":    "High Priority Customer Issue",
		"title":      "Escalation Alert",
		"sections": []map[string]interface{}{
			{
				"facts": []map[string]string{
					{"name": "Customer ID", "value": customerID},
					{"name": "Priority", "value": severity},
					{"name": "Time", "value": time.Now().UTC().Format(time.RFC3339)},
				},
				"text": fmt.Sprintf("**User Message:**\n\n%s", message),
			},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal alert payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.cfg.WebhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create alert request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to post alert webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("alert webhook returned status %s", resp.Status)
	}
	return nil
}
