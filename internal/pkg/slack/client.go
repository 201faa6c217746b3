// Package slack posts run notifications to an incoming webhook.
package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

type Client struct {
	webhookURL string
	channel    string
	logger     *slog.Logger
	http       *http.Client
}

// NewClient creates a webhook client. An empty webhook URL puts the
// client in local mode: messages are logged instead of posted.
func NewClient(webhookURL, channel string, logger *slog.Logger) *Client {
	return &Client{
		webhookURL: webhookURL,
		channel:    channel,
		logger:     logger,
		http:       &http.Client{Timeout: 10 * time.Second},
	}
}

type message struct {
	Channel string `json:"channel,omitempty"`
	Text    string `json:"text"`
}

// Notify posts the text to the configured webhook.
func (c *Client) Notify(ctx context.Context, text string) error {
	if c.webhookURL == "" {
		c.logger.Info("slack webhook not configured, skipping notification",
			slog.String("text", text))
		return nil
	}

	payload, err := json.Marshal(message{Channel: c.channel, Text: text})
	if err != nil {
		return fmt.Errorf("failed to marshal slack message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("slack request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("slack returned status %d", resp.StatusCode)
	}
	return nil
}
