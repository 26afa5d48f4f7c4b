package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// ErrWebhookNotConfigured is returned when posting without a webhook URL.
var ErrWebhookNotConfigured = errors.New("slack webhook url is not configured")

// Notifier posts messages to a Slack channel.
type Notifier interface {
	Post(ctx context.Context, msg Message) error
}

// WebhookNotifier posts messages to a Slack incoming webhook.
// Safe for concurrent use.
type WebhookNotifier struct {
	url string
	hc  *http.Client
}

// NewWebhookNotifier creates a Notifier for the given webhook URL.
// An empty URL is allowed; Post then fails with ErrWebhookNotConfigured,
// which lets callers surface a configuration error per request.
func NewWebhookNotifier(url string, timeout time.Duration) *WebhookNotifier {
	return &WebhookNotifier{
		url: url,
		hc: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   timeout,
		},
	}
}

// Post sends the message as JSON and treats any non-2xx status as an error.
func (n *WebhookNotifier) Post(ctx context.Context, msg Message) error {
	if n.url == "" {
		return ErrWebhookNotConfigured
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal slack message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.hc.Do(req)
	if err != nil {
		return fmt.Errorf("post to webhook: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("post to webhook: unexpected status %d", resp.StatusCode)
	}
	return nil
}
