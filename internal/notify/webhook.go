// Package notify posts alerts to a parent-configured webhook whenever
// content is blocked for a profile.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/asadnaved9/safebrowse/internal/utils"
)

const requestTimeout = 5 * time.Second

// Alert is the JSON payload delivered to the webhook.
type Alert struct {
	ProfileID   string    `json:"profile_id"`
	ProfileName string    `json:"profile_name"`
	ContentType string    `json:"content_type"`
	Confidence  float64   `json:"confidence"`
	Reasons     []string  `json:"reasons"`
	Snippet     string    `json:"content_snippet"`
	DetectedAt  time.Time `json:"detected_at"`
}

// Webhook delivers alerts to a single endpoint.
type Webhook struct {
	url    string
	client *retryablehttp.Client
}

// New creates a Webhook. Returns nil when url is empty (callers should
// nil-check before dispatching).
func New(url string) *Webhook {
	if url == "" {
		return nil
	}
	client := retryablehttp.NewClient()
	client.RetryMax = 2
	client.HTTPClient.Timeout = requestTimeout
	client.Logger = nil
	return &Webhook{url: url, client: client}
}

// Send posts the alert. Retries on transient failures are handled by
// the underlying client.
func (w *Webhook) Send(ctx context.Context, alert Alert) error {
	body, err := json.Marshal(alert)
	if err != nil {
		return fmt.Errorf("encode alert: %w", err)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("deliver alert: %w", err)
	}
	resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook rejected: HTTP %d", resp.StatusCode)
	}
	return nil
}

// Dispatch fires the alert in the background. Delivery failures are
// logged and never surface to the request that triggered them.
func (w *Webhook) Dispatch(alert Alert) {
	if w == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := w.Send(ctx, alert); err != nil {
			utils.Log.Warn("webhook alert failed: ", err)
		}
	}()
}
