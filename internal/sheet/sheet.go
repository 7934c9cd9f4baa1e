// Package sheet delivers verified records to the spreadsheet webhook.
//
// One record per POST. Any 2xx response is success; everything else — network
// faults included — leaves the record pending so a reviewer can retry.
package sheet

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mbd888/warchest/internal/metrics"
	"github.com/mbd888/warchest/internal/record"
)

// Entry is the JSON payload accepted by the spreadsheet webhook.
// Field names are part of the wire contract; do not rename.
type Entry struct {
	Type                string `json:"type"`
	Player              string `json:"player"`
	Value               string `json:"value"`
	Verifier            string `json:"verifier"`
	OriginalTimestampMs int64  `json:"originalTimestampMs"`
}

// NewEntry builds the wire payload for a verified record.
func NewEntry(rec record.Record, verifier string) Entry {
	return Entry{
		Type:                string(rec.Kind),
		Player:              rec.Subject,
		Value:               rec.Amount,
		Verifier:            verifier,
		OriginalTimestampMs: rec.SubmittedAtMillis,
	}
}

// Client posts entries to the spreadsheet webhook.
type Client struct {
	url    string
	client *http.Client
}

// NewClient creates a new sheet client.
func NewClient(url string) *Client {
	return &Client{
		url: url,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Append delivers one entry. Exactly one attempt; the caller decides whether
// a failure is retried (it is, by a fresh approval gesture).
func (c *Client) Append(ctx context.Context, entry Entry) error {
	payload, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal entry: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		metrics.SheetDeliveriesTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("sheet request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		metrics.SheetDeliveriesTotal.WithLabelValues("success").Inc()
		return nil
	}

	// The body is opaque diagnostic text; keep a bounded slice of it.
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	metrics.SheetDeliveriesTotal.WithLabelValues("error").Inc()
	return fmt.Errorf("sheet returned status %d: %s", resp.StatusCode, bytes.TrimSpace(body))
}
