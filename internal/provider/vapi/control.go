// Package vapi implements the provider transports: an HTTP client for the
// per-call control URL and a WebSocket listener for the monitor URL. Both
// URLs are handed out by the provider at call-start.
package vapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/nexai-hq/interview-gateway/internal/provider"
)

// ControlClient POSTs control commands to a call's control URL.
type ControlClient struct {
	url  string
	http *http.Client
}

func NewControlClient(controlURL string) *ControlClient {
	return &ControlClient{
		url:  controlURL,
		http: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *ControlClient) Send(ctx context.Context, cmd provider.Command) error {
	body, err := json.Marshal(cmd)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("control url returned %d", resp.StatusCode)
	}
	return nil
}
