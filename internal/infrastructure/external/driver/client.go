package driver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-notes/pkg/config"
)

// JoinRequest asks the call automation driver to join a meeting and push captions back
type JoinRequest struct {
	CaptureID   string `json:"capture_id"`
	MeetURL     string `json:"meet_url"`
	CallbackURL string `json:"callback_url"`
	DurationSec int    `json:"duration_seconds"`
}

// Client talks to an external browser-automation driver
type Client struct {
	baseURL     string
	callbackURL string
	client      *http.Client
	logger      *zap.Logger
}

// NewClient creates a driver client. With an empty URL, Join is a no-op and
// captions are expected to be pushed by an externally managed driver.
func NewClient(cfg *config.DriverConfig, logger *zap.Logger) *Client {
	return &Client{
		baseURL:     strings.TrimRight(cfg.URL, "/"),
		callbackURL: strings.TrimRight(cfg.CallbackURL, "/"),
		client:      &http.Client{Timeout: 15 * time.Second},
		logger:      logger,
	}
}

// Enabled reports whether a driver endpoint is configured
func (c *Client) Enabled() bool {
	return c.baseURL != ""
}

// Join asks the driver to join meetURL for duration
func (c *Client) Join(ctx context.Context, captureID, meetURL string, duration time.Duration) error {
	if !c.Enabled() {
		if c.logger != nil {
			c.logger.Info("🤖 No driver configured, waiting for pushed captions", zap.String("capture_id", captureID))
		}
		return nil
	}

	payload, err := json.Marshal(JoinRequest{
		CaptureID:   captureID,
		MeetURL:     meetURL,
		CallbackURL: fmt.Sprintf("%s/%s/captions", c.callbackURL, captureID),
		DurationSec: int(duration.Seconds()),
	})
	if err != nil {
		return err
	}

	joinFn := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/join", bytes.NewReader(payload))
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode >= 500:
			return fmt.Errorf("driver returned status %d", resp.StatusCode)
		case resp.StatusCode >= 400:
			return backoff.Permanent(fmt.Errorf("driver rejected join: status %d", resp.StatusCode))
		}
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 500 * time.Millisecond
	bo.MaxInterval = 5 * time.Second
	bo.MaxElapsedTime = 20 * time.Second

	if err := backoff.Retry(joinFn, backoff.WithContext(bo, ctx)); err != nil {
		return fmt.Errorf("failed to request driver join: %w", err)
	}

	if c.logger != nil {
		c.logger.Info("✅ Driver join requested",
			zap.String("capture_id", captureID),
			zap.String("meet_url", meetURL))
	}
	return nil
}
