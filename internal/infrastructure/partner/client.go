// Package partner implements the HTTP client for the external
// document-sending API. The payload projection lives in the core; this
// package only owns transport.
package partner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/vantagepointcrm/crm-api/internal/core/ports"
)

const requestTimeout = 30 * time.Second

// Config carries the partner endpoint settings.
type Config struct {
	URL         string
	VendorToken string
}

// Client posts lead document requests to the partner endpoint, authenticating
// with the vendor token header.
type Client struct {
	http   *http.Client
	cfg    Config
	logger zerolog.Logger
}

func NewClient(cfg Config, logger zerolog.Logger) *Client {
	return &Client{
		http:   &http.Client{Timeout: requestTimeout},
		cfg:    cfg,
		logger: logger,
	}
}

// partnerResponse is the success envelope the partner returns.
type partnerResponse struct {
	Success bool   `json:"success"`
	UserID  string `json:"userId"`
	Message string `json:"message"`
	Detail  string `json:"detail"`
}

func (c *Client) SendDocs(ctx context.Context, payload *ports.PartnerPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("partner: marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("partner: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-vendor-token", c.cfg.VendorToken)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("partner: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("partner: unexpected status %d: %s", resp.StatusCode, data)
	}

	var out partnerResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return fmt.Errorf("partner: decode response: %w", err)
	}
	if !out.Success {
		return fmt.Errorf("partner: rejected: %s %s", out.Message, out.Detail)
	}

	c.logger.Info().Str("partner_user_id", out.UserID).Msg("partner accepted document request")
	return nil
}
