// Package inference implements the HTTP policy client: one frame out, one
// structured action back.
package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image/png"
	"io"
	"net/http"
	"strconv"

	"github.com/notyesbut/NitroGen/internal/domain"
	"github.com/notyesbut/NitroGen/internal/ports"
)

const (
	actEndpoint    = "/v1/act"
	healthEndpoint = "/v1/healthz"
)

// Client is a stateless request/response wrapper around the inference
// endpoint. The HTTP client's timeout bounds the worst-case tick latency.
type Client struct {
	serviceURL string
	client     ports.HTTPClient
	logger     ports.Logger
}

// NewClient creates a policy client for the given base URL.
func NewClient(serviceURL string, client ports.HTTPClient, logger ports.Logger) *Client {
	return &Client{
		serviceURL: serviceURL,
		client:     client,
		logger:     logger,
	}
}

// Infer submits the frame as PNG and decodes the returned action.
// Transport failures are wrapped as domain.ErrServiceUnavailable; responses
// that do not parse into the expected shape as domain.ErrMalformedResponse.
// Never retried here: a retry would blow the tick deadline.
func (c *Client) Infer(ctx context.Context, frame domain.Frame) (domain.SourceAction, error) {
	var body bytes.Buffer
	if frame.Image != nil {
		if err := png.Encode(&body, frame.Image); err != nil {
			return domain.NeutralSourceAction(), fmt.Errorf("encode frame: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.serviceURL+actEndpoint, &body)
	if err != nil {
		return domain.NeutralSourceAction(), fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "image/png")
	req.Header.Set("X-Frame-Id", strconv.FormatUint(frame.ID, 10))
	req.Header.Set("X-Frame-Timestamp", strconv.FormatInt(frame.Timestamp.UnixNano(), 10))

	resp, err := c.client.Do(req)
	if err != nil {
		return domain.NeutralSourceAction(), fmt.Errorf("%w: %v", domain.ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return domain.NeutralSourceAction(),
			fmt.Errorf("%w: status %d: %s", domain.ErrServiceUnavailable, resp.StatusCode, respBody)
	}

	var action domain.SourceAction
	dec := json.NewDecoder(resp.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&action); err != nil {
		return domain.NeutralSourceAction(), fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
	}

	return action.Clamped(), nil
}

// Ping checks endpoint reachability. Used once at startup; an unreachable
// endpoint is fatal for live-control mode.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.serviceURL+healthEndpoint, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("%w: status %d", domain.ErrServiceUnavailable, resp.StatusCode)
	}
	return nil
}
