// Package roomissuer talks to the external signaling endpoint that mints
// meeting-room tokens. The endpoint is opaque: a single POST with no body,
// answered by the token as the response body.
package roomissuer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// ErrIssuerUnavailable is returned when the remote endpoint cannot mint a
// token, whether due to transport failure, timeout, or a non-2xx status.
var ErrIssuerUnavailable = errors.New("roomissuer: issuer unavailable")

// maxTokenBytes bounds how much of the response body is read as a token.
const maxTokenBytes = 4096

// Client requests room tokens from the configured endpoint. Each call makes
// exactly one attempt; retry policy belongs to the caller, and none is
// applied here.
type Client struct {
	endpoint   string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient constructs a Client for the given endpoint. A nil httpClient
// falls back to a client with a 10 second timeout.
func NewClient(endpoint string, httpClient *http.Client, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		endpoint:   endpoint,
		httpClient: httpClient,
		logger:     logger,
	}
}

// RequestRoom asks the issuer for a fresh room token. The response body is
// treated as an uninterpreted string apart from surrounding whitespace.
func (c *Client) RequestRoom(ctx context.Context) (string, error) {
	if c == nil || c.endpoint == "" {
		return "", fmt.Errorf("%w: no endpoint configured", ErrIssuerUnavailable)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrIssuerUnavailable, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.ErrorContext(ctx, "room token request failed", "endpoint", c.endpoint, "error", err)
		return "", fmt.Errorf("%w: %v", ErrIssuerUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.ErrorContext(ctx, "room token request rejected", "endpoint", c.endpoint, "status", resp.StatusCode)
		return "", fmt.Errorf("%w: unexpected status %d", ErrIssuerUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxTokenBytes))
	if err != nil {
		return "", fmt.Errorf("%w: reading response: %v", ErrIssuerUnavailable, err)
	}

	token := strings.TrimSpace(string(body))
	if token == "" {
		return "", fmt.Errorf("%w: empty token in response", ErrIssuerUnavailable)
	}

	c.logger.DebugContext(ctx, "room token issued")
	return token, nil
}
