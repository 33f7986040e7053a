// Package client is the typed HTTP client of the board API. Error envelopes
// are mapped back onto the models error kinds so callers branch with
// errors.Is exactly as they would against the services.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/thenoetrevino/flowboard/internal/converters"
	"github.com/thenoetrevino/flowboard/internal/models"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

// Client talks to a running FlowBoard server
type Client struct {
	baseURL string
	http    *http.Client
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithTimeout bounds every request. The http.Client is copied first so a
// client passed to WithHTTPClient keeps its own timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		hc := *c.http
		hc.Timeout = d
		c.http = &hc
	}
}

// New creates a client for the API rooted at baseURL, e.g. http://localhost:5000
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API root the client was created with
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Health reports the server and store status
func (c *Client) Health(ctx context.Context) (*converters.Health, error) {
	resp, err := c.send(ctx, http.MethodGet, "/health", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var h converters.Health
	if err := json.NewDecoder(resp.Body).Decode(&h); err != nil {
		return nil, fmt.Errorf("failed to decode health: %w", err)
	}
	return &h, nil
}

// call performs a request and unwraps the response envelope
func call[T any](ctx context.Context, c *Client, method, path string, body any) (T, error) {
	var zero T

	resp, err := c.send(ctx, method, path, body)
	if err != nil {
		return zero, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return zero, unreachable(err)
	}

	var env converters.Envelope[T]
	decodeErr := json.Unmarshal(raw, &env)

	if resp.StatusCode >= http.StatusBadRequest {
		msg := env.Error
		if decodeErr != nil || msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return zero, statusError(resp.StatusCode, msg)
	}
	if decodeErr != nil {
		return zero, fmt.Errorf("failed to decode %s %s response: %w", method, path, decodeErr)
	}
	if !env.Success {
		return zero, models.StoreUnavailable(env.Error)
	}
	return env.Data, nil
}

func (c *Client) send(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, unreachable(err)
	}
	return resp, nil
}

// statusError maps an HTTP error status onto the models error kinds
func statusError(status int, msg string) error {
	switch {
	case status == http.StatusNotFound:
		return models.NotFound(msg)
	case status < http.StatusInternalServerError:
		return models.InvalidArgument(msg)
	default:
		return models.StoreUnavailable(msg)
	}
}

func unreachable(err error) error {
	return &models.Error{
		Kind: models.ErrStoreUnavailable,
		Msg:  fmt.Sprintf("API unreachable: %v", err),
	}
}
