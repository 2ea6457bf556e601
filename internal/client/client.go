// Package client is a typed HTTP client for the dugout API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/okian/dugout/internal/domain/model"
	"github.com/okian/dugout/internal/domain/scouting"
)

const (
	defaultTimeout  = 90 * time.Second
	headerRequestID = "X-Request-ID"
)

// ErrNotFound is returned for 404 responses.
var ErrNotFound = errors.New("not found")

// APIError is a non-2xx response decoded from the error envelope.
type APIError struct {
	Status    int
	Code      string
	Message   string
	RequestID string
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.Status)
	}
	if e.RequestID != "" {
		return fmt.Sprintf("%s (http %d, request %s)", msg, e.Status, e.RequestID)
	}
	return fmt.Sprintf("%s (http %d)", msg, e.Status)
}

// Is lets errors.Is(err, ErrNotFound) match 404 responses.
func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.Status == http.StatusNotFound
}

// Client talks to one dugout server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures the Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient = &http.Client{Timeout: d}
		}
	}
}

// New builds a client for baseURL, e.g. "http://localhost:9080".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListPlayers returns all players, optionally sorted.
func (c *Client) ListPlayers(ctx context.Context, sortField string, desc bool) ([]model.Player, error) {
	q := url.Values{}
	if sortField != "" {
		q.Set("sort", sortField)
	}
	if desc {
		q.Set("order", "desc")
	}
	path := "/players"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	var out []model.Player
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetPlayer returns one player.
func (c *Client) GetPlayer(ctx context.Context, id string) (model.Player, error) {
	var out model.Player
	err := c.do(ctx, http.MethodGet, "/players/"+url.PathEscape(id), nil, &out)
	return out, err
}

// UpdatePlayer sends a partial patch.
func (c *Client) UpdatePlayer(ctx context.Context, id string, patch map[string]any) (model.Player, error) {
	var out model.Player
	err := c.do(ctx, http.MethodPatch, "/players/"+url.PathEscape(id), patch, &out)
	return out, err
}

// Describe fetches or generates the scouting report.
func (c *Client) Describe(ctx context.Context, id string) (scouting.Report, error) {
	var out scouting.Report
	err := c.do(ctx, http.MethodPost, "/players/"+url.PathEscape(id)+"/description", nil, &out)
	return out, err
}

// Refresh drops the server's upstream cache.
func (c *Client) Refresh(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/admin/refresh", nil, nil)
}

// Health checks the liveness endpoint.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/healthz", nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(headerRequestID, uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode, RequestID: resp.Header.Get(headerRequestID)}
		var envelope struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		}
		if json.Unmarshal(data, &envelope) == nil {
			apiErr.Code, apiErr.Message = envelope.Code, envelope.Message
		} else {
			apiErr.Message = strings.TrimSpace(string(data))
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}
