// Package upstream fetches the read-only player dataset and caches it.
package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/okian/dugout/internal/domain/model"
)

const (
	defaultHTTPTimeout = 10 * time.Second
	maxErrorSnippet    = 256
)

// Source returns the raw upstream rows.
type Source interface {
	FetchRows(ctx context.Context) ([]any, error)
}

// HTTPSource reads a JSON array of loosely typed row objects from a URL.
type HTTPSource struct {
	url        string
	httpClient *http.Client
}

// NewHTTPSource builds a source for url. A nil client gets a default one
// with the given timeout.
func NewHTTPSource(url string, timeout time.Duration, client *http.Client) *HTTPSource {
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}
	return &HTTPSource{url: strings.TrimSpace(url), httpClient: client}
}

// FetchRows performs one GET. Every failure wraps model.ErrUpstreamUnavailable.
func (s *HTTPSource) FetchRows(ctx context.Context) ([]any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %w", model.ErrUpstreamUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorSnippet))
		return nil, fmt.Errorf("%w: http %d: %s", model.ErrUpstreamUnavailable, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload any
	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: decode body: %w", model.ErrUpstreamUnavailable, err)
	}

	rows, ok := payload.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: expected a JSON array, got %T", model.ErrUpstreamUnavailable, payload)
	}
	return rows, nil
}
