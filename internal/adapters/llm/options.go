package llm

import (
	"net/http"
	"time"

	"github.com/okian/dugout/internal/domain/scouting"
	"github.com/okian/dugout/pkg/logger"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gpt-4o-mini"

type options struct {
	maxRetries   int
	timeout      time.Duration
	systemPrompt string
	httpClient   *http.Client
	logger       logger.Logger
}

func defaultOptions() *options {
	return &options{
		maxRetries:   2,
		timeout:      30 * time.Second,
		systemPrompt: scouting.SystemPrompt,
	}
}

// Option configures the Client.
type Option func(*options)

// WithMaxRetries sets how often a failed request is retried.
func WithMaxRetries(n int) Option {
	return func(o *options) {
		if n >= 0 {
			o.maxRetries = n
		}
	}
}

// WithTimeout bounds each request attempt.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// WithSystemPrompt replaces the scout persona.
func WithSystemPrompt(prompt string) Option {
	return func(o *options) {
		if prompt != "" {
			o.systemPrompt = prompt
		}
	}
}

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.httpClient = c }
}

// WithLogger sets the client logger.
func WithLogger(l logger.Logger) Option {
	return func(o *options) { o.logger = l }
}
