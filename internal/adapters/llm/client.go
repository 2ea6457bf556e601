// Package llm wraps an OpenAI-compatible chat completions API.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/okian/dugout/internal/domain/scouting"
	"github.com/okian/dugout/pkg/logger"
)

// ErrEmptyResponse is returned when the API answers without choices.
var ErrEmptyResponse = errors.New("llm: response has no choices")

// Config holds the connection settings.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
}

// Client generates scouting text through chat completions.
type Client struct {
	api          openai.Client
	model        string
	systemPrompt string
	configured   bool
	logger       logger.Logger
}

// NewClient builds a client. Without an API key the client is returned
// unconfigured and Generate refuses to run.
func NewClient(cfg Config, opts ...Option) *Client {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	reqOpts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(o.maxRetries),
		option.WithRequestTimeout(o.timeout),
	}
	if base := strings.TrimSpace(cfg.BaseURL); base != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(base))
	}
	if o.httpClient != nil {
		reqOpts = append(reqOpts, option.WithHTTPClient(o.httpClient))
	}

	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = DefaultModel
	}
	l := o.logger
	if l == nil {
		l = logger.Get().Named("llm")
	}
	return &Client{
		api:          openai.NewClient(reqOpts...),
		model:        model,
		systemPrompt: o.systemPrompt,
		configured:   strings.TrimSpace(cfg.APIKey) != "",
		logger:       l,
	}
}

// Configured reports whether credentials are present.
func (c *Client) Configured() bool {
	return c.configured
}

// Generate sends the scout persona and prompt, returning the first choice.
func (c *Client) Generate(ctx context.Context, prompt string, params scouting.Params) (string, error) {
	if !c.configured {
		return "", errors.New("llm: api key not configured")
	}

	start := time.Now()
	resp, err := c.api.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(c.systemPrompt),
			openai.UserMessage(prompt),
		},
		Temperature: openai.Float(params.Temperature),
		MaxTokens:   openai.Int(int64(params.MaxTokens)),
	})
	if err != nil {
		return "", fmt.Errorf("llm: chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyResponse
	}

	c.logger.Debug(ctx, "chat completion done",
		logger.String("model", c.model),
		logger.Duration("elapsed", time.Since(start)),
		logger.Int("completion_tokens", int(resp.Usage.CompletionTokens)),
	)
	return resp.Choices[0].Message.Content, nil
}
