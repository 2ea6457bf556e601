// Package scouting generates player descriptions once and reuses them.
package scouting

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/okian/dugout/internal/domain/model"
	"github.com/okian/dugout/pkg/logger"
	"github.com/okian/dugout/pkg/metrics"
)

// Placeholder is stored when the generator returns no text.
const Placeholder = "No scouting report available."

// Description outcomes reported to metrics.
const (
	OutcomeCached    = "cached"
	OutcomeGenerated = "generated"
	OutcomeError     = "error"
)

// Params are the sampling parameters passed to the generator.
type Params struct {
	Temperature float64
	MaxTokens   int
}

// DefaultParams returns moderate randomness with a bounded output length.
func DefaultParams() Params {
	return Params{Temperature: 0.7, MaxTokens: 300}
}

// Generator produces text for a prompt.
type Generator interface {
	Configured() bool
	Generate(ctx context.Context, prompt string, params Params) (string, error)
}

// Players is the part of the reconciler the policy depends on.
type Players interface {
	GetByID(ctx context.Context, id string) (model.Player, bool, error)
	Update(ctx context.Context, id string, patch model.Override) (model.Player, error)
}

// Report is the result of GetOrGenerate.
type Report struct {
	Description string `json:"description"`
	Cached      bool   `json:"cached"`
}

// Policy generates at most one description per player.
type Policy struct {
	players   Players
	generator Generator
	params    Params
	logger    logger.Logger
}

// Option configures a Policy.
type Option func(*Policy)

// WithParams overrides the sampling parameters.
func WithParams(p Params) Option {
	return func(pol *Policy) {
		if p.MaxTokens > 0 {
			pol.params = p
		}
	}
}

// WithLogger sets the policy logger.
func WithLogger(l logger.Logger) Option {
	return func(pol *Policy) {
		if l != nil {
			pol.logger = l
		}
	}
}

// NewPolicy builds a policy. A nil generator behaves as unconfigured.
func NewPolicy(players Players, generator Generator, opts ...Option) *Policy {
	p := &Policy{
		players:   players,
		generator: generator,
		params:    DefaultParams(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = logger.Get().Named("scouting")
	}
	return p
}

// GetOrGenerate returns the stored description of the player, generating and
// persisting one first if none exists. A stored description is never
// regenerated, even after the player's statistics change.
func (p *Policy) GetOrGenerate(ctx context.Context, id string) (Report, error) {
	player, ok, err := p.players.GetByID(ctx, id)
	if err != nil {
		metrics.RecordDescription(OutcomeError)
		return Report{}, err
	}
	if !ok {
		return Report{}, fmt.Errorf("%w: %s", model.ErrNotFound, id)
	}
	if player.HasDescription() {
		metrics.RecordDescription(OutcomeCached)
		return Report{Description: *player.Description, Cached: true}, nil
	}
	if p.generator == nil || !p.generator.Configured() {
		metrics.RecordDescription(OutcomeError)
		return Report{}, fmt.Errorf("%w: no generator configured", model.ErrGenerationUnavailable)
	}

	start := time.Now()
	text, err := p.generator.Generate(ctx, BuildPrompt(player), p.params)
	metrics.RecordGenerationLatency(float64(time.Since(start).Milliseconds()))
	if err != nil {
		metrics.RecordDescription(OutcomeError)
		p.logger.Error(ctx, "description generation failed", logger.String("player_id", id), logger.Error(err))
		return Report{}, fmt.Errorf("%w: generate description for %s: %w", model.ErrGenerationUnavailable, id, err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		text = Placeholder
	}

	if _, err := p.players.Update(ctx, id, model.Override{Description: &text}); err != nil {
		metrics.RecordDescription(OutcomeError)
		return Report{}, fmt.Errorf("store description for %s: %w", id, err)
	}
	metrics.RecordDescription(OutcomeGenerated)
	p.logger.Info(ctx, "description generated", logger.String("player_id", id))
	return Report{Description: text, Cached: false}, nil
}
