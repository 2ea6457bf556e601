// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/okian/dugout/internal/adapters/repository"
	"github.com/okian/dugout/internal/adapters/upstream"
	"github.com/okian/dugout/internal/domain/model"
	"github.com/okian/dugout/internal/domain/reconcile"
	"github.com/okian/dugout/internal/domain/scouting"
	"github.com/okian/dugout/pkg/logger"
)

// Service implements the API dependencies for the players system.
type Service struct {
	mu sync.RWMutex

	// Core components
	source     upstream.Source
	fetcher    *upstream.Fetcher
	store      repository.OverrideStore
	reconciler *reconcile.Reconciler
	policy     *scouting.Policy
	generator  scouting.Generator

	// Configuration
	upstreamURL     string
	upstreamTimeout time.Duration
	cacheTTL        time.Duration
	clock           clockwork.Clock
	storeDriver     string
	storePath       string
	params          scouting.Params

	// State
	started   bool
	ownsStore bool
	startedAt time.Time

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithUpstreamURL sets the upstream dataset URL.
func WithUpstreamURL(url string) Option {
	return func(s *Service) {
		if url != "" {
			s.upstreamURL = url
		}
	}
}

// WithUpstreamTimeout bounds each upstream request.
func WithUpstreamTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.upstreamTimeout = d
		}
	}
}

// WithCacheTTL sets how long a fetched dataset stays fresh.
func WithCacheTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl >= 0 {
			s.cacheTTL = ttl
		}
	}
}

// WithClock injects the clock driving cache expiry.
func WithClock(c clockwork.Clock) Option {
	return func(s *Service) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithSource replaces the HTTP upstream source.
func WithSource(src upstream.Source) Option {
	return func(s *Service) {
		if src != nil {
			s.source = src
		}
	}
}

// WithStore uses an already opened override store. The caller keeps
// ownership and closes it.
func WithStore(store repository.OverrideStore) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithStoreDriver selects the store opened on Start.
func WithStoreDriver(driver, path string) Option {
	return func(s *Service) {
		if driver != "" {
			s.storeDriver = driver
			s.storePath = path
		}
	}
}

// WithGenerator sets the text generator for scouting reports.
func WithGenerator(g scouting.Generator) Option {
	return func(s *Service) {
		s.generator = g
	}
}

// WithGenerationParams overrides the sampling parameters.
func WithGenerationParams(p scouting.Params) Option {
	return func(s *Service) {
		if p.MaxTokens > 0 {
			s.params = p
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		upstreamTimeout: 10 * time.Second,
		cacheTTL:        upstream.DefaultTTL,
		clock:           clockwork.NewRealClock(),
		storeDriver:     repository.DriverMemory,
		params:          scouting.DefaultParams(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start opens the store and wires fetcher, reconciler and scouting policy.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting players service...")

	if s.source == nil {
		if s.upstreamURL == "" {
			return fmt.Errorf("start: %w: upstream url is empty", model.ErrUpstreamUnavailable)
		}
		s.source = upstream.NewHTTPSource(s.upstreamURL, s.upstreamTimeout, nil)
	}
	if s.store == nil {
		store, err := repository.Open(ctx, s.storeDriver, s.storePath)
		if err != nil {
			return fmt.Errorf("start: open %s store: %w", s.storeDriver, err)
		}
		s.store = store
		s.ownsStore = true
	}

	s.fetcher = upstream.NewFetcher(s.source,
		upstream.WithTTL(s.cacheTTL),
		upstream.WithClock(s.clock),
		upstream.WithLogger(s.logger.Named("upstream")),
	)
	s.reconciler = reconcile.New(s.fetcher, s.store, s.logger.Named("reconcile"))
	s.policy = scouting.NewPolicy(s.reconciler, s.generator,
		scouting.WithParams(s.params),
		scouting.WithLogger(s.logger.Named("scouting")),
	)

	s.started = true
	s.startedAt = s.clock.Now()
	s.logger.Info(ctx, "players service started",
		logger.String("store_driver", s.storeDriver),
		logger.Duration("cache_ttl", s.cacheTTL),
		logger.Bool("generation_configured", s.generationConfigured()),
	)
	return nil
}

// Stop closes the store when the service opened it.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping players service...")
	if s.ownsStore && s.store != nil {
		if err := s.store.Close(); err != nil {
			s.logger.Warn(context.Background(), "close override store", logger.Error(err))
		}
		s.store = nil
		s.ownsStore = false
	}
	s.started = false
	s.logger.Info(context.Background(), "players service stopped")
}

// Players returns every effective player, optionally sorted by a JSON
// field name. An empty field keeps upstream order.
func (s *Service) Players(ctx context.Context, sortField string, desc bool) ([]model.Player, error) {
	rec, err := s.reconcilerRef()
	if err != nil {
		return nil, err
	}
	players, err := rec.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if sortField == "" {
		return players, nil
	}
	return model.SortPlayers(players, sortField, desc)
}

// Player returns one effective player or ErrNotFound.
func (s *Service) Player(ctx context.Context, id string) (model.Player, error) {
	rec, err := s.reconcilerRef()
	if err != nil {
		return model.Player{}, err
	}
	p, ok, err := rec.GetByID(ctx, id)
	if err != nil {
		return model.Player{}, err
	}
	if !ok {
		return model.Player{}, fmt.Errorf("%w: %s", model.ErrNotFound, id)
	}
	return p, nil
}

// UpdatePlayer stores patch over the player's current state.
func (s *Service) UpdatePlayer(ctx context.Context, id string, patch model.Override) (model.Player, error) {
	rec, err := s.reconcilerRef()
	if err != nil {
		return model.Player{}, err
	}
	if patch.IsEmpty() {
		return model.Player{}, fmt.Errorf("%w: empty patch", model.ErrValidation)
	}
	return rec.Update(ctx, id, patch)
}

// Describe returns the player's scouting report, generating it once.
func (s *Service) Describe(ctx context.Context, id string) (scouting.Report, error) {
	s.mu.RLock()
	policy, started := s.policy, s.started
	s.mu.RUnlock()
	if !started {
		return scouting.Report{}, ErrNotStarted
	}
	return policy.GetOrGenerate(ctx, id)
}

// Refresh drops the cached upstream dataset.
func (s *Service) Refresh(ctx context.Context) error {
	s.mu.RLock()
	fetcher, started := s.fetcher, s.started
	s.mu.RUnlock()
	if !started {
		return ErrNotStarted
	}
	fetcher.Invalidate()
	s.logger.Info(ctx, "upstream cache dropped")
	return nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]any{
		"started":              s.started,
		"upstreamURL":          s.upstreamURL,
		"cacheTTLSeconds":      s.cacheTTL.Seconds(),
		"storeDriver":          s.storeDriver,
		"generationConfigured": s.generationConfigured(),
	}
	if s.started {
		stats["uptimeSeconds"] = s.clock.Since(s.startedAt).Seconds()
		if exp := s.fetcher.ExpiresAt(); !exp.IsZero() {
			stats["cacheExpiresAt"] = exp.UTC().Format(time.RFC3339)
		}
	}
	return stats
}

func (s *Service) reconcilerRef() (*reconcile.Reconciler, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil, ErrNotStarted
	}
	return s.reconciler, nil
}

func (s *Service) generationConfigured() bool {
	return s.generator != nil && s.generator.Configured()
}
