package upstream

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/singleflight"

	"github.com/okian/dugout/internal/domain/model"
	"github.com/okian/dugout/internal/domain/normalize"
	"github.com/okian/dugout/pkg/logger"
	"github.com/okian/dugout/pkg/metrics"
)

const flightKey = "players"

// Fetcher serves canonical players from a Source through a freshness cache.
// Concurrent misses share one upstream request.
type Fetcher struct {
	source Source
	clock  clockwork.Clock
	ttl    time.Duration
	cache  *Cache[[]model.Player]
	group  singleflight.Group
	logger logger.Logger
}

// NewFetcher wraps source with a cache.
func NewFetcher(source Source, opts ...Option) *Fetcher {
	f := &Fetcher{
		source: source,
		clock:  clockwork.NewRealClock(),
		ttl:    DefaultTTL,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.logger == nil {
		f.logger = logger.Get().Named("upstream")
	}
	f.cache = NewCache[[]model.Player](f.clock, f.ttl)
	return f
}

// FetchAll returns the canonical players without overrides. A fresh cached
// result is returned without contacting upstream; otherwise the caller
// waits for a new fetch and sees its error if it fails. The shared fetch is
// detached from the caller that started it, so one caller cancelling does
// not fail the others; each caller stops waiting when its own ctx is done.
func (f *Fetcher) FetchAll(ctx context.Context) ([]model.Player, error) {
	if players, ok := f.cache.Get(); ok {
		metrics.RecordCacheHit()
		return slices.Clone(players), nil
	}
	metrics.RecordCacheMiss()

	flightCtx := context.WithoutCancel(ctx)
	ch := f.group.DoChan(flightKey, func() (any, error) {
		// A caller that lost the race to an already finished flight finds
		// the value here.
		if players, ok := f.cache.Get(); ok {
			return players, nil
		}
		return f.refill(flightCtx)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		if res.Shared {
			f.logger.Debug(ctx, "joined in-flight upstream fetch")
		}
		return slices.Clone(res.Val.([]model.Player)), nil
	}
}

// Invalidate drops the cached dataset so the next call refetches.
func (f *Fetcher) Invalidate() {
	f.cache.Invalidate()
}

// ExpiresAt reports when the cached dataset goes stale; zero when empty.
func (f *Fetcher) ExpiresAt() time.Time {
	return f.cache.ExpiresAt()
}

func (f *Fetcher) refill(ctx context.Context) ([]model.Player, error) {
	start := f.clock.Now()
	rows, err := f.source.FetchRows(ctx)
	latency := float64(f.clock.Since(start).Milliseconds())
	if err != nil {
		metrics.RecordUpstreamFetch(false, latency)
		f.logger.Warn(ctx, "upstream fetch failed", logger.Error(err))
		if !errors.Is(err, model.ErrUpstreamUnavailable) {
			err = fmt.Errorf("%w: %w", model.ErrUpstreamUnavailable, err)
		}
		return nil, err
	}

	players := normalize.Players(rows)
	f.cache.Set(players)
	metrics.RecordUpstreamFetch(true, latency)
	metrics.UpdateUpstreamPlayers(len(players))
	f.logger.Info(ctx, "upstream dataset refreshed",
		logger.Int("players", len(players)),
		logger.Float64("latency_ms", latency),
	)
	return players, nil
}
