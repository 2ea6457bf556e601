// Package reconcile merges upstream players with locally stored overrides.
package reconcile

import (
	"context"
	"fmt"

	"github.com/okian/dugout/internal/domain/model"
	"github.com/okian/dugout/pkg/logger"
)

// PlayerSource provides the canonical upstream players.
type PlayerSource interface {
	FetchAll(ctx context.Context) ([]model.Player, error)
}

// OverrideStore is the subset of the override store the reconciler needs.
type OverrideStore interface {
	ListAll(ctx context.Context) (map[string]model.Override, error)
	Get(ctx context.Context, id string) (model.Override, bool, error)
	Upsert(ctx context.Context, id string, patch model.Override) (model.Override, error)
}

// Reconciler produces the effective player view.
type Reconciler struct {
	source PlayerSource
	store  OverrideStore
	logger logger.Logger
}

// New builds a reconciler. A nil logger falls back to the global one.
func New(source PlayerSource, store OverrideStore, l logger.Logger) *Reconciler {
	if l == nil {
		l = logger.Get().Named("reconcile")
	}
	return &Reconciler{source: source, store: store, logger: l}
}

// GetAll returns every upstream player with its override applied, in
// upstream order. Upstream failure fails the whole call.
func (r *Reconciler) GetAll(ctx context.Context) ([]model.Player, error) {
	players, err := r.source.FetchAll(ctx)
	if err != nil {
		return nil, err
	}
	overrides, err := r.store.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list overrides: %w", err)
	}
	for i, p := range players {
		if o, ok := overrides[p.ID]; ok {
			players[i] = p.Apply(o)
		}
	}
	return players, nil
}

// GetByID returns the effective player with the given id. The boolean is
// false when no upstream player carries that id.
func (r *Reconciler) GetByID(ctx context.Context, id string) (model.Player, bool, error) {
	players, err := r.source.FetchAll(ctx)
	if err != nil {
		return model.Player{}, false, err
	}
	for _, p := range players {
		if p.ID != id {
			continue
		}
		o, ok, err := r.store.Get(ctx, id)
		if err != nil {
			return model.Player{}, false, fmt.Errorf("get override %s: %w", id, err)
		}
		if ok {
			p = p.Apply(o)
		}
		return p, true, nil
	}
	return model.Player{}, false, nil
}

// Update merges patch onto the current effective player and persists the
// result as the player's full override. The returned player is built from
// the stored record alone. Overrides for ids that are not in the upstream
// dataset are never created.
func (r *Reconciler) Update(ctx context.Context, id string, patch model.Override) (model.Player, error) {
	current, ok, err := r.GetByID(ctx, id)
	if err != nil {
		return model.Player{}, err
	}
	if !ok {
		return model.Player{}, fmt.Errorf("%w: %s", model.ErrNotFound, id)
	}

	stored, err := r.store.Upsert(ctx, id, model.FromPlayer(current).Overlay(patch))
	if err != nil {
		return model.Player{}, fmt.Errorf("upsert override %s: %w", id, err)
	}
	r.logger.Info(ctx, "player override stored", logger.String("player_id", id))
	return model.Player{ID: id}.Apply(stored), nil
}
