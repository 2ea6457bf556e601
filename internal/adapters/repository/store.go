// Package repository persists player override records.
package repository

import (
	"context"

	"github.com/okian/dugout/internal/domain/model"
)

// OverrideStore is durable key-value persistence of override records keyed
// by player id. Atomicity of a single Upsert is delegated to the driver.
type OverrideStore interface {
	// ListAll returns every stored record keyed by player id.
	ListAll(ctx context.Context) (map[string]model.Override, error)

	// Get returns the record for id; ok is false when none exists.
	Get(ctx context.Context, id string) (model.Override, bool, error)

	// Upsert creates the record when absent, otherwise overlays patch on the
	// stored record field by field. It returns the stored result.
	Upsert(ctx context.Context, id string, patch model.Override) (model.Override, error)

	// Close releases the underlying resources.
	Close() error
}
