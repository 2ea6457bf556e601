package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/okian/dugout/internal/domain/model"
	"github.com/okian/dugout/pkg/metrics"
)

// Driver names accepted by Open.
const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
	DriverBolt   = "bolt"
)

// Open constructs the store for driver. File-backed drivers create the
// parent directory of path when missing. The returned store records
// Prometheus metrics for every write and failure.
func Open(ctx context.Context, driver, path string, opts ...Option) (OverrideStore, error) {
	o := openOptions{
		busyTimeout: 5 * time.Second,
		lockTimeout: time.Second,
	}
	for _, opt := range opts {
		opt(&o)
	}

	var (
		store OverrideStore
		err   error
	)
	switch driver {
	case DriverMemory:
		store = NewMemoryStore()
	case DriverSQLite, DriverBolt:
		if err := ensureDir(path); err != nil {
			return nil, err
		}
		if driver == DriverSQLite {
			store, err = OpenSQLite(ctx, path, o.busyTimeout)
		} else {
			store, err = OpenBolt(path, o.lockTimeout)
		}
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}
	return &instrumented{next: store, driver: driver}, nil
}

func ensureDir(path string) error {
	if path == "" || path == ":memory:" {
		return nil
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create store directory: %w", err)
	}
	return nil
}

// instrumented decorates a store with metrics.
type instrumented struct {
	next   OverrideStore
	driver string
}

func (s *instrumented) ListAll(ctx context.Context) (map[string]model.Override, error) {
	out, err := s.next.ListAll(ctx)
	if err != nil {
		metrics.RecordOverrideError(s.driver, "list")
	}
	return out, err
}

func (s *instrumented) Get(ctx context.Context, id string) (model.Override, bool, error) {
	out, ok, err := s.next.Get(ctx, id)
	if err != nil {
		metrics.RecordOverrideError(s.driver, "get")
	}
	return out, ok, err
}

func (s *instrumented) Upsert(ctx context.Context, id string, patch model.Override) (model.Override, error) {
	out, err := s.next.Upsert(ctx, id, patch)
	if err != nil {
		metrics.RecordOverrideError(s.driver, "upsert")
		return out, err
	}
	metrics.RecordOverrideWrite(s.driver)
	return out, nil
}

func (s *instrumented) Close() error {
	return s.next.Close()
}
