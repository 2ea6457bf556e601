package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"go.etcd.io/bbolt"

	"github.com/okian/dugout/internal/domain/model"
)

const overridesBucket = "player_overrides"

// BoltStore persists overrides as JSON values in a BoltDB bucket.
type BoltStore struct {
	db *bbolt.DB
}

// OpenBolt opens a BoltDB-backed store at path.
func OpenBolt(path string, lockTimeout time.Duration) (*BoltStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	db, err := bbolt.Open(filepath.Clean(path), 0o600, &bbolt.Options{Timeout: lockTimeout})
	if err != nil {
		return nil, fmt.Errorf("open storage db: %w", err)
	}

	if err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(overridesBucket))
		return err
	}); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create bucket: %w", err)
	}

	return &BoltStore{db: db}, nil
}

// Close closes the underlying BoltDB database.
func (s *BoltStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// ListAll returns every stored record.
func (s *BoltStore) ListAll(ctx context.Context) (map[string]model.Override, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make(map[string]model.Override)
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(overridesBucket)).ForEach(func(k, v []byte) error {
			var o model.Override
			if err := json.Unmarshal(v, &o); err != nil {
				return fmt.Errorf("decode override %s: %w", k, err)
			}
			out[string(k)] = o
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("list overrides: %w", err)
	}
	return out, nil
}

// Get returns the record for id.
func (s *BoltStore) Get(ctx context.Context, id string) (model.Override, bool, error) {
	if err := ctx.Err(); err != nil {
		return model.Override{}, false, err
	}
	var (
		o  model.Override
		ok bool
	)
	err := s.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket([]byte(overridesBucket)).Get([]byte(id))
		if v == nil {
			return nil
		}
		ok = true
		return json.Unmarshal(v, &o)
	})
	if err != nil {
		return model.Override{}, false, fmt.Errorf("get override %s: %w", id, err)
	}
	return o, ok, nil
}

// Upsert reads, overlays and writes the record in one update transaction.
func (s *BoltStore) Upsert(ctx context.Context, id string, patch model.Override) (model.Override, error) {
	if err := ctx.Err(); err != nil {
		return model.Override{}, err
	}
	if strings.TrimSpace(id) == "" {
		return model.Override{}, ErrInvalidID
	}

	var stored model.Override
	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(overridesBucket))
		var existing model.Override
		if v := bucket.Get([]byte(id)); v != nil {
			if err := json.Unmarshal(v, &existing); err != nil {
				return fmt.Errorf("decode: %w", err)
			}
		}
		stored = existing.Overlay(patch)
		payload, err := json.Marshal(stored)
		if err != nil {
			return fmt.Errorf("marshal: %w", err)
		}
		return bucket.Put([]byte(id), payload)
	})
	if err != nil {
		return model.Override{}, fmt.Errorf("upsert override %s: %w", id, err)
	}
	return stored, nil
}
