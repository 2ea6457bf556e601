package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/okian/dugout/internal/domain/model"
)

const overridesSchema = `
CREATE TABLE IF NOT EXISTS player_overrides (
	player_id  TEXT PRIMARY KEY,
	patch_json TEXT NOT NULL,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
)`

// SQLiteStore persists overrides in a SQLite database, one JSON patch per
// player row.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the database at path and applies the schema.
// Use ":memory:" for a throwaway database.
func OpenSQLite(ctx context.Context, path string, busyTimeout time.Duration) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// One connection serializes writers and keeps ":memory:" databases shared.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		fmt.Sprintf("PRAGMA busy_timeout = %d", busyTimeout.Milliseconds()),
	}
	for _, pragma := range pragmas {
		if _, execErr := db.ExecContext(ctx, pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	if _, err := db.ExecContext(ctx, overridesSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// ListAll returns every stored record.
func (s *SQLiteStore) ListAll(ctx context.Context) (map[string]model.Override, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT player_id, patch_json FROM player_overrides`)
	if err != nil {
		return nil, fmt.Errorf("list overrides: %w", err)
	}
	defer rows.Close()

	out := make(map[string]model.Override)
	for rows.Next() {
		var id, raw string
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, fmt.Errorf("scan override: %w", err)
		}
		var o model.Override
		if err := json.Unmarshal([]byte(raw), &o); err != nil {
			return nil, fmt.Errorf("decode override %s: %w", id, err)
		}
		out[id] = o
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate overrides: %w", err)
	}
	return out, nil
}

// Get returns the record for id.
func (s *SQLiteStore) Get(ctx context.Context, id string) (model.Override, bool, error) {
	o, ok, err := getOverride(ctx, s.db, id)
	if err != nil {
		return model.Override{}, false, fmt.Errorf("get override %s: %w", id, err)
	}
	return o, ok, nil
}

// Upsert reads, overlays and writes the record in one transaction.
func (s *SQLiteStore) Upsert(ctx context.Context, id string, patch model.Override) (model.Override, error) {
	if strings.TrimSpace(id) == "" {
		return model.Override{}, ErrInvalidID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Override{}, fmt.Errorf("begin upsert: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	existing, _, err := getOverride(ctx, tx, id)
	if err != nil {
		return model.Override{}, fmt.Errorf("load override %s: %w", id, err)
	}
	stored := existing.Overlay(patch)

	payload, err := json.Marshal(stored)
	if err != nil {
		return model.Override{}, fmt.Errorf("marshal override: %w", err)
	}

	now := time.Now().UTC().Format(time.RFC3339Nano)
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO player_overrides (player_id, patch_json, created_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(player_id) DO UPDATE SET
			patch_json = excluded.patch_json,
			updated_at = excluded.updated_at`,
		id, string(payload), now, now,
	); err != nil {
		return model.Override{}, fmt.Errorf("write override %s: %w", id, err)
	}

	if err := tx.Commit(); err != nil {
		return model.Override{}, fmt.Errorf("commit upsert: %w", err)
	}
	return stored, nil
}

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func getOverride(ctx context.Context, q queryRower, id string) (model.Override, bool, error) {
	var raw string
	err := q.QueryRowContext(ctx, `SELECT patch_json FROM player_overrides WHERE player_id = ?`, id).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Override{}, false, nil
	}
	if err != nil {
		return model.Override{}, false, err
	}
	var o model.Override
	if err := json.Unmarshal([]byte(raw), &o); err != nil {
		return model.Override{}, false, fmt.Errorf("decode: %w", err)
	}
	return o, true, nil
}
