package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/fwojciec/atletiek"
)

// Ensure SnapshotStore implements atletiek.SnapshotStore at compile time.
var _ atletiek.SnapshotStore = (*SnapshotStore)(nil)

// SnapshotStore keeps the cache snapshot in the cache_entries table.
type SnapshotStore struct {
	db     *DB
	logger *slog.Logger
}

// NewSnapshotStore creates a new SnapshotStore. A nil logger discards
// diagnostics about skipped rows.
func NewSnapshotStore(db *DB, logger *slog.Logger) *SnapshotStore {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &SnapshotStore{db: db, logger: logger}
}

// SaveSnapshot replaces all stored entries with records in one transaction.
func (s *SnapshotStore) SaveSnapshot(ctx context.Context, records []*atletiek.CacheRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM cache_entries"); err != nil {
		return fmt.Errorf("failed to clear cache entries: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO cache_entries (cache_key, kind, key_json, created_at, payload)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		keyJSON, err := json.Marshal(r.Key)
		if err != nil {
			return fmt.Errorf("failed to encode key %s: %w", r.Key, err)
		}
		if _, err := stmt.ExecContext(ctx, r.Key.String(), string(r.Key.Kind), string(keyJSON), formatTimestamp(r.CreatedAt), r.Payload); err != nil {
			return fmt.Errorf("failed to insert cache entry %s: %w", r.Key, err)
		}
	}

	return tx.Commit()
}

// LoadSnapshot returns all stored entries ordered by key. Rows that cannot
// be decoded are skipped.
func (s *SnapshotStore) LoadSnapshot(ctx context.Context) ([]*atletiek.CacheRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT cache_key, key_json, created_at, payload
		FROM cache_entries
		ORDER BY cache_key
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query cache entries: %w", err)
	}
	defer rows.Close()

	var records []*atletiek.CacheRecord
	for rows.Next() {
		var cacheKey, keyJSON, createdAt string
		var payload []byte
		if err := rows.Scan(&cacheKey, &keyJSON, &createdAt, &payload); err != nil {
			return nil, fmt.Errorf("failed to scan cache entry: %w", err)
		}

		r, err := decodeRecord(keyJSON, createdAt, payload)
		if err != nil {
			s.logger.Warn("skipping stored cache entry", "key", cacheKey, "err", err)
			continue
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cache entries: %w", err)
	}

	return records, nil
}

func decodeRecord(keyJSON, createdAt string, payload []byte) (*atletiek.CacheRecord, error) {
	var key atletiek.RequestKey
	if err := json.Unmarshal([]byte(keyJSON), &key); err != nil {
		return nil, fmt.Errorf("failed to decode key: %w", err)
	}
	if err := key.Validate(); err != nil {
		return nil, err
	}
	t, err := parseTimestamp(createdAt, "created_at")
	if err != nil {
		return nil, err
	}
	return &atletiek.CacheRecord{Key: key, CreatedAt: t, Payload: payload}, nil
}
