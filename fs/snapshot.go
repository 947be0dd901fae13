// Package fs provides file-based storage for cache snapshots.
package fs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fwojciec/atletiek"
)

// SnapshotVersion is the version of the snapshot file format.
const SnapshotVersion = 1

// Ensure SnapshotFile implements atletiek.SnapshotStore at compile time.
var _ atletiek.SnapshotStore = (*SnapshotFile)(nil)

// SnapshotFile stores the cache snapshot as a single JSON document.
// Saves write a temporary file next to the target and rename it into place,
// so a crash never leaves a half-written snapshot behind.
type SnapshotFile struct {
	path   string
	logger *slog.Logger
}

// NewSnapshotFile creates a SnapshotFile at path. A nil logger discards
// diagnostics about skipped entries.
func NewSnapshotFile(path string, logger *slog.Logger) *SnapshotFile {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &SnapshotFile{path: path, logger: logger}
}

type snapshotDocument struct {
	Version int               `json:"version"`
	Entries []json.RawMessage `json:"entries"`
}

type snapshotEntry struct {
	Key       atletiek.RequestKey `json:"key"`
	CreatedAt int64               `json:"createdAt"`
	Payload   json.RawMessage     `json:"payload"`
}

// SaveSnapshot replaces the file with records. Records whose payload is not
// valid JSON are left out.
func (s *SnapshotFile) SaveSnapshot(ctx context.Context, records []*atletiek.CacheRecord) error {
	doc := snapshotDocument{Version: SnapshotVersion, Entries: make([]json.RawMessage, 0, len(records))}
	for _, r := range records {
		if !json.Valid(r.Payload) {
			s.logger.Warn("not saving cache entry with invalid payload", "key", r.Key.String())
			continue
		}
		entry, err := json.Marshal(snapshotEntry{Key: r.Key, CreatedAt: r.CreatedAt.Unix(), Payload: r.Payload})
		if err != nil {
			return fmt.Errorf("failed to encode cache entry %s: %w", r.Key, err)
		}
		doc.Entries = append(doc.Entries, entry)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return writeFileAtomic(s.path, data)
}

// LoadSnapshot reads the file. A missing file yields no records; entries
// that cannot be decoded are skipped.
func (s *SnapshotFile) LoadSnapshot(ctx context.Context) ([]*atletiek.CacheRecord, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	var doc snapshotDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, atletiek.Errorf(atletiek.EINVALID, "snapshot %s is not valid JSON: %v", s.path, err)
	}
	if doc.Version != SnapshotVersion {
		return nil, atletiek.Errorf(atletiek.EINVALID, "snapshot %s has unsupported version %d", s.path, doc.Version)
	}

	records := make([]*atletiek.CacheRecord, 0, len(doc.Entries))
	for i, raw := range doc.Entries {
		var e snapshotEntry
		if err := json.Unmarshal(raw, &e); err != nil {
			s.logger.Warn("skipping snapshot entry", "index", i, "err", err)
			continue
		}
		if err := e.Key.Validate(); err != nil {
			s.logger.Warn("skipping snapshot entry", "index", i, "err", err)
			continue
		}
		records = append(records, &atletiek.CacheRecord{
			Key:       e.Key,
			CreatedAt: time.Unix(e.CreatedAt, 0).UTC(),
			Payload:   []byte(e.Payload),
		})
	}

	return records, ctx.Err()
}

// writeFileAtomic writes data to a temporary file in the target directory
// and renames it over path.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), path)
}
