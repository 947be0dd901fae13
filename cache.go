package atletiek

import (
	"context"
	"time"
)

// CacheEntry is a cached, serialized result.
type CacheEntry struct {
	CreatedAt time.Time
	Payload   []byte
}

// Age returns how old the entry is at now.
func (e *CacheEntry) Age(now time.Time) time.Duration {
	return now.Sub(e.CreatedAt)
}

// CacheRecord is a cache entry together with its key, as persisted in a snapshot.
type CacheRecord struct {
	Key       RequestKey `json:"key"`
	CreatedAt time.Time  `json:"createdAt"`
	Payload   []byte     `json:"payload"`
}

// Cache stores serialized results keyed by request.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Lookup returns the entry for key, if present. It never blocks on I/O.
	// The entry may be expired if no sweep has run since it expired.
	Lookup(key RequestKey) (*CacheEntry, bool)

	// Insert stores payload under key, replacing any existing entry,
	// stamped with the current time.
	Insert(key RequestKey, payload []byte)

	// Sweep removes entries older than their key's TTL and reports how many
	// were removed.
	Sweep() int
}

// SnapshotStore persists cache snapshots across restarts.
type SnapshotStore interface {
	// SaveSnapshot replaces the stored snapshot with records.
	SaveSnapshot(ctx context.Context, records []*CacheRecord) error

	// LoadSnapshot returns the stored records. Records that cannot be
	// decoded are dropped rather than failing the load.
	// A store that was never written returns no records and no error.
	LoadSnapshot(ctx context.Context) ([]*CacheRecord, error)
}

// CacheStatus reports whether a Service call was answered from the cache
// and, if so, how old the cached result was.
type CacheStatus struct {
	Hit       bool
	CreatedAt time.Time
	Age       time.Duration
}

type cacheStatusKey struct{}

// WithCacheStatus returns a context whose next Service call records its
// cache status in the returned CacheStatus. If ctx already carries a status
// it is reused. A status must not be shared by concurrent calls.
func WithCacheStatus(ctx context.Context) (context.Context, *CacheStatus) {
	if st := CacheStatusFrom(ctx); st != nil {
		return ctx, st
	}
	st := &CacheStatus{}
	return context.WithValue(ctx, cacheStatusKey{}, st), st
}

// CacheStatusFrom returns the status recorder carried by ctx, or nil.
func CacheStatusFrom(ctx context.Context) *CacheStatus {
	st, _ := ctx.Value(cacheStatusKey{}).(*CacheStatus)
	return st
}
