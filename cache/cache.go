// Package cache implements an in-memory, concurrent request cache.
package cache

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/atletiek"
)

// shardCount is the number of independently locked partitions. Keys are
// spread over shards by the hash of their canonical string.
const shardCount = 32

// DefaultSweepInterval is how often Run removes expired entries.
const DefaultSweepInterval = time.Minute

// Ensure Cache implements atletiek.Cache at compile time.
var _ atletiek.Cache = (*Cache)(nil)

// Cache is a sharded map from request keys to serialized results.
// Lookups take a shard read lock only, so concurrent readers of different
// keys never contend on writes elsewhere in the cache.
type Cache struct {
	shards [shardCount]shard
	now    func() time.Time
	logger *slog.Logger
}

type shard struct {
	mu      sync.RWMutex
	entries map[atletiek.RequestKey]*atletiek.CacheEntry
}

// Option configures a Cache.
type Option func(*Cache)

// WithClock sets the clock used to stamp and expire entries.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		c.now = now
	}
}

// WithLogger sets the logger for sweeps and restores.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Cache) {
		c.logger = logger
	}
}

// New creates an empty Cache.
func New(opts ...Option) *Cache {
	c := &Cache{
		now:    time.Now,
		logger: slog.New(slog.DiscardHandler),
	}
	for i := range c.shards {
		c.shards[i].entries = make(map[atletiek.RequestKey]*atletiek.CacheEntry)
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Cache) shard(key atletiek.RequestKey) *shard {
	return &c.shards[xxhash.Sum64String(key.String())%shardCount]
}

// Lookup returns a copy of the entry for key.
func (c *Cache) Lookup(key atletiek.RequestKey) (*atletiek.CacheEntry, bool) {
	s := c.shard(key)
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	return &atletiek.CacheEntry{CreatedAt: e.CreatedAt, Payload: slices.Clone(e.Payload)}, true
}

// Insert stores a copy of payload under key, stamped with the current time.
func (c *Cache) Insert(key atletiek.RequestKey, payload []byte) {
	c.set(key, c.now(), payload)
}

func (c *Cache) set(key atletiek.RequestKey, createdAt time.Time, payload []byte) {
	e := &atletiek.CacheEntry{CreatedAt: createdAt, Payload: slices.Clone(payload)}
	s := c.shard(key)
	s.mu.Lock()
	s.entries[key] = e
	s.mu.Unlock()
}

// Sweep removes entries older than their key's TTL.
func (c *Cache) Sweep() int {
	now := c.now()
	var removed int
	for i := range c.shards {
		s := &c.shards[i]
		s.mu.Lock()
		for key, e := range s.entries {
			if e.Age(now) > key.TTL() {
				delete(s.entries, key)
				removed++
			}
		}
		s.mu.Unlock()
	}
	return removed
}

// Clear removes all entries and reports how many there were.
func (c *Cache) Clear() int {
	var removed int
	for i := range c.shards {
		s := &c.shards[i]
		s.mu.Lock()
		removed += len(s.entries)
		clear(s.entries)
		s.mu.Unlock()
	}
	return removed
}

// Len returns the number of entries, expired or not.
func (c *Cache) Len() int {
	var n int
	for i := range c.shards {
		s := &c.shards[i]
		s.mu.RLock()
		n += len(s.entries)
		s.mu.RUnlock()
	}
	return n
}

// Snapshot returns a copy of every entry, ordered by key.
func (c *Cache) Snapshot() []*atletiek.CacheRecord {
	var records []*atletiek.CacheRecord
	for i := range c.shards {
		s := &c.shards[i]
		s.mu.RLock()
		for key, e := range s.entries {
			records = append(records, &atletiek.CacheRecord{
				Key:       key,
				CreatedAt: e.CreatedAt,
				Payload:   slices.Clone(e.Payload),
			})
		}
		s.mu.RUnlock()
	}
	slices.SortFunc(records, func(a, b *atletiek.CacheRecord) int {
		return strings.Compare(a.Key.String(), b.Key.String())
	})
	return records
}

// Restore inserts records with their original timestamps and reports how
// many were restored. Records with invalid keys are skipped.
func (c *Cache) Restore(records []*atletiek.CacheRecord) int {
	var n int
	for _, r := range records {
		if r == nil {
			continue
		}
		if err := r.Key.Validate(); err != nil {
			c.logger.Warn("skipping cache record", "key", r.Key.String(), "err", err)
			continue
		}
		c.set(r.Key, r.CreatedAt, r.Payload)
		n++
	}
	return n
}

// Run sweeps the cache every interval until ctx is done. A sweep that is
// in progress when ctx ends completes before Run returns.
func (c *Cache) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			c.logger.Debug("sweep loop stopped")
			return
		case <-ticker.C:
			if n := c.Sweep(); n > 0 {
				c.logger.Debug("swept expired cache entries", "removed", n, "remaining", c.Len())
			}
		}
	}
}

// Start runs Run in a new goroutine. The returned stop function ends the
// loop and waits for it to return, so no sweep runs after stop. Calling
// stop more than once is safe.
func (c *Cache) Start(ctx context.Context, interval time.Duration) (stop func()) {
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		c.Run(ctx, interval)
	}()
	return sync.OnceFunc(func() {
		cancel()
		<-done
	})
}
