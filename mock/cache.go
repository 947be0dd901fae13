package mock

import (
	"context"

	"github.com/fwojciec/atletiek"
)

var _ atletiek.Cache = (*Cache)(nil)

// Cache is a mock implementation of atletiek.Cache.
type Cache struct {
	LookupFn func(key atletiek.RequestKey) (*atletiek.CacheEntry, bool)
	InsertFn func(key atletiek.RequestKey, payload []byte)
	SweepFn  func() int
}

func (c *Cache) Lookup(key atletiek.RequestKey) (*atletiek.CacheEntry, bool) {
	return c.LookupFn(key)
}

func (c *Cache) Insert(key atletiek.RequestKey, payload []byte) {
	c.InsertFn(key, payload)
}

func (c *Cache) Sweep() int {
	return c.SweepFn()
}

var _ atletiek.SnapshotStore = (*SnapshotStore)(nil)

// SnapshotStore is a mock implementation of atletiek.SnapshotStore.
type SnapshotStore struct {
	SaveSnapshotFn func(ctx context.Context, records []*atletiek.CacheRecord) error
	LoadSnapshotFn func(ctx context.Context) ([]*atletiek.CacheRecord, error)
}

func (s *SnapshotStore) SaveSnapshot(ctx context.Context, records []*atletiek.CacheRecord) error {
	return s.SaveSnapshotFn(ctx, records)
}

func (s *SnapshotStore) LoadSnapshot(ctx context.Context) ([]*atletiek.CacheRecord, error) {
	return s.LoadSnapshotFn(ctx)
}
