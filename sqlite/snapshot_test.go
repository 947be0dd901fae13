package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/fwojciec/atletiek"
	"github.com/fwojciec/atletiek/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotStore(t *testing.T) {
	t.Parallel()

	createdAt := time.Date(2024, time.March, 9, 12, 30, 15, 500, time.UTC)
	records := []*atletiek.CacheRecord{
		{
			Key:       atletiek.NewSearchCompetitionsKey(atletiek.NewDate(2024, time.March, 1), atletiek.NewDate(2024, time.March, 31), "Indoor", ""),
			CreatedAt: createdAt,
			Payload:   []byte(`[]`),
		},
		{
			Key:       atletiek.NewResultsKey(1734217),
			CreatedAt: createdAt.Add(time.Hour),
			Payload:   []byte(`{"name":"Marith Siekman"}`),
		},
	}

	t.Run("returns nothing when never written", func(t *testing.T) {
		t.Parallel()

		store := sqlite.NewSnapshotStore(setupTestDB(t), nil)

		got, err := store.LoadSnapshot(context.Background())
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("round-trips records", func(t *testing.T) {
		t.Parallel()

		store := sqlite.NewSnapshotStore(setupTestDB(t), nil)
		ctx := context.Background()

		require.NoError(t, store.SaveSnapshot(ctx, records))

		got, err := store.LoadSnapshot(ctx)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, records[1].Key, got[0].Key, "ordered by canonical key")
		assert.True(t, records[1].CreatedAt.Equal(got[0].CreatedAt))
		assert.Equal(t, records[1].Payload, got[0].Payload)
		assert.Equal(t, records[0].Key, got[1].Key)
		assert.True(t, createdAt.Equal(got[1].CreatedAt))
	})

	t.Run("replaces the previous snapshot", func(t *testing.T) {
		t.Parallel()

		store := sqlite.NewSnapshotStore(setupTestDB(t), nil)
		ctx := context.Background()

		require.NoError(t, store.SaveSnapshot(ctx, records))
		require.NoError(t, store.SaveSnapshot(ctx, records[:1]))

		got, err := store.LoadSnapshot(ctx)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, records[0].Key, got[0].Key)
	})

	t.Run("skips rows that cannot be decoded", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		store := sqlite.NewSnapshotStore(db, nil)
		ctx := context.Background()
		require.NoError(t, store.SaveSnapshot(ctx, records))

		_, err := db.ExecContext(ctx, `INSERT INTO cache_entries (cache_key, kind, key_json, created_at, payload) VALUES
			('bogus', 'bogus', '{"kind":"bogus"}', '2024-03-09T12:00:00Z', x'00'),
			('broken', 'results', 'not json', '2024-03-09T12:00:00Z', x'00'),
			('results:9', 'results', '{"kind":"results","id":9}', 'yesterday', x'00')`)
		require.NoError(t, err)

		got, err := store.LoadSnapshot(ctx)
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})
}
