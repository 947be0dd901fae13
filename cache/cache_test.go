package cache_test

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/fwojciec/atletiek"
	"github.com/fwojciec/atletiek/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clock is a manually advanced clock safe for concurrent reads.
type clock struct {
	mu  sync.Mutex
	now time.Time
}

func newClock() *clock {
	return &clock{now: time.Date(2024, time.March, 9, 12, 0, 0, 0, time.UTC)}
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestCache_LookupInsert(t *testing.T) {
	t.Parallel()

	t.Run("returns what was inserted", func(t *testing.T) {
		t.Parallel()

		clk := newClock()
		c := cache.New(cache.WithClock(clk.Now))
		key := atletiek.NewResultsKey(1734217)

		_, ok := c.Lookup(key)
		assert.False(t, ok)

		c.Insert(key, []byte(`{"name":"Marith Siekman"}`))

		e, ok := c.Lookup(key)
		require.True(t, ok)
		assert.Equal(t, `{"name":"Marith Siekman"}`, string(e.Payload))
		assert.Equal(t, clk.Now(), e.CreatedAt)
	})

	t.Run("equivalent requests share an entry", func(t *testing.T) {
		t.Parallel()

		c := cache.New()
		c.Insert(atletiek.NewSearchAthletesKey("  Siekman "), []byte("1"))

		e, ok := c.Lookup(atletiek.NewSearchAthletesKey("siekman"))
		require.True(t, ok)
		assert.Equal(t, "1", string(e.Payload))
	})

	t.Run("insert replaces the entry", func(t *testing.T) {
		t.Parallel()

		c := cache.New()
		key := atletiek.NewRegistrationsKey(38436)
		c.Insert(key, []byte("old"))
		c.Insert(key, []byte("new"))

		e, ok := c.Lookup(key)
		require.True(t, ok)
		assert.Equal(t, "new", string(e.Payload))
		assert.Equal(t, 1, c.Len())
	})

	t.Run("payloads are not aliased", func(t *testing.T) {
		t.Parallel()

		c := cache.New()
		key := atletiek.NewRegistrationsKey(38436)
		payload := []byte("abc")
		c.Insert(key, payload)
		payload[0] = 'x'

		e, ok := c.Lookup(key)
		require.True(t, ok)
		e.Payload[1] = 'y'

		again, ok := c.Lookup(key)
		require.True(t, ok)
		assert.Equal(t, "abc", string(again.Payload))
	})
}

func TestCache_Sweep(t *testing.T) {
	t.Parallel()

	t.Run("removes entries older than their TTL", func(t *testing.T) {
		t.Parallel()

		clk := newClock()
		c := cache.New(cache.WithClock(clk.Now))
		results := atletiek.NewResultsKey(1)
		profile := atletiek.NewAthleteProfileKey(1)
		c.Insert(results, []byte("r"))
		c.Insert(profile, []byte("p"))

		clk.Advance(12 * time.Hour)
		assert.Equal(t, 0, c.Sweep(), "an entry exactly at its TTL is kept")

		clk.Advance(time.Second)
		assert.Equal(t, 1, c.Sweep())
		_, ok := c.Lookup(profile)
		assert.False(t, ok)
		_, ok = c.Lookup(results)
		assert.True(t, ok, "results live for a day")

		clk.Advance(12 * time.Hour)
		assert.Equal(t, 1, c.Sweep())
		assert.Equal(t, 0, c.Len())
	})

	t.Run("lookup still returns expired entries until swept", func(t *testing.T) {
		t.Parallel()

		clk := newClock()
		c := cache.New(cache.WithClock(clk.Now))
		key := atletiek.NewAthleteProfileKey(1)
		c.Insert(key, []byte("p"))
		clk.Advance(48 * time.Hour)

		e, ok := c.Lookup(key)
		require.True(t, ok)
		assert.Equal(t, 48*time.Hour, e.Age(clk.Now()))
	})
}

func TestCache_SnapshotRestore(t *testing.T) {
	t.Parallel()

	clk := newClock()
	c := cache.New(cache.WithClock(clk.Now))
	c.Insert(atletiek.NewResultsKey(2), []byte("two"))
	clk.Advance(time.Hour)
	c.Insert(atletiek.NewRegistrationsKey(1), []byte("one"))

	records := c.Snapshot()
	require.Len(t, records, 2)
	assert.Equal(t, atletiek.NewRegistrationsKey(1), records[0].Key)
	assert.Equal(t, atletiek.NewResultsKey(2), records[1].Key)

	records = append(records, &atletiek.CacheRecord{Key: atletiek.RequestKey{Kind: "bogus"}}, nil)

	restored := cache.New(cache.WithClock(clk.Now))
	assert.Equal(t, 2, restored.Restore(records))
	assert.Equal(t, 2, restored.Len())

	e, ok := restored.Lookup(atletiek.NewResultsKey(2))
	require.True(t, ok)
	assert.Equal(t, "two", string(e.Payload))
	assert.Equal(t, clk.Now().Add(-time.Hour), e.CreatedAt, "restore keeps the original timestamp")
}

func TestCache_Clear(t *testing.T) {
	t.Parallel()

	c := cache.New()
	for i := range 10 {
		c.Insert(atletiek.NewResultsKey(uint32(i+1)), []byte("x"))
	}

	assert.Equal(t, 10, c.Clear())
	assert.Equal(t, 0, c.Len())
}

func TestCache_Concurrent(t *testing.T) {
	t.Parallel()

	c := cache.New()
	var wg sync.WaitGroup
	for g := range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 200 {
				key := atletiek.NewSearchAthletesKey(fmt.Sprintf("athlete-%d", i%50))
				c.Insert(key, []byte(fmt.Sprintf("%d-%d", g, i)))
				_, ok := c.Lookup(key)
				assert.True(t, ok)
				if i%20 == 0 {
					c.Sweep()
				}
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, c.Len())
}

func TestCache_Run(t *testing.T) {
	t.Parallel()

	clk := newClock()
	c := cache.New(cache.WithClock(clk.Now))
	c.Insert(atletiek.NewAthleteProfileKey(1), []byte("p"))
	clk.Advance(13 * time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		c.Run(ctx, time.Millisecond)
		close(done)
	}()

	assert.Eventually(t, func() bool { return c.Len() == 0 }, time.Second, time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestCache_Start(t *testing.T) {
	t.Parallel()

	t.Run("stop waits for the sweep loop to return", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
		clk := newClock()
		c := cache.New(cache.WithClock(clk.Now), cache.WithLogger(logger))
		c.Insert(atletiek.NewRegistrationsKey(1), []byte("r"))
		clk.Advance(13 * time.Hour)

		stop := c.Start(context.Background(), time.Millisecond)
		assert.Eventually(t, func() bool { return c.Len() == 0 }, time.Second, time.Millisecond)
		stop()
		stop()

		assert.Equal(t, 1, strings.Count(buf.String(), `msg="sweep loop stopped"`))
	})

	t.Run("stops when the parent context ends", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		stop := cache.New().Start(ctx, time.Hour)
		cancel()

		done := make(chan struct{})
		go func() {
			stop()
			close(done)
		}()
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("stop did not return")
		}
	})
}

func TestDefaultSweepInterval(t *testing.T) {
	t.Parallel()

	assert.Equal(t, time.Minute, cache.DefaultSweepInterval)
}
