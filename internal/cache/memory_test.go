// Real Estate Marketplace - Property Recommendation Service
// Copyright 2026 Bikku2002
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Bikku2002/Real-Estate-Marketplace

package cache

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock lets tests move time without sleeping.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestMemory(t *testing.T, capacity int, ttl time.Duration) (*Memory, *fakeClock) {
	t.Helper()
	m := NewMemory(capacity, ttl)
	clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	m.mu.Lock()
	m.now = clock.Now
	m.mu.Unlock()
	t.Cleanup(func() { _ = m.Close() })
	return m, clock
}

func TestMemoryBackendContract(t *testing.T) {
	m, _ := newTestMemory(t, 10, time.Minute)
	runBackendContract(t, m)
}

func TestMemoryExpiry(t *testing.T) {
	m, clock := newTestMemory(t, 10, time.Minute)
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "short", []byte("a"), 10*time.Second))
	require.NoError(t, m.Set(ctx, "default", []byte("b"), 0))

	clock.Advance(30 * time.Second)
	_, ok, err := m.Get(ctx, "short")
	require.NoError(t, err)
	assert.False(t, ok, "entry past its own ttl")

	v, ok, err := m.Get(ctx, "default")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("b"), v)

	clock.Advance(time.Minute)
	assert.Equal(t, 1, m.CleanupExpired())
	assert.Equal(t, 0, m.Len())
}

func TestMemoryEvictsLeastRecentlyUsed(t *testing.T) {
	m, _ := newTestMemory(t, 3, time.Minute)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		require.NoError(t, m.Set(ctx, fmt.Sprintf("k%d", i), []byte{byte(i)}, 0))
	}
	// Touch k1 so k2 becomes the oldest.
	_, ok, _ := m.Get(ctx, "k1")
	require.True(t, ok)

	require.NoError(t, m.Set(ctx, "k4", []byte{4}, 0))
	assert.Equal(t, 3, m.Len())

	_, ok, _ = m.Get(ctx, "k2")
	assert.False(t, ok, "k2 should be evicted")
	for _, k := range []string{"k1", "k3", "k4"} {
		_, ok, _ = m.Get(ctx, k)
		assert.True(t, ok, k)
	}
	assert.GreaterOrEqual(t, m.GetStats().Evictions, int64(1))
}

func TestMemorySetIfAbsent(t *testing.T) {
	m, clock := newTestMemory(t, 10, time.Minute)
	ctx := context.Background()

	stored, err := m.SetIfAbsent(ctx, "k", []byte("first"), 0)
	require.NoError(t, err)
	assert.True(t, stored)

	stored, err = m.SetIfAbsent(ctx, "k", []byte("second"), 0)
	require.NoError(t, err)
	assert.False(t, stored)

	v, _, _ := m.Get(ctx, "k")
	assert.Equal(t, []byte("first"), v)

	clock.Advance(2 * time.Minute)
	stored, err = m.SetIfAbsent(ctx, "k", []byte("third"), 0)
	require.NoError(t, err)
	assert.True(t, stored, "expired entry is replaced")
}

func TestMemoryStats(t *testing.T) {
	m, _ := newTestMemory(t, 10, time.Minute)
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "k", []byte("v"), 0))
	_, _, _ = m.Get(ctx, "k")
	_, _, _ = m.Get(ctx, "missing")

	s := m.GetStats()
	assert.Equal(t, int64(1), s.Hits)
	assert.Equal(t, int64(1), s.Misses)
	assert.Equal(t, 1, s.Keys)
}

func TestMemoryClosed(t *testing.T) {
	m := NewMemory(10, time.Minute)
	require.NoError(t, m.Close())
	require.NoError(t, m.Close(), "close is idempotent")

	ctx := context.Background()
	_, _, err := m.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, m.Set(ctx, "k", nil, 0), ErrClosed)
	assert.ErrorIs(t, m.Clear(ctx), ErrClosed)
}

func TestMemoryConcurrentAccess(t *testing.T) {
	m, _ := newTestMemory(t, 50, time.Minute)
	ctx := context.Background()

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				key := fmt.Sprintf("k%d", (g*200+i)%80)
				_ = m.Set(ctx, key, []byte(key), 0)
				_, _, _ = m.Get(ctx, key)
				if i%50 == 0 {
					_ = m.Delete(ctx, key)
				}
			}
		}(g)
	}
	wg.Wait()
	assert.LessOrEqual(t, m.Len(), 50)
}

func TestDeduplicator(t *testing.T) {
	d := NewDeduplicator(100, time.Minute)
	t.Cleanup(func() { _ = d.Close() })

	assert.False(t, d.IsDuplicate("msg-1"))
	assert.True(t, d.IsDuplicate("msg-1"))
	assert.False(t, d.IsDuplicate("msg-2"))
	assert.False(t, d.IsDuplicate(""))
	assert.False(t, d.IsDuplicate(""))

	d.Forget("msg-1")
	assert.False(t, d.IsDuplicate("msg-1"))
}

// runBackendContract exercises the behaviour every Backend shares.
func runBackendContract(t *testing.T, b Backend) {
	t.Helper()
	ctx := context.Background()

	t.Run("miss", func(t *testing.T) {
		v, ok, err := b.Get(ctx, "absent")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, v)
	})

	t.Run("set get overwrite", func(t *testing.T) {
		require.NoError(t, b.Set(ctx, "rec:trending:0:10:", []byte(`[1]`), time.Minute))
		v, ok, err := b.Get(ctx, "rec:trending:0:10:")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, []byte(`[1]`), v)

		require.NoError(t, b.Set(ctx, "rec:trending:0:10:", []byte(`[2]`), time.Minute))
		v, _, _ = b.Get(ctx, "rec:trending:0:10:")
		assert.Equal(t, []byte(`[2]`), v)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, b.Set(ctx, "gone", []byte("x"), time.Minute))
		require.NoError(t, b.Delete(ctx, "gone"))
		require.NoError(t, b.Delete(ctx, "gone"), "deleting twice is fine")
		_, ok, err := b.Get(ctx, "gone")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("clear", func(t *testing.T) {
		for i := 0; i < 5; i++ {
			require.NoError(t, b.Set(ctx, fmt.Sprintf("c%d", i), []byte("x"), time.Minute))
		}
		require.NoError(t, b.Clear(ctx))
		for i := 0; i < 5; i++ {
			_, ok, err := b.Get(ctx, fmt.Sprintf("c%d", i))
			require.NoError(t, err)
			assert.False(t, ok)
		}
	})
}
