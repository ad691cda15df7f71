// Real Estate Marketplace - Property Recommendation Service
// Copyright 2026 Bikku2002
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Bikku2002/Real-Estate-Marketplace

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bikku2002/Real-Estate-Marketplace--sub000/internal/config"
)

func openTestBadger(t *testing.T) *Badger {
	t.Helper()
	b, err := OpenBadger("", time.Minute)
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Close() })
	return b
}

func TestBadgerBackendContract(t *testing.T) {
	runBackendContract(t, openTestBadger(t))
}

func TestBadgerOnDisk(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	b, err := OpenBadger(dir, time.Minute)
	require.NoError(t, err)
	require.NoError(t, b.Set(ctx, "k", []byte("persisted"), time.Hour))
	require.NoError(t, b.Close())

	b, err = OpenBadger(dir, time.Minute)
	require.NoError(t, err)
	defer b.Close()

	v, ok, err := b.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("persisted"), v)
}

func TestBadgerClosed(t *testing.T) {
	b, err := OpenBadger("", time.Minute)
	require.NoError(t, err)
	require.NoError(t, b.Close())
	require.NoError(t, b.Close())

	_, _, err = b.Get(context.Background(), "k")
	assert.ErrorIs(t, err, ErrClosed)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		backend string
		want    string
	}{
		{"", "memory"},
		{"memory", "memory"},
		{"badger", "badger"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			b, err := Open(ctx, &config.CacheConfig{Backend: tt.backend, TTL: time.Minute}, zerolog.Nop())
			require.NoError(t, err)
			defer b.Close()
			assert.Equal(t, tt.want, b.Name())
		})
	}

	_, err := Open(ctx, &config.CacheConfig{Backend: "memcached"}, zerolog.Nop())
	assert.Error(t, err)
}
