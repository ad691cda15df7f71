// Real Estate Marketplace - Property Recommendation Service
// Copyright 2026 Bikku2002
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Bikku2002/Real-Estate-Marketplace

package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/Bikku2002/Real-Estate-Marketplace--sub000/internal/models"
)

var errBoom = errors.New("boom")

type fakeRefresher struct {
	mu     sync.Mutex
	limits []int
	err    error
	calls  chan struct{}
}

func newFakeRefresher(err error) *fakeRefresher {
	return &fakeRefresher{err: err, calls: make(chan struct{}, 16)}
}

func (f *fakeRefresher) RefreshTrending(_ context.Context, limit int, filter models.CandidateFilter) (int, error) {
	f.mu.Lock()
	f.limits = append(f.limits, limit)
	f.mu.Unlock()
	select {
	case f.calls <- struct{}{}:
	default:
	}
	empty := models.CandidateFilter{}
	if filter.CacheKey() != empty.CacheKey() {
		return 0, errors.New("warmer must refresh the unfiltered list")
	}
	return limit, f.err
}

func waitCall(t *testing.T, f *fakeRefresher) {
	t.Helper()
	select {
	case <-f.calls:
	case <-time.After(time.Second):
		t.Fatal("RefreshTrending was not called")
	}
}

func TestNewTrendingWarmer_Defaults(t *testing.T) {
	w := NewTrendingWarmer(newFakeRefresher(nil), TrendingWarmerConfig{}, zerolog.Nop())
	if w.config.Interval != time.Minute {
		t.Errorf("Interval = %v, want 1m", w.config.Interval)
	}
	if w.config.Limit != 10 {
		t.Errorf("Limit = %d, want 10", w.config.Limit)
	}
	if w.config.Timeout != w.config.Interval {
		t.Errorf("Timeout = %v, want %v", w.config.Timeout, w.config.Interval)
	}
	if w.String() != "trending-warmer" {
		t.Errorf("String() = %q", w.String())
	}
}

func TestTrendingWarmer_Serve(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{name: "refreshes on start and on tick"},
		{name: "keeps running after a failed refresh", err: errBoom},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			refresher := newFakeRefresher(tt.err)
			w := NewTrendingWarmer(refresher, TrendingWarmerConfig{
				Interval:    10 * time.Millisecond,
				Limit:       25,
				WarmOnStart: true,
			}, zerolog.Nop())

			ctx, cancel := context.WithCancel(context.Background())
			errCh := make(chan error, 1)
			go func() { errCh <- w.Serve(ctx) }()

			waitCall(t, refresher)
			waitCall(t, refresher)
			cancel()

			select {
			case err := <-errCh:
				if !errors.Is(err, context.Canceled) {
					t.Errorf("expected context.Canceled, got %v", err)
				}
			case <-time.After(time.Second):
				t.Fatal("Serve did not return")
			}

			refresher.mu.Lock()
			defer refresher.mu.Unlock()
			for _, limit := range refresher.limits {
				if limit != 25 {
					t.Errorf("refreshed with limit %d, want 25", limit)
				}
			}
		})
	}
}
