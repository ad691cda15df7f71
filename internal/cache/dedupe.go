// Real Estate Marketplace - Property Recommendation Service
// Copyright 2026 Bikku2002
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Bikku2002/Real-Estate-Marketplace

package cache

import (
	"context"
	"time"
)

// Deduplicator remembers keys for a window so redelivered messages can be
// dropped. It is bounded: under pressure the oldest keys are forgotten first.
type Deduplicator struct {
	seen   *Memory
	window time.Duration
}

// NewDeduplicator remembers up to capacity keys for window.
func NewDeduplicator(capacity int, window time.Duration) *Deduplicator {
	return &Deduplicator{seen: NewMemory(capacity, window), window: window}
}

// IsDuplicate reports whether key was recorded within the window, and
// records it if not. Empty keys are never duplicates.
func (d *Deduplicator) IsDuplicate(key string) bool {
	if key == "" {
		return false
	}
	stored, err := d.seen.SetIfAbsent(context.Background(), key, nil, d.window)
	if err != nil {
		return false
	}
	return !stored
}

// Forget removes key so a failed message can be retried.
func (d *Deduplicator) Forget(key string) {
	_ = d.seen.Delete(context.Background(), key)
}

// Close stops the cleanup loop.
func (d *Deduplicator) Close() error {
	return d.seen.Close()
}
