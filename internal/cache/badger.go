// Real Estate Marketplace - Property Recommendation Service
// Copyright 2026 Bikku2002
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Bikku2002/Real-Estate-Marketplace

package cache

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// Badger stores entries in BadgerDB using its native per-key TTL.
type Badger struct {
	db     *badger.DB
	ttl    time.Duration
	closed atomic.Bool
}

// OpenBadger opens a badger database at path. An empty path runs badger in
// memory, which is what tests use.
func OpenBadger(path string, ttl time.Duration) (*Badger, error) {
	opts := badger.DefaultOptions(path)
	if path == "" {
		opts = opts.WithInMemory(true)
	}
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger cache: %w", err)
	}
	return &Badger{db: db, ttl: effectiveTTL(ttl, defaultTTL)}, nil
}

// Name implements Backend.
func (b *Badger) Name() string { return "badger" }

// Get implements Backend.
func (b *Badger) Get(_ context.Context, key string) ([]byte, bool, error) {
	if b.closed.Load() {
		return nil, false, ErrClosed
	}

	var value []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(KeyPrefix + key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("badger get: %w", err)
	}
	return value, true, nil
}

// Set implements Backend.
func (b *Badger) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if b.closed.Load() {
		return ErrClosed
	}
	entry := badger.NewEntry([]byte(KeyPrefix+key), value).WithTTL(effectiveTTL(ttl, b.ttl))
	if err := b.db.Update(func(txn *badger.Txn) error {
		return txn.SetEntry(entry)
	}); err != nil {
		return fmt.Errorf("badger set: %w", err)
	}
	return nil
}

// Delete implements Backend.
func (b *Badger) Delete(_ context.Context, key string) error {
	if b.closed.Load() {
		return ErrClosed
	}
	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(KeyPrefix + key))
	})
	if err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
		return fmt.Errorf("badger delete: %w", err)
	}
	return nil
}

// Clear implements Backend.
func (b *Badger) Clear(_ context.Context) error {
	if b.closed.Load() {
		return ErrClosed
	}
	if err := b.db.DropPrefix([]byte(KeyPrefix)); err != nil {
		return fmt.Errorf("badger clear: %w", err)
	}
	return nil
}

// Close implements Backend.
func (b *Badger) Close() error {
	if !b.closed.CompareAndSwap(false, true) {
		return nil
	}
	return b.db.Close()
}
