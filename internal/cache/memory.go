// Real Estate Marketplace - Property Recommendation Service
// Copyright 2026 Bikku2002
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Bikku2002/Real-Estate-Marketplace

package cache

import (
	"context"
	"sync"
	"time"
)

const (
	// DefaultCapacity bounds the in-memory backend.
	DefaultCapacity = 10000

	defaultTTL      = 5 * time.Minute
	cleanupInterval = time.Minute
)

type memoryEntry struct {
	key       string
	value     []byte
	expiresAt time.Time
	prev      *memoryEntry
	next      *memoryEntry
}

// Stats is a snapshot of Memory usage.
type Stats struct {
	Hits        int64
	Misses      int64
	Evictions   int64
	Keys        int
	LastCleanup time.Time
}

// Memory is a thread-safe LRU with per-entry expiry. Entries expire lazily
// on Get and in a background sweep; when full the least recently used entry
// is evicted.
type Memory struct {
	mu       sync.Mutex
	capacity int
	ttl      time.Duration
	items    map[string]*memoryEntry

	// head.next is the most recently used entry, tail.prev the least.
	head *memoryEntry
	tail *memoryEntry

	stats  Stats
	closed bool
	stop   chan struct{}
	now    func() time.Time
}

// NewMemory creates a Memory backend and starts its cleanup loop.
func NewMemory(capacity int, ttl time.Duration) *Memory {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	m := &Memory{
		capacity: capacity,
		ttl:      effectiveTTL(ttl, defaultTTL),
		items:    make(map[string]*memoryEntry),
		head:     &memoryEntry{},
		tail:     &memoryEntry{},
		stop:     make(chan struct{}),
		now:      time.Now,
	}
	m.head.next = m.tail
	m.tail.prev = m.head
	m.stats.LastCleanup = m.now()

	go m.cleanupLoop()
	return m
}

// Name implements Backend.
func (m *Memory) Name() string { return "memory" }

// Get implements Backend.
func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil, false, ErrClosed
	}

	e, ok := m.items[key]
	if !ok {
		m.stats.Misses++
		return nil, false, nil
	}
	if m.now().After(e.expiresAt) {
		m.remove(e)
		m.stats.Misses++
		m.stats.Evictions++
		return nil, false, nil
	}

	m.moveToFront(e)
	m.stats.Hits++
	return e.value, true, nil
}

// Set implements Backend. The value is stored as given; callers must not
// mutate it afterwards.
func (m *Memory) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	m.set(key, value, ttl)
	return nil
}

// SetIfAbsent stores value unless a live entry exists. It reports whether
// the value was stored.
func (m *Memory) SetIfAbsent(_ context.Context, key string, value []byte, ttl time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return false, ErrClosed
	}
	if e, ok := m.items[key]; ok && !m.now().After(e.expiresAt) {
		m.moveToFront(e)
		return false, nil
	}
	m.set(key, value, ttl)
	return true, nil
}

func (m *Memory) set(key string, value []byte, ttl time.Duration) {
	expiresAt := m.now().Add(effectiveTTL(ttl, m.ttl))
	if e, ok := m.items[key]; ok {
		e.value = value
		e.expiresAt = expiresAt
		m.moveToFront(e)
		return
	}

	e := &memoryEntry{key: key, value: value, expiresAt: expiresAt}
	m.pushFront(e)
	m.items[key] = e
	for len(m.items) > m.capacity {
		m.remove(m.tail.prev)
		m.stats.Evictions++
	}
}

// Delete implements Backend.
func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	if e, ok := m.items[key]; ok {
		m.remove(e)
		m.stats.Evictions++
	}
	return nil
}

// Clear implements Backend.
func (m *Memory) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	m.stats.Evictions += int64(len(m.items))
	m.items = make(map[string]*memoryEntry)
	m.head.next = m.tail
	m.tail.prev = m.head
	return nil
}

// Close stops the cleanup loop and drops every entry.
func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil
	}
	m.closed = true
	m.items = nil
	close(m.stop)
	return nil
}

// Len returns the number of stored entries, expired ones included until swept.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

// GetStats returns a snapshot of the counters.
func (m *Memory) GetStats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.stats
	s.Keys = len(m.items)
	return s
}

// CleanupExpired removes expired entries and returns how many were removed.
func (m *Memory) CleanupExpired() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return 0
	}

	now := m.now()
	removed := 0
	for e := m.tail.prev; e != m.head; {
		prev := e.prev
		if now.After(e.expiresAt) {
			m.remove(e)
			removed++
		}
		e = prev
	}
	m.stats.Evictions += int64(removed)
	m.stats.LastCleanup = now
	return removed
}

func (m *Memory) cleanupLoop() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-m.stop:
			return
		case <-ticker.C:
			m.CleanupExpired()
		}
	}
}

// list helpers, called with mu held

func (m *Memory) pushFront(e *memoryEntry) {
	e.prev = m.head
	e.next = m.head.next
	m.head.next.prev = e
	m.head.next = e
}

func (m *Memory) moveToFront(e *memoryEntry) {
	e.prev.next = e.next
	e.next.prev = e.prev
	m.pushFront(e)
}

func (m *Memory) remove(e *memoryEntry) {
	e.prev.next = e.next
	e.next.prev = e.prev
	delete(m.items, e.key)
}
