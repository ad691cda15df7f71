// Real Estate Marketplace - Property Recommendation Service
// Copyright 2026 Bikku2002
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Bikku2002/Real-Estate-Marketplace

package featurestore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/Bikku2002/Real-Estate-Marketplace--sub000/internal/models"
)

// faultyStore wraps a MemoryStore and can fail or block its reads.
type faultyStore struct {
	*MemoryStore
	err   error
	block chan struct{}
	calls int
}

func (f *faultyStore) LoadPreferences(ctx context.Context, userID int64) ([]models.UserPreference, error) {
	f.calls++
	if f.block != nil {
		<-f.block
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.MemoryStore.LoadPreferences(ctx, userID)
}

func newTestAccessor(store Store, cfg AccessorConfig) *Accessor {
	return NewAccessor(store, cfg, zerolog.Nop())
}

func TestAccessor_PassesThrough(t *testing.T) {
	mem := NewMemoryStore()
	ctx := context.Background()
	if err := mem.UpsertPreference(ctx, models.UserPreference{
		UserID: 1, Type: models.PreferenceDistrict, Key: "kathmandu", Value: "kathmandu", Weight: 1,
	}, models.MergeReplace); err != nil {
		t.Fatalf("seed: %v", err)
	}

	a := newTestAccessor(mem, DefaultAccessorConfig())
	prefs, err := a.LoadPreferences(ctx, 1)
	if err != nil {
		t.Fatalf("LoadPreferences() error = %v", err)
	}
	if len(prefs) != 1 || prefs[0].Key != "kathmandu" {
		t.Errorf("LoadPreferences() = %+v", prefs)
	}
	if a.Backend() != "memory" {
		t.Errorf("Backend() = %q, want memory", a.Backend())
	}
	if a.State() != "closed" {
		t.Errorf("State() = %q, want closed", a.State())
	}
}

func TestAccessor_NotFoundIsNotUnavailable(t *testing.T) {
	a := newTestAccessor(NewMemoryStore(), DefaultAccessorConfig())

	_, err := a.LoadProperty(context.Background(), 404)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("LoadProperty() error = %v, want ErrNotFound", err)
	}
	if errors.Is(err, ErrStoreUnavailable) {
		t.Errorf("not-found must not be classified as unavailable")
	}
}

func TestAccessor_DriverErrorBecomesUnavailable(t *testing.T) {
	cause := errors.New("connection refused")
	a := newTestAccessor(&faultyStore{MemoryStore: NewMemoryStore(), err: cause}, DefaultAccessorConfig())

	_, err := a.LoadPreferences(context.Background(), 1)
	if !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("error = %v, want ErrStoreUnavailable", err)
	}
	if !errors.Is(err, cause) {
		t.Errorf("error should keep the cause, got %v", err)
	}
}

func TestAccessor_DeadlineBecomesUnavailable(t *testing.T) {
	block := make(chan struct{})
	defer close(block)

	cfg := DefaultAccessorConfig()
	cfg.Timeout = 20 * time.Millisecond
	a := newTestAccessor(&faultyStore{MemoryStore: NewMemoryStore(), block: block}, cfg)

	start := time.Now()
	_, err := a.LoadPreferences(context.Background(), 1)
	if !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("error = %v, want ErrStoreUnavailable", err)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("error should wrap the deadline, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("call took %v, expected it to return at the deadline", elapsed)
	}
}

func TestAccessor_CircuitOpens(t *testing.T) {
	fs := &faultyStore{MemoryStore: NewMemoryStore(), err: errors.New("boom")}
	cfg := DefaultAccessorConfig()
	cfg.BreakerMinRequests = 3
	cfg.BreakerFailureRatio = 0.5
	cfg.BreakerTimeout = time.Hour
	a := newTestAccessor(fs, cfg)

	for i := 0; i < 3; i++ {
		_, _ = a.LoadPreferences(context.Background(), 1)
	}
	if a.State() != "open" {
		t.Fatalf("State() = %q, want open", a.State())
	}

	before := fs.calls
	_, err := a.LoadPreferences(context.Background(), 1)
	if !errors.Is(err, ErrStoreUnavailable) {
		t.Errorf("open circuit error = %v, want ErrStoreUnavailable", err)
	}
	if fs.calls != before {
		t.Errorf("open circuit must not reach the store")
	}
}

func TestAccessor_NotFoundDoesNotTrip(t *testing.T) {
	cfg := DefaultAccessorConfig()
	cfg.BreakerMinRequests = 2
	a := newTestAccessor(NewMemoryStore(), cfg)

	for i := 0; i < 10; i++ {
		_, _ = a.LoadProperty(context.Background(), int64(i+1))
	}
	if a.State() != "closed" {
		t.Errorf("State() = %q, want closed", a.State())
	}
}

func TestAccessor_Writes(t *testing.T) {
	mem := NewMemoryStore()
	a := newTestAccessor(mem, DefaultAccessorConfig())
	ctx := context.Background()

	p := &models.Property{ID: 7, Type: models.PropertyTypeHouse, District: "Lalitpur", Price: 100, Area: 50, Availability: models.AvailabilityAvailable}
	if err := a.SaveProperty(ctx, p); err != nil {
		t.Fatalf("SaveProperty() error = %v", err)
	}
	if err := a.IncrementCounters(ctx, 7, 2, 1); err != nil {
		t.Fatalf("IncrementCounters() error = %v", err)
	}
	if err := a.SetAvailability(ctx, 7, models.AvailabilitySold); err != nil {
		t.Fatalf("SetAvailability() error = %v", err)
	}
	got, err := a.LoadProperty(ctx, 7)
	if err != nil {
		t.Fatalf("LoadProperty() error = %v", err)
	}
	if got.ViewCount != 2 || got.FavoriteCount != 1 || got.Availability != models.AvailabilitySold {
		t.Errorf("LoadProperty() = %+v", got)
	}
	if err := a.SetAvailability(ctx, 8, models.AvailabilitySold); !errors.Is(err, ErrNotFound) {
		t.Errorf("SetAvailability(missing) error = %v, want ErrNotFound", err)
	}
}

func TestStateToString(t *testing.T) {
	if stateToFloat(2) != 2 || stateToString(2) != "open" {
		t.Errorf("open state mapping broken")
	}
	if stateToString(99) != "unknown" || stateToFloat(99) != -1 {
		t.Errorf("unknown state mapping broken")
	}
}
