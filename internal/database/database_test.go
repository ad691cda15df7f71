// Real Estate Marketplace - Property Recommendation Service
// Copyright 2026 Bikku2002
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Bikku2002/Real-Estate-Marketplace

package database

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Bikku2002/Real-Estate-Marketplace--sub000/internal/config"
	"github.com/Bikku2002/Real-Estate-Marketplace--sub000/internal/featurestore"
	"github.com/Bikku2002/Real-Estate-Marketplace--sub000/internal/models"
)

// testDBSemaphore limits concurrent database creation to prevent resource exhaustion in CI.
var testDBSemaphore = make(chan struct{}, 1)

func setupTestDB(t *testing.T) *DB {
	t.Helper()

	testDBSemaphore <- struct{}{}
	t.Cleanup(func() {
		<-testDBSemaphore
	})

	db, err := New(&config.DatabaseConfig{
		Driver:    "duckdb",
		Path:      ":memory:",
		MaxMemory: "512MB",
		Threads:   2,
	})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		closeQuietly(db)
	})
	return db
}

var baseTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func seedProperties(t *testing.T, db *DB) {
	t.Helper()
	props := []models.Property{
		{ID: 1, Type: models.PropertyTypeLand, District: "Kathmandu", Price: 4_000_000, Area: 2738, ViewCount: 40, FavoriteCount: 100, Availability: models.AvailabilityAvailable, CreatedAt: baseTime},
		{ID: 2, Type: models.PropertyTypeHouse, District: "Lalitpur", Price: 9_000_000, Area: 1800, ViewCount: 90, FavoriteCount: 0, Availability: models.AvailabilityAvailable, CreatedAt: baseTime.Add(time.Hour)},
		{ID: 3, Type: models.PropertyTypeLand, District: "Kathmandu", Price: 3_000_000, Area: 1369, Availability: models.AvailabilitySold, CreatedAt: baseTime.Add(2 * time.Hour)},
	}
	for i := range props {
		if err := db.SaveProperty(context.Background(), &props[i]); err != nil {
			t.Fatalf("SaveProperty(%d): %v", props[i].ID, err)
		}
	}
}

func TestLoadCandidateProperties(t *testing.T) {
	db := setupTestDB(t)
	seedProperties(t, db)

	tests := []struct {
		name   string
		filter models.CandidateFilter
		want   []int64
	}{
		{"available only newest first", models.CandidateFilter{}, []int64{2, 1}},
		{"district case insensitive", models.CandidateFilter{District: "KATHMANDU"}, []int64{1}},
		{"type", models.CandidateFilter{Type: models.PropertyTypeHouse}, []int64{2}},
		{"max price", models.CandidateFilter{MaxPrice: 5_000_000}, []int64{1}},
		{"area window", models.CandidateFilter{MinArea: 2000, MaxArea: 3000}, []int64{1}},
		{"exclude", models.CandidateFilter{ExcludeIDs: []int64{2}}, []int64{1}},
		{"max candidates", models.CandidateFilter{MaxCandidates: 1}, []int64{2}},
		{"popular first", models.CandidateFilter{Order: models.OrderPopular}, []int64{1, 2}},
		{"max candidates keeps popular", models.CandidateFilter{MaxCandidates: 1, Order: models.OrderPopular}, []int64{1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := db.LoadCandidateProperties(context.Background(), tt.filter)
			if err != nil {
				t.Fatalf("LoadCandidateProperties() error = %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d rows, want %d", len(got), len(tt.want))
			}
			for i, id := range tt.want {
				if got[i].ID != id {
					t.Errorf("row %d id = %d, want %d", i, got[i].ID, id)
				}
			}
		})
	}
}

func TestLoadProperty(t *testing.T) {
	db := setupTestDB(t)
	seedProperties(t, db)

	p, err := db.LoadProperty(context.Background(), 3)
	if err != nil {
		t.Fatalf("LoadProperty() error = %v", err)
	}
	if p.Availability != models.AvailabilitySold || p.District != "Kathmandu" {
		t.Errorf("LoadProperty() = %+v", p)
	}
	if !p.CreatedAt.Equal(baseTime.Add(2 * time.Hour)) {
		t.Errorf("CreatedAt = %v", p.CreatedAt)
	}

	_, err = db.LoadProperty(context.Background(), 99)
	if !errors.Is(err, featurestore.ErrNotFound) {
		t.Errorf("LoadProperty(99) error = %v, want ErrNotFound", err)
	}
}

func TestLoadAvailability(t *testing.T) {
	db := setupTestDB(t)
	seedProperties(t, db)

	got, err := db.LoadAvailability(context.Background(), []int64{1, 3, 42})
	if err != nil {
		t.Fatalf("LoadAvailability() error = %v", err)
	}
	if len(got) != 2 || got[1] != models.AvailabilityAvailable || got[3] != models.AvailabilitySold {
		t.Errorf("LoadAvailability() = %v", got)
	}

	empty, err := db.LoadAvailability(context.Background(), nil)
	if err != nil || len(empty) != 0 {
		t.Errorf("LoadAvailability(nil) = %v, %v", empty, err)
	}
}

func TestIncrementCountersAndAvailability(t *testing.T) {
	db := setupTestDB(t)
	seedProperties(t, db)
	ctx := context.Background()

	if err := db.IncrementCounters(ctx, 1, 1, 1); err != nil {
		t.Fatalf("IncrementCounters() error = %v", err)
	}
	if err := db.SetAvailability(ctx, 1, models.AvailabilityUnderOffer); err != nil {
		t.Fatalf("SetAvailability() error = %v", err)
	}
	p, err := db.LoadProperty(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if p.ViewCount != 41 || p.FavoriteCount != 101 || p.Availability != models.AvailabilityUnderOffer {
		t.Errorf("property = %+v", p)
	}

	if err := db.IncrementCounters(ctx, 99, 1, 0); !errors.Is(err, featurestore.ErrNotFound) {
		t.Errorf("IncrementCounters(99) error = %v, want ErrNotFound", err)
	}
	if err := db.SetAvailability(ctx, 99, models.AvailabilitySold); !errors.Is(err, featurestore.ErrNotFound) {
		t.Errorf("SetAvailability(99) error = %v, want ErrNotFound", err)
	}
}

func TestUpsertPreference_MergeModes(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	price := models.UserPreference{UserID: 5, Type: models.PreferencePriceRange, Key: models.KeyMaxPrice, Value: "5000000", Weight: 0.8}
	if err := db.UpsertPreference(ctx, price, models.MergeReplace); err != nil {
		t.Fatalf("initial upsert: %v", err)
	}

	steps := []struct {
		name      string
		value     string
		weight    float64
		mode      models.MergeMode
		wantValue string
		wantW     float64
	}{
		{"max widens", "6000000", 1, models.MergeMax, "6000000", 0.8},
		{"max keeps larger", "100", 1, models.MergeMax, "6000000", 0.8},
		{"min narrows", "3000000", 1, models.MergeMin, "3000000", 0.8},
		{"keep", "1", 1, models.MergeKeep, "3000000", 0.8},
		{"replace", "7000000", 0.5, models.MergeReplace, "7000000", 0.5},
	}

	for _, st := range steps {
		t.Run(st.name, func(t *testing.T) {
			in := price
			in.Value = st.value
			in.Weight = st.weight
			if err := db.UpsertPreference(ctx, in, st.mode); err != nil {
				t.Fatalf("UpsertPreference() error = %v", err)
			}
			prefs, err := db.LoadPreferences(ctx, 5)
			if err != nil {
				t.Fatal(err)
			}
			if len(prefs) != 1 {
				t.Fatalf("got %d rows, want 1", len(prefs))
			}
			if prefs[0].Value != st.wantValue || prefs[0].Weight != st.wantW {
				t.Errorf("got value=%q weight=%v, want %q %v", prefs[0].Value, prefs[0].Weight, st.wantValue, st.wantW)
			}
		})
	}
}

func TestUpsertPreference_ConcurrentSameRow(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	pref := models.UserPreference{UserID: 7, Type: models.PreferenceDistrict, Key: "pokhara", Value: "pokhara", Weight: 1}

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- db.UpsertPreference(ctx, pref, models.MergeKeep)
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Errorf("concurrent upsert error = %v", err)
		}
	}

	prefs, err := db.LoadPreferences(ctx, 7)
	if err != nil {
		t.Fatal(err)
	}
	if len(prefs) != 1 {
		t.Errorf("got %d rows, want 1", len(prefs))
	}
}

func TestLoadPreferences_Empty(t *testing.T) {
	db := setupTestDB(t)

	prefs, err := db.LoadPreferences(context.Background(), 12345)
	if err != nil {
		t.Fatalf("LoadPreferences() error = %v", err)
	}
	if prefs == nil || len(prefs) != 0 {
		t.Errorf("LoadPreferences() = %v, want empty non-nil slice", prefs)
	}
}

func TestClosedDatabaseIsUnavailable(t *testing.T) {
	db := setupTestDB(t)
	_ = db.conn.Close()

	_, err := db.LoadPreferences(context.Background(), 1)
	if !errors.Is(err, featurestore.ErrStoreUnavailable) {
		t.Errorf("error = %v, want ErrStoreUnavailable", err)
	}
}

func TestBuildCandidateQuery(t *testing.T) {
	query, args := buildCandidateQuery(models.CandidateFilter{
		Type:          models.PropertyTypeLand,
		ExcludeIDs:    []int64{4, 5},
		MaxCandidates: 10,
	})
	if !strings.Contains(query, "id NOT IN (?, ?)") {
		t.Errorf("query missing exclusion: %s", query)
	}
	if !strings.HasSuffix(query, "LIMIT ?") {
		t.Errorf("query missing limit: %s", query)
	}
	if len(args) != 5 {
		t.Errorf("got %d args, want 5", len(args))
	}
}

func TestIsTransactionConflict(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{errors.New("TransactionContext Error: Transaction conflict: cannot update"), true},
		{errors.New("Conflict on update!"), true},
		{errors.New("syntax error"), false},
	}
	for _, tt := range tests {
		if got := isTransactionConflict(tt.err); got != tt.want {
			t.Errorf("isTransactionConflict(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}
