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

	"github.com/Bikku2002/Real-Estate-Marketplace--sub000/internal/models"
)

func TestMemoryStore_CandidatesFilterAvailability(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	props := []models.Property{
		{ID: 1, Type: models.PropertyTypeLand, District: "Kathmandu", Price: 100, Area: 10, ViewCount: 100, FavoriteCount: 10, Availability: models.AvailabilityAvailable, CreatedAt: base},
		{ID: 2, Type: models.PropertyTypeHouse, District: "Kathmandu", Price: 200, Area: 20, Availability: models.AvailabilitySold, CreatedAt: base.Add(time.Hour)},
		{ID: 3, Type: models.PropertyTypeHouse, District: "Pokhara", Price: 300, Area: 30, Availability: models.AvailabilityAvailable, CreatedAt: base.Add(2 * time.Hour)},
	}
	for i := range props {
		if err := m.SaveProperty(ctx, &props[i]); err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		name   string
		filter models.CandidateFilter
		want   []int64
	}{
		{"no filter", models.CandidateFilter{}, []int64{3, 1}},
		{"district", models.CandidateFilter{District: "kathmandu"}, []int64{1}},
		{"type", models.CandidateFilter{Type: models.PropertyTypeHouse}, []int64{3}},
		{"price window", models.CandidateFilter{MinPrice: 150, MaxPrice: 400}, []int64{3}},
		{"exclude", models.CandidateFilter{ExcludeIDs: []int64{3}}, []int64{1}},
		{"max candidates", models.CandidateFilter{MaxCandidates: 1}, []int64{3}},
		{"popular first", models.CandidateFilter{Order: models.OrderPopular}, []int64{1, 3}},
		{"max candidates keeps popular", models.CandidateFilter{MaxCandidates: 1, Order: models.OrderPopular}, []int64{1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := m.LoadCandidateProperties(ctx, tt.filter)
			if err != nil {
				t.Fatal(err)
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

func TestMergePreference(t *testing.T) {
	existing := models.UserPreference{UserID: 1, Type: models.PreferencePriceRange, Key: models.KeyMaxPrice, Value: "5000000", Weight: 0.5}

	tests := []struct {
		name      string
		incoming  string
		weight    float64
		mode      models.MergeMode
		wantValue string
		wantW     float64
	}{
		{"replace", "100", 1, models.MergeReplace, "100", 1},
		{"keep", "100", 1, models.MergeKeep, "5000000", 0.5},
		{"max widens", "6000000", 1, models.MergeMax, "6000000", 0.5},
		{"max keeps larger", "100", 1, models.MergeMax, "5000000", 0.5},
		{"min narrows", "100", 1, models.MergeMin, "100", 0.5},
		{"min keeps smaller", "9000000", 1, models.MergeMin, "5000000", 0.5},
		{"non numeric incoming ignored", "abc", 1, models.MergeMax, "5000000", 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := existing
			in.Value = tt.incoming
			in.Weight = tt.weight
			got := MergePreference(existing, in, tt.mode)
			if got.Value != tt.wantValue || got.Weight != tt.wantW {
				t.Errorf("got value=%q weight=%v, want %q %v", got.Value, got.Weight, tt.wantValue, tt.wantW)
			}
		})
	}
}

func TestMemoryStore_UpsertIsIdempotent(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()
	pref := models.UserPreference{UserID: 9, Type: models.PreferencePropertyType, Key: "land", Value: "land", Weight: 1}

	for i := 0; i < 3; i++ {
		if err := m.UpsertPreference(ctx, pref, models.MergeKeep); err != nil {
			t.Fatal(err)
		}
	}
	got, err := m.LoadPreferences(ctx, 9)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d rows, want 1", len(got))
	}
}

func TestMemoryStore_Closed(t *testing.T) {
	m := NewMemoryStore()
	_ = m.Close()

	if _, err := m.LoadPreferences(context.Background(), 1); !errors.Is(err, ErrStoreUnavailable) {
		t.Errorf("error = %v, want ErrStoreUnavailable", err)
	}
	if err := m.Ping(context.Background()); !errors.Is(err, ErrStoreUnavailable) {
		t.Errorf("Ping() error = %v, want ErrStoreUnavailable", err)
	}
}
