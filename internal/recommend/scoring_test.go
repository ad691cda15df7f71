// Real Estate Marketplace - Property Recommendation Service
// Copyright 2026 Bikku2002
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Bikku2002/Real-Estate-Marketplace

package recommend

import (
	"math"
	"testing"

	"github.com/Bikku2002/Real-Estate-Marketplace--sub000/internal/models"
)

const epsilon = 1e-9

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func pref(t models.PreferenceType, key, value string, weight float64) models.UserPreference {
	return models.UserPreference{UserID: 1, Type: t, Key: key, Value: value, Weight: weight}
}

func housePreferences() []models.UserPreference {
	return []models.UserPreference{
		pref(models.PreferencePropertyType, "house", "house", 0.9),
		pref(models.PreferenceDistrict, "kathmandu", "Kathmandu", 0.8),
		pref(models.PreferencePriceRange, models.KeyMaxPrice, "30000000", 1.0),
	}
}

func TestPersonalizedScore(t *testing.T) {
	scorer := NewScorer(DefaultConfig())

	tests := []struct {
		name     string
		prefs    []models.UserPreference
		property models.Property
		want     float64
	}{
		{
			name:  "all matching terms",
			prefs: housePreferences(),
			property: models.Property{
				Type: models.PropertyTypeHouse, District: "Kathmandu",
				Price: 25000000, Area: 1800, ViewCount: 12,
			},
			want: 0.85,
		},
		{
			name:  "price above budget",
			prefs: housePreferences(),
			property: models.Property{
				Type: models.PropertyTypeHouse, District: "Kathmandu",
				Price: 35000000, Area: 1800, ViewCount: 12,
			},
			want: 0.65,
		},
		{
			name: "every term",
			prefs: append(housePreferences(),
				pref(models.PreferenceAreaRange, models.KeyMinArea, "1500", 1.0)),
			property: models.Property{
				Type: models.PropertyTypeHouse, District: "Kathmandu",
				Price: 25000000, Area: 1800, ViewCount: 12,
			},
			want: 1.0,
		},
		{
			name:  "view count at threshold is not popular",
			prefs: housePreferences(),
			property: models.Property{
				Type: models.PropertyTypeHouse, District: "Kathmandu",
				Price: 25000000, ViewCount: 10,
			},
			want: 0.75,
		},
		{
			name:  "district compared case-insensitively",
			prefs: housePreferences(),
			property: models.Property{
				Type: models.PropertyTypeLand, District: " KATHMANDU ", Price: 40000000,
			},
			want: 0.25,
		},
		{
			name:  "zero price does not match budget",
			prefs: housePreferences(),
			property: models.Property{
				Type: models.PropertyTypeLand, District: "Jhapa", Price: 0,
			},
			want: 0,
		},
		{
			name: "zero area does not match minimum area",
			prefs: []models.UserPreference{
				pref(models.PreferenceAreaRange, models.KeyMinArea, "0", 1.0),
			},
			property: models.Property{Type: models.PropertyTypeLand, Area: 0},
			want:     0,
		},
		{
			name: "non-numeric range value ignored",
			prefs: []models.UserPreference{
				pref(models.PreferencePriceRange, models.KeyMaxPrice, "cheap", 1.0),
			},
			property: models.Property{Type: models.PropertyTypeLand, Price: 1},
			want:     0,
		},
		{
			name:     "no preferences only popularity",
			property: models.Property{ViewCount: 100},
			want:     0.10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := BuildProfile(tt.prefs)
			got := scorer.Personalized(&tt.property, &profile)
			if !approxEqual(got, tt.want) {
				t.Errorf("Personalized() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPersonalizedScoreWithWeights(t *testing.T) {
	cfg := DefaultConfig()
	cfg.UsePreferenceWeights = true
	scorer := NewScorer(cfg)

	prefs := append(housePreferences(),
		pref(models.PreferenceDistrict, "lalitpur", "Lalitpur", 0.5))
	profile := BuildProfile(prefs)

	p := models.Property{
		Type: models.PropertyTypeHouse, District: "Kathmandu",
		Price: 25000000, ViewCount: 12,
	}
	// 0.30*0.9 + 0.25*0.8 + 0.20*1.0 + 0.10
	want := 0.27 + 0.20 + 0.20 + 0.10
	if got := scorer.Personalized(&p, &profile); !approxEqual(got, want) {
		t.Errorf("Personalized() = %v, want %v", got, want)
	}
}

func TestBuildProfileKeepsHighestWeight(t *testing.T) {
	profile := BuildProfile([]models.UserPreference{
		pref(models.PreferenceDistrict, "kathmandu", "Kathmandu", 0.4),
		pref(models.PreferenceDistrict, "ktm", "kathmandu", 0.7),
		pref(models.PreferenceFeatures, "parking", "yes", 1.0),
	})
	if got := profile.Districts["kathmandu"]; got != 0.7 {
		t.Errorf("district weight = %v, want 0.7", got)
	}
	if len(profile.Types) != 0 || profile.HasMaxPrice || profile.HasMinArea {
		t.Errorf("unexpected profile entries: %+v", profile)
	}
	if profile.Empty() {
		t.Error("Empty() = true for a profile with a district")
	}
	if empty := BuildProfile(nil); !empty.Empty() {
		t.Error("Empty() = false for no preferences")
	}
}

func TestTrendingScore(t *testing.T) {
	a := models.Property{ViewCount: 100, FavoriteCount: 10}
	b := models.Property{ViewCount: 50, FavoriteCount: 60}

	if got := Trending(&a); !approxEqual(got, 64) {
		t.Errorf("Trending(A) = %v, want 64", got)
	}
	if got := Trending(&b); !approxEqual(got, 54) {
		t.Errorf("Trending(B) = %v, want 54", got)
	}

	t.Run("exact", func(t *testing.T) {
		tests := []struct {
			views, favs int64
			want        float64
		}{
			{100, 10, 64},
			{12, 0, 7.2},
			{10, 3, 7.2},
			{0, 7, 2.8},
			{3, 1, 2.2},
		}
		for _, tt := range tests {
			p := models.Property{ViewCount: tt.views, FavoriteCount: tt.favs}
			if got := Trending(&p); got != tt.want {
				t.Errorf("Trending(views=%d, favs=%d) = %v, want exactly %v", tt.views, tt.favs, got, tt.want)
			}
		}
	})

	t.Run("monotonic", func(t *testing.T) {
		base := models.Property{ViewCount: 5, FavoriteCount: 5}
		for i := int64(0); i < 20; i++ {
			more := base
			more.ViewCount += i
			if Trending(&more) < Trending(&base) {
				t.Fatalf("score decreased when views grew by %d", i)
			}
			more = base
			more.FavoriteCount += i
			if Trending(&more) < Trending(&base) {
				t.Fatalf("score decreased when favorites grew by %d", i)
			}
		}
	})
}

func TestSimilarityScore(t *testing.T) {
	ref := models.Property{
		ID: 1, Type: models.PropertyTypeLand, District: "Jhapa", Price: 5000000, Area: 2000,
	}

	tests := []struct {
		name      string
		candidate models.Property
		want      float64
	}{
		{
			name:      "near identical",
			candidate: models.Property{Type: models.PropertyTypeLand, District: "Jhapa", Price: 5200000, Area: 2100},
			want:      1.0,
		},
		{
			name:      "price outside tolerance",
			candidate: models.Property{Type: models.PropertyTypeLand, District: "Jhapa", Price: 9000000, Area: 2100},
			want:      0.8,
		},
		{
			name:      "area boundary is inclusive",
			candidate: models.Property{Type: models.PropertyTypeHouse, District: "Morang", Price: 1, Area: 1200},
			want:      0.1,
		},
		{
			name:      "zero price guarded",
			candidate: models.Property{Type: models.PropertyTypeLand, District: "Jhapa", Price: 0, Area: 0},
			want:      0.7,
		},
		{
			name:      "nothing shared",
			candidate: models.Property{Type: models.PropertyTypeHouse, District: "Kaski", Price: 50000000, Area: 100},
			want:      0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Similarity(&ref, &tt.candidate)
			if !approxEqual(got, tt.want) {
				t.Errorf("Similarity() = %v, want %v", got, tt.want)
			}
			if got < 0 || got > 1 {
				t.Errorf("Similarity() = %v outside [0,1]", got)
			}
		})
	}

	t.Run("zero reference", func(t *testing.T) {
		zero := models.Property{Type: models.PropertyTypeLand, District: "Jhapa"}
		if got := Similarity(&zero, &ref); !approxEqual(got, 0.7) {
			t.Errorf("Similarity() = %v, want 0.7", got)
		}
	})
}

func TestClamp01(t *testing.T) {
	tests := []struct{ in, want float64 }{
		{-0.5, 0},
		{0.3 + 0.25 + 0.2 + 0.1, 0.85},
		{1.2, 1},
	}
	for _, tt := range tests {
		if got := clamp01(tt.in); got != tt.want {
			t.Errorf("clamp01(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
