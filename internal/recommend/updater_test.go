// Real Estate Marketplace - Property Recommendation Service
// Copyright 2026 Bikku2002
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Bikku2002/Real-Estate-Marketplace

package recommend

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/Bikku2002/Real-Estate-Marketplace--sub000/internal/featurestore"
	"github.com/Bikku2002/Real-Estate-Marketplace--sub000/internal/models"
)

type prefIndex map[string]models.UserPreference

func loadPrefs(t *testing.T, store featurestore.Store, userID int64) prefIndex {
	t.Helper()
	prefs, err := store.LoadPreferences(context.Background(), userID)
	if err != nil {
		t.Fatalf("LoadPreferences() error = %v", err)
	}
	out := make(prefIndex, len(prefs))
	for _, p := range prefs {
		out[string(p.Type)+"/"+p.Key] = p
	}
	return out
}

func TestApplyViewSignal(t *testing.T) {
	store := seededStore(t)
	u := NewUpdater(store, false, zerolog.Nop())
	ctx := context.Background()

	sig := models.Signal{UserID: 42, Kind: models.SignalView, PropertyID: 3}
	if err := u.ApplySignal(ctx, sig); err != nil {
		t.Fatalf("ApplySignal() error = %v", err)
	}

	got := loadPrefs(t, store, 42)
	want := map[string]string{
		"property_type/land":    "land",
		"district/jhapa":        "Jhapa",
		"price_range/max_price": "5000000",
		"area_range/min_area":   "2000",
	}
	if len(got) != len(want) {
		t.Fatalf("rows = %v, want %d", got, len(want))
	}
	for k, v := range want {
		row, ok := got[k]
		if !ok {
			t.Errorf("missing row %s", k)
			continue
		}
		if row.Value != v {
			t.Errorf("%s value = %q, want %q", k, row.Value, v)
		}
		if row.Weight != models.DefaultPreferenceWeight {
			t.Errorf("%s weight = %v, want 1.0", k, row.Weight)
		}
	}

	t.Run("idempotent", func(t *testing.T) {
		if err := u.ApplySignal(ctx, sig); err != nil {
			t.Fatalf("ApplySignal() error = %v", err)
		}
		again := loadPrefs(t, store, 42)
		for k, row := range got {
			if again[k].Value != row.Value || again[k].Weight != row.Weight {
				t.Errorf("%s changed: %+v -> %+v", k, row, again[k])
			}
		}
	})

	t.Run("widens ranges", func(t *testing.T) {
		// Property 1 is pricier and smaller than property 3.
		if err := u.ApplySignal(ctx, models.Signal{UserID: 42, Kind: models.SignalFavorite, PropertyID: 1}); err != nil {
			t.Fatalf("ApplySignal() error = %v", err)
		}
		rows := loadPrefs(t, store, 42)
		if v := rows["price_range/max_price"].Value; v != "25000000" {
			t.Errorf("max_price = %q, want 25000000", v)
		}
		if v := rows["area_range/min_area"].Value; v != "1800" {
			t.Errorf("min_area = %q, want 1800", v)
		}
		if _, ok := rows["district/kathmandu"]; !ok {
			t.Error("second district not recorded")
		}
		if _, ok := rows["district/jhapa"]; !ok {
			t.Error("first district lost")
		}
	})
}

func TestApplyViewKeepsExplicitWeight(t *testing.T) {
	store := seededStore(t)
	u := NewUpdater(store, false, zerolog.Nop())
	ctx := context.Background()

	err := u.SetPreference(ctx, models.UserPreference{
		UserID: 9, Type: models.PreferenceDistrict, Value: "Jhapa", Weight: 0.3,
	})
	if err != nil {
		t.Fatalf("SetPreference() error = %v", err)
	}
	if err := u.ApplySignal(ctx, models.Signal{UserID: 9, Kind: models.SignalView, PropertyID: 4}); err != nil {
		t.Fatalf("ApplySignal() error = %v", err)
	}
	if w := loadPrefs(t, store, 9)["district/jhapa"].Weight; w != 0.3 {
		t.Errorf("weight = %v, want 0.3", w)
	}
}

func TestApplySearchSignal(t *testing.T) {
	store := seededStore(t)
	u := NewUpdater(store, false, zerolog.Nop())
	ctx := context.Background()

	search := func(f models.SearchFilters) {
		t.Helper()
		if err := u.ApplySignal(ctx, models.Signal{UserID: 5, Kind: models.SignalSearch, Filters: f}); err != nil {
			t.Fatalf("ApplySignal() error = %v", err)
		}
	}

	search(models.SearchFilters{Type: models.PropertyTypeHouse, District: "Lalitpur", MaxPrice: 40000000, MinArea: 1369})
	search(models.SearchFilters{MaxPrice: 20000000, MinArea: 2000})

	rows := loadPrefs(t, store, 5)
	if len(rows) != 4 {
		t.Fatalf("rows = %v, want 4", rows)
	}
	if v := rows["price_range/max_price"].Value; v != "20000000" {
		t.Errorf("max_price = %q, want replaced 20000000", v)
	}
	if v := rows["area_range/min_area"].Value; v != "2000" {
		t.Errorf("min_area = %q, want replaced 2000", v)
	}
	if _, ok := rows["district/lalitpur"]; !ok {
		t.Error("district not recorded")
	}

	t.Run("empty search writes nothing", func(t *testing.T) {
		search(models.SearchFilters{})
		if n := len(loadPrefs(t, store, 5)); n != 4 {
			t.Errorf("rows = %d, want 4", n)
		}
	})
}

func TestApplySignalCounters(t *testing.T) {
	store := seededStore(t)
	ctx := context.Background()

	for _, track := range []bool{false, true} {
		u := NewUpdater(store, track, zerolog.Nop())
		before, _ := store.LoadProperty(ctx, 5)
		if err := u.ApplySignal(ctx, models.Signal{UserID: 1, Kind: models.SignalView, PropertyID: 5}); err != nil {
			t.Fatal(err)
		}
		if err := u.ApplySignal(ctx, models.Signal{UserID: 1, Kind: models.SignalFavorite, PropertyID: 5}); err != nil {
			t.Fatal(err)
		}
		after, _ := store.LoadProperty(ctx, 5)

		var want int64
		if track {
			want = 1
		}
		if after.ViewCount-before.ViewCount != want || after.FavoriteCount-before.FavoriteCount != want {
			t.Errorf("track=%v: counters %d/%d -> %d/%d", track,
				before.ViewCount, before.FavoriteCount, after.ViewCount, after.FavoriteCount)
		}
	}
}

func TestApplySignalErrors(t *testing.T) {
	store := seededStore(t)
	u := NewUpdater(store, true, zerolog.Nop())
	ctx := context.Background()

	tests := []struct {
		name string
		sig  models.Signal
		want error
	}{
		{"missing user", models.Signal{Kind: models.SignalView, PropertyID: 1}, ErrInvalidArgument},
		{"unknown kind", models.Signal{UserID: 1, Kind: "share"}, ErrInvalidArgument},
		{"view without property", models.Signal{UserID: 1, Kind: models.SignalView}, ErrInvalidArgument},
		{"unknown property", models.Signal{UserID: 1, Kind: models.SignalView, PropertyID: 404}, featurestore.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := u.ApplySignal(ctx, tt.sig); !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}

	t.Run("store unavailable", func(t *testing.T) {
		_ = store.Close()
		err := u.ApplySignal(ctx, models.Signal{UserID: 1, Kind: models.SignalSearch,
			Filters: models.SearchFilters{District: "Kaski"}})
		if !errors.Is(err, featurestore.ErrStoreUnavailable) {
			t.Errorf("error = %v, want ErrStoreUnavailable", err)
		}
	})
}
