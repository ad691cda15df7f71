// Real Estate Marketplace - Property Recommendation Service
// Copyright 2026 Bikku2002
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Bikku2002/Real-Estate-Marketplace

package recommend

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Bikku2002/Real-Estate-Marketplace--sub000/internal/featurestore"
	"github.com/Bikku2002/Real-Estate-Marketplace--sub000/internal/metrics"
	"github.com/Bikku2002/Real-Estate-Marketplace--sub000/internal/models"
)

// Updater folds behavioural signals into stored preference rows.
//
// Every row is written with one upsert, so concurrent signals for the same
// user never lose updates. Re-applying a signal leaves every value unchanged.
type Updater struct {
	store         featurestore.Store
	trackCounters bool
	logger        zerolog.Logger
}

// NewUpdater creates an Updater. When trackCounters is set, view and favorite
// signals also increment the property's counters.
func NewUpdater(store featurestore.Store, trackCounters bool, logger zerolog.Logger) *Updater {
	return &Updater{
		store:         store,
		trackCounters: trackCounters,
		logger:        logger.With().Str("component", "preference_updater").Logger(),
	}
}

// ApplySignal records sig for sig.UserID.
func (u *Updater) ApplySignal(ctx context.Context, sig models.Signal) (err error) {
	defer func() { metrics.RecordSignalApplied(string(sig.Kind), err) }()

	if verr := sig.Validate(); verr != nil {
		return fmt.Errorf("%w: %v", ErrInvalidArgument, verr)
	}

	switch sig.Kind {
	case models.SignalView, models.SignalFavorite:
		return u.applyInterest(ctx, sig)
	default:
		return u.applySearch(ctx, sig)
	}
}

func (u *Updater) applyInterest(ctx context.Context, sig models.Signal) error {
	p, err := u.store.LoadProperty(ctx, sig.PropertyID)
	if err != nil {
		return fmt.Errorf("load property %d: %w", sig.PropertyID, err)
	}

	writes := []upsert{
		categorical(sig.UserID, models.PreferencePropertyType, string(p.Type)),
		categorical(sig.UserID, models.PreferenceDistrict, p.District),
	}
	if p.Price > 0 {
		writes = append(writes, numeric(sig.UserID, models.PreferencePriceRange, models.KeyMaxPrice,
			float64(p.Price), models.MergeMax))
	}
	if p.Area > 0 {
		writes = append(writes, numeric(sig.UserID, models.PreferenceAreaRange, models.KeyMinArea,
			p.Area, models.MergeMin))
	}

	if err := u.write(ctx, writes); err != nil {
		return err
	}

	if u.trackCounters {
		var views, favorites int64
		if sig.Kind == models.SignalView {
			views = 1
		} else {
			favorites = 1
		}
		if err := u.store.IncrementCounters(ctx, p.ID, views, favorites); err != nil {
			return fmt.Errorf("increment counters of property %d: %w", p.ID, err)
		}
	}

	u.logger.Debug().
		Int64("user_id", sig.UserID).
		Int64("property_id", p.ID).
		Str("kind", string(sig.Kind)).
		Int("rows", len(writes)).
		Msg("interest signal applied")
	return nil
}

func (u *Updater) applySearch(ctx context.Context, sig models.Signal) error {
	f := sig.Filters
	var writes []upsert
	if f.Type != "" {
		writes = append(writes, categorical(sig.UserID, models.PreferencePropertyType, string(f.Type)))
	}
	if models.CategoricalKey(f.District) != "" {
		writes = append(writes, categorical(sig.UserID, models.PreferenceDistrict, f.District))
	}
	// A new search expresses current intent, so numeric filters replace.
	if f.MaxPrice > 0 {
		writes = append(writes, numeric(sig.UserID, models.PreferencePriceRange, models.KeyMaxPrice,
			float64(f.MaxPrice), models.MergeReplace))
	}
	if f.MinArea > 0 {
		writes = append(writes, numeric(sig.UserID, models.PreferenceAreaRange, models.KeyMinArea,
			f.MinArea, models.MergeReplace))
	}

	if err := u.write(ctx, writes); err != nil {
		return err
	}

	u.logger.Debug().
		Int64("user_id", sig.UserID).
		Int("rows", len(writes)).
		Msg("search signal applied")
	return nil
}

// SetPreference writes an explicit preference, replacing value and weight.
func (u *Updater) SetPreference(ctx context.Context, pref models.UserPreference) error {
	if pref.Weight == 0 {
		pref.Weight = models.DefaultPreferenceWeight
	}
	if pref.Type == models.PreferencePropertyType || pref.Type == models.PreferenceDistrict {
		if pref.Key == "" {
			pref.Key = models.CategoricalKey(pref.Value)
		}
	}
	if err := pref.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	if err := u.store.UpsertPreference(ctx, pref, models.MergeReplace); err != nil {
		return fmt.Errorf("upsert %s/%s: %w", pref.Type, pref.Key, err)
	}
	return nil
}

type upsert struct {
	pref models.UserPreference
	mode models.MergeMode
}

// categorical keys the row by its normalized value so a user can hold
// several districts or types at once.
func categorical(userID int64, t models.PreferenceType, value string) upsert {
	return upsert{
		pref: models.UserPreference{
			UserID: userID,
			Type:   t,
			Key:    models.CategoricalKey(value),
			Value:  value,
			Weight: models.DefaultPreferenceWeight,
		},
		mode: models.MergeKeep,
	}
}

func numeric(userID int64, t models.PreferenceType, key string, v float64, mode models.MergeMode) upsert {
	return upsert{
		pref: models.UserPreference{
			UserID: userID,
			Type:   t,
			Key:    key,
			Value:  models.FormatNumber(v),
			Weight: models.DefaultPreferenceWeight,
		},
		mode: mode,
	}
}

func (u *Updater) write(ctx context.Context, writes []upsert) error {
	for _, w := range writes {
		if err := u.store.UpsertPreference(ctx, w.pref, w.mode); err != nil {
			return fmt.Errorf("upsert %s/%s: %w", w.pref.Type, w.pref.Key, err)
		}
	}
	return nil
}
