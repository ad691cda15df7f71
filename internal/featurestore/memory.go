// Real Estate Marketplace - Property Recommendation Service
// Copyright 2026 Bikku2002
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Bikku2002/Real-Estate-Marketplace

package featurestore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Bikku2002/Real-Estate-Marketplace--sub000/internal/models"
)

type prefKey struct {
	userID int64
	typ    models.PreferenceType
	key    string
}

// MemoryStore is an in-process Store used by the "memory" driver and by tests.
// It applies the same merge rules as the SQL backends.
type MemoryStore struct {
	mu         sync.RWMutex
	properties map[int64]models.Property
	prefs      map[prefKey]models.UserPreference
	closed     bool
	now        func() time.Time
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		properties: make(map[int64]models.Property),
		prefs:      make(map[prefKey]models.UserPreference),
		now:        time.Now,
	}
}

func (m *MemoryStore) checkOpen(op string) error {
	if m.closed {
		return Unavailable(op, errStoreClosed)
	}
	return nil
}

// LoadPreferences implements Reader.
func (m *MemoryStore) LoadPreferences(_ context.Context, userID int64) ([]models.UserPreference, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.checkOpen("load_preferences"); err != nil {
		return nil, err
	}

	out := make([]models.UserPreference, 0)
	for k, p := range m.prefs {
		if k.userID == userID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Type != out[j].Type {
			return out[i].Type < out[j].Type
		}
		return out[i].Key < out[j].Key
	})
	return out, nil
}

// LoadCandidateProperties implements Reader.
//
//nolint:gocritic // hugeParam
func (m *MemoryStore) LoadCandidateProperties(_ context.Context, filter models.CandidateFilter) ([]models.Property, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.checkOpen("load_candidates"); err != nil {
		return nil, err
	}

	out := make([]models.Property, 0, len(m.properties))
	for id := range m.properties {
		p := m.properties[id]
		if MatchesFilter(&p, &filter) {
			out = append(out, p)
		}
	}
	// Same order as the SQL backends, so MaxCandidates keeps the same rows.
	sort.Slice(out, func(i, j int) bool {
		if filter.Order == models.OrderPopular {
			if ri, rj := models.PopularityRank(&out[i]), models.PopularityRank(&out[j]); ri != rj {
				return ri > rj
			}
		}
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	if filter.MaxCandidates > 0 && len(out) > filter.MaxCandidates {
		out = out[:filter.MaxCandidates]
	}
	return out, nil
}

// LoadProperty implements Reader.
func (m *MemoryStore) LoadProperty(_ context.Context, id int64) (*models.Property, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.checkOpen("load_property"); err != nil {
		return nil, err
	}

	p, ok := m.properties[id]
	if !ok {
		return nil, NotFound("load_property", "property %d", id)
	}
	return &p, nil
}

// LoadAvailability implements Reader.
func (m *MemoryStore) LoadAvailability(_ context.Context, ids []int64) (map[int64]models.Availability, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.checkOpen("load_availability"); err != nil {
		return nil, err
	}

	out := make(map[int64]models.Availability, len(ids))
	for _, id := range ids {
		if p, ok := m.properties[id]; ok {
			out[id] = p.Availability
		}
	}
	return out, nil
}

// UpsertPreference implements Writer.
//
//nolint:gocritic // hugeParam
func (m *MemoryStore) UpsertPreference(_ context.Context, pref models.UserPreference, mode models.MergeMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkOpen("upsert_preference"); err != nil {
		return err
	}

	k := prefKey{userID: pref.UserID, typ: pref.Type, key: pref.Key}
	pref.UpdatedAt = m.now()
	existing, ok := m.prefs[k]
	if !ok {
		m.prefs[k] = pref
		return nil
	}
	m.prefs[k] = MergePreference(existing, pref, mode)
	return nil
}

// IncrementCounters implements Writer.
func (m *MemoryStore) IncrementCounters(_ context.Context, propertyID, views, favorites int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkOpen("increment_counters"); err != nil {
		return err
	}

	p, ok := m.properties[propertyID]
	if !ok {
		return NotFound("increment_counters", "property %d", propertyID)
	}
	p.ViewCount += views
	p.FavoriteCount += favorites
	m.properties[propertyID] = p
	return nil
}

// SetAvailability implements Writer.
func (m *MemoryStore) SetAvailability(_ context.Context, propertyID int64, status models.Availability) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkOpen("set_availability"); err != nil {
		return err
	}

	p, ok := m.properties[propertyID]
	if !ok {
		return NotFound("set_availability", "property %d", propertyID)
	}
	p.Availability = status
	m.properties[propertyID] = p
	return nil
}

// SaveProperty implements Writer.
func (m *MemoryStore) SaveProperty(_ context.Context, p *models.Property) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkOpen("save_property"); err != nil {
		return err
	}

	cp := *p
	if cp.CreatedAt.IsZero() {
		cp.CreatedAt = m.now()
	}
	m.properties[cp.ID] = cp
	return nil
}

// Ping implements Store.
func (m *MemoryStore) Ping(_ context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.checkOpen("ping")
}

// Backend implements Store.
func (m *MemoryStore) Backend() string { return "memory" }

// Close implements Store. Later calls fail with ErrStoreUnavailable.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// MatchesFilter reports whether p is available and satisfies filter.
func MatchesFilter(p *models.Property, filter *models.CandidateFilter) bool {
	if !p.IsAvailable() {
		return false
	}
	if filter.Type != "" && p.Type != filter.Type {
		return false
	}
	if filter.District != "" && models.CategoricalKey(p.District) != models.CategoricalKey(filter.District) {
		return false
	}
	if filter.MinPrice > 0 && p.Price < filter.MinPrice {
		return false
	}
	if filter.MaxPrice > 0 && p.Price > filter.MaxPrice {
		return false
	}
	if filter.MinArea > 0 && p.Area < filter.MinArea {
		return false
	}
	if filter.MaxArea > 0 && p.Area > filter.MaxArea {
		return false
	}
	return !filter.Excludes(p.ID)
}

// MergePreference resolves a (user, type, key) conflict the way the SQL
// backends do in their ON CONFLICT clauses.
//
//nolint:gocritic // hugeParam
func MergePreference(existing, incoming models.UserPreference, mode models.MergeMode) models.UserPreference {
	merged := existing
	merged.UpdatedAt = incoming.UpdatedAt

	switch mode {
	case models.MergeReplace:
		merged.Value = incoming.Value
		merged.Weight = incoming.Weight
	case models.MergeKeep:
	case models.MergeMax, models.MergeMin:
		oldV, oldOK := existing.NumericValue()
		newV, newOK := incoming.NumericValue()
		switch {
		case !newOK:
		case !oldOK:
			merged.Value = incoming.Value
		case mode == models.MergeMax && newV > oldV:
			merged.Value = models.FormatNumber(newV)
		case mode == models.MergeMin && newV < oldV:
			merged.Value = models.FormatNumber(newV)
		}
	}
	return merged
}
