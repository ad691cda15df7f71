// Real Estate Marketplace - Property Recommendation Service
// Copyright 2026 Bikku2002
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Bikku2002/Real-Estate-Marketplace

package models

import (
	"fmt"
	"time"
)

// SignalKind is the user action a signal records.
type SignalKind string

const (
	SignalSearch   SignalKind = "search"
	SignalView     SignalKind = "view"
	SignalFavorite SignalKind = "favorite"
)

// Valid reports whether k is a known signal kind.
func (k SignalKind) Valid() bool {
	return k == SignalSearch || k == SignalView || k == SignalFavorite
}

// SearchFilters are the filters a user submitted with a search.
// MinArea is already converted to square feet.
type SearchFilters struct {
	Type     PropertyType `json:"type,omitempty"`
	District string       `json:"district,omitempty"`
	MaxPrice int64        `json:"max_price,omitempty"`
	MinArea  float64      `json:"min_area,omitempty"`
}

// Empty reports whether no filter was set.
func (f SearchFilters) Empty() bool {
	return f.Type == "" && f.District == "" && f.MaxPrice <= 0 && f.MinArea <= 0
}

// Signal is a user interaction folded into stored preferences.
type Signal struct {
	ID         string        `json:"id,omitempty"`
	UserID     int64         `json:"user_id"`
	Kind       SignalKind    `json:"kind"`
	PropertyID int64         `json:"property_id,omitempty"`
	Filters    SearchFilters `json:"filters,omitempty"`
	OccurredAt time.Time     `json:"occurred_at"`
}

// Validate checks that the payload matches the kind.
func (s *Signal) Validate() error {
	if s.UserID <= 0 {
		return fmt.Errorf("signal: user id must be positive, got %d", s.UserID)
	}
	switch s.Kind {
	case SignalView, SignalFavorite:
		if s.PropertyID <= 0 {
			return fmt.Errorf("signal: %s requires a property id", s.Kind)
		}
	case SignalSearch:
		if s.Filters.Type != "" && !s.Filters.Type.Valid() {
			return fmt.Errorf("signal: invalid property type %q", s.Filters.Type)
		}
		if s.Filters.MaxPrice < 0 || s.Filters.MinArea < 0 {
			return fmt.Errorf("signal: search filters must not be negative")
		}
	default:
		return fmt.Errorf("signal: unknown kind %q", s.Kind)
	}
	return nil
}
