// Real Estate Marketplace - Property Recommendation Service
// Copyright 2026 Bikku2002
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Bikku2002/Real-Estate-Marketplace

package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// PreferenceType groups preference rows by what they describe.
type PreferenceType string

const (
	PreferencePropertyType PreferenceType = "property_type"
	PreferenceDistrict     PreferenceType = "district"
	PreferencePriceRange   PreferenceType = "price_range"
	PreferenceAreaRange    PreferenceType = "area_range"
	PreferenceFeatures     PreferenceType = "features"
	PreferenceAmenities    PreferenceType = "amenities"
)

// Well-known keys for the numeric preference types.
const (
	KeyMaxPrice = "max_price"
	KeyMinArea  = "min_area"
)

// DefaultPreferenceWeight is assigned to rows inserted without an explicit weight.
const DefaultPreferenceWeight = 1.0

// Valid reports whether t is a known preference type.
func (t PreferenceType) Valid() bool {
	switch t {
	case PreferencePropertyType, PreferenceDistrict, PreferencePriceRange,
		PreferenceAreaRange, PreferenceFeatures, PreferenceAmenities:
		return true
	}
	return false
}

// UserPreference is one weighted interest record. (UserID, Type, Key) is unique.
type UserPreference struct {
	UserID    int64          `json:"user_id" yaml:"user_id"`
	Type      PreferenceType `json:"preference_type" yaml:"preference_type"`
	Key       string         `json:"preference_key" yaml:"preference_key"`
	Value     string         `json:"preference_value" yaml:"preference_value"`
	Weight    float64        `json:"preference_weight" yaml:"preference_weight"`
	UpdatedAt time.Time      `json:"updated_at" yaml:"-"`
}

// NumericValue parses Value as a number. ok is false when Value is not numeric.
func (p *UserPreference) NumericValue() (v float64, ok bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(p.Value), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Validate checks the row invariants.
func (p *UserPreference) Validate() error {
	if p.UserID <= 0 {
		return fmt.Errorf("preference: user id must be positive, got %d", p.UserID)
	}
	if !p.Type.Valid() {
		return fmt.Errorf("preference: invalid type %q", p.Type)
	}
	if strings.TrimSpace(p.Key) == "" {
		return fmt.Errorf("preference: key is required")
	}
	if p.Weight < 0 || p.Weight > 1 {
		return fmt.Errorf("preference: weight must be in [0,1], got %v", p.Weight)
	}
	return nil
}

// CategoricalKey normalizes a categorical value (type or district) into the
// preference key used for it.
func CategoricalKey(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

// MergeMode tells a store how to resolve an upsert conflict on (user, type, key).
type MergeMode int

const (
	// MergeReplace overwrites value and weight.
	MergeReplace MergeMode = iota
	// MergeKeep leaves the existing row untouched apart from its timestamp.
	MergeKeep
	// MergeMax keeps the numerically larger of the stored and incoming values.
	MergeMax
	// MergeMin keeps the numerically smaller of the stored and incoming values.
	MergeMin
)

// String returns the mode name used in logs and metrics.
func (m MergeMode) String() string {
	switch m {
	case MergeReplace:
		return "replace"
	case MergeKeep:
		return "keep"
	case MergeMax:
		return "max"
	case MergeMin:
		return "min"
	default:
		return "unknown"
	}
}

// FormatNumber renders a numeric preference value the same way for every backend.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
