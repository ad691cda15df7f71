// Real Estate Marketplace - Property Recommendation Service
// Copyright 2026 Bikku2002
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Bikku2002/Real-Estate-Marketplace

package models

import (
	"fmt"
	"strings"
	"time"
)

// PropertyType is the kind of listing.
type PropertyType string

const (
	PropertyTypeLand  PropertyType = "land"
	PropertyTypeHouse PropertyType = "house"
)

// Valid reports whether t is a known property type.
func (t PropertyType) Valid() bool {
	return t == PropertyTypeLand || t == PropertyTypeHouse
}

// ParsePropertyType normalizes s and validates it.
func ParsePropertyType(s string) (PropertyType, error) {
	t := PropertyType(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("unknown property type %q", s)
	}
	return t, nil
}

// Availability is the soft lifecycle state of a listing.
type Availability string

const (
	AvailabilityAvailable  Availability = "available"
	AvailabilityUnderOffer Availability = "under_offer"
	AvailabilitySold       Availability = "sold"
	AvailabilityWithdrawn  Availability = "withdrawn"
	AvailabilityExpired    Availability = "expired"
)

// Valid reports whether a is a known availability status.
func (a Availability) Valid() bool {
	switch a {
	case AvailabilityAvailable, AvailabilityUnderOffer, AvailabilitySold,
		AvailabilityWithdrawn, AvailabilityExpired:
		return true
	}
	return false
}

// ParseAvailability normalizes s and validates it.
func ParseAvailability(s string) (Availability, error) {
	a := Availability(strings.ToLower(strings.TrimSpace(s)))
	if !a.Valid() {
		return "", fmt.Errorf("unknown availability status %q", s)
	}
	return a, nil
}

// Property is a listing as seen by the scoring engine.
// Counters are owned by other parts of the marketplace; this service only reads them
// (apart from the optional counter tracking on view/favorite signals).
type Property struct {
	ID            int64        `json:"id" yaml:"id"`
	Type          PropertyType `json:"type" yaml:"type"`
	District      string       `json:"district" yaml:"district"`
	Price         int64        `json:"price" yaml:"price"`
	Area          float64      `json:"area" yaml:"area"` // square feet
	ViewCount     int64        `json:"view_count" yaml:"view_count"`
	FavoriteCount int64        `json:"favorite_count" yaml:"favorite_count"`
	Availability  Availability `json:"availability_status" yaml:"availability_status"`
	CreatedAt     time.Time    `json:"created_at" yaml:"created_at"`
}

// IsAvailable reports whether the property may appear in recommendations.
func (p *Property) IsAvailable() bool {
	return p.Availability == AvailabilityAvailable
}

// Validate checks the invariants a property must satisfy before it is stored.
func (p *Property) Validate() error {
	if !p.Type.Valid() {
		return fmt.Errorf("property %d: invalid type %q", p.ID, p.Type)
	}
	if strings.TrimSpace(p.District) == "" {
		return fmt.Errorf("property %d: district is required", p.ID)
	}
	if p.Price < 0 {
		return fmt.Errorf("property %d: price must not be negative", p.ID)
	}
	if p.Area < 0 {
		return fmt.Errorf("property %d: area must not be negative", p.ID)
	}
	if p.ViewCount < 0 || p.FavoriteCount < 0 {
		return fmt.Errorf("property %d: counters must not be negative", p.ID)
	}
	if !p.Availability.Valid() {
		return fmt.Errorf("property %d: invalid availability %q", p.ID, p.Availability)
	}
	return nil
}

// Mode identifies which recommendation list produced a score.
type Mode string

const (
	ModePersonalized Mode = "personalized"
	ModeTrending     Mode = "trending"
	ModeSimilar      Mode = "similar"
)

// ScoredCandidate is a property with its computed score. It is never persisted
// beyond the optional response cache.
type ScoredCandidate struct {
	Property Property `json:"property"`
	Score    float64  `json:"score"`
	Mode     Mode     `json:"mode"`
}
