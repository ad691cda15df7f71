// Real Estate Marketplace - Property Recommendation Service
// Copyright 2026 Bikku2002
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Bikku2002/Real-Estate-Marketplace

// Package units converts the land measurement units used in Nepal into the
// square-foot baseline stored for every property.
//
// Two systems are in common use:
//
//   - Hilly (Kathmandu valley and hills): ropani, aana, paisa, daam
//   - Terai (southern plains): bigha, kattha, dhur
//
// Compound values such as "2 ropani 3 aana" or "1-5-2-0" (ropani-aana-paisa-daam)
// are accepted by ParseArea.
package units

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Unit is a land area unit.
type Unit string

const (
	SquareFeet  Unit = "sqft"
	SquareMeter Unit = "sqm"
	Ropani      Unit = "ropani"
	Aana        Unit = "aana"
	Paisa       Unit = "paisa"
	Daam        Unit = "daam"
	Bigha       Unit = "bigha"
	Kattha      Unit = "kattha"
	Dhur        Unit = "dhur"
)

// Square feet per unit.
const (
	sqftPerSquareMeter = 10.7639
	sqftPerRopani      = 5476.0
	sqftPerAana        = 342.25
	sqftPerPaisa       = 85.5625
	sqftPerDaam        = 21.390625
	sqftPerBigha       = 72900.0
	sqftPerKattha      = 3645.0
	sqftPerDhur        = 182.25
)

var factors = map[Unit]float64{
	SquareFeet:  1,
	SquareMeter: sqftPerSquareMeter,
	Ropani:      sqftPerRopani,
	Aana:        sqftPerAana,
	Paisa:       sqftPerPaisa,
	Daam:        sqftPerDaam,
	Bigha:       sqftPerBigha,
	Kattha:      sqftPerKattha,
	Dhur:        sqftPerDhur,
}

// aliases maps spellings seen in listings to canonical units.
var aliases = map[string]Unit{
	"sqft": SquareFeet, "sq.ft": SquareFeet, "sq ft": SquareFeet, "ft2": SquareFeet, "sqfeet": SquareFeet, "feet": SquareFeet,
	"sqm": SquareMeter, "sq.m": SquareMeter, "m2": SquareMeter, "sqmeter": SquareMeter,
	"ropani": Ropani, "ropanis": Ropani,
	"aana": Aana, "anna": Aana, "ana": Aana, "aanas": Aana,
	"paisa": Paisa, "paisas": Paisa,
	"daam": Daam, "dam": Daam, "daams": Daam,
	"bigha": Bigha, "bighas": Bigha,
	"kattha": Kattha, "katha": Kattha, "katthas": Kattha,
	"dhur": Dhur, "dhurs": Dhur,
}

// ErrUnknownUnit is returned when a unit name is not recognised.
var ErrUnknownUnit = errors.New("unknown area unit")

// ParseUnit resolves a unit name or alias.
func ParseUnit(s string) (Unit, error) {
	u, ok := aliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownUnit, s)
	}
	return u, nil
}

// ToSquareFeet converts value in unit u to square feet.
func ToSquareFeet(value float64, u Unit) (float64, error) {
	f, ok := factors[u]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownUnit, u)
	}
	return value * f, nil
}

// FromSquareFeet converts square feet into unit u.
func FromSquareFeet(sqft float64, u Unit) (float64, error) {
	f, ok := factors[u]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownUnit, u)
	}
	return sqft / f, nil
}

// hillyOrder and teraiOrder give the positional meaning of dash-separated values.
var (
	hillyOrder = []Unit{Ropani, Aana, Paisa, Daam}
	teraiOrder = []Unit{Bigha, Kattha, Dhur}
)

// ParseArea parses a human area expression into square feet.
//
// Accepted forms:
//
//	"1800"                  plain number, square feet
//	"1800 sqft", "120 sqm"  number with unit
//	"2 ropani 3 aana"       compound number/unit pairs
//	"1-5-2-0"               ropani-aana-paisa-daam
//	"1-5-2 terai"           bigha-kattha-dhur
func ParseArea(s string) (float64, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return 0, errors.New("empty area")
	}

	if v, err := strconv.ParseFloat(s, 64); err == nil {
		if v < 0 {
			return 0, fmt.Errorf("negative area %q", s)
		}
		return v, nil
	}

	if strings.Contains(s, "-") {
		return parseDashed(s)
	}

	fields := strings.Fields(s)
	if len(fields)%2 != 0 {
		// Allow "1800sqft" style by splitting the trailing unit.
		if len(fields) == 1 {
			return parseGlued(fields[0])
		}
		return 0, fmt.Errorf("malformed area %q", s)
	}

	total := 0.0
	for i := 0; i < len(fields); i += 2 {
		v, err := strconv.ParseFloat(fields[i], 64)
		if err != nil || v < 0 {
			return 0, fmt.Errorf("malformed quantity %q in %q", fields[i], s)
		}
		u, err := ParseUnit(fields[i+1])
		if err != nil {
			return 0, err
		}
		sqft, _ := ToSquareFeet(v, u)
		total += sqft
	}
	return total, nil
}

func parseGlued(s string) (float64, error) {
	i := strings.IndexFunc(s, func(r rune) bool {
		return (r < '0' || r > '9') && r != '.'
	})
	if i <= 0 {
		return 0, fmt.Errorf("malformed area %q", s)
	}
	v, err := strconv.ParseFloat(s[:i], 64)
	if err != nil {
		return 0, fmt.Errorf("malformed area %q", s)
	}
	u, err := ParseUnit(s[i:])
	if err != nil {
		return 0, err
	}
	return ToSquareFeet(v, u)
}

func parseDashed(s string) (float64, error) {
	order := hillyOrder
	if strings.HasSuffix(s, "terai") {
		order = teraiOrder
		s = strings.TrimSpace(strings.TrimSuffix(s, "terai"))
	}

	parts := strings.Split(s, "-")
	if len(parts) > len(order) {
		return 0, fmt.Errorf("too many components in %q", s)
	}

	total := 0.0
	for i, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.ParseFloat(part, 64)
		if err != nil || v < 0 {
			return 0, fmt.Errorf("malformed component %q in %q", part, s)
		}
		sqft, _ := ToSquareFeet(v, order[i])
		total += sqft
	}
	return total, nil
}
