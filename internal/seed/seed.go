// Real Estate Marketplace - Property Recommendation Service
// Copyright 2026 Bikku2002
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Bikku2002/Real-Estate-Marketplace

// Package seed loads property and preference fixtures from YAML into a
// feature store. It backs the `seed` command and the demo data set.
package seed

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/Bikku2002/Real-Estate-Marketplace--sub000/internal/featurestore"
	"github.com/Bikku2002/Real-Estate-Marketplace--sub000/internal/models"
	"github.com/Bikku2002/Real-Estate-Marketplace--sub000/internal/units"
)

//go:embed demo.yaml
var demoFixtures []byte

// Fixtures is the document layout of a seed file.
type Fixtures struct {
	Properties  []PropertyFixture   `yaml:"properties"`
	Preferences []PreferenceFixture `yaml:"preferences"`
}

// PropertyFixture is one listing. Area accepts square feet or any
// expression units.ParseArea understands ("4 aana", "1-2-0-0").
// A missing availability means available; a missing created_at means now.
type PropertyFixture struct {
	ID            int64     `yaml:"id"`
	Type          string    `yaml:"type"`
	District      string    `yaml:"district"`
	Price         int64     `yaml:"price"`
	Area          Area      `yaml:"area"`
	ViewCount     int64     `yaml:"view_count"`
	FavoriteCount int64     `yaml:"favorite_count"`
	Availability  string    `yaml:"availability_status"`
	CreatedAt     time.Time `yaml:"created_at"`
}

// PreferenceFixture is one preference row. Weight defaults to 1.
type PreferenceFixture struct {
	UserID int64    `yaml:"user_id"`
	Type   string   `yaml:"type"`
	Key    string   `yaml:"key"`
	Value  string   `yaml:"value"`
	Weight *float64 `yaml:"weight"`
}

// Area is a square-feet value decoded from a number or an area expression.
type Area float64

// UnmarshalYAML implements yaml.Unmarshaler.
func (a *Area) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: area must be a scalar", node.Line)
	}
	v, err := units.ParseArea(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*a = Area(v)
	return nil
}

// Load decodes fixtures from r. Unknown fields are rejected.
func Load(r io.Reader) (*Fixtures, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f Fixtures
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return &f, nil
		}
		return nil, fmt.Errorf("parse fixtures: %w", err)
	}
	return &f, nil
}

// LoadFile reads fixtures from path.
func LoadFile(path string) (*Fixtures, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixtures: %w", err)
	}
	return Load(bytes.NewReader(data))
}

// Demo returns the bundled demo data set.
func Demo() (*Fixtures, error) {
	return Load(bytes.NewReader(demoFixtures))
}

// Result counts what Apply wrote.
type Result struct {
	Properties  int
	Preferences int
}

// Apply validates every fixture and then writes them to w. Properties are
// saved (insert or replace); preferences replace value and weight.
// Nothing is written when any fixture is invalid.
//
//nolint:gocritic // zerolog.Logger is passed by value
func (f *Fixtures) Apply(ctx context.Context, w featurestore.Writer, logger zerolog.Logger) (Result, error) {
	now := time.Now().UTC()

	props := make([]models.Property, 0, len(f.Properties))
	for i := range f.Properties {
		p, err := f.Properties[i].toModel(now)
		if err != nil {
			return Result{}, fmt.Errorf("properties[%d]: %w", i, err)
		}
		props = append(props, p)
	}

	prefs := make([]models.UserPreference, 0, len(f.Preferences))
	for i := range f.Preferences {
		p, err := f.Preferences[i].toModel(now)
		if err != nil {
			return Result{}, fmt.Errorf("preferences[%d]: %w", i, err)
		}
		prefs = append(prefs, p)
	}

	var res Result
	for i := range props {
		if err := w.SaveProperty(ctx, &props[i]); err != nil {
			return res, fmt.Errorf("save property %d: %w", props[i].ID, err)
		}
		res.Properties++
	}
	for _, p := range prefs {
		if err := w.UpsertPreference(ctx, p, models.MergeReplace); err != nil {
			return res, fmt.Errorf("save preference %d/%s/%s: %w", p.UserID, p.Type, p.Key, err)
		}
		res.Preferences++
	}

	logger.Info().
		Int("properties", res.Properties).
		Int("preferences", res.Preferences).
		Msg("fixtures applied")
	return res, nil
}

func (pf *PropertyFixture) toModel(now time.Time) (models.Property, error) {
	if pf.ID <= 0 {
		return models.Property{}, fmt.Errorf("id must be positive, got %d", pf.ID)
	}
	typ, err := models.ParsePropertyType(pf.Type)
	if err != nil {
		return models.Property{}, err
	}
	avail := models.AvailabilityAvailable
	if pf.Availability != "" {
		if avail, err = models.ParseAvailability(pf.Availability); err != nil {
			return models.Property{}, err
		}
	}
	created := pf.CreatedAt
	if created.IsZero() {
		created = now
	}

	p := models.Property{
		ID:            pf.ID,
		Type:          typ,
		District:      strings.TrimSpace(pf.District),
		Price:         pf.Price,
		Area:          float64(pf.Area),
		ViewCount:     pf.ViewCount,
		FavoriteCount: pf.FavoriteCount,
		Availability:  avail,
		CreatedAt:     created.UTC(),
	}
	return p, p.Validate()
}

func (pf *PreferenceFixture) toModel(now time.Time) (models.UserPreference, error) {
	p := models.UserPreference{
		UserID:    pf.UserID,
		Type:      models.PreferenceType(strings.ToLower(strings.TrimSpace(pf.Type))),
		Key:       strings.TrimSpace(pf.Key),
		Value:     strings.TrimSpace(pf.Value),
		Weight:    models.DefaultPreferenceWeight,
		UpdatedAt: now,
	}
	if pf.Weight != nil {
		p.Weight = *pf.Weight
	}

	switch p.Type {
	case models.PreferencePropertyType, models.PreferenceDistrict:
		// Categorical rows are keyed by their normalized value.
		if p.Key == "" {
			p.Key = models.CategoricalKey(p.Value)
		}
	case models.PreferenceAreaRange:
		if p.Key == "" {
			p.Key = models.KeyMinArea
		}
		sqft, err := units.ParseArea(p.Value)
		if err != nil {
			return p, err
		}
		p.Value = models.FormatNumber(sqft)
	case models.PreferencePriceRange:
		if p.Key == "" {
			p.Key = models.KeyMaxPrice
		}
		if _, ok := p.NumericValue(); !ok {
			return p, fmt.Errorf("%s value %q is not a number", p.Key, p.Value)
		}
	}
	return p, p.Validate()
}
