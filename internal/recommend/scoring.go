// Real Estate Marketplace - Property Recommendation Service
// Copyright 2026 Bikku2002
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Bikku2002/Real-Estate-Marketplace

package recommend

import (
	"math"

	"github.com/Bikku2002/Real-Estate-Marketplace--sub000/internal/models"
)

// Personalized term weights. They sum to 1.
const (
	WeightTypeMatch     = 0.30
	WeightDistrictMatch = 0.25
	WeightWithinBudget  = 0.20
	WeightMinArea       = 0.15
	WeightPopular       = 0.10
)

// Trending weights.
const (
	TrendingViewWeight     = 0.6
	TrendingFavoriteWeight = 0.4
)

// Similarity term weights and tolerances.
const (
	SimilarTypeWeight     = 0.40
	SimilarDistrictWeight = 0.30
	SimilarPriceWeight    = 0.20
	SimilarAreaWeight     = 0.10

	PriceTolerance = 0.30
	AreaTolerance  = 0.40
)

// Profile is a user's preference rows indexed for scoring. Categorical
// entries map a normalized value to the highest weight asserting it.
type Profile struct {
	Types     map[string]float64
	Districts map[string]float64

	MaxPrice       float64
	MaxPriceWeight float64
	HasMaxPrice    bool

	MinArea       float64
	MinAreaWeight float64
	HasMinArea    bool
}

// Empty reports whether no preference contributes to scoring.
func (p *Profile) Empty() bool {
	return len(p.Types) == 0 && len(p.Districts) == 0 && !p.HasMaxPrice && !p.HasMinArea
}

// BuildProfile indexes prefs. Rows with a non-numeric range value and the
// features/amenities types are ignored; they carry no scoring term.
func BuildProfile(prefs []models.UserPreference) Profile {
	profile := Profile{
		Types:     make(map[string]float64),
		Districts: make(map[string]float64),
	}

	for i := range prefs {
		pref := &prefs[i]
		switch pref.Type {
		case models.PreferencePropertyType:
			addCategorical(profile.Types, pref)
		case models.PreferenceDistrict:
			addCategorical(profile.Districts, pref)
		case models.PreferencePriceRange:
			if pref.Key != models.KeyMaxPrice {
				continue
			}
			if v, ok := pref.NumericValue(); ok {
				profile.MaxPrice, profile.MaxPriceWeight, profile.HasMaxPrice = v, pref.Weight, true
			}
		case models.PreferenceAreaRange:
			if pref.Key != models.KeyMinArea {
				continue
			}
			if v, ok := pref.NumericValue(); ok {
				profile.MinArea, profile.MinAreaWeight, profile.HasMinArea = v, pref.Weight, true
			}
		}
	}
	return profile
}

func addCategorical(m map[string]float64, pref *models.UserPreference) {
	value := models.CategoricalKey(pref.Value)
	if value == "" {
		value = models.CategoricalKey(pref.Key)
	}
	if value == "" {
		return
	}
	if w, ok := m[value]; !ok || pref.Weight > w {
		m[value] = pref.Weight
	}
}

// Scorer computes the three scores. It is stateless apart from its settings
// and safe for concurrent use.
type Scorer struct {
	popularityThreshold int64
	useWeights          bool
}

// NewScorer creates a Scorer from cfg.
func NewScorer(cfg *Config) *Scorer {
	return &Scorer{
		popularityThreshold: cfg.PopularityThreshold,
		useWeights:          cfg.UsePreferenceWeights,
	}
}

func (s *Scorer) term(weight, prefWeight float64) float64 {
	if s.useWeights {
		return weight * prefWeight
	}
	return weight
}

// Personalized scores p against profile. The result is in [0,1].
func (s *Scorer) Personalized(p *models.Property, profile *Profile) float64 {
	var score float64

	if w, ok := profile.Types[models.CategoricalKey(string(p.Type))]; ok {
		score += s.term(WeightTypeMatch, w)
	}
	if w, ok := profile.Districts[models.CategoricalKey(p.District)]; ok {
		score += s.term(WeightDistrictMatch, w)
	}
	// A zero price or area carries no information and never matches.
	if profile.HasMaxPrice && p.Price > 0 && float64(p.Price) <= profile.MaxPrice {
		score += s.term(WeightWithinBudget, profile.MaxPriceWeight)
	}
	if profile.HasMinArea && p.Area > 0 && p.Area >= profile.MinArea {
		score += s.term(WeightMinArea, profile.MinAreaWeight)
	}
	if p.ViewCount > s.popularityThreshold {
		score += WeightPopular
	}

	return clamp01(score)
}

// Trending returns 0.6*views + 0.4*favorites. The score is unbounded.
func Trending(p *models.Property) float64 {
	return roundNoise(TrendingViewWeight*float64(p.ViewCount) + TrendingFavoriteWeight*float64(p.FavoriteCount))
}

// Similarity scores candidate against ref. The result is in [0,1].
func Similarity(ref, candidate *models.Property) float64 {
	var score float64

	if ref.Type == candidate.Type {
		score += SimilarTypeWeight
	}
	if models.CategoricalKey(ref.District) == models.CategoricalKey(candidate.District) {
		score += SimilarDistrictWeight
	}
	if d, ok := relativeDiff(float64(ref.Price), float64(candidate.Price)); ok && d <= PriceTolerance {
		score += SimilarPriceWeight
	}
	if d, ok := relativeDiff(ref.Area, candidate.Area); ok && d <= AreaTolerance {
		score += SimilarAreaWeight
	}

	return clamp01(score)
}

// relativeDiff returns |a-b| / max(a,b). ok is false when either side is
// not positive, so the caller skips the term.
func relativeDiff(a, b float64) (float64, bool) {
	if a <= 0 || b <= 0 {
		return 0, false
	}
	return math.Abs(a-b) / math.Max(a, b), true
}

// roundNoise drops digits below 1e-9 so 0.6*12 reads 7.2, not 7.199999999999999.
func roundNoise(v float64) float64 {
	return math.Round(v*1e9) / 1e9
}

// clamp01 also rounds away float noise so that 0.30+0.25+0.20+0.10 compares
// equal to 0.85.
func clamp01(v float64) float64 {
	v = roundNoise(v)
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
