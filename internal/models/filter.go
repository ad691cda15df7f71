// Real Estate Marketplace - Property Recommendation Service
// Copyright 2026 Bikku2002
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Bikku2002/Real-Estate-Marketplace

package models

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// CandidateOrder decides which rows a store keeps when MaxCandidates cuts
// the candidate set.
type CandidateOrder int

const (
	// OrderNewest keeps the most recently listed properties.
	OrderNewest CandidateOrder = iota
	// OrderPopular keeps the most viewed and favorited properties, weighing
	// views and favorites 3:2 like the trending score.
	OrderPopular
)

// CandidateFilter narrows the set of available properties loaded for scoring.
// Zero values mean "no constraint".
type CandidateFilter struct {
	Type       PropertyType `json:"type,omitempty"`
	District   string       `json:"district,omitempty"`
	MinPrice   int64        `json:"min_price,omitempty"`
	MaxPrice   int64        `json:"max_price,omitempty"`
	MinArea    float64      `json:"min_area,omitempty"`
	MaxArea    float64      `json:"max_area,omitempty"`
	ExcludeIDs []int64      `json:"exclude_ids,omitempty"`

	// MaxCandidates bounds how many rows the store returns. 0 means the
	// service default, which is unbounded unless configured.
	MaxCandidates int `json:"-"`

	// Order applies before MaxCandidates. Ties fall back to newest first.
	Order CandidateOrder `json:"-"`
}

// PopularityRank orders properties for OrderPopular. It is proportional to
// 0.6*views + 0.4*favorites and exact in integers.
func PopularityRank(p *Property) int64 {
	return 3*p.ViewCount + 2*p.FavoriteCount
}

// Validate rejects malformed filters.
func (f *CandidateFilter) Validate() error {
	if f.Type != "" && !f.Type.Valid() {
		return fmt.Errorf("filter: invalid type %q", f.Type)
	}
	if f.MinPrice < 0 || f.MaxPrice < 0 {
		return fmt.Errorf("filter: prices must not be negative")
	}
	if f.MaxPrice > 0 && f.MinPrice > f.MaxPrice {
		return fmt.Errorf("filter: min_price %d exceeds max_price %d", f.MinPrice, f.MaxPrice)
	}
	if f.MinArea < 0 || f.MaxArea < 0 {
		return fmt.Errorf("filter: areas must not be negative")
	}
	if f.MaxArea > 0 && f.MinArea > f.MaxArea {
		return fmt.Errorf("filter: min_area %v exceeds max_area %v", f.MinArea, f.MaxArea)
	}
	if f.MaxCandidates < 0 {
		return fmt.Errorf("filter: max candidates must not be negative")
	}
	if f.Order != OrderNewest && f.Order != OrderPopular {
		return fmt.Errorf("filter: unknown candidate order %d", f.Order)
	}
	return nil
}

// Excludes reports whether id is in ExcludeIDs.
func (f *CandidateFilter) Excludes(id int64) bool {
	for _, ex := range f.ExcludeIDs {
		if ex == id {
			return true
		}
	}
	return false
}

// CacheKey renders the filter canonically so that equal filters share a key.
func (f *CandidateFilter) CacheKey() string {
	var b strings.Builder
	b.WriteString("t=")
	b.WriteString(string(f.Type))
	b.WriteString("|d=")
	b.WriteString(CategoricalKey(f.District))
	b.WriteString("|p=")
	b.WriteString(strconv.FormatInt(f.MinPrice, 10))
	b.WriteString("-")
	b.WriteString(strconv.FormatInt(f.MaxPrice, 10))
	b.WriteString("|a=")
	b.WriteString(FormatNumber(f.MinArea))
	b.WriteString("-")
	b.WriteString(FormatNumber(f.MaxArea))
	if len(f.ExcludeIDs) > 0 {
		ids := append([]int64(nil), f.ExcludeIDs...)
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		b.WriteString("|x=")
		for i, id := range ids {
			if i > 0 {
				b.WriteString(",")
			}
			b.WriteString(strconv.FormatInt(id, 10))
		}
	}
	return b.String()
}
