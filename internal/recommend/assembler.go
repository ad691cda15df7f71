// Real Estate Marketplace - Property Recommendation Service
// Copyright 2026 Bikku2002
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Bikku2002/Real-Estate-Marketplace

package recommend

import (
	"sort"

	"github.com/Bikku2002/Real-Estate-Marketplace--sub000/internal/models"
)

// Assemble filters, orders and truncates scored candidates.
//
// keep decides which candidates survive (nil keeps all). Survivors are sorted
// by score descending, ties broken by newer created_at then higher id, so the
// output is deterministic for identical inputs. The returned slice is never
// nil.
func Assemble(scored []models.ScoredCandidate, limit int, keep func(*models.ScoredCandidate) bool) ([]models.ScoredCandidate, error) {
	if limit <= 0 {
		return nil, invalidArgument("limit must be positive, got %d", limit)
	}

	out := make([]models.ScoredCandidate, 0, min(len(scored), limit))
	for i := range scored {
		if keep == nil || keep(&scored[i]) {
			out = append(out, scored[i])
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return rankBefore(&out[i], &out[j])
	})

	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func rankBefore(a, b *models.ScoredCandidate) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	if !a.Property.CreatedAt.Equal(b.Property.CreatedAt) {
		return a.Property.CreatedAt.After(b.Property.CreatedAt)
	}
	return a.Property.ID > b.Property.ID
}

// aboveThreshold keeps candidates whose score is strictly greater than t.
func aboveThreshold(t float64) func(*models.ScoredCandidate) bool {
	return func(c *models.ScoredCandidate) bool {
		return c.Score > t
	}
}

// normalizeScores min-max scales scores into [0,1] in place. A constant
// list maps to 1.
func normalizeScores(list []models.ScoredCandidate) {
	if len(list) == 0 {
		return
	}
	lo, hi := list[0].Score, list[0].Score
	for i := range list {
		lo = min(lo, list[i].Score)
		hi = max(hi, list[i].Score)
	}
	for i := range list {
		if hi == lo {
			list[i].Score = 1
			continue
		}
		list[i].Score = clamp01((list[i].Score - lo) / (hi - lo))
	}
}
