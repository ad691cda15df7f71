// Real Estate Marketplace - Property Recommendation Service
// Copyright 2026 Bikku2002
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Bikku2002/Real-Estate-Marketplace

package recommend

import (
	"errors"
	"testing"
	"time"

	"github.com/Bikku2002/Real-Estate-Marketplace--sub000/internal/models"
)

var baseTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func candidate(id int64, score float64, ageDays int) models.ScoredCandidate {
	return models.ScoredCandidate{
		Property: models.Property{ID: id, CreatedAt: baseTime.AddDate(0, 0, -ageDays)},
		Score:    score,
	}
}

func ids(list []models.ScoredCandidate) []int64 {
	out := make([]int64, len(list))
	for i := range list {
		out[i] = list[i].Property.ID
	}
	return out
}

func equalIDs(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestAssemble(t *testing.T) {
	input := []models.ScoredCandidate{
		candidate(1, 0.5, 3),
		candidate(2, 0.9, 1),
		candidate(3, 0.5, 1),
		candidate(4, 0.15, 0),
		candidate(5, 0.5, 1),
	}

	tests := []struct {
		name  string
		limit int
		keep  func(*models.ScoredCandidate) bool
		want  []int64
	}{
		{"orders by score then recency then id", 10, nil, []int64{2, 5, 3, 1, 4}},
		{"truncates", 2, nil, []int64{2, 5}},
		{"threshold is exclusive", 10, aboveThreshold(0.5), []int64{2}},
		{"personalized threshold", 10, aboveThreshold(0.2), []int64{2, 5, 3, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Assemble(append([]models.ScoredCandidate(nil), input...), tt.limit, tt.keep)
			if err != nil {
				t.Fatalf("Assemble() error = %v", err)
			}
			if !equalIDs(ids(got), tt.want) {
				t.Errorf("Assemble() = %v, want %v", ids(got), tt.want)
			}
		})
	}
}

func TestAssembleEmpty(t *testing.T) {
	got, err := Assemble(nil, 5, nil)
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("Assemble(nil) = %#v, want empty non-nil slice", got)
	}
}

func TestAssembleInvalidLimit(t *testing.T) {
	for _, limit := range []int{0, -3} {
		_, err := Assemble([]models.ScoredCandidate{candidate(1, 1, 0)}, limit, nil)
		if !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("Assemble(limit=%d) error = %v, want ErrInvalidArgument", limit, err)
		}
	}
}

func TestAssembleDeterministic(t *testing.T) {
	input := []models.ScoredCandidate{
		candidate(7, 0.4, 2), candidate(3, 0.4, 2), candidate(9, 0.4, 2),
	}
	reversed := []models.ScoredCandidate{input[2], input[1], input[0]}

	a, _ := Assemble(input, 3, nil)
	b, _ := Assemble(reversed, 3, nil)
	if !equalIDs(ids(a), ids(b)) || !equalIDs(ids(a), []int64{9, 7, 3}) {
		t.Errorf("orders differ: %v vs %v", ids(a), ids(b))
	}
}

func TestNormalizeScores(t *testing.T) {
	list := []models.ScoredCandidate{candidate(1, 64, 0), candidate(2, 54, 0), candidate(3, 44, 0)}
	normalizeScores(list)
	want := []float64{1, 0.5, 0}
	for i := range list {
		if !approxEqual(list[i].Score, want[i]) {
			t.Errorf("score[%d] = %v, want %v", i, list[i].Score, want[i])
		}
	}

	flat := []models.ScoredCandidate{candidate(1, 3, 0), candidate(2, 3, 0)}
	normalizeScores(flat)
	if flat[0].Score != 1 || flat[1].Score != 1 {
		t.Errorf("constant list normalized to %v, %v; want 1, 1", flat[0].Score, flat[1].Score)
	}
	normalizeScores(nil)
}
