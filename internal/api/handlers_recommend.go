// Real Estate Marketplace - Property Recommendation Service
// Copyright 2026 Bikku2002
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Bikku2002/Real-Estate-Marketplace

package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Bikku2002/Real-Estate-Marketplace--sub000/internal/logging"
	"github.com/Bikku2002/Real-Estate-Marketplace--sub000/internal/models"
)

// RecommendationsResponse is the data payload of the recommendation endpoints.
type RecommendationsResponse struct {
	Mode  models.Mode              `json:"mode"`
	Count int                      `json:"count"`
	Items []models.ScoredCandidate `json:"items"`
}

// PersonalizedRecommendations handles GET /api/v1/recommendations/users/{userID}
func (h *Handler) PersonalizedRecommendations(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	userID, ok := pathID(rw, r, "userID")
	if !ok {
		return
	}
	query, ok := h.recommendationQuery(rw, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.config.RequestTimeout)
	defer cancel()

	items, err := h.recommender.GetPersonalizedRecommendations(ctx, userID, query.Limit, query.Filter())
	if err != nil {
		respondServiceError(rw, r, err)
		return
	}
	logging.Ctx(r.Context()).Debug().
		Int64("user_id", userID).
		Int("results", len(items)).
		Msg("personalized recommendations served")
	rw.Success(recommendations(models.ModePersonalized, items))
}

// TrendingProperties handles GET /api/v1/recommendations/trending
func (h *Handler) TrendingProperties(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	query, ok := h.recommendationQuery(rw, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.config.RequestTimeout)
	defer cancel()

	items, err := h.recommender.GetTrendingProperties(ctx, query.Limit, query.Filter())
	if err != nil {
		respondServiceError(rw, r, err)
		return
	}
	rw.Success(recommendations(models.ModeTrending, items))
}

// SimilarProperties handles GET /api/v1/recommendations/similar/{propertyID}
func (h *Handler) SimilarProperties(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	propertyID, ok := pathID(rw, r, "propertyID")
	if !ok {
		return
	}
	query, ok := h.recommendationQuery(rw, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.config.RequestTimeout)
	defer cancel()

	items, err := h.recommender.GetSimilarProperties(ctx, propertyID, query.Limit)
	if err != nil {
		respondServiceError(rw, r, err)
		return
	}
	rw.Success(recommendations(models.ModeSimilar, items))
}

// recommendationQuery parses and validates the shared query parameters,
// writing a 400 and returning false when they are invalid.
func (h *Handler) recommendationQuery(rw *ResponseWriter, r *http.Request) (RecommendationQuery, bool) {
	query, verr := parseRecommendationQuery(r.URL.Query(), h.config.DefaultLimit)
	if verr != nil {
		rw.ValidationError(verr.Error(), verr.Details())
		return query, false
	}
	if query.Limit > h.config.MaxLimit {
		rw.InvalidArgument(fmt.Sprintf("limit must be at most %d", h.config.MaxLimit))
		return query, false
	}
	return query, true
}

func pathID(rw *ResponseWriter, r *http.Request, param string) (int64, bool) {
	raw := chi.URLParam(r, param)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		rw.InvalidArgument(fmt.Sprintf("%s must be a positive integer, got %q", param, raw))
		return 0, false
	}
	return id, true
}

func recommendations(mode models.Mode, items []models.ScoredCandidate) RecommendationsResponse {
	if items == nil {
		items = []models.ScoredCandidate{}
	}
	return RecommendationsResponse{Mode: mode, Count: len(items), Items: items}
}
