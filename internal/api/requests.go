// Real Estate Marketplace - Property Recommendation Service
// Copyright 2026 Bikku2002
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Bikku2002/Real-Estate-Marketplace

package api

import (
	"bytes"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/Bikku2002/Real-Estate-Marketplace--sub000/internal/models"
	"github.com/Bikku2002/Real-Estate-Marketplace--sub000/internal/units"
	"github.com/Bikku2002/Real-Estate-Marketplace--sub000/internal/validation"
)

// maxSignalBody bounds POST /signals payloads.
const maxSignalBody = 16 << 10

// RecommendationQuery holds the query parameters shared by the
// recommendation endpoints. Area bounds accept anything units.ParseArea
// does, e.g. "1800", "4 aana" or "1-2-0-0".
type RecommendationQuery struct {
	Limit    int    `query:"limit" validate:"gte=1"`
	Type     string `query:"type" validate:"omitempty,oneof=land house"`
	District string `query:"district" validate:"omitempty,district,max=100"`
	MinPrice int64  `query:"min_price" validate:"gte=0"`
	MaxPrice int64  `query:"max_price" validate:"gte=0"`
	MinArea  string `query:"min_area" validate:"omitempty,area"`
	MaxArea  string `query:"max_area" validate:"omitempty,area"`
}

// parseRecommendationQuery reads q. A missing limit becomes defaultLimit;
// a present but malformed number is reported as a field error.
func parseRecommendationQuery(q url.Values, defaultLimit int) (RecommendationQuery, *validation.RequestValidationError) {
	req := RecommendationQuery{
		Limit:    defaultLimit,
		Type:     strings.ToLower(strings.TrimSpace(q.Get("type"))),
		District: strings.TrimSpace(q.Get("district")),
		MinArea:  q.Get("min_area"),
		MaxArea:  q.Get("max_area"),
	}

	var fields []validation.FieldError
	intParam := func(name string, dst *int64) {
		raw := q.Get(name)
		if raw == "" {
			return
		}
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			fields = append(fields, validation.FieldError{
				Field: name, Tag: "integer", Value: raw,
				Message: name + " must be an integer",
			})
			return
		}
		*dst = v
	}

	limit := int64(defaultLimit)
	intParam("limit", &limit)
	req.Limit = int(limit)
	intParam("min_price", &req.MinPrice)
	intParam("max_price", &req.MaxPrice)

	if len(fields) > 0 {
		return req, &validation.RequestValidationError{Fields: fields}
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		return req, verr
	}
	return req, nil
}

// Filter converts the validated query into a candidate filter.
// Area expressions are already known to parse.
func (q *RecommendationQuery) Filter() models.CandidateFilter {
	f := models.CandidateFilter{
		Type:     models.PropertyType(q.Type),
		District: q.District,
		MinPrice: q.MinPrice,
		MaxPrice: q.MaxPrice,
	}
	if q.MinArea != "" {
		f.MinArea, _ = units.ParseArea(q.MinArea)
	}
	if q.MaxArea != "" {
		f.MaxArea, _ = units.ParseArea(q.MaxArea)
	}
	return f
}

// AreaValue is a square-feet area that decodes from a JSON number or from
// an area expression string such as "4 aana".
type AreaValue float64

// UnmarshalJSON implements json.Unmarshaler.
func (a *AreaValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if strings.TrimSpace(s) == "" {
			*a = 0
			return nil
		}
		v, err := units.ParseArea(s)
		if err != nil {
			return fmt.Errorf("min_area: %w", err)
		}
		*a = AreaValue(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("min_area: %w", err)
	}
	*a = AreaValue(v)
	return nil
}

// SearchFiltersRequest is the filters object of a search signal.
type SearchFiltersRequest struct {
	Type     string    `json:"type" validate:"omitempty,oneof=land house"`
	District string    `json:"district" validate:"omitempty,district,max=100"`
	MaxPrice int64     `json:"max_price" validate:"gte=0"`
	MinArea  AreaValue `json:"min_area" validate:"gte=0"`
}

// SignalRequest is the body of POST /signals.
type SignalRequest struct {
	UserID     int64                `json:"user_id" validate:"required,gt=0"`
	Kind       string               `json:"kind" validate:"required,oneof=search view favorite"`
	PropertyID int64                `json:"property_id" validate:"required_unless=Kind search,gte=0"`
	Filters    SearchFiltersRequest `json:"filters"`
}

// decodeSignalRequest reads and validates the body of r.
func decodeSignalRequest(w http.ResponseWriter, r *http.Request) (*SignalRequest, error) {
	var req SignalRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxSignalBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return nil, fmt.Errorf("invalid request body: %w", err)
	}
	req.Kind = strings.ToLower(strings.TrimSpace(req.Kind))
	req.Filters.Type = strings.ToLower(strings.TrimSpace(req.Filters.Type))
	req.Filters.District = strings.TrimSpace(req.Filters.District)
	if verr := validation.ValidateStruct(&req); verr != nil {
		return nil, verr
	}
	return &req, nil
}

// Signal converts the request into a models.Signal.
func (req *SignalRequest) Signal() models.Signal {
	sig := models.Signal{
		UserID:     req.UserID,
		Kind:       models.SignalKind(req.Kind),
		PropertyID: req.PropertyID,
	}
	if sig.Kind == models.SignalSearch {
		sig.Filters = models.SearchFilters{
			Type:     models.PropertyType(req.Filters.Type),
			District: req.Filters.District,
			MaxPrice: req.Filters.MaxPrice,
			MinArea:  float64(req.Filters.MinArea),
		}
	}
	return sig
}
