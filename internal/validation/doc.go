// Real Estate Marketplace - Property Recommendation Service
// Copyright 2026 Bikku2002
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Bikku2002/Real-Estate-Marketplace

// Package validation wraps a singleton go-playground/validator with the
// service's custom rules ("district", "area") and turns field errors into
// messages for the API error envelope.
//
//	type trendingQuery struct {
//	    Limit    int    `query:"limit" validate:"min=1,max=100"`
//	    District string `query:"district" validate:"omitempty,district"`
//	}
//
//	if verr := validation.ValidateStruct(&q); verr != nil {
//	    rw.ValidationError(verr)
//	}
package validation
