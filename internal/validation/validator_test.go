// Real Estate Marketplace - Property Recommendation Service
// Copyright 2026 Bikku2002
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Bikku2002/Real-Estate-Marketplace

package validation

import (
	"strings"
	"testing"
)

type sampleRequest struct {
	Limit    int    `query:"limit" validate:"min=1,max=100"`
	Kind     string `json:"kind" validate:"required,oneof=search view favorite"`
	District string `json:"district" validate:"omitempty,district"`
	MinArea  string `json:"min_area" validate:"omitempty,area"`
	Hidden   string `json:"-" validate:"omitempty,max=3"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name      string
		req       sampleRequest
		wantField string
		wantMsg   string
	}{
		{"valid", sampleRequest{Limit: 10, Kind: "view", District: "Kathmandu", MinArea: "4 aana"}, "", ""},
		{"limit zero", sampleRequest{Limit: 0, Kind: "view"}, "limit", "limit must be at least 1"},
		{"limit too big", sampleRequest{Limit: 101, Kind: "view"}, "limit", "limit must be at most 100"},
		{"missing kind", sampleRequest{Limit: 1}, "kind", "kind is required"},
		{"bad kind", sampleRequest{Limit: 1, Kind: "click"}, "kind", "kind must be one of: search view favorite"},
		{"bad district", sampleRequest{Limit: 1, Kind: "view", District: "Ward 5"}, "district", "district must be a district name"},
		{"bad area", sampleRequest{Limit: 1, Kind: "view", MinArea: "4 acres"}, "min_area", "min_area must be an area"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verr := ValidateStruct(&tt.req)
			if tt.wantField == "" {
				if verr != nil {
					t.Fatalf("ValidateStruct() = %v, want nil", verr)
				}
				return
			}
			if verr == nil {
				t.Fatal("ValidateStruct() = nil, want error")
			}
			if verr.Fields[0].Field != tt.wantField {
				t.Errorf("field = %q, want %q", verr.Fields[0].Field, tt.wantField)
			}
			if !strings.HasPrefix(verr.Error(), tt.wantMsg) {
				t.Errorf("message = %q, want prefix %q", verr.Error(), tt.wantMsg)
			}
		})
	}
}

func TestRequestValidationError_Details(t *testing.T) {
	verr := ValidateStruct(&sampleRequest{Limit: 0})
	if verr == nil {
		t.Fatal("expected errors")
	}
	if len(verr.Fields) != 2 {
		t.Fatalf("got %d field errors, want 2", len(verr.Fields))
	}
	if _, ok := verr.Details()["fields"]; !ok {
		t.Errorf("multi-field details should list fields: %v", verr.Details())
	}

	single := &RequestValidationError{Fields: []FieldError{{Field: "limit", Tag: "min", Message: "x"}}}
	if single.Details()["field"] != "limit" {
		t.Errorf("single-field details = %v", single.Details())
	}
}

func TestGetValidatorIsSingleton(t *testing.T) {
	if GetValidator() != GetValidator() {
		t.Error("GetValidator() should return the same instance")
	}
}
