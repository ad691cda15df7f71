// Real Estate Marketplace - Property Recommendation Service
// Copyright 2026 Bikku2002
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Bikku2002/Real-Estate-Marketplace

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/Bikku2002/Real-Estate-Marketplace--sub000/internal/signals"
	"github.com/Bikku2002/Real-Estate-Marketplace--sub000/internal/validation"
)

// SignalAccepted is the data payload of POST /signals.
type SignalAccepted struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// SubmitSignal handles POST /api/v1/signals
//
// With the signal bus enabled the signal is queued and 202 is returned;
// otherwise it is applied inline and 200 is returned.
func (h *Handler) SubmitSignal(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	req, err := decodeSignalRequest(w, r)
	if err != nil {
		var verr *validation.RequestValidationError
		if errors.As(err, &verr) {
			rw.ValidationError(verr.Error(), verr.Details())
			return
		}
		rw.InvalidArgument(err.Error())
		return
	}

	sig := req.Signal()

	ctx, cancel := context.WithTimeout(r.Context(), h.config.RequestTimeout)
	defer cancel()

	if err := h.sink.Submit(ctx, &sig); err != nil {
		respondServiceError(rw, r, err)
		return
	}

	if _, queued := h.sink.(*signals.Bus); queued {
		rw.Accepted(SignalAccepted{ID: sig.ID, Status: "accepted"})
		return
	}
	rw.Success(SignalAccepted{ID: sig.ID, Status: "applied"})
}
