// Real Estate Marketplace - Property Recommendation Service
// Copyright 2026 Bikku2002
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Bikku2002/Real-Estate-Marketplace

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/Bikku2002/Real-Estate-Marketplace--sub000/internal/featurestore"
	"github.com/Bikku2002/Real-Estate-Marketplace--sub000/internal/logging"
	"github.com/Bikku2002/Real-Estate-Marketplace--sub000/internal/recommend"
	"github.com/Bikku2002/Real-Estate-Marketplace--sub000/internal/signals"
)

// statusFor maps a service error onto an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, recommend.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, featurestore.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, featurestore.ErrStoreUnavailable),
		errors.Is(err, signals.ErrBusClosed),
		errors.Is(err, signals.ErrNoConsumer),
		errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// respondServiceError writes the envelope for an error returned by the
// recommendation service or the signal sink.
func respondServiceError(rw *ResponseWriter, r *http.Request, err error) {
	switch statusFor(err) {
	case http.StatusBadRequest:
		rw.InvalidArgument(err.Error())
	case http.StatusNotFound:
		rw.NotFound(err.Error())
	case http.StatusServiceUnavailable:
		logging.Ctx(r.Context()).Warn().Err(err).Str("path", r.URL.Path).Msg("dependency unavailable")
		rw.ServiceUnavailable("recommendation store is unavailable, retry later")
	default:
		logging.Ctx(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		rw.InternalError("internal error")
	}
}
