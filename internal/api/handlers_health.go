// Real Estate Marketplace - Property Recommendation Service
// Copyright 2026 Bikku2002
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Bikku2002/Real-Estate-Marketplace

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/Bikku2002/Real-Estate-Marketplace--sub000/internal/logging"
)

// HealthLive handles liveness probe requests (Kubernetes-style)
// Returns 200 OK if the process is alive, regardless of dependencies
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(map[string]interface{}{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	})
}

// ReadinessStatus reports each registered dependency.
type ReadinessStatus struct {
	Ready  bool              `json:"ready"`
	Checks map[string]string `json:"checks"`
}

// HealthReady handles readiness probe requests (Kubernetes-style)
// Returns 200 only when every registered check passes, 503 otherwise.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	ctx, cancel := context.WithTimeout(r.Context(), h.config.ReadyTimeout)
	defer cancel()

	status := ReadinessStatus{Ready: true, Checks: map[string]string{}}
	for _, c := range h.readinessChecks() {
		if err := c.check(ctx); err != nil {
			status.Ready = false
			status.Checks[c.name] = err.Error()
			logging.Ctx(r.Context()).Warn().Err(err).Str("check", c.name).Msg("readiness check failed")
			continue
		}
		status.Checks[c.name] = "ok"
	}

	if !status.Ready {
		rw.ErrorWithDetails(http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "service not ready", status)
		return
	}
	rw.Success(status)
}
