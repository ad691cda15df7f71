// Real Estate Marketplace - Property Recommendation Service
// Copyright 2026 Bikku2002
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Bikku2002/Real-Estate-Marketplace

package featurestore

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/Bikku2002/Real-Estate-Marketplace--sub000/internal/metrics"
	"github.com/Bikku2002/Real-Estate-Marketplace--sub000/internal/models"
)

// AccessorConfig controls deadlines and circuit breaking.
type AccessorConfig struct {
	// Timeout bounds every store call. Zero disables the per-call deadline.
	Timeout time.Duration

	// BreakerMaxRequests is the number of probe requests allowed while half-open.
	BreakerMaxRequests uint32

	// BreakerInterval resets the failure counts while closed.
	BreakerInterval time.Duration

	// BreakerTimeout is how long the circuit stays open before probing.
	BreakerTimeout time.Duration

	// BreakerMinRequests is the sample size required before the circuit may open.
	BreakerMinRequests uint32

	// BreakerFailureRatio opens the circuit once reached.
	BreakerFailureRatio float64
}

// DefaultAccessorConfig returns production defaults.
func DefaultAccessorConfig() AccessorConfig {
	return AccessorConfig{
		Timeout:             2 * time.Second,
		BreakerMaxRequests:  3,
		BreakerInterval:     time.Minute,
		BreakerTimeout:      30 * time.Second,
		BreakerMinRequests:  10,
		BreakerFailureRatio: 0.6,
	}
}

const breakerName = "featurestore"

// Accessor decorates a Store with a per-call deadline and a circuit breaker.
// Every failure other than ErrNotFound leaves the Accessor as ErrStoreUnavailable.
//
// DETERMINISM NOTE: the breaker uses wall-clock time for its interval and
// timeout. Tests exercise the deadline path with a blocking fake store.
type Accessor struct {
	store   Store
	cb      *gobreaker.CircuitBreaker[interface{}]
	timeout time.Duration
	logger  zerolog.Logger
}

// NewAccessor wraps store.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewAccessor(store Store, cfg AccessorConfig, logger zerolog.Logger) *Accessor {
	if cfg.BreakerMaxRequests == 0 {
		cfg.BreakerMaxRequests = 3
	}
	if cfg.BreakerFailureRatio <= 0 {
		cfg.BreakerFailureRatio = 0.6
	}

	logger = logger.With().Str("component", "featurestore").Str("backend", store.Backend()).Logger()

	metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(0)
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(breakerName).Set(0)

	cb := gobreaker.NewCircuitBreaker[interface{}](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: cfg.BreakerMaxRequests,
		Interval:    cfg.BreakerInterval,
		Timeout:     cfg.BreakerTimeout,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.BreakerMinRequests {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := ratio >= cfg.BreakerFailureRatio
			if shouldTrip {
				logger.Warn().
					Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", ratio*100).
					Msg("opening feature store circuit")
			}
			return shouldTrip
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Info().Str("from", stateToString(from)).Str("to", stateToString(to)).Msg("circuit breaker state transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, stateToString(from), stateToString(to)).Inc()
			if to == gobreaker.StateClosed {
				metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)
			}
		},

		// A missing row or a caller that went away says nothing about store health.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrNotFound) || errors.Is(err, context.Canceled)
		},
	})

	return &Accessor{
		store:   store,
		cb:      cb,
		timeout: cfg.Timeout,
		logger:  logger,
	}
}

type outcome[T any] struct {
	value T
	err   error
}

// run executes fn under the deadline and the breaker and classifies the error.
func run[T any](a *Accessor, ctx context.Context, op string, fn func(context.Context) (T, error)) (T, error) {
	var zero T
	start := time.Now()

	callCtx := ctx
	if a.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	result, err := a.cb.Execute(func() (interface{}, error) {
		// Drivers that ignore cancellation must not hold the caller past the deadline.
		ch := make(chan outcome[T], 1)
		go func() {
			v, err := fn(callCtx)
			ch <- outcome[T]{value: v, err: err}
		}()

		select {
		case o := <-ch:
			return o.value, o.err
		case <-callCtx.Done():
			return nil, callCtx.Err()
		}
	})

	err = a.classify(op, err)
	metrics.RecordStoreQuery(op, a.store.Backend(), time.Since(start), errorKind(err))

	if err != nil {
		if errors.Is(err, ErrStoreUnavailable) {
			a.logger.Warn().Err(err).Str("op", op).Msg("feature store call failed")
		}
		return zero, err
	}

	typed, ok := result.(T)
	if !ok {
		return zero, nil
	}
	return typed, nil
}

func (a *Accessor) classify(op string, err error) error {
	if err == nil {
		metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "success").Inc()
		metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(breakerName).Set(0)
		return nil
	}

	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "rejected").Inc()
		return Unavailable(op, err)
	}

	if errors.Is(err, ErrNotFound) {
		metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "success").Inc()
		return err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "failure").Inc()
	counts := a.cb.Counts()
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(breakerName).Set(float64(counts.ConsecutiveFailures))

	return Unavailable(op, err)
}

// State reports the breaker state as "closed", "half-open" or "open".
func (a *Accessor) State() string {
	return stateToString(a.cb.State())
}

// LoadPreferences implements Reader.
func (a *Accessor) LoadPreferences(ctx context.Context, userID int64) ([]models.UserPreference, error) {
	return run(a, ctx, "load_preferences", func(ctx context.Context) ([]models.UserPreference, error) {
		return a.store.LoadPreferences(ctx, userID)
	})
}

// LoadCandidateProperties implements Reader.
//
//nolint:gocritic // hugeParam: filter is passed by value to keep callers immutable
func (a *Accessor) LoadCandidateProperties(ctx context.Context, filter models.CandidateFilter) ([]models.Property, error) {
	return run(a, ctx, "load_candidates", func(ctx context.Context) ([]models.Property, error) {
		return a.store.LoadCandidateProperties(ctx, filter)
	})
}

// LoadProperty implements Reader.
func (a *Accessor) LoadProperty(ctx context.Context, id int64) (*models.Property, error) {
	return run(a, ctx, "load_property", func(ctx context.Context) (*models.Property, error) {
		return a.store.LoadProperty(ctx, id)
	})
}

// LoadAvailability implements Reader.
func (a *Accessor) LoadAvailability(ctx context.Context, ids []int64) (map[int64]models.Availability, error) {
	return run(a, ctx, "load_availability", func(ctx context.Context) (map[int64]models.Availability, error) {
		return a.store.LoadAvailability(ctx, ids)
	})
}

// UpsertPreference implements Writer.
//
//nolint:gocritic // hugeParam
func (a *Accessor) UpsertPreference(ctx context.Context, pref models.UserPreference, mode models.MergeMode) error {
	_, err := run(a, ctx, "upsert_preference", func(ctx context.Context) (struct{}, error) {
		return struct{}{}, a.store.UpsertPreference(ctx, pref, mode)
	})
	if err == nil {
		metrics.RecordPreferenceUpsert(string(pref.Type), mode.String())
	}
	return err
}

// IncrementCounters implements Writer.
func (a *Accessor) IncrementCounters(ctx context.Context, propertyID, views, favorites int64) error {
	_, err := run(a, ctx, "increment_counters", func(ctx context.Context) (struct{}, error) {
		return struct{}{}, a.store.IncrementCounters(ctx, propertyID, views, favorites)
	})
	return err
}

// SetAvailability implements Writer.
func (a *Accessor) SetAvailability(ctx context.Context, propertyID int64, status models.Availability) error {
	_, err := run(a, ctx, "set_availability", func(ctx context.Context) (struct{}, error) {
		return struct{}{}, a.store.SetAvailability(ctx, propertyID, status)
	})
	return err
}

// SaveProperty implements Writer.
func (a *Accessor) SaveProperty(ctx context.Context, p *models.Property) error {
	_, err := run(a, ctx, "save_property", func(ctx context.Context) (struct{}, error) {
		return struct{}{}, a.store.SaveProperty(ctx, p)
	})
	return err
}

// Ping checks the store through the breaker.
func (a *Accessor) Ping(ctx context.Context) error {
	_, err := run(a, ctx, "ping", func(ctx context.Context) (struct{}, error) {
		return struct{}{}, a.store.Ping(ctx)
	})
	return err
}

// Backend returns the wrapped backend name.
func (a *Accessor) Backend() string {
	return a.store.Backend()
}

// Close closes the wrapped store.
func (a *Accessor) Close() error {
	return a.store.Close()
}

// stateToFloat converts circuit breaker state to numeric value for metrics
func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// stateToString converts circuit breaker state to string for logging
func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
