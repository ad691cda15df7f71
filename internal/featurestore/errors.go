// Real Estate Marketplace - Property Recommendation Service
// Copyright 2026 Bikku2002
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Bikku2002/Real-Estate-Marketplace

package featurestore

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a referenced entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrStoreUnavailable is returned when the store cannot be reached, timed out,
	// or the circuit breaker is open.
	ErrStoreUnavailable = errors.New("store unavailable")
)

// Error carries the failed operation alongside its classification.
// errors.Is matches both Kind and the underlying cause.
type Error struct {
	Op   string
	Kind error
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %v: %v", e.Op, e.Kind, e.Err)
}

// Unwrap exposes both the kind and the cause.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// NotFound builds an ErrNotFound error for op.
func NotFound(op string, format string, args ...interface{}) error {
	return &Error{Op: op, Kind: ErrNotFound, Err: fmt.Errorf(format, args...)}
}

// Unavailable wraps cause as ErrStoreUnavailable for op. Errors already
// classified are returned unchanged.
func Unavailable(op string, cause error) error {
	if cause == nil {
		return nil
	}
	if errors.Is(cause, ErrStoreUnavailable) || errors.Is(cause, ErrNotFound) {
		return cause
	}
	return &Error{Op: op, Kind: ErrStoreUnavailable, Err: cause}
}

// errorKind labels err for metrics.
func errorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrStoreUnavailable):
		return "unavailable"
	default:
		return "other"
	}
}

var errStoreClosed = errors.New("store closed")
